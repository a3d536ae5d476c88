package store

import (
	"context"
	"errors"
	"time"

	"github.com/Yulian302/lfusys-services-requests/apperror"
	"github.com/Yulian302/lfusys-services-requests/models"
)

// RequestRepository is access-controlled CRUD over the Request aggregate.
// Mutations take the snapshot the caller verified and persist the next one;
// guarding against lost updates is the caller's job.
type RequestRepository interface {
	Create(ctx context.Context, author string, files []models.FileSpec) (*models.Request, error)
	Get(ctx context.Context, id string) (*models.Request, error)
	GetWithAccessCheck(ctx context.Context, identity, id string) (*models.Request, error)
	GetReadyForUser(ctx context.Context, identity, id string) (*models.Request, error)
	MarkAsProcessing(ctx context.Context, id string) (*models.Request, error)
	AddChunk(ctx context.Context, req *models.Request, fileIndex int, chunkLength int64) (*models.Request, error)
	CommitFile(ctx context.Context, req *models.Request, fileIndex int, checksumLength int64) (*models.Request, error)
	Delete(ctx context.Context, id string) error
	DeleteWithAccessCheck(ctx context.Context, identity, id string) error
	ClearExpired(ctx context.Context, maxInactiveTime time.Duration) ([]models.Request, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

const markProcessingAttempts = 3

type RequestRepositoryImpl struct {
	store RequestStore
	now   func() time.Time
}

func NewRequestRepositoryImpl(store RequestStore) *RequestRepositoryImpl {
	return &RequestRepositoryImpl{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source, used by tests.
func (r *RequestRepositoryImpl) WithClock(now func() time.Time) *RequestRepositoryImpl {
	r.now = now
	return r
}

func (r *RequestRepositoryImpl) Create(ctx context.Context, author string, files []models.FileSpec) (*models.Request, error) {
	fileIDs := make([]string, len(files))
	for i := range files {
		fileIDs[i] = r.store.GenerateID()
	}

	req := models.NewRequest(r.store.GenerateID(), author, fileIDs, files, r.now())
	if err := r.store.Insert(ctx, req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepositoryImpl) Get(ctx context.Context, id string) (*models.Request, error) {
	return r.store.Get(ctx, id)
}

func (r *RequestRepositoryImpl) GetWithAccessCheck(ctx context.Context, identity, id string) (*models.Request, error) {
	req, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Author != identity {
		return nil, apperror.ErrAccessDenied.WithContext("requestId", id)
	}
	return req, nil
}

func (r *RequestRepositoryImpl) GetReadyForUser(ctx context.Context, identity, id string) (*models.Request, error) {
	req, err := r.GetWithAccessCheck(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if !req.IsReady() {
		return nil, apperror.ErrRequestNotReadyYet.WithContext("requestId", id)
	}
	return req, nil
}

func (r *RequestRepositoryImpl) MarkAsProcessing(ctx context.Context, id string) (*models.Request, error) {
	var err error
	for range markProcessingAttempts {
		var req *models.Request
		req, err = r.store.Get(ctx, id)
		if err != nil {
			return nil, err
		}

		next := req.WithProcessing(r.now())
		next.Version++
		err = r.store.Update(ctx, next)
		if err == nil {
			return &next, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return nil, err
		}
	}
	return nil, err
}

func (r *RequestRepositoryImpl) AddChunk(ctx context.Context, req *models.Request, fileIndex int, chunkLength int64) (*models.Request, error) {
	next := req.WithChunk(fileIndex, chunkLength, r.now())
	next.Version++
	if err := r.store.Update(ctx, next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (r *RequestRepositoryImpl) CommitFile(ctx context.Context, req *models.Request, fileIndex int, checksumLength int64) (*models.Request, error) {
	next := req.WithCommittedFile(fileIndex, checksumLength, r.now())
	next.Version++
	if err := r.store.Update(ctx, next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (r *RequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}

func (r *RequestRepositoryImpl) DeleteWithAccessCheck(ctx context.Context, identity, id string) error {
	if _, err := r.GetWithAccessCheck(ctx, identity, id); err != nil {
		return err
	}
	return r.store.Delete(ctx, id)
}

// ClearExpired deletes every unclaimed Request idle for longer than
// maxInactiveTime and returns them so their blobs can be discarded.
func (r *RequestRepositoryImpl) ClearExpired(ctx context.Context, maxInactiveTime time.Duration) ([]models.Request, error) {
	return r.store.DeleteExpired(ctx, r.now().Add(-maxInactiveTime))
}

func (r *RequestRepositoryImpl) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.store.WithTransaction(ctx, fn)
}
