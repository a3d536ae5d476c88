package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/Yulian302/lfusys-services-requests/apperror"
	"github.com/Yulian302/lfusys-services-requests/config"
	"github.com/Yulian302/lfusys-services-requests/logging"
	"github.com/Yulian302/lfusys-services-requests/models"
	"github.com/Yulian302/lfusys-services-requests/storage"
	"github.com/Yulian302/lfusys-services-requests/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/Yulian302/lfusys-services-requests/services"

	// A version conflict means another write to the same Request landed
	// between read and update; the whole verify runs again.
	commitAttempts = 3
)

type RequestService interface {
	CreateRequest(ctx context.Context, identity string, files []models.FileSpec) (*models.Request, error)
	SendChunk(ctx context.Context, identity, requestId string, fileIndex int, seq int64, data []byte) (*models.Request, error)
	CommitFile(ctx context.Context, identity, requestId string, fileIndex int, seq int64, checksum []byte) (*models.Request, error)
	MarkRequestAsProcessing(ctx context.Context, requestId string) (*models.Request, error)
	DestroyRequest(ctx context.Context, identity, requestId string) error
	FinishRequest(ctx context.Context, req models.Request, movedFiles []int) error
	FinalizeRequest(ctx context.Context, requestId string, movedFiles []int) error
	ClearExpired(ctx context.Context) (int, error)

	GetRequest(ctx context.Context, identity, requestId string) (*models.Request, error)
	GetReadyRequest(ctx context.Context, identity, requestId string) (*models.Request, error)
	PromoteFile(ctx context.Context, requestId string, fileIndex int, targetId string) (string, error)
	ReadBlob(ctx context.Context, requestId string, fileIndex int, r storage.ReadRange) ([]byte, error)
}

// ReadyNotifier is told when the last file of a Request gets closed.
type ReadyNotifier interface {
	NotifyReady(ctx context.Context, evt models.RequestReadyEvent) error
}

type NopReadyNotifier struct{}

func (NopReadyNotifier) NotifyReady(ctx context.Context, evt models.RequestReadyEvent) error {
	return nil
}

type RequestServiceImpl struct {
	repository store.RequestRepository
	provider   *storage.Provider
	notifier   ReadyNotifier
	limits     config.LimitsConfig

	tracer trace.Tracer
	logger logging.Logger
}

func NewRequestServiceImpl(
	repository store.RequestRepository,
	provider *storage.Provider,
	notifier ReadyNotifier,
	limits config.LimitsConfig,
	l logging.Logger,
) *RequestServiceImpl {
	if notifier == nil {
		notifier = NopReadyNotifier{}
	}
	return &RequestServiceImpl{
		repository: repository,
		provider:   provider,
		notifier:   notifier,
		limits:     limits,
		tracer:     otel.Tracer(tracerName),
		logger:     l.With("component", "requests"),
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperror.CodeOf(err)))
	}
	span.End()
}

func (svc *RequestServiceImpl) CreateRequest(ctx context.Context, identity string, files []models.FileSpec) (_ *models.Request, err error) {
	ctx, span := svc.tracer.Start(ctx, "RequestService.CreateRequest", trace.WithAttributes(
		attribute.Int("files.count", len(files)),
	))
	defer func() { endSpan(span, err) }()

	if err := svc.validateFiles(files); err != nil {
		return nil, err
	}

	var req *models.Request
	err = svc.repository.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		req, err = svc.repository.Create(ctx, identity, files)
		return err
	})
	if err != nil {
		svc.logger.Error("failed to create request", "author", identity, "error", err)
		return nil, err
	}

	svc.logger.Info("request created", "request_id", req.ID, "author", identity, "files", len(files))
	return req, nil
}

func (svc *RequestServiceImpl) validateFiles(files []models.FileSpec) error {
	if len(files) == 0 {
		return apperror.ErrInvalidParams.WithContext("reason", "request needs at least one file")
	}
	if len(files) > svc.limits.MaxFilesCount {
		return apperror.ErrTooManyFilesInRequest.WithContext("count", len(files), "max", svc.limits.MaxFilesCount)
	}

	var total int64
	for i, f := range files {
		if f.Size < 0 || f.ChecksumSize < 0 {
			return apperror.ErrInvalidParams.WithContext("fileIndex", i, "reason", "negative size")
		}
		if f.Size > svc.limits.MaxFileSize || f.ChecksumSize > svc.limits.MaxFileSize {
			return apperror.ErrRequestFileSizeExceeded.WithContext(
				"fileIndex", i, "size", f.Size, "checksumSize", f.ChecksumSize, "max", svc.limits.MaxFileSize,
			)
		}
		total += f.Size + f.ChecksumSize
	}
	if total > svc.limits.MaxRequestSize {
		return apperror.ErrRequestSizeExceeded.WithContext("size", total, "max", svc.limits.MaxRequestSize)
	}
	return nil
}

// write describes one payload chunk or checksum write against a file.
type write struct {
	fileIndex int
	seq       int64
	length    int64
	checksum  bool
}

func (w write) verify(req *models.Request) error {
	if !req.HasFile(w.fileIndex) {
		return apperror.ErrRequestFileDoesNotExist.WithContext("requestId", req.ID, "fileIndex", w.fileIndex)
	}

	f := req.Files[w.fileIndex]
	if f.Closed {
		return apperror.ErrRequestFileAlreadyClosed.WithContext("requestId", req.ID, "fileIndex", w.fileIndex)
	}
	if w.checksum && w.length > f.ChecksumSize {
		return apperror.ErrRequestFileSizeExceeded.WithContext(
			"fileIndex", w.fileIndex, "checksumSize", f.ChecksumSize, "length", w.length,
		)
	}
	if !w.checksum && f.Sent+w.length > f.Size {
		return apperror.ErrRequestFileSizeExceeded.WithContext(
			"fileIndex", w.fileIndex, "size", f.Size, "sent", f.Sent, "length", w.length,
		)
	}
	if f.Seq != w.seq {
		return apperror.ErrRequestFileDesynchronized.WithContext(
			"fileIndex", w.fileIndex, "expectedSeq", f.Seq, "seq", w.seq,
		)
	}
	return nil
}

// commit re-reads the Request inside a transaction, verifies w against the
// fresh snapshot and persists the result of apply.
func (svc *RequestServiceImpl) commit(
	ctx context.Context,
	identity, requestId string,
	w write,
	apply func(ctx context.Context, req *models.Request) (*models.Request, error),
) (*models.Request, error) {
	var lastConflict error
	for range commitAttempts {
		var next *models.Request
		err := svc.repository.WithTransaction(ctx, func(ctx context.Context) error {
			req, err := svc.repository.GetWithAccessCheck(ctx, identity, requestId)
			if err != nil {
				return err
			}
			if err := w.verify(req); err != nil {
				return err
			}
			next, err = apply(ctx, req)
			return err
		})
		if errors.Is(err, store.ErrVersionConflict) {
			lastConflict = err
			svc.logger.Debug("version conflict, retrying commit", "request_id", requestId, "file_index", w.fileIndex)
			continue
		}
		if err != nil {
			return nil, err
		}
		return next, nil
	}

	return nil, apperror.ErrRequestFileDesynchronized.
		WithContext("fileIndex", w.fileIndex, "seq", w.seq).
		Wrap(lastConflict)
}

func (svc *RequestServiceImpl) SendChunk(ctx context.Context, identity, requestId string, fileIndex int, seq int64, data []byte) (_ *models.Request, err error) {
	ctx, span := svc.tracer.Start(ctx, "RequestService.SendChunk", trace.WithAttributes(
		attribute.String("request.id", requestId),
		attribute.Int("file.index", fileIndex),
		attribute.Int64("seq", seq),
		attribute.Int("chunk.size", len(data)),
	))
	defer func() { endSpan(span, err) }()

	w := write{fileIndex: fileIndex, seq: seq, length: int64(len(data))}

	req, err := svc.repository.GetWithAccessCheck(ctx, identity, requestId)
	if err != nil {
		return nil, err
	}
	if err := w.verify(req); err != nil {
		return nil, err
	}

	f := req.Files[fileIndex]
	if w.length < svc.limits.ChunkSize && f.Sent+w.length < f.Size {
		svc.logger.Warn("chunk smaller than configured chunk size",
			"code", apperror.RequestChunkTooSmall,
			"request_id", requestId,
			"file_index", fileIndex,
			"seq", seq,
			"chunk_size", w.length,
			"expected", svc.limits.ChunkSize,
		)
	}

	engine := svc.provider.For(f)
	if seq == 0 {
		if err := engine.Create(ctx, f.ID); err != nil {
			return nil, fmt.Errorf("create blob %s: %w", f.ID, err)
		}
	}
	if err := engine.Append(ctx, f.ID, data, seq); err != nil {
		svc.logger.Error("failed to append chunk", "request_id", requestId, "blob_id", f.ID, "seq", seq, "error", err)
		return nil, fmt.Errorf("append to blob %s: %w", f.ID, err)
	}

	return svc.commit(ctx, identity, requestId, w, func(ctx context.Context, req *models.Request) (*models.Request, error) {
		return svc.repository.AddChunk(ctx, req, fileIndex, w.length)
	})
}

func (svc *RequestServiceImpl) CommitFile(ctx context.Context, identity, requestId string, fileIndex int, seq int64, checksum []byte) (_ *models.Request, err error) {
	ctx, span := svc.tracer.Start(ctx, "RequestService.CommitFile", trace.WithAttributes(
		attribute.String("request.id", requestId),
		attribute.Int("file.index", fileIndex),
		attribute.Int64("seq", seq),
	))
	defer func() { endSpan(span, err) }()

	w := write{fileIndex: fileIndex, seq: seq, length: int64(len(checksum)), checksum: true}

	req, err := svc.repository.GetWithAccessCheck(ctx, identity, requestId)
	if err != nil {
		return nil, err
	}
	if err := w.verify(req); err != nil {
		return nil, err
	}

	f := req.Files[fileIndex]
	engine := svc.provider.For(f)
	if seq == 0 {
		if err := engine.Create(ctx, f.ID); err != nil {
			return nil, fmt.Errorf("create blob %s: %w", f.ID, err)
		}
	}
	if err := engine.SetChecksumAndClose(ctx, f.ID, checksum, seq); err != nil {
		svc.logger.Error("failed to close blob", "request_id", requestId, "blob_id", f.ID, "seq", seq, "error", err)
		return nil, fmt.Errorf("close blob %s: %w", f.ID, err)
	}

	next, err := svc.commit(ctx, identity, requestId, w, func(ctx context.Context, req *models.Request) (*models.Request, error) {
		return svc.repository.CommitFile(ctx, req, fileIndex, w.length)
	})
	if err != nil {
		return nil, err
	}

	svc.logger.Info("file closed", "request_id", requestId, "file_index", fileIndex)

	if next.IsReady() {
		evt := models.RequestReadyEvent{RequestId: next.ID, Author: next.Author}
		if err := svc.notifier.NotifyReady(ctx, evt); err != nil {
			svc.logger.Error("failed to publish request ready event", "request_id", next.ID, "error", err)
		}
	}

	return next, nil
}

func (svc *RequestServiceImpl) MarkRequestAsProcessing(ctx context.Context, requestId string) (_ *models.Request, err error) {
	ctx, span := svc.tracer.Start(ctx, "RequestService.MarkRequestAsProcessing", trace.WithAttributes(
		attribute.String("request.id", requestId),
	))
	defer func() { endSpan(span, err) }()

	var req *models.Request
	err = svc.repository.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		req, err = svc.repository.MarkAsProcessing(ctx, requestId)
		return err
	})
	if err != nil {
		return nil, err
	}

	svc.logger.Info("request claimed for processing", "request_id", requestId)
	return req, nil
}

// DestroyRequest deletes the Request only; its blobs are left to the caller.
func (svc *RequestServiceImpl) DestroyRequest(ctx context.Context, identity, requestId string) (err error) {
	ctx, span := svc.tracer.Start(ctx, "RequestService.DestroyRequest", trace.WithAttributes(
		attribute.String("request.id", requestId),
	))
	defer func() { endSpan(span, err) }()

	err = svc.repository.WithTransaction(ctx, func(ctx context.Context) error {
		return svc.repository.DeleteWithAccessCheck(ctx, identity, requestId)
	})
	if err != nil {
		return err
	}

	svc.logger.Info("request destroyed", "request_id", requestId)
	return nil
}

// FinishRequest deletes req and discards the blobs of every file not listed
// in movedFiles.
func (svc *RequestServiceImpl) FinishRequest(ctx context.Context, req models.Request, movedFiles []int) (err error) {
	ctx, span := svc.tracer.Start(ctx, "RequestService.FinishRequest", trace.WithAttributes(
		attribute.String("request.id", req.ID),
		attribute.Int("files.moved", len(movedFiles)),
	))
	defer func() { endSpan(span, err) }()

	if err := svc.repository.Delete(ctx, req.ID); err != nil {
		return err
	}

	svc.rejectFiles(ctx, req, movedFiles)
	svc.logger.Info("request finished", "request_id", req.ID, "moved_files", movedFiles)
	return nil
}

// FinalizeRequest is FinishRequest by id. A Request that no longer exists was
// already finished.
func (svc *RequestServiceImpl) FinalizeRequest(ctx context.Context, requestId string, movedFiles []int) error {
	req, err := svc.repository.Get(ctx, requestId)
	if errors.Is(err, apperror.ErrRequestDoesNotExist) {
		svc.logger.Info("request not found, possibly already finished", "request_id", requestId)
		return nil
	}
	if err != nil {
		return err
	}

	err = svc.FinishRequest(ctx, *req, movedFiles)
	if errors.Is(err, apperror.ErrRequestDoesNotExist) {
		return nil
	}
	return err
}

func (svc *RequestServiceImpl) rejectFiles(ctx context.Context, req models.Request, keep []int) {
	for i, f := range req.Files {
		if slices.Contains(keep, i) {
			continue
		}
		svc.provider.For(f).Reject(ctx, f.ID, f.Seq)
	}
}

// ClearExpired deletes idle unclaimed Requests, then discards their blobs.
// Blob cleanup is best effort; the metadata deletion is what counts. After a
// partial failure the count deleted so far is returned with the error.
func (svc *RequestServiceImpl) ClearExpired(ctx context.Context) (_ int, err error) {
	ctx, span := svc.tracer.Start(ctx, "RequestService.ClearExpired")
	defer func() { endSpan(span, err) }()

	deleted, err := svc.repository.ClearExpired(ctx, svc.limits.MaxInactiveTime)

	// metadata returned here is gone even when the sweep failed partway
	for _, req := range deleted {
		svc.rejectFiles(ctx, req, nil)
	}

	if err != nil {
		svc.logger.Error("failed to clear expired requests", "deleted", len(deleted), "error", err)
		return len(deleted), err
	}

	span.SetAttributes(attribute.Int("requests.deleted", len(deleted)))
	if len(deleted) > 0 {
		svc.logger.Info("expired requests cleared", "count", len(deleted))
	}
	return len(deleted), nil
}

func (svc *RequestServiceImpl) GetRequest(ctx context.Context, identity, requestId string) (*models.Request, error) {
	return svc.repository.GetWithAccessCheck(ctx, identity, requestId)
}

func (svc *RequestServiceImpl) GetReadyRequest(ctx context.Context, identity, requestId string) (*models.Request, error) {
	return svc.repository.GetReadyForUser(ctx, identity, requestId)
}

func (svc *RequestServiceImpl) claimedFile(ctx context.Context, requestId string, fileIndex int) (*models.FileDefinition, error) {
	req, err := svc.repository.Get(ctx, requestId)
	if err != nil {
		return nil, err
	}
	if !req.HasFile(fileIndex) {
		return nil, apperror.ErrRequestFileDoesNotExist.WithContext("requestId", requestId, "fileIndex", fileIndex)
	}
	if !req.IsReady() {
		return nil, apperror.ErrRequestNotReadyYet.WithContext("requestId", requestId)
	}
	if !req.Processing {
		return nil, apperror.ErrRequestNotProcessing.WithContext("requestId", requestId)
	}
	return &req.Files[fileIndex], nil
}

// PromoteFile commits the blob of a closed file of a claimed Request. With a
// targetId the blob is copied there and the original removed. It returns the
// id of the committed blob.
func (svc *RequestServiceImpl) PromoteFile(ctx context.Context, requestId string, fileIndex int, targetId string) (_ string, err error) {
	ctx, span := svc.tracer.Start(ctx, "RequestService.PromoteFile", trace.WithAttributes(
		attribute.String("request.id", requestId),
		attribute.Int("file.index", fileIndex),
	))
	defer func() { endSpan(span, err) }()

	f, err := svc.claimedFile(ctx, requestId, fileIndex)
	if err != nil {
		return "", err
	}

	engine := svc.provider.For(*f)
	if err := engine.Commit(ctx, f.ID); err != nil {
		return "", fmt.Errorf("commit blob %s: %w", f.ID, err)
	}

	if targetId == "" || targetId == f.ID {
		svc.logger.Info("file promoted", "request_id", requestId, "file_index", fileIndex, "blob_id", f.ID)
		return f.ID, nil
	}

	if err := engine.Copy(ctx, f.ID, targetId); err != nil {
		return "", fmt.Errorf("copy blob %s to %s: %w", f.ID, targetId, err)
	}
	engine.Delete(ctx, f.ID)

	svc.logger.Info("file promoted", "request_id", requestId, "file_index", fileIndex, "blob_id", targetId)
	return targetId, nil
}

// ReadBlob reads the committed blob of a promoted file.
func (svc *RequestServiceImpl) ReadBlob(ctx context.Context, requestId string, fileIndex int, r storage.ReadRange) ([]byte, error) {
	f, err := svc.claimedFile(ctx, requestId, fileIndex)
	if err != nil {
		return nil, err
	}
	return svc.provider.For(*f).Read(ctx, f.ID, r)
}
