package store

import (
	"context"
	"errors"
	"time"

	"github.com/Yulian302/lfusys-services-requests/health"
	"github.com/Yulian302/lfusys-services-requests/models"
)

// ErrVersionConflict is returned by Update when the stored Request changed
// since the snapshot being replaced was read.
var ErrVersionConflict = errors.New("request version conflict")

// RequestStore is the persistence contract for Request documents.
type RequestStore interface {
	GenerateID() string
	Get(ctx context.Context, id string) (*models.Request, error)
	Insert(ctx context.Context, req models.Request) error
	// Update replaces the whole document. req.Version must be exactly one more
	// than the stored version, otherwise ErrVersionConflict is returned.
	Update(ctx context.Context, req models.Request) error
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes and returns every Request with processing=false
	// and modified before cutoff. On error it still returns the Requests it
	// had already deleted.
	DeleteExpired(ctx context.Context, cutoff time.Time) ([]models.Request, error)
	// WithTransaction runs fn so that the store calls made with the ctx it
	// receives form one unit of work.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	health.ReadinessCheck
}
