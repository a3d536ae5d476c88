package storage

import (
	"context"
	"errors"

	"github.com/Yulian302/lfusys-services-requests/logging"
)

var (
	ErrRandomWriteUnsupported = errors.New("random write is not supported by this storage")
	ErrBlobNotFound           = errors.New("blob not found")
	ErrBlobClosed             = errors.New("blob is closed")
	ErrBlobNotClosed          = errors.New("blob is not closed")
	ErrSeqOutOfOrder          = errors.New("write seq out of order")
	ErrInvalidRange           = errors.New("invalid read range")
)

type RangeKind int

const (
	RangeAll RangeKind = iota
	RangeChecksum
	RangeSlice
)

// ReadRange selects what Read returns: the whole payload, only the checksum,
// or Length bytes of payload starting at Offset.
type ReadRange struct {
	Kind   RangeKind
	Offset int64
	Length int64
}

func All() ReadRange { return ReadRange{Kind: RangeAll} }

func ChecksumOnly() ReadRange { return ReadRange{Kind: RangeChecksum} }

func Slice(offset, length int64) ReadRange {
	return ReadRange{Kind: RangeSlice, Offset: offset, Length: length}
}

func (r ReadRange) validate() error {
	if r.Kind == RangeSlice && (r.Offset < 0 || r.Length < 0) {
		return ErrInvalidRange
	}
	return nil
}

type WriteTarget int

const (
	TargetData WriteTarget = iota
	TargetChecksum
)

// EndOfBlob as a position appends at the current end of the target.
const EndOfBlob int64 = -1

// RandomWriteOperation patches Data into Target at Pos. With Truncate set the
// target is cut right after the written bytes.
type RandomWriteOperation struct {
	Target   WriteTarget
	Pos      int64
	Data     []byte
	Truncate bool
}

// RandomWriteContext is the validated plan produced by RandomWritePrepare.
type RandomWriteContext struct {
	ID         string
	Operations []RandomWriteOperation

	fileSize     int64
	checksumSize int64
}

type RandomWriteResult struct {
	NewFileSize     int64
	NewChecksumSize int64
}

// Engine manages blob lifecycle:
//
//	NonExistent -> Create -> Open -> Append* -> SetChecksumAndClose -> Closed -> Commit -> Committed
//
// Open and Closed blobs can be discarded with Reject. Committed blobs support
// Read, Copy and Delete.
//
// Writes may be repeated at the same seq: an engine either overwrites the
// previous write for that seq or tolerates it, never appends twice.
type Engine interface {
	Name() string

	Create(ctx context.Context, id string) error
	Append(ctx context.Context, id string, data []byte, seq int64) error
	SetChecksumAndClose(ctx context.Context, id string, checksum []byte, seq int64) error
	Commit(ctx context.Context, id string) error
	// Reject discards a temporary blob. Failures are reported to the
	// CleanupSink, never returned.
	Reject(ctx context.Context, id string, seq int64)

	Read(ctx context.Context, id string, r ReadRange) ([]byte, error)
	Copy(ctx context.Context, srcID, dstID string) error
	// Delete removes a committed blob. Failures are reported to the
	// CleanupSink, never returned.
	Delete(ctx context.Context, id string)

	List(ctx context.Context) ([]string, error)
	ClearStorage(ctx context.Context) error
	SwitchToFreshStorage(ctx context.Context) error

	RandomWritePrepare(ctx context.Context, id string, ops []RandomWriteOperation) (*RandomWriteContext, error)
	RandomWriteCommit(ctx context.Context, wc *RandomWriteContext) (*RandomWriteResult, error)
}

// CleanupSink receives failures of best-effort cleanup calls.
type CleanupSink interface {
	Report(ctx context.Context, op string, id string, err error)
}

type LoggingCleanupSink struct {
	logger logging.Logger
}

func NewLoggingCleanupSink(l logging.Logger) *LoggingCleanupSink {
	return &LoggingCleanupSink{logger: l}
}

func (s *LoggingCleanupSink) Report(ctx context.Context, op string, id string, err error) {
	s.logger.Warn("storage cleanup failed", "op", op, "blob_id", id, "error", err)
}

var (
	_ Engine = (*FSEngine)(nil)
	_ Engine = (*S3EngineImpl)(nil)
	_ Engine = (*GCSEngineImpl)(nil)
)
