package services

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Yulian302/lfusys-services-requests/apperror"
	"github.com/Yulian302/lfusys-services-requests/config"
	"github.com/Yulian302/lfusys-services-requests/logging"
	"github.com/Yulian302/lfusys-services-requests/models"
	"github.com/Yulian302/lfusys-services-requests/storage"
	"github.com/Yulian302/lfusys-services-requests/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	store.RequestStore

	inserts atomic.Int32
	updates atomic.Int32

	// conflicts makes the next n updates fail with ErrVersionConflict.
	conflicts atomic.Int32

	// expireErr is returned by DeleteExpired together with whatever the
	// underlying store deleted.
	expireErr error
}

func (s *countingStore) Insert(ctx context.Context, req models.Request) error {
	s.inserts.Add(1)
	return s.RequestStore.Insert(ctx, req)
}

func (s *countingStore) Update(ctx context.Context, req models.Request) error {
	s.updates.Add(1)
	if s.conflicts.Add(-1) >= 0 {
		return store.ErrVersionConflict
	}
	s.conflicts.Store(0)
	return s.RequestStore.Update(ctx, req)
}

func (s *countingStore) DeleteExpired(ctx context.Context, cutoff time.Time) ([]models.Request, error) {
	deleted, err := s.RequestStore.DeleteExpired(ctx, cutoff)
	if err == nil && s.expireErr != nil {
		return deleted, s.expireErr
	}
	return deleted, err
}

type countingEngine struct {
	storage.Engine

	creates atomic.Int32
	appends atomic.Int32
	closes  atomic.Int32
	rejects atomic.Int32

	// rejectFailures makes Reject of these blob ids fail and report to sink.
	rejectFailures map[string]error
	sink           storage.CleanupSink
}

func (e *countingEngine) Create(ctx context.Context, id string) error {
	e.creates.Add(1)
	return e.Engine.Create(ctx, id)
}

func (e *countingEngine) Append(ctx context.Context, id string, data []byte, seq int64) error {
	e.appends.Add(1)
	return e.Engine.Append(ctx, id, data, seq)
}

func (e *countingEngine) SetChecksumAndClose(ctx context.Context, id string, checksum []byte, seq int64) error {
	e.closes.Add(1)
	return e.Engine.SetChecksumAndClose(ctx, id, checksum, seq)
}

func (e *countingEngine) Reject(ctx context.Context, id string, seq int64) {
	e.rejects.Add(1)
	if err, ok := e.rejectFailures[id]; ok {
		e.sink.Report(ctx, "reject", id, err)
		return
	}
	e.Engine.Reject(ctx, id, seq)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []models.RequestReadyEvent
}

func (n *recordingNotifier) NotifyReady(ctx context.Context, evt models.RequestReadyEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, evt)
	return nil
}

type recordingHandler struct {
	mu      *sync.Mutex
	records *[]slog.Record
	attrs   []slog.Attr
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{mu: &sync.Mutex{}, records: &[]slog.Record{}}
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	r = r.Clone()
	r.AddAttrs(h.attrs...)

	h.mu.Lock()
	defer h.mu.Unlock()
	*h.records = append(*h.records, r)
	return nil
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &recordingHandler{mu: h.mu, records: h.records, attrs: append(slices.Clone(h.attrs), attrs...)}
}

func (h *recordingHandler) WithGroup(string) slog.Handler {
	return h
}

// find returns the attributes of every record logged with level and msg.
func (h *recordingHandler) find(level slog.Level, msg string) []map[string]string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []map[string]string
	for _, r := range *h.records {
		if r.Level != level || r.Message != msg {
			continue
		}
		attrs := map[string]string{}
		r.Attrs(func(a slog.Attr) bool {
			attrs[a.Key] = a.Value.String()
			return true
		})
		out = append(out, attrs)
	}
	return out
}

type fixture struct {
	svc      *RequestServiceImpl
	repo     *store.RequestRepositoryImpl
	store    *countingStore
	seq      *countingEngine
	rw       *countingEngine
	notifier *recordingNotifier
	now      time.Time
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func testLimits() config.LimitsConfig {
	return config.LimitsConfig{
		MaxFilesCount:   5,
		MaxFileSize:     5_000_000,
		MaxRequestSize:  8_000_000,
		ChunkSize:       64,
		MaxInactiveTime: time.Hour,
	}
}

func newFixture(t *testing.T) *fixture {
	return newLoggedFixture(t, logging.NewNopLogger())
}

func newLoggedFixture(t *testing.T, l logging.Logger) *fixture {
	t.Helper()
	dir := t.TempDir()

	sqlite, err := store.NewSQLiteRequestStoreImpl(filepath.Join(dir, "requests.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Shutdown(context.Background()) })

	sink := storage.NewLoggingCleanupSink(l)
	seqFS, err := storage.NewFSEngine(filepath.Join(dir, "seq"), sink, l)
	require.NoError(t, err)
	rwFS, err := storage.NewFSEngine(filepath.Join(dir, "rw"), sink, l)
	require.NoError(t, err)

	f := &fixture{
		store:    &countingStore{RequestStore: sqlite},
		seq:      &countingEngine{Engine: seqFS, sink: sink},
		rw:       &countingEngine{Engine: rwFS, sink: sink},
		notifier: &recordingNotifier{},
		now:      time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	f.repo = store.NewRequestRepositoryImpl(f.store).WithClock(func() time.Time { return f.now })
	f.svc = NewRequestServiceImpl(
		f.repo,
		storage.NewProvider(f.seq, f.rw),
		f.notifier,
		testLimits(),
		l,
	)
	return f
}

func (f *fixture) create(t *testing.T, files ...models.FileSpec) *models.Request {
	t.Helper()
	req, err := f.svc.CreateRequest(context.Background(), "alice", files)
	require.NoError(t, err)
	return req
}

func TestCreateRequest(t *testing.T) {
	f := newFixture(t)

	req, err := f.svc.CreateRequest(context.Background(), "alice", []models.FileSpec{{Size: 1000}, {Size: 2000}})
	require.NoError(t, err)

	assert.False(t, req.Processing)
	assert.Len(t, req.Files, 2)
	assert.Equal(t, int32(1), f.store.inserts.Load())
}

func TestCreateRequest_Limits(t *testing.T) {
	tests := []struct {
		name  string
		files []models.FileSpec
		code  apperror.Code
	}{
		{"file too large", []models.FileSpec{{Size: 5_000_001}}, apperror.RequestFileSizeExceeded},
		{"checksum too large", []models.FileSpec{{Size: 1, ChecksumSize: 5_000_001}}, apperror.RequestFileSizeExceeded},
		{"too many files", make([]models.FileSpec, 6), apperror.TooManyFilesInRequest},
		{"request too large", []models.FileSpec{{Size: 4_000_000}, {Size: 4_000_000, ChecksumSize: 1}}, apperror.RequestSizeExceeded},
		{"no files", nil, apperror.InvalidParams},
		{"negative size", []models.FileSpec{{Size: -1}}, apperror.InvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.CreateRequest(context.Background(), "alice", tt.files)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperror.CodeOf(err))
			assert.Zero(t, f.store.inserts.Load())
		})
	}
}

func TestSendChunk(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.create(t, models.FileSpec{Size: 1024}, models.FileSpec{Size: 10})

	next, err := f.svc.SendChunk(ctx, "alice", req.ID, 0, 0, make([]byte, 100))
	require.NoError(t, err)

	assert.False(t, next.Files[0].Closed)
	assert.Equal(t, int64(100), next.Files[0].Sent)
	assert.Equal(t, int64(1), next.Files[0].Seq)
	assert.Equal(t, req.Files[1], next.Files[1])

	assert.Equal(t, int32(1), f.seq.appends.Load())
	assert.Equal(t, int32(1), f.store.updates.Load())
	assert.Zero(t, f.rw.appends.Load())
}

func TestSendChunk_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.create(t, models.FileSpec{Size: 1024}, models.FileSpec{Size: 3})

	_, err := f.svc.CommitFile(ctx, "alice", req.ID, 1, 0, nil)
	require.NoError(t, err)
	appends, updates := f.seq.appends.Load(), f.store.updates.Load()

	tests := []struct {
		name     string
		identity string
		file     int
		seq      int64
		data     []byte
		code     apperror.Code
	}{
		{"desynchronized", "alice", 0, 66, []byte("x"), apperror.RequestFileDesynchronized},
		{"already closed", "alice", 1, 1, []byte("x"), apperror.RequestFileAlreadyClosed},
		{"missing file", "alice", 2, 0, []byte("x"), apperror.RequestFileDoesNotExist},
		{"negative index", "alice", -1, 0, []byte("x"), apperror.RequestFileDoesNotExist},
		{"too large", "alice", 0, 0, make([]byte, 1025), apperror.RequestFileSizeExceeded},
		{"foreign identity", "mallory", 0, 0, []byte("x"), apperror.AccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SendChunk(ctx, tt.identity, req.ID, tt.file, tt.seq, tt.data)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperror.CodeOf(err))
		})
	}

	_, err = f.svc.SendChunk(ctx, "alice", "missing", 0, 0, []byte("x"))
	require.ErrorIs(t, err, apperror.ErrRequestDoesNotExist)

	assert.Equal(t, appends, f.seq.appends.Load())
	assert.Equal(t, updates, f.store.updates.Load())
}

func TestSendChunk_ReplayedSeqIsDesynchronized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.create(t, models.FileSpec{Size: 1024})

	_, err := f.svc.SendChunk(ctx, "alice", req.ID, 0, 0, make([]byte, 64))
	require.NoError(t, err)

	_, err = f.svc.SendChunk(ctx, "alice", req.ID, 0, 0, make([]byte, 64))
	require.ErrorIs(t, err, apperror.ErrRequestFileDesynchronized)

	stored, err := f.repo.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(64), stored.Files[0].Sent)
}

func TestSendChunk_SmallChunkIsAccepted(t *testing.T) {
	f := newFixture(t)
	req := f.create(t, models.FileSpec{Size: 1024})

	next, err := f.svc.SendChunk(context.Background(), "alice", req.ID, 0, 0, []byte("tiny"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), next.Files[0].Sent)
}

func TestSendChunk_RetriesVersionConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.create(t, models.FileSpec{Size: 1024})

	f.store.conflicts.Store(2)
	next, err := f.svc.SendChunk(ctx, "alice", req.ID, 0, 0, make([]byte, 64))
	require.NoError(t, err)
	assert.Equal(t, int64(1), next.Files[0].Seq)
	assert.Equal(t, int32(3), f.store.updates.Load())
}

func TestSendChunk_PersistentConflictIsDesynchronized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.create(t, models.FileSpec{Size: 1024})

	f.store.conflicts.Store(commitAttempts)
	_, err := f.svc.SendChunk(ctx, "alice", req.ID, 0, 0, make([]byte, 64))
	require.ErrorIs(t, err, apperror.ErrRequestFileDesynchronized)
	require.ErrorIs(t, err, store.ErrVersionConflict)

	stored, err := f.repo.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.Files[0].Seq)
}

func TestSendChunk_ConcurrentSameSeq(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.create(t, models.FileSpec{Size: 1024})

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		desynced  atomic.Int32
	)
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.SendChunk(ctx, "alice", req.ID, 0, 0, make([]byte, 64))
			switch {
			case err == nil:
				succeeded.Add(1)
			case apperror.CodeOf(err) == apperror.RequestFileDesynchronized:
				desynced.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(1), desynced.Load())

	stored, err := f.repo.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Files[0].Seq)
	assert.Equal(t, int64(64), stored.Files[0].Sent)
}

func TestCommitFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.create(t, models.FileSpec{Size: 4, ChecksumSize: 8}, models.FileSpec{Size: 4})

	_, err := f.svc.SendChunk(ctx, "alice", req.ID, 0, 0, []byte("data"))
	require.NoError(t, err)

	next, err := f.svc.CommitFile(ctx, "alice", req.ID, 0, 1, []byte("checksum"))
	require.NoError(t, err)

	assert.True(t, next.Files[0].Closed)
	assert.Equal(t, int64(8), next.Files[0].ChecksumSent)
	assert.Equal(t, int64(2), next.Files[0].Seq)
	assert.Equal(t, req.Files[1], next.Files[1])
	assert.False(t, next.IsReady())
	assert.Empty(t, f.notifier.events)

	_, err = f.svc.CommitFile(ctx, "alice", req.ID, 0, 2, []byte("again"))
	require.ErrorIs(t, err, apperror.ErrRequestFileAlreadyClosed)
}

func TestCommitFile_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.create(t, models.FileSpec{Size: 4, ChecksumSize: 2})

	_, err := f.svc.CommitFile(ctx, "alice", req.ID, 0, 0, []byte("long"))
	require.ErrorIs(t, err, apperror.ErrRequestFileSizeExceeded)

	_, err = f.svc.CommitFile(ctx, "alice", req.ID, 0, 3, []byte("ok"))
	require.ErrorIs(t, err, apperror.ErrRequestFileDesynchronized)

	assert.Zero(t, f.seq.closes.Load())
	assert.Zero(t, f.store.updates.Load())
}

func TestCommitFile_LastFileNotifiesReady(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.create(t, models.FileSpec{Size: 0}, models.FileSpec{Size: 0, RandomWrite: true})

	_, err := f.svc.CommitFile(ctx, "alice", req.ID, 0, 0, nil)
	require.NoError(t, err)
	next, err := f.svc.CommitFile(ctx, "alice", req.ID, 1, 0, nil)
	require.NoError(t, err)

	assert.True(t, next.IsReady())
	assert.Equal(t, int32(1), f.seq.creates.Load())
	assert.Equal(t, int32(1), f.rw.creates.Load())
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, models.RequestReadyEvent{RequestId: req.ID, Author: "alice"}, f.notifier.events[0])

	ready, err := f.svc.GetReadyRequest(ctx, "alice", req.ID)
	require.NoError(t, err)
	assert.Equal(t, next.Version, ready.Version)
}

func TestGetReadyRequest_NotReady(t *testing.T) {
	f := newFixture(t)
	req := f.create(t, models.FileSpec{Size: 10})

	_, err := f.svc.GetReadyRequest(context.Background(), "alice", req.ID)
	require.ErrorIs(t, err, apperror.ErrRequestNotReadyYet)
}

func uploadFile(t *testing.T, f *fixture, req *models.Request, i int, payload, checksum string) {
	t.Helper()
	ctx := context.Background()

	var seq int64
	if payload != "" {
		_, err := f.svc.SendChunk(ctx, "alice", req.ID, i, seq, []byte(payload))
		require.NoError(t, err)
		seq++
	}
	_, err := f.svc.CommitFile(ctx, "alice", req.ID, i, seq, []byte(checksum))
	require.NoError(t, err)
}

func TestPromoteAndFinalize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.create(t,
		models.FileSpec{Size: 5, ChecksumSize: 3},
		models.FileSpec{Size: 5, ChecksumSize: 3, RandomWrite: true},
	)

	uploadFile(t, f, req, 0, "first", "aaa")

	_, err := f.svc.PromoteFile(ctx, req.ID, 0, "")
	require.ErrorIs(t, err, apperror.ErrRequestNotReadyYet)

	uploadFile(t, f, req, 1, "other", "bbb")

	_, err = f.svc.PromoteFile(ctx, req.ID, 0, "")
	require.ErrorIs(t, err, apperror.ErrRequestNotProcessing)

	claimed, err := f.svc.MarkRequestAsProcessing(ctx, req.ID)
	require.NoError(t, err)
	assert.True(t, claimed.Processing)

	id, err := f.svc.PromoteFile(ctx, req.ID, 0, "archive-1")
	require.NoError(t, err)
	assert.Equal(t, "archive-1", id)

	ids, err := f.seq.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"archive-1"}, ids)

	data, err := f.seq.Read(ctx, "archive-1", storage.All())
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	_, err = f.svc.PromoteFile(ctx, req.ID, 5, "")
	require.ErrorIs(t, err, apperror.ErrRequestFileDoesNotExist)

	require.NoError(t, f.svc.FinalizeRequest(ctx, req.ID, []int{0}))

	_, err = f.repo.Get(ctx, req.ID)
	require.ErrorIs(t, err, apperror.ErrRequestDoesNotExist)

	// The unmoved file's temporary blob is gone.
	err = f.rw.Append(ctx, claimed.Files[1].ID, []byte("x"), 1)
	require.ErrorIs(t, err, storage.ErrBlobNotFound)

	require.NoError(t, f.svc.FinalizeRequest(ctx, req.ID, []int{0}))
}

func TestReadBlob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.create(t, models.FileSpec{Size: 11, ChecksumSize: 3})

	uploadFile(t, f, req, 0, "hello world", "sum")
	_, err := f.svc.MarkRequestAsProcessing(ctx, req.ID)
	require.NoError(t, err)
	_, err = f.svc.PromoteFile(ctx, req.ID, 0, "")
	require.NoError(t, err)

	data, err := f.svc.ReadBlob(ctx, req.ID, 0, storage.Slice(6, 5))
	require.NoError(t, err)
	assert.Equal(t, "world", string(data))

	sum, err := f.svc.ReadBlob(ctx, req.ID, 0, storage.ChecksumOnly())
	require.NoError(t, err)
	assert.Equal(t, "sum", string(sum))
}

func TestMarkRequestAsProcessing_Missing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.MarkRequestAsProcessing(context.Background(), "missing")
	require.ErrorIs(t, err, apperror.ErrRequestDoesNotExist)
}

func TestDestroyRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.create(t, models.FileSpec{Size: 1024})

	_, err := f.svc.SendChunk(ctx, "alice", req.ID, 0, 0, make([]byte, 64))
	require.NoError(t, err)

	require.ErrorIs(t, f.svc.DestroyRequest(ctx, "mallory", req.ID), apperror.ErrAccessDenied)
	require.NoError(t, f.svc.DestroyRequest(ctx, "alice", req.ID))

	_, err = f.svc.GetRequest(ctx, "alice", req.ID)
	require.ErrorIs(t, err, apperror.ErrRequestDoesNotExist)

	// Blobs are left for the caller.
	require.NoError(t, f.seq.Append(ctx, req.Files[0].ID, make([]byte, 64), 1))
}

func TestClearExpired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	idle := f.create(t, models.FileSpec{Size: 1024})
	_, err := f.svc.SendChunk(ctx, "alice", idle.ID, 0, 0, make([]byte, 64))
	require.NoError(t, err)

	claimed := f.create(t, models.FileSpec{Size: 0})
	uploadFile(t, f, claimed, 0, "", "")
	_, err = f.svc.MarkRequestAsProcessing(ctx, claimed.ID)
	require.NoError(t, err)

	f.advance(30 * time.Minute)
	active := f.create(t, models.FileSpec{Size: 10})

	f.advance(45 * time.Minute)
	n, err := f.svc.ClearExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = f.repo.Get(ctx, idle.ID)
	require.ErrorIs(t, err, apperror.ErrRequestDoesNotExist)
	_, err = f.repo.Get(ctx, claimed.ID)
	require.NoError(t, err)
	_, err = f.repo.Get(ctx, active.ID)
	require.NoError(t, err)

	err = f.seq.Append(ctx, idle.Files[0].ID, make([]byte, 64), 1)
	require.ErrorIs(t, err, storage.ErrBlobNotFound)

	n, err = f.svc.ClearExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSendChunk_ShortChunkIsAcceptedWithWarning(t *testing.T) {
	logs := newRecordingHandler()
	f := newLoggedFixture(t, logging.NewSlogLogger(slog.New(logs)))
	ctx := context.Background()
	const msg = "chunk smaller than configured chunk size"

	req := f.create(t, models.FileSpec{Size: 1024})
	updated, err := f.svc.SendChunk(ctx, "alice", req.ID, 0, 0, make([]byte, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(10), updated.Files[0].Sent)
	assert.Equal(t, int64(1), updated.Files[0].Seq)

	warnings := logs.find(slog.LevelWarn, msg)
	require.Len(t, warnings, 1)
	assert.Equal(t, string(apperror.RequestChunkTooSmall), warnings[0]["code"])
	assert.Equal(t, req.ID, warnings[0]["request_id"])

	// a short final chunk is the expected tail of a file
	tail := f.create(t, models.FileSpec{Size: 74})
	_, err = f.svc.SendChunk(ctx, "alice", tail.ID, 0, 0, make([]byte, 64))
	require.NoError(t, err)
	_, err = f.svc.SendChunk(ctx, "alice", tail.ID, 0, 1, make([]byte, 10))
	require.NoError(t, err)
	assert.Len(t, logs.find(slog.LevelWarn, msg), 1)
}

func TestClearExpired_PartialFailureStillDiscardsBlobs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.create(t, models.FileSpec{Size: 1024})
	second := f.create(t, models.FileSpec{Size: 1024})
	for _, req := range []*models.Request{first, second} {
		_, err := f.svc.SendChunk(ctx, "alice", req.ID, 0, 0, make([]byte, 64))
		require.NoError(t, err)
	}

	f.advance(2 * time.Hour)
	throttled := errors.New("scan page 2 throttled")
	f.store.expireErr = throttled

	n, err := f.svc.ClearExpired(ctx)
	require.ErrorIs(t, err, throttled)
	assert.Equal(t, 2, n)

	for _, req := range []*models.Request{first, second} {
		_, err := f.repo.Get(ctx, req.ID)
		require.ErrorIs(t, err, apperror.ErrRequestDoesNotExist)

		err = f.seq.Append(ctx, req.Files[0].ID, make([]byte, 64), 1)
		require.ErrorIs(t, err, storage.ErrBlobNotFound)
	}
}

func TestClearExpired_RejectFailureIsReported(t *testing.T) {
	logs := newRecordingHandler()
	f := newLoggedFixture(t, logging.NewSlogLogger(slog.New(logs)))
	ctx := context.Background()

	stuck := f.create(t, models.FileSpec{Size: 1024})
	other := f.create(t, models.FileSpec{Size: 1024})
	for _, req := range []*models.Request{stuck, other} {
		_, err := f.svc.SendChunk(ctx, "alice", req.ID, 0, 0, make([]byte, 64))
		require.NoError(t, err)
	}
	f.seq.rejectFailures = map[string]error{stuck.Files[0].ID: errors.New("device busy")}

	f.advance(2 * time.Hour)
	n, err := f.svc.ClearExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, int32(2), f.seq.rejects.Load())

	_, err = f.repo.Get(ctx, stuck.ID)
	require.ErrorIs(t, err, apperror.ErrRequestDoesNotExist)

	err = f.seq.Append(ctx, other.Files[0].ID, make([]byte, 64), 1)
	require.ErrorIs(t, err, storage.ErrBlobNotFound)

	reports := logs.find(slog.LevelWarn, "storage cleanup failed")
	require.Len(t, reports, 1)
	assert.Equal(t, "reject", reports[0]["op"])
	assert.Equal(t, stuck.Files[0].ID, reports[0]["blob_id"])
	assert.Equal(t, "device busy", reports[0]["error"])
}
