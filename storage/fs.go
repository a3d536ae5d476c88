package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Yulian302/lfusys-services-requests/logging"
	"github.com/google/uuid"
)

const (
	fsCurrentFile  = "CURRENT"
	fsTmpDir       = "tmp"
	fsBlobsDir     = "blobs"
	fsDataFile     = "data"
	fsChecksumFile = "checksum"
	fsStateFile    = "state.json"

	fsLockStripes = 64
)

// blobState is kept next to a temporary blob. Offsets[n] is where the write
// with seq n started, so a repeated write at the last seq lands on the same
// bytes.
type blobState struct {
	Offsets   []int64 `json:"offsets"`
	Closed    bool    `json:"closed"`
	ClosedSeq int64   `json:"closed_seq"`
}

// FSEngine stores blobs on the local filesystem and supports random writes.
//
// Layout: {root}/CURRENT names the active generation; temporary blobs live in
// {root}/{gen}/tmp/{id}, committed ones in {root}/{gen}/blobs/{id}.
type FSEngine struct {
	root string

	genMu sync.RWMutex
	gen   string

	locks [fsLockStripes]sync.Mutex

	sink   CleanupSink
	logger logging.Logger
}

func NewFSEngine(root string, sink CleanupSink, l logging.Logger) (*FSEngine, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	e := &FSEngine{
		root:   root,
		sink:   sink,
		logger: l.With("component", "storage.fs"),
	}

	current, err := os.ReadFile(filepath.Join(root, fsCurrentFile))
	switch {
	case err == nil && strings.TrimSpace(string(current)) != "":
		e.gen = strings.TrimSpace(string(current))
		if err := e.ensureGenDirs(e.gen); err != nil {
			return nil, err
		}
	case err == nil || errors.Is(err, fs.ErrNotExist):
		if err := e.SwitchToFreshStorage(context.Background()); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("read current generation: %w", err)
	}

	return e, nil
}

func (e *FSEngine) Name() string {
	return "fs"
}

func (e *FSEngine) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &e.locks[h.Sum32()%fsLockStripes]
}

func (e *FSEngine) genDir() string {
	e.genMu.RLock()
	defer e.genMu.RUnlock()
	return filepath.Join(e.root, e.gen)
}

func (e *FSEngine) tmpPath(id string, parts ...string) string {
	return filepath.Join(append([]string{e.genDir(), fsTmpDir, id}, parts...)...)
}

func (e *FSEngine) blobPath(id string, parts ...string) string {
	return filepath.Join(append([]string{e.genDir(), fsBlobsDir, id}, parts...)...)
}

func (e *FSEngine) ensureGenDirs(gen string) error {
	for _, d := range []string{fsTmpDir, fsBlobsDir} {
		if err := os.MkdirAll(filepath.Join(e.root, gen, d), 0o755); err != nil {
			return fmt.Errorf("create %s dir: %w", d, err)
		}
	}
	return nil
}

func validID(id string) error {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return fmt.Errorf("invalid blob id %q", id)
	}
	return nil
}

func (e *FSEngine) loadState(id string) (*blobState, error) {
	raw, err := os.ReadFile(e.tmpPath(id, fsStateFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	var st blobState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode state of %s: %w", id, err)
	}
	return &st, nil
}

func (e *FSEngine) saveState(id string, st *blobState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return writeFileAtomic(e.tmpPath(id, fsStateFile), raw)
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (e *FSEngine) Create(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	mu := e.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	// a repeated create must not wipe chunks a concurrent writer already stored
	if _, err := os.Stat(e.tmpPath(id, fsStateFile)); err == nil {
		return nil
	}

	if err := os.MkdirAll(e.tmpPath(id), 0o755); err != nil {
		return fmt.Errorf("create blob %s: %w", id, err)
	}
	for _, name := range []string{fsDataFile, fsChecksumFile} {
		if err := os.WriteFile(e.tmpPath(id, name), nil, 0o644); err != nil {
			return fmt.Errorf("create blob %s: %w", id, err)
		}
	}
	return e.saveState(id, &blobState{})
}

// Append writes data as the seq-th chunk. Repeating the last accepted seq
// rewrites that chunk in place.
func (e *FSEngine) Append(ctx context.Context, id string, data []byte, seq int64) error {
	if err := validID(id); err != nil {
		return err
	}
	mu := e.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	if seq < 0 {
		return fmt.Errorf("%w: negative seq %d", ErrSeqOutOfOrder, seq)
	}

	st, err := e.loadState(id)
	if err != nil {
		return err
	}
	if st.Closed {
		return fmt.Errorf("%w: %s", ErrBlobClosed, id)
	}

	n := int64(len(st.Offsets))
	var op RandomWriteOperation
	switch seq {
	case n:
		size, err := fileSize(e.tmpPath(id, fsDataFile))
		if err != nil {
			return err
		}
		st.Offsets = append(st.Offsets, size)
		op = RandomWriteOperation{Target: TargetData, Pos: EndOfBlob, Data: data}
	case n - 1:
		e.logger.Debug("rewriting repeated chunk", "blob_id", id, "seq", seq)
		op = RandomWriteOperation{Target: TargetData, Pos: st.Offsets[seq], Data: data, Truncate: true}
	default:
		return fmt.Errorf("%w: blob %s has %d chunks, got seq %d", ErrSeqOutOfOrder, id, n, seq)
	}

	wc, err := e.prepareLocked(id, st, []RandomWriteOperation{op})
	if err != nil {
		return err
	}
	if _, err := e.commitLocked(wc); err != nil {
		return err
	}
	return e.saveState(id, st)
}

func (e *FSEngine) SetChecksumAndClose(ctx context.Context, id string, checksum []byte, seq int64) error {
	if err := validID(id); err != nil {
		return err
	}
	mu := e.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	st, err := e.loadState(id)
	if err != nil {
		return err
	}
	if st.Closed && st.ClosedSeq != seq {
		return fmt.Errorf("%w: %s", ErrBlobClosed, id)
	}

	wc := &RandomWriteContext{
		ID:         id,
		Operations: []RandomWriteOperation{{Target: TargetChecksum, Pos: 0, Data: checksum, Truncate: true}},
	}
	if _, err := e.commitLocked(wc); err != nil {
		return err
	}

	st.Closed = true
	st.ClosedSeq = seq
	return e.saveState(id, st)
}

func (e *FSEngine) Commit(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	mu := e.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	st, err := e.loadState(id)
	if errors.Is(err, ErrBlobNotFound) {
		// already promoted
		if _, statErr := os.Stat(e.blobPath(id)); statErr == nil {
			return nil
		}
		return err
	}
	if err != nil {
		return err
	}
	if !st.Closed {
		return fmt.Errorf("%w: %s", ErrBlobNotClosed, id)
	}

	if err := os.RemoveAll(e.blobPath(id)); err != nil {
		return fmt.Errorf("commit blob %s: %w", id, err)
	}
	if err := os.Rename(e.tmpPath(id), e.blobPath(id)); err != nil {
		return fmt.Errorf("commit blob %s: %w", id, err)
	}
	if err := os.Remove(e.blobPath(id, fsStateFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		e.logger.Warn("failed to remove blob state", "blob_id", id, "error", err)
	}
	return nil
}

func (e *FSEngine) Reject(ctx context.Context, id string, seq int64) {
	if err := validID(id); err != nil {
		e.sink.Report(ctx, "reject", id, err)
		return
	}
	mu := e.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	if err := os.RemoveAll(e.tmpPath(id)); err != nil {
		e.sink.Report(ctx, "reject", id, err)
	}
}

func (e *FSEngine) Read(ctx context.Context, id string, r ReadRange) ([]byte, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	if err := r.validate(); err != nil {
		return nil, err
	}

	name := fsDataFile
	if r.Kind == RangeChecksum {
		name = fsChecksumFile
	}

	f, err := os.Open(e.blobPath(id, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if r.Kind != RangeSlice {
		return io.ReadAll(f)
	}

	return io.ReadAll(io.NewSectionReader(f, r.Offset, r.Length))
}

func (e *FSEngine) Copy(ctx context.Context, srcID, dstID string) error {
	for _, id := range []string{srcID, dstID} {
		if err := validID(id); err != nil {
			return err
		}
	}
	if _, err := os.Stat(e.blobPath(srcID)); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrBlobNotFound, srcID)
	}

	staging := e.blobPath("." + dstID + "-" + uuid.NewString())
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return err
	}
	defer os.RemoveAll(staging)

	for _, name := range []string{fsDataFile, fsChecksumFile} {
		if err := copyFile(e.blobPath(srcID, name), filepath.Join(staging, name)); err != nil {
			return fmt.Errorf("copy %s to %s: %w", srcID, dstID, err)
		}
	}

	mu := e.lockFor(dstID)
	mu.Lock()
	defer mu.Unlock()

	if err := os.RemoveAll(e.blobPath(dstID)); err != nil {
		return err
	}
	return os.Rename(staging, e.blobPath(dstID))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (e *FSEngine) Delete(ctx context.Context, id string) {
	if err := validID(id); err != nil {
		e.sink.Report(ctx, "delete", id, err)
		return
	}
	mu := e.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	if err := os.RemoveAll(e.blobPath(id)); err != nil {
		e.sink.Report(ctx, "delete", id, err)
	}
}

// List returns the ids of committed blobs in the active generation.
func (e *FSEngine) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(e.genDir(), fsBlobsDir))
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(entries))
	for _, ent := range entries {
		if ent.IsDir() && !strings.HasPrefix(ent.Name(), ".") {
			ids = append(ids, ent.Name())
		}
	}
	return ids, nil
}

// ClearStorage removes every blob, temporary or committed, of the active
// generation.
func (e *FSEngine) ClearStorage(ctx context.Context) error {
	e.genMu.Lock()
	defer e.genMu.Unlock()

	dir := filepath.Join(e.root, e.gen)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clear storage: %w", err)
	}
	e.logger.Info("storage cleared", "generation", e.gen)
	return e.ensureGenDirs(e.gen)
}

// SwitchToFreshStorage starts a new empty generation. Blobs of the previous
// generation stay on disk but are no longer visible.
func (e *FSEngine) SwitchToFreshStorage(ctx context.Context) error {
	gen := "gen-" + uuid.NewString()
	if err := e.ensureGenDirs(gen); err != nil {
		return err
	}
	if err := writeFileAtomic(filepath.Join(e.root, fsCurrentFile), []byte(gen+"\n")); err != nil {
		return fmt.Errorf("switch generation: %w", err)
	}

	e.genMu.Lock()
	prev := e.gen
	e.gen = gen
	e.genMu.Unlock()

	e.logger.Info("switched to fresh storage", "generation", gen, "previous", prev)
	return nil
}

func (e *FSEngine) RandomWritePrepare(ctx context.Context, id string, ops []RandomWriteOperation) (*RandomWriteContext, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	mu := e.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	st, err := e.loadState(id)
	if err != nil {
		return nil, err
	}
	return e.prepareLocked(id, st, ops)
}

func (e *FSEngine) prepareLocked(id string, st *blobState, ops []RandomWriteOperation) (*RandomWriteContext, error) {
	if st.Closed {
		return nil, fmt.Errorf("%w: %s", ErrBlobClosed, id)
	}

	dataSize, err := fileSize(e.tmpPath(id, fsDataFile))
	if err != nil {
		return nil, err
	}
	checksumSize, err := fileSize(e.tmpPath(id, fsChecksumFile))
	if err != nil {
		return nil, err
	}

	projected := map[WriteTarget]int64{TargetData: dataSize, TargetChecksum: checksumSize}
	for i, op := range ops {
		if op.Target != TargetData && op.Target != TargetChecksum {
			return nil, fmt.Errorf("operation %d: unknown target %d", i, op.Target)
		}
		size := projected[op.Target]

		pos := op.Pos
		if pos == EndOfBlob {
			pos = size
		}
		if pos < 0 || pos > size {
			return nil, fmt.Errorf("operation %d: position %d outside blob of size %d", i, op.Pos, size)
		}

		end := pos + int64(len(op.Data))
		if op.Truncate || end > size {
			projected[op.Target] = end
		}
	}

	return &RandomWriteContext{
		ID:           id,
		Operations:   ops,
		fileSize:     dataSize,
		checksumSize: checksumSize,
	}, nil
}

func (e *FSEngine) RandomWriteCommit(ctx context.Context, wc *RandomWriteContext) (*RandomWriteResult, error) {
	if err := validID(wc.ID); err != nil {
		return nil, err
	}
	mu := e.lockFor(wc.ID)
	mu.Lock()
	defer mu.Unlock()

	st, err := e.loadState(wc.ID)
	if err != nil {
		return nil, err
	}
	if st.Closed {
		return nil, fmt.Errorf("%w: %s", ErrBlobClosed, wc.ID)
	}

	dataSize, err := fileSize(e.tmpPath(wc.ID, fsDataFile))
	if err != nil {
		return nil, err
	}
	checksumSize, err := fileSize(e.tmpPath(wc.ID, fsChecksumFile))
	if err != nil {
		return nil, err
	}
	if dataSize != wc.fileSize || checksumSize != wc.checksumSize {
		return nil, fmt.Errorf("blob %s changed since the write was prepared", wc.ID)
	}
	return e.commitLocked(wc)
}

func (e *FSEngine) commitLocked(wc *RandomWriteContext) (*RandomWriteResult, error) {
	files := map[WriteTarget]*os.File{}
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	for _, op := range wc.Operations {
		f, ok := files[op.Target]
		if !ok {
			name := fsDataFile
			if op.Target == TargetChecksum {
				name = fsChecksumFile
			}
			var err error
			f, err = os.OpenFile(e.tmpPath(wc.ID, name), os.O_RDWR, 0o644)
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, wc.ID)
			}
			if err != nil {
				return nil, err
			}
			files[op.Target] = f
		}

		pos := op.Pos
		if pos == EndOfBlob {
			st, err := f.Stat()
			if err != nil {
				return nil, err
			}
			pos = st.Size()
		}

		if _, err := f.WriteAt(op.Data, pos); err != nil {
			return nil, fmt.Errorf("write blob %s: %w", wc.ID, err)
		}
		if op.Truncate {
			if err := f.Truncate(pos + int64(len(op.Data))); err != nil {
				return nil, fmt.Errorf("truncate blob %s: %w", wc.ID, err)
			}
		}
	}

	for _, f := range files {
		if err := f.Sync(); err != nil {
			return nil, err
		}
	}

	dataSize, err := fileSize(e.tmpPath(wc.ID, fsDataFile))
	if err != nil {
		return nil, err
	}
	checksumSize, err := fileSize(e.tmpPath(wc.ID, fsChecksumFile))
	if err != nil {
		return nil, err
	}
	return &RandomWriteResult{NewFileSize: dataSize, NewChecksumSize: checksumSize}, nil
}

func fileSize(path string) (int64, error) {
	st, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("%w: %s", ErrBlobNotFound, filepath.Base(filepath.Dir(path)))
	}
	if err != nil {
		return 0, err
	}
	return st.Size(), nil
}
