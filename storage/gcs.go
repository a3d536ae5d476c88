package storage

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	gcs "cloud.google.com/go/storage"
	"github.com/Yulian302/lfusys-services-requests/logging"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
)

// GCS accepts at most 32 sources per compose request.
const maxComposeSources = 32

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// GCSEngineImpl is a sequential engine on Google Cloud Storage. It uses the
// same key layout as S3EngineImpl and merges chunks with server-side compose.
type GCSEngineImpl struct {
	bucket *gcs.BucketHandle

	genMu sync.RWMutex
	gen   string

	sink   CleanupSink
	logger logging.Logger
}

func NewGCSEngineImpl(ctx context.Context, client *gcs.Client, bucketName string, sink CleanupSink, l logging.Logger) (*GCSEngineImpl, error) {
	g := &GCSEngineImpl{
		bucket: client.Bucket(bucketName),
		sink:   sink,
		logger: l.With("component", "storage.gcs", "bucket", bucketName),
	}

	r, err := g.bucket.Object(currentGenerationKey).NewReader(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		if err := g.SwitchToFreshStorage(ctx); err != nil {
			return nil, err
		}
		return g, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read current generation: %w", err)
	}
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read current generation: %w", err)
	}
	g.gen = strings.TrimSpace(string(raw))

	return g, nil
}

func (g *GCSEngineImpl) Name() string {
	return "gcs"
}

func (g *GCSEngineImpl) generation() string {
	g.genMu.RLock()
	defer g.genMu.RUnlock()
	return g.gen
}

func (g *GCSEngineImpl) tmpPrefix(id string) string {
	return fmt.Sprintf("%s/tmp/%s/", g.generation(), id)
}

func (g *GCSEngineImpl) blobPrefix(id string) string {
	return fmt.Sprintf("%s/blobs/%s/", g.generation(), id)
}

func (g *GCSEngineImpl) Create(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}
	return nil
}

// put uploads data in one request and lets GCS verify the CRC32C.
func (g *GCSEngineImpl) put(ctx context.Context, key string, data []byte, metadata map[string]string) error {
	w := g.bucket.Object(key).NewWriter(ctx)
	w.ChunkSize = 0
	w.ContentType = "application/octet-stream"
	w.CRC32C = crc32.Checksum(data, crc32cTable)
	w.SendCRC32C = true
	w.Metadata = metadata

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (g *GCSEngineImpl) exists(ctx context.Context, key string) (bool, error) {
	_, err := g.bucket.Object(key).Attrs(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat object %s: %w", key, err)
	}
	return true, nil
}

func (g *GCSEngineImpl) Append(ctx context.Context, id string, data []byte, seq int64) error {
	if seq < 0 {
		return fmt.Errorf("%w: negative seq %d", ErrSeqOutOfOrder, seq)
	}

	prefix := g.tmpPrefix(id)
	closed, err := g.exists(ctx, prefix+checksumKey)
	if err != nil {
		return err
	}
	if closed {
		return fmt.Errorf("%w: %s", ErrBlobClosed, id)
	}

	if err := g.put(ctx, chunkKey(prefix, seq), data, nil); err != nil {
		g.logger.Error("failed to put chunk", "blob_id", id, "seq", seq, "error", err)
		return fmt.Errorf("put chunk: %w", err)
	}
	return nil
}

func (g *GCSEngineImpl) SetChecksumAndClose(ctx context.Context, id string, checksum []byte, seq int64) error {
	meta := map[string]string{"seq": strconv.FormatInt(seq, 10)}
	if err := g.put(ctx, g.tmpPrefix(id)+checksumKey, checksum, meta); err != nil {
		return fmt.Errorf("put checksum: %w", err)
	}
	return nil
}

func (g *GCSEngineImpl) listKeys(ctx context.Context, prefix string) ([]string, error) {
	it := g.bucket.Objects(ctx, &gcs.Query{Prefix: prefix})

	var keys []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		keys = append(keys, attrs.Name)
	}
	return keys, nil
}

func (g *GCSEngineImpl) Commit(ctx context.Context, id string) error {
	tmpPrefix := g.tmpPrefix(id)
	finalPrefix := g.blobPrefix(id)

	closed, err := g.exists(ctx, tmpPrefix+checksumKey)
	if err != nil {
		return err
	}
	if !closed {
		committed, err := g.exists(ctx, finalPrefix+checksumKey)
		if err != nil {
			return err
		}
		if committed {
			return nil
		}
		chunks, err := g.listKeys(ctx, tmpPrefix+chunkKeyPrefix)
		if err != nil {
			return err
		}
		if len(chunks) == 0 {
			return fmt.Errorf("%w: %s", ErrBlobNotFound, id)
		}
		return fmt.Errorf("%w: %s", ErrBlobNotClosed, id)
	}

	chunks, err := g.listKeys(ctx, tmpPrefix+chunkKeyPrefix)
	if err != nil {
		return err
	}
	slices.SortFunc(chunks, compareChunkKeys)

	g.logger.Info("committing blob", "blob_id", id, "chunk_count", len(chunks))

	dst := g.bucket.Object(finalPrefix + dataKey)
	if len(chunks) == 0 {
		if err := g.put(ctx, finalPrefix+dataKey, nil, nil); err != nil {
			return fmt.Errorf("put empty blob: %w", err)
		}
	} else if err := g.compose(ctx, dst, tmpPrefix, chunks); err != nil {
		return err
	}

	src := g.bucket.Object(tmpPrefix + checksumKey)
	if _, err := g.bucket.Object(finalPrefix + checksumKey).CopierFrom(src).Run(ctx); err != nil {
		return fmt.Errorf("copy checksum: %w", err)
	}

	if err := g.deletePrefix(ctx, tmpPrefix); err != nil {
		g.logger.Error("failed to delete chunks after commit", "prefix", tmpPrefix, "error", err)
	}
	return nil
}

// compose merges keys into dst. Batches of up to 32 sources are composed into
// intermediate objects until a single object remains.
func (g *GCSEngineImpl) compose(ctx context.Context, dst *gcs.ObjectHandle, tmpPrefix string, keys []string) error {
	round := 0
	for len(keys) > maxComposeSources {
		var next []string
		for i := 0; i < len(keys); i += maxComposeSources {
			end := min(i+maxComposeSources, len(keys))
			part := fmt.Sprintf("%scompose_%d_%06d", tmpPrefix, round, i/maxComposeSources)
			if err := g.composeInto(ctx, g.bucket.Object(part), keys[i:end]); err != nil {
				return err
			}
			next = append(next, part)
		}
		keys = next
		round++
	}
	return g.composeInto(ctx, dst, keys)
}

func (g *GCSEngineImpl) composeInto(ctx context.Context, dst *gcs.ObjectHandle, keys []string) error {
	srcs := make([]*gcs.ObjectHandle, len(keys))
	for i, k := range keys {
		srcs[i] = g.bucket.Object(k)
	}

	c := dst.ComposerFrom(srcs...)
	c.ContentType = "application/octet-stream"
	if _, err := c.Run(ctx); err != nil {
		return fmt.Errorf("compose %s: %w", dst.ObjectName(), err)
	}
	return nil
}

func (g *GCSEngineImpl) Reject(ctx context.Context, id string, seq int64) {
	if id == "" {
		g.sink.Report(ctx, "reject", id, fmt.Errorf("id cannot be empty"))
		return
	}
	if err := g.deletePrefix(ctx, g.tmpPrefix(id)); err != nil {
		g.sink.Report(ctx, "reject", id, err)
	}
}

func (g *GCSEngineImpl) Read(ctx context.Context, id string, r ReadRange) ([]byte, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	key := g.blobPrefix(id) + dataKey
	if r.Kind == RangeChecksum {
		key = g.blobPrefix(id) + checksumKey
	}

	var offset, length int64 = 0, -1
	if r.Kind == RangeSlice {
		if r.Length == 0 {
			return []byte{}, nil
		}
		offset, length = r.Offset, r.Length
	}

	rd, err := g.bucket.Object(key).NewRangeReader(ctx, offset, length)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	defer rd.Close()

	return io.ReadAll(rd)
}

func (g *GCSEngineImpl) Copy(ctx context.Context, srcID, dstID string) error {
	src := g.blobPrefix(srcID)
	dst := g.blobPrefix(dstID)

	ok, err := g.exists(ctx, src+checksumKey)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrBlobNotFound, srcID)
	}

	for _, name := range []string{dataKey, checksumKey} {
		if _, err := g.bucket.Object(dst + name).CopierFrom(g.bucket.Object(src + name)).Run(ctx); err != nil {
			return fmt.Errorf("copy %s: %w", name, err)
		}
	}
	return nil
}

func (g *GCSEngineImpl) Delete(ctx context.Context, id string) {
	if id == "" {
		g.sink.Report(ctx, "delete", id, fmt.Errorf("id cannot be empty"))
		return
	}
	if err := g.deletePrefix(ctx, g.blobPrefix(id)); err != nil {
		g.sink.Report(ctx, "delete", id, err)
	}
}

func (g *GCSEngineImpl) List(ctx context.Context) ([]string, error) {
	prefix := g.generation() + "/blobs/"
	it := g.bucket.Objects(ctx, &gcs.Query{Prefix: prefix, Delimiter: "/"})

	var ids []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list blobs: %w", err)
		}
		if attrs.Prefix == "" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(attrs.Prefix, prefix), "/"))
	}
	return ids, nil
}

func (g *GCSEngineImpl) ClearStorage(ctx context.Context) error {
	gen := g.generation()
	if err := g.deletePrefix(ctx, gen+"/"); err != nil {
		return fmt.Errorf("clear storage: %w", err)
	}
	g.logger.Info("storage cleared", "generation", gen)
	return nil
}

func (g *GCSEngineImpl) SwitchToFreshStorage(ctx context.Context) error {
	gen := "gen-" + uuid.NewString()
	if err := g.put(ctx, currentGenerationKey, []byte(gen), nil); err != nil {
		return fmt.Errorf("switch generation: %w", err)
	}

	g.genMu.Lock()
	prev := g.gen
	g.gen = gen
	g.genMu.Unlock()

	g.logger.Info("switched to fresh storage", "generation", gen, "previous", prev)
	return nil
}

func (g *GCSEngineImpl) RandomWritePrepare(ctx context.Context, id string, ops []RandomWriteOperation) (*RandomWriteContext, error) {
	return nil, ErrRandomWriteUnsupported
}

func (g *GCSEngineImpl) RandomWriteCommit(ctx context.Context, wc *RandomWriteContext) (*RandomWriteResult, error) {
	return nil, ErrRandomWriteUnsupported
}

func (g *GCSEngineImpl) deletePrefix(ctx context.Context, prefix string) error {
	if prefix == "" || prefix == "/" {
		return fmt.Errorf("prefix cannot be empty")
	}

	keys, err := g.listKeys(ctx, prefix)
	if err != nil {
		return err
	}

	var errs []error
	for _, k := range keys {
		err := g.bucket.Object(k).Delete(ctx)
		if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
			errs = append(errs, fmt.Errorf("delete %s: %w", k, err))
		}
	}
	return errors.Join(errs...)
}
