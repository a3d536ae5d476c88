package storage

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/Yulian302/lfusys-services-requests/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
)

const (
	currentGenerationKey = "CURRENT"
	chunkKeyPrefix       = "chunk_"
	checksumKey          = "checksum"
	dataKey              = "data"

	// S3 rejects multipart parts below 5MiB except the last one.
	minMultipartPartSize = 5 * 1024 * 1024
)

// S3EngineImpl is a sequential engine. Every chunk is its own object named
// after its zero-padded seq, so a repeated write at the same seq replaces the
// earlier object. Chunks are merged into one object on Commit.
type S3EngineImpl struct {
	client     *s3.Client
	bucketName string

	genMu sync.RWMutex
	gen   string

	sink   CleanupSink
	logger logging.Logger
}

func NewS3EngineImpl(ctx context.Context, client *s3.Client, bucketName string, sink CleanupSink, l logging.Logger) (*S3EngineImpl, error) {
	s := &S3EngineImpl{
		client:     client,
		bucketName: bucketName,
		sink:       sink,
		logger:     l.With("component", "storage.s3", "bucket", bucketName),
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(currentGenerationKey),
	})
	if isNotFound(err) {
		if err := s.SwitchToFreshStorage(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read current generation: %w", err)
	}
	defer out.Body.Close()

	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read current generation: %w", err)
	}
	s.gen = strings.TrimSpace(string(raw))

	return s, nil
}

func (s *S3EngineImpl) Name() string {
	return "s3"
}

func (s *S3EngineImpl) generation() string {
	s.genMu.RLock()
	defer s.genMu.RUnlock()
	return s.gen
}

func (s *S3EngineImpl) tmpPrefix(id string) string {
	return fmt.Sprintf("%s/tmp/%s/", s.generation(), id)
}

func (s *S3EngineImpl) blobPrefix(id string) string {
	return fmt.Sprintf("%s/blobs/%s/", s.generation(), id)
}

func chunkKey(prefix string, seq int64) string {
	return fmt.Sprintf("%s%s%08d", prefix, chunkKeyPrefix, seq)
}

// Create is a no-op: a blob exists as soon as its first chunk is written.
func (s *S3EngineImpl) Create(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}
	return nil
}

func (s *S3EngineImpl) Append(ctx context.Context, id string, data []byte, seq int64) error {
	if seq < 0 {
		return fmt.Errorf("%w: negative seq %d", ErrSeqOutOfOrder, seq)
	}

	prefix := s.tmpPrefix(id)
	closed, err := s.fileExists(ctx, prefix+checksumKey)
	if err != nil {
		return err
	}
	if closed {
		return fmt.Errorf("%w: %s", ErrBlobClosed, id)
	}

	key := chunkKey(prefix, seq)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		s.logger.Error("failed to put chunk", "blob_id", id, "seq", seq, "error", err)
		return fmt.Errorf("failed to put chunk: %w", err)
	}

	s.logger.Debug("chunk stored", "blob_id", id, "seq", seq, "size", len(data))
	return nil
}

// SetChecksumAndClose stores the checksum object; its presence marks the blob
// closed.
func (s *S3EngineImpl) SetChecksumAndClose(ctx context.Context, id string, checksum []byte, seq int64) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucketName),
		Key:           aws.String(s.tmpPrefix(id) + checksumKey),
		Body:          bytes.NewReader(checksum),
		ContentLength: aws.Int64(int64(len(checksum))),
		Metadata:      map[string]string{"seq": strconv.FormatInt(seq, 10)},
	})
	if err != nil {
		s.logger.Error("failed to put checksum", "blob_id", id, "error", err)
		return fmt.Errorf("failed to put checksum: %w", err)
	}
	return nil
}

func (s *S3EngineImpl) Commit(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}

	tmpPrefix := s.tmpPrefix(id)
	finalPrefix := s.blobPrefix(id)
	finalKey := finalPrefix + dataKey

	s.logger.Info("starting blob commit", "blob_id", id, "final_key", finalKey)

	closed, err := s.fileExists(ctx, tmpPrefix+checksumKey)
	if err != nil {
		return err
	}
	if !closed {
		committed, err := s.fileExists(ctx, finalPrefix+checksumKey)
		if err != nil {
			return err
		}
		if committed {
			s.logger.Info("blob already committed, skipping", "blob_id", id)
			return nil
		}

		chunks, err := s.listChunks(ctx, tmpPrefix)
		if err != nil {
			return err
		}
		if len(chunks) == 0 {
			return fmt.Errorf("%w: %s", ErrBlobNotFound, id)
		}
		return fmt.Errorf("%w: %s", ErrBlobNotClosed, id)
	}

	chunks, err := s.listChunks(ctx, tmpPrefix)
	if err != nil {
		s.logger.Error("failed to list chunks", "blob_id", id, "prefix", tmpPrefix, "error", err)
		return fmt.Errorf("failed to list chunks: %w", err)
	}

	var totalSize int64
	for _, c := range chunks {
		totalSize += aws.ToInt64(c.Size)
	}

	s.logger.Info("blob commit details", "blob_id", id, "chunk_count", len(chunks), "total_size", totalSize)

	switch {
	case len(chunks) == 0:
		err = s.putEmpty(ctx, finalKey)
	case len(chunks) == 1:
		err = s.copyObject(ctx, *chunks[0].Key, finalKey)
	case multipartEligible(chunks):
		if abortErr := s.abortStaleMultipartUploads(ctx, finalKey); abortErr != nil {
			s.logger.Warn("failed to abort stale multipart uploads", "final_key", finalKey, "error", abortErr)
		}
		err = s.multipartCopy(ctx, chunks, finalKey)
	default:
		err = s.streamMergeAndPut(ctx, chunks, finalKey, totalSize)
	}
	if err != nil {
		return err
	}

	// the checksum object goes last; its presence marks the blob committed
	if err := s.copyObject(ctx, tmpPrefix+checksumKey, finalPrefix+checksumKey); err != nil {
		return err
	}

	if err := s.deletePrefix(ctx, tmpPrefix); err != nil {
		s.logger.Error("failed to delete chunks after commit", "prefix", tmpPrefix, "error", err)
		// the blob is committed; leftovers are removed by a later Reject
	}

	return nil
}

func multipartEligible(chunks []types.Object) bool {
	for _, c := range chunks[:len(chunks)-1] {
		if aws.ToInt64(c.Size) < minMultipartPartSize {
			return false
		}
	}
	return true
}

func (s *S3EngineImpl) Reject(ctx context.Context, id string, seq int64) {
	if id == "" {
		s.sink.Report(ctx, "reject", id, fmt.Errorf("id cannot be empty"))
		return
	}
	if err := s.deletePrefix(ctx, s.tmpPrefix(id)); err != nil {
		s.sink.Report(ctx, "reject", id, err)
	}
}

func (s *S3EngineImpl) Read(ctx context.Context, id string, r ReadRange) ([]byte, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	key := s.blobPrefix(id) + dataKey
	if r.Kind == RangeChecksum {
		key = s.blobPrefix(id) + checksumKey
	}

	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}
	if r.Kind == RangeSlice {
		if r.Length == 0 {
			return []byte{}, nil
		}
		input.Range = aws.String(fmt.Sprintf("bytes=%d-%d", r.Offset, r.Offset+r.Length-1))
	}

	out, err := s.client.GetObject(ctx, input)
	if isNotFound(err) {
		return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, id)
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "InvalidRange" {
		return []byte{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func (s *S3EngineImpl) Copy(ctx context.Context, srcID, dstID string) error {
	src := s.blobPrefix(srcID)
	dst := s.blobPrefix(dstID)

	exists, err := s.fileExists(ctx, src+checksumKey)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrBlobNotFound, srcID)
	}

	if err := s.copyObject(ctx, src+dataKey, dst+dataKey); err != nil {
		return err
	}
	return s.copyObject(ctx, src+checksumKey, dst+checksumKey)
}

func (s *S3EngineImpl) Delete(ctx context.Context, id string) {
	if id == "" {
		s.sink.Report(ctx, "delete", id, fmt.Errorf("id cannot be empty"))
		return
	}
	if err := s.deletePrefix(ctx, s.blobPrefix(id)); err != nil {
		s.sink.Report(ctx, "delete", id, err)
	}
}

func (s *S3EngineImpl) List(ctx context.Context) ([]string, error) {
	prefix := s.generation() + "/blobs/"

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucketName),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	var ids []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list blobs: %w", err)
		}
		for _, p := range page.CommonPrefixes {
			id := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(p.Prefix), prefix), "/")
			if id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

func (s *S3EngineImpl) ClearStorage(ctx context.Context) error {
	gen := s.generation()
	if err := s.deletePrefix(ctx, gen+"/"); err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	s.logger.Info("storage cleared", "generation", gen)
	return nil
}

// SwitchToFreshStorage points CURRENT at a new, empty key namespace. Objects
// of the previous generation are left in the bucket.
func (s *S3EngineImpl) SwitchToFreshStorage(ctx context.Context) error {
	gen := "gen-" + uuid.NewString()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(currentGenerationKey),
		Body:   strings.NewReader(gen),
	})
	if err != nil {
		return fmt.Errorf("failed to switch generation: %w", err)
	}

	s.genMu.Lock()
	prev := s.gen
	s.gen = gen
	s.genMu.Unlock()

	s.logger.Info("switched to fresh storage", "generation", gen, "previous", prev)
	return nil
}

func (s *S3EngineImpl) RandomWritePrepare(ctx context.Context, id string, ops []RandomWriteOperation) (*RandomWriteContext, error) {
	return nil, ErrRandomWriteUnsupported
}

func (s *S3EngineImpl) RandomWriteCommit(ctx context.Context, wc *RandomWriteContext) (*RandomWriteResult, error) {
	return nil, ErrRandomWriteUnsupported
}

func (s *S3EngineImpl) putEmpty(ctx context.Context, key string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(nil),
		ContentLength: aws.Int64(0),
	})
	if err != nil {
		return fmt.Errorf("failed to put empty object: %w", err)
	}
	return nil
}

func (s *S3EngineImpl) copyObject(ctx context.Context, srcKey, dstKey string) error {
	src := s.bucketName + "/" + srcKey

	_, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucketName),
		Key:        aws.String(dstKey),
		CopySource: aws.String(src),
	})
	if err != nil {
		s.logger.Error("failed to copy object", "src", src, "dest", dstKey, "error", err)
		return fmt.Errorf("failed to copy object: %w", err)
	}

	s.logger.Debug("copied object", "src", src, "dest", dstKey)
	return nil
}

// multipartCopy assembles finalKey from the chunk objects server side. The
// upload is aborted on any failure so no parts are left billed.
func (s *S3EngineImpl) multipartCopy(ctx context.Context, chunks []types.Object, finalKey string) (err error) {
	created, err := s.client.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(finalKey),
	})
	if err != nil {
		return fmt.Errorf("failed to create multipart upload: %w", err)
	}
	uploadID := created.UploadId

	defer func() {
		if err == nil {
			return
		}
		_, abortErr := s.client.AbortMultipartUpload(context.WithoutCancel(ctx), &s3.AbortMultipartUploadInput{
			Bucket:   aws.String(s.bucketName),
			Key:      aws.String(finalKey),
			UploadId: uploadID,
		})
		if abortErr != nil {
			s.logger.Error("failed to abort multipart upload", "final_key", finalKey, "error", abortErr)
		}
	}()

	parts := make([]types.CompletedPart, len(chunks))
	for i, obj := range chunks {
		part := aws.Int32(int32(i + 1))
		out, err := s.client.UploadPartCopy(ctx, &s3.UploadPartCopyInput{
			Bucket:     aws.String(s.bucketName),
			Key:        aws.String(finalKey),
			UploadId:   uploadID,
			PartNumber: part,
			CopySource: aws.String(s.bucketName + "/" + aws.ToString(obj.Key)),
		})
		if err != nil {
			return fmt.Errorf("failed to copy part %d: %w", i+1, err)
		}
		parts[i] = types.CompletedPart{ETag: out.CopyPartResult.ETag, PartNumber: part}
	}

	_, err = s.client.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:          aws.String(s.bucketName),
		Key:             aws.String(finalKey),
		UploadId:        uploadID,
		MultipartUpload: &types.CompletedMultipartUpload{Parts: parts},
	})
	if err != nil {
		return fmt.Errorf("failed to complete multipart upload: %w", err)
	}

	s.logger.Debug("merged chunks with multipart copy", "final_key", finalKey, "parts", len(parts))
	return nil
}

// abortStaleMultipartUploads cancels uploads left behind by an interrupted
// Commit of the same blob.
func (s *S3EngineImpl) abortStaleMultipartUploads(ctx context.Context, key string) error {
	out, err := s.client.ListMultipartUploads(ctx, &s3.ListMultipartUploadsInput{
		Bucket: aws.String(s.bucketName),
		Prefix: aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to list multipart uploads: %w", err)
	}

	var errs []error
	for _, upload := range out.Uploads {
		_, err := s.client.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
			Bucket:   aws.String(s.bucketName),
			Key:      upload.Key,
			UploadId: upload.UploadId,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("abort %s: %w", aws.ToString(upload.UploadId), err))
		}
	}
	return errors.Join(errs...)
}

// streamMergeAndPut concatenates chunks too small for multipart copy into a
// single PutObject.
func (s *S3EngineImpl) streamMergeAndPut(ctx context.Context, chunks []types.Object, finalKey string, totalSize int64) error {
	pr, pw := io.Pipe()

	go func() {
		for _, obj := range chunks {
			out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
				Bucket: aws.String(s.bucketName),
				Key:    obj.Key,
			})
			if err != nil {
				pw.CloseWithError(fmt.Errorf("failed to get chunk %s: %w", aws.ToString(obj.Key), err))
				return
			}

			_, err = io.Copy(pw, out.Body)
			out.Body.Close()
			if err != nil {
				pw.CloseWithError(fmt.Errorf("failed to read chunk %s: %w", aws.ToString(obj.Key), err))
				return
			}
		}
		pw.Close()
	}()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucketName),
		Key:           aws.String(finalKey),
		Body:          pr,
		ContentLength: aws.Int64(totalSize),
	})
	if err != nil {
		pr.CloseWithError(err)
		return fmt.Errorf("failed to put merged object: %w", err)
	}

	s.logger.Debug("merged chunks with stream copy", "final_key", finalKey, "chunks", len(chunks))
	return nil
}

// listChunks returns the chunk objects under prefix ordered by seq. Keys are
// zero padded, so a shorter key always has the smaller seq.
func (s *S3EngineImpl) listChunks(ctx context.Context, prefix string) ([]types.Object, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucketName),
		Prefix: aws.String(prefix + chunkKeyPrefix),
	})

	var objects []types.Object
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list chunks: %w", err)
		}
		objects = append(objects, page.Contents...)
	}

	slices.SortFunc(objects, func(a, b types.Object) int {
		return compareChunkKeys(aws.ToString(a.Key), aws.ToString(b.Key))
	})
	return objects, nil
}

// compareChunkKeys orders chunk keys of one blob by seq.
func compareChunkKeys(a, b string) int {
	return cmp.Or(cmp.Compare(len(a), len(b)), strings.Compare(a, b))
}

func isNotFound(err error) bool {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NotFound" || apiErr.ErrorCode() == "NoSuchKey")
}

func (s *S3EngineImpl) fileExists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	switch {
	case err == nil:
		return true, nil
	case isNotFound(err):
		return false, nil
	default:
		return false, fmt.Errorf("failed to head %s: %w", key, err)
	}
}

// deletePrefix removes every object under prefix, one DeleteObjects call per
// listed page.
func (s *S3EngineImpl) deletePrefix(ctx context.Context, prefix string) error {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucketName),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", prefix, err)
		}
		if len(page.Contents) == 0 {
			continue
		}

		ids := make([]types.ObjectIdentifier, len(page.Contents))
		for i, obj := range page.Contents {
			ids[i] = types.ObjectIdentifier{Key: obj.Key}
		}

		out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucketName),
			Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return fmt.Errorf("failed to delete under %s: %w", prefix, err)
		}
		if len(out.Errors) > 0 {
			return fmt.Errorf("failed to delete %s: %s", aws.ToString(out.Errors[0].Key), aws.ToString(out.Errors[0].Message))
		}
	}
	return nil
}
