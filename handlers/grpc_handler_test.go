package handlers

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	pb "github.com/Yulian302/lfusys-services-requests/api/gen"
	"github.com/Yulian302/lfusys-services-requests/apperror"
	"github.com/Yulian302/lfusys-services-requests/logging"
	"github.com/Yulian302/lfusys-services-requests/models"
	"github.com/Yulian302/lfusys-services-requests/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
)

type mockRequestService struct {
	mock.Mock
}

func (m *mockRequestService) request(args mock.Arguments) (*models.Request, error) {
	req, _ := args.Get(0).(*models.Request)
	return req, args.Error(1)
}

func (m *mockRequestService) CreateRequest(ctx context.Context, identity string, files []models.FileSpec) (*models.Request, error) {
	return m.request(m.Called(ctx, identity, files))
}

func (m *mockRequestService) SendChunk(ctx context.Context, identity, requestId string, fileIndex int, seq int64, data []byte) (*models.Request, error) {
	return m.request(m.Called(ctx, identity, requestId, fileIndex, seq, data))
}

func (m *mockRequestService) CommitFile(ctx context.Context, identity, requestId string, fileIndex int, seq int64, checksum []byte) (*models.Request, error) {
	return m.request(m.Called(ctx, identity, requestId, fileIndex, seq, checksum))
}

func (m *mockRequestService) MarkRequestAsProcessing(ctx context.Context, requestId string) (*models.Request, error) {
	return m.request(m.Called(ctx, requestId))
}

func (m *mockRequestService) DestroyRequest(ctx context.Context, identity, requestId string) error {
	return m.Called(ctx, identity, requestId).Error(0)
}

func (m *mockRequestService) FinishRequest(ctx context.Context, req models.Request, movedFiles []int) error {
	return m.Called(ctx, req, movedFiles).Error(0)
}

func (m *mockRequestService) FinalizeRequest(ctx context.Context, requestId string, movedFiles []int) error {
	return m.Called(ctx, requestId, movedFiles).Error(0)
}

func (m *mockRequestService) ClearExpired(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockRequestService) GetRequest(ctx context.Context, identity, requestId string) (*models.Request, error) {
	return m.request(m.Called(ctx, identity, requestId))
}

func (m *mockRequestService) GetReadyRequest(ctx context.Context, identity, requestId string) (*models.Request, error) {
	return m.request(m.Called(ctx, identity, requestId))
}

func (m *mockRequestService) PromoteFile(ctx context.Context, requestId string, fileIndex int, targetId string) (string, error) {
	args := m.Called(ctx, requestId, fileIndex, targetId)
	return args.String(0), args.Error(1)
}

func (m *mockRequestService) ReadBlob(ctx context.Context, requestId string, fileIndex int, r storage.ReadRange) ([]byte, error) {
	args := m.Called(ctx, requestId, fileIndex, r)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func newTestClient(t *testing.T, svc *mockRequestService) pb.RequestsClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	pb.RegisterRequestsServer(server, NewGrpcHandler(svc, logging.NewNopLogger()))
	go server.Serve(lis)
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return pb.NewRequestsClient(conn)
}

func asUser(user string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), IdentityHeader, user)
}

func TestGrpc_CreateRequest(t *testing.T) {
	svc := &mockRequestService{}
	client := newTestClient(t, svc)

	files := []models.FileSpec{{Size: 1000}, {Size: 2000, ChecksumSize: 32, RandomWrite: true}}
	created := models.Request{
		ID:      "r1",
		Author:  "alice",
		Created: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Files:   []models.FileDefinition{{ID: "f0", Size: 1000}, {ID: "f1", Size: 2000, ChecksumSize: 32, SupportsRandomWrite: true}},
	}
	svc.On("CreateRequest", mock.Anything, "alice", files).Return(&created, nil).Once()

	out, err := client.CreateRequest(asUser("alice"), &pb.CreateRequestRequest{Files: []*pb.FileSpec{
		{Size: 1000},
		{Size: 2000, ChecksumSize: 32, RandomWrite: true},
	}})
	require.NoError(t, err)

	assert.Equal(t, "r1", out.GetId())
	assert.Equal(t, created.Created, out.GetCreated().AsTime())
	require.Len(t, out.GetFiles(), 2)
	assert.True(t, out.GetFiles()[1].GetSupportsRandomWrite())
	assert.False(t, out.GetReady())
	assert.Zero(t, out.GetProgress())
	svc.AssertExpectations(t)
}

func TestGrpc_MissingIdentity(t *testing.T) {
	svc := &mockRequestService{}
	client := newTestClient(t, svc)

	_, err := client.GetRequest(context.Background(), &pb.RequestRef{RequestId: "r1"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	svc.AssertNotCalled(t, "GetRequest", mock.Anything, mock.Anything, mock.Anything)
}

func TestGrpc_SendChunk(t *testing.T) {
	svc := &mockRequestService{}
	client := newTestClient(t, svc)

	updated := models.Request{
		ID:     "r1",
		Author: "alice",
		Files:  []models.FileDefinition{{ID: "f0", Size: 4, Sent: 4, Seq: 1}},
	}
	svc.On("SendChunk", mock.Anything, "alice", "r1", 0, int64(0), []byte("data")).Return(&updated, nil).Once()

	out, err := client.SendChunk(asUser("alice"), &pb.SendChunkRequest{RequestId: "r1", FileIndex: 0, Seq: 0, Data: []byte("data")})
	require.NoError(t, err)

	assert.Equal(t, int64(4), out.GetFiles()[0].GetSent())
	assert.Equal(t, uint32(100), out.GetProgress())
	svc.AssertExpectations(t)
}

func TestGrpc_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
		msg  string
	}{
		{"not found", apperror.ErrRequestDoesNotExist.WithContext("requestId", "r1"), codes.NotFound, "REQUEST_DOES_NOT_EXIST"},
		{"denied", apperror.ErrAccessDenied, codes.PermissionDenied, "ACCESS_DENIED"},
		{"desync", apperror.ErrRequestFileDesynchronized.WithContext("expectedSeq", 3), codes.Aborted, "REQUEST_FILE_DESYNCHRONIZED"},
		{"closed", apperror.ErrRequestFileAlreadyClosed, codes.FailedPrecondition, "REQUEST_FILE_ALREADY_CLOSED"},
		{"limit", apperror.ErrRequestFileSizeExceeded, codes.InvalidArgument, "REQUEST_FILE_SIZE_EXCEEDED"},
		{"blob", storage.ErrBlobNotFound, codes.NotFound, ""},
		{"unexpected", errors.New("disk on fire"), codes.Internal, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockRequestService{}
			client := newTestClient(t, svc)
			svc.On("CommitFile", mock.Anything, "alice", "r1", 0, int64(1), []byte("sum")).Return(nil, tt.err).Once()

			_, err := client.CommitFile(asUser("alice"), &pb.CommitFileRequest{RequestId: "r1", FileIndex: 0, Seq: 1, Checksum: []byte("sum")})

			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, st.Code())
			assert.Contains(t, st.Message(), tt.msg)
			assert.NotContains(t, st.Message(), "disk on fire")
		})
	}
}

func TestGrpc_ReadBlobRanges(t *testing.T) {
	svc := &mockRequestService{}
	client := newTestClient(t, svc)
	ctx := context.Background()

	svc.On("ReadBlob", mock.Anything, "r1", 0, storage.Slice(2, 3)).Return([]byte("llo"), nil).Once()
	svc.On("ReadBlob", mock.Anything, "r1", 0, storage.ChecksumOnly()).Return([]byte("sum"), nil).Once()

	out, err := client.ReadBlob(ctx, &pb.ReadBlobRequest{RequestId: "r1", BlobRange: pb.BlobRange_BLOB_RANGE_SLICE, Offset: 2, Length: 3})
	require.NoError(t, err)
	assert.Equal(t, "llo", string(out.GetData()))

	out, err = client.ReadBlob(ctx, &pb.ReadBlobRequest{RequestId: "r1", BlobRange: pb.BlobRange_BLOB_RANGE_CHECKSUM})
	require.NoError(t, err)
	assert.Equal(t, "sum", string(out.GetData()))

	_, err = client.ReadBlob(ctx, &pb.ReadBlobRequest{RequestId: "r1", BlobRange: pb.BlobRange(42)})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	svc.AssertExpectations(t)
}

func TestGrpc_ConsumerOperations(t *testing.T) {
	svc := &mockRequestService{}
	client := newTestClient(t, svc)
	ctx := context.Background()

	claimed := models.Request{ID: "r1", Processing: true}
	svc.On("MarkRequestAsProcessing", mock.Anything, "r1").Return(&claimed, nil).Once()
	svc.On("PromoteFile", mock.Anything, "r1", 1, "archive").Return("archive", nil).Once()
	svc.On("FinalizeRequest", mock.Anything, "r1", []int{1}).Return(nil).Once()
	svc.On("ClearExpired", mock.Anything).Return(3, nil).Once()

	req, err := client.MarkRequestAsProcessing(ctx, &pb.RequestRef{RequestId: "r1"})
	require.NoError(t, err)
	assert.True(t, req.GetProcessing())

	promoted, err := client.PromoteFile(ctx, &pb.PromoteFileRequest{RequestId: "r1", FileIndex: 1, TargetId: "archive"})
	require.NoError(t, err)
	assert.Equal(t, "archive", promoted.GetBlobId())

	_, err = client.FinishRequest(ctx, &pb.FinishRequestRequest{RequestId: "r1", MovedFiles: []int32{1}})
	require.NoError(t, err)

	cleared, err := client.ClearExpired(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, int32(3), cleared.GetDeleted())

	svc.AssertExpectations(t)
}

func TestGrpc_DestroyRequest(t *testing.T) {
	svc := &mockRequestService{}
	client := newTestClient(t, svc)

	svc.On("DestroyRequest", mock.Anything, "alice", "r1").Return(nil).Once()
	svc.On("DestroyRequest", mock.Anything, "bob", "r1").Return(apperror.ErrAccessDenied).Once()

	_, err := client.DestroyRequest(asUser("alice"), &pb.RequestRef{RequestId: "r1"})
	require.NoError(t, err)

	_, err = client.DestroyRequest(asUser("bob"), &pb.RequestRef{RequestId: "r1"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
	svc.AssertExpectations(t)
}
