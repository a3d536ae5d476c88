package handlers

import (
	"context"
	"strings"

	pb "github.com/Yulian302/lfusys-services-requests/api/gen"
	"github.com/Yulian302/lfusys-services-requests/logging"
	"github.com/Yulian302/lfusys-services-requests/models"
	"github.com/Yulian302/lfusys-services-requests/services"
	"github.com/Yulian302/lfusys-services-requests/storage"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// IdentityHeader carries the caller identity, set by the gateway after
// authentication.
const IdentityHeader = "x-user-id"

type GrpcHandler struct {
	requestService services.RequestService
	pb.UnimplementedRequestsServer

	logger logging.Logger
}

func NewGrpcHandler(requestSvc services.RequestService, l logging.Logger) *GrpcHandler {
	return &GrpcHandler{
		requestService: requestSvc,
		logger:         l.With("component", "grpc"),
	}
}

func identity(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if v := md.Get(IdentityHeader); len(v) > 0 && strings.TrimSpace(v[0]) != "" {
			return strings.TrimSpace(v[0]), nil
		}
	}
	return "", status.Error(codes.Unauthenticated, "missing "+IdentityHeader)
}

func (h *GrpcHandler) CreateRequest(ctx context.Context, in *pb.CreateRequestRequest) (*pb.Request, error) {
	user, err := identity(ctx)
	if err != nil {
		return nil, err
	}

	files := make([]models.FileSpec, len(in.GetFiles()))
	for i, f := range in.GetFiles() {
		files[i] = models.FileSpec{
			Size:         f.GetSize(),
			ChecksumSize: f.GetChecksumSize(),
			RandomWrite:  f.GetRandomWrite(),
		}
	}

	req, err := h.requestService.CreateRequest(ctx, user, files)
	if err != nil {
		return nil, h.toStatus("CreateRequest", err)
	}
	return toPbRequest(req), nil
}

func (h *GrpcHandler) GetRequest(ctx context.Context, in *pb.RequestRef) (*pb.Request, error) {
	user, err := identity(ctx)
	if err != nil {
		return nil, err
	}

	req, err := h.requestService.GetRequest(ctx, user, in.GetRequestId())
	if err != nil {
		return nil, h.toStatus("GetRequest", err)
	}
	return toPbRequest(req), nil
}

func (h *GrpcHandler) GetReadyRequest(ctx context.Context, in *pb.RequestRef) (*pb.Request, error) {
	user, err := identity(ctx)
	if err != nil {
		return nil, err
	}

	req, err := h.requestService.GetReadyRequest(ctx, user, in.GetRequestId())
	if err != nil {
		return nil, h.toStatus("GetReadyRequest", err)
	}
	return toPbRequest(req), nil
}

func (h *GrpcHandler) SendChunk(ctx context.Context, in *pb.SendChunkRequest) (*pb.Request, error) {
	user, err := identity(ctx)
	if err != nil {
		return nil, err
	}

	req, err := h.requestService.SendChunk(ctx, user, in.GetRequestId(), int(in.GetFileIndex()), in.GetSeq(), in.GetData())
	if err != nil {
		return nil, h.toStatus("SendChunk", err)
	}
	return toPbRequest(req), nil
}

func (h *GrpcHandler) CommitFile(ctx context.Context, in *pb.CommitFileRequest) (*pb.Request, error) {
	user, err := identity(ctx)
	if err != nil {
		return nil, err
	}

	req, err := h.requestService.CommitFile(ctx, user, in.GetRequestId(), int(in.GetFileIndex()), in.GetSeq(), in.GetChecksum())
	if err != nil {
		return nil, h.toStatus("CommitFile", err)
	}
	return toPbRequest(req), nil
}

func (h *GrpcHandler) DestroyRequest(ctx context.Context, in *pb.RequestRef) (*emptypb.Empty, error) {
	user, err := identity(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.requestService.DestroyRequest(ctx, user, in.GetRequestId()); err != nil {
		return nil, h.toStatus("DestroyRequest", err)
	}
	return &emptypb.Empty{}, nil
}

// The methods below are called by downstream consumers, not by uploaders.

func (h *GrpcHandler) MarkRequestAsProcessing(ctx context.Context, in *pb.RequestRef) (*pb.Request, error) {
	req, err := h.requestService.MarkRequestAsProcessing(ctx, in.GetRequestId())
	if err != nil {
		return nil, h.toStatus("MarkRequestAsProcessing", err)
	}
	return toPbRequest(req), nil
}

func (h *GrpcHandler) PromoteFile(ctx context.Context, in *pb.PromoteFileRequest) (*pb.PromoteFileReply, error) {
	id, err := h.requestService.PromoteFile(ctx, in.GetRequestId(), int(in.GetFileIndex()), in.GetTargetId())
	if err != nil {
		return nil, h.toStatus("PromoteFile", err)
	}
	return &pb.PromoteFileReply{BlobId: id}, nil
}

func (h *GrpcHandler) ReadBlob(ctx context.Context, in *pb.ReadBlobRequest) (*pb.ReadBlobReply, error) {
	var r storage.ReadRange
	switch in.GetBlobRange() {
	case pb.BlobRange_BLOB_RANGE_ALL:
		r = storage.All()
	case pb.BlobRange_BLOB_RANGE_CHECKSUM:
		r = storage.ChecksumOnly()
	case pb.BlobRange_BLOB_RANGE_SLICE:
		r = storage.Slice(in.GetOffset(), in.GetLength())
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown range %v", in.GetBlobRange())
	}

	data, err := h.requestService.ReadBlob(ctx, in.GetRequestId(), int(in.GetFileIndex()), r)
	if err != nil {
		return nil, h.toStatus("ReadBlob", err)
	}
	return &pb.ReadBlobReply{Data: data}, nil
}

func (h *GrpcHandler) FinishRequest(ctx context.Context, in *pb.FinishRequestRequest) (*emptypb.Empty, error) {
	moved := make([]int, len(in.GetMovedFiles()))
	for i, idx := range in.GetMovedFiles() {
		moved[i] = int(idx)
	}

	if err := h.requestService.FinalizeRequest(ctx, in.GetRequestId(), moved); err != nil {
		return nil, h.toStatus("FinishRequest", err)
	}
	return &emptypb.Empty{}, nil
}

func (h *GrpcHandler) ClearExpired(ctx context.Context, _ *emptypb.Empty) (*pb.ClearExpiredReply, error) {
	n, err := h.requestService.ClearExpired(ctx)
	if err != nil {
		return nil, h.toStatus("ClearExpired", err)
	}
	return &pb.ClearExpiredReply{Deleted: int32(n)}, nil
}

func toPbRequest(req *models.Request) *pb.Request {
	files := make([]*pb.FileDefinition, len(req.Files))
	for i, f := range req.Files {
		files[i] = &pb.FileDefinition{
			Id:                  f.ID,
			Size:                f.Size,
			ChecksumSize:        f.ChecksumSize,
			Sent:                f.Sent,
			ChecksumSent:        f.ChecksumSent,
			Seq:                 f.Seq,
			Closed:              f.Closed,
			SupportsRandomWrite: f.SupportsRandomWrite,
		}
	}

	return &pb.Request{
		Id:         req.ID,
		Author:     req.Author,
		Created:    timestamppb.New(req.Created),
		Modified:   timestamppb.New(req.Modified),
		Processing: req.Processing,
		Files:      files,
		Version:    req.Version,
		Ready:      req.IsReady(),
		Progress:   uint32(req.Progress()),
	}
}
