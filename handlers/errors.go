package handlers

import (
	"context"
	"errors"

	"github.com/Yulian302/lfusys-services-requests/apperror"
	"github.com/Yulian302/lfusys-services-requests/storage"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var grpcCodes = map[apperror.Code]codes.Code{
	apperror.RequestDoesNotExist:       codes.NotFound,
	apperror.RequestFileDoesNotExist:   codes.NotFound,
	apperror.AccessDenied:              codes.PermissionDenied,
	apperror.TooManyFilesInRequest:     codes.InvalidArgument,
	apperror.RequestSizeExceeded:       codes.InvalidArgument,
	apperror.RequestFileSizeExceeded:   codes.InvalidArgument,
	apperror.RequestChunkTooSmall:      codes.InvalidArgument,
	apperror.InvalidParams:             codes.InvalidArgument,
	apperror.RequestFileAlreadyClosed:  codes.FailedPrecondition,
	apperror.RequestFileDesynchronized: codes.Aborted,
	apperror.RequestNotReadyYet:        codes.FailedPrecondition,
	apperror.RequestNotProcessing:      codes.FailedPrecondition,
}

// toStatus converts a service error into a gRPC status. Typed errors keep
// their code as the message prefix; anything unexpected becomes Internal
// without leaking details.
func (h *GrpcHandler) toStatus(method string, err error) error {
	if err == nil {
		return nil
	}

	if code := apperror.CodeOf(err); code != "" {
		c, ok := grpcCodes[code]
		if !ok {
			c = codes.Unknown
		}
		return status.Error(c, err.Error())
	}

	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, storage.ErrBlobNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, storage.ErrInvalidRange):
		return status.Error(codes.InvalidArgument, err.Error())
	}

	h.logger.Error("request failed", "method", method, "error", err)
	return status.Error(codes.Internal, "internal error")
}
