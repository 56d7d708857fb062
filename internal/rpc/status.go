package rpc

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/fekuna/omnipos-marketplace-service/internal/apperror"
)

var kindCodes = map[apperror.Kind]codes.Code{
	apperror.KindUnauthorized:       codes.PermissionDenied,
	apperror.KindForbidden:          codes.PermissionDenied,
	apperror.KindProfileRequired:    codes.FailedPrecondition,
	apperror.KindNotFound:           codes.NotFound,
	apperror.KindInvalidInput:       codes.InvalidArgument,
	apperror.KindOutOfRange:         codes.OutOfRange,
	apperror.KindInsufficientStock:  codes.FailedPrecondition,
	apperror.KindProductUnavailable: codes.FailedPrecondition,
	apperror.KindInvalidTransition:  codes.FailedPrecondition,
	apperror.KindEmptyCart:          codes.FailedPrecondition,
	apperror.KindBusy:               codes.Unavailable,
}

// ToStatus converts a usecase error into a gRPC status error. Errors without
// an apperror kind become Internal.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	if code, ok := kindCodes[apperror.KindOf(err)]; ok {
		return status.Error(code, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
