package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/authgate/internal/logger"
	"github.com/dtroode/authgate/internal/model"
)

func handleError(err error) error {
	if sentinel := model.AuthFailure(err); sentinel != nil {
		return status.Error(codes.Unauthenticated, sentinel.Error())
	}

	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrDuplicate):
		return status.Error(codes.InvalidArgument, model.ErrDuplicate.Error())
	case errors.Is(err, model.ErrAlreadyAssigned):
		return status.Error(codes.InvalidArgument, model.ErrAlreadyAssigned.Error())
	case errors.Is(err, model.ErrNotAssigned):
		return status.Error(codes.InvalidArgument, model.ErrNotAssigned.Error())
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, model.ErrNotFound.Error())
	case errors.Is(err, model.ErrUpstreamUnavailable):
		return status.Error(codes.Unavailable, "service temporarily unavailable")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}

// logFailure writes err at error level when it maps to a server fault and
// at debug level otherwise.
func logFailure(logger *logger.Logger, msg string, err error) {
	switch status.Code(handleError(err)) {
	case codes.Internal, codes.Unavailable:
		logger.Error(msg, "error", err.Error())
	default:
		logger.Debug(msg, "error", err.Error())
	}
}
