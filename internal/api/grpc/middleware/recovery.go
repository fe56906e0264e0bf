package middleware

import (
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/authgate/internal/logger"
)

// NewRecovery returns recovery options that log the panic and answer with
// codes.Internal.
func NewRecovery(logger *logger.Logger) []recovery.Option {
	return []recovery.Option{
		recovery.WithRecoveryHandler(func(p any) error {
			logger.Error("gRPC handler panicked",
				"panic", p)
			return status.Error(codes.Internal, "internal server error")
		}),
	}
}
