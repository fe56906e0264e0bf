package middleware

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/authgate/internal/logger"
	"github.com/dtroode/authgate/internal/model"
)

// TokenVerifier checks bearer tokens.
type TokenVerifier interface {
	Verify(token string, kind model.TokenKind) (model.Claims, error)
}

// Authenticate validates bearer access tokens and injects their claims
// into context.
type Authenticate struct {
	tokens         TokenVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens TokenVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, contextManager: contextManager, logger: logger}
}

// AuthFunc reads the bearer token from the authorization metadata, verifies
// it as an access token and returns a context with its claims.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	tokenString, err := auth.AuthFromMD(ctx, "bearer")
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, model.ErrInvalidToken.Error())
	}

	claims, err := m.tokens.Verify(tokenString, model.TokenKindAccess)
	if err != nil {
		m.logger.Debug("Authenticate middleware: token rejected",
			"error", err.Error())
		if sentinel := model.AuthFailure(err); sentinel != nil {
			return nil, status.Error(codes.Unauthenticated, sentinel.Error())
		}
		return nil, status.Error(codes.Unauthenticated, model.ErrInvalidToken.Error())
	}

	return m.contextManager.SetClaimsToContext(ctx, claims), nil
}
