package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/authgate/internal/authz"
	"github.com/dtroode/authgate/internal/model"
)

// Authorizer decides whether verified claims satisfy a requirement.
type Authorizer interface {
	Authorize(ctx context.Context, claims model.Claims, req authz.Requirement) (uuid.UUID, error)
}

// guard checks the caller stored in context by the authenticate
// middleware against a requirement.
type guard struct {
	authorizer     Authorizer
	contextManager model.ContextManager
}

func (g guard) authorize(ctx context.Context, req authz.Requirement) (uuid.UUID, error) {
	claims, ok := g.contextManager.GetClaimsFromContext(ctx)
	if !ok {
		return uuid.Nil, model.ErrInvalidToken
	}
	return g.authorizer.Authorize(ctx, claims, req)
}
