package authz

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/dtroode/authgate/internal/logger"
	"github.com/dtroode/authgate/internal/model"
)

// Requirement is the static role policy of a protected operation. An empty
// Roles list admits any authenticated caller. A non-empty Service narrows
// the match to roles of that service.
type Requirement struct {
	Roles   []string
	Service string
}

// ForService returns a copy of r scoped to service.
func (r Requirement) ForService(service string) Requirement {
	return Requirement{Roles: r.Roles, Service: service}
}

// Policy holds the role lists guarding read and write operations.
type Policy struct {
	View   Requirement
	Change Requirement
}

// NewPolicy builds a Policy from the configured role names.
func NewPolicy(viewRoles, changeRoles []string) Policy {
	return Policy{
		View:   Requirement{Roles: slices.Clone(viewRoles)},
		Change: Requirement{Roles: slices.Clone(changeRoles)},
	}
}

// Engine decides whether verified claims satisfy a requirement.
type Engine struct {
	revocations model.RevocationCache
	superrole   string
	logger      *logger.Logger
}

// NewEngine creates a new authorization engine.
func NewEngine(revocations model.RevocationCache, superrole string, logger *logger.Logger) *Engine {
	return &Engine{
		revocations: revocations,
		superrole:   superrole,
		logger:      logger,
	}
}

// Superrole returns the configured name of the role that bypasses checks.
func (e *Engine) Superrole() string {
	return e.superrole
}

// Authorize returns the caller's user ID when claims satisfy req.
func (e *Engine) Authorize(ctx context.Context, claims model.Claims, req Requirement) (uuid.UUID, error) {
	revoked, err := e.revocations.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		e.logger.Error("Authz engine: revocation lookup failed",
			"token_id", claims.TokenID,
			"error", err.Error())
		return uuid.Nil, fmt.Errorf("failed to check revocation: %w", err)
	}
	if revoked {
		return uuid.Nil, model.ErrRevokedToken
	}

	if len(req.Roles) == 0 {
		return claims.UserID, nil
	}
	if e.superrole != "" && slices.ContainsFunc(claims.Roles, func(r model.RoleClaim) bool {
		return r.Name == e.superrole
	}) {
		return claims.UserID, nil
	}
	if Match(claims.Roles, req) {
		return claims.UserID, nil
	}

	e.logger.Debug("Authz engine: access denied",
		"user_id", claims.UserID,
		"required_roles", req.Roles,
		"service", req.Service)

	if req.Service != "" {
		return uuid.Nil, model.ErrInsufficientRoleOrService
	}
	return uuid.Nil, model.ErrInsufficientRole
}

// Match reports whether any role satisfies req by name and, when req names
// a service, by service.
func Match(roles []model.RoleClaim, req Requirement) bool {
	for _, role := range roles {
		if !slices.Contains(req.Roles, role.Name) {
			continue
		}
		if req.Service == "" || role.Service == req.Service {
			return true
		}
	}
	return false
}
