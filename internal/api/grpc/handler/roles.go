package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/authgate/internal/api/grpc/proto"
	"github.com/dtroode/authgate/internal/authz"
	"github.com/dtroode/authgate/internal/logger"
	"github.com/dtroode/authgate/internal/model"
)

// RoleService defines role management operations.
type RoleService interface {
	List(ctx context.Context, limit, offset int) ([]model.Role, error)
	Get(ctx context.Context, id uuid.UUID) (model.Role, error)
	Create(ctx context.Context, name, service string) (model.Role, error)
	Update(ctx context.Context, id uuid.UUID, patch model.RolePatch) (model.Role, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

// Roles handles gRPC endpoints for role management. Writes are scoped to
// the service of the role they touch.
type Roles struct {
	proto.UnimplementedRolesServer
	roleService RoleService
	guard       guard
	policy      authz.Policy
	logger      *logger.Logger
}

// NewRoles creates a new Roles handler.
func NewRoles(
	roleService RoleService,
	authorizer Authorizer,
	contextManager model.ContextManager,
	policy authz.Policy,
	logger *logger.Logger,
) *Roles {
	return &Roles{
		roleService: roleService,
		guard:       guard{authorizer: authorizer, contextManager: contextManager},
		policy:      policy,
		logger:      logger,
	}
}

func (h *Roles) List(ctx context.Context, req *proto.ListRequest) (*proto.RoleList, error) {
	if _, err := h.guard.authorize(ctx, h.policy.View); err != nil {
		return nil, handleError(err)
	}

	roles, err := h.roleService.List(ctx, req.Limit, req.Offset)
	if err != nil {
		logFailure(h.logger, "Roles handler: list failed", err)
		return nil, handleError(err)
	}

	return &proto.RoleList{Roles: convertRoles(roles)}, nil
}

func (h *Roles) Create(ctx context.Context, req *proto.CreateRoleRequest) (*proto.Role, error) {
	userID, err := h.guard.authorize(ctx, h.policy.Change.ForService(req.Service))
	if err != nil {
		return nil, handleError(err)
	}

	role, err := h.roleService.Create(ctx, req.Name, req.Service)
	if err != nil {
		logFailure(h.logger, "Roles handler: create failed", err)
		return nil, handleError(err)
	}

	h.logger.Info("Roles handler: role created",
		"role_id", role.ID,
		"by", userID)

	out := convertRole(role)
	return &out, nil
}

func (h *Roles) Update(ctx context.Context, req *proto.UpdateRoleRequest) (*proto.Role, error) {
	if _, err := h.guard.authorize(ctx, h.policy.Change); err != nil {
		return nil, handleError(err)
	}
	id, err := parseID("id", req.ID)
	if err != nil {
		return nil, handleError(err)
	}

	current, err := h.roleService.Get(ctx, id)
	if err != nil {
		return nil, handleError(err)
	}
	userID, err := h.guard.authorize(ctx, h.policy.Change.ForService(current.Service))
	if err != nil {
		return nil, handleError(err)
	}
	if req.Service != nil && *req.Service != current.Service {
		if _, err := h.guard.authorize(ctx, h.policy.Change.ForService(*req.Service)); err != nil {
			return nil, handleError(err)
		}
	}

	role, err := h.roleService.Update(ctx, id, model.RolePatch{Name: req.Name, Service: req.Service})
	if err != nil {
		logFailure(h.logger, "Roles handler: update failed", err)
		return nil, handleError(err)
	}

	h.logger.Info("Roles handler: role updated",
		"role_id", role.ID,
		"by", userID)

	out := convertRole(role)
	return &out, nil
}

func (h *Roles) Remove(ctx context.Context, req *proto.RemoveRequest) (*proto.Empty, error) {
	if _, err := h.guard.authorize(ctx, h.policy.Change); err != nil {
		return nil, handleError(err)
	}
	id, err := parseID("id", req.ID)
	if err != nil {
		return nil, handleError(err)
	}

	current, err := h.roleService.Get(ctx, id)
	if err != nil {
		return nil, handleError(err)
	}
	userID, err := h.guard.authorize(ctx, h.policy.Change.ForService(current.Service))
	if err != nil {
		return nil, handleError(err)
	}

	if err := h.roleService.Remove(ctx, id); err != nil {
		logFailure(h.logger, "Roles handler: remove failed", err)
		return nil, handleError(err)
	}

	h.logger.Info("Roles handler: role removed",
		"role_id", id,
		"by", userID)

	return &proto.Empty{}, nil
}
