package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/authgate/internal/api/grpc/proto"
	"github.com/dtroode/authgate/internal/authz"
	"github.com/dtroode/authgate/internal/logger"
	"github.com/dtroode/authgate/internal/model"
)

// UserService defines account management operations.
type UserService interface {
	List(ctx context.Context, limit, offset int) ([]model.UserWithRoles, error)
	Create(ctx context.Context, input model.NewUser) (model.UserWithRoles, error)
	Update(ctx context.Context, id uuid.UUID, changes model.UserChanges) (model.UserWithRoles, error)
	Remove(ctx context.Context, id uuid.UUID) error
	SetRole(ctx context.Context, userID, roleID uuid.UUID) (model.UserWithRoles, error)
	DepriveRole(ctx context.Context, userID, roleID uuid.UUID) (model.UserWithRoles, error)
}

// HistoryService reads the login audit trail.
type HistoryService interface {
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.LoginHistoryRecord, error)
}

// Users handles gRPC endpoints for account management.
type Users struct {
	proto.UnimplementedUsersServer
	userService    UserService
	historyService HistoryService
	guard          guard
	policy         authz.Policy
	logger         *logger.Logger
}

// NewUsers creates a new Users handler.
func NewUsers(
	userService UserService,
	historyService HistoryService,
	authorizer Authorizer,
	contextManager model.ContextManager,
	policy authz.Policy,
	logger *logger.Logger,
) *Users {
	return &Users{
		userService:    userService,
		historyService: historyService,
		guard:          guard{authorizer: authorizer, contextManager: contextManager},
		policy:         policy,
		logger:         logger,
	}
}

func (h *Users) List(ctx context.Context, req *proto.ListRequest) (*proto.UserList, error) {
	if _, err := h.guard.authorize(ctx, h.policy.View); err != nil {
		return nil, handleError(err)
	}

	users, err := h.userService.List(ctx, req.Limit, req.Offset)
	if err != nil {
		logFailure(h.logger, "Users handler: list failed", err)
		return nil, handleError(err)
	}

	return &proto.UserList{Users: convertUsers(users)}, nil
}

func (h *Users) Create(ctx context.Context, req *proto.CreateUserRequest) (*proto.User, error) {
	if _, err := h.guard.authorize(ctx, h.policy.Change); err != nil {
		return nil, handleError(err)
	}

	user, err := h.userService.Create(ctx, model.NewUser{
		Login:     req.Login,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		logFailure(h.logger, "Users handler: create failed", err)
		return nil, handleError(err)
	}

	return convertUser(user), nil
}

func (h *Users) Update(ctx context.Context, req *proto.UpdateUserRequest) (*proto.User, error) {
	if _, err := h.guard.authorize(ctx, h.policy.Change); err != nil {
		return nil, handleError(err)
	}
	id, err := parseID("id", req.ID)
	if err != nil {
		return nil, handleError(err)
	}

	user, err := h.userService.Update(ctx, id, model.UserChanges{
		Login:     req.Login,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		logFailure(h.logger, "Users handler: update failed", err)
		return nil, handleError(err)
	}

	return convertUser(user), nil
}

func (h *Users) Remove(ctx context.Context, req *proto.RemoveRequest) (*proto.Empty, error) {
	if _, err := h.guard.authorize(ctx, h.policy.Change); err != nil {
		return nil, handleError(err)
	}
	id, err := parseID("id", req.ID)
	if err != nil {
		return nil, handleError(err)
	}

	if err := h.userService.Remove(ctx, id); err != nil {
		logFailure(h.logger, "Users handler: remove failed", err)
		return nil, handleError(err)
	}

	return &proto.Empty{}, nil
}

// LoginHistory returns the caller's own logins.
func (h *Users) LoginHistory(ctx context.Context, req *proto.ListRequest) (*proto.LoginHistory, error) {
	userID, err := h.guard.authorize(ctx, authz.Requirement{})
	if err != nil {
		return nil, handleError(err)
	}

	records, err := h.historyService.List(ctx, userID, req.Limit, req.Offset)
	if err != nil {
		logFailure(h.logger, "Users handler: login history failed", err)
		return nil, handleError(err)
	}

	return convertHistory(records), nil
}

// UserLoginHistory returns the logins of any user.
func (h *Users) UserLoginHistory(ctx context.Context, req *proto.UserLoginHistoryRequest) (*proto.LoginHistory, error) {
	if _, err := h.guard.authorize(ctx, h.policy.View); err != nil {
		return nil, handleError(err)
	}
	userID, err := parseID("user_id", req.UserID)
	if err != nil {
		return nil, handleError(err)
	}

	records, err := h.historyService.List(ctx, userID, req.Limit, req.Offset)
	if err != nil {
		logFailure(h.logger, "Users handler: user login history failed", err)
		return nil, handleError(err)
	}

	return convertHistory(records), nil
}

func (h *Users) SetRole(ctx context.Context, req *proto.UserRoleRequest) (*proto.User, error) {
	return h.changeRole(ctx, req, h.userService.SetRole)
}

func (h *Users) DepriveRole(ctx context.Context, req *proto.UserRoleRequest) (*proto.User, error) {
	return h.changeRole(ctx, req, h.userService.DepriveRole)
}

func (h *Users) changeRole(
	ctx context.Context,
	req *proto.UserRoleRequest,
	apply func(ctx context.Context, userID, roleID uuid.UUID) (model.UserWithRoles, error),
) (*proto.User, error) {
	if _, err := h.guard.authorize(ctx, h.policy.Change); err != nil {
		return nil, handleError(err)
	}
	userID, err := parseID("user_id", req.UserID)
	if err != nil {
		return nil, handleError(err)
	}
	roleID, err := parseID("role_id", req.RoleID)
	if err != nil {
		return nil, handleError(err)
	}

	user, err := apply(ctx, userID, roleID)
	if err != nil {
		logFailure(h.logger, "Users handler: role change failed", err)
		return nil, handleError(err)
	}

	return convertUser(user), nil
}
