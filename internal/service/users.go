package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/authgate/internal/logger"
	"github.com/dtroode/authgate/internal/model"
)

// Users manages accounts and their role assignments.
type Users struct {
	users     model.UserStore
	roles     model.RoleStore
	userRoles model.UserRoleStore
	hasher    model.PasswordHasher
	superrole string
	logger    *logger.Logger
	now       func() time.Time
}

func NewUsers(
	users model.UserStore,
	roles model.RoleStore,
	userRoles model.UserRoleStore,
	hasher model.PasswordHasher,
	superrole string,
	logger *logger.Logger,
) *Users {
	return &Users{
		users:     users,
		roles:     roles,
		userRoles: userRoles,
		hasher:    hasher,
		superrole: superrole,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Users) List(ctx context.Context, limit, offset int) ([]model.UserWithRoles, error) {
	users, err := s.users.List(ctx, NormalizePage(limit, offset))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *Users) Get(ctx context.Context, id uuid.UUID) (model.UserWithRoles, error) {
	user, err := s.users.GetWithRoles(ctx, id)
	if err != nil {
		return model.UserWithRoles{}, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return user, nil
}

func (s *Users) Create(ctx context.Context, input model.NewUser) (model.UserWithRoles, error) {
	login, err := requireText("login", input.Login, maxLoginLength)
	if err != nil {
		return model.UserWithRoles{}, err
	}
	if err := requirePassword(input.Password); err != nil {
		return model.UserWithRoles{}, err
	}
	firstName, err := optionalText("first_name", input.FirstName, maxNameLength)
	if err != nil {
		return model.UserWithRoles{}, err
	}
	lastName, err := optionalText("last_name", input.LastName, maxNameLength)
	if err != nil {
		return model.UserWithRoles{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return model.UserWithRoles{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, model.User{
		ID:           uuid.New(),
		Login:        login,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    s.now(),
	})
	if err != nil {
		if !errors.Is(err, model.ErrDuplicate) {
			s.logger.Error("Users service: failed to create user",
				"login", login,
				"error", err.Error())
		}
		return model.UserWithRoles{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("Users service: user created",
		"user_id", user.ID,
		"login", user.Login)

	return model.UserWithRoles{User: user, Roles: []model.Role{}}, nil
}

func (s *Users) Update(ctx context.Context, id uuid.UUID, changes model.UserChanges) (model.UserWithRoles, error) {
	var patch model.UserPatch

	if changes.Login != nil {
		login, err := requireText("login", *changes.Login, maxLoginLength)
		if err != nil {
			return model.UserWithRoles{}, err
		}
		patch.Login = &login
	}
	if changes.Password != nil {
		if err := requirePassword(*changes.Password); err != nil {
			return model.UserWithRoles{}, err
		}
		hash, err := s.hasher.Hash(*changes.Password)
		if err != nil {
			return model.UserWithRoles{}, fmt.Errorf("failed to hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}
	if changes.FirstName != nil {
		firstName, err := optionalText("first_name", *changes.FirstName, maxNameLength)
		if err != nil {
			return model.UserWithRoles{}, err
		}
		patch.FirstName = &firstName
	}
	if changes.LastName != nil {
		lastName, err := optionalText("last_name", *changes.LastName, maxNameLength)
		if err != nil {
			return model.UserWithRoles{}, err
		}
		patch.LastName = &lastName
	}

	if _, err := s.users.UpdateByID(ctx, id, patch); err != nil {
		return model.UserWithRoles{}, fmt.Errorf("failed to update user %s: %w", id, err)
	}

	s.logger.Info("Users service: user updated",
		"user_id", id)

	return s.Get(ctx, id)
}

func (s *Users) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.users.RemoveByID(ctx, id); err != nil {
		return fmt.Errorf("failed to remove user %s: %w", id, err)
	}

	s.logger.Info("Users service: user removed",
		"user_id", id)

	return nil
}

// SetRole assigns a secondary role to the user.
func (s *Users) SetRole(ctx context.Context, userID, roleID uuid.UUID) (model.UserWithRoles, error) {
	if err := s.checkAssignment(ctx, userID, roleID); err != nil {
		return model.UserWithRoles{}, err
	}

	if err := s.userRoles.Attach(ctx, userID, roleID); err != nil {
		return model.UserWithRoles{}, fmt.Errorf("failed to set role: %w", err)
	}

	s.logger.Info("Users service: role assigned",
		"user_id", userID,
		"role_id", roleID)

	return s.Get(ctx, userID)
}

// DepriveRole removes a secondary role from the user.
func (s *Users) DepriveRole(ctx context.Context, userID, roleID uuid.UUID) (model.UserWithRoles, error) {
	if err := s.checkAssignment(ctx, userID, roleID); err != nil {
		return model.UserWithRoles{}, err
	}

	if err := s.userRoles.Detach(ctx, userID, roleID); err != nil {
		return model.UserWithRoles{}, fmt.Errorf("failed to deprive role: %w", err)
	}

	s.logger.Info("Users service: role deprived",
		"user_id", userID,
		"role_id", roleID)

	return s.Get(ctx, userID)
}

func (s *Users) checkAssignment(ctx context.Context, userID, roleID uuid.UUID) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return fmt.Errorf("failed to get user %s: %w", userID, err)
	}

	role, err := s.roles.GetByID(ctx, roleID)
	if err != nil {
		return fmt.Errorf("failed to get role %s: %w", roleID, err)
	}
	if role.Name == s.superrole {
		return model.ErrReservedRole
	}

	return nil
}
