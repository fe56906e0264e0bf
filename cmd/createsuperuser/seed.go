package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/authgate/internal/logger"
	"github.com/dtroode/authgate/internal/model"
)

type superuser struct {
	Login     string
	Password  string
	FirstName string
	LastName  string
}

type seeder struct {
	users     model.UserStore
	roles     model.RoleStore
	userRoles model.UserRoleStore
	hasher    model.PasswordHasher
	superrole string
	logger    *logger.Logger
}

// seed creates the superrole, the user and their relation. Each step that
// finds its row already present is skipped, so repeated runs converge.
func (s seeder) seed(ctx context.Context, in superuser) error {
	in.Login = strings.TrimSpace(in.Login)
	if in.Login == "" || in.Password == "" {
		return fmt.Errorf("%w: login and password are required", model.ErrInvalidInput)
	}

	role, err := s.ensureRole(ctx)
	if err != nil {
		return err
	}
	user, err := s.ensureUser(ctx, in)
	if err != nil {
		return err
	}

	err = s.userRoles.Attach(ctx, user.ID, role.ID)
	switch {
	case errors.Is(err, model.ErrAlreadyAssigned):
		s.logger.Info("Create superuser: role already assigned", "login", user.Login)
	case err != nil:
		return fmt.Errorf("failed to assign superrole: %w", err)
	default:
		s.logger.Info("Create superuser: role assigned", "login", user.Login, "role", role.Name)
	}

	return nil
}

func (s seeder) ensureRole(ctx context.Context) (model.Role, error) {
	role, err := s.roles.Create(ctx, model.Role{ID: uuid.New(), Name: s.superrole, Service: superroleService})
	if err == nil {
		s.logger.Info("Create superuser: superrole created", "role", role.Name)
		return role, nil
	}
	if !errors.Is(err, model.ErrDuplicate) {
		return model.Role{}, fmt.Errorf("failed to create superrole: %w", err)
	}

	role, err = s.roles.GetByNameAndService(ctx, s.superrole, superroleService)
	if err != nil {
		return model.Role{}, fmt.Errorf("failed to get superrole: %w", err)
	}
	return role, nil
}

func (s seeder) ensureUser(ctx context.Context, in superuser) (model.User, error) {
	existing, err := s.users.GetByLogin(ctx, in.Login)
	if err == nil {
		s.logger.Info("Create superuser: user already exists", "login", in.Login)
		return existing.User, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user, err := s.users.Create(ctx, model.User{
		ID:           uuid.New(),
		Login:        in.Login,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("Create superuser: user created", "login", user.Login)
	return user, nil
}
