package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/authgate/internal/logger"
	"github.com/dtroode/authgate/internal/model"
)

// Roles manages role definitions. The superrole cannot be created, renamed
// into or removed through it.
type Roles struct {
	roles     model.RoleStore
	superrole string
	logger    *logger.Logger
}

func NewRoles(roles model.RoleStore, superrole string, logger *logger.Logger) *Roles {
	return &Roles{
		roles:     roles,
		superrole: superrole,
		logger:    logger,
	}
}

func (s *Roles) List(ctx context.Context, limit, offset int) ([]model.Role, error) {
	roles, err := s.roles.List(ctx, NormalizePage(limit, offset))
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

func (s *Roles) Get(ctx context.Context, id uuid.UUID) (model.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return model.Role{}, fmt.Errorf("failed to get role %s: %w", id, err)
	}
	return role, nil
}

func (s *Roles) Create(ctx context.Context, name, service string) (model.Role, error) {
	name, err := requireText("name", name, maxRoleLength)
	if err != nil {
		return model.Role{}, err
	}
	service, err = requireText("service", service, maxRoleLength)
	if err != nil {
		return model.Role{}, err
	}
	if name == s.superrole {
		return model.Role{}, model.ErrReservedRole
	}

	role, err := s.roles.Create(ctx, model.Role{ID: uuid.New(), Name: name, Service: service})
	if err != nil {
		if !errors.Is(err, model.ErrDuplicate) {
			s.logger.Error("Roles service: failed to create role",
				"name", name,
				"service", service,
				"error", err.Error())
		}
		return model.Role{}, fmt.Errorf("failed to create role: %w", err)
	}

	s.logger.Info("Roles service: role created",
		"role_id", role.ID,
		"name", role.Name,
		"service", role.Service)

	return role, nil
}

func (s *Roles) Update(ctx context.Context, id uuid.UUID, patch model.RolePatch) (model.Role, error) {
	if patch.Name != nil {
		name, err := requireText("name", *patch.Name, maxRoleLength)
		if err != nil {
			return model.Role{}, err
		}
		if name == s.superrole {
			return model.Role{}, model.ErrReservedRole
		}
		patch.Name = &name
	}
	if patch.Service != nil {
		service, err := requireText("service", *patch.Service, maxRoleLength)
		if err != nil {
			return model.Role{}, err
		}
		patch.Service = &service
	}

	current, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return model.Role{}, fmt.Errorf("failed to get role %s: %w", id, err)
	}
	if current.Name == s.superrole {
		return model.Role{}, model.ErrReservedRole
	}

	role, err := s.roles.UpdateByID(ctx, id, patch)
	if err != nil {
		return model.Role{}, fmt.Errorf("failed to update role %s: %w", id, err)
	}

	s.logger.Info("Roles service: role updated",
		"role_id", role.ID,
		"name", role.Name,
		"service", role.Service)

	return role, nil
}

func (s *Roles) Remove(ctx context.Context, id uuid.UUID) error {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get role %s: %w", id, err)
	}
	if role.Name == s.superrole {
		return model.ErrReservedRole
	}

	if err := s.roles.RemoveByID(ctx, id); err != nil {
		return fmt.Errorf("failed to remove role %s: %w", id, err)
	}

	s.logger.Info("Roles service: role removed",
		"role_id", id)

	return nil
}
