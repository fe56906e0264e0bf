package model

import (
	"context"

	"github.com/google/uuid"
)

// RoleStore defines persistence operations for roles.
type RoleStore interface {
	Creator[Role]
	Reader[Role]
	Updater[RolePatch, Role]
	Remover
	Lister[Role]

	GetByNameAndService(ctx context.Context, name, service string) (Role, error)
}

// Role is a named permission scoped to a service.
type Role struct {
	ID      uuid.UUID
	Name    string
	Service string
}

// RolePatch holds a partial update; nil fields are left untouched.
type RolePatch struct {
	Name    *string
	Service *string
}
