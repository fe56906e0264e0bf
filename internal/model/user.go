package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Creator[User]
	Reader[User]
	Updater[UserPatch, User]
	Remover
	Lister[UserWithRoles]

	GetByLogin(ctx context.Context, login string) (UserWithRoles, error)
	GetWithRoles(ctx context.Context, id uuid.UUID) (UserWithRoles, error)
	GetRefreshToken(ctx context.Context, id uuid.UUID) (*string, error)
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error
}

// UserRoleStore manages the user to role relation.
type UserRoleStore interface {
	Attach(ctx context.Context, userID, roleID uuid.UUID) error
	Detach(ctx context.Context, userID, roleID uuid.UUID) error
}

// User represents a stored account.
type User struct {
	ID           uuid.UUID
	Login        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	RefreshToken *string
}

// UserWithRoles is a user together with its assigned roles.
type UserWithRoles struct {
	User
	Roles []Role
}

// RoleClaims snapshots the assigned roles for embedding into a token.
func (u UserWithRoles) RoleClaims() []RoleClaim {
	claims := make([]RoleClaim, 0, len(u.Roles))
	for _, role := range u.Roles {
		claims = append(claims, RoleClaim{Name: role.Name, Service: role.Service})
	}
	return claims
}

// UserPatch holds a partial update; nil fields are left untouched.
type UserPatch struct {
	Login        *string
	PasswordHash *string
	FirstName    *string
	LastName     *string
}

// Credentials are presented on password login.
type Credentials struct {
	Login    string
	Password string
}

// NewUser is the input of account creation.
type NewUser struct {
	Login     string
	Password  string
	FirstName string
	LastName  string
}

// UserChanges is the input of a partial account update.
type UserChanges struct {
	Login     *string
	Password  *string
	FirstName *string
	LastName  *string
}

// PasswordHasher hashes and compares account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
