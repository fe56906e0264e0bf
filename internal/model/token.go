package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenKind distinguishes access tokens from refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// RoleClaim is a role snapshot embedded into a token at mint time.
type RoleClaim struct {
	Name    string `json:"name"`
	Service string `json:"service"`
}

// TokenPayload is the identity part of a token.
type TokenPayload struct {
	UserID uuid.UUID
	Roles  []RoleClaim
}

// Claims are the verified contents of a token.
type Claims struct {
	TokenID   string
	Subject   string
	UserID    uuid.UUID
	Roles     []RoleClaim
	IssuedAt  time.Time
	ExpiresAt time.Time
	Kind      TokenKind
}

// TokenPair is returned by a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenManager mints and validates signed tokens.
type TokenManager interface {
	Mint(subject string, payload TokenPayload, kind TokenKind) (string, Claims, error)
	Verify(token string, kind TokenKind) (Claims, error)
	ExtractClaims(token string) (Claims, error)
}

// RevocationCache keeps the identifiers of logged-out access tokens until
// they expire naturally.
type RevocationCache interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}
