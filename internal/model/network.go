package model

import (
	"context"

	"github.com/google/uuid"
)

// NetworkStore links accounts to external identity providers.
type NetworkStore interface {
	Exists(ctx context.Context, userID uuid.UUID, network string) (bool, error)
	Create(ctx context.Context, link ExternalLink) error
}

// ExternalLink records that a user signed in through a provider.
type ExternalLink struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	Network string
}

// ExternalProfile is what a provider tells us about its user.
type ExternalProfile struct {
	Login     string
	FirstName string
	LastName  string
}

// IdentityProvider exchanges a provider token for a profile.
type IdentityProvider interface {
	Exchange(ctx context.Context, token string) (ExternalProfile, error)
	AuthURL() string
}
