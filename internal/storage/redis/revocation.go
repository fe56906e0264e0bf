package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dtroode/authgate/internal/model"
)

const keyPrefix = "revoked:"

var _ model.RevocationCache = (*RevocationCache)(nil)

// RevocationCache stores identifiers of logged-out access tokens as
// expiring keys.
type RevocationCache struct {
	client  goredis.UniversalClient
	timeout time.Duration
}

// NewRevocationCache creates a cache over client. Every call is bounded by
// timeout.
func NewRevocationCache(client goredis.UniversalClient, timeout time.Duration) *RevocationCache {
	return &RevocationCache{
		client:  client,
		timeout: timeout,
	}
}

// IsRevoked reports whether tokenID has been revoked and not yet expired.
func (c *RevocationCache) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	n, err := c.client.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("%w: failed to check revoked token: %w", model.ErrUpstreamUnavailable, err)
	}

	return n > 0, nil
}

// Revoke marks tokenID as revoked for ttl. A non-positive ttl means the
// token is already past its lifetime and nothing is stored.
func (c *RevocationCache) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.client.Set(ctx, keyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("%w: failed to store revoked token: %w", model.ErrUpstreamUnavailable, err)
	}

	return nil
}
