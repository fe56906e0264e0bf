package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LoginHistoryStore is the append-only audit trail of successful logins.
type LoginHistoryStore interface {
	Append(ctx context.Context, userID uuid.UUID, at time.Time) error
	ListByUser(ctx context.Context, userID uuid.UUID, page Page) ([]LoginHistoryRecord, error)
}

// LoginHistoryRecord is a single successful login.
type LoginHistoryRecord struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	LoginAt time.Time
}
