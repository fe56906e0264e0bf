package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/authgate/internal/model"
)

// History reads the login audit trail.
type History struct {
	history model.LoginHistoryStore
}

func NewHistory(history model.LoginHistoryStore) *History {
	return &History{history: history}
}

func (s *History) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.LoginHistoryRecord, error) {
	records, err := s.history.ListByUser(ctx, userID, NormalizePage(limit, offset))
	if err != nil {
		return nil, fmt.Errorf("failed to list login history: %w", err)
	}
	return records, nil
}
