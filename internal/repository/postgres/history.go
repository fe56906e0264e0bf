package postgres

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/authgate/internal/model"
)

var _ model.LoginHistoryStore = (*LoginHistoryRepository)(nil)

// partitionTags are the list partitions of login_history.
var partitionTags = [...]string{"left", "right"}

type LoginHistoryRepository struct {
	db *Connection
}

func NewLoginHistoryRepository(db *Connection) *LoginHistoryRepository {
	return &LoginHistoryRepository{db: db}
}

func (r *LoginHistoryRepository) Append(ctx context.Context, userID uuid.UUID, at time.Time) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	const query = `INSERT INTO login_history (id, user_id, login_at, random_tag) VALUES ($1, $2, $3, $4)`

	tag := partitionTags[rand.IntN(len(partitionTags))]
	if _, err := r.db.Exec(ctx, query, uuid.New(), userID, at, tag); err != nil {
		return wrapError(err, "append login history")
	}

	return nil
}

func (r *LoginHistoryRepository) ListByUser(ctx context.Context, userID uuid.UUID, page model.Page) ([]model.LoginHistoryRecord, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	const query = `SELECT id, user_id, login_at FROM login_history
				   WHERE user_id = $1 ORDER BY login_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, wrapError(err, "list login history")
	}
	defer rows.Close()

	records := []model.LoginHistoryRecord{}
	for rows.Next() {
		var record model.LoginHistoryRecord
		if err := rows.Scan(&record.ID, &record.UserID, &record.LoginAt); err != nil {
			return nil, wrapError(err, "scan login history")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(err, "iterate login history")
	}

	return records, nil
}
