package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/authgate/internal/model"
)

var _ model.NetworkStore = (*NetworkRepository)(nil)

type NetworkRepository struct {
	db *Connection
}

func NewNetworkRepository(db *Connection) *NetworkRepository {
	return &NetworkRepository{db: db}
}

func (r *NetworkRepository) Exists(ctx context.Context, userID uuid.UUID, network string) (bool, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	const query = `SELECT EXISTS (SELECT 1 FROM login_network WHERE user_id = $1 AND network = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, network).Scan(&exists); err != nil {
		return false, wrapError(err, "check login network")
	}

	return exists, nil
}

// Create is idempotent on (user_id, network).
func (r *NetworkRepository) Create(ctx context.Context, link model.ExternalLink) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	const query = `INSERT INTO login_network (id, user_id, network) VALUES ($1, $2, $3)
				   ON CONFLICT (user_id, network) DO NOTHING`

	if _, err := r.db.Exec(ctx, query, link.ID, link.UserID, link.Network); err != nil {
		return wrapError(err, "create login network")
	}

	return nil
}
