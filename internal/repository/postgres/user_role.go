package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/authgate/internal/model"
)

var _ model.UserRoleStore = (*UserRoleRepository)(nil)

type UserRoleRepository struct {
	db *Connection
}

func NewUserRoleRepository(db *Connection) *UserRoleRepository {
	return &UserRoleRepository{db: db}
}

// Attach links the role to the user; an existing link yields
// ErrAlreadyAssigned and no second row.
func (r *UserRoleRepository) Attach(ctx context.Context, userID, roleID uuid.UUID) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	const query = `INSERT INTO user_role (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	tag, err := r.db.Exec(ctx, query, userID, roleID)
	if err != nil {
		return wrapError(err, "attach role")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAlreadyAssigned
	}

	return nil
}

func (r *UserRoleRepository) Detach(ctx context.Context, userID, roleID uuid.UUID) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM user_role WHERE user_id = $1 AND role_id = $2`, userID, roleID)
	if err != nil {
		return wrapError(err, "detach role")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotAssigned
	}

	return nil
}
