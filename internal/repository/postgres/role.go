package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/authgate/internal/model"
)

var _ model.RoleStore = (*RoleRepository)(nil)

type RoleRepository struct {
	db *Connection
}

func NewRoleRepository(db *Connection) *RoleRepository {
	return &RoleRepository{db: db}
}

func scanRole(row pgx.Row) (model.Role, error) {
	var role model.Role
	err := row.Scan(&role.ID, &role.Name, &role.Service)
	return role, err
}

func (r *RoleRepository) Create(ctx context.Context, role model.Role) (model.Role, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	const query = `INSERT INTO roles (id, name, service) VALUES ($1, $2, $3) RETURNING id, name, service`

	saved, err := scanRole(r.db.QueryRow(ctx, query, role.ID, role.Name, role.Service))
	if err != nil {
		return model.Role{}, wrapError(err, "create role")
	}

	return saved, nil
}

func (r *RoleRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Role, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	const query = `SELECT id, name, service FROM roles WHERE id = $1`

	role, err := scanRole(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return model.Role{}, wrapError(err, "get role by id")
	}

	return role, nil
}

func (r *RoleRepository) GetByNameAndService(ctx context.Context, name, service string) (model.Role, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	const query = `SELECT id, name, service FROM roles WHERE name = $1 AND service = $2`

	role, err := scanRole(r.db.QueryRow(ctx, query, name, service))
	if err != nil {
		return model.Role{}, wrapError(err, "get role by name")
	}

	return role, nil
}

func (r *RoleRepository) List(ctx context.Context, page model.Page) ([]model.Role, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	const query = `SELECT id, name, service FROM roles ORDER BY service, name LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, wrapError(err, "list roles")
	}
	defer rows.Close()

	roles := []model.Role{}
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, wrapError(err, "scan role")
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(err, "iterate roles")
	}

	return roles, nil
}

func (r *RoleRepository) UpdateByID(ctx context.Context, id uuid.UUID, patch model.RolePatch) (model.Role, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	const query = `UPDATE roles SET name = COALESCE($2, name), service = COALESCE($3, service)
				   WHERE id = $1 RETURNING id, name, service`

	role, err := scanRole(r.db.QueryRow(ctx, query, id, patch.Name, patch.Service))
	if err != nil {
		return model.Role{}, wrapError(err, "update role")
	}

	return role, nil
}

func (r *RoleRepository) RemoveByID(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return wrapError(err, "remove role")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
