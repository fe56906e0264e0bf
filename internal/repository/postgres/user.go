package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/authgate/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, login, password, first_name, last_name, created_at, refresh_token`

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Login, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.CreatedAt, &user.RefreshToken,
	)
	return user, err
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `INSERT INTO users (id, login, password, first_name, last_name, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Login, user.PasswordHash, user.FirstName, user.LastName, user.CreatedAt,
	))
	if err != nil {
		return model.User{}, wrapError(err, "create user")
	}

	return saved, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return model.User{}, wrapError(err, "get user by id")
	}

	return user, nil
}

func (r *UserRepository) GetByLogin(ctx context.Context, login string) (model.UserWithRoles, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE login = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, login))
	if err != nil {
		return model.UserWithRoles{}, wrapError(err, "get user by login")
	}

	return r.attachRoles(ctx, user)
}

func (r *UserRepository) GetWithRoles(ctx context.Context, id uuid.UUID) (model.UserWithRoles, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return model.UserWithRoles{}, wrapError(err, "get user by id")
	}

	return r.attachRoles(ctx, user)
}

func (r *UserRepository) attachRoles(ctx context.Context, user model.User) (model.UserWithRoles, error) {
	roles, err := r.rolesOf(ctx, []uuid.UUID{user.ID})
	if err != nil {
		return model.UserWithRoles{}, err
	}

	return model.UserWithRoles{User: user, Roles: roles[user.ID]}, nil
}

func (r *UserRepository) rolesOf(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]model.Role, error) {
	ids := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		ids = append(ids, id.String())
	}

	query := `SELECT ur.user_id, r.id, r.name, r.service
			  FROM user_role ur JOIN roles r ON r.id = ur.role_id
			  WHERE ur.user_id = ANY($1::uuid[])
			  ORDER BY r.service, r.name`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, wrapError(err, "get user roles")
	}
	defer rows.Close()

	roles := make(map[uuid.UUID][]model.Role, len(userIDs))
	for rows.Next() {
		var (
			userID uuid.UUID
			role   model.Role
		)
		if err := rows.Scan(&userID, &role.ID, &role.Name, &role.Service); err != nil {
			return nil, wrapError(err, "scan user role")
		}
		roles[userID] = append(roles[userID], role)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(err, "iterate user roles")
	}

	return roles, nil
}

func (r *UserRepository) List(ctx context.Context, page model.Page) ([]model.UserWithRoles, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at, login LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, wrapError(err, "list users")
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, wrapError(err, "scan user")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(err, "iterate users")
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}
	roles, err := r.rolesOf(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]model.UserWithRoles, 0, len(users))
	for _, user := range users {
		result = append(result, model.UserWithRoles{User: user, Roles: roles[user.ID]})
	}

	return result, nil
}

func (r *UserRepository) UpdateByID(ctx context.Context, id uuid.UUID, patch model.UserPatch) (model.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `UPDATE users SET
				login = COALESCE($2, login),
				password = COALESCE($3, password),
				first_name = COALESCE($4, first_name),
				last_name = COALESCE($5, last_name)
			  WHERE id = $1
			  RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query,
		id, patch.Login, patch.PasswordHash, patch.FirstName, patch.LastName,
	))
	if err != nil {
		return model.User{}, wrapError(err, "update user")
	}

	return user, nil
}

func (r *UserRepository) RemoveByID(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return wrapError(err, "remove user")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *UserRepository) GetRefreshToken(ctx context.Context, id uuid.UUID) (*string, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var token *string
	err := r.db.QueryRow(ctx, `SELECT refresh_token FROM users WHERE id = $1`, id).Scan(&token)
	if err != nil {
		return nil, wrapError(err, "get refresh token")
	}

	return token, nil
}

// UpdateRefreshToken replaces the stored refresh token in a single statement;
// concurrent logins resolve as last write wins.
func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE users SET refresh_token = $2 WHERE id = $1`, id, token)
	if err != nil {
		return wrapError(err, "update refresh token")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", model.ErrNotFound, id)
	}

	return nil
}
