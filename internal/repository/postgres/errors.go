package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/authgate/internal/model"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// wrapError translates driver errors into the model taxonomy.
func wrapError(err error, action string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", model.ErrDuplicate, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: %s", model.ErrNotFound, pgErr.ConstraintName)
		}
		return fmt.Errorf("failed to %s: %w", action, err)
	}

	var connErr *pgconn.ConnectError
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) || errors.As(err, &connErr) {
		return fmt.Errorf("%w: failed to %s: %w", model.ErrUpstreamUnavailable, action, err)
	}

	return fmt.Errorf("failed to %s: %w", action, err)
}
