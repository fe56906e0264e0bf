package model

import (
	"context"

	"github.com/google/uuid"
)

// Page bounds a list query.
type Page struct {
	Limit  int
	Offset int
}

type Creator[T any] interface {
	Create(ctx context.Context, entity T) (T, error)
}

type Reader[T any] interface {
	GetByID(ctx context.Context, id uuid.UUID) (T, error)
}

type Updater[P, T any] interface {
	UpdateByID(ctx context.Context, id uuid.UUID, patch P) (T, error)
}

type Remover interface {
	RemoveByID(ctx context.Context, id uuid.UUID) error
}

type Lister[T any] interface {
	List(ctx context.Context, page Page) ([]T, error)
}
