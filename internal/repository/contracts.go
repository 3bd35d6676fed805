package repository

import (
	"context"

	"github.com/maxviazov/usagers-client/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple startup checks from the transport implementation.
type Pinger interface {
	Ping(ctx context.Context) error
}

// UserRepository declares the operations the /api/users resource offers.
// Implementations surface the taxonomy from errors.go rather than transport errors.
type UserRepository interface {
	List(ctx context.Context, q ListQuery) (PageResult[model.User], error)
	GetByID(ctx context.Context, id int64) (model.User, error)
	Create(ctx context.Context, in model.UserInput) (model.User, error)
	Update(ctx context.Context, id int64, in model.UserInput) (model.User, error)
	Delete(ctx context.Context, id int64) error
}
