package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/authgate/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures persistence operations needed by handlers.
// Implementations must enforce email uniqueness themselves and report a
// violation as ErrAlreadyExists.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Close(ctx context.Context) error
}
