package storage

import (
	"context"
	"errors"

	"articleserver/auth/users"

	"github.com/google/uuid"
)

// Sentinel errors that implementations translate engine errors into.
// Driver error values never cross this interface.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

type AuthStorage interface {
	CreateUser(ctx context.Context, user users.User, secret users.Secret) error
	GetUser(ctx context.Context, id uuid.UUID) (users.User, error)
	GetUserByName(ctx context.Context, name string) (users.User, error)
	GetUserSecret(ctx context.Context, name string) (users.Secret, error)
	UpdateUserSecret(ctx context.Context, name string, secret users.Secret) error
}
