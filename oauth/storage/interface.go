package storage

import (
	"context"
	"errors"

	"articleserver/oauth/clients"
	"articleserver/oauth/tokens"
)

// Sentinel errors that implementations translate engine errors into.
// Driver error values never cross this interface.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate value")
)

type ClientStorage interface {
	CreateClient(ctx context.Context, client clients.Client) error
	GetClientByClientID(ctx context.Context, clientID string) (clients.Client, error)
}

// TokenStorage persists access and refresh tokens in separate uniqueness
// namespaces. Inserting a colliding value fails with ErrDuplicate.
type TokenStorage interface {
	InsertAccessToken(ctx context.Context, token tokens.Token) error
	InsertRefreshToken(ctx context.Context, token tokens.Token) error
	GetAccessToken(ctx context.Context, value string) (tokens.Token, error)
	GetRefreshToken(ctx context.Context, value string) (tokens.Token, error)
	DeleteAccessToken(ctx context.Context, value string) error
	DeleteRefreshToken(ctx context.Context, value string) error
}
