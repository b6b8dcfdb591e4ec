package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"articleserver/oauth/clients"
	"articleserver/oauth/storage"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrClientExists = errors.New("client already registered")

// Registry owns registered consumer applications. An unknown client id and a
// wrong secret both fail with ErrInvalidClient.
type Registry struct {
	storage storage.ClientStorage
	log     *logrus.Entry
}

func NewRegistry(l *logrus.Logger, st storage.ClientStorage) *Registry {
	return &Registry{
		storage: st,
		log:     l.WithFields(map[string]interface{}{"from": "client-registry"}),
	}
}

func (r *Registry) Register(ctx context.Context, name, clientID, secret string, scopes []string) (clients.Client, error) {
	client := clients.Client{
		ID:         uuid.New(),
		Name:       name,
		ClientID:   clientID,
		SecretHash: clients.HashSecret(secret),
		Scopes:     mapset.NewSet(scopes...),
		CreatedAt:  time.Now(),
	}
	err := r.storage.CreateClient(ctx, client)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return clients.Client{}, ErrClientExists
		}
		return clients.Client{}, err
	}
	r.log.WithField("client", name).Info("client registered")
	return client, nil
}

func (r *Registry) ByClientID(ctx context.Context, clientID string) (clients.Client, error) {
	return r.storage.GetClientByClientID(ctx, clientID)
}

// Validate resolves the client and checks its secret in constant time.
func (r *Registry) Validate(ctx context.Context, clientID, secret string) (clients.Client, error) {
	client, err := r.storage.GetClientByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// compare against an empty digest to keep timing uniform
			subtle.ConstantTimeCompare(clients.HashSecret(secret), nil)
			return clients.Client{}, ErrInvalidClient
		}
		return clients.Client{}, err
	}
	if subtle.ConstantTimeCompare(clients.HashSecret(secret), client.SecretHash) != 1 {
		return clients.Client{}, ErrInvalidClient
	}
	return client, nil
}
