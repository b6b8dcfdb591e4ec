package service

import (
	"context"
	"errors"

	authservice "articleserver/auth/service"
	"articleserver/auth/users"
	"articleserver/oauth/issuer"
	"articleserver/oauth/storage"
	"articleserver/oauth/tokens"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Grant types accepted by Exchange.
const (
	GrantPassword = "password"
	GrantRefresh  = "refresh_token"
)

// Terminal outcomes of a token exchange, mapped by the boundary to OAuth
// error codes. ErrInvalidGrant covers every credential failure uniformly so
// responses cannot reveal whether a username exists.
var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInvalidClient  = errors.New("invalid_client")
	ErrInvalidGrant   = errors.New("invalid_grant")
	ErrNotAuthorized  = errors.New("unauthorized")
)

// TokenRequest carries the fields of a POST /oauth/token form.
type TokenRequest struct {
	GrantType    string
	Username     string
	Password     string
	RefreshToken string
	ClientID     string
	ClientSecret string
}

func (r TokenRequest) validate() error {
	if r.ClientID == "" || r.ClientSecret == "" {
		return ErrInvalidRequest
	}
	switch r.GrantType {
	case GrantPassword:
		if r.Username == "" || r.Password == "" {
			return ErrInvalidRequest
		}
	case GrantRefresh:
		if r.RefreshToken == "" {
			return ErrInvalidRequest
		}
	default:
		return ErrInvalidRequest
	}
	return nil
}

// Identity is a resolved bearer token: the user it belongs to and the scopes
// of the client it was issued through.
type Identity struct {
	User   users.User
	Scopes mapset.Set[string]
}

// Service implements the password and refresh_token exchanges and bearer
// authentication, composing the credential store, client registry and token
// issuer.
type Service struct {
	registry *Registry
	issuer   *issuer.Issuer
	creds    *authservice.Service
	log      *logrus.Entry
}

func New(ctx context.Context, l *logrus.Logger, cfg Config, registry *Registry, iss *issuer.Issuer, creds *authservice.Service) (*Service, error) {
	s := Service{
		registry: registry,
		issuer:   iss,
		creds:    creds,
		log:      l.WithFields(map[string]interface{}{"from": "oauth-service"}),
	}
	if cfg.Client.ClientID != "" {
		if err := s.seedClient(ctx, cfg.Client); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func (s *Service) seedClient(ctx context.Context, seed ClientSeed) error {
	_, err := s.registry.ByClientID(ctx, seed.ClientID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	_, err = s.registry.Register(ctx, seed.Name, seed.ClientID, seed.Secret, seed.Scopes)
	return err
}

// Exchange runs one grant request to a terminal outcome: a fresh token pair,
// ErrInvalidRequest, ErrInvalidClient or ErrInvalidGrant. Malformed requests
// are rejected before any store is consulted.
func (s *Service) Exchange(ctx context.Context, req TokenRequest) (tokens.Pair, error) {
	if err := req.validate(); err != nil {
		return tokens.Pair{}, err
	}

	client, err := s.registry.Validate(ctx, req.ClientID, req.ClientSecret)
	if err != nil {
		return tokens.Pair{}, err
	}

	var userID uuid.UUID
	switch req.GrantType {
	case GrantPassword:
		user, err := s.creds.VerifyPassword(ctx, req.Username, req.Password)
		if err != nil {
			if errors.Is(err, authservice.ErrNotAuthorized) {
				return tokens.Pair{}, ErrInvalidGrant
			}
			return tokens.Pair{}, err
		}
		userID = user.ID
	case GrantRefresh:
		t, err := s.issuer.RefreshToken(ctx, req.RefreshToken)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return tokens.Pair{}, ErrInvalidGrant
			}
			return tokens.Pair{}, err
		}
		if t.ClientID != client.ClientID {
			return tokens.Pair{}, ErrInvalidGrant
		}
		// refresh tokens are single use
		if err := s.issuer.RevokeRefreshToken(ctx, req.RefreshToken); err != nil {
			return tokens.Pair{}, err
		}
		userID = t.UserID
	}

	access, err := s.issuer.IssueAccessToken(ctx, userID, client.ClientID)
	if err != nil {
		return tokens.Pair{}, err
	}
	refresh, err := s.issuer.IssueRefreshToken(ctx, userID, client.ClientID)
	if err != nil {
		return tokens.Pair{}, err
	}

	s.log.WithFields(map[string]interface{}{
		"client": client.ClientID,
		"grant":  req.GrantType,
	}).Info("tokens issued")

	return tokens.Pair{
		AccessToken:  access.Value,
		RefreshToken: refresh.Value,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.issuer.AccessTokenTTL().Seconds()),
	}, nil
}

// Authenticate resolves a bearer token value to the user it was issued to.
// Unknown, expired and orphaned tokens all fail with ErrNotAuthorized.
func (s *Service) Authenticate(ctx context.Context, tokenValue string) (Identity, error) {
	if tokenValue == "" {
		return Identity{}, ErrNotAuthorized
	}
	t, err := s.issuer.AccessToken(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Identity{}, ErrNotAuthorized
		}
		return Identity{}, err
	}
	user, err := s.creds.ByID(ctx, t.UserID)
	if err != nil {
		if errors.Is(err, authservice.ErrUserNotFound) {
			return Identity{}, ErrNotAuthorized
		}
		return Identity{}, err
	}
	scopes := mapset.NewSet[string]()
	if client, err := s.registry.ByClientID(ctx, t.ClientID); err == nil && client.Scopes != nil {
		scopes = client.Scopes
	}
	return Identity{User: user, Scopes: scopes}, nil
}
