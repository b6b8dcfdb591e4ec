package issuer

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"articleserver/oauth/storage"
	"articleserver/oauth/tokens"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrTokenCollision is returned when token generation keeps hitting the
// storage uniqueness constraint. With 256-bit values this indicates a broken
// entropy source, not bad luck.
var ErrTokenCollision = errors.New("could not generate a unique token")

const (
	tokenBytes       = 32
	maxIssueAttempts = 3
)

type Config struct {
	AccessTokenTTL  time.Duration `toml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `toml:"refresh_token_ttl"`
}

// Issuer mints opaque access and refresh tokens bound to a (user, client)
// pair. Uniqueness is enforced by the storage layer; on a duplicate value the
// issuer retries with a fresh one.
type Issuer struct {
	storage storage.TokenStorage
	cfg     Config
	log     *logrus.Entry
}

func New(l *logrus.Logger, cfg Config, st storage.TokenStorage) *Issuer {
	return &Issuer{
		storage: st,
		cfg:     cfg,
		log:     l.WithFields(map[string]interface{}{"from": "token-issuer"}),
	}
}

func (i *Issuer) IssueAccessToken(ctx context.Context, userID uuid.UUID, clientID string) (tokens.Token, error) {
	return i.issue(ctx, userID, clientID, i.storage.InsertAccessToken)
}

func (i *Issuer) IssueRefreshToken(ctx context.Context, userID uuid.UUID, clientID string) (tokens.Token, error) {
	return i.issue(ctx, userID, clientID, i.storage.InsertRefreshToken)
}

func (i *Issuer) issue(
	ctx context.Context,
	userID uuid.UUID,
	clientID string,
	insert func(context.Context, tokens.Token) error,
) (tokens.Token, error) {
	for attempt := 0; attempt < maxIssueAttempts; attempt++ {
		value, err := tokenValue()
		if err != nil {
			return tokens.Token{}, err
		}
		t := tokens.Token{
			UserID:   userID,
			ClientID: clientID,
			Value:    value,
			IssuedAt: time.Now(),
		}
		err = insert(ctx, t)
		if errors.Is(err, storage.ErrDuplicate) {
			i.log.WithField("attempt", attempt+1).Warn("token value collision")
			continue
		}
		if err != nil {
			return tokens.Token{}, err
		}
		return t, nil
	}
	return tokens.Token{}, ErrTokenCollision
}

// AccessToken looks up an access token by value. Expired tokens are deleted
// and reported as absent.
func (i *Issuer) AccessToken(ctx context.Context, value string) (tokens.Token, error) {
	t, err := i.storage.GetAccessToken(ctx, value)
	if err != nil {
		return tokens.Token{}, err
	}
	if expired(t.IssuedAt, i.cfg.AccessTokenTTL) {
		if err := i.storage.DeleteAccessToken(ctx, value); err != nil {
			i.log.WithError(err).Error("deleting expired access token")
		}
		return tokens.Token{}, storage.ErrNotFound
	}
	return t, nil
}

// RefreshToken looks up a refresh token by value, with the same lazy expiry
// behavior as AccessToken.
func (i *Issuer) RefreshToken(ctx context.Context, value string) (tokens.Token, error) {
	t, err := i.storage.GetRefreshToken(ctx, value)
	if err != nil {
		return tokens.Token{}, err
	}
	if expired(t.IssuedAt, i.cfg.RefreshTokenTTL) {
		if err := i.storage.DeleteRefreshToken(ctx, value); err != nil {
			i.log.WithError(err).Error("deleting expired refresh token")
		}
		return tokens.Token{}, storage.ErrNotFound
	}
	return t, nil
}

// RevokeRefreshToken removes a refresh token. Used to rotate a consumed
// token out of circulation.
func (i *Issuer) RevokeRefreshToken(ctx context.Context, value string) error {
	return i.storage.DeleteRefreshToken(ctx, value)
}

// AccessTokenTTL reports the configured access token lifetime, zero meaning
// no expiry.
func (i *Issuer) AccessTokenTTL() time.Duration {
	return i.cfg.AccessTokenTTL
}

func expired(issuedAt time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return time.Since(issuedAt) > ttl
}

func tokenValue() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
