package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"regexp"
	"time"

	"articleserver/auth/storage"
	"articleserver/auth/users"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/argon2"
)

var (
	ErrNotAuthorized = errors.New("unauthorized")
	ErrUserExists    = errors.New("username is taken")
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidName   = errors.New("invalid username")
	ErrEmptyPassword = errors.New("password must not be empty")
)

// argon2id parameters, see the package docs for the recommended values.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32

	saltLen = 32
)

var nameRegexp = regexp.MustCompile(`^[A-Za-z]\w*$`)

// Service owns user records and the password hashing discipline. Digests are
// computed with argon2id under a per-user random salt and compared in
// constant time.
type Service struct {
	storage storage.AuthStorage
	cfg     Config
	log     *logrus.Entry
}

func New(ctx context.Context, l *logrus.Logger, cfg Config, st storage.AuthStorage) (*Service, error) {
	s := Service{
		storage: st,
		cfg:     cfg,
		log:     l.WithFields(map[string]interface{}{"from": "auth-service"}),
	}
	if cfg.RootPassword != "" {
		if err := s.seedRoot(ctx); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func (s *Service) seedRoot(ctx context.Context) error {
	_, err := s.storage.GetUserByName(ctx, "root")
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	_, err = s.Register(ctx, "root", s.cfg.RootPassword)
	if err != nil {
		return err
	}
	s.log.Info("root user created")
	return nil
}

// Register creates a user with a fresh salt and digest. Duplicate usernames
// fail with ErrUserExists; the lookup namespace is case-sensitive.
func (s *Service) Register(ctx context.Context, name string, password string) (users.User, error) {
	if err := validateUserName(name); err != nil {
		return users.User{}, err
	}
	if password == "" {
		return users.User{}, ErrEmptyPassword
	}
	secret, err := newSecret(password)
	if err != nil {
		return users.User{}, err
	}
	user := users.User{
		ID:           uuid.New(),
		Name:         name,
		RegisteredAt: time.Now(),
	}
	err = s.storage.CreateUser(ctx, user, secret)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return users.User{}, ErrUserExists
		}
		return users.User{}, err
	}
	s.log.WithField("user", name).Info("user registered")
	return user, nil
}

// SetPassword rotates the user's salt and digest. The stored pair is replaced
// atomically; previously issued tokens are unaffected.
func (s *Service) SetPassword(ctx context.Context, name string, password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	secret, err := newSecret(password)
	if err != nil {
		return err
	}
	err = s.storage.UpdateUserSecret(ctx, name, secret)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// VerifyPassword recomputes the digest over the candidate under the stored
// salt. An unknown username and a wrong password are indistinguishable to the
// caller: both fail with ErrNotAuthorized.
func (s *Service) VerifyPassword(ctx context.Context, name string, candidate string) (users.User, error) {
	secret, err := s.storage.GetUserSecret(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// hash anyway, unknown names must cost as much as a mismatch
			hashPassword(candidate, make([]byte, saltLen))
			return users.User{}, ErrNotAuthorized
		}
		return users.User{}, err
	}
	digest := hashPassword(candidate, secret.Salt)
	if subtle.ConstantTimeCompare(digest, secret.PasswordHash) != 1 {
		return users.User{}, ErrNotAuthorized
	}
	user, err := s.storage.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return users.User{}, ErrNotAuthorized
		}
		return users.User{}, err
	}
	return user, nil
}

func (s *Service) ByUsername(ctx context.Context, name string) (users.User, error) {
	user, err := s.storage.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return users.User{}, ErrUserNotFound
		}
		return users.User{}, err
	}
	return user, nil
}

func (s *Service) ByID(ctx context.Context, id uuid.UUID) (users.User, error) {
	user, err := s.storage.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return users.User{}, ErrUserNotFound
		}
		return users.User{}, err
	}
	return user, nil
}

func validateUserName(name string) error {
	if name == "" || !nameRegexp.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}

func newSecret(password string) (users.Secret, error) {
	salt, err := randomSalt()
	if err != nil {
		return users.Secret{}, err
	}
	return users.Secret{
		PasswordHash: hashPassword(password, salt),
		Salt:         salt,
	}, nil
}

func hashPassword(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

func randomSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	_, err := rand.Read(salt)
	if err != nil {
		return nil, err
	}
	return salt, nil
}
