package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"articleserver/auth/storage"
	"articleserver/auth/users"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type memStorage struct {
	users   map[string]users.User
	secrets map[string]users.Secret
}

func newMemStorage() *memStorage {
	return &memStorage{
		users:   make(map[string]users.User),
		secrets: make(map[string]users.Secret),
	}
}

func (m *memStorage) CreateUser(_ context.Context, user users.User, secret users.Secret) error {
	if _, ok := m.users[user.Name]; ok {
		return storage.ErrDuplicate
	}
	m.users[user.Name] = user
	m.secrets[user.Name] = secret
	return nil
}

func (m *memStorage) GetUser(_ context.Context, id uuid.UUID) (users.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return users.User{}, storage.ErrNotFound
}

func (m *memStorage) GetUserByName(_ context.Context, name string) (users.User, error) {
	u, ok := m.users[name]
	if !ok {
		return users.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (m *memStorage) GetUserSecret(_ context.Context, name string) (users.Secret, error) {
	s, ok := m.secrets[name]
	if !ok {
		return users.Secret{}, storage.ErrNotFound
	}
	return s, nil
}

func (m *memStorage) UpdateUserSecret(_ context.Context, name string, secret users.Secret) error {
	if _, ok := m.secrets[name]; !ok {
		return storage.ErrNotFound
	}
	m.secrets[name] = secret
	return nil
}

func newTestService(t *testing.T, cfg Config) (*Service, *memStorage) {
	t.Helper()
	st := newMemStorage()
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	svc, err := New(context.Background(), l, cfg, st)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return svc, st
}

func TestRegisterAndVerify(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == uuid.Nil {
		t.Error("Register() returned zero user id")
	}

	got, err := svc.VerifyPassword(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("VerifyPassword() user = %v, want %v", got.ID, user.ID)
	}
}

func TestVerifyFailuresAreUniform(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, wrongPass := svc.VerifyPassword(ctx, "alice", "wrong")
	_, unknownUser := svc.VerifyPassword(ctx, "nobody", "wrong")

	if !errors.Is(wrongPass, ErrNotAuthorized) {
		t.Errorf("wrong password error = %v, want ErrNotAuthorized", wrongPass)
	}
	if !errors.Is(unknownUser, ErrNotAuthorized) {
		t.Errorf("unknown user error = %v, want ErrNotAuthorized", unknownUser)
	}
	if wrongPass.Error() != unknownUser.Error() {
		t.Errorf("failure messages differ: %q vs %q", wrongPass, unknownUser)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "empty name", username: "", password: "pw", wantErr: ErrInvalidName},
		{name: "leading digit", username: "1alice", password: "pw", wantErr: ErrInvalidName},
		{name: "space in name", username: "al ice", password: "pw", wantErr: ErrInvalidName},
		{name: "empty password", username: "alice", password: "", wantErr: ErrEmptyPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "pw"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	_, err := svc.Register(ctx, "alice", "other")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("second Register() error = %v, want ErrUserExists", err)
	}
	// lookups are case-sensitive, Alice is a different name
	if _, err := svc.Register(ctx, "Alice", "pw"); err != nil {
		t.Errorf("Register(Alice) error = %v", err)
	}
}

func TestSetPasswordRotatesSecret(t *testing.T) {
	svc, st := newTestService(t, Config{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "old"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	before := st.secrets["alice"]

	if err := svc.SetPassword(ctx, "alice", "new"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}
	after := st.secrets["alice"]

	if bytes.Equal(before.Salt, after.Salt) {
		t.Error("SetPassword() kept the old salt")
	}
	if bytes.Equal(before.PasswordHash, after.PasswordHash) {
		t.Error("SetPassword() kept the old digest")
	}

	if _, err := svc.VerifyPassword(ctx, "alice", "old"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("old password error = %v, want ErrNotAuthorized", err)
	}
	if _, err := svc.VerifyPassword(ctx, "alice", "new"); err != nil {
		t.Errorf("new password error = %v", err)
	}
}

func TestSetPasswordUnknownUser(t *testing.T) {
	svc, _ := newTestService(t, Config{})

	err := svc.SetPassword(context.Background(), "nobody", "pw")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("SetPassword() error = %v, want ErrUserNotFound", err)
	}
}

func TestRootSeeding(t *testing.T) {
	svc, _ := newTestService(t, Config{RootPassword: "rootpw"})
	ctx := context.Background()

	root, err := svc.VerifyPassword(ctx, "root", "rootpw")
	if err != nil {
		t.Fatalf("VerifyPassword(root) error = %v", err)
	}
	if root.Name != "root" {
		t.Errorf("seeded user name = %q, want root", root.Name)
	}
}
