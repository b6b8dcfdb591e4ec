package users

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can authenticate with a password and own issued
// tokens. The plaintext password is never stored, only the salted digest.
type User struct {
	ID           uuid.UUID
	Name         string
	RegisteredAt time.Time
}

// Secret holds the password digest together with the salt it was computed
// under. The two fields are only ever replaced as a pair.
type Secret struct {
	PasswordHash []byte
	Salt         []byte
}
