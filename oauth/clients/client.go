package clients

import (
	"crypto/sha256"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
)

// Client is a registered consumer application. Immutable after creation.
// The secret is stored only as a digest.
type Client struct {
	ID         uuid.UUID
	Name       string
	ClientID   string
	SecretHash []byte
	Scopes     mapset.Set[string]
	CreatedAt  time.Time
}

// HashSecret computes the at-rest digest of a client secret.
func HashSecret(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}
