package tokens

import (
	"time"

	"github.com/google/uuid"
)

// Token is one issued bearer credential, access or refresh. The value is an
// opaque random string, unique within its kind's namespace. Records are never
// mutated after issuance.
type Token struct {
	UserID   uuid.UUID
	ClientID string
	Value    string
	IssuedAt time.Time
}

// Pair is the result of a successful grant exchange.
type Pair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int64
}
