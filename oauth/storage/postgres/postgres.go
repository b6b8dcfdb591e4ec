package postgres

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
	"time"

	"articleserver/gen/auth/public/model"
	"articleserver/gen/auth/public/table"
	"articleserver/oauth/clients"
	"articleserver/oauth/storage"
	"articleserver/oauth/tokens"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // postgresql driver
	"github.com/sirupsen/logrus"
)

const uniqueViolationCode = "23505"

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.ClientStorage = (*Storage)(nil)
var _ storage.TokenStorage = (*Storage)(nil)

func New(l *logrus.Logger, db *sql.DB) *Storage {
	return &Storage{
		db:  db,
		log: l.WithFields(map[string]interface{}{"from": "oauth-storage"}),
	}
}

func (s *Storage) CreateClient(ctx context.Context, client clients.Client) error {
	dbClient := model.Clients{
		ID:         client.ID,
		Name:       client.Name,
		ClientID:   client.ClientID,
		SecretHash: hex.EncodeToString(client.SecretHash),
		Scopes:     joinScopes(client.Scopes),
		CreatedAt:  client.CreatedAt,
	}
	_, err := table.Clients.
		INSERT(table.Clients.AllColumns).
		MODEL(dbClient).
		ExecContext(ctx, s.db)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *Storage) GetClientByClientID(ctx context.Context, clientID string) (clients.Client, error) {
	var dbClient model.Clients
	err := table.Clients.
		SELECT(table.Clients.AllColumns).
		FROM(table.Clients).
		WHERE(table.Clients.ClientID.EQ(postgres.String(clientID))).
		QueryContext(ctx, s.db, &dbClient)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return clients.Client{}, storage.ErrNotFound
		}
		return clients.Client{}, err
	}
	return convertClient(dbClient)
}

func (s *Storage) InsertAccessToken(ctx context.Context, token tokens.Token) error {
	_, err := table.AccessTokens.
		INSERT(table.AccessTokens.MutableColumns).
		VALUES(token.UserID, token.ClientID, token.Value, token.IssuedAt).
		ExecContext(ctx, s.db)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *Storage) InsertRefreshToken(ctx context.Context, token tokens.Token) error {
	_, err := table.RefreshTokens.
		INSERT(table.RefreshTokens.MutableColumns).
		VALUES(token.UserID, token.ClientID, token.Value, token.IssuedAt).
		ExecContext(ctx, s.db)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *Storage) GetAccessToken(ctx context.Context, value string) (tokens.Token, error) {
	var dbToken model.AccessTokens
	err := table.AccessTokens.
		SELECT(table.AccessTokens.AllColumns).
		FROM(table.AccessTokens).
		WHERE(table.AccessTokens.Token.EQ(postgres.String(value))).
		QueryContext(ctx, s.db, &dbToken)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return tokens.Token{}, storage.ErrNotFound
		}
		return tokens.Token{}, err
	}
	return convertToken(dbToken.UserID, dbToken.ClientID, dbToken.Token, dbToken.CreatedAt), nil
}

func (s *Storage) GetRefreshToken(ctx context.Context, value string) (tokens.Token, error) {
	var dbToken model.RefreshTokens
	err := table.RefreshTokens.
		SELECT(table.RefreshTokens.AllColumns).
		FROM(table.RefreshTokens).
		WHERE(table.RefreshTokens.Token.EQ(postgres.String(value))).
		QueryContext(ctx, s.db, &dbToken)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return tokens.Token{}, storage.ErrNotFound
		}
		return tokens.Token{}, err
	}
	return convertToken(dbToken.UserID, dbToken.ClientID, dbToken.Token, dbToken.CreatedAt), nil
}

func (s *Storage) DeleteAccessToken(ctx context.Context, value string) error {
	_, err := table.AccessTokens.
		DELETE().
		WHERE(table.AccessTokens.Token.EQ(postgres.String(value))).
		ExecContext(ctx, s.db)
	return err
}

func (s *Storage) DeleteRefreshToken(ctx context.Context, value string) error {
	_, err := table.RefreshTokens.
		DELETE().
		WHERE(table.RefreshTokens.Token.EQ(postgres.String(value))).
		ExecContext(ctx, s.db)
	return err
}

func convertClient(client model.Clients) (clients.Client, error) {
	secretHash, err := hex.DecodeString(client.SecretHash)
	if err != nil {
		return clients.Client{}, err
	}
	return clients.Client{
		ID:         client.ID,
		Name:       client.Name,
		ClientID:   client.ClientID,
		SecretHash: secretHash,
		Scopes:     splitScopes(client.Scopes),
		CreatedAt:  client.CreatedAt,
	}, nil
}

func convertToken(userID uuid.UUID, clientID, value string, createdAt time.Time) tokens.Token {
	return tokens.Token{
		UserID:   userID,
		ClientID: clientID,
		Value:    value,
		IssuedAt: createdAt,
	}
}

func joinScopes(scopes mapset.Set[string]) string {
	if scopes == nil {
		return ""
	}
	sorted := scopes.ToSlice()
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}

func splitScopes(s string) mapset.Set[string] {
	set := mapset.NewSet[string]()
	for _, scope := range strings.Fields(s) {
		set.Add(scope)
	}
	return set
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return false
}
