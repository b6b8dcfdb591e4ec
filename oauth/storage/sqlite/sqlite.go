package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
	"time"

	"articleserver/gen/auth/model"
	"articleserver/gen/auth/table"
	"articleserver/oauth/clients"
	"articleserver/oauth/storage"
	"articleserver/oauth/tokens"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

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
		ID:         client.ID.String(),
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
		WHERE(table.Clients.ClientID.EQ(sqlite.String(clientID))).
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
	return s.insertToken(ctx, table.AccessTokens.Table, table.AccessTokens.MutableColumns, token)
}

func (s *Storage) InsertRefreshToken(ctx context.Context, token tokens.Token) error {
	return s.insertToken(ctx, table.RefreshTokens.Table, table.RefreshTokens.MutableColumns, token)
}

func (s *Storage) insertToken(ctx context.Context, t sqlite.Table, columns sqlite.ColumnList, token tokens.Token) error {
	_, err := t.
		INSERT(columns).
		VALUES(token.UserID.String(), token.ClientID, token.Value, token.IssuedAt).
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
		WHERE(table.AccessTokens.Token.EQ(sqlite.String(value))).
		QueryContext(ctx, s.db, &dbToken)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return tokens.Token{}, storage.ErrNotFound
		}
		return tokens.Token{}, err
	}
	return convertToken(dbToken.UserID, dbToken.ClientID, dbToken.Token, dbToken.CreatedAt)
}

func (s *Storage) GetRefreshToken(ctx context.Context, value string) (tokens.Token, error) {
	var dbToken model.RefreshTokens
	err := table.RefreshTokens.
		SELECT(table.RefreshTokens.AllColumns).
		FROM(table.RefreshTokens).
		WHERE(table.RefreshTokens.Token.EQ(sqlite.String(value))).
		QueryContext(ctx, s.db, &dbToken)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return tokens.Token{}, storage.ErrNotFound
		}
		return tokens.Token{}, err
	}
	return convertToken(dbToken.UserID, dbToken.ClientID, dbToken.Token, dbToken.CreatedAt)
}

func (s *Storage) DeleteAccessToken(ctx context.Context, value string) error {
	_, err := table.AccessTokens.
		DELETE().
		WHERE(table.AccessTokens.Token.EQ(sqlite.String(value))).
		ExecContext(ctx, s.db)
	return err
}

func (s *Storage) DeleteRefreshToken(ctx context.Context, value string) error {
	_, err := table.RefreshTokens.
		DELETE().
		WHERE(table.RefreshTokens.Token.EQ(sqlite.String(value))).
		ExecContext(ctx, s.db)
	return err
}

func convertClient(client model.Clients) (clients.Client, error) {
	id, err := uuid.Parse(client.ID)
	if err != nil {
		return clients.Client{}, err
	}
	secretHash, err := hex.DecodeString(client.SecretHash)
	if err != nil {
		return clients.Client{}, err
	}
	return clients.Client{
		ID:         id,
		Name:       client.Name,
		ClientID:   client.ClientID,
		SecretHash: secretHash,
		Scopes:     splitScopes(client.Scopes),
		CreatedAt:  client.CreatedAt,
	}, nil
}

func convertToken(userID, clientID, value string, createdAt time.Time) (tokens.Token, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return tokens.Token{}, err
	}
	return tokens.Token{
		UserID:   id,
		ClientID: clientID,
		Value:    value,
		IssuedAt: createdAt,
	}, nil
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
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
