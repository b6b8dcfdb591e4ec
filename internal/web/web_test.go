package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	authservice "articleserver/auth/service"
	authstorage "articleserver/auth/storage"
	"articleserver/auth/users"
	"articleserver/internal/config"
	"articleserver/internal/domain"
	articleservice "articleserver/internal/service"
	articlestorage "articleserver/internal/storage"
	"articleserver/oauth/clients"
	"articleserver/oauth/issuer"
	oauthservice "articleserver/oauth/service"
	oauthstorage "articleserver/oauth/storage"
	"articleserver/oauth/tokens"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type memArticles struct {
	articles map[uuid.UUID]domain.Article
}

func (m *memArticles) List(_ context.Context) ([]domain.Article, error) {
	out := make([]domain.Article, 0, len(m.articles))
	for _, a := range m.articles {
		out = append(out, a)
	}
	return out, nil
}

func (m *memArticles) Get(_ context.Context, id uuid.UUID) (domain.Article, error) {
	a, ok := m.articles[id]
	if !ok {
		return domain.Article{}, articlestorage.ErrNotFound
	}
	return a, nil
}

func (m *memArticles) Create(_ context.Context, a domain.Article) (domain.Article, error) {
	m.articles[a.ID] = a
	return a, nil
}

func (m *memArticles) Update(_ context.Context, a domain.Article) (domain.Article, error) {
	if _, ok := m.articles[a.ID]; !ok {
		return domain.Article{}, articlestorage.ErrNotFound
	}
	m.articles[a.ID] = a
	return a, nil
}

func (m *memArticles) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.articles[id]; !ok {
		return articlestorage.ErrNotFound
	}
	delete(m.articles, id)
	return nil
}

type memUsers struct {
	users   map[string]users.User
	secrets map[string]users.Secret
}

func (m *memUsers) CreateUser(_ context.Context, user users.User, secret users.Secret) error {
	if _, ok := m.users[user.Name]; ok {
		return authstorage.ErrDuplicate
	}
	m.users[user.Name] = user
	m.secrets[user.Name] = secret
	return nil
}

func (m *memUsers) GetUser(_ context.Context, id uuid.UUID) (users.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return users.User{}, authstorage.ErrNotFound
}

func (m *memUsers) GetUserByName(_ context.Context, name string) (users.User, error) {
	u, ok := m.users[name]
	if !ok {
		return users.User{}, authstorage.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetUserSecret(_ context.Context, name string) (users.Secret, error) {
	s, ok := m.secrets[name]
	if !ok {
		return users.Secret{}, authstorage.ErrNotFound
	}
	return s, nil
}

func (m *memUsers) UpdateUserSecret(_ context.Context, name string, secret users.Secret) error {
	if _, ok := m.secrets[name]; !ok {
		return authstorage.ErrNotFound
	}
	m.secrets[name] = secret
	return nil
}

type memOAuth struct {
	clients map[string]clients.Client
	access  map[string]tokens.Token
	refresh map[string]tokens.Token
}

func (m *memOAuth) CreateClient(_ context.Context, client clients.Client) error {
	if _, ok := m.clients[client.ClientID]; ok {
		return oauthstorage.ErrDuplicate
	}
	m.clients[client.ClientID] = client
	return nil
}

func (m *memOAuth) GetClientByClientID(_ context.Context, clientID string) (clients.Client, error) {
	c, ok := m.clients[clientID]
	if !ok {
		return clients.Client{}, oauthstorage.ErrNotFound
	}
	return c, nil
}

func (m *memOAuth) InsertAccessToken(_ context.Context, t tokens.Token) error {
	if _, ok := m.access[t.Value]; ok {
		return oauthstorage.ErrDuplicate
	}
	m.access[t.Value] = t
	return nil
}

func (m *memOAuth) InsertRefreshToken(_ context.Context, t tokens.Token) error {
	if _, ok := m.refresh[t.Value]; ok {
		return oauthstorage.ErrDuplicate
	}
	m.refresh[t.Value] = t
	return nil
}

func (m *memOAuth) GetAccessToken(_ context.Context, value string) (tokens.Token, error) {
	t, ok := m.access[value]
	if !ok {
		return tokens.Token{}, oauthstorage.ErrNotFound
	}
	return t, nil
}

func (m *memOAuth) GetRefreshToken(_ context.Context, value string) (tokens.Token, error) {
	t, ok := m.refresh[value]
	if !ok {
		return tokens.Token{}, oauthstorage.ErrNotFound
	}
	return t, nil
}

func (m *memOAuth) DeleteAccessToken(_ context.Context, value string) error {
	delete(m.access, value)
	return nil
}

func (m *memOAuth) DeleteRefreshToken(_ context.Context, value string) error {
	delete(m.refresh, value)
	return nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	ctx := context.Background()

	authStore := &memUsers{
		users:   make(map[string]users.User),
		secrets: make(map[string]users.Secret),
	}
	oauthStore := &memOAuth{
		clients: make(map[string]clients.Client),
		access:  make(map[string]tokens.Token),
		refresh: make(map[string]tokens.Token),
	}
	articleStore := &memArticles{articles: make(map[uuid.UUID]domain.Article)}

	auth, err := authservice.New(ctx, l, authservice.Config{}, authStore)
	require.NoError(t, err)
	oauth, err := oauthservice.New(ctx, l, oauthservice.Config{
		Tokens: issuer.Config{AccessTokenTTL: time.Hour},
		Client: oauthservice.ClientSeed{
			Name:     "default",
			ClientID: "app1",
			Secret:   "app1secret",
			Scopes:   []string{"articles:write", "articles:read"},
		},
	}, oauthservice.NewRegistry(l, oauthStore), issuer.New(l, issuer.Config{AccessTokenTTL: time.Hour}, oauthStore), auth)
	require.NoError(t, err)

	srv, err := New(l, config.Server{Port: 3000}, articleservice.New(l, articleStore), oauth, auth)
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, bearer string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}
	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	return resp
}

func doForm(t *testing.T, srv *Server, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func signup(t *testing.T, srv *Server, name, password string) {
	t.Helper()
	resp := doJSON(t, srv, fiber.MethodPost, "/api/users", "", signupRequest{Username: name, Password: password})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func tokenForm(name, password string) url.Values {
	return url.Values{
		"grant_type":    {"password"},
		"username":      {name},
		"password":      {password},
		"client_id":     {"app1"},
		"client_secret": {"app1secret"},
	}
}

func obtainToken(t *testing.T, srv *Server, name, password string) tokenResponse {
	t.Helper()
	resp := doForm(t, srv, "/oauth/token", tokenForm(name, password))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return decode[tokenResponse](t, resp)
}

func TestSignUpAndToken(t *testing.T) {
	srv := newTestServer(t)
	signup(t, srv, "alice", "s3cret")

	resp := doForm(t, srv, "/oauth/token", tokenForm("alice", "s3cret"))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("token status = %d, want 200", resp.StatusCode)
	}
	if cc := resp.Header.Get(fiber.HeaderCacheControl); cc != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", cc)
	}
	tok := decode[tokenResponse](t, resp)
	if tok.TokenType != "bearer" {
		t.Errorf("token_type = %q, want bearer", tok.TokenType)
	}
	if tok.ExpiresIn != 3600 {
		t.Errorf("expires_in = %d, want 3600", tok.ExpiresIn)
	}
	if tok.AccessToken == "" || tok.RefreshToken == "" {
		t.Error("token response has empty values")
	}
}

func TestSignUpDuplicate(t *testing.T) {
	srv := newTestServer(t)
	signup(t, srv, "alice", "s3cret")

	resp := doJSON(t, srv, fiber.MethodPost, "/api/users", "", signupRequest{Username: "alice", Password: "pw"})
	if resp.StatusCode != fiber.StatusConflict {
		t.Errorf("duplicate signup status = %d, want 409", resp.StatusCode)
	}
	if got := decode[errorResponse](t, resp); got.Error != "Username is taken" {
		t.Errorf("error = %q, want Username is taken", got.Error)
	}
}

func TestTokenFailureBodiesAreIdentical(t *testing.T) {
	srv := newTestServer(t)
	signup(t, srv, "alice", "s3cret")

	wrongPass := doForm(t, srv, "/oauth/token", tokenForm("alice", "wrong"))
	unknownUser := doForm(t, srv, "/oauth/token", tokenForm("nobody", "wrong"))

	if wrongPass.StatusCode != fiber.StatusUnauthorized || unknownUser.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d and %d, want 401 for both", wrongPass.StatusCode, unknownUser.StatusCode)
	}
	body1 := readBody(t, wrongPass)
	body2 := readBody(t, unknownUser)
	if body1 != body2 {
		t.Errorf("bodies differ: %q vs %q", body1, body2)
	}
	if !strings.Contains(body1, "invalid_grant") {
		t.Errorf("body = %q, want invalid_grant", body1)
	}
}

func TestTokenInvalidClient(t *testing.T) {
	srv := newTestServer(t)
	signup(t, srv, "alice", "s3cret")

	form := tokenForm("alice", "s3cret")
	form.Set("client_secret", "nope")
	resp := doForm(t, srv, "/oauth/token", form)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	if got := decode[errorResponse](t, resp); got.Error != "invalid_client" {
		t.Errorf("error = %q, want invalid_client", got.Error)
	}
}

func TestTokenMalformedRequest(t *testing.T) {
	srv := newTestServer(t)

	form := tokenForm("alice", "s3cret")
	form.Set("grant_type", "client_credentials")
	resp := doForm(t, srv, "/oauth/token", form)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if got := decode[errorResponse](t, resp); got.Error != "invalid_request" {
		t.Errorf("error = %q, want invalid_request", got.Error)
	}
}

func TestTokenRefreshRotation(t *testing.T) {
	srv := newTestServer(t)
	signup(t, srv, "alice", "s3cret")
	tok := obtainToken(t, srv, "alice", "s3cret")

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {tok.RefreshToken},
		"client_id":     {"app1"},
		"client_secret": {"app1secret"},
	}
	resp := doForm(t, srv, "/oauth/token", form)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("refresh status = %d, want 200", resp.StatusCode)
	}
	next := decode[tokenResponse](t, resp)
	if next.RefreshToken == tok.RefreshToken {
		t.Error("refresh returned the consumed token")
	}

	replay := doForm(t, srv, "/oauth/token", form)
	if replay.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("replay status = %d, want 401", replay.StatusCode)
	}
	if got := decode[errorResponse](t, replay); got.Error != "invalid_grant" {
		t.Errorf("replay error = %q, want invalid_grant", got.Error)
	}
}

func TestUserInfo(t *testing.T) {
	srv := newTestServer(t)
	signup(t, srv, "alice", "s3cret")
	tok := obtainToken(t, srv, "alice", "s3cret")

	resp := doJSON(t, srv, fiber.MethodGet, "/api/userInfo", tok.AccessToken, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("userInfo status = %d, want 200", resp.StatusCode)
	}
	info := decode[userInfoResponse](t, resp)
	if info.Name != "alice" {
		t.Errorf("name = %q, want alice", info.Name)
	}
	if info.Scope != "articles:read articles:write" {
		t.Errorf("scope = %q, want sorted scope list", info.Scope)
	}
	if info.UserID == "" || info.UserID == uuid.Nil.String() {
		t.Errorf("user_id = %q, want a real id", info.UserID)
	}
}

func TestUserInfoUnauthorized(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name   string
		bearer string
	}{
		{name: "no token", bearer: ""},
		{name: "garbage token", bearer: "deadbeef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, srv, fiber.MethodGet, "/api/userInfo", tt.bearer, nil)
			if resp.StatusCode != fiber.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
			if got := decode[errorResponse](t, resp); got.Error != "Unauthorized" {
				t.Errorf("error = %q, want Unauthorized", got.Error)
			}
		})
	}
}

func TestChangePassword(t *testing.T) {
	srv := newTestServer(t)
	signup(t, srv, "alice", "s3cret")
	tok := obtainToken(t, srv, "alice", "s3cret")

	resp := doJSON(t, srv, fiber.MethodPost, "/api/users/password", tok.AccessToken,
		changePasswordRequest{OldPassword: "s3cret", NewPassword: "n3w"})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("change password status = %d, want 200", resp.StatusCode)
	}

	if resp := doForm(t, srv, "/oauth/token", tokenForm("alice", "s3cret")); resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("old password token status = %d, want 401", resp.StatusCode)
	}
	if resp := doForm(t, srv, "/oauth/token", tokenForm("alice", "n3w")); resp.StatusCode != fiber.StatusOK {
		t.Errorf("new password token status = %d, want 200", resp.StatusCode)
	}
}

func TestChangePasswordWrongOld(t *testing.T) {
	srv := newTestServer(t)
	signup(t, srv, "alice", "s3cret")
	tok := obtainToken(t, srv, "alice", "s3cret")

	resp := doJSON(t, srv, fiber.MethodPost, "/api/users/password", tok.AccessToken,
		changePasswordRequest{OldPassword: "wrong", NewPassword: "n3w"})
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestArticleCRUD(t *testing.T) {
	srv := newTestServer(t)

	created := doJSON(t, srv, fiber.MethodPost, "/api/articles", "", articleRequest{
		Title:       "Going steady",
		Author:      "rob",
		Description: "notes on steady state services",
		Images: []imageDTO{
			{Kind: "thumbnail", URL: "https://example.com/t.png"},
		},
	})
	if created.StatusCode != fiber.StatusOK {
		t.Fatalf("create status = %d, want 200", created.StatusCode)
	}
	status := decode[statusResponse](t, created)
	if status.Status != "OK" || status.Article == nil {
		t.Fatalf("create response = %+v, want OK with article", status)
	}
	id := status.Article.ID

	got := doJSON(t, srv, fiber.MethodGet, "/api/articles/"+id, "", nil)
	if got.StatusCode != fiber.StatusOK {
		t.Fatalf("get status = %d, want 200", got.StatusCode)
	}
	fetched := decode[statusResponse](t, got)
	if fetched.Article == nil || fetched.Article.Title != "Going steady" {
		t.Fatalf("get response = %+v", fetched)
	}
	if len(fetched.Article.Images) != 1 || fetched.Article.Images[0].Kind != "thumbnail" {
		t.Errorf("images = %+v, want the stored thumbnail", fetched.Article.Images)
	}

	updated := doJSON(t, srv, fiber.MethodPut, "/api/articles/"+id, "", articleRequest{
		Title:       "Going steadier",
		Author:      "rob",
		Description: "revised",
	})
	if updated.StatusCode != fiber.StatusOK {
		t.Fatalf("update status = %d, want 200", updated.StatusCode)
	}

	list := doJSON(t, srv, fiber.MethodGet, "/api/articles", "", nil)
	if articles := decode[[]articleResponse](t, list); len(articles) != 1 || articles[0].Title != "Going steadier" {
		t.Fatalf("list = %+v, want one updated article", articles)
	}

	deleted := doJSON(t, srv, fiber.MethodDelete, "/api/articles/"+id, "", nil)
	if deleted.StatusCode != fiber.StatusOK {
		t.Fatalf("delete status = %d, want 200", deleted.StatusCode)
	}

	gone := doJSON(t, srv, fiber.MethodGet, "/api/articles/"+id, "", nil)
	if gone.StatusCode != fiber.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", gone.StatusCode)
	}
	if got := decode[errorResponse](t, gone); got.Error != "Not found" {
		t.Errorf("error = %q, want Not found", got.Error)
	}
}

func TestArticleValidation(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, fiber.MethodPost, "/api/articles", "", articleRequest{
		Title:       "Tiny",
		Author:      "rob",
		Description: "too short a title",
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if got := decode[errorResponse](t, resp); got.Error != "Validation error" {
		t.Errorf("error = %q, want Validation error", got.Error)
	}
}

func TestArticleUnknownID(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		path string
	}{
		{name: "well formed missing id", path: "/api/articles/" + uuid.NewString()},
		{name: "malformed id", path: "/api/articles/not-a-uuid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, srv, fiber.MethodGet, tt.path, "", nil)
			if resp.StatusCode != fiber.StatusNotFound {
				t.Errorf("status = %d, want 404", resp.StatusCode)
			}
			if got := decode[errorResponse](t, resp); got.Error != "Not found" {
				t.Errorf("error = %q, want Not found", got.Error)
			}
		})
	}
}

func TestNotFoundFallback(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, fiber.MethodGet, "/no/such/route", "", nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if got := decode[errorResponse](t, resp); got.Error != "Not found" {
		t.Errorf("error = %q, want Not found", got.Error)
	}
}

func TestAPIRoot(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, fiber.MethodGet, "/api", "", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body := readBody(t, resp); body != "API is running." {
		t.Errorf("body = %q, want API is running.", body)
	}
}
