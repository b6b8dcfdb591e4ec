package web

import (
	"errors"
	"sort"
	"strings"

	authservice "articleserver/auth/service"
	articleservice "articleserver/internal/service"
	oauthservice "articleserver/oauth/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const identityKey = "identity"

func (s *Server) handleIndex(ctx *fiber.Ctx) error {
	articles, err := s.articles.List(ctx.Context())
	if err != nil {
		s.log.WithError(err).Error("listing articles")
		return respondError(ctx, fiber.StatusInternalServerError, "Server error")
	}
	return ctx.Render("index", fiber.Map{
		"Title":    "Articles",
		"Articles": articles,
	}, "layouts/main")
}

func (s *Server) handleAPIRoot(ctx *fiber.Ctx) error {
	return ctx.SendString("API is running.")
}

func (s *Server) handleToken(ctx *fiber.Ctx) error {
	var req tokenRequest
	if err := ctx.BodyParser(&req); err != nil {
		return respondTokenError(ctx, fiber.StatusBadRequest, "invalid_request")
	}
	pair, err := s.oauth.Exchange(ctx.Context(), oauthservice.TokenRequest{
		GrantType:    req.GrantType,
		Username:     req.Username,
		Password:     req.Password,
		RefreshToken: req.RefreshToken,
		ClientID:     req.ClientID,
		ClientSecret: req.ClientSecret,
	})
	if err != nil {
		switch {
		case errors.Is(err, oauthservice.ErrInvalidRequest):
			return respondTokenError(ctx, fiber.StatusBadRequest, "invalid_request")
		case errors.Is(err, oauthservice.ErrInvalidClient):
			return respondTokenError(ctx, fiber.StatusUnauthorized, "invalid_client")
		case errors.Is(err, oauthservice.ErrInvalidGrant):
			return respondTokenError(ctx, fiber.StatusUnauthorized, "invalid_grant")
		default:
			s.log.WithError(err).Error("token exchange")
			return respondError(ctx, fiber.StatusInternalServerError, "Server error")
		}
	}
	ctx.Set(fiber.HeaderCacheControl, "no-store")
	ctx.Set("Pragma", "no-cache")
	return ctx.JSON(tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
	})
}

// requireAuth resolves the bearer token and stores the identity on the
// request context.
func (s *Server) requireAuth(ctx *fiber.Ctx) error {
	identity, err := s.oauth.Authenticate(ctx.Context(), bearerToken(ctx))
	if err != nil {
		if errors.Is(err, oauthservice.ErrNotAuthorized) {
			return respondError(ctx, fiber.StatusUnauthorized, "Unauthorized")
		}
		s.log.WithError(err).Error("authenticating request")
		return respondError(ctx, fiber.StatusInternalServerError, "Server error")
	}
	ctx.Context().SetUserValue(identityKey, identity)
	return ctx.Next()
}

func bearerToken(ctx *fiber.Ctx) string {
	header := ctx.Get(fiber.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return header[len(prefix):]
}

func (s *Server) handleUserInfo(ctx *fiber.Ctx) error {
	identity, _ := ctx.Context().UserValue(identityKey).(oauthservice.Identity)
	scopes := identity.Scopes.ToSlice()
	sort.Strings(scopes)
	return ctx.JSON(userInfoResponse{
		UserID: identity.User.ID.String(),
		Name:   identity.User.Name,
		Scope:  strings.Join(scopes, " "),
	})
}

func (s *Server) handleSignUp(ctx *fiber.Ctx) error {
	var req signupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return respondError(ctx, fiber.StatusBadRequest, "Validation error")
	}
	user, err := s.auth.Register(ctx.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrUserExists):
			return respondError(ctx, fiber.StatusConflict, "Username is taken")
		case errors.Is(err, authservice.ErrInvalidName),
			errors.Is(err, authservice.ErrEmptyPassword):
			return respondError(ctx, fiber.StatusBadRequest, "Validation error")
		default:
			s.log.WithError(err).Error("registering user")
			return respondError(ctx, fiber.StatusInternalServerError, "Server error")
		}
	}
	ctx.Status(fiber.StatusCreated)
	return ctx.JSON(userResponse{ID: user.ID.String(), Name: user.Name})
}

func (s *Server) handleChangePassword(ctx *fiber.Ctx) error {
	identity, _ := ctx.Context().UserValue(identityKey).(oauthservice.Identity)
	var req changePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return respondError(ctx, fiber.StatusBadRequest, "Validation error")
	}
	_, err := s.auth.VerifyPassword(ctx.Context(), identity.User.Name, req.OldPassword)
	if err != nil {
		if errors.Is(err, authservice.ErrNotAuthorized) {
			return respondError(ctx, fiber.StatusUnauthorized, "Unauthorized")
		}
		s.log.WithError(err).Error("verifying password")
		return respondError(ctx, fiber.StatusInternalServerError, "Server error")
	}
	if err := s.auth.SetPassword(ctx.Context(), identity.User.Name, req.NewPassword); err != nil {
		if errors.Is(err, authservice.ErrEmptyPassword) {
			return respondError(ctx, fiber.StatusBadRequest, "Validation error")
		}
		s.log.WithError(err).Error("setting password")
		return respondError(ctx, fiber.StatusInternalServerError, "Server error")
	}
	return ctx.JSON(statusResponse{Status: "OK"})
}

func (s *Server) handleListArticles(ctx *fiber.Ctx) error {
	articles, err := s.articles.List(ctx.Context())
	if err != nil {
		s.log.WithError(err).Error("listing articles")
		return respondError(ctx, fiber.StatusInternalServerError, "Server error")
	}
	resp := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		resp = append(resp, newArticleResponse(a))
	}
	return ctx.JSON(resp)
}

func (s *Server) handleGetArticle(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return respondError(ctx, fiber.StatusNotFound, "Not found")
	}
	article, err := s.articles.Get(ctx.Context(), id)
	if err != nil {
		return s.respondArticleError(ctx, err)
	}
	resp := newArticleResponse(article)
	return ctx.JSON(statusResponse{Status: "OK", Article: &resp})
}

func (s *Server) handleCreateArticle(ctx *fiber.Ctx) error {
	var req articleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return respondError(ctx, fiber.StatusBadRequest, "Validation error")
	}
	article, err := s.articles.Create(ctx.Context(), req.toDomain(uuid.Nil))
	if err != nil {
		return s.respondArticleError(ctx, err)
	}
	resp := newArticleResponse(article)
	return ctx.JSON(statusResponse{Status: "OK", Article: &resp})
}

func (s *Server) handleUpdateArticle(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return respondError(ctx, fiber.StatusNotFound, "Not found")
	}
	var req articleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return respondError(ctx, fiber.StatusBadRequest, "Validation error")
	}
	article, err := s.articles.Update(ctx.Context(), req.toDomain(id))
	if err != nil {
		return s.respondArticleError(ctx, err)
	}
	resp := newArticleResponse(article)
	return ctx.JSON(statusResponse{Status: "OK", Article: &resp})
}

func (s *Server) handleDeleteArticle(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return respondError(ctx, fiber.StatusNotFound, "Not found")
	}
	if err := s.articles.Delete(ctx.Context(), id); err != nil {
		return s.respondArticleError(ctx, err)
	}
	return ctx.JSON(statusResponse{Status: "OK"})
}

func (s *Server) handleNotFound(ctx *fiber.Ctx) error {
	s.log.WithField("url", ctx.OriginalURL()).Debug("not found")
	return respondError(ctx, fiber.StatusNotFound, "Not found")
}

func (s *Server) respondArticleError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, articleservice.ErrNotFound):
		return respondError(ctx, fiber.StatusNotFound, "Not found")
	case errors.Is(err, articleservice.ErrValidation):
		return respondError(ctx, fiber.StatusBadRequest, "Validation error")
	default:
		s.log.WithError(err).Error("article request failed")
		return respondError(ctx, fiber.StatusInternalServerError, "Server error")
	}
}

func respondError(ctx *fiber.Ctx, status int, message string) error {
	ctx.Status(status)
	return ctx.JSON(errorResponse{Error: message})
}

func respondTokenError(ctx *fiber.Ctx, status int, code string) error {
	ctx.Set(fiber.HeaderCacheControl, "no-store")
	ctx.Set("Pragma", "no-cache")
	ctx.Status(status)
	return ctx.JSON(errorResponse{Error: code})
}
