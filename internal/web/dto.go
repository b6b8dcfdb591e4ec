package web

import (
	"time"

	"articleserver/internal/domain"

	"github.com/google/uuid"
)

type articleRequest struct {
	Title       string     `json:"title" form:"title"`
	Author      string     `json:"author" form:"author"`
	Description string     `json:"description" form:"description"`
	Images      []imageDTO `json:"images"`
}

type imageDTO struct {
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

func (r articleRequest) toDomain(id uuid.UUID) domain.Article {
	article := domain.Article{
		ID:          id,
		Title:       r.Title,
		Author:      r.Author,
		Description: r.Description,
	}
	for _, img := range r.Images {
		article.Images = append(article.Images, domain.Image{
			Kind: domain.ImageKind(img.Kind),
			URL:  img.URL,
		})
	}
	return article
}

type articleResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Description string     `json:"description"`
	Images      []imageDTO `json:"images,omitempty"`
	Modified    time.Time  `json:"modified"`
}

func newArticleResponse(a domain.Article) articleResponse {
	resp := articleResponse{
		ID:          a.ID.String(),
		Title:       a.Title,
		Author:      a.Author,
		Description: a.Description,
		Modified:    a.Modified,
	}
	for _, img := range a.Images {
		resp.Images = append(resp.Images, imageDTO{
			Kind: string(img.Kind),
			URL:  img.URL,
		})
	}
	return resp
}

type statusResponse struct {
	Status  string           `json:"status"`
	Article *articleResponse `json:"article,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type tokenRequest struct {
	GrantType    string `json:"grant_type" form:"grant_type"`
	Username     string `json:"username" form:"username"`
	Password     string `json:"password" form:"password"`
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
	ClientID     string `json:"client_id" form:"client_id"`
	ClientSecret string `json:"client_secret" form:"client_secret"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
}

type signupRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type userResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type userInfoResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Scope  string `json:"scope"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" form:"old_password"`
	NewPassword string `json:"new_password" form:"new_password"`
}
