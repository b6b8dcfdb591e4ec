package storage

import (
	"context"
	"errors"

	"articleserver/internal/domain"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

type ArticleStorage interface {
	List(ctx context.Context) ([]domain.Article, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Article, error)
	Create(ctx context.Context, article domain.Article) (domain.Article, error)
	Update(ctx context.Context, article domain.Article) (domain.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
