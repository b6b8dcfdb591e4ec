package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"articleserver/internal/domain"
	"articleserver/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound   = errors.New("article not found")
	ErrValidation = errors.New("validation error")
)

const (
	titleMinLen = 5
	titleMaxLen = 70
)

type ArticleService struct {
	storage storage.ArticleStorage
	log     *logrus.Entry
}

func New(l *logrus.Logger, st storage.ArticleStorage) *ArticleService {
	return &ArticleService{
		storage: st,
		log:     l.WithFields(map[string]interface{}{"from": "article-service"}),
	}
}

func (s *ArticleService) List(ctx context.Context) ([]domain.Article, error) {
	return s.storage.List(ctx)
}

func (s *ArticleService) Get(ctx context.Context, id uuid.UUID) (domain.Article, error) {
	article, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Article{}, ErrNotFound
		}
		return domain.Article{}, err
	}
	return article, nil
}

func (s *ArticleService) Create(ctx context.Context, article domain.Article) (domain.Article, error) {
	if err := validateArticle(article); err != nil {
		return domain.Article{}, err
	}
	article.ID = uuid.New()
	article.Modified = time.Now()
	created, err := s.storage.Create(ctx, article)
	if err != nil {
		return domain.Article{}, err
	}
	s.log.WithField("article", created.ID).Info("article created")
	return created, nil
}

func (s *ArticleService) Update(ctx context.Context, article domain.Article) (domain.Article, error) {
	if err := validateArticle(article); err != nil {
		return domain.Article{}, err
	}
	article.Modified = time.Now()
	updated, err := s.storage.Update(ctx, article)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Article{}, ErrNotFound
		}
		return domain.Article{}, err
	}
	s.log.WithField("article", updated.ID).Info("article updated")
	return updated, nil
}

func (s *ArticleService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.storage.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.log.WithField("article", id).Info("article removed")
	return nil
}

func validateArticle(article domain.Article) error {
	var err error
	if n := utf8.RuneCountInString(article.Title); n <= titleMinLen || n >= titleMaxLen {
		err = errors.Join(err, fmt.Errorf("%w: title length must be between %d and %d characters",
			ErrValidation, titleMinLen+1, titleMaxLen-1))
	}
	if article.Author == "" {
		err = errors.Join(err, fmt.Errorf("%w: author is required", ErrValidation))
	}
	if article.Description == "" {
		err = errors.Join(err, fmt.Errorf("%w: description is required", ErrValidation))
	}
	for _, img := range article.Images {
		if img.Kind != domain.ImageKindThumbnail && img.Kind != domain.ImageKindDetail {
			err = errors.Join(err, fmt.Errorf("%w: unknown image kind %q", ErrValidation, img.Kind))
		}
		if img.URL == "" {
			err = errors.Join(err, fmt.Errorf("%w: image url is required", ErrValidation))
		}
	}
	return err
}
