package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"articleserver/gen/model"
	"articleserver/gen/table"
	"articleserver/internal/domain"
	"articleserver/internal/storage"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.ArticleStorage = (*Storage)(nil)

func New(l *logrus.Logger, db *sql.DB) *Storage {
	return &Storage{
		db:  db,
		log: l.WithFields(map[string]interface{}{"from": "article-storage"}),
	}
}

func (s *Storage) List(ctx context.Context) ([]domain.Article, error) {
	var dest []struct {
		model.Articles
		ArticleImages []model.ArticleImages
	}
	err := table.Articles.
		SELECT(table.Articles.AllColumns, table.ArticleImages.AllColumns).
		FROM(table.Articles.
			LEFT_JOIN(table.ArticleImages, table.ArticleImages.ArticleID.EQ(table.Articles.ID))).
		ORDER_BY(table.Articles.Modified.DESC()).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		return nil, err
	}
	articles := make([]domain.Article, 0, len(dest))
	for _, row := range dest {
		article, err := convertArticle(row.Articles, row.ArticleImages)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, nil
}

func (s *Storage) Get(ctx context.Context, id uuid.UUID) (domain.Article, error) {
	var dest struct {
		model.Articles
		ArticleImages []model.ArticleImages
	}
	err := table.Articles.
		SELECT(table.Articles.AllColumns, table.ArticleImages.AllColumns).
		FROM(table.Articles.
			LEFT_JOIN(table.ArticleImages, table.ArticleImages.ArticleID.EQ(table.Articles.ID))).
		WHERE(table.Articles.ID.EQ(sqlite.String(id.String()))).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.Article{}, storage.ErrNotFound
		}
		return domain.Article{}, err
	}
	return convertArticle(dest.Articles, dest.ArticleImages)
}

func (s *Storage) Create(ctx context.Context, article domain.Article) (domain.Article, error) {
	err := inTx(ctx, s.db, func(tx *sql.Tx) error {
		dbArticle := model.Articles{
			ID:          article.ID.String(),
			Title:       article.Title,
			Author:      article.Author,
			Description: article.Description,
			Modified:    article.Modified,
		}
		_, err := table.Articles.
			INSERT(table.Articles.AllColumns).
			MODEL(dbArticle).
			ExecContext(ctx, tx)
		if err != nil {
			return err
		}
		return insertImages(ctx, tx, article)
	})
	if err != nil {
		return domain.Article{}, err
	}
	return article, nil
}

func (s *Storage) Update(ctx context.Context, article domain.Article) (domain.Article, error) {
	err := inTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := table.Articles.
			UPDATE(
				table.Articles.Title,
				table.Articles.Author,
				table.Articles.Description,
				table.Articles.Modified,
			).
			SET(article.Title, article.Author, article.Description, article.Modified).
			WHERE(table.Articles.ID.EQ(sqlite.String(article.ID.String()))).
			ExecContext(ctx, tx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return storage.ErrNotFound
		}
		_, err = table.ArticleImages.
			DELETE().
			WHERE(table.ArticleImages.ArticleID.EQ(sqlite.String(article.ID.String()))).
			ExecContext(ctx, tx)
		if err != nil {
			return err
		}
		return insertImages(ctx, tx, article)
	})
	if err != nil {
		return domain.Article{}, err
	}
	return article, nil
}

func (s *Storage) Delete(ctx context.Context, id uuid.UUID) error {
	return inTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := table.Articles.
			DELETE().
			WHERE(table.Articles.ID.EQ(sqlite.String(id.String()))).
			ExecContext(ctx, tx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return storage.ErrNotFound
		}
		_, err = table.ArticleImages.
			DELETE().
			WHERE(table.ArticleImages.ArticleID.EQ(sqlite.String(id.String()))).
			ExecContext(ctx, tx)
		return err
	})
}

func insertImages(ctx context.Context, tx *sql.Tx, article domain.Article) error {
	for _, img := range article.Images {
		dbImage := model.ArticleImages{
			ArticleID: article.ID.String(),
			Kind:      string(img.Kind),
			URL:       img.URL,
		}
		_, err := table.ArticleImages.
			INSERT(table.ArticleImages.MutableColumns).
			MODEL(dbImage).
			ExecContext(ctx, tx)
		if err != nil {
			return err
		}
	}
	return nil
}

func convertArticle(article model.Articles, images []model.ArticleImages) (domain.Article, error) {
	id, err := uuid.Parse(article.ID)
	if err != nil {
		return domain.Article{}, err
	}
	a := domain.Article{
		ID:          id,
		Title:       article.Title,
		Author:      article.Author,
		Description: article.Description,
		Modified:    article.Modified,
	}
	for _, img := range images {
		a.Images = append(a.Images, domain.Image{
			Kind: domain.ImageKind(img.Kind),
			URL:  img.URL,
		})
	}
	return a, nil
}

// BuildSource formats a sqlite DSN for the given file.
func BuildSource(fileName string) string {
	return "file:" + fileName + "?cache=shared"
}

func inTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	return tx.Commit()
}
