// File path: internal/catalog/articles.go
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sileaweb/content-engine/internal/content"
)

// CreateArticle inserts a new support article. Slug collisions surface as
// ErrSlugConflict.
func (s *Store) CreateArticle(ctx context.Context, a content.Article) error {
	if strings.TrimSpace(a.ID) == "" || strings.TrimSpace(a.Slug) == "" {
		return fmt.Errorf("article id and slug required")
	}
	status := a.Status
	if status == "" {
		status = content.StatusPublished
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO articles (id, title, subtitle, slug, excerpt, seo_title, seo_description, tags, status, live_content, proposed_content)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Subtitle, a.Slug, a.Excerpt, a.SEOTitle, a.SEODescription,
		marshalTags(a.Tags), string(status), a.Live, a.Proposed)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrSlugConflict, a.Slug)
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// Article loads a single article by id.
func (s *Store) Article(ctx context.Context, id string) (content.Article, error) {
	var row articleRow
	if err := s.db.GetContext(ctx, &row, `SELECT * FROM articles WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return content.Article{}, fmt.Errorf("%w: article %s", ErrNotFound, id)
		}
		return content.Article{}, fmt.Errorf("select article: %w", err)
	}
	return row.toArticle(), nil
}

// ArticlesByIDs loads the named articles, skipping ids that do not resolve.
func (s *Store) ArticlesByIDs(ctx context.Context, ids []string) ([]content.Article, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlxIn(`SELECT * FROM articles WHERE id IN (?) ORDER BY title`, ids)
	if err != nil {
		return nil, err
	}
	rows := []articleRow{}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select articles: %w", err)
	}
	articles := make([]content.Article, 0, len(rows))
	for _, row := range rows {
		articles = append(articles, row.toArticle())
	}
	return articles, nil
}
