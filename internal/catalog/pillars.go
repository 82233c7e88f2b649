// File path: internal/catalog/pillars.go
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sileaweb/content-engine/internal/content"
)

// CreatePillar inserts a new pillar document. A slug collision surfaces as
// ErrSlugConflict so the caller can retry once with a suffixed slug.
func (s *Store) CreatePillar(ctx context.Context, p content.Pillar) error {
	if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Slug) == "" {
		return fmt.Errorf("pillar id and slug required")
	}
	status := p.Status
	if status == "" {
		status = content.StatusPublished
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pillars (id, title, slug, topic, seo_description, status, live_content, proposed_content)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Slug, p.Topic, p.SEODescription, string(status), p.Live, p.Proposed)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrSlugConflict, p.Slug)
		}
		return fmt.Errorf("insert pillar: %w", err)
	}
	for _, articleID := range p.ArticleIDs {
		if err := s.AttachArticle(ctx, p.ID, articleID); err != nil {
			return err
		}
	}
	for _, productID := range p.ProductIDs {
		if err := s.AttachProduct(ctx, p.ID, productID); err != nil {
			return err
		}
	}
	return nil
}

// Pillar loads a pillar with its cluster membership.
func (s *Store) Pillar(ctx context.Context, id string) (content.Pillar, error) {
	var row pillarRow
	if err := s.db.GetContext(ctx, &row, `SELECT * FROM pillars WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return content.Pillar{}, fmt.Errorf("%w: pillar %s", ErrNotFound, id)
		}
		return content.Pillar{}, fmt.Errorf("select pillar: %w", err)
	}
	articleIDs := []string{}
	if err := s.db.SelectContext(ctx, &articleIDs,
		`SELECT article_id FROM pillar_articles WHERE pillar_id = ? ORDER BY article_id`, id); err != nil {
		return content.Pillar{}, fmt.Errorf("select cluster articles: %w", err)
	}
	productIDs := []string{}
	if err := s.db.SelectContext(ctx, &productIDs,
		`SELECT product_id FROM pillar_products WHERE pillar_id = ? ORDER BY product_id`, id); err != nil {
		return content.Pillar{}, fmt.Errorf("select cluster products: %w", err)
	}
	return row.toPillar(articleIDs, productIDs), nil
}

// Pillars returns every pillar without cluster membership, for audits.
func (s *Store) Pillars(ctx context.Context) ([]content.Pillar, error) {
	rows := []pillarRow{}
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM pillars ORDER BY title`); err != nil {
		return nil, fmt.Errorf("select pillars: %w", err)
	}
	pillars := make([]content.Pillar, 0, len(rows))
	for _, row := range rows {
		pillars = append(pillars, row.toPillar(nil, nil))
	}
	return pillars, nil
}

// UpdatePillarLive replaces the published body directly, bypassing review.
// Used by the integrity repair path.
func (s *Store) UpdatePillarLive(ctx context.Context, id, body string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE pillars SET live_content = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, body, id)
	if err != nil {
		return fmt.Errorf("update pillar content: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("%w: pillar %s", ErrNotFound, id)
	}
	return nil
}

// AttachArticle adds an article to a pillar's cluster.
func (s *Store) AttachArticle(ctx context.Context, pillarID, articleID string) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO pillar_articles (pillar_id, article_id) VALUES (?, ?)`, pillarID, articleID); err != nil {
		return fmt.Errorf("attach article %s: %w", articleID, err)
	}
	return nil
}

// AttachProduct adds a product to a pillar's cluster.
func (s *Store) AttachProduct(ctx context.Context, pillarID, productID string) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO pillar_products (pillar_id, product_id) VALUES (?, ?)`, pillarID, productID); err != nil {
		return fmt.Errorf("attach product %s: %w", productID, err)
	}
	return nil
}

// ClusterMembers returns the uniform views of every article and product
// associated with a pillar.
func (s *Store) ClusterMembers(ctx context.Context, pillarID string) ([]content.Document, error) {
	articleRows := []articleRow{}
	if err := s.db.SelectContext(ctx, &articleRows,
		`SELECT a.* FROM articles a
		 JOIN pillar_articles pa ON pa.article_id = a.id
		 WHERE pa.pillar_id = ? ORDER BY a.title`, pillarID); err != nil {
		return nil, fmt.Errorf("select cluster articles: %w", err)
	}
	productRows := []productRow{}
	if err := s.db.SelectContext(ctx, &productRows,
		`SELECT p.* FROM products p
		 JOIN pillar_products pp ON pp.product_id = p.id
		 WHERE pp.pillar_id = ? ORDER BY p.name`, pillarID); err != nil {
		return nil, fmt.Errorf("select cluster products: %w", err)
	}
	members := make([]content.Document, 0, len(articleRows)+len(productRows))
	for _, row := range articleRows {
		members = append(members, row.toArticle().View())
	}
	for _, row := range productRows {
		members = append(members, row.toProduct().View())
	}
	return members, nil
}
