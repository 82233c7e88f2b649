// File path: internal/catalog/products.go
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/sileaweb/content-engine/internal/content"
)

// CreateProduct inserts a product record.
func (s *Store) CreateProduct(ctx context.Context, p content.Product) error {
	if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Slug) == "" {
		return fmt.Errorf("product id and slug required")
	}
	status := p.ContentStatus
	if status == "" {
		status = content.StatusPublished
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products (id, name, slug, price, short_description, available, content_status, live_content, proposed_content)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Slug, p.Price, p.ShortDescription, p.Available, string(status), p.Live, p.Proposed)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrSlugConflict, p.Slug)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Product loads a single product by id.
func (s *Store) Product(ctx context.Context, id string) (content.Product, error) {
	var row productRow
	if err := s.db.GetContext(ctx, &row, `SELECT * FROM products WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return content.Product{}, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return content.Product{}, fmt.Errorf("select product: %w", err)
	}
	return row.toProduct(), nil
}

// ProductsByIDs loads the named products, skipping ids that do not resolve.
func (s *Store) ProductsByIDs(ctx context.Context, ids []string) ([]content.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlxIn(`SELECT * FROM products WHERE id IN (?) ORDER BY name`, ids)
	if err != nil {
		return nil, err
	}
	rows := []productRow{}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	products := make([]content.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toProduct())
	}
	return products, nil
}

// ProductSlugs returns the slugs of every product in the catalog.
func (s *Store) ProductSlugs(ctx context.Context) ([]string, error) {
	slugs := []string{}
	if err := s.db.SelectContext(ctx, &slugs, `SELECT slug FROM products ORDER BY slug`); err != nil {
		return nil, fmt.Errorf("select product slugs: %w", err)
	}
	return slugs, nil
}

// DeleteProduct removes a product; cluster references cascade away but
// shortcode references inside pillar bodies become the integrity checker's
// problem.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return nil
}

func sqlxIn(query string, ids []string) (string, []interface{}, error) {
	expanded, args, err := sqlx.In(query, ids)
	if err != nil {
		return "", nil, fmt.Errorf("expand query: %w", err)
	}
	return expanded, args, nil
}
