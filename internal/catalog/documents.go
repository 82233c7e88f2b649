// File path: internal/catalog/documents.go
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sileaweb/content-engine/internal/content"
)

// The three variants store their review state under different columns;
// docTable normalizes that difference for the uniform document operations.
type docTable struct {
	name      string
	titleCol  string
	statusCol string
}

func tableFor(t content.DocType) (docTable, error) {
	switch t {
	case content.TypePillar:
		return docTable{name: "pillars", titleCol: "title", statusCol: "status"}, nil
	case content.TypeArticle:
		return docTable{name: "articles", titleCol: "title", statusCol: "status"}, nil
	case content.TypeProduct:
		return docTable{name: "products", titleCol: "name", statusCol: "content_status"}, nil
	}
	return docTable{}, fmt.Errorf("unsupported document type %q", t)
}

type documentRow struct {
	ID       string `db:"id"`
	Title    string `db:"title"`
	Slug     string `db:"slug"`
	Status   string `db:"status"`
	Live     string `db:"live_content"`
	Proposed string `db:"proposed_content"`
}

// Document returns the uniform view of any variant by reference.
func (s *Store) Document(ctx context.Context, ref content.Ref) (content.Document, error) {
	table, err := tableFor(ref.Type)
	if err != nil {
		return content.Document{}, err
	}
	query := fmt.Sprintf(
		`SELECT id, %s AS title, slug, %s AS status, live_content, proposed_content FROM %s WHERE id = ?`,
		table.titleCol, table.statusCol, table.name)
	var row documentRow
	if err := s.db.GetContext(ctx, &row, query, ref.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return content.Document{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return content.Document{}, fmt.Errorf("select document %s: %w", ref, err)
	}
	return content.Document{
		Ref:      ref,
		Title:    row.Title,
		Slug:     row.Slug,
		Status:   content.Status(row.Status),
		Live:     row.Live,
		Proposed: row.Proposed,
	}, nil
}

// SetProposed stores a replacement body and flips the document to
// pending_review in the same statement, keeping the status/proposed pairing
// consistent. A re-proposal overwrites whatever was pending: the latest
// plan always wins.
func (s *Store) SetProposed(ctx context.Context, ref content.Ref, body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("proposed content required for %s", ref)
	}
	table, err := tableFor(ref.Type)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(
		`UPDATE %s SET proposed_content = ?, %s = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		table.name, table.statusCol)
	res, err := s.db.ExecContext(ctx, query, body, string(content.StatusPendingReview), ref.ID)
	if err != nil {
		return fmt.Errorf("set proposed content %s: %w", ref, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return nil
}

// Promote copies proposed content to live, clears it and returns the
// document to published, all in one statement. ErrNoProposal when nothing
// was pending.
func (s *Store) Promote(ctx context.Context, ref content.Ref) (content.Document, error) {
	table, err := tableFor(ref.Type)
	if err != nil {
		return content.Document{}, err
	}
	query := fmt.Sprintf(
		`UPDATE %s SET live_content = proposed_content, proposed_content = '', %s = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND proposed_content != ''`,
		table.name, table.statusCol)
	res, err := s.db.ExecContext(ctx, query, string(content.StatusPublished), ref.ID)
	if err != nil {
		return content.Document{}, fmt.Errorf("promote %s: %w", ref, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		if _, getErr := s.Document(ctx, ref); getErr != nil {
			return content.Document{}, getErr
		}
		return content.Document{}, fmt.Errorf("%w: %s", ErrNoProposal, ref)
	}
	return s.Document(ctx, ref)
}

// ClearProposed discards pending content and restores published state
// without touching the live body. This is the reject transition.
func (s *Store) ClearProposed(ctx context.Context, ref content.Ref) error {
	table, err := tableFor(ref.Type)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(
		`UPDATE %s SET proposed_content = '', %s = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND proposed_content != ''`,
		table.name, table.statusCol)
	res, err := s.db.ExecContext(ctx, query, string(content.StatusPublished), ref.ID)
	if err != nil {
		return fmt.Errorf("clear proposed %s: %w", ref, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		if _, getErr := s.Document(ctx, ref); getErr != nil {
			return getErr
		}
		return fmt.Errorf("%w: %s", ErrNoProposal, ref)
	}
	return nil
}
