// File path: internal/content/types.go
package content

import (
	"fmt"
	"strings"
)

// DocType identifies the variant of a content document.
type DocType string

const (
	TypePillar  DocType = "pillar"
	TypeArticle DocType = "article"
	TypeProduct DocType = "product"
)

// ParseDocType normalizes a wire-level type name into a DocType.
func ParseDocType(raw string) (DocType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pillar", "pillarpage", "pillar_page":
		return TypePillar, nil
	case "article", "post":
		return TypeArticle, nil
	case "product":
		return TypeProduct, nil
	}
	return "", fmt.Errorf("unknown document type %q", raw)
}

// Status is the review lifecycle state of a document's content.
type Status string

const (
	StatusPublished     Status = "published"
	StatusPendingReview Status = "pending_review"
)

// Ref identifies a single content document across variants.
type Ref struct {
	ID   string  `json:"id"`
	Type DocType `json:"type"`
}

func (r Ref) String() string {
	return string(r.Type) + "/" + r.ID
}

// Document is the uniform view over the three variants. Proposed is empty
// unless Status is pending_review; the catalog enforces that pairing on
// every write.
type Document struct {
	Ref
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Status   Status `json:"status"`
	Live     string `json:"live_content"`
	Proposed string `json:"proposed_content,omitempty"`
}

// Pending reports whether the document carries a proposal awaiting review.
func (d Document) Pending() bool {
	return d.Status == StatusPendingReview && d.Proposed != ""
}

// PublicPath derives the cache-relevant public path for a document.
func (d Document) PublicPath() string {
	switch d.Type {
	case TypePillar:
		return "/topics/" + d.Slug
	case TypeArticle:
		return "/blog/" + d.Slug
	case TypeProduct:
		return "/products/" + d.Slug
	}
	return "/" + d.Slug
}

// Pillar is the authoritative long-form document anchoring a topic cluster.
type Pillar struct {
	ID             string
	Title          string
	Slug           string
	Topic          string
	SEODescription string
	Status         Status
	Live           string
	Proposed       string
	ArticleIDs     []string
	ProductIDs     []string
}

// View returns the uniform document view of the pillar.
func (p Pillar) View() Document {
	return Document{
		Ref:      Ref{ID: p.ID, Type: TypePillar},
		Title:    p.Title,
		Slug:     p.Slug,
		Status:   p.Status,
		Live:     p.Live,
		Proposed: p.Proposed,
	}
}

// Article is a cluster support article.
type Article struct {
	ID             string
	Title          string
	Subtitle       string
	Slug           string
	Excerpt        string
	SEOTitle       string
	SEODescription string
	Tags           []string
	Status         Status
	Live           string
	Proposed       string
}

func (a Article) View() Document {
	return Document{
		Ref:      Ref{ID: a.ID, Type: TypeArticle},
		Title:    a.Title,
		Slug:     a.Slug,
		Status:   a.Status,
		Live:     a.Live,
		Proposed: a.Proposed,
	}
}

// Product carries the storefront fields the engine needs for prompt context
// plus its own description content. ContentStatus is deliberately separate
// from Available: review lifecycle and commercial availability are unrelated.
type Product struct {
	ID               string
	Name             string
	Slug             string
	Price            float64
	ShortDescription string
	Available        bool
	ContentStatus    Status
	Live             string
	Proposed         string
}

func (p Product) View() Document {
	return Document{
		Ref:      Ref{ID: p.ID, Type: TypeProduct},
		Title:    p.Name,
		Slug:     p.Slug,
		Status:   p.ContentStatus,
		Live:     p.Live,
		Proposed: p.Proposed,
	}
}
