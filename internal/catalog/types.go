// File path: internal/catalog/types.go
package catalog

import (
	"encoding/json"
	"time"

	"github.com/sileaweb/content-engine/internal/content"
)

type pillarRow struct {
	ID             string    `db:"id"`
	Title          string    `db:"title"`
	Slug           string    `db:"slug"`
	Topic          string    `db:"topic"`
	SEODescription string    `db:"seo_description"`
	Status         string    `db:"status"`
	LiveContent    string    `db:"live_content"`
	Proposed       string    `db:"proposed_content"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r pillarRow) toPillar(articleIDs, productIDs []string) content.Pillar {
	return content.Pillar{
		ID:             r.ID,
		Title:          r.Title,
		Slug:           r.Slug,
		Topic:          r.Topic,
		SEODescription: r.SEODescription,
		Status:         content.Status(r.Status),
		Live:           r.LiveContent,
		Proposed:       r.Proposed,
		ArticleIDs:     articleIDs,
		ProductIDs:     productIDs,
	}
}

type articleRow struct {
	ID             string    `db:"id"`
	Title          string    `db:"title"`
	Subtitle       string    `db:"subtitle"`
	Slug           string    `db:"slug"`
	Excerpt        string    `db:"excerpt"`
	SEOTitle       string    `db:"seo_title"`
	SEODescription string    `db:"seo_description"`
	Tags           string    `db:"tags"`
	Status         string    `db:"status"`
	LiveContent    string    `db:"live_content"`
	Proposed       string    `db:"proposed_content"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r articleRow) toArticle() content.Article {
	var tags []string
	_ = json.Unmarshal([]byte(r.Tags), &tags)
	return content.Article{
		ID:             r.ID,
		Title:          r.Title,
		Subtitle:       r.Subtitle,
		Slug:           r.Slug,
		Excerpt:        r.Excerpt,
		SEOTitle:       r.SEOTitle,
		SEODescription: r.SEODescription,
		Tags:           tags,
		Status:         content.Status(r.Status),
		Live:           r.LiveContent,
		Proposed:       r.Proposed,
	}
}

type productRow struct {
	ID               string    `db:"id"`
	Name             string    `db:"name"`
	Slug             string    `db:"slug"`
	Price            float64   `db:"price"`
	ShortDescription string    `db:"short_description"`
	Available        bool      `db:"available"`
	ContentStatus    string    `db:"content_status"`
	LiveContent      string    `db:"live_content"`
	Proposed         string    `db:"proposed_content"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (r productRow) toProduct() content.Product {
	return content.Product{
		ID:               r.ID,
		Name:             r.Name,
		Slug:             r.Slug,
		Price:            r.Price,
		ShortDescription: r.ShortDescription,
		Available:        r.Available,
		ContentStatus:    content.Status(r.ContentStatus),
		Live:             r.LiveContent,
		Proposed:         r.Proposed,
	}
}

func marshalTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(raw)
}
