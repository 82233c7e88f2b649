// File path: internal/generator/generator.go
// Package generator turns domain context (topic, keywords, audience) into
// publishable markup through the LLM gateway, and persists the resulting
// pillar pages and support articles.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/sileaweb/content-engine/internal/catalog"
	"github.com/sileaweb/content-engine/internal/common"
	"github.com/sileaweb/content-engine/internal/content"
	"github.com/sileaweb/content-engine/internal/llm"
	"github.com/sileaweb/content-engine/internal/metrics"
)

// ErrMetadataParse marks model metadata output that was not valid JSON
// after tolerant extraction. It aborts one article, never the batch.
var ErrMetadataParse = errors.New("article metadata was not parseable")

// Store is the slice of the catalog the generator needs.
type Store interface {
	Pillar(ctx context.Context, id string) (content.Pillar, error)
	CreatePillar(ctx context.Context, p content.Pillar) error
	CreateArticle(ctx context.Context, a content.Article) error
	AttachArticle(ctx context.Context, pillarID, articleID string) error
	ProductsByIDs(ctx context.Context, ids []string) ([]content.Product, error)
	ArticlesByIDs(ctx context.Context, ids []string) ([]content.Article, error)
}

type Generator struct {
	provider llm.Provider
	store    Store
	model    string
}

func New(provider llm.Provider, store Store) *Generator {
	return &Generator{
		provider: provider,
		store:    store,
		model:    strings.TrimSpace(os.Getenv("GENERATION_MODEL")),
	}
}

// OutlineRequest carries the editorial-planning inputs.
type OutlineRequest struct {
	Title    string `json:"title"`
	Keyword  string `json:"keyword"`
	Audience string `json:"audience,omitempty"`
	Angle    string `json:"angle,omitempty"`
}

// Outline generates the article outline markup.
func (g *Generator) Outline(ctx context.Context, req OutlineRequest) (string, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Keyword) == "" {
		return "", fmt.Errorf("title and keyword required")
	}
	raw, err := g.provider.Generate(ctx, g.model, OutlinePrompt(req.Title, req.Keyword, req.Audience, req.Angle))
	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues("outline", "failure").Inc()
		return "", err
	}
	metrics.GenerationRequestsTotal.WithLabelValues("outline", "success").Inc()
	return Sanitize(raw), nil
}

// PillarRequest names the cluster seed for a new pillar page.
type PillarRequest struct {
	Topic          string   `json:"topic"`
	Title          string   `json:"title"`
	SEODescription string   `json:"seo_description,omitempty"`
	ArticleIDs     []string `json:"article_ids,omitempty"`
	ProductIDs     []string `json:"product_ids,omitempty"`
}

// CreatePillar generates the pillar body from the selected cluster context
// and persists the pillar in published state. A slug collision is retried
// once with a suffixed slug; a second collision is fatal.
func (g *Generator) CreatePillar(ctx context.Context, req PillarRequest) (content.Pillar, error) {
	logger := common.Logger()
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Topic) == "" {
		return content.Pillar{}, fmt.Errorf("topic and title required")
	}
	products, err := g.store.ProductsByIDs(ctx, req.ProductIDs)
	if err != nil {
		return content.Pillar{}, fmt.Errorf("load cluster products: %w", err)
	}
	articles, err := g.store.ArticlesByIDs(ctx, req.ArticleIDs)
	if err != nil {
		return content.Pillar{}, fmt.Errorf("load cluster articles: %w", err)
	}
	raw, err := g.provider.Generate(ctx, g.model, PillarPrompt(req.Topic, req.Title, req.SEODescription, products, articles))
	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues("pillar", "failure").Inc()
		return content.Pillar{}, err
	}
	metrics.GenerationRequestsTotal.WithLabelValues("pillar", "success").Inc()

	pillar := content.Pillar{
		ID:             uuid.NewString(),
		Title:          req.Title,
		Slug:           content.Slugify(req.Title),
		Topic:          req.Topic,
		SEODescription: req.SEODescription,
		Status:         content.StatusPublished,
		Live:           Sanitize(raw),
		ArticleIDs:     req.ArticleIDs,
		ProductIDs:     req.ProductIDs,
	}
	if err := g.store.CreatePillar(ctx, pillar); err != nil {
		if !errors.Is(err, catalog.ErrSlugConflict) {
			return content.Pillar{}, err
		}
		pillar.Slug = content.SlugWithSuffix(pillar.Slug)
		logger.Warn("generator: slug collision, retrying with suffix", "slug", pillar.Slug)
		if err := g.store.CreatePillar(ctx, pillar); err != nil {
			return content.Pillar{}, err
		}
	}
	logger.Info("generator: pillar created", "id", pillar.ID, "slug", pillar.Slug)
	return pillar, nil
}

// ArticleSpec names one support article to generate.
type ArticleSpec struct {
	Title    string   `json:"title"`
	Keywords []string `json:"keywords,omitempty"`
}

// ItemError records a per-article failure inside a batch.
type ItemError struct {
	Title string `json:"title"`
	Error string `json:"error"`
}

// BatchResult reports a support-article batch: partial success is always
// visible as attempted vs created plus itemized errors.
type BatchResult struct {
	TotalAttempted int         `json:"total_attempted"`
	CreatedIDs     []string    `json:"created_ids"`
	Errors         []ItemError `json:"errors"`
}

// articleDraft is the parsed metadata for one support article before it
// becomes a persisted document.
type articleDraft struct {
	Subtitle       string   `json:"subtitle"`
	SEOTitle       string   `json:"seo_title"`
	SEODescription string   `json:"seo_description"`
	Excerpt        string   `json:"excerpt"`
	Tags           []string `json:"tags"`
}

// CreateSupportArticles generates each named article in two model steps
// (strict-JSON metadata, then body) and attaches the results to the pillar's
// cluster. Articles run sequentially within the request; one article's
// failure never aborts its siblings.
func (g *Generator) CreateSupportArticles(ctx context.Context, pillarID string, specs []ArticleSpec) (BatchResult, error) {
	logger := common.Logger()
	result := BatchResult{TotalAttempted: len(specs)}
	pillar, err := g.store.Pillar(ctx, pillarID)
	if err != nil {
		return result, err
	}
	pillarURL := pillar.View().PublicPath()
	for _, spec := range specs {
		id, err := g.createSupportArticle(ctx, pillar, pillarURL, spec)
		if err != nil {
			logger.Warn("generator: support article failed", "title", spec.Title, "error", err)
			result.Errors = append(result.Errors, ItemError{Title: spec.Title, Error: err.Error()})
			continue
		}
		result.CreatedIDs = append(result.CreatedIDs, id)
	}
	return result, nil
}

func (g *Generator) createSupportArticle(ctx context.Context, pillar content.Pillar, pillarURL string, spec ArticleSpec) (string, error) {
	if strings.TrimSpace(spec.Title) == "" {
		return "", fmt.Errorf("article title required")
	}
	metaRaw, err := g.provider.Generate(ctx, g.model, ArticleMetadataPrompt(spec.Title, pillar.Topic, spec.Keywords))
	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues("article_metadata", "failure").Inc()
		return "", err
	}
	draft, err := parseArticleDraft(metaRaw)
	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues("article_metadata", "failure").Inc()
		return "", err
	}
	metrics.GenerationRequestsTotal.WithLabelValues("article_metadata", "success").Inc()

	bodyRaw, err := g.provider.Generate(ctx, g.model,
		ArticleBodyPrompt(spec.Title, draft.Subtitle, pillar.Topic, spec.Keywords, pillarURL, pillar.Title))
	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues("article_body", "failure").Inc()
		return "", err
	}
	metrics.GenerationRequestsTotal.WithLabelValues("article_body", "success").Inc()

	article := content.Article{
		ID:             uuid.NewString(),
		Title:          spec.Title,
		Subtitle:       draft.Subtitle,
		Slug:           content.Slugify(spec.Title),
		Excerpt:        draft.Excerpt,
		SEOTitle:       draft.SEOTitle,
		SEODescription: draft.SEODescription,
		Tags:           draft.Tags,
		Status:         content.StatusPublished,
		Live:           Sanitize(bodyRaw),
	}
	if err := g.store.CreateArticle(ctx, article); err != nil {
		if !errors.Is(err, catalog.ErrSlugConflict) {
			return "", err
		}
		article.Slug = content.SlugWithSuffix(article.Slug)
		if err := g.store.CreateArticle(ctx, article); err != nil {
			return "", err
		}
	}
	if err := g.store.AttachArticle(ctx, pillar.ID, article.ID); err != nil {
		return "", err
	}
	return article.ID, nil
}

func parseArticleDraft(raw string) (articleDraft, error) {
	extracted, err := llm.ExtractJSON(raw)
	if err != nil {
		return articleDraft{}, fmt.Errorf("%w: %v", ErrMetadataParse, err)
	}
	var draft articleDraft
	if err := json.Unmarshal([]byte(extracted), &draft); err != nil {
		return articleDraft{}, fmt.Errorf("%w: %v", ErrMetadataParse, err)
	}
	if strings.TrimSpace(draft.Excerpt) == "" && strings.TrimSpace(draft.SEODescription) == "" {
		return articleDraft{}, fmt.Errorf("%w: required fields missing", ErrMetadataParse)
	}
	return draft, nil
}
