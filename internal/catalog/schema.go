// File path: internal/catalog/schema.go
package catalog

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS pillars (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		slug TEXT NOT NULL,
		topic TEXT NOT NULL DEFAULT '',
		seo_description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'published',
		live_content TEXT NOT NULL DEFAULT '',
		proposed_content TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_pillars_slug ON pillars(slug)`,
	`CREATE TABLE IF NOT EXISTS articles (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		subtitle TEXT NOT NULL DEFAULT '',
		slug TEXT NOT NULL,
		excerpt TEXT NOT NULL DEFAULT '',
		seo_title TEXT NOT NULL DEFAULT '',
		seo_description TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]',
		status TEXT NOT NULL DEFAULT 'published',
		live_content TEXT NOT NULL DEFAULT '',
		proposed_content TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_articles_slug ON articles(slug)`,
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL,
		price REAL NOT NULL DEFAULT 0,
		short_description TEXT NOT NULL DEFAULT '',
		available INTEGER NOT NULL DEFAULT 1,
		content_status TEXT NOT NULL DEFAULT 'published',
		live_content TEXT NOT NULL DEFAULT '',
		proposed_content TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_products_slug ON products(slug)`,
	`CREATE TABLE IF NOT EXISTS pillar_articles (
		pillar_id TEXT NOT NULL REFERENCES pillars(id) ON DELETE CASCADE,
		article_id TEXT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
		PRIMARY KEY (pillar_id, article_id)
	)`,
	`CREATE TABLE IF NOT EXISTS pillar_products (
		pillar_id TEXT NOT NULL REFERENCES pillars(id) ON DELETE CASCADE,
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		PRIMARY KEY (pillar_id, product_id)
	)`,
}
