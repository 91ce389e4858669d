package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type migration struct {
	name string
	sql  string
}

// migrations run in order; each is recorded in schema_migrations once applied
var migrations = []migration{
	{
		name: "001_create_users",
		sql: `
			CREATE TABLE IF NOT EXISTS users (
				id UUID PRIMARY KEY,
				username VARCHAR(150) NOT NULL UNIQUE,
				email VARCHAR(254) NOT NULL UNIQUE,
				first_name VARCHAR(150) NOT NULL DEFAULT '',
				last_name VARCHAR(150) NOT NULL DEFAULT '',
				bio TEXT,
				role VARCHAR(20) NOT NULL DEFAULT 'user',
				confirmation_hash TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL,
				deleted_at TIMESTAMPTZ
			);
		`,
	},
	{
		name: "002_create_catalog",
		sql: `
			CREATE TABLE IF NOT EXISTS categories (
				id UUID PRIMARY KEY,
				name VARCHAR(256) NOT NULL,
				slug VARCHAR(50) NOT NULL UNIQUE,
				created_at TIMESTAMPTZ NOT NULL
			);
			CREATE TABLE IF NOT EXISTS genres (
				id UUID PRIMARY KEY,
				name VARCHAR(256) NOT NULL,
				slug VARCHAR(50) NOT NULL UNIQUE,
				created_at TIMESTAMPTZ NOT NULL
			);
			CREATE TABLE IF NOT EXISTS works (
				id UUID PRIMARY KEY,
				name VARCHAR(256) NOT NULL,
				year INT NOT NULL CHECK (year >= 0),
				description TEXT NOT NULL DEFAULT '',
				category_id UUID REFERENCES categories(id) ON DELETE SET NULL,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			);
			CREATE TABLE IF NOT EXISTS work_genres (
				work_id UUID NOT NULL REFERENCES works(id) ON DELETE CASCADE,
				genre_id UUID NOT NULL REFERENCES genres(id) ON DELETE CASCADE,
				PRIMARY KEY (work_id, genre_id)
			);
			CREATE INDEX IF NOT EXISTS idx_works_category ON works(category_id);
			CREATE INDEX IF NOT EXISTS idx_works_year ON works(year);
		`,
	},
	{
		name: "003_create_reviews",
		sql: `
			CREATE TABLE IF NOT EXISTS reviews (
				id UUID PRIMARY KEY,
				work_id UUID NOT NULL REFERENCES works(id) ON DELETE CASCADE,
				author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				text TEXT NOT NULL,
				score INT NOT NULL CHECK (score >= 1 AND score <= 10),
				created_at TIMESTAMPTZ NOT NULL,
				CONSTRAINT unique_review UNIQUE (work_id, author_id)
			);
			CREATE TABLE IF NOT EXISTS comments (
				id UUID PRIMARY KEY,
				review_id UUID NOT NULL REFERENCES reviews(id) ON DELETE CASCADE,
				author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				text TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_reviews_work ON reviews(work_id);
			CREATE INDEX IF NOT EXISTS idx_comments_review ON comments(review_id);
		`,
	},
}

// Migrate applies all pending schema migrations
func Migrate(ctx context.Context, db PgxIface, log *zap.Logger) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE name = $1`, m.name).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", m.name, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", m.name, err)
		}

		if _, err := tx.Exec(ctx, m.sql); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("apply migration %s: %w", m.name, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, m.name); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("record migration %s: %w", m.name, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit migration %s: %w", m.name, err)
		}

		log.Info("Migration applied", zap.String("name", m.name))
	}

	return nil
}
