package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Схема общая для postgres и sqlite
var schema = []string{
	`CREATE TABLE IF NOT EXISTS pinned_articles (
		id TEXT PRIMARY KEY,
		display_title TEXT NOT NULL,
		display_description TEXT NOT NULL,
		display_date TEXT NOT NULL,
		link TEXT NOT NULL UNIQUE,
		pinned_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pinned_articles_pinned_at ON pinned_articles (pinned_at)`,
}

// Migrate создает таблицы, если их еще нет
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	log.Debug().Str("driver", db.DriverName()).Msg("schema is up to date")
	return nil
}

// Open подключается к БД и применяет схему
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", driver, err)
	}

	// sqlite не любит параллельную запись
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
