// Package db opens the Postgres connection pool used by the SQL-backed
// stores. The pgx driver is registered under database/sql so stores stay on
// the standard sql.DB surface and tests can substitute in-memory stores.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
)

// Open connects to Postgres and verifies the connection. Returns nil if the
// URL is empty (Postgres not configured; in-memory stores are used instead).
func Open(url string) (*sql.DB, error) {
	if url == "" {
		return nil, nil
	}

	database, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	database.SetMaxOpenConns(25)
	database.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return database, nil
}
