// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

// Package dataset loads the MovieLens-format CSV tables through an
// in-memory DuckDB instance. DuckDB's CSV reader handles quoting, type
// coercion and malformed-row detection, so the Go side stays a thin scan
// loop. The Store implements recommend.DataProvider.
package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/kinographus/internal/config"
	"github.com/tomtom215/kinographus/internal/logging"
	"github.com/tomtom215/kinographus/internal/recommend"
)

// Store reads the flat-file dataset through DuckDB. Safe for concurrent
// use; the underlying sql.DB pools connections.
type Store struct {
	conn *sql.DB
	cfg  config.DataConfig
}

// Open starts an in-memory DuckDB instance tuned by the data config and
// verifies connectivity. The CSV files themselves are read lazily per query.
func Open(cfg config.DataConfig) (*Store, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Disable auto-install/auto-load to prevent hangs in restricted
	// network environments.
	connStr := fmt.Sprintf(":memory:?threads=%d&autoinstall_known_extensions=false&autoload_known_extensions=false",
		numThreads)
	if cfg.MaxMemory != "" {
		connStr += "&max_memory=" + cfg.MaxMemory
	}

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}

	return &Store{conn: conn, cfg: cfg}, nil
}

// Close releases the DuckDB instance.
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// Ping verifies the connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	if s.conn == nil {
		return fmt.Errorf("dataset connection is nil")
	}
	return s.conn.PingContext(ctx)
}

// Movies reads the full movie table. A missing or malformed column is a
// hard error; the models cannot be trained on partial metadata.
func (s *Store) Movies(ctx context.Context) ([]recommend.Movie, error) {
	path := filepath.Join(s.cfg.Dir, s.cfg.MoviesFile)
	query := `
		SELECT movieId, title, genres
		FROM read_csv(?, header = true, columns = {
			'movieId': 'INTEGER',
			'title': 'VARCHAR',
			'genres': 'VARCHAR'
		})`

	rows, err := s.conn.QueryContext(ctx, query, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer closeRows(rows)

	var movies []recommend.Movie
	for rows.Next() {
		var m recommend.Movie
		if err := rows.Scan(&m.MovieID, &m.Title, &m.Genres); err != nil {
			return nil, fmt.Errorf("scanning movie row: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", path, err)
	}
	return movies, nil
}

// Ratings reads the full rating table. The timestamp column is present in
// the MovieLens format but unused, so it is not selected.
func (s *Store) Ratings(ctx context.Context) ([]recommend.Rating, error) {
	path := filepath.Join(s.cfg.Dir, s.cfg.RatingsFile)
	query := `
		SELECT userId, movieId, rating
		FROM read_csv(?, header = true, columns = {
			'userId': 'INTEGER',
			'movieId': 'INTEGER',
			'rating': 'DOUBLE',
			'timestamp': 'BIGINT'
		})`

	rows, err := s.conn.QueryContext(ctx, query, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer closeRows(rows)

	var ratings []recommend.Rating
	for rows.Next() {
		var r recommend.Rating
		if err := rows.Scan(&r.UserID, &r.MovieID, &r.Rating); err != nil {
			return nil, fmt.Errorf("scanning rating row: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", path, err)
	}
	return ratings, nil
}

// Tags reads the full tag table.
func (s *Store) Tags(ctx context.Context) ([]recommend.Tag, error) {
	path := filepath.Join(s.cfg.Dir, s.cfg.TagsFile)
	query := `
		SELECT userId, movieId, tag
		FROM read_csv(?, header = true, columns = {
			'userId': 'INTEGER',
			'movieId': 'INTEGER',
			'tag': 'VARCHAR',
			'timestamp': 'BIGINT'
		})`

	rows, err := s.conn.QueryContext(ctx, query, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer closeRows(rows)

	var tags []recommend.Tag
	for rows.Next() {
		var t recommend.Tag
		if err := rows.Scan(&t.UserID, &t.MovieID, &t.Tag); err != nil {
			return nil, fmt.Errorf("scanning tag row: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", path, err)
	}
	return tags, nil
}

// closeQuietly closes a connection where the original error matters more.
func closeQuietly(conn *sql.DB) {
	if conn != nil {
		_ = conn.Close()
	}
}

// closeRows closes a result set, logging close failures.
func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close result rows")
	}
}
