// Package sqlite stores leaderboard entries in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/appengine-ltd/bioguessr/internal/leaderboard"
	"github.com/appengine-ltd/bioguessr/internal/leaderboard/sqlite/migrations"
	"github.com/appengine-ltd/bioguessr/internal/platform/storage/sqlitemigrate"
)

// Store persists scores. It implements leaderboard.Sink and leaderboard.Board.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and applies the
// embedded schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), db, migrations.FS, "."); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Submit records e after normalising its initials.
func (s *Store) Submit(ctx context.Context, e leaderboard.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e, err := e.Normalize()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scores (id, initials, score, created_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), e.Initials, e.Score, s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

// Top returns up to n entries, best score first. Ties go to the earlier run.
func (s *Store) Top(ctx context.Context, n int) ([]leaderboard.Entry, error) {
	if n <= 0 {
		return []leaderboard.Entry{}, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT initials, score FROM scores ORDER BY score DESC, created_at ASC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query top scores: %w", err)
	}
	defer rows.Close()

	out := make([]leaderboard.Entry, 0, n)
	for rows.Next() {
		var e leaderboard.Entry
		if err := rows.Scan(&e.Initials, &e.Score); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return out, nil
}
