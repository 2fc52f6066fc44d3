// Package guestbook stores short visitor messages shown under the contact
// section.
package guestbook

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmptyMessage is returned by Insert and Post for blank messages.
var ErrEmptyMessage = errors.New("guestbook: empty message")

// DefaultLimit is how many entries the page shows.
const DefaultLimit = 5

// Entry is one posted message.
type Entry struct {
	ID        int64
	Message   string
	CreatedAt time.Time
}

// Store persists entries in the guestbook table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New creates the guestbook table if needed.
func New(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS guestbook (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		message TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create guestbook table: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Insert stores msg and returns the new entry.
func (s *Store) Insert(ctx context.Context, msg string) (Entry, error) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return Entry{}, ErrEmptyMessage
	}
	created := s.now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO guestbook (message, created_at) VALUES (?, ?)`, msg, created)
	if err != nil {
		return Entry{}, fmt.Errorf("insert guestbook entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Entry{}, fmt.Errorf("insert guestbook entry: %w", err)
	}
	return Entry{ID: id, Message: msg, CreatedAt: created}, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, message, created_at FROM guestbook ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list guestbook entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan guestbook entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Post inserts msg and then re-fetches the most recent entries, which is
// what the page shows after a submission.
func (s *Store) Post(ctx context.Context, msg string, limit int) ([]Entry, error) {
	if _, err := s.Insert(ctx, msg); err != nil {
		return nil, err
	}
	return s.Recent(ctx, limit)
}
