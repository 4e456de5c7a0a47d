package inbox

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS contact_messages (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	message TEXT NOT NULL,
	channel TEXT NOT NULL,
	remote_addr TEXT NOT NULL DEFAULT '',
	received_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS contact_messages_received_at ON contact_messages (received_at);`

// stampLayout keeps received_at fixed width so it sorts as text.
const stampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteSink stores submissions in the contact_messages table.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures
// the schema exists. ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteSink, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("inbox: open sqlite: %w", err)
	}
	// Each connection to :memory: is a separate database, and SQLite
	// serializes writers anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("inbox: create schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

// Name implements Sink.
func (s *SQLiteSink) Name() string { return "sqlite" }

// Deliver implements Sink. Delivering the same submission twice is a no-op.
func (s *SQLiteSink) Deliver(ctx context.Context, sub Submission) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO contact_messages
			(id, name, email, message, channel, remote_addr, received_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sub.ID.String(), sub.Name, sub.Email, sub.Message, sub.Channel, sub.RemoteAddr,
		sub.ReceivedAt.UTC().Format(stampLayout),
	)
	if err != nil {
		return fmt.Errorf("inbox: insert: %w", err)
	}
	return nil
}

// List returns up to limit submissions, newest first.
func (s *SQLiteSink) List(ctx context.Context, limit int) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, message, channel, remote_addr, received_at
		FROM contact_messages ORDER BY received_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var (
			sub       Submission
			id, stamp string
		)
		if err := rows.Scan(&id, &sub.Name, &sub.Email, &sub.Message, &sub.Channel, &sub.RemoteAddr, &stamp); err != nil {
			return nil, err
		}
		if sub.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("inbox: bad id %q: %w", id, err)
		}
		if sub.ReceivedAt, err = time.Parse(stampLayout, stamp); err != nil {
			return nil, fmt.Errorf("inbox: bad timestamp %q: %w", stamp, err)
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// Count returns the number of stored submissions.
func (s *SQLiteSink) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&n)
	return n, err
}

// Close implements Sink.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
