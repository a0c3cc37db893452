// Package store persists chat sessions and messages. The SQLite
// implementation keeps the append-only history the assistant reads on
// session resume; an interface boundary lets tests inject an in-memory
// fake.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/1adityakadam/financial-calculators/internal/session"
)

// ErrNotFound is returned when a session id has no stored row.
var ErrNotFound = errors.New("store: session not found")

// Store is the persistence collaborator interface.
type Store interface {
	SaveSession(ctx context.Context, s *session.Session) error
	LoadSession(ctx context.Context, id string) (*session.Session, error)
	AppendMessage(ctx context.Context, sessionID string, msg session.Message) error
	History(ctx context.Context, userID string) ([]session.Message, error)
	ClearHistory(ctx context.Context, userID string) error
	Close() error
}

// SQLite implements Store on a local sqlite3 database.
type SQLite struct {
	db *sql.DB
}

// Open opens (and if needed creates) the database at path.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			user_id TEXT,
			start_time DATETIME,
			backend TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT,
			user_id TEXT,
			role TEXT,
			content TEXT,
			timestamp DATETIME,
			FOREIGN KEY(session_id) REFERENCES sessions(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_messages_user ON messages(user_id, timestamp);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &SQLite{db: db}, nil
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// SaveSession upserts the session row and rewrites its messages in one
// transaction.
func (s *SQLite) SaveSession(ctx context.Context, sess *session.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO sessions (id, user_id, start_time, backend) VALUES (?, ?, ?, ?)",
		sess.ID, sess.UserID, sess.StartTime, sess.Backend,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM messages WHERE session_id = ?", sess.ID); err != nil {
		return fmt.Errorf("clear session messages: %w", err)
	}
	for _, msg := range sess.Messages {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO messages (session_id, user_id, role, content, timestamp) VALUES (?, ?, ?, ?, ?)",
			sess.ID, sess.UserID, msg.Role, msg.Content, msg.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("save message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// LoadSession reads a session and its messages in timestamp order.
func (s *SQLite) LoadSession(ctx context.Context, id string) (*session.Session, error) {
	sess := &session.Session{ID: id}
	err := s.db.QueryRowContext(ctx,
		"SELECT user_id, backend, start_time FROM sessions WHERE id = ?", id).
		Scan(&sess.UserID, &sess.Backend, &sess.StartTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT role, content, timestamp FROM messages WHERE session_id = ? ORDER BY timestamp, id",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var msg session.Message
		if err := rows.Scan(&msg.Role, &msg.Content, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		sess.Messages = append(sess.Messages, msg)
	}
	return sess, rows.Err()
}

// AppendMessage writes one turn without rewriting the whole session.
func (s *SQLite) AppendMessage(ctx context.Context, sessionID string, msg session.Message) error {
	var userID string
	err := s.db.QueryRowContext(ctx,
		"SELECT user_id FROM sessions WHERE id = ?", sessionID).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup session: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO messages (session_id, user_id, role, content, timestamp) VALUES (?, ?, ?, ?, ?)",
		sessionID, userID, msg.Role, msg.Content, msg.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// History returns all of a user's messages across sessions, oldest first.
func (s *SQLite) History(ctx context.Context, userID string) ([]session.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT role, content, timestamp FROM messages WHERE user_id = ? ORDER BY timestamp, id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	var msgs []session.Message
	for rows.Next() {
		var msg session.Message
		if err := rows.Scan(&msg.Role, &msg.Content, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

// ClearHistory deletes all of a user's messages. Sessions rows stay so a
// resumed session id remains valid.
func (s *SQLite) ClearHistory(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM messages WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// NewSession builds a fresh session for a user on the given backend.
func NewSession(userID, backend string) *session.Session {
	return &session.Session{
		ID:        NewSessionID(),
		UserID:    userID,
		StartTime: time.Now(),
		Backend:   backend,
	}
}
