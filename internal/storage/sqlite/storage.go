// Package sqlite provides a SQLite-backed chat storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/mcoot/batepapo/internal/model"
	"github.com/mcoot/batepapo/internal/storage"
)

//go:embed schema.sql
var schema string

// Storage persists participants and messages in SQLite
type Storage struct {
	sqlDB *sql.DB
}

// Open opens a SQLite store at path and applies the schema
func Open(path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite serialises writers; one connection avoids SQLITE_BUSY under load
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Storage{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle
func (s *Storage) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Participant operations

func (s *Storage) InsertParticipant(ctx context.Context, participant model.Participant) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO participants (name, last_status) VALUES (?, ?)`,
		participant.Name, participant.LastStatus,
	)
	if isUniqueViolation(err) {
		return model.ErrNameTaken
	}
	return err
}

func (s *Storage) GetParticipant(ctx context.Context, name string) (*model.Participant, error) {
	var participant model.Participant
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT name, last_status FROM participants WHERE name = ?`, name,
	).Scan(&participant.Name, &participant.LastStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrParticipantNotFound
		}
		return nil, err
	}
	return &participant, nil
}

func (s *Storage) ListParticipants(ctx context.Context) ([]model.Participant, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT name, last_status FROM participants ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	participants := []model.Participant{}
	for rows.Next() {
		var participant model.Participant
		if err := rows.Scan(&participant.Name, &participant.LastStatus); err != nil {
			return nil, err
		}
		participants = append(participants, participant)
	}
	return participants, rows.Err()
}

// Message operations

func (s *Storage) InsertMessage(ctx context.Context, message model.Message) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO messages (from_name, to_name, text, type, time) VALUES (?, ?, ?, ?, ?)`,
		message.From, message.To, message.Text, string(message.Type), message.Time,
	)
	return err
}

func (s *Storage) ListMessages(ctx context.Context, query model.HistoryQuery) ([]model.Message, error) {
	// LIMIT -1 is unbounded in SQLite
	limit := -1
	if query.Limit > 0 {
		limit = query.Limit
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT from_name, to_name, text, type, time FROM messages
		 WHERE from_name = ? OR to_name = ? OR to_name = ? OR type = ?
		 ORDER BY time DESC, id DESC
		 LIMIT ?`,
		query.Viewer, query.Viewer, model.Broadcast, string(model.MessageTypeMessage), limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	messages := []model.Message{}
	for rows.Next() {
		var (
			message model.Message
			typ     string
		)
		if err := rows.Scan(&message.From, &message.To, &message.Text, &typ, &message.Time); err != nil {
			return nil, err
		}
		message.Type = model.MessageType(typ)
		messages = append(messages, message)
	}
	return messages, rows.Err()
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
