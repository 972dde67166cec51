package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const (
	MessageSent   = "sent"
	MessageFailed = "failed"
)

// Message is an archived contact-form submission.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordMessage archives one delivery attempt. A nil sendErr marks it sent.
func (s *Store) RecordMessage(ctx context.Context, name, email, body string, sendErr error) error {
	status, errText := MessageSent, ""
	if sendErr != nil {
		status, errText = MessageFailed, sendErr.Error()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (name, email, body, status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, name, email, body, status, errText, s.now().Unix())
	if err != nil {
		return fmt.Errorf("recording message: %w", err)
	}
	return nil
}

func (s *Store) ListMessages(ctx context.Context, limit int) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, body, status, error, created_at
		FROM messages
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (s *Store) GetMessage(ctx context.Context, id int64) (Message, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, body, status, error, created_at
		FROM messages WHERE id = ?
	`, id)
	m, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Message{}, fmt.Errorf("message %d: %w", id, ErrNotFound)
	}
	return m, err
}

func (s *Store) DeleteMessage(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting message %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("message %d: %w", id, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMessage(row scanner) (Message, error) {
	var m Message
	var at int64
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.Status, &m.Error, &at); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Message{}, err
		}
		return Message{}, fmt.Errorf("scanning message: %w", err)
	}
	m.CreatedAt = time.Unix(at, 0).UTC()
	return m, nil
}
