package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/resume-builder/internal/apperror"
	"github.com/sakif/resume-builder/internal/model"
	"github.com/sakif/resume-builder/internal/repository"
)

var _ repository.ContactRepository = (*DB)(nil)

// CreateContactMessage inserts a contact-form submission.
func (db *DB) CreateContactMessage(ctx context.Context, msg *model.ContactMessage) error {
	msg.ID = xid.New().String()
	msg.SubmittedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO contact_messages (id, name, email, subject, message, archived, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.ID,
		msg.Name,
		msg.Email,
		msg.Subject,
		msg.Message,
		msg.Archived,
		msg.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating contact message: %w", err)
	}

	return nil
}

// ListContactMessages retrieves messages filtered by the archived flag, newest-first.
// The inbox view lists archived=false; the archive view lists archived=true.
func (db *DB) ListContactMessages(ctx context.Context, archived bool) ([]model.ContactMessage, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, email, subject, message, archived, submitted_at
		 FROM contact_messages
		 WHERE archived = ?
		 ORDER BY submitted_at DESC`,
		archived,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing contact messages: %w", err)
	}
	defer rows.Close()

	messages := []model.ContactMessage{}
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message,
			&m.Archived, &m.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning contact message row: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating contact messages: %w", err)
	}

	return messages, nil
}

// ArchiveContactMessage marks a message as archived. Archiving twice is a no-op success —
// the flag just stays set.
func (db *DB) ArchiveContactMessage(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE contact_messages SET archived = 1 WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: archiving contact message %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("contact message", id)
	}

	return nil
}

// DeleteContactMessage removes a message by ID.
// Same pattern as resume deletion — RowsAffected detects "not found".
func (db *DB) DeleteContactMessage(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM contact_messages WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting contact message %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("contact message", id)
	}

	return nil
}
