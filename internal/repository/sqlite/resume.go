package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/resume-builder/internal/apperror"
	"github.com/sakif/resume-builder/internal/model"
	"github.com/sakif/resume-builder/internal/repository"
)

var _ repository.ResumeRepository = (*DB)(nil)

// CreateResume inserts a new resume document.
//
// The nested sections are marshalled to JSON and stored in TEXT columns —
// the whole document is written and read in one row, no joins. The caller
// must have set resume.UserID already (the service forces it to the
// authenticated caller's identity before this is ever reached).
func (db *DB) CreateResume(ctx context.Context, resume *model.Resume) error {
	resume.ID = xid.New().String()
	resume.CreatedAt = time.Now()

	education, err := json.Marshal(emptyIfNil(resume.Education))
	if err != nil {
		return fmt.Errorf("sqlite: encoding education: %w", err)
	}
	experience, err := json.Marshal(emptyIfNil(resume.Experience))
	if err != nil {
		return fmt.Errorf("sqlite: encoding experience: %w", err)
	}
	skills, err := json.Marshal(emptyIfNil(resume.Skills))
	if err != nil {
		return fmt.Errorf("sqlite: encoding skills: %w", err)
	}
	projects, err := json.Marshal(emptyIfNil(resume.Projects))
	if err != nil {
		return fmt.Errorf("sqlite: encoding projects: %w", err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO resumes
			(id, user_id, full_name, email, phone, linkedin, summary,
			 education, experience, skills, projects, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		resume.ID,
		resume.UserID,
		resume.FullName,
		resume.Email,
		resume.Phone,
		resume.LinkedIn,
		resume.Summary,
		string(education),
		string(experience),
		string(skills),
		string(projects),
		resume.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating resume: %w", err)
	}

	return nil
}

// ListResumesByUser retrieves every resume owned by userID, newest-first.
//
// The WHERE clause is the ownership boundary: a row whose user_id differs
// from the caller can never appear in the result, whatever the client sends.
func (db *DB) ListResumesByUser(ctx context.Context, userID string) ([]model.Resume, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, full_name, email, phone, linkedin, summary,
		        education, experience, skills, projects, created_at
		 FROM resumes
		 WHERE user_id = ?
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing resumes: %w", err)
	}
	// sql.Rows holds a pool connection — always close it.
	defer rows.Close()

	resumes := []model.Resume{}
	for rows.Next() {
		var r model.Resume
		var education, experience, skills, projects string
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.FullName, &r.Email, &r.Phone, &r.LinkedIn,
			&r.Summary, &education, &experience, &skills, &projects, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning resume row: %w", err)
		}

		if err := decodeSections(&r, education, experience, skills, projects); err != nil {
			return nil, fmt.Errorf("sqlite: decoding resume %s: %w", r.ID, err)
		}

		resumes = append(resumes, r)
	}

	// rows.Err() catches errors that happened DURING iteration.
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating resumes: %w", err)
	}

	return resumes, nil
}

// DeleteResume removes a resume by ID, scoped to the owner.
//
// The user_id in the WHERE clause is the authorization check: deleting
// someone else's document affects zero rows, which we report as not-found —
// indistinguishable from a document that never existed.
func (db *DB) DeleteResume(ctx context.Context, id, userID string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM resumes WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting resume %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("resume", id)
	}

	return nil
}

// decodeSections unmarshals the JSON document columns back into the model.
func decodeSections(r *model.Resume, education, experience, skills, projects string) error {
	if err := json.Unmarshal([]byte(education), &r.Education); err != nil {
		return fmt.Errorf("education: %w", err)
	}
	if err := json.Unmarshal([]byte(experience), &r.Experience); err != nil {
		return fmt.Errorf("experience: %w", err)
	}
	if err := json.Unmarshal([]byte(skills), &r.Skills); err != nil {
		return fmt.Errorf("skills: %w", err)
	}
	if err := json.Unmarshal([]byte(projects), &r.Projects); err != nil {
		return fmt.Errorf("projects: %w", err)
	}
	return nil
}

// emptyIfNil normalises a nil slice to an empty one so the stored JSON is
// always "[]", never "null". Keeps list responses stable for the frontend.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
