package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/resume-builder/internal/apperror"
	"github.com/sakif/resume-builder/internal/model"
	"github.com/sakif/resume-builder/internal/repository"
)

// ResumeService handles business logic for resume documents.
//
// Every operation takes the authenticated caller's userID as an explicit
// parameter — there is no way to reach this service without one, because the
// handlers sit behind the RequireAuth middleware.
type ResumeService struct {
	repo   repository.ResumeRepository
	logger *slog.Logger
}

// NewResumeService creates a ResumeService.
func NewResumeService(repo repository.ResumeRepository, logger *slog.Logger) *ResumeService {
	return &ResumeService{
		repo:   repo,
		logger: logger,
	}
}

// Save persists a new resume document for userID.
//
// OWNER OVERRIDE — THE ONE RULE THAT MATTERS HERE:
// Whatever userId the client put in the payload is discarded and replaced
// with the authenticated caller's identity. A client that "saves" a resume
// under someone else's ID simply saves it under its own.
//
// Beyond that, the document is stored as-is: the builder UI owns the shape
// of the nested entries, and the server doesn't second-guess free-form text.
// Each save creates a NEW document; resaving is not an update.
func (s *ResumeService) Save(ctx context.Context, userID string, resume *model.Resume) (*model.Resume, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("valid authentication required")
	}

	resume.UserID = userID
	// Repository assigns ID and CreatedAt — a client-supplied id is ignored
	// along with the owner field.
	resume.ID = ""

	if err := s.repo.CreateResume(ctx, resume); err != nil {
		s.logger.Error("failed to save resume",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("saving resume: %w", err)
	}

	s.logger.Info("resume saved",
		slog.String("id", resume.ID),
		slog.String("userID", userID),
	)

	return resume, nil
}

// List returns all of userID's resumes, newest-first.
// The ownership filter lives in the repository query; this never returns a
// document with a different owner.
func (s *ResumeService) List(ctx context.Context, userID string) ([]model.Resume, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("valid authentication required")
	}

	resumes, err := s.repo.ListResumesByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list resumes",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing resumes: %w", err)
	}

	return resumes, nil
}

// Delete removes one of userID's resumes by ID.
//
// Deletion is scoped to the owner: attempting to delete another user's
// document (or a nonexistent one) returns apperror.ErrNotFound.
func (s *ResumeService) Delete(ctx context.Context, userID, resumeID string) error {
	if userID == "" {
		return apperror.Unauthorized("valid authentication required")
	}

	resumeID = strings.TrimSpace(resumeID)
	if resumeID == "" {
		return apperror.ValidationFailed("id", "resume ID is required")
	}

	if err := s.repo.DeleteResume(ctx, resumeID, userID); err != nil {
		return err
	}

	s.logger.Info("resume deleted",
		slog.String("id", resumeID),
		slog.String("userID", userID),
	)
	return nil
}
