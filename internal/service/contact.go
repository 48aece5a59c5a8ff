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

// ContactService handles contact-form submissions and the admin inbox
// operations (list, archive, delete).
//
// None of these operations are authenticated — see DESIGN.md for the
// decision to keep the contact surface open, matching the shipped product.
type ContactService struct {
	repo   repository.ContactRepository
	logger *slog.Logger
}

// NewContactService creates a ContactService.
func NewContactService(repo repository.ContactRepository, logger *slog.Logger) *ContactService {
	return &ContactService{
		repo:   repo,
		logger: logger,
	}
}

// Submit stores a contact-form submission. All four fields are required.
func (s *ContactService) Submit(ctx context.Context, name, email, subject, message string) (*model.ContactMessage, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)

	if name == "" || email == "" || subject == "" || message == "" {
		return nil, apperror.ValidationFailed("", "All fields are required.")
	}

	msg := &model.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
	}
	if err := s.repo.CreateContactMessage(ctx, msg); err != nil {
		s.logger.Error("failed to save contact message", slog.String("error", err.Error()))
		return nil, fmt.Errorf("saving contact message: %w", err)
	}

	s.logger.Info("contact message received",
		slog.String("id", msg.ID),
		slog.String("subject", msg.Subject),
	)

	return msg, nil
}

// List returns messages filtered by the archived flag, newest-first.
func (s *ContactService) List(ctx context.Context, archived bool) ([]model.ContactMessage, error) {
	messages, err := s.repo.ListContactMessages(ctx, archived)
	if err != nil {
		s.logger.Error("failed to list contact messages", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing contact messages: %w", err)
	}
	return messages, nil
}

// Archive marks a message as archived.
func (s *ContactService) Archive(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "message ID is required")
	}

	if err := s.repo.ArchiveContactMessage(ctx, id); err != nil {
		return err
	}

	s.logger.Info("contact message archived", slog.String("id", id))
	return nil
}

// Delete removes a message.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "message ID is required")
	}

	if err := s.repo.DeleteContactMessage(ctx, id); err != nil {
		return err
	}

	s.logger.Info("contact message deleted", slog.String("id", id))
	return nil
}
