// Package repository defines the storage interfaces the service layer
// programs against. The concrete implementation lives in repository/sqlite;
// services never import it directly, which keeps them testable with in-memory
// fakes and keeps the storage engine swappable.
package repository

import (
	"context"

	"github.com/sakif/resume-builder/internal/model"
)

// UserRepository persists account records.
//
// Create must enforce email uniqueness ATOMICALLY — the insert itself fails
// with apperror.ErrDuplicateEmail when the email is already taken. Pushing
// uniqueness into the store (instead of a check-then-insert in the service)
// is what closes the concurrent-signup race: two simultaneous signups with
// the same email can both pass any application-level check, but only one
// insert can win the unique constraint.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// ResumeRepository persists resume documents.
//
// ListResumesByUser returns only the given owner's documents, newest-first.
// DeleteResume is scoped to (id, userID) — deleting a document you don't own
// is indistinguishable from deleting one that doesn't exist.
type ResumeRepository interface {
	CreateResume(ctx context.Context, resume *model.Resume) error
	ListResumesByUser(ctx context.Context, userID string) ([]model.Resume, error)
	DeleteResume(ctx context.Context, id, userID string) error
}

// ContactRepository persists contact-form submissions.
type ContactRepository interface {
	CreateContactMessage(ctx context.Context, msg *model.ContactMessage) error
	ListContactMessages(ctx context.Context, archived bool) ([]model.ContactMessage, error)
	ArchiveContactMessage(ctx context.Context, id string) error
	DeleteContactMessage(ctx context.Context, id string) error
}
