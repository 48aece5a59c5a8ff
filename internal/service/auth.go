// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Services take primitives and return domain models and domain errors —
// they know nothing about HTTP. Handlers translate both directions.
//
// DEPENDENCY INJECTION:
// Each service takes repository INTERFACES (not *sqlite.DB), so tests pass
// in-memory fakes and the storage engine stays swappable.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/resume-builder/internal/apperror"
	"github.com/sakif/resume-builder/internal/auth"
	"github.com/sakif/resume-builder/internal/model"
	"github.com/sakif/resume-builder/internal/repository"
)

// AuthService implements signup, login, and the reset-password stub.
//
// DEPENDENCIES (injected via NewAuthService):
//   - users      repository.UserRepository  → read/write account records
//   - tokens     *auth.TokenService         → issue JWTs
//   - passwords  *auth.PasswordService      → bcrypt hashing/verification
//   - logger     *slog.Logger               → structured logging
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
// Call this in server.go when wiring the dependency graph.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult is returned by Signup and Login.
// It bundles the user record and the issued JWT together so the caller
// (the HTTP handler) can build the response in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// Signup registers a new account and logs it in (a fresh token is issued
// immediately — signup doubles as the first login).
//
// Failure modes:
//   - any missing field        → apperror.ErrValidation
//   - email already registered → apperror.ErrDuplicateEmail
//
// DUPLICATE DETECTION, TWICE:
// The GetUserByEmail pre-check gives the common sequential case a fast,
// clean answer. It is NOT the guarantee — two concurrent signups can both
// pass it. The guarantee is the store's unique constraint: CreateUser itself
// fails with ErrDuplicateEmail for whichever insert loses the race.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" {
		return nil, apperror.ValidationFailed("", "All fields are required")
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, apperror.DuplicateEmail()
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("service/auth: checking email: %w", err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	// CreateUser fills in ID and CreatedAt, and enforces email uniqueness
	// atomically — a lost race surfaces here as ErrDuplicateEmail.
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("service/auth: creating user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("email", user.Email),
	)

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login authenticates an existing account and issues a fresh token.
//
// UNIFORM FAILURE:
// Unknown email and wrong password both return apperror.ErrInvalidCredentials
// with the identical message. Distinguishing them would let an attacker
// enumerate which emails have accounts. (bcrypt's cost keeps the timing
// difference between the two paths from being a practical oracle too —
// the comparison dominates, and we could add a dummy hash if that ever
// changed.)
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return nil, apperror.ValidationFailed("", "Email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.InvalidCredentials()
		}
		return nil, fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperror.InvalidCredentials()
		}
		// A malformed stored hash is data corruption, not a bad login —
		// let it surface as a 500, and log loudly.
		s.logger.Error("stored password hash is malformed",
			slog.String("userID", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/auth: verifying password: %w", err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// ResetPassword acknowledges a password-reset request.
//
// STUB SEMANTICS, ON PURPOSE:
// No reset token is minted and no email is sent — there is no mail provider
// wired up yet, so the endpoint is an acknowledgment only. The one real
// check is that the email belongs to an account (unknown emails get a
// not-found, which DOES reveal account existence on this endpoint —
// inconsistent with Login's opacity, but that's the documented contract).
func (s *AuthService) ResetPassword(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", apperror.ValidationFailed("email", "Email is required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.NotFound("user", email)
		}
		return "", fmt.Errorf("service/auth: looking up user: %w", err)
	}

	s.logger.Info("password reset requested", slog.String("userID", user.ID))

	return "Password reset link sent to your email", nil
}
