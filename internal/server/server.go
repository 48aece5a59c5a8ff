// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer — it connects handlers, middleware, and
// routes. Think of it as the control centre that decides:
// - Which URL patterns map to which handler functions
// - What middleware runs on which routes
// - How the server starts and stops gracefully
//
// WHY SEPARATE FROM main.go?
// Keeping server setup in its own package makes it:
// - Testable (we can create a test server without running main)
// - Reusable (multiple entry points could use the same server config)
// - Clean (main.go stays minimal — just "start the server")
//
// This is the "composition root" pattern — all dependencies are wired in one
// place (New/setupRoutes), rather than scattered across the codebase.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/resume-builder/internal/auth"
	"github.com/sakif/resume-builder/internal/config"
	"github.com/sakif/resume-builder/internal/handler"
	"github.com/sakif/resume-builder/internal/middleware"
	sqliteRepo "github.com/sakif/resume-builder/internal/repository/sqlite"
	"github.com/sakif/resume-builder/internal/service"
)

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the database connection (db). When the server shuts down,
// we must close this connection to flush any pending writes and release the
// file lock. This is handled in Start() during graceful shutdown.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a new Server from the given config.
//
// DEPENDENCY INJECTION & WIRING:
// This is where the entire dependency chain is assembled:
//  1. Open the database (sqlite.New)
//  2. Create the auth primitives (TokenService, PasswordService)
//  3. Create the service layer with the DB
//  4. Create the handlers with the services
//  5. Wire handlers to routes
//
// Each layer only receives what it needs:
// - Services get the repository interfaces (not the concrete sqlite.DB)
// - Handlers get the services (not the repositories or DB)
//
// IMPORT ALIAS:
// We import repository/sqlite as `sqliteRepo` to avoid confusion with
// the sqlite driver package.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close() // Clean up DB if route setup fails
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// POST   /api/auth/signup                     → register, returns JWT
// POST   /api/auth/login                      → verify credentials, returns JWT
// POST   /api/auth/reset-password             → acknowledge reset request
// POST   /api/resume/save                     → store a resume        [auth]
// GET    /api/resume/my-resumes               → list own resumes      [auth]
// DELETE /api/resume/{id}                     → delete own resume     [auth]
// POST   /api/contact                         → contact-form submission
// GET    /api/contact?archived=true           → list messages
// PATCH  /api/contact/{id}/archive            → archive a message
// DELETE /api/contact/{id}                    → delete a message
//
// MIDDLEWARE ORDER MATTERS:
// Middleware executes in the order it's added. Our order:
// 1. RequestID — assigns unique ID to each request (for tracing)
// 2. RealIP — extracts real client IP from proxy headers
// 3. Logger — logs each request with timing info
// 4. Recoverer — catches panics and returns 500 instead of crashing
// 5. CORS — answers preflights, sets Access-Control-* headers
//
// RequireAuth is NOT global: it wraps only the /api/resume subtree, so the
// auth and contact routes stay reachable without a token.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID) // Adds X-Request-ID header
	s.router.Use(chimiddleware.RealIP)    // Extracts real IP from X-Forwarded-For
	s.router.Use(chimiddleware.Recoverer) // Recovers from panics, returns 500

	// Our custom logging middleware
	s.router.Use(middleware.Logger(s.logger))

	// CORS — the React frontend runs on a different origin in development.
	// No cookies cross the boundary (the JWT travels in the Authorization
	// header), so AllowCredentials stays false.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// === AUTH PRIMITIVES ===
	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	// === SERVICES & HANDLERS ===
	// DEPENDENCY CHAIN:
	//   s.db (sqlite.DB) → implements the repository interfaces
	//   services receive the repository interfaces
	//   handlers receive the services
	//
	// Notice: handlers never touch the database directly.
	// Services never touch HTTP. Clean separation!
	dev := s.config.IsDevelopment()

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	authHandler := handler.NewAuthHandler(authService, dev, s.logger)

	resumeService := service.NewResumeService(s.db, s.logger)
	resumeHandler := handler.NewResumeHandler(resumeService, dev, s.logger)

	contactService := service.NewContactService(s.db, s.logger)
	contactHandler := handler.NewContactHandler(contactService, dev, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.HandleSignup)
			r.Post("/login", authHandler.HandleLogin)
			r.Post("/reset-password", authHandler.HandleResetPassword)
		})

		// Everything under /api/resume requires a valid bearer token.
		r.Route("/resume", func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Post("/save", resumeHandler.HandleSave)
			r.Get("/my-resumes", resumeHandler.HandleMyResumes)
			r.Delete("/{id}", resumeHandler.HandleDelete)
		})

		r.Route("/contact", func(r chi.Router) {
			r.Post("/", contactHandler.HandleSubmit)
			r.Get("/", contactHandler.HandleList)
			r.Patch("/{id}/archive", contactHandler.HandleArchive)
			r.Delete("/{id}", contactHandler.HandleDelete)
		})
	})

	return nil
}

// Router returns the configured route tree. Exposed so tests can drive the
// full middleware + routing stack through httptest without opening a socket.
func (s *Server) Router() http.Handler {
	return s.router
}

// Close releases the server's resources without going through Start.
// Tests use this; production shutdown happens inside Start.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the database connection (flushes WAL, releases file lock)
//
// If we skip step 3, the database file might be left in an inconsistent
// state. The `defer s.db.Close()` ensures this happens even if something
// panics.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
			slog.String("env", s.config.Env),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		// Give in-flight requests 30 seconds to complete
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
