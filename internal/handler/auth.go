package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/resume-builder/internal/service"
)

// AuthHandler exposes the account endpoints.
//
// HANDLER RESPONSIBILITIES:
//   - HandleSignup        → register an account, return a fresh JWT
//   - HandleLogin         → verify credentials, return a fresh JWT
//   - HandleResetPassword → acknowledge a password reset request
//
// The handler only decodes requests, calls the service, and encodes
// responses. All credential and token logic lives in service.AuthService.
type AuthHandler struct {
	auth   *service.AuthService
	dev    bool
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler. All dependencies are injected here;
// the handler has no knowledge of how they're constructed.
func NewAuthHandler(auth *service.AuthService, dev bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		dev:    dev,
		logger: logger,
	}
}

// signupRequest is the expected body for POST /api/auth/signup.
type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest is the expected body for POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// resetPasswordRequest is the expected body for POST /api/auth/reset-password.
type resetPasswordRequest struct {
	Email string `json:"email"`
}

// authResponse is returned by both signup and login.
type authResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	UserID  string `json:"userId"`
}

// HandleSignup registers a new account.
//
// HTTP: POST /api/auth/signup
// REQUEST BODY: {"name": "...", "email": "...", "password": "..."}
//
// On success the response carries a JWT, so the frontend can treat signup
// as an immediate login — no second round trip.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("signup: invalid JSON body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return
	}

	result, err := h.auth.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err, h.dev)
		return
	}

	h.logger.Info("user signed up", slog.String("userID", result.User.ID))

	writeJSON(w, http.StatusCreated, authResponse{
		Success: true,
		Message: "User registered successfully",
		Token:   result.Token,
		UserID:  result.User.ID,
	})
}

// HandleLogin verifies credentials and issues a JWT.
//
// HTTP: POST /api/auth/login
// REQUEST BODY: {"email": "...", "password": "..."}
//
// Failed logins come back as 400 with the message "Invalid credentials",
// for unknown emails and wrong passwords alike. See service.AuthService.Login
// for why the two cases are indistinguishable.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("login: invalid JSON body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err, h.dev)
		return
	}

	h.logger.Info("user logged in", slog.String("userID", result.User.ID))

	writeJSON(w, http.StatusOK, authResponse{
		Success: true,
		Message: "Login successful",
		Token:   result.Token,
		UserID:  result.User.ID,
	})
}

// HandleResetPassword acknowledges a password reset request.
//
// HTTP: POST /api/auth/reset-password
// REQUEST BODY: {"email": "..."}
//
// No reset email is actually sent — see service.AuthService.ResetPassword.
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("reset-password: invalid JSON body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return
	}

	message, err := h.auth.ResetPassword(r.Context(), req.Email)
	if err != nil {
		writeError(w, err, h.dev)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}
