package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sakif/resume-builder/internal/service"
)

// ContactHandler manages the contact-form endpoints.
//
// None of these routes require authentication. Submission is open because
// visitors are by definition anonymous; the management endpoints (list,
// archive, delete) shipped open too, and stay that way until a proper
// admin role exists.
type ContactHandler struct {
	contacts *service.ContactService
	dev      bool
	logger   *slog.Logger
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(contacts *service.ContactService, dev bool, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		contacts: contacts,
		dev:      dev,
		logger:   logger,
	}
}

// contactRequest is the expected body for POST /api/contact/submit.
type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// HandleSubmit stores a contact-form submission.
//
// HTTP: POST /api/contact
//
// The saved message (with its assigned id) comes back in the response so
// the admin view can render it without a follow-up fetch.
func (h *ContactHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("contact submit: invalid JSON body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return
	}

	msg, err := h.contacts.Submit(r.Context(), req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		writeError(w, err, h.dev)
		return
	}

	h.logger.Info("contact message received", slog.String("messageID", msg.ID))

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":      true,
		"message":      "Message sent successfully",
		"savedMessage": msg,
	})
}

// HandleList returns contact messages, inbox by default.
//
// HTTP: GET /api/contact?archived=true
//
// The two views are disjoint: without the query parameter only
// unarchived messages are returned, with archived=true only archived
// ones. Any other value of the parameter means the inbox.
func (h *ContactHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	archived := r.URL.Query().Get("archived") == "true"

	messages, err := h.contacts.List(r.Context(), archived)
	if err != nil {
		writeError(w, err, h.dev)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"messages": messages,
	})
}

// HandleArchive marks a contact message as archived.
//
// HTTP: PATCH /api/contact/{id}/archive
//
// Archiving is idempotent — archiving an already-archived message
// succeeds and changes nothing.
func (h *ContactHandler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.contacts.Archive(r.Context(), id); err != nil {
		writeError(w, err, h.dev)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Message archived",
	})
}

// HandleDelete permanently removes a contact message.
//
// HTTP: DELETE /api/contact/{id}
func (h *ContactHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.contacts.Delete(r.Context(), id); err != nil {
		writeError(w, err, h.dev)
		return
	}

	h.logger.Info("contact message deleted", slog.String("messageID", id))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Message deleted",
	})
}
