package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sakif/resume-builder/internal/auth"
	"github.com/sakif/resume-builder/internal/model"
	"github.com/sakif/resume-builder/internal/service"
)

// ResumeHandler manages the authenticated resume endpoints.
//
// Every route served by this handler sits behind auth.RequireAuth, so the
// requester's user ID is always taken from the request context — never from
// the request body. A client that puts someone else's userId in the JSON
// still only ever writes and reads its own documents.
type ResumeHandler struct {
	resumes *service.ResumeService
	dev     bool
	logger  *slog.Logger
}

// NewResumeHandler creates a ResumeHandler.
func NewResumeHandler(resumes *service.ResumeService, dev bool, logger *slog.Logger) *ResumeHandler {
	return &ResumeHandler{
		resumes: resumes,
		dev:     dev,
		logger:  logger,
	}
}

// HandleSave stores a new resume document for the authenticated user.
//
// HTTP: POST /api/resume/save
// Auth: Required
// REQUEST BODY: full resume document (fullName, email, education, ...)
//
// Each call creates a NEW document — saving twice yields two resumes.
// There is no upsert; the frontend treats the list as a version history.
func (h *ResumeHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		// Should never happen on a RequireAuth-protected route, but be safe.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "valid authentication required",
		})
		return
	}

	var resume model.Resume
	if err := json.NewDecoder(r.Body).Decode(&resume); err != nil {
		h.logger.Warn("resume save: invalid JSON body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return
	}

	saved, err := h.resumes.Save(r.Context(), userID, &resume)
	if err != nil {
		writeError(w, err, h.dev)
		return
	}

	h.logger.Info("resume saved",
		slog.String("resumeID", saved.ID),
		slog.String("userID", userID),
	)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Resume saved successfully",
		"resume":  saved,
	})
}

// HandleMyResumes lists the authenticated user's resumes, newest first.
//
// HTTP: GET /api/resume/my-resumes
// Auth: Required
//
// An account with no resumes gets an empty array, not null — the frontend
// iterates the list without a null check.
func (h *ResumeHandler) HandleMyResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "valid authentication required",
		})
		return
	}

	resumes, err := h.resumes.List(r.Context(), userID)
	if err != nil {
		writeError(w, err, h.dev)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"resumes": resumes,
	})
}

// HandleDelete removes one of the authenticated user's resumes.
//
// HTTP: DELETE /api/resume/{id}
// Auth: Required
//
// The delete is owner-scoped: a valid token holding the wrong user gets a
// 404, exactly as if the document didn't exist. It never learns whether
// the ID belongs to someone else.
func (h *ResumeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "valid authentication required",
		})
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.resumes.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err, h.dev)
		return
	}

	h.logger.Info("resume deleted",
		slog.String("resumeID", id),
		slog.String("userID", userID),
	)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Resume deleted successfully",
	})
}
