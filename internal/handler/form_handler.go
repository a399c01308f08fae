// Package handler provides the HTTP handlers for the upload form.
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"pdf-upload-form/internal/domain"
	"pdf-upload-form/internal/render"
	"pdf-upload-form/internal/service"
	"pdf-upload-form/internal/session"
	"pdf-upload-form/internal/uploadform"
	apperrors "pdf-upload-form/pkg/errors"
)

// multipartOverhead is allowed on top of the file size for boundaries and headers.
const multipartOverhead = 1 << 20

// pickerFieldNames are tried in order when reading the chosen file.
var pickerFieldNames = []string{"file-upload", domain.FileFieldName}

// FormHandler serves the form page and its JSON mirror.
type FormHandler struct {
	sessions    *session.Manager
	inspector   domain.FileInspector
	renderer    *render.Renderer
	logger      domain.Logger
	maxFileSize int64

	// submissions outlive the request that started them
	baseCtx  context.Context
	inflight sync.WaitGroup
}

// NewFormHandler creates a new form handler. Submissions run under baseCtx.
func NewFormHandler(
	baseCtx context.Context,
	sessions *session.Manager,
	inspector domain.FileInspector,
	renderer *render.Renderer,
	maxFileSize int64,
	logger domain.Logger,
) *FormHandler {
	return &FormHandler{
		sessions:    sessions,
		inspector:   inspector,
		renderer:    renderer,
		logger:      logger,
		maxFileSize: maxFileSize,
		baseCtx:     baseCtx,
	}
}

// Wait blocks until every background submission has settled.
func (h *FormHandler) Wait() {
	h.inflight.Wait()
}

type formResponse struct {
	SessionID string           `json:"session_id"`
	Phase     domain.Phase     `json:"phase"`
	View      domain.FormView  `json:"view"`
	Report    *domain.Report   `json:"report,omitempty"`
	File      *domain.FileHint `json:"file_hint,omitempty"`
}

// ShowForm renders the form page
func (h *FormHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	form, ok := GetFormFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Form not found in context")
		return
	}
	h.renderPage(w, http.StatusOK, render.View(form.State()))
}

// SelectFile handles the picker posting a file, then redirects back to the page
func (h *FormHandler) SelectFile(w http.ResponseWriter, r *http.Request) {
	form, ok := GetFormFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Form not found in context")
		return
	}

	if err := h.selectFile(w, r, form); err != nil {
		view := render.View(form.State())
		view.ShowError = true
		view.ErrorMessage = apperrors.UserMessage(err)
		h.renderPage(w, apperrors.GetStatusCode(err), view)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Submit starts a submission and redirects back to the page, which refreshes
// itself while the upload is outstanding
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	form, ok := GetFormFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Form not found in context")
		return
	}

	if err := h.startSubmission(r, form); err != nil && apperrors.IsType(err, apperrors.ErrorTypeConflict) {
		h.renderPage(w, http.StatusConflict, render.View(form.State()))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Reset remounts the form for this session
func (h *FormHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if _, err := h.reset(r); err != nil {
		writeAppError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// GetState returns the current view as JSON
func (h *FormHandler) GetState(w http.ResponseWriter, r *http.Request) {
	form, ok := GetFormFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Form not found in context")
		return
	}
	writeJSON(w, http.StatusOK, h.response(r, form))
}

// SelectFileJSON is SelectFile for API clients
func (h *FormHandler) SelectFileJSON(w http.ResponseWriter, r *http.Request) {
	form, ok := GetFormFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Form not found in context")
		return
	}
	if err := h.selectFile(w, r, form); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.response(r, form))
}

// SubmitJSON starts a submission and answers 202 with the uploading state
func (h *FormHandler) SubmitJSON(w http.ResponseWriter, r *http.Request) {
	form, ok := GetFormFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Form not found in context")
		return
	}
	if err := h.startSubmission(r, form); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, h.response(r, form))
}

// ResetJSON is Reset for API clients
func (h *FormHandler) ResetJSON(w http.ResponseWriter, r *http.Request) {
	form, err := h.reset(r)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.response(r, form))
}

func (h *FormHandler) selectFile(w http.ResponseWriter, r *http.Request, form *uploadform.Form) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return h.tooLargeError()
		}
		return apperrors.NewValidationError("File is required")
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	for _, field := range pickerFieldNames {
		file, header, err := r.FormFile(field)
		if err != nil {
			continue
		}
		defer file.Close()

		if header.Size > h.maxFileSize {
			return h.tooLargeError()
		}
		content, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
		if err != nil {
			return apperrors.NewInternalError("Failed to read file", err)
		}
		if int64(len(content)) > h.maxFileSize {
			return h.tooLargeError()
		}

		selected := service.NewSelectedFile(h.inspector, header.Filename, content)
		return form.SelectFile(selected)
	}
	return apperrors.NewValidationError("File is required")
}

func (h *FormHandler) tooLargeError() error {
	appErr := apperrors.NewValidationError(fmt.Sprintf("File too large. Maximum size is %dMB", h.maxFileSize/1024/1024))
	appErr.StatusCode = http.StatusRequestEntityTooLarge
	appErr.Cause = domain.ErrFileTooLarge
	return appErr
}

// startSubmission enters Uploading before returning, then sends in the
// background. Conflicts and a missing file are reported synchronously.
func (h *FormHandler) startSubmission(r *http.Request, form *uploadform.Form) error {
	file, err := form.Begin()
	if err != nil {
		return err
	}

	sessionID, _ := GetSessionIDFromContext(r)
	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()
		if err := form.Settle(h.baseCtx, file); err != nil {
			h.logger.Warn("Submission settled with error", "session", sessionID, "error", err)
			return
		}
		h.logger.Info("Submission settled", "session", sessionID)
	}()
	return nil
}

func (h *FormHandler) reset(r *http.Request) (*uploadform.Form, error) {
	id, ok := GetSessionIDFromContext(r)
	if !ok {
		return nil, apperrors.NewInternalError("Session not found in context", nil)
	}
	form, err := h.sessions.Reset(id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, apperrors.NewNotFoundError("Session not found")
		}
		return nil, apperrors.NewInternalError("Failed to reset form", err)
	}
	return form, nil
}

func (h *FormHandler) response(r *http.Request, form *uploadform.Form) formResponse {
	id, _ := GetSessionIDFromContext(r)
	state := form.State()
	resp := formResponse{
		SessionID: id,
		Phase:     state.Phase,
		View:      render.View(state),
		Report:    state.Report,
	}
	if state.SelectedFile != nil {
		hint := state.SelectedFile.Hint
		resp.File = &hint
	}
	return resp
}

func (h *FormHandler) renderPage(w http.ResponseWriter, status int, view domain.FormView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := h.renderer.Render(w, view); err != nil {
		h.logger.Error("Failed to render form", err)
	}
}
