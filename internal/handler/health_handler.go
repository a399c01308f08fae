package handler

import (
	"net/http"

	"pdf-upload-form/internal/domain"
)

// HealthHandler reports service health and, when configured, upstream reachability
type HealthHandler struct {
	upstream domain.UpstreamChecker
	sessions domain.SessionCounter
	logger   domain.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(upstream domain.UpstreamChecker, sessions domain.SessionCounter, logger domain.Logger) *HealthHandler {
	return &HealthHandler{
		upstream: upstream,
		sessions: sessions,
		logger:   logger,
	}
}

type healthResponse struct {
	Status            string `json:"status"`
	Service           string `json:"service"`
	Forms             int    `json:"forms"`
	UpstreamReachable bool   `json:"upstream_reachable"`
	Note              string `json:"note,omitempty"`
}

// Health always answers 200; an unreachable upstream is reported, not fatal
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:            "ok",
		Service:           "pdf-upload-form",
		Forms:             h.sessions.Len(),
		UpstreamReachable: true,
	}
	if err := h.upstream.Ping(r.Context()); err != nil {
		h.logger.Warn("Upstream health check failed", "error", err)
		resp.UpstreamReachable = false
		resp.Note = "Process endpoint not reachable. Uploads will fail until it is."
	}
	writeJSON(w, http.StatusOK, resp)
}
