package handler

import (
	"context"
	"net/http"
	"time"

	"pdf-upload-form/internal/domain"
	"pdf-upload-form/internal/session"
)

// SessionCookieName identifies the browser session a form belongs to.
const SessionCookieName = "upload_form_session"

// SessionMiddleware attaches the caller's upload form to the request,
// mounting a new one when the cookie is missing or unknown.
type SessionMiddleware struct {
	sessions *session.Manager
	logger   domain.Logger
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(sessions *session.Manager, logger domain.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: sessions,
		logger:   logger,
	}
}

func (m *SessionMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested := ""
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			requested = cookie.Value
		}

		id, form, created := m.sessions.GetOrCreate(requested)
		if created {
			setSessionCookie(w, id)
			if requested != "" {
				m.logger.Debug("Unknown session replaced", "requested", requested, "session", id)
			}
		}

		ctx := context.WithValue(r.Context(), sessionIDContextKey, id)
		ctx = context.WithValue(ctx, formContextKey, form)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per request.
func RequestLogger(logger domain.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Info("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start).Round(time.Microsecond),
			)
		})
	}
}
