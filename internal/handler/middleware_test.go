package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pdf-upload-form/internal/session"
	"pdf-upload-form/internal/uploadform"
	"pdf-upload-form/pkg/logger"
)

func newTestSessions() *session.Manager {
	log := NewMockHandlerLogger()
	return session.NewManager(func() *uploadform.Form {
		return uploadform.New(&MockSender{}, log, uploadform.DefaultOptions())
	}, time.Hour, log)
}

func TestSessionMiddleware_NewSession(t *testing.T) {
	sessions := newTestSessions()
	middleware := NewSessionMiddleware(sessions, NewMockHandlerLogger()).Middleware

	var gotID string
	h := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		form, ok := GetFormFromContext(r)
		if !ok || form == nil {
			t.Fatalf("expected form in context")
		}
		gotID, _ = GetSessionIDFromContext(r)
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	cookie := sessionCookie(t, rr)
	if cookie.Value != gotID {
		t.Fatalf("expected cookie %q to match context id %q", cookie.Value, gotID)
	}
	if cookie.SameSite != http.SameSiteLaxMode || cookie.Path != "/" {
		t.Fatalf("unexpected cookie attributes: %+v", cookie)
	}
}

func TestSessionMiddleware_ExistingSession(t *testing.T) {
	sessions := newTestSessions()
	id, form := sessions.Create()
	middleware := NewSessionMiddleware(sessions, NewMockHandlerLogger()).Middleware

	h := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ := GetFormFromContext(r)
		if got != form {
			t.Fatalf("expected the existing form to be attached")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: id})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if len(rr.Result().Cookies()) != 0 {
		t.Fatalf("expected no new cookie for a known session")
	}
}

func TestSessionMiddleware_UnknownSessionReplaced(t *testing.T) {
	sessions := newTestSessions()
	middleware := NewSessionMiddleware(sessions, NewMockHandlerLogger()).Middleware
	h := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-uuid"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if cookie := sessionCookie(t, rr); cookie.Value == "not-a-uuid" {
		t.Fatalf("expected a fresh session id")
	}
	if sessions.Len() != 1 {
		t.Fatalf("expected one session, got %d", sessions.Len())
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLoggerTo(&buf, "info")

	h := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/submit", nil))

	out := buf.String()
	for _, want := range []string{"HTTP request", "method=POST", "path=/submit", "status=418"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log line, got %s", want, out)
		}
	}
}
