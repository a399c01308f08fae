package uploadform

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"pdf-upload-form/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, fields ...interface{})             {}
func (nopLogger) Error(msg string, err error, fields ...interface{}) {}
func (nopLogger) Debug(msg string, fields ...interface{})            {}
func (nopLogger) Warn(msg string, fields ...interface{})             {}

// manualClock hands out a single manualTicker that the test fires by hand.
type manualClock struct {
	mu      sync.Mutex
	tickers []*manualTicker
}

func (c *manualClock) NewTicker(d time.Duration) domain.Ticker {
	t := &manualTicker{c: make(chan time.Time)}
	c.mu.Lock()
	c.tickers = append(c.tickers, t)
	c.mu.Unlock()
	return t
}

func (c *manualClock) latest() *manualTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.tickers) == 0 {
		return nil
	}
	return c.tickers[len(c.tickers)-1]
}

type manualTicker struct {
	c       chan time.Time
	stopped atomic.Bool
}

func (t *manualTicker) C() <-chan time.Time { return t.c }
func (t *manualTicker) Stop()               { t.stopped.Store(true) }

// fire delivers one tick, reporting false if nobody was listening.
func (t *manualTicker) fire() bool {
	select {
	case t.c <- time.Now():
		return true
	case <-time.After(100 * time.Millisecond):
		return false
	}
}

type stubResult struct {
	resp *domain.ProcessResponse
	err  error
}

// stubSender returns queued results in order. When gate is set each Send
// waits for a value on it before answering.
type stubSender struct {
	mu      sync.Mutex
	results []stubResult
	calls   int
	files   []*domain.SelectedFile
	entered chan struct{}
	gate    chan struct{}
}

func newStubSender(results ...stubResult) *stubSender {
	return &stubSender{results: results, entered: make(chan struct{}, 16)}
}

func (s *stubSender) Send(ctx context.Context, file *domain.SelectedFile) (*domain.ProcessResponse, error) {
	s.mu.Lock()
	s.calls++
	s.files = append(s.files, file)
	idx := s.calls - 1
	gate := s.gate
	s.mu.Unlock()

	s.entered <- struct{}{}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if idx >= len(s.results) {
		return &domain.ProcessResponse{StatusCode: 200, Body: []byte(`{}`)}, nil
	}
	r := s.results[idx]
	return r.resp, r.err
}

func (s *stubSender) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func okResponse(body string) stubResult {
	return stubResult{resp: &domain.ProcessResponse{StatusCode: 200, Body: []byte(body)}}
}

func statusResponse(code int, body string) stubResult {
	return stubResult{resp: &domain.ProcessResponse{StatusCode: code, Body: []byte(body)}}
}

func samplePDF() *domain.SelectedFile {
	return &domain.SelectedFile{
		Name:    "application.pdf",
		Size:    9,
		Content: []byte("%PDF-1.7\n"),
		Hint:    domain.FileHint{DetectedMIME: domain.PDFMimeType, ExtensionMatches: true, ContentMatches: true},
	}
}

func newTestForm(sender domain.DocumentSender) (*Form, *manualClock) {
	clock := &manualClock{}
	opts := DefaultOptions()
	opts.Clock = clock
	return New(sender, nopLogger{}, opts), clock
}
