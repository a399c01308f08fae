package domain

import (
	"context"
	"time"
)

// ProcessResponse is the raw outcome of one POST to the process endpoint
type ProcessResponse struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status is in the 2xx range
func (r *ProcessResponse) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// DocumentSender sends a selected document to the process endpoint.
// A returned error means the request never produced a response.
type DocumentSender interface {
	Send(ctx context.Context, file *SelectedFile) (*ProcessResponse, error)
}

// UpstreamChecker probes whether the process endpoint is reachable.
type UpstreamChecker interface {
	Ping(ctx context.Context) error
}

// FileInspector produces the advisory hint shown next to a selected file
type FileInspector interface {
	Inspect(name string, content []byte) FileHint
}

// SessionCounter reports how many forms are currently mounted
type SessionCounter interface {
	Len() int
}

// Ticker is the subset of time.Ticker the progress loop depends on
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock creates tickers; swapped out in tests
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetProcessEndpoint() string
	GetProcessHealthEndpoint() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetAllowedOrigins() []string
	GetProgressStep() int
	GetProgressInterval() time.Duration
	GetProgressCeiling() int
	GetSessionTTL() time.Duration
}
