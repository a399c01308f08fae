package uploadform

import (
	"context"
	"sync"
	"time"

	"pdf-upload-form/internal/domain"
	apperrors "pdf-upload-form/pkg/errors"
)

// Options tunes the cosmetic progress ticker.
type Options struct {
	Step     int
	Interval time.Duration
	Ceiling  int
	Clock    domain.Clock
}

// DefaultOptions advances 5% every 300ms and holds at 95% until the response arrives.
func DefaultOptions() Options {
	return Options{
		Step:     5,
		Interval: 300 * time.Millisecond,
		Ceiling:  95,
		Clock:    SystemClock{},
	}
}

// OptionsFromConfig reads the progress settings from cfg.
func OptionsFromConfig(cfg domain.Config) Options {
	opts := DefaultOptions()
	opts.Step = cfg.GetProgressStep()
	opts.Interval = cfg.GetProgressInterval()
	opts.Ceiling = cfg.GetProgressCeiling()
	return opts
}

// Form is one mounted upload form.
type Form struct {
	mu        sync.Mutex
	state     domain.FormState
	sender    domain.DocumentSender
	logger    domain.Logger
	opts      Options
	listeners []func(domain.FormState)
}

// New creates a form in the Idle phase.
func New(sender domain.DocumentSender, logger domain.Logger, opts Options) *Form {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	return &Form{
		state:  domain.NewFormState(),
		sender: sender,
		logger: logger,
		opts:   opts,
	}
}

// State returns a snapshot of the current state.
func (f *Form) State() domain.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// OnChange registers fn to be called with every new state.
// fn runs with the form locked and must not call back into the form.
func (f *Form) OnChange(fn func(domain.FormState)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners = append(f.listeners, fn)
}

// SelectFile replaces the selected file. Any error or report from an earlier attempt stays visible.
func (f *Form) SelectFile(file *domain.SelectedFile) error {
	if err := file.Validate(); err != nil {
		invalid := apperrors.NewValidationError("Invalid file", err.Error())
		invalid.Cause = domain.ErrInvalidFile
		return invalid
	}
	f.dispatch(FileSelected{File: file})
	f.logger.Debug("File selected", "name", file.Name, "size", file.Size, "mime", file.Hint.DetectedMIME)
	return nil
}

// Submit sends the selected file and blocks until the request settles.
// The returned error is also recorded in the state's ErrorMessage, except for
// the in-progress conflict which leaves state untouched.
func (f *Form) Submit(ctx context.Context) error {
	file, err := f.Begin()
	if err != nil {
		return err
	}
	return f.Settle(ctx, file)
}

// Begin moves the form into Uploading and returns the file to send.
// It fails with a conflict while another upload is outstanding, and with a
// validation error (recorded in state) when nothing is selected.
func (f *Form) Begin() (*domain.SelectedFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state.IsUploading {
		conflict := apperrors.NewConflictError("An upload is already in progress")
		conflict.Cause = domain.ErrUploadInProgress
		return nil, conflict
	}
	if !f.state.HasFile() {
		f.applyLocked(SubmitRejected{Message: domain.NoFileSelectedMessage})
		validation := apperrors.NewValidationError(domain.NoFileSelectedMessage)
		validation.Cause = domain.ErrNoFileSelected
		return nil, validation
	}
	f.applyLocked(SubmitStarted{})
	return f.state.SelectedFile, nil
}

// Settle sends file, returned by a successful Begin, and records the outcome.
func (f *Form) Settle(ctx context.Context, file *domain.SelectedFile) error {
	f.logger.Info("Upload started", "file", file.Name, "size", file.Size)

	stopProgress := f.startProgress(ctx)
	resp, err := f.sender.Send(ctx, file)
	stopProgress()

	if err != nil {
		return f.fail(apperrors.NewTransportError(err), false)
	}
	// Any answer from the endpoint completes the bar, whatever its status.
	if !resp.OK() {
		return f.fail(apperrors.NewHTTPStatusError(resp.StatusCode), true)
	}

	report, err := domain.ParseReport(resp.Body)
	if err != nil {
		return f.fail(apperrors.NewParseError(err), true)
	}

	f.dispatch(UploadSucceeded{Report: report})
	f.logger.Info("Upload succeeded", "file", file.Name, "status", resp.StatusCode, "report_kind", report.Kind)
	return nil
}

func (f *Form) fail(appErr *apperrors.AppError, forceComplete bool) error {
	f.dispatch(UploadFailed{Message: apperrors.UserMessage(appErr), ForceComplete: forceComplete})
	f.logger.Warn("Upload failed", "type", appErr.Type, "message", appErr.Message)
	return appErr
}

// startProgress runs the ticker until the returned stop func is called or the
// ceiling is reached. stop blocks until the ticker goroutine has exited, so no
// tick can be applied after it returns.
func (f *Form) startProgress(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	ticker := f.opts.Clock.NewTicker(f.opts.Interval)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
				if ctx.Err() != nil {
					return
				}
				if f.dispatch(ProgressTicked{Step: f.opts.Step, Ceiling: f.opts.Ceiling}).ProgressPercent >= f.opts.Ceiling {
					return
				}
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

func (f *Form) dispatch(a Action) domain.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.applyLocked(a)
}

func (f *Form) applyLocked(a Action) domain.FormState {
	next, err := Transition(f.state, a)
	if err != nil {
		f.logger.Error("Rejected form transition", err)
		return f.state
	}
	f.state = next
	for _, fn := range f.listeners {
		fn(next)
	}
	return next
}
