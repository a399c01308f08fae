package uploadform

import (
	"fmt"

	"pdf-upload-form/internal/domain"
)

// Action is an input to Reduce.
type Action interface {
	actionName() string
}

// FileSelected replaces the selected file. Error and report are left alone.
type FileSelected struct {
	File *domain.SelectedFile
}

// SubmitRejected records a submission refused before any network call.
type SubmitRejected struct {
	Message string
}

// SubmitStarted marks the beginning of a submission.
type SubmitStarted struct{}

// ProgressTicked advances the cosmetic progress counter by Step, never past Ceiling.
type ProgressTicked struct {
	Step    int
	Ceiling int
}

// UploadSucceeded stores the decoded response.
type UploadSucceeded struct {
	Report *domain.Report
}

// UploadFailed records a failed submission. The previous report is kept.
// ForceComplete is set when the endpoint answered, whether with a non-2xx
// status or with a body that could not be decoded.
type UploadFailed struct {
	Message       string
	ForceComplete bool
}

func (FileSelected) actionName() string    { return "file_selected" }
func (SubmitRejected) actionName() string  { return "submit_rejected" }
func (SubmitStarted) actionName() string   { return "submit_started" }
func (ProgressTicked) actionName() string  { return "progress_ticked" }
func (UploadSucceeded) actionName() string { return "upload_succeeded" }
func (UploadFailed) actionName() string    { return "upload_failed" }

// Reduce returns the state that results from applying a to s.
// Actions that make no sense in the current state return s unchanged.
func Reduce(s domain.FormState, a Action) domain.FormState {
	switch a := a.(type) {
	case FileSelected:
		if a.File == nil {
			return s
		}
		s.SelectedFile = a.File
		if !s.IsUploading {
			s.Phase = domain.PhaseSelecting
		}

	case SubmitRejected:
		if s.IsUploading {
			return s
		}
		s.ErrorMessage = a.Message
		s.Phase = domain.PhaseFailed

	case SubmitStarted:
		if s.IsUploading || !s.HasFile() {
			return s
		}
		s.IsUploading = true
		s.ErrorMessage = ""
		s.ProgressPercent = 0
		s.Phase = domain.PhaseUploading

	case ProgressTicked:
		if !s.IsUploading || s.ProgressPercent >= a.Ceiling {
			return s
		}
		next := s.ProgressPercent + a.Step
		if next > a.Ceiling {
			next = a.Ceiling
		}
		s.ProgressPercent = next

	case UploadSucceeded:
		if !s.IsUploading {
			return s
		}
		s.IsUploading = false
		s.ProgressPercent = domain.ProgressComplete
		s.Report = a.Report
		s.ErrorMessage = ""
		s.Phase = domain.PhaseSucceeded

	case UploadFailed:
		if !s.IsUploading {
			return s
		}
		s.IsUploading = false
		if a.ForceComplete {
			s.ProgressPercent = domain.ProgressComplete
		}
		s.ErrorMessage = a.Message
		s.Phase = domain.PhaseFailed
	}
	return s
}

// Transition applies a to s and checks the phase change against the allowed graph.
func Transition(s domain.FormState, a Action) (domain.FormState, error) {
	next := Reduce(s, a)
	if !isAllowedTransition(s.Phase, next.Phase) {
		return s, fmt.Errorf("disallowed transition on %s: %s -> %s", a.actionName(), s.Phase, next.Phase)
	}
	return next, nil
}

func isAllowedTransition(from, to domain.Phase) bool {
	if from == to {
		return true
	}
	switch from {
	case domain.PhaseIdle:
		return to == domain.PhaseSelecting || to == domain.PhaseFailed
	case domain.PhaseSelecting, domain.PhaseSucceeded, domain.PhaseFailed:
		return to == domain.PhaseSelecting || to == domain.PhaseUploading || to == domain.PhaseFailed
	case domain.PhaseUploading:
		return to == domain.PhaseSucceeded || to == domain.PhaseFailed
	default:
		return false
	}
}
