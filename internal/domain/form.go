package domain

// Phase represents where an upload form is in its lifecycle
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSelecting Phase = "selecting"
	PhaseUploading Phase = "uploading"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

const (
	// FileFieldName is the multipart part name the process endpoint reads.
	FileFieldName = "file"

	// NoFileSelectedMessage is shown when a submission is attempted without a document.
	NoFileSelectedMessage = "Please select a document to upload"

	// ProgressComplete is the value progress is forced to once a response arrives.
	ProgressComplete = 100
)

// FormState is the full state of one upload form instance.
type FormState struct {
	Phase           Phase         `json:"phase"`
	SelectedFile    *SelectedFile `json:"selected_file,omitempty"`
	IsUploading     bool          `json:"is_uploading"`
	ProgressPercent int           `json:"progress_percent"`
	Report          *Report       `json:"report,omitempty"`
	ErrorMessage    string        `json:"error_message,omitempty"`
}

// NewFormState returns the state of a freshly mounted form.
func NewFormState() FormState {
	return FormState{Phase: PhaseIdle}
}

// HasFile reports whether a document has been selected.
func (s FormState) HasFile() bool {
	return s.SelectedFile != nil
}

// HasError reports whether the last attempt left an error message.
func (s FormState) HasError() bool {
	return s.ErrorMessage != ""
}
