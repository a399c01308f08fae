package domain

// FormView is everything the page needs to draw one form.
// It is derived from FormState and never mutated on its own.
type FormView struct {
	Title       string `json:"title"`
	Description string `json:"description"`

	PickerAccept   string `json:"picker_accept"`
	PickerDisabled bool   `json:"picker_disabled"`

	FileName     string `json:"file_name,omitempty"`
	FileAdvisory string `json:"file_advisory,omitempty"`

	ShowError    bool   `json:"show_error"`
	ErrorMessage string `json:"error_message,omitempty"`

	ShowProgress    bool `json:"show_progress"`
	ProgressPercent int  `json:"progress_percent"`

	ShowReport bool   `json:"show_report"`
	ReportText string `json:"report_text,omitempty"`

	SubmitDisabled bool   `json:"submit_disabled"`
	SubmitLabel    string `json:"submit_label"`
	SubmitBusy     bool   `json:"submit_busy"`

	// AutoRefreshSeconds asks the page to reload itself while an upload is outstanding.
	AutoRefreshSeconds int `json:"auto_refresh_seconds,omitempty"`
}
