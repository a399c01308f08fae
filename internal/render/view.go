package render

import (
	"pdf-upload-form/internal/domain"
)

const (
	formTitle       = "Application Document Upload"
	formDescription = "Upload all required documents for your application"
	submitIdleLabel = "Upload Documents"
	submitBusyLabel = "Processing"
	notPDFAdvisory  = "This file does not look like a PDF. It will still be sent."
)

// View maps a form state to what the page shows. It has no side effects.
func View(s domain.FormState) domain.FormView {
	v := domain.FormView{
		Title:          formTitle,
		Description:    formDescription,
		PickerAccept:   domain.PDFExtension,
		PickerDisabled: s.IsUploading,
		SubmitDisabled: s.IsUploading || !s.HasFile(),
		SubmitLabel:    submitIdleLabel,
	}

	if s.SelectedFile != nil {
		v.FileName = s.SelectedFile.Name
		if !s.SelectedFile.Hint.LooksLikePDF() {
			v.FileAdvisory = notPDFAdvisory
		}
	}

	if s.HasError() {
		v.ShowError = true
		v.ErrorMessage = s.ErrorMessage
	}

	if s.IsUploading {
		v.ShowProgress = true
		v.ProgressPercent = s.ProgressPercent
		v.SubmitLabel = submitBusyLabel
		v.SubmitBusy = true
		v.AutoRefreshSeconds = 1
	}

	if s.Report != nil && !s.Report.IsBlank() {
		v.ShowReport = true
		v.ReportText = s.Report.DisplayText()
	}

	return v
}
