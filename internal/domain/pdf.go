package domain

import (
	"path/filepath"
	"strings"
)

// PDFExtension is the extension hint offered by the file picker.
const PDFExtension = ".pdf"

// PDFMimeType is the content type a real PDF sniffs as.
const PDFMimeType = "application/pdf"

// FileHint is advisory information about a selected file.
// Nothing in the upload path is blocked on it.
type FileHint struct {
	DetectedMIME     string `json:"detected_mime"`
	ExtensionMatches bool   `json:"extension_matches"`
	ContentMatches   bool   `json:"content_matches"`
}

// LooksLikePDF reports whether both the name and the content suggest a PDF
func (h FileHint) LooksLikePDF() bool {
	return h.ExtensionMatches && h.ContentMatches
}

// SelectedFile is the document currently chosen in a form
type SelectedFile struct {
	Name    string   `json:"name"`
	Size    int64    `json:"size"`
	Content []byte   `json:"-"`
	Hint    FileHint `json:"hint"`
}

// Validate checks that the file can be sent as a multipart part.
func (f *SelectedFile) Validate() error {
	if f == nil {
		return &ValidationError{Field: "file", Message: "file is required"}
	}
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Field: "name", Message: "file name is required"}
	}
	return nil
}

// SanitizeFileName strips any path components from a client supplied name.
func SanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := strings.TrimSpace(filepath.Base(name))
	if base == "" || base == "." || base == "/" {
		return "document"
	}
	return base
}

// HasPDFExtension reports whether name ends in .pdf, ignoring case.
func HasPDFExtension(name string) bool {
	return strings.EqualFold(filepath.Ext(name), PDFExtension)
}
