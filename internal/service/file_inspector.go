package service

import (
	"github.com/gabriel-vasile/mimetype"

	"pdf-upload-form/internal/domain"
)

// sniffLimit bounds how much of a file is handed to the detector.
const sniffLimit = 3072

// MimeInspector derives the advisory PDF hint for a selected file.
type MimeInspector struct{}

func NewMimeInspector() *MimeInspector {
	return &MimeInspector{}
}

// Inspect never fails; unknown content reports as application/octet-stream.
func (i *MimeInspector) Inspect(name string, content []byte) domain.FileHint {
	head := content
	if len(head) > sniffLimit {
		head = head[:sniffLimit]
	}
	mime := mimetype.Detect(head)

	return domain.FileHint{
		DetectedMIME:     mime.String(),
		ExtensionMatches: domain.HasPDFExtension(name),
		ContentMatches:   mime.Is(domain.PDFMimeType),
	}
}

// NewSelectedFile packages an uploaded document together with its hint.
func NewSelectedFile(inspector domain.FileInspector, name string, content []byte) *domain.SelectedFile {
	name = domain.SanitizeFileName(name)
	return &domain.SelectedFile{
		Name:    name,
		Size:    int64(len(content)),
		Content: content,
		Hint:    inspector.Inspect(name, content),
	}
}
