package domain

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"cv.pdf":              "cv.pdf",
		"/tmp/uploads/cv.pdf": "cv.pdf",
		`C:\Users\ada\cv.pdf`: "cv.pdf",
		"":                    "document",
		"   ":                 "document",
		"/":                   "document",
		"  spaced name.pdf  ": "spaced name.pdf",
	}
	for in, want := range tests {
		if got := SanitizeFileName(in); got != want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHasPDFExtension(t *testing.T) {
	if !HasPDFExtension("a.PDF") || !HasPDFExtension("a.pdf") {
		t.Fatalf("expected .pdf in any case to match")
	}
	if HasPDFExtension("a.pdf.exe") || HasPDFExtension("pdf") {
		t.Fatalf("unexpected match")
	}
}

func TestSelectedFile_Validate(t *testing.T) {
	var missing *SelectedFile
	if err := missing.Validate(); err == nil {
		t.Fatalf("expected error for nil file")
	}
	if err := (&SelectedFile{Name: " "}).Validate(); err == nil || err.Error() != "name: file name is required" {
		t.Fatalf("expected name error, got %v", err)
	}
	if err := (&SelectedFile{Name: "cv.pdf"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
