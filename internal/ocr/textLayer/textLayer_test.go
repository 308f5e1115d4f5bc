package textLayer

import (
	"errors"
	"testing"
)

func TestDocumentText_PlainText(t *testing.T) {
	r := NewReader()

	text, err := r.DocumentText("referral.txt", []byte("  Referred for MRI of the left knee.\n"))
	if err != nil {
		t.Fatalf("DocumentText failed: %v", err)
	}
	if text != "Referred for MRI of the left knee." {
		t.Errorf("unexpected text %q", text)
	}
}

func TestDocumentText_UnsupportedExtension(t *testing.T) {
	r := NewReader()

	tests := []string{"archive.zip", "sheet.xlsx", "noextension", ""}
	for _, name := range tests {
		if _, err := r.DocumentText(name, []byte("data")); !errors.Is(err, ErrUnsupportedDocument) {
			t.Errorf("DocumentText(%q) error = %v; want ErrUnsupportedDocument", name, err)
		}
	}
}

func TestPDFText_Malformed(t *testing.T) {
	r := NewReader()

	if _, err := r.PDFText([]byte("this is not a pdf")); err == nil {
		t.Error("expected an error for malformed pdf bytes")
	}
	if _, err := r.PDFText(nil); err == nil {
		t.Error("expected an error for empty input")
	}
}
