package document

import (
	"errors"
	"testing"
)

func TestDetectType(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		head        []byte
		want        string
		wantErr     error
	}{
		{"resume.PDF", "", nil, MIMEPDF, nil},
		{"resume.docx", "application/octet-stream", nil, MIMEDocx, nil},
		{"notes.txt", "", nil, MIMEText, nil},
		{"upload", "application/pdf; charset=binary", nil, MIMEPDF, nil},
		{"upload", "application/octet-stream", []byte("%PDF-1.7\n"), MIMEPDF, nil},
		{"upload", "", []byte("Jane Doe\nSoftware Engineer"), MIMEText, nil},
		{"photo.png", "image/png", []byte("\x89PNG\r\n\x1a\n"), "", ErrUnsupportedType},
	}

	for _, tc := range cases {
		got, err := DetectType(tc.name, tc.contentType, tc.head)
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("DetectType(%q): expected err %v, got %v", tc.name, tc.wantErr, err)
		}
		if got != tc.want {
			t.Fatalf("DetectType(%q): expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestExtractText_Plain(t *testing.T) {
	got, err := ExtractText(MIMEText, []byte("  Jane   Doe \n\n  Go   Engineer  "))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "Jane Doe\nGo Engineer" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractText_Empty(t *testing.T) {
	_, err := ExtractText(MIMEText, []byte("  \n\t "))
	if !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestExtractText_Unsupported(t *testing.T) {
	_, err := ExtractText("image/png", []byte("x"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestExtractText_CorruptFiles(t *testing.T) {
	if _, err := ExtractText(MIMEPDF, []byte("not a pdf at all")); err == nil {
		t.Fatalf("expected error for corrupt pdf")
	}
	if _, err := ExtractText(MIMEDocx, []byte("not a zip archive")); err == nil {
		t.Fatalf("expected error for corrupt docx")
	}
}

func TestStripTags(t *testing.T) {
	got := stripTags(`<w:p><w:r><w:t>Jane</w:t></w:r></w:p><w:p><w:r><w:t>Doe</w:t></w:r></w:p>`)
	if got != "Jane\nDoe\n" {
		t.Fatalf("unexpected text: %q", got)
	}
}
