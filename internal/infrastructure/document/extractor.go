package document

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MIMEText = "text/plain"
	MIMEPDF  = "application/pdf"
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmptyDocument   = errors.New("document contains no text")
)

var extensionTypes = map[string]string{
	".txt":  MIMEText,
	".text": MIMEText,
	".md":   MIMEText,
	".pdf":  MIMEPDF,
	".docx": MIMEDocx,
}

// DetectType resolves the document type from the file extension, then the
// declared content type, then the leading bytes.
func DetectType(fileName, contentType string, head []byte) (string, error) {
	if t, ok := extensionTypes[strings.ToLower(filepath.Ext(fileName))]; ok {
		return t, nil
	}

	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mt {
		case MIMEText, MIMEPDF, MIMEDocx:
			return mt, nil
		}
	}

	switch {
	case bytes.HasPrefix(head, []byte("%PDF-")):
		return MIMEPDF, nil
	case len(head) > 0 && strings.HasPrefix(http.DetectContentType(head), "text/plain"):
		return MIMEText, nil
	}
	return "", ErrUnsupportedType
}

// ExtractText returns the plain text of a document of the given type.
func ExtractText(mimeType string, data []byte) (text string, err error) {
	defer func() {
		// Malformed PDFs can panic inside the parser.
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("extract %s: %v", mimeType, r)
		}
	}()

	switch mimeType {
	case MIMEText:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("extract text: invalid utf-8")
		}
		text = string(data)
	case MIMEPDF:
		text, err = extractPDFText(data)
	case MIMEDocx:
		text, err = extractDocxText(data)
	default:
		return "", ErrUnsupportedType
	}
	if err != nil {
		return "", err
	}

	text = normalizeWhitespace(text)
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

func extractPDFText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	return stripTags(doc.Editable().GetContent()), nil
}

// stripTags drops the WordprocessingML markup, leaving paragraph breaks.
func stripTags(xml string) string {
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	var b strings.Builder
	b.Grow(len(xml))
	inTag := false
	for _, r := range xml {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.Join(strings.Fields(l), " ")
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
