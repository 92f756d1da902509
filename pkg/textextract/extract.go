package textextract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// FromUpload pulls plain text out of an uploaded resume file. PDF and plain
// text are supported; anything else returns an error naming the type.
func FromUpload(fileName, contentType string, content []byte) (string, error) {
	switch {
	case contentType == "application/pdf" || strings.HasSuffix(strings.ToLower(fileName), ".pdf"):
		return fromPDF(content)
	case strings.HasPrefix(contentType, "text/") || strings.HasSuffix(strings.ToLower(fileName), ".txt"):
		return string(content), nil
	default:
		return "", fmt.Errorf("unsupported file type %q, only PDF and plain text are accepted", contentType)
	}
}

func fromPDF(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var b strings.Builder
	if _, err := io.Copy(&b, textReader); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("PDF contains no extractable text")
	}
	return text, nil
}
