// Package pdfextract extracts plain text from uploaded PDF resumes.
package pdfextract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dslipak/pdf"
)

// ExtractText returns the plain text of a PDF document. Failures surface as
// errors with no partial text. The underlying reader panics on some malformed
// documents, so extraction is hardened against that.
func ExtractText(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty PDF document")
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("PDF extraction panicked: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, content); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	result := sb.String()
	if strings.TrimSpace(result) == "" {
		return "", fmt.Errorf("PDF contains no extractable text")
	}
	return result, nil
}
