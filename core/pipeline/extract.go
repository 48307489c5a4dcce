package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

var pdfMagic = []byte("%PDF")

// ExtractText returns the plain text of a source document. PDF input is
// detected by its magic bytes and extracted page by page; any other input
// must be valid UTF-8 and is passed through unchanged.
func ExtractText(document []byte) (string, error) {
	if len(document) == 0 {
		return "", fmt.Errorf("document is empty")
	}

	if bytes.HasPrefix(document, pdfMagic) {
		return extractPDFText(document)
	}

	if !utf8.Valid(document) {
		return "", fmt.Errorf("document is neither a PDF nor valid UTF-8 text")
	}

	return string(document), nil
}

func extractPDFText(document []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(document), int64(len(document)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to read pdf buffer: %w", err)
	}

	if buf.Len() == 0 {
		return "", fmt.Errorf("no text extracted from pdf")
	}

	return buf.String(), nil
}
