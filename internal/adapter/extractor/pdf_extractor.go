package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// PDFTextExtractor implements domain.TextExtractor over raw PDF bytes,
// returning the concatenated plain text of all pages.
type PDFTextExtractor struct{}

// NewPDFTextExtractor creates a new PDFTextExtractor.
func NewPDFTextExtractor() domain.TextExtractor {
	return &PDFTextExtractor{}
}

// Extract implements domain.TextExtractor. Unreadable input and documents
// with no extractable text both surface as extraction errors so the caller
// can report them as one distinct kind.
func (e *PDFTextExtractor) Extract(ctx context.Context, data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", domain.NewExtractionError(fmt.Errorf("empty file"))
	}

	// The pdf package panics on some malformed documents; a bad upload
	// must come back as an error, not take the request down.
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Warn("PDF parser panicked on malformed input", zap.Any("panic", r))
			text = ""
			err = domain.NewExtractionError(fmt.Errorf("malformed PDF: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.NewExtractionError(err)
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		return "", domain.NewExtractionError(err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plainText); err != nil {
		return "", domain.NewExtractionError(err)
	}

	extracted := buf.String()
	if strings.TrimSpace(extracted) == "" {
		return "", domain.NewExtractionError(fmt.Errorf("document contains no extractable text"))
	}

	return extracted, nil
}
