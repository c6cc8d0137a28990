package extractor

import (
	"context"
	"errors"
	"testing"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	m.Run()
}

func assertExtractionError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeExtractionFailed, domainErr.Code)
}

func TestExtractEmptyInput(t *testing.T) {
	e := NewPDFTextExtractor()
	_, err := e.Extract(context.Background(), nil)
	assertExtractionError(t, err)
}

func TestExtractNonPDFInput(t *testing.T) {
	e := NewPDFTextExtractor()
	_, err := e.Extract(context.Background(), []byte("this is just plain text, not a PDF"))
	assertExtractionError(t, err)
}

func TestExtractTruncatedPDFInput(t *testing.T) {
	e := NewPDFTextExtractor()
	// A valid header with a garbage body.
	_, err := e.Extract(context.Background(), []byte("%PDF-1.4\ngarbage"))
	assertExtractionError(t, err)
}
