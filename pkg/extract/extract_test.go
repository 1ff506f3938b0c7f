package extract_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"portfolio-api/pkg/extract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_DeclaredMediaTypeWinsOverExtension(t *testing.T) {
	e := extract.New()

	text, err := e.Extract([]byte("  Senior Product Lead\n"), "text/plain", "resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Senior Product Lead", text)
}

func TestExtract_ExtensionFallback(t *testing.T) {
	e := extract.New()

	for _, declared := range []string{"", "application/octet-stream"} {
		text, err := e.Extract([]byte("VP of Product"), declared, "jd.TXT")
		require.NoError(t, err, declared)
		assert.Equal(t, "VP of Product", text)
	}
}

func TestExtract_MediaTypeParametersIgnored(t *testing.T) {
	text, err := extract.New().Extract([]byte("\xEF\xBB\xBFhello"), "text/plain; charset=utf-8", "")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	e := extract.New()

	_, err := e.Extract([]byte{0x89, 'P', 'N', 'G'}, "image/png", "photo.png")
	require.Error(t, err)
	assert.True(t, errors.Is(err, extract.ErrUnsupportedFormat))
	assert.Contains(t, err.Error(), "PDF, DOCX, TXT")
}

func TestExtract_TooLargeBeforeParsing(t *testing.T) {
	parsed := false
	probe := extract.Format{
		Name:       "PROBE",
		MediaTypes: []string{"application/pdf"},
		Fn: func([]byte) (string, error) {
			parsed = true
			return "", nil
		},
	}
	e := extract.NewWithFormats(extract.MaxFileBytes, probe)

	data := make([]byte, extract.MaxFileBytes+1)
	_, err := e.Extract(data, "application/pdf", "big.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, extract.ErrTooLarge))
	assert.False(t, parsed)
}

func TestExtract_ExactlyMaxIsAccepted(t *testing.T) {
	data := bytes.Repeat([]byte("a"), extract.MaxFileBytes)
	text, err := extract.New().Extract(data, "text/plain", "jd.txt")
	require.NoError(t, err)
	assert.Len(t, text, extract.MaxFileBytes)
}

func TestExtract_SignatureMismatch(t *testing.T) {
	_, err := extract.New().Extract([]byte("just some text"), "application/pdf", "jd.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, extract.ErrExtractionFailed))
}

func TestExtract_CorruptPDF(t *testing.T) {
	_, err := extract.New().Extract([]byte("%PDF-1.7\nthis is not really a pdf"), "application/pdf", "jd.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, extract.ErrExtractionFailed))
}

func TestExtract_CorruptDOCX(t *testing.T) {
	data := append([]byte{0x50, 0x4B, 0x03, 0x04}, []byte("truncated zip")...)
	_, err := extract.New().Extract(data, extract.MediaTypeDOCX, "jd.docx")
	require.Error(t, err)
	assert.True(t, errors.Is(err, extract.ErrExtractionFailed))
}

func TestExtract_ParserPanicIsContained(t *testing.T) {
	boom := extract.Format{
		Name:       "BOOM",
		MediaTypes: []string{"application/x-boom"},
		Fn:         func([]byte) (string, error) { panic("index out of range") },
	}
	_, err := extract.NewWithFormats(100, boom).Extract([]byte("x"), "application/x-boom", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, extract.ErrExtractionFailed))
}

func TestAccepted(t *testing.T) {
	assert.Equal(t, "PDF, DOCX, TXT", extract.New().Accepted())
	assert.True(t, strings.Contains(extract.New().Accepted(), "DOCX"))
}
