// Package extract turns uploaded job descriptions (PDF, DOCX, plain text) into text.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// MaxFileBytes is the largest upload we attempt to parse.
const MaxFileBytes = 10 << 20

var (
	ErrUnsupportedFormat = errors.New("unsupported file type")
	ErrTooLarge          = errors.New("file too large")
	ErrExtractionFailed  = errors.New("text extraction failed")
)

// Format describes one supported document kind.
type Format struct {
	Name       string
	MediaTypes []string
	Extensions []string // lower case, with leading dot
	// Signature, when set, must prefix the content before Fn is called.
	Signature []byte
	Fn        func(data []byte) (string, error)
}

type rule struct {
	match  func(mediaType, ext string) bool
	format Format
}

type Extractor struct {
	maxBytes int
	rules    []rule
	accepted string
}

// New returns an extractor for PDF, DOCX and plain text capped at MaxFileBytes.
func New() *Extractor {
	return NewWithFormats(MaxFileBytes, PDF(), DOCX(), PlainText())
}

// NewWithFormats builds the dispatch table: every format's media types are tried
// first, in order, and only then every format's extensions.
func NewWithFormats(maxBytes int, formats ...Format) *Extractor {
	e := &Extractor{maxBytes: maxBytes}

	names := make([]string, 0, len(formats))
	for _, f := range formats {
		f := f
		names = append(names, f.Name)
		e.rules = append(e.rules, rule{
			match:  func(mediaType, _ string) bool { return contains(f.MediaTypes, mediaType) },
			format: f,
		})
	}
	for _, f := range formats {
		f := f
		e.rules = append(e.rules, rule{
			match:  func(_, ext string) bool { return contains(f.Extensions, ext) },
			format: f,
		})
	}
	e.accepted = strings.Join(names, ", ")
	return e
}

// Accepted lists the supported kinds for user-facing messages, e.g. "PDF, DOCX, TXT".
func (e *Extractor) Accepted() string {
	return e.accepted
}

// Extract dispatches on the declared media type, falling back to the filename
// extension. Size is checked before any parsing.
func (e *Extractor) Extract(data []byte, declaredMediaType, filename string) (string, error) {
	if len(data) > e.maxBytes {
		return "", fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrTooLarge, len(data), e.maxBytes)
	}

	mediaType := normalizeMediaType(declaredMediaType)
	ext := strings.ToLower(filepath.Ext(filename))

	for _, r := range e.rules {
		if !r.match(mediaType, ext) {
			continue
		}
		text, err := run(r.format, data)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(text), nil
	}

	return "", fmt.Errorf("%w %q (%s); accepted types: %s", ErrUnsupportedFormat, declaredMediaType, ext, e.accepted)
}

func run(f Format, data []byte) (text string, err error) {
	if len(f.Signature) > 0 && !bytes.HasPrefix(data, f.Signature) {
		return "", fmt.Errorf("%w: content is not a valid %s", ErrExtractionFailed, f.Name)
	}

	// Parsers panic on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %s parser panicked: %v", ErrExtractionFailed, f.Name, r)
		}
	}()

	text, err = f.Fn(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrExtractionFailed, f.Name, err)
	}
	return text, nil
}

func normalizeMediaType(declared string) string {
	declared = strings.TrimSpace(declared)
	if declared == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return strings.ToLower(declared)
	}
	return mediaType
}

func contains(list []string, v string) bool {
	if v == "" {
		return false
	}
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
