// Package extract turns uploaded files into plain text for the
// orchestrator. Each recognized extension maps to an extraction
// strategy; unknown extensions are rejected.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrUnsupportedType indicates the file extension has no extraction
// strategy.
var ErrUnsupportedType = errors.New("unsupported file type")

// MaxTextChars caps the extracted text returned to the caller.
const MaxTextChars = 20000

// strategy extracts plain text from one file format.
type strategy func(data []byte) (string, error)

// strategies maps lowercased file extensions to their extractor.
// PDF and DOCX are recognized formats but binary parsing is delegated
// to an external converter, so they are refused here with a pointed
// message instead of the generic unsupported-type error.
var strategies = map[string]strategy{
	".txt":  plainText,
	".md":   plainText,
	".pdf":  binaryFormat("pdf"),
	".docx": binaryFormat("docx"),
}

// Text extracts plain text from the named file's bytes. The result is
// truncated to MaxTextChars.
func Text(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	extractor, ok := strategies[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	text, err := extractor(data)
	if err != nil {
		return "", err
	}
	return Truncate(text, MaxTextChars), nil
}

// Supported reports whether the extension of filename has a text
// extraction strategy.
func Supported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".md":
		return true
	default:
		return false
	}
}

// Truncate cuts s to at most max bytes without splitting a UTF-8
// sequence.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	for !utf8.ValidString(cut) && len(cut) > 0 {
		cut = cut[:len(cut)-1]
	}
	return cut
}

func plainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8 text")
	}
	return string(data), nil
}

func binaryFormat(name string) strategy {
	return func([]byte) (string, error) {
		return "", fmt.Errorf("%w: %s extraction requires the document converter", ErrUnsupportedType, name)
	}
}
