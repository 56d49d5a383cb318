// Package ingestion converts imported files and fetched job postings into editor markup.
package ingestion

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxImportBytes caps the size of an imported document or photo
const MaxImportBytes = 5 << 20

// SupportedExtensions lists the document types Import accepts
var SupportedExtensions = []string{".md", ".markdown", ".txt", ".html", ".htm"}

// Import converts the contents of filename into editor markup. The extension picks
// the reader; unknown types return an *UnsupportedFormatError.
func Import(filename string, data []byte) (string, error) {
	if len(data) > MaxImportBytes {
		return "", fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrTooLarge, filename, len(data), MaxImportBytes)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown", ".txt":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("failed to read %s: not valid UTF-8 text", filename)
		}
		return CleanText(string(data)), nil
	case ".html", ".htm":
		return HTMLToMarkdown(string(data))
	default:
		return "", &UnsupportedFormatError{Filename: filename, Extension: ext}
	}
}

// ImportFile reads path and converts it with Import
func ImportFile(path string) (string, error) {
	data, err := readLimited(path)
	if err != nil {
		return "", err
	}
	return Import(filepath.Base(path), data)
}

// PhotoDataURL encodes an image as a data URI suitable for an image line.
// Only image content types are accepted.
func PhotoDataURL(filename string, data []byte) (string, error) {
	if len(data) > MaxImportBytes {
		return "", fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrTooLarge, filename, len(data), MaxImportBytes)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", &UnsupportedFormatError{Filename: filename, Extension: strings.ToLower(filepath.Ext(filename))}
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// PhotoFile reads an image from path and encodes it with PhotoDataURL
func PhotoFile(path string) (string, error) {
	data, err := readLimited(path)
	if err != nil {
		return "", err
	}
	return PhotoDataURL(filepath.Base(path), data)
}

func readLimited(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if info.Size() > MaxImportBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrTooLarge, path, info.Size(), MaxImportBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}
