package ingestion

import (
	"errors"
	"fmt"
)

// ErrTooLarge is returned when an imported file exceeds MaxImportBytes
var ErrTooLarge = errors.New("file too large")

// UnsupportedFormatError reports a file type the importer cannot read
type UnsupportedFormatError struct {
	Filename  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported file type for %q: no extension", e.Filename)
	}
	return fmt.Sprintf("unsupported file type %s for %q", e.Extension, e.Filename)
}
