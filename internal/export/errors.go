package export

import "fmt"

// ExportError reports a failure producing one format
type ExportError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s export failed: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s export failed: %s", e.Format, e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
