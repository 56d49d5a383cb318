package rendering

import (
	"errors"
	"fmt"
	"io/fs"
)

// TemplateError reports a LaTeX document template that could not be used.
// Path is empty for the built-in template.
type TemplateError struct {
	Path  string
	Stage string // read, parse or execute
	Cause error
}

func (e *TemplateError) Error() string {
	name := e.Path
	if name == "" {
		name = "built-in"
	}
	if e.Stage == "read" && errors.Is(e.Cause, fs.ErrNotExist) {
		return fmt.Sprintf("latex template %s: not found", name)
	}
	return fmt.Sprintf("latex template %s: %s failed: %v", name, e.Stage, e.Cause)
}

func (e *TemplateError) Unwrap() error { return e.Cause }
