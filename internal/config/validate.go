package config

import (
	"fmt"
	"strings"
)

// Validation error codes.
const (
	ErrSchemaInvalid     = "E200" // the embedded CUE schema itself failed to compile
	ErrSchemaViolation   = "E201" // the document does not satisfy the schema
	ErrDuplicateNodeName = "E202" // two nodes share a name; Builder.Compile also reports engine AddNode/AddInput rejections under it
	ErrUnknownInputNode  = "E203" // an input references a node that was never declared
	ErrUnknownKind       = "E204" // a node's kind has no registered factory
	ErrUnknownHandler    = "E205" // an input's handler kind has no registered factory
)

// ValidationError represents one topology schema or semantic violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface for a single ValidationError.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors bundles every violation found while loading or
// compiling a topology so callers can report all of them at once
// instead of failing fast on the first.
type ValidationErrors []ValidationError

// Error implements the error interface, joining every violation onto
// its own line.
func (e ValidationErrors) Error() string {
	lines := make([]string, len(e))
	for i, ve := range e {
		lines[i] = ve.Error()
	}
	return strings.Join(lines, "\n")
}
