package engine

import (
	"errors"
	"fmt"
)

// ConstructionError represents an error detected while building or
// validating the node DAG, before any iteration has run.
//
// Construction errors include:
//   - Cycle detection: adding an input would create a cycle
//   - Limit exceeded: a node already has MaxInputsPerNode inputs
//   - Duplicate input: the same input node was added twice
//   - Unknown input: an input references a node never created
//
// ConstructionError includes structured fields for diagnostics.
type ConstructionError struct {
	// Code identifies the error category.
	Code ConstructionErrorCode

	// Message is a human-readable description.
	Message string

	// NodeName identifies the node being constructed.
	NodeName string

	// InputName identifies the offending input, when applicable.
	InputName string
}

// ConstructionErrorCode categorizes construction errors.
type ConstructionErrorCode string

const (
	// ErrCodeCycleDetected indicates adding an input would create a cycle.
	ErrCodeCycleDetected ConstructionErrorCode = "CYCLE_DETECTED"

	// ErrCodeInputLimitExceeded indicates a node already has MaxInputsPerNode inputs.
	ErrCodeInputLimitExceeded ConstructionErrorCode = "INPUT_LIMIT_EXCEEDED"

	// ErrCodeDuplicateInput indicates the same input was added twice to one node.
	ErrCodeDuplicateInput ConstructionErrorCode = "DUPLICATE_INPUT"

	// ErrCodeUnknownInput indicates an input references a node that was never created.
	ErrCodeUnknownInput ConstructionErrorCode = "UNKNOWN_INPUT"

	// ErrCodeDuplicateNode indicates a node name was registered twice.
	ErrCodeDuplicateNode ConstructionErrorCode = "DUPLICATE_NODE"

	// ErrCodeFrozen indicates a mutation was attempted after Init froze the DAG.
	ErrCodeFrozen ConstructionErrorCode = "DAG_FROZEN"
)

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	if e.NodeName != "" && e.InputName != "" {
		return fmt.Sprintf("%s: %s (node=%s, input=%s)", e.Code, e.Message, e.NodeName, e.InputName)
	}
	if e.NodeName != "" {
		return fmt.Sprintf("%s: %s (node=%s)", e.Code, e.Message, e.NodeName)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCycleError returns true if the error is a cycle detection error.
// Uses errors.As to handle wrapped errors.
func IsCycleError(err error) bool {
	var ce *ConstructionError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeCycleDetected
	}
	return false
}

// IsLimitError returns true if the error is an input-limit error.
func IsLimitError(err error) bool {
	var ce *ConstructionError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeInputLimitExceeded
	}
	return false
}

// IsDuplicateInputError returns true if the error is a duplicate-input error.
func IsDuplicateInputError(err error) bool {
	var ce *ConstructionError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeDuplicateInput
	}
	return false
}

// IsUnknownInputError returns true if the error is an unknown-input error.
func IsUnknownInputError(err error) bool {
	var ce *ConstructionError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeUnknownInput
	}
	return false
}

func newCycleError(nodeName, inputName string) *ConstructionError {
	return &ConstructionError{
		Code:      ErrCodeCycleDetected,
		Message:   "adding this input would create a cycle",
		NodeName:  nodeName,
		InputName: inputName,
	}
}

func newLimitError(nodeName string, limit int) *ConstructionError {
	return &ConstructionError{
		Code:     ErrCodeInputLimitExceeded,
		Message:  fmt.Sprintf("node already has the maximum of %d inputs", limit),
		NodeName: nodeName,
	}
}

func newDuplicateInputError(nodeName, inputName string) *ConstructionError {
	return &ConstructionError{
		Code:      ErrCodeDuplicateInput,
		Message:   "input already attached to this node",
		NodeName:  nodeName,
		InputName: inputName,
	}
}

func newUnknownInputError(nodeName, inputName string) *ConstructionError {
	return &ConstructionError{
		Code:      ErrCodeUnknownInput,
		Message:   "input node was never created",
		NodeName:  nodeName,
		InputName: inputName,
	}
}

func newDuplicateNodeError(nodeName string) *ConstructionError {
	return &ConstructionError{
		Code:     ErrCodeDuplicateNode,
		Message:  "node name already registered",
		NodeName: nodeName,
	}
}

func newFrozenError(nodeName string) *ConstructionError {
	return &ConstructionError{
		Code:     ErrCodeFrozen,
		Message:  "cannot mutate the DAG after Init",
		NodeName: nodeName,
	}
}
