package core

import (
	"fmt"
)

// ClassificationError wraps a failure from the external classification service
type ClassificationError struct {
	Provider string
	Err      error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification failed (provider %s): %v", e.Provider, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// NewClassificationError creates a classification error for the given provider
func NewClassificationError(provider string, err error) *ClassificationError {
	return &ClassificationError{Provider: provider, Err: err}
}

// DispatchError wraps a failure from a downstream action collaborator
type DispatchError struct {
	Target RoutingTarget
	Err    error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch to %s failed: %v", e.Target, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
