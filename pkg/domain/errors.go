package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMeshIntegrity is returned when the mesh cannot form a valid 2-D manifold topology.
var ErrMeshIntegrity = errors.New("mesh integrity violation")

// ErrSourceUnavailable is returned when the mesh data cannot be obtained from its source.
var ErrSourceUnavailable = errors.New("mesh source unavailable")

// ErrElementNotFound is returned when a lookup references an unknown element.
var ErrElementNotFound = errors.New("element not found")

// ErrEdgeNotFound is returned when a lookup references an unknown edge.
var ErrEdgeNotFound = errors.New("edge not found")

// IntegrityError describes a single integrity violation with enough context to find it in the input.
type IntegrityError struct {
	Element ElementID // 0 when the violation is not tied to one element
	Edge    *EdgeKey  // nil when the violation is not tied to one edge
	Reason  string
}

func (e *IntegrityError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrMeshIntegrity.Error())
	if e.Element != 0 {
		fmt.Fprintf(&sb, ": element %d", e.Element)
	}
	if e.Edge != nil {
		fmt.Fprintf(&sb, ": edge %s", e.Edge)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Reason)
	return sb.String()
}

// Unwrap lets errors.Is match ErrMeshIntegrity.
func (e *IntegrityError) Unwrap() error {
	return ErrMeshIntegrity
}

// AggregateError collects several violations found in one pass.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d integrity violations:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// Violations returns all collected errors if err is an AggregateError,
// the error itself if it is a single violation, and nil otherwise.
func Violations(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	if errors.Is(err, ErrMeshIntegrity) {
		return []error{err}
	}
	return nil
}
