package templating

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for construction and mutation.
var (
	// ErrMissingKeyOrValue is reported when a Binding is built from a blank
	// name or a blank value.
	ErrMissingKeyOrValue = errors.New("missing key or value")

	// ErrMissingTemplate is reported when a Template text is blank.
	ErrMissingTemplate = errors.New("missing template")

	// ErrInvalidKey is returned by ValidatePair for a blank name.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidValue is returned by ValidatePair for a nil or blank value.
	ErrInvalidValue = errors.New("invalid value")

	// ErrCyclicReference is reported when resolution re-enters a Template
	// that is already being resolved.
	ErrCyclicReference = errors.New("cyclic template reference")
)

const (
	entityBinding  = "binding"
	entityTemplate = "template"
)

// ValidationError reports a construction or mutation that was rejected.
// Entity names the kind of object ("binding" or "template").
type ValidationError struct {
	Entity string
	Err    error
	Cause  error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Entity, e.Err)
}

// Unwrap returns the sentinel and, when present, the check that failed.
func (e *ValidationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}

	return []error{e.Err, e.Cause}
}

// CycleError reports a template graph that loops back on itself. Path
// lists the binding names followed from the resolving Template up to
// the re-entry point.
type CycleError struct {
	Path []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return ErrCyclicReference.Error()
	}

	return fmt.Sprintf(
		"%v via %s",
		ErrCyclicReference, strings.Join(e.Path, " -> "),
	)
}

// Unwrap returns ErrCyclicReference for errors.Is support.
func (e *CycleError) Unwrap() error {
	return ErrCyclicReference
}
