package gributil

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is returned when an entry point receives input of the
	// wrong shape, e.g. an empty path or an empty message sequence.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingAttribute matches every *MissingAttributeError.
	ErrMissingAttribute = errors.New("missing attribute")

	// ErrMultiLayer matches every *MultiLayerError.
	ErrMultiLayer = errors.New("more than one layer")
)

// MissingAttributeError is returned when a message lacks an attribute an
// operation requires.
type MissingAttributeError struct {
	Key string
	Err error
}

func (e *MissingAttributeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("missing attribute %q", e.Key)
	}
	return fmt.Sprintf("missing attribute %q: %v", e.Key, e.Err)
}

// Is reports whether target is ErrMissingAttribute.
func (e *MissingAttributeError) Is(target error) bool {
	return target == ErrMissingAttribute
}

func (e *MissingAttributeError) Unwrap() error {
	return e.Err
}

// MultiLayerError is returned when an operation that needs exactly one layer
// is given several.
type MultiLayerError struct {
	Count int
}

func (e *MultiLayerError) Error() string {
	return fmt.Sprintf("only a single GRIB message or a one-element sequence is accepted, got %d layers", e.Count)
}

// Is reports whether target is ErrMultiLayer.
func (e *MultiLayerError) Is(target error) bool {
	return target == ErrMultiLayer
}
