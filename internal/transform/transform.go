package transform

import (
	"fmt"

	"github.com/jusliketht/bbofficial-sub003/internal/calculation"
)

// RequestTransform defines the interface for all what-if edits to a comparison request.
// Transforms are composable: each one receives the output of the previous one.
type RequestTransform interface {
	// Apply returns a modified copy of base. base itself is never changed.
	Apply(base calculation.Request) (calculation.Request, error)

	// Name returns a short identifier for this transform (e.g., "set_claim").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base calculation.Request) error
}

// ApplyTransforms applies a sequence of transforms to a base request in order.
// Returns an error if any transform fails to validate or apply.
func ApplyTransforms(base calculation.Request, transforms []RequestTransform) (calculation.Request, error) {
	current := base.Clone()

	for i, transform := range transforms {
		if transform == nil {
			return calculation.Request{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return calculation.Request{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return calculation.Request{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// Describe joins the descriptions of a transform chain
func Describe(transforms []RequestTransform) []string {
	out := make([]string, 0, len(transforms))
	for _, t := range transforms {
		out = append(out, t.Description())
	}
	return out
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
