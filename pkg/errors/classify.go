package errors

import (
	"errors"

	"github.com/matterframe/matterframe/pkg/core/scene"
	"github.com/matterframe/matterframe/pkg/core/scene/layout"
)

// Classify maps a core sentinel error to its machine-readable code.
// Errors that are already structured keep their code; anything
// unrecognized is classified as INTERNAL_ERROR.
func Classify(err error) Code {
	if code := GetCode(err); code != "" {
		return code
	}
	switch {
	case errors.Is(err, scene.ErrNotFound):
		return ErrCodeNotFound
	case errors.Is(err, scene.ErrInvalidParent), errors.Is(err, scene.ErrNotContainer):
		return ErrCodeInvalidParent
	case errors.Is(err, scene.ErrCircularReference):
		return ErrCodeCircularReference
	case errors.Is(err, scene.ErrContainerNotEmpty):
		return ErrCodeContainerNotEmpty
	case errors.Is(err, scene.ErrCorruptHierarchy):
		return ErrCodeCorruptHierarchy
	case errors.Is(err, scene.ErrInvalidSizing), errors.Is(err, scene.ErrDegenerateTransform):
		return ErrCodeInvalidInput
	case errors.Is(err, layout.ErrContractViolation):
		return ErrCodeAlgorithmContract
	case errors.Is(err, layout.ErrCascadeDepthExceeded):
		return ErrCodeCascadeDepth
	default:
		return ErrCodeInternal
	}
}

// Surface wraps a core error with its classified code so the caller can
// present it. A nil error passes through.
func Surface(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(Classify(err), err, format, args...)
}
