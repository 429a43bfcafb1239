package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidName marks an empty or conflicting project name.
	ErrInvalidName = errors.New("invalid project name")
	// ErrNotFound marks an operation against an unknown project.
	ErrNotFound = errors.New("project not found")
	// ErrDecode marks an unreadable image input.
	ErrDecode = errors.New("image decode error")
	// ErrNoFrames marks an export request against an empty frame sequence.
	ErrNoFrames = errors.New("no frames")
	// ErrInvalidDelay marks an out-of-range per-frame delay.
	ErrInvalidDelay = errors.New("invalid delay")
	// ErrEncoding marks a worker-reported animation encoding failure.
	ErrEncoding = errors.New("encoding error")
	// ErrValidation marks an operation attempted in a state that does not
	// permit it.
	ErrValidation = errors.New("validation error")
	// ErrPersistence marks a failed store load or save. Warning-grade: the
	// in-memory mutation stands and the operation itself still succeeds.
	ErrPersistence = errors.New("persistence warning")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsWarning reports whether an error is warning-grade: the operation that
// produced it still took effect in memory.
func IsWarning(err error) bool {
	return errors.Is(err, ErrPersistence)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
