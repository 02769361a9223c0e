package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidData marks structural data defects: a record without an
	// identifier, or colliding identifiers. A run carrying this error
	// aborts before any results are written; null field values are not
	// structural and recover locally.
	ErrInvalidData = errors.New("invalid data")
	// ErrModelNotFound marks scoring requests made without a persisted
	// model while training is disallowed.
	ErrModelNotFound = errors.New("model not found")
	// ErrConfiguration marks structural configuration defects detected
	// before comparison work starts.
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation marks semantic failures inside a stage, such as a
	// training session that produced no usable labels.
	ErrValidation = errors.New("validation error")
	// ErrTransient is the catch-all marker wrapping I/O or environmental
	// failures while preserving the original cause.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether the error should abort the run immediately rather
// than being recovered per record.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvalidData) ||
		errors.Is(err, ErrModelNotFound) ||
		errors.Is(err, ErrConfiguration) ||
		errors.Is(err, ErrValidation)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
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
