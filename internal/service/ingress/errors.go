package ingress

import (
	"errors"
	"strings"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrPublish    = errors.New("publish order failed")
)

type FieldError struct {
	Field  string
	Reason string
}

// ValidationError перечисляет все нарушения сразу, а не только первое.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
