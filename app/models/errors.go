package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrUnauthorized means the calling identity may not perform the transition.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidTransition means a moderation decision targeted a post that is
	// no longer pending.
	ErrInvalidTransition = errors.New("invalid transition: post is not pending")

	// ErrInvalidState means a vote targeted a post that is not approved.
	ErrInvalidState = errors.New("invalid state: post is not approved")
)

// ValidationError names the first offending field of a malformed input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// asValidationError converts a validator failure into a field-naming
// ValidationError. Non-validator errors pass through unchanged.
func asValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: strings.ToLower(fe.Field()), Reason: fe.Tag()}
	}
	return err
}
