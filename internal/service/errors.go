package service

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound means the session id is unknown or expired.
	ErrSessionNotFound = errors.New("session not found")
	// ErrQuestionNotFound means the question id is not in the catalog.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrSessionNotComplete means a checklist was requested before all
	// required, currently-applicable questions were answered.
	ErrSessionNotComplete = errors.New("session is not complete")
)

// ValidationError reports a rejected answer value. Handlers surface it
// inline next to the question instead of failing the whole flow.
type ValidationError struct {
	QuestionID string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid answer for %s: %s", e.QuestionID, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
