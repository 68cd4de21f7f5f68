package intro

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidOwner        = errors.New("invalid follow-up owner")
	ErrInvalidFollowupType = errors.New("invalid follow-up type")
	ErrInvalidRoundStatus  = errors.New("invalid round status")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrTimestampOrder      = errors.New("updated_at precedes created_at")
)

// ValidationError reports a snapshot value outside its closed domain.
// The engine surfaces it to the caller and never substitutes a default.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s %q", e.Err.Error(), e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// MissingReference is a tolerated condition: a relation is absent from an
// otherwise valid row. Aggregations skip the row and report the warning.
type MissingReference struct {
	IntroductionID int64
	Relation       string
}

func (m MissingReference) String() string {
	return fmt.Sprintf("introduction %d: missing %s", m.IntroductionID, m.Relation)
}
