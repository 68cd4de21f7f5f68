package intro

import "fmt"

// --- Status classification ---
//
// Every predicate is total over the closed status set. An unrecognized
// status is a data-integrity problem and comes back as a ValidationError.

// statusTraits holds the classification of one status.
type statusTraits struct {
	terminal        bool
	preIntroduction bool
	overdueEligible bool
	introduced      bool // an introduction has happened
	met             bool // at least one meeting has happened
}

var statusTable = map[Status]statusTraits{
	StatusIntroRequestSent:      {preIntroduction: true, overdueEligible: true},
	StatusIntroduced:            {overdueEligible: true, introduced: true},
	StatusFirstMeetingComplete:  {overdueEligible: true, introduced: true, met: true},
	StatusSecondMeetingComplete: {overdueEligible: true, introduced: true, met: true},
	StatusFollowUpQuestions:     {overdueEligible: true, introduced: true, met: true},
	StatusCircleBack:            {overdueEligible: true, introduced: true, met: true},
	StatusInvested:              {terminal: true, introduced: true, met: true},
	StatusPassed:                {terminal: true},
	StatusIgnored:               {terminal: true},
	StatusNotAFit:               {terminal: true},
}

func traits(s Status) (statusTraits, error) {
	t, ok := statusTable[s]
	if !ok {
		return statusTraits{}, &ValidationError{Field: "status", Value: string(s), Err: ErrInvalidStatus}
	}
	return t, nil
}

// ValidateStatus returns an error if the status is not recognized.
func ValidateStatus(s Status) error {
	_, err := traits(s)
	return err
}

// ParseStatus converts a raw string into a Status, rejecting unknown values.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if err := ValidateStatus(s); err != nil {
		return "", err
	}
	return s, nil
}

// IsTerminal reports whether no further action is ever expected.
func IsTerminal(s Status) (bool, error) {
	t, err := traits(s)
	return t.terminal, err
}

// IsPreIntroduction reports whether the connector still owns the next step.
func IsPreIntroduction(s Status) (bool, error) {
	t, err := traits(s)
	return t.preIntroduction, err
}

// IsOverdueEligible reports whether explicit follow-up dates are checked
// for overdue and due-today purposes.
func IsOverdueEligible(s Status) (bool, error) {
	t, err := traits(s)
	return t.overdueEligible, err
}

// ImpliesIntroduced reports whether the status means the introduction happened.
func ImpliesIntroduced(s Status) (bool, error) {
	t, err := traits(s)
	return t.introduced, err
}

// ImpliesMeeting reports whether the status means at least one meeting happened.
func ImpliesMeeting(s Status) (bool, error) {
	t, err := traits(s)
	return t.met, err
}

// IsActionable reports whether tasks may be derived for the status at all:
// neither terminal nor pre-introduction.
func IsActionable(s Status) (bool, error) {
	t, err := traits(s)
	if err != nil {
		return false, err
	}
	return !t.terminal && !t.preIntroduction, nil
}

// --- Transitions ---

// ValidateTransition checks whether an introduction may move from one status
// to another. Any recognized status may follow any other, terminal ones
// included, so mistaken outcomes can be corrected. Once an introduction has
// happened it cannot return to intro_request_sent. Staying on the same status
// is allowed and changes nothing.
func ValidateTransition(from, to Status) error {
	fromTraits, err := traits(from)
	if err != nil {
		return err
	}
	if _, err := traits(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	if fromTraits.introduced && to == StatusIntroRequestSent {
		return fmt.Errorf("%w: %s cannot return to %s", ErrInvalidTransition, from, to)
	}
	return nil
}
