package intro

import (
	"errors"
	"testing"
)

func TestStatusClassification_TotalOverClosedSet(t *testing.T) {
	tests := []struct {
		status          Status
		terminal        bool
		preIntroduction bool
		overdueEligible bool
	}{
		{StatusIntroRequestSent, false, true, true},
		{StatusIntroduced, false, false, true},
		{StatusFirstMeetingComplete, false, false, true},
		{StatusSecondMeetingComplete, false, false, true},
		{StatusFollowUpQuestions, false, false, true},
		{StatusCircleBack, false, false, true},
		{StatusInvested, true, false, false},
		{StatusPassed, true, false, false},
		{StatusIgnored, true, false, false},
		{StatusNotAFit, true, false, false},
	}

	if len(tests) != len(AllStatuses) {
		t.Fatalf("table covers %d statuses, AllStatuses has %d", len(tests), len(AllStatuses))
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			terminal, err := IsTerminal(tt.status)
			if err != nil {
				t.Fatalf("IsTerminal error: %v", err)
			}
			if terminal != tt.terminal {
				t.Errorf("IsTerminal = %v, want %v", terminal, tt.terminal)
			}

			pre, err := IsPreIntroduction(tt.status)
			if err != nil {
				t.Fatalf("IsPreIntroduction error: %v", err)
			}
			if pre != tt.preIntroduction {
				t.Errorf("IsPreIntroduction = %v, want %v", pre, tt.preIntroduction)
			}

			eligible, err := IsOverdueEligible(tt.status)
			if err != nil {
				t.Fatalf("IsOverdueEligible error: %v", err)
			}
			if eligible != tt.overdueEligible {
				t.Errorf("IsOverdueEligible = %v, want %v", eligible, tt.overdueEligible)
			}
		})
	}
}

func TestStatusClassification_UnknownStatusIsValidationError(t *testing.T) {
	bogus := Status("maybe_later")

	checks := map[string]func(Status) (bool, error){
		"IsTerminal":        IsTerminal,
		"IsPreIntroduction": IsPreIntroduction,
		"IsOverdueEligible": IsOverdueEligible,
		"ImpliesIntroduced": ImpliesIntroduced,
		"ImpliesMeeting":    ImpliesMeeting,
		"IsActionable":      IsActionable,
	}
	for name, fn := range checks {
		_, err := fn(bogus)
		if !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("%s(%q) error = %v, want ErrInvalidStatus", name, bogus, err)
		}
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s error should be a *ValidationError", name)
		} else if ve.Value != "maybe_later" {
			t.Errorf("ValidationError.Value = %q, want maybe_later", ve.Value)
		}
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("introduced")
	if err != nil {
		t.Fatalf("ParseStatus failed: %v", err)
	}
	if s != StatusIntroduced {
		t.Errorf("ParseStatus = %s, want introduced", s)
	}

	if _, err := ParseStatus("Introduced"); err == nil {
		t.Error("ParseStatus should be case-sensitive and reject 'Introduced'")
	}
}

func TestImpliesIntroducedAndMeeting(t *testing.T) {
	introduced := map[Status]bool{
		StatusIntroduced: true, StatusFirstMeetingComplete: true, StatusSecondMeetingComplete: true,
		StatusFollowUpQuestions: true, StatusCircleBack: true, StatusInvested: true,
	}
	met := map[Status]bool{
		StatusFirstMeetingComplete: true, StatusSecondMeetingComplete: true,
		StatusFollowUpQuestions: true, StatusCircleBack: true, StatusInvested: true,
	}
	for _, s := range AllStatuses {
		gotIntro, _ := ImpliesIntroduced(s)
		if gotIntro != introduced[s] {
			t.Errorf("ImpliesIntroduced(%s) = %v, want %v", s, gotIntro, introduced[s])
		}
		gotMet, _ := ImpliesMeeting(s)
		if gotMet != met[s] {
			t.Errorf("ImpliesMeeting(%s) = %v, want %v", s, gotMet, met[s])
		}
	}
}

// --- ValidateTransition ---

func TestValidateTransition_Allowed(t *testing.T) {
	allowed := [][2]Status{
		{StatusIntroRequestSent, StatusIntroduced},
		{StatusIntroRequestSent, StatusIgnored},
		{StatusIntroduced, StatusFirstMeetingComplete},
		{StatusFollowUpQuestions, StatusInvested},
		{StatusCircleBack, StatusFirstMeetingComplete},
		{StatusIgnored, StatusIntroduced},
		{StatusPassed, StatusCircleBack},
		{StatusNotAFit, StatusPassed},
		{StatusIgnored, StatusIntroRequestSent},
		{StatusIntroduced, StatusIntroduced},
	}
	for _, pair := range allowed {
		if err := ValidateTransition(pair[0], pair[1]); err != nil {
			t.Errorf("%s → %s should be allowed, got: %v", pair[0], pair[1], err)
		}
	}
}

func TestValidateTransition_Rejected(t *testing.T) {
	rejected := [][2]Status{
		{StatusIntroduced, StatusIntroRequestSent},
		{StatusFirstMeetingComplete, StatusIntroRequestSent},
		{StatusInvested, StatusIntroRequestSent},
	}
	for _, pair := range rejected {
		err := ValidateTransition(pair[0], pair[1])
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s → %s error = %v, want ErrInvalidTransition", pair[0], pair[1], err)
		}
	}
}

func TestValidateTransition_UnknownStatus(t *testing.T) {
	err := ValidateTransition(StatusIntroduced, Status("bogus"))
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("error = %v, want ErrInvalidStatus", err)
	}
}
