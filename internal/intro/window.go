package intro

import (
	"math"
	"time"
)

// --- SLA windows ---

const (
	// NodeResponseWindowDays is how long a connector has to act on a new
	// request before the founder sees it as pending.
	NodeResponseWindowDays = 3
	// EscalationWindowDays is how long an unanswered request waits before
	// it is escalated to an admin. Always longer than NodeResponseWindowDays.
	EscalationWindowDays = 5
	// TouchSuppressionWindow hides implicit tasks on recently handled records.
	TouchSuppressionWindow = 14 * 24 * time.Hour
	// ActedOnThreshold is the minimum gap between creation and last update
	// for a record to count as touched by a person.
	//
	// This infers human action from timestamps and misfires on clock skew
	// and bulk imports. Kept for compatibility until records carry an
	// explicit last-acted marker.
	ActedOnThreshold = 60 * time.Second
	// TrendHorizonMonths is how many calendar months trend reports cover.
	TrendHorizonMonths = 6
)

// DateLayout is the only accepted calendar-date format. Lexical comparison
// of dates is calendar comparison only while this format is kept exactly.
const DateLayout = "2006-01-02"

// ValidateDate checks that value is a zero-padded YYYY-MM-DD date.
func ValidateDate(field, value string) error {
	t, err := time.Parse(DateLayout, value)
	if err != nil || t.Format(DateLayout) != value {
		return &ValidationError{Field: field, Value: value, Err: ErrInvalidDate}
	}
	return nil
}

// DateOf returns the UTC calendar date of an instant.
func DateOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Today returns the UTC calendar date of now.
func Today(now time.Time) string {
	return DateOf(now)
}

// DaysBefore returns the calendar date n days before today.
func DaysBefore(today string, n int) string {
	t, err := time.Parse(DateLayout, today)
	if err != nil {
		return today
	}
	return t.AddDate(0, 0, -n).Format(DateLayout)
}

// MonthsBefore returns the calendar date n months before now. The day is
// clamped to the end of the target month, so Aug 31 minus six months is
// Feb 29 (or 28), not early March.
func MonthsBefore(now time.Time, n int) string {
	y, m, d := now.UTC().Date()
	lastDay := time.Date(y, m-time.Month(n)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if d > lastDay {
		d = lastDay
	}
	return DateOf(time.Date(y, m-time.Month(n), d, 0, 0, 0, 0, time.UTC))
}

// OlderThan reports whether date falls strictly before today minus days.
// An empty date is never older.
func OlderThan(date, today string, days int) bool {
	if date == "" {
		return false
	}
	return date < DaysBefore(today, days)
}

// AgeInDays returns whole days elapsed from the start of date (UTC) to now.
func AgeInDays(date string, now time.Time) (int, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, &ValidationError{Field: "date", Value: date, Err: ErrInvalidDate}
	}
	return int(math.Floor(now.Sub(t).Hours() / 24)), nil
}

// --- Record timing helpers ---

// HasBeenActedOn reports whether the record was modified more than
// ActedOnThreshold after it was created. Exactly the threshold is not enough.
func HasBeenActedOn(in *Introduction) bool {
	return in.UpdatedAt.Sub(in.CreatedAt) > ActedOnThreshold
}

// RecentlyTouched reports whether the last update is inside the
// touch-suppression window.
func RecentlyTouched(in *Introduction, now time.Time) bool {
	return now.Sub(in.UpdatedAt) < TouchSuppressionWindow
}

// EffectiveStartDate is dateRequested, falling back to the creation date.
func EffectiveStartDate(in *Introduction) string {
	if in.DateRequested != "" {
		return in.DateRequested
	}
	return DateOf(in.CreatedAt)
}

// EffectiveIntroDate is dateIntroduced, then dateRequested, then the
// creation date.
func EffectiveIntroDate(in *Introduction) string {
	if in.DateIntroduced != "" {
		return in.DateIntroduced
	}
	return EffectiveStartDate(in)
}
