// Package trends rolls introductions up into monthly pipeline statistics
// and compares the latest month with the one before it.
package trends

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/HendryAvila/introflow/internal/intro"
)

// Direction is the movement of a metric between two months.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionSame Direction = "same"
)

// MonthlyStat aggregates the introductions requested in one calendar month.
type MonthlyStat struct {
	Month       string `json:"month"` // YYYY-MM
	Total       int    `json:"total"`
	Introduced  int    `json:"introduced"`
	Meetings    int    `json:"meetings"`
	Passed      int    `json:"passed"`
	Ignored     int    `json:"ignored"`
	Invested    int    `json:"invested"`
	IntroRate   int    `json:"intro_rate"`   // percent of decided requests that were introduced
	MeetingRate int    `json:"meeting_rate"` // percent of introductions that reached a meeting
}

// MetricDelta compares one metric across two months.
type MetricDelta struct {
	Current   int       `json:"current"`
	Previous  int       `json:"previous"`
	Delta     int       `json:"delta"`
	Direction Direction `json:"direction"`
}

// Comparison is the period-over-period view of the two latest months.
type Comparison struct {
	CurrentMonth  string      `json:"current_month"`
	PreviousMonth string      `json:"previous_month"`
	Count         MetricDelta `json:"count"`
	Meetings      MetricDelta `json:"meetings"`
	IntroRate     MetricDelta `json:"intro_rate"`
	MeetingRate   MetricDelta `json:"meeting_rate"`
	Invested      MetricDelta `json:"invested"`
	Ignored       MetricDelta `json:"ignored"` // fewer is better: a drop reads as "up"
}

// Report is the output of ComputeTrends.
type Report struct {
	Horizon    string        `json:"horizon"` // earliest effective date included
	Monthly    []MonthlyStat `json:"monthly"`
	Comparison *Comparison   `json:"comparison,omitempty"`
}

// ComputeTrends buckets introductions by the month of their effective date
// (dateRequested, else creation date), keeps the latest
// intro.TrendHorizonMonths buckets in chronological order and compares the
// last two. Introductions older than the horizon are ignored.
func ComputeTrends(all []intro.Introduction, now time.Time) (*Report, error) {
	horizon := intro.MonthsBefore(now, intro.TrendHorizonMonths)
	buckets := map[string]*MonthlyStat{}

	for i := range all {
		in := &all[i]
		if err := intro.ValidateStatus(in.Status); err != nil {
			return nil, fmt.Errorf("introduction %d: %w", in.ID, err)
		}
		date := intro.EffectiveStartDate(in)
		if err := intro.ValidateDate("date_requested", date); err != nil {
			return nil, fmt.Errorf("introduction %d: %w", in.ID, err)
		}
		if date < horizon {
			continue
		}

		key := date[:7]
		b, ok := buckets[key]
		if !ok {
			b = &MonthlyStat{Month: key}
			buckets[key] = b
		}
		accumulate(b, in.Status)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	if len(keys) > intro.TrendHorizonMonths {
		keys = keys[:intro.TrendHorizonMonths]
	}
	sort.Strings(keys)

	report := &Report{Horizon: horizon, Monthly: make([]MonthlyStat, 0, len(keys))}
	for _, k := range keys {
		b := buckets[k]
		b.IntroRate = percent(b.Introduced, b.Introduced+b.Passed+b.Ignored)
		b.MeetingRate = percent(b.Meetings, b.Introduced)
		report.Monthly = append(report.Monthly, *b)
	}

	if n := len(report.Monthly); n >= 2 {
		report.Comparison = compare(report.Monthly[n-1], report.Monthly[n-2])
	}
	return report, nil
}

func accumulate(b *MonthlyStat, s intro.Status) {
	b.Total++
	if introduced, _ := intro.ImpliesIntroduced(s); introduced {
		b.Introduced++
	}
	if met, _ := intro.ImpliesMeeting(s); met {
		b.Meetings++
	}
	switch s {
	case intro.StatusPassed:
		b.Passed++
	case intro.StatusIgnored:
		b.Ignored++
	case intro.StatusInvested:
		b.Invested++
	}
}

// percent returns num/den as a rounded percentage, or 0 when den is 0.
func percent(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(float64(num) / float64(den) * 100))
}

func compare(cur, prev MonthlyStat) *Comparison {
	return &Comparison{
		CurrentMonth:  cur.Month,
		PreviousMonth: prev.Month,
		Count:         delta(cur.Total, prev.Total, false),
		Meetings:      delta(cur.Meetings, prev.Meetings, false),
		IntroRate:     delta(cur.IntroRate, prev.IntroRate, false),
		MeetingRate:   delta(cur.MeetingRate, prev.MeetingRate, false),
		Invested:      delta(cur.Invested, prev.Invested, false),
		Ignored:       delta(cur.Ignored, prev.Ignored, true),
	}
}

// delta builds a MetricDelta. With inverted set, a decrease reports "up".
func delta(cur, prev int, inverted bool) MetricDelta {
	d := cur - prev
	dir := DirectionSame
	switch {
	case d > 0 && !inverted, d < 0 && inverted:
		dir = DirectionUp
	case d != 0:
		dir = DirectionDown
	}
	return MetricDelta{Current: cur, Previous: prev, Delta: d, Direction: dir}
}
