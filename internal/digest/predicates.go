// Package digest groups introductions into per-role action buckets.
//
// Every builder takes a plain snapshot plus "today" and returns plain data.
// Unknown ids simply produce empty buckets; an unrecognized status is
// returned as an error; a missing founder relation is skipped with a
// warning.
package digest

import (
	"github.com/HendryAvila/introflow/internal/intro"
)

// Item is the serializable view of one introduction inside a bucket.
type Item struct {
	IntroductionID   int64        `json:"introduction_id"`
	FounderID        int64        `json:"founder_id"`
	Label            string       `json:"label"`
	Status           intro.Status `json:"status"`
	DateRequested    string       `json:"date_requested,omitempty"`
	NextFollowupDate string       `json:"next_followup_date,omitempty"`
	FollowupOwner    intro.Owner  `json:"followup_owner,omitempty"`
}

func itemOf(in *intro.Introduction) Item {
	return Item{
		IntroductionID:   in.ID,
		FounderID:        in.FounderID,
		Label:            in.Label(),
		Status:           in.Status,
		DateRequested:    in.DateRequested,
		NextFollowupDate: in.NextFollowupDate,
		FollowupOwner:    in.FollowupOwner,
	}
}

// IsOverdue reports whether an overdue-eligible introduction has a
// follow-up date before today. Ownership is not considered.
func IsOverdue(in *intro.Introduction, today string) (bool, error) {
	eligible, err := intro.IsOverdueEligible(in.Status)
	if err != nil {
		return false, err
	}
	return eligible && in.NextFollowupDate != "" && in.NextFollowupDate < today, nil
}

// IsDueToday reports whether an overdue-eligible introduction has its
// follow-up date today. Ownership is not considered.
func IsDueToday(in *intro.Introduction, today string) (bool, error) {
	eligible, err := intro.IsOverdueEligible(in.Status)
	if err != nil {
		return false, err
	}
	return eligible && in.NextFollowupDate != "" && in.NextFollowupDate == today, nil
}

// awaitingConnector reports an unanswered request older than days.
func awaitingConnector(in *intro.Introduction, today string, days int) bool {
	return in.Status == intro.StatusIntroRequestSent &&
		in.DateNodeAsked == "" &&
		intro.OlderThan(in.DateRequested, today, days)
}

// IsPendingConnector reports a request the connector has not acted on
// within the node-response window.
func IsPendingConnector(in *intro.Introduction, today string) bool {
	return awaitingConnector(in, today, intro.NodeResponseWindowDays)
}

// IsEscalated reports a request the connector has not acted on within the
// escalation window. Every escalated request is also pending.
func IsEscalated(in *intro.Introduction, today string) bool {
	return awaitingConnector(in, today, intro.EscalationWindowDays)
}

// NeedsConnectorUpdate reports a record whose meeting outcome has not yet
// been relayed to the connector.
func NeedsConnectorUpdate(in *intro.Introduction) bool {
	switch in.Status {
	case intro.StatusFirstMeetingComplete, intro.StatusSecondMeetingComplete, intro.StatusInvested:
		return !in.HasFollowup(intro.FollowupConnectorUpdate)
	}
	return false
}
