// Package tasks derives the next action for an introduction.
//
// Derivation is a pure function of one introduction snapshot, the acting
// role and "now". It never writes anything back; callers persist whatever
// the user does about a task and ask again.
package tasks

import "sort"

// Priority ranks how urgently a task needs attention.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// rank orders priorities: high sorts first.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Type identifies what kind of action a task asks for.
type Type string

const (
	TypeOverdueFollowup Type = "overdue_followup"
	TypeDueToday        Type = "due_today"
	TypeCheckIn         Type = "check_in"
	TypeNeedsUpdate     Type = "needs_update"
	TypeCheckMeeting    Type = "check_meeting"
	TypeCheckSchedule   Type = "check_schedule"
)

// Task is one derived action for a founder or a connector.
type Task struct {
	Type           Type     `json:"type"`
	Priority       Priority `json:"priority"`
	Message        string   `json:"message"`
	IntroductionID int64    `json:"introduction_id"`
	FounderID      int64    `json:"founder_id"`
	Label          string   `json:"label"`
}

// SortByPriority orders tasks high → medium → low, keeping the original
// relative order inside each tier.
func SortByPriority(list []Task) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Priority.rank() < list[j].Priority.rank()
	})
}
