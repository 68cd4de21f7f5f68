package digest

import (
	"fmt"

	"github.com/HendryAvila/introflow/internal/intro"
)

// FounderSummary holds the bucket counts of a founder digest.
type FounderSummary struct {
	Overdue              int `json:"overdue"`
	DueToday             int `json:"due_today"`
	PendingConnector     int `json:"pending_connector"`
	NeedsConnectorUpdate int `json:"needs_connector_update"`
}

// FounderDigest is the grouped action list for one founder.
type FounderDigest struct {
	Today                    string         `json:"today"`
	OverdueFollowups         []Item         `json:"overdue_followups"`
	DueToday                 []Item         `json:"due_today"`
	PendingConnectorResponse []Item         `json:"pending_connector_response"`
	NeedsConnectorUpdate     []Item         `json:"needs_connector_update"`
	Summary                  FounderSummary `json:"summary"`
}

// BuildFounderDigest partitions one founder's introductions into buckets.
// Only founder-owned follow-ups count as overdue or due today here.
func BuildFounderDigest(intros []intro.Introduction, today string) (*FounderDigest, error) {
	d := &FounderDigest{
		Today:                    today,
		OverdueFollowups:         []Item{},
		DueToday:                 []Item{},
		PendingConnectorResponse: []Item{},
		NeedsConnectorUpdate:     []Item{},
	}

	for i := range intros {
		in := &intros[i]
		if err := intro.ValidateStatus(in.Status); err != nil {
			return nil, fmt.Errorf("introduction %d: %w", in.ID, err)
		}

		if in.FollowupOwner == intro.OwnerFounder {
			overdue, _ := IsOverdue(in, today)
			dueToday, _ := IsDueToday(in, today)
			if overdue {
				d.OverdueFollowups = append(d.OverdueFollowups, itemOf(in))
			}
			if dueToday {
				d.DueToday = append(d.DueToday, itemOf(in))
			}
		}
		if IsPendingConnector(in, today) {
			d.PendingConnectorResponse = append(d.PendingConnectorResponse, itemOf(in))
		}
		if NeedsConnectorUpdate(in) {
			d.NeedsConnectorUpdate = append(d.NeedsConnectorUpdate, itemOf(in))
		}
	}

	d.Summary = FounderSummary{
		Overdue:              len(d.OverdueFollowups),
		DueToday:             len(d.DueToday),
		PendingConnector:     len(d.PendingConnectorResponse),
		NeedsConnectorUpdate: len(d.NeedsConnectorUpdate),
	}
	return d, nil
}

// Total returns the number of items across all buckets.
func (s FounderSummary) Total() int {
	return s.Overdue + s.DueToday + s.PendingConnector + s.NeedsConnectorUpdate
}
