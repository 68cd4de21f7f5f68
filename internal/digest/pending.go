package digest

import (
	"fmt"
	"sort"

	"github.com/HendryAvila/introflow/internal/intro"
)

// PendingFounder counts the open actions of one founder.
type PendingFounder struct {
	FounderID        int64  `json:"founder_id"`
	FounderName      string `json:"founder_name"`
	Overdue          int    `json:"overdue"`
	DueToday         int    `json:"due_today"`
	PendingConnector int    `json:"pending_connector"`
	ActionCount      int    `json:"action_count"`
}

// PendingFounders lists every founder with at least one open action.
type PendingFounders struct {
	Today    string           `json:"today"`
	Founders []PendingFounder `json:"founders"`
	Warnings []string         `json:"warnings,omitempty"`
}

// BuildPendingFounders scans all introductions and groups founders that
// have overdue, due-today or pending-connector items. Follow-up ownership
// is ignored here. Founders are ordered by action count, descending, with
// ties kept in encounter order.
func BuildPendingFounders(all []intro.Introduction, today string) (*PendingFounders, error) {
	result := &PendingFounders{Today: today, Founders: []PendingFounder{}}
	index := map[int64]int{}

	for i := range all {
		in := &all[i]
		overdue, err := IsOverdue(in, today)
		if err != nil {
			return nil, fmt.Errorf("introduction %d: %w", in.ID, err)
		}
		dueToday, _ := IsDueToday(in, today)
		pending := IsPendingConnector(in, today)
		if !overdue && !dueToday && !pending {
			continue
		}

		if in.Founder == nil {
			result.Warnings = append(result.Warnings,
				intro.MissingReference{IntroductionID: in.ID, Relation: "founder"}.String())
			continue
		}

		pos, ok := index[in.FounderID]
		if !ok {
			pos = len(result.Founders)
			index[in.FounderID] = pos
			result.Founders = append(result.Founders, PendingFounder{
				FounderID:   in.FounderID,
				FounderName: in.FounderName(),
			})
		}
		pf := &result.Founders[pos]
		if overdue {
			pf.Overdue++
		}
		if dueToday {
			pf.DueToday++
		}
		if pending {
			pf.PendingConnector++
		}
		pf.ActionCount = pf.Overdue + pf.DueToday + pf.PendingConnector
	}

	sort.SliceStable(result.Founders, func(i, j int) bool {
		return result.Founders[i].ActionCount > result.Founders[j].ActionCount
	})
	return result, nil
}
