package digest

import (
	"fmt"

	"github.com/HendryAvila/introflow/internal/intro"
)

// PipelineStats is the global status breakdown.
type PipelineStats struct {
	Today                 string               `json:"today"`
	Total                 int                  `json:"total"`
	ByStatus              map[intro.Status]int `json:"by_status"`
	OverdueCount          int                  `json:"overdue_count"`
	PendingConnectorCount int                  `json:"pending_connector_count"`
}

// ComputePipelineStats counts introductions per status along with the
// overdue (any owner) and pending-connector totals. Every status appears in
// ByStatus, with zero when unused.
func ComputePipelineStats(all []intro.Introduction, today string) (*PipelineStats, error) {
	stats := &PipelineStats{
		Today:    today,
		ByStatus: make(map[intro.Status]int, len(intro.AllStatuses)),
	}
	for _, s := range intro.AllStatuses {
		stats.ByStatus[s] = 0
	}

	for i := range all {
		in := &all[i]
		overdue, err := IsOverdue(in, today)
		if err != nil {
			return nil, fmt.Errorf("introduction %d: %w", in.ID, err)
		}
		stats.ByStatus[in.Status]++
		stats.Total++
		if overdue {
			stats.OverdueCount++
		}
		if IsPendingConnector(in, today) {
			stats.PendingConnectorCount++
		}
	}
	return stats, nil
}
