package digest

import (
	"fmt"
	"sort"
	"time"

	"github.com/HendryAvila/introflow/internal/intro"
	"github.com/HendryAvila/introflow/internal/tasks"
)

// FounderTaskGroup is the connector's task list for one founder.
type FounderTaskGroup struct {
	FounderID    int64        `json:"founder_id"`
	FounderName  string       `json:"founder_name"`
	HighPriority int          `json:"high_priority"`
	Tasks        []tasks.Task `json:"tasks"`
}

// ConnectorDigest is the connector's task list grouped by founder.
type ConnectorDigest struct {
	Cutoff     string             `json:"cutoff,omitempty"`
	TotalTasks int                `json:"total_tasks"`
	Groups     []FounderTaskGroup `json:"groups"`
	Warnings   []string           `json:"warnings,omitempty"`
}

// BuildConnectorDigest runs the connector rules over one connector's
// introductions and groups the tasks by founder. Groups with more
// high-priority tasks come first; ties keep encounter order. Tasks inside
// a group are sorted by priority.
func BuildConnectorDigest(intros []intro.Introduction, now time.Time, cutoff string) (*ConnectorDigest, error) {
	d := &ConnectorDigest{Cutoff: cutoff, Groups: []FounderTaskGroup{}}
	index := map[int64]int{}

	for i := range intros {
		in := &intros[i]
		task, err := tasks.Derive(in, intro.RoleConnector, now, cutoff)
		if err != nil {
			return nil, fmt.Errorf("connector digest: %w", err)
		}
		if task == nil {
			continue
		}
		if in.Founder == nil {
			d.Warnings = append(d.Warnings,
				intro.MissingReference{IntroductionID: in.ID, Relation: "founder"}.String())
			continue
		}

		pos, ok := index[in.FounderID]
		if !ok {
			pos = len(d.Groups)
			index[in.FounderID] = pos
			d.Groups = append(d.Groups, FounderTaskGroup{
				FounderID:   in.FounderID,
				FounderName: in.FounderName(),
			})
		}
		g := &d.Groups[pos]
		g.Tasks = append(g.Tasks, *task)
		if task.Priority == tasks.PriorityHigh {
			g.HighPriority++
		}
		d.TotalTasks++
	}

	for i := range d.Groups {
		tasks.SortByPriority(d.Groups[i].Tasks)
	}
	sort.SliceStable(d.Groups, func(i, j int) bool {
		return d.Groups[i].HighPriority > d.Groups[j].HighPriority
	})
	return d, nil
}
