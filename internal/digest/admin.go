package digest

import (
	"fmt"

	"github.com/HendryAvila/introflow/internal/intro"
)

// AdminSummary holds the bucket counts of the admin digest.
type AdminSummary struct {
	Escalated  int `json:"escalated"`
	Overdue    int `json:"overdue"`
	CircleBack int `json:"circle_back"`
}

// AdminDigest is the global escalation view.
type AdminDigest struct {
	Today                   string       `json:"today"`
	Escalated               []Item       `json:"escalated"`
	AdminOverdue            []Item       `json:"admin_overdue"`
	CircleBackOpportunities []Item       `json:"circle_back_opportunities"`
	Summary                 AdminSummary `json:"summary"`
	Warnings                []string     `json:"warnings,omitempty"`
}

// BuildAdminDigest computes escalations, admin-owned overdue follow-ups and
// circle-back opportunities. founders supplies round statuses; when a founder
// is not listed the attached relation is used, and when neither exists the
// row is left out of circle-back with a warning.
func BuildAdminDigest(all []intro.Introduction, founders []intro.Founder, today string) (*AdminDigest, error) {
	rounds := make(map[int64]intro.RoundStatus, len(founders))
	for _, f := range founders {
		rounds[f.ID] = f.RoundStatus
	}

	d := &AdminDigest{
		Today:                   today,
		Escalated:               []Item{},
		AdminOverdue:            []Item{},
		CircleBackOpportunities: []Item{},
	}

	for i := range all {
		in := &all[i]
		overdue, err := IsOverdue(in, today)
		if err != nil {
			return nil, fmt.Errorf("introduction %d: %w", in.ID, err)
		}

		if IsEscalated(in, today) {
			d.Escalated = append(d.Escalated, itemOf(in))
		}
		if in.FollowupOwner == intro.OwnerAdmin && overdue {
			d.AdminOverdue = append(d.AdminOverdue, itemOf(in))
		}
		if in.Status != intro.StatusCircleBack {
			continue
		}

		round, ok := rounds[in.FounderID]
		if !ok && in.Founder != nil {
			round, ok = in.Founder.RoundStatus, true
		}
		if !ok {
			d.Warnings = append(d.Warnings,
				intro.MissingReference{IntroductionID: in.ID, Relation: "founder"}.String())
			continue
		}
		if round == intro.RoundOpen {
			d.CircleBackOpportunities = append(d.CircleBackOpportunities, itemOf(in))
		}
	}

	d.Summary = AdminSummary{
		Escalated:  len(d.Escalated),
		Overdue:    len(d.AdminOverdue),
		CircleBack: len(d.CircleBackOpportunities),
	}
	return d, nil
}
