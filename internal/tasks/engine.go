package tasks

import (
	"fmt"
	"time"

	"github.com/HendryAvila/introflow/internal/intro"
)

// Connector age thresholds for introduced records, in days.
const (
	scheduleCheckAfterDays = intro.NodeResponseWindowDays
	meetingCheckAfterDays  = 14
)

// Derive returns the task for one introduction and role, or nil when
// nothing is due. cutoff only applies to the connector role.
func Derive(in *intro.Introduction, role intro.Role, now time.Time, cutoff string) (*Task, error) {
	switch role {
	case intro.RoleFounder:
		return DeriveFounderTask(in, now)
	case intro.RoleConnector:
		return DeriveConnectorTask(in, now, cutoff)
	default:
		return nil, fmt.Errorf("unknown role %q: must be founder or connector", role)
	}
}

// DeriveFounderTask applies the founder rules to one introduction.
//
// Explicit follow-up dates win over everything else. Without one, a record
// touched inside the suppression window stays quiet, a stale touched record
// gets a check-in, and a never-touched record asks for a status update.
func DeriveFounderTask(in *intro.Introduction, now time.Time) (*Task, error) {
	actionable, err := intro.IsActionable(in.Status)
	if err != nil {
		return nil, fmt.Errorf("introduction %d: %w", in.ID, err)
	}
	if !actionable {
		return nil, nil
	}

	today := intro.Today(now)
	if next := in.NextFollowupDate; next != "" {
		if next < today {
			return newTask(in, TypeOverdueFollowup, PriorityHigh,
				fmt.Sprintf("Follow-up with %s was due on %s.", investorName(in), next)), nil
		}
		if next == today {
			return newTask(in, TypeDueToday, PriorityHigh,
				fmt.Sprintf("Follow-up with %s is due today.", investorName(in))), nil
		}
	}

	if intro.HasBeenActedOn(in) {
		if intro.RecentlyTouched(in, now) {
			return nil, nil
		}
		return newTask(in, TypeCheckIn, PriorityMedium,
			fmt.Sprintf("No update on %s for two weeks. Any news?", investorName(in))), nil
	}

	return newTask(in, TypeNeedsUpdate, PriorityHigh, founderUpdateMessage(in)), nil
}

// DeriveConnectorTask applies the connector rules to one introduction.
// Introductions whose effective start date precedes cutoff are skipped;
// an empty cutoff disables that filter.
func DeriveConnectorTask(in *intro.Introduction, now time.Time, cutoff string) (*Task, error) {
	actionable, err := intro.IsActionable(in.Status)
	if err != nil {
		return nil, fmt.Errorf("introduction %d: %w", in.ID, err)
	}
	if !actionable {
		return nil, nil
	}
	if cutoff != "" && intro.EffectiveStartDate(in) < cutoff {
		return nil, nil
	}

	if intro.HasBeenActedOn(in) {
		if intro.RecentlyTouched(in, now) {
			return nil, nil
		}
		return newTask(in, TypeCheckIn, PriorityMedium,
			fmt.Sprintf("Check in with %s about %s. No update in two weeks.", in.FounderName(), investorName(in))), nil
	}

	if in.Status == intro.StatusIntroduced {
		age, err := intro.AgeInDays(intro.EffectiveIntroDate(in), now)
		if err != nil {
			return nil, fmt.Errorf("introduction %d: %w", in.ID, err)
		}
		switch {
		case age >= meetingCheckAfterDays:
			return newTask(in, TypeCheckMeeting, PriorityHigh,
				fmt.Sprintf("Did %s and %s meet? Introduced %d days ago.", in.FounderName(), investorName(in), age)), nil
		case age >= scheduleCheckAfterDays:
			return newTask(in, TypeCheckSchedule, PriorityMedium,
				fmt.Sprintf("Did %s and %s schedule a meeting? Introduced %d days ago.", in.FounderName(), investorName(in), age)), nil
		default:
			return nil, nil
		}
	}

	return newTask(in, TypeNeedsUpdate, connectorUpdatePriority(in.Status), connectorUpdateMessage(in)), nil
}

// DeriveFounderTasks derives founder tasks across introductions and returns
// them sorted by priority.
func DeriveFounderTasks(intros []intro.Introduction, now time.Time) ([]Task, error) {
	return deriveAll(intros, intro.RoleFounder, now, "")
}

// DeriveConnectorTasks derives connector tasks across introductions and
// returns them sorted by priority.
func DeriveConnectorTasks(intros []intro.Introduction, now time.Time, cutoff string) ([]Task, error) {
	return deriveAll(intros, intro.RoleConnector, now, cutoff)
}

func deriveAll(intros []intro.Introduction, role intro.Role, now time.Time, cutoff string) ([]Task, error) {
	var result []Task
	for i := range intros {
		task, err := Derive(&intros[i], role, now, cutoff)
		if err != nil {
			return nil, err
		}
		if task != nil {
			result = append(result, *task)
		}
	}
	SortByPriority(result)
	return result, nil
}

func newTask(in *intro.Introduction, typ Type, priority Priority, message string) *Task {
	return &Task{
		Type:           typ,
		Priority:       priority,
		Message:        message,
		IntroductionID: in.ID,
		FounderID:      in.FounderID,
		Label:          in.Label(),
	}
}
