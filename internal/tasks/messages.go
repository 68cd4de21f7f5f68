package tasks

import (
	"fmt"

	"github.com/HendryAvila/introflow/internal/intro"
)

func investorName(in *intro.Introduction) string {
	if in.Investor != nil && in.Investor.Name != "" {
		return in.Investor.Name
	}
	return fmt.Sprintf("investor #%d", in.InvestorID)
}

// founderUpdateMessage is the founder-facing prompt for a record nobody
// has touched since it was created.
func founderUpdateMessage(in *intro.Introduction) string {
	inv := investorName(in)
	switch in.Status {
	case intro.StatusIntroduced:
		return fmt.Sprintf("You were introduced to %s. Have you scheduled a first meeting?", inv)
	case intro.StatusFirstMeetingComplete:
		return fmt.Sprintf("How did your first meeting with %s go? Update the status with the outcome.", inv)
	case intro.StatusSecondMeetingComplete:
		return fmt.Sprintf("Your second meeting with %s is done. What are the next steps?", inv)
	case intro.StatusFollowUpQuestions:
		return fmt.Sprintf("%s has follow-up questions. Have you sent your answers?", inv)
	case intro.StatusCircleBack:
		return fmt.Sprintf("%s asked to circle back when your round opens. Is it time to reconnect?", inv)
	default:
		return fmt.Sprintf("Please update the status of your introduction to %s.", inv)
	}
}

// connectorUpdateMessage is the connector-facing prompt for post-meeting
// statuses. Introduced records are handled by the schedule/meeting checks.
func connectorUpdateMessage(in *intro.Introduction) string {
	founder, inv := in.FounderName(), investorName(in)
	switch in.Status {
	case intro.StatusFirstMeetingComplete:
		return fmt.Sprintf("%s met %s. Is a second meeting on the calendar?", founder, inv)
	case intro.StatusSecondMeetingComplete:
		return fmt.Sprintf("%s and %s had a second meeting. Has %s signaled a decision?", founder, inv, inv)
	case intro.StatusFollowUpQuestions:
		return fmt.Sprintf("%s has open questions for %s. Can you help unblock them?", inv, founder)
	case intro.StatusCircleBack:
		return fmt.Sprintf("%s wants to revisit %s later. Keep the relationship warm.", inv, founder)
	default:
		return fmt.Sprintf("Check in on the introduction between %s and %s.", founder, inv)
	}
}

// connectorUpdatePriority is the default connector priority per status.
func connectorUpdatePriority(s intro.Status) Priority {
	switch s {
	case intro.StatusFollowUpQuestions:
		return PriorityHigh
	case intro.StatusCircleBack:
		return PriorityLow
	default:
		return PriorityMedium
	}
}
