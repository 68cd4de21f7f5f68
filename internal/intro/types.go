// Package intro defines the introduction workflow model shared by the
// task engine, the digest aggregator and the trend analyzer.
//
// The package follows the same layout as the rest of the repository:
// - types.go: records and closed enums
// - status.go: status classification and transition rules
// - window.go: SLA windows and date primitives
// - errors.go: validation errors and tolerated warnings
//
// Nothing here touches storage. Records are plain snapshots handed over
// by the store and never mutated by the engine.
package intro

import (
	"fmt"
	"time"
)

// --- Status enum ---

// Status is the lifecycle state of an introduction.
type Status string

const (
	StatusIntroRequestSent      Status = "intro_request_sent"
	StatusIntroduced            Status = "introduced"
	StatusPassed                Status = "passed"
	StatusIgnored               Status = "ignored"
	StatusNotAFit               Status = "not_a_fit"
	StatusFirstMeetingComplete  Status = "first_meeting_complete"
	StatusSecondMeetingComplete Status = "second_meeting_complete"
	StatusFollowUpQuestions     Status = "follow_up_questions"
	StatusCircleBack            Status = "circle_back_round_opens"
	StatusInvested              Status = "invested"
)

// AllStatuses lists every status in pipeline order.
var AllStatuses = []Status{
	StatusIntroRequestSent,
	StatusIntroduced,
	StatusFirstMeetingComplete,
	StatusSecondMeetingComplete,
	StatusFollowUpQuestions,
	StatusCircleBack,
	StatusInvested,
	StatusPassed,
	StatusIgnored,
	StatusNotAFit,
}

// --- Follow-up owner enum ---

// Owner is the party responsible for the next follow-up.
type Owner string

const (
	OwnerNone    Owner = ""
	OwnerFounder Owner = "founder"
	OwnerAdmin   Owner = "admin"
)

// ValidateOwner returns an error if the owner is not recognized.
// An empty owner is valid and means nobody has claimed the follow-up.
func ValidateOwner(o Owner) error {
	switch o {
	case OwnerNone, OwnerFounder, OwnerAdmin:
		return nil
	}
	return &ValidationError{Field: "followup_owner", Value: string(o), Err: ErrInvalidOwner}
}

// --- Follow-up type enum ---

// FollowupType categorizes a follow-up log entry.
type FollowupType string

const (
	FollowupConnectorCheck  FollowupType = "connector-check"
	FollowupMeetingUpdate   FollowupType = "meeting-update"
	FollowupConnectorUpdate FollowupType = "connector-update"
)

var validFollowupTypes = map[FollowupType]bool{
	FollowupConnectorCheck:  true,
	FollowupMeetingUpdate:   true,
	FollowupConnectorUpdate: true,
}

// ValidateFollowupType returns an error if the follow-up type is not recognized.
func ValidateFollowupType(t FollowupType) error {
	if !validFollowupTypes[t] {
		return &ValidationError{Field: "followup_type", Value: string(t), Err: ErrInvalidFollowupType}
	}
	return nil
}

// --- Round status enum ---

// RoundStatus is where a founder is in their fundraising round.
type RoundStatus string

const (
	RoundPre    RoundStatus = "pre_round"
	RoundOpen   RoundStatus = "round_open"
	RoundClosed RoundStatus = "round_closed"
)

// ValidateRoundStatus returns an error if the round status is not recognized.
func ValidateRoundStatus(r RoundStatus) error {
	switch r {
	case RoundPre, RoundOpen, RoundClosed:
		return nil
	}
	return &ValidationError{Field: "round_status", Value: string(r), Err: ErrInvalidRoundStatus}
}

// --- Role enum ---

// Role selects which rule set the task engine applies.
type Role string

const (
	RoleFounder   Role = "founder"
	RoleConnector Role = "connector"
)

// --- Records ---

// Founder is an entrepreneur seeking investor introductions.
type Founder struct {
	ID          int64       `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Email       string      `json:"email,omitempty" yaml:"email,omitempty"`
	Company     string      `json:"company,omitempty" yaml:"company,omitempty"`
	RoundStatus RoundStatus `json:"round_status" yaml:"round_status"`
}

// Node is a connector who personally knows investors.
type Node struct {
	ID    int64  `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Investor is the target of an introduction.
type Investor struct {
	ID            int64  `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Firm          string `json:"firm,omitempty" yaml:"firm,omitempty"`
	Website       string `json:"website,omitempty" yaml:"website,omitempty"`
	StageFocus    string `json:"stage_focus,omitempty" yaml:"stage_focus,omitempty"`
	SectorFocus   string `json:"sector_focus,omitempty" yaml:"sector_focus,omitempty"`
	ResearchNotes string `json:"research_notes,omitempty" yaml:"research_notes,omitempty"`
	ResearchedAt  string `json:"researched_at,omitempty" yaml:"researched_at,omitempty"`
}

// FollowupLog is one check-in action recorded against an introduction.
type FollowupLog struct {
	ID             int64        `json:"id"`
	IntroductionID int64        `json:"introduction_id"`
	FollowupType   FollowupType `json:"followup_type"`
	CompletedBy    string       `json:"completed_by"`
	CompletedAt    time.Time    `json:"completed_at"`
	Notes          string       `json:"notes,omitempty"`
	NextAction     string       `json:"next_action,omitempty"`
}

// Introduction is the workflow record tracking one founder's request to
// meet one investor through one connector.
//
// Date fields are zero-padded YYYY-MM-DD strings (empty when unset);
// CreatedAt/UpdatedAt are full instants. Founder, Node and Investor are
// eagerly attached relations and may be nil when the row is orphaned.
type Introduction struct {
	ID                int64         `json:"id"`
	FounderID         int64         `json:"founder_id"`
	NodeID            int64         `json:"node_id"`
	InvestorID        int64         `json:"investor_id"`
	Status            Status        `json:"status"`
	DateRequested     string        `json:"date_requested,omitempty"`
	DateNodeAsked     string        `json:"date_node_asked,omitempty"`
	DateIntroduced    string        `json:"date_introduced,omitempty"`
	FirstMeetingDate  string        `json:"first_meeting_date,omitempty"`
	SecondMeetingDate string        `json:"second_meeting_date,omitempty"`
	NextFollowupDate  string        `json:"next_followup_date,omitempty"`
	LastFollowupDate  string        `json:"last_followup_date,omitempty"`
	FollowupOwner     Owner         `json:"followup_owner,omitempty"`
	PassReason        string        `json:"pass_reason,omitempty"`
	Notes             string        `json:"notes,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
	Founder           *Founder      `json:"founder,omitempty"`
	Node              *Node         `json:"node,omitempty"`
	Investor          *Investor     `json:"investor,omitempty"`
	Followups         []FollowupLog `json:"followups,omitempty"`
}

// Label returns a short human-readable description of the introduction,
// falling back to ids when relations are missing.
func (in *Introduction) Label() string {
	founder := fmt.Sprintf("founder #%d", in.FounderID)
	if in.Founder != nil && in.Founder.Name != "" {
		founder = in.Founder.Name
	}
	investor := fmt.Sprintf("investor #%d", in.InvestorID)
	if in.Investor != nil && in.Investor.Name != "" {
		investor = in.Investor.Name
	}
	return founder + " → " + investor
}

// FounderName returns the attached founder's name or an id placeholder.
func (in *Introduction) FounderName() string {
	if in.Founder != nil && in.Founder.Name != "" {
		return in.Founder.Name
	}
	return fmt.Sprintf("founder #%d", in.FounderID)
}

// HasFollowup reports whether a follow-up log of the given type exists.
func (in *Introduction) HasFollowup(t FollowupType) bool {
	for _, f := range in.Followups {
		if f.FollowupType == t {
			return true
		}
	}
	return false
}

// Validate checks the record's enumerations, date formats and timestamp order.
func (in *Introduction) Validate() error {
	if err := ValidateStatus(in.Status); err != nil {
		return fmt.Errorf("introduction %d: %w", in.ID, err)
	}
	if err := ValidateOwner(in.FollowupOwner); err != nil {
		return fmt.Errorf("introduction %d: %w", in.ID, err)
	}
	dates := []struct {
		field string
		value string
	}{
		{"date_requested", in.DateRequested},
		{"date_node_asked", in.DateNodeAsked},
		{"date_introduced", in.DateIntroduced},
		{"first_meeting_date", in.FirstMeetingDate},
		{"second_meeting_date", in.SecondMeetingDate},
		{"next_followup_date", in.NextFollowupDate},
		{"last_followup_date", in.LastFollowupDate},
	}
	for _, d := range dates {
		if d.value == "" {
			continue
		}
		if err := ValidateDate(d.field, d.value); err != nil {
			return fmt.Errorf("introduction %d: %w", in.ID, err)
		}
	}
	if in.UpdatedAt.Before(in.CreatedAt) {
		return fmt.Errorf("introduction %d: %w", in.ID, &ValidationError{
			Field: "updated_at",
			Value: in.UpdatedAt.Format(time.RFC3339),
			Err:   ErrTimestampOrder,
		})
	}
	return nil
}
