package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/HendryAvila/introflow/internal/intro"
)

// Seed is the YAML document accepted by Import. IDs are kept as given so
// that introductions can reference people in the same file.
type Seed struct {
	Founders      []intro.Founder    `yaml:"founders"`
	Nodes         []intro.Node       `yaml:"nodes"`
	Investors     []intro.Investor   `yaml:"investors"`
	Introductions []SeedIntroduction `yaml:"introductions"`
}

// SeedIntroduction is an introduction row in a seed file. Timestamps are
// RFC 3339; an empty created_at defaults to the import time and an empty
// updated_at to created_at.
type SeedIntroduction struct {
	ID                int64          `yaml:"id"`
	FounderID         int64          `yaml:"founder_id"`
	NodeID            int64          `yaml:"node_id"`
	InvestorID        int64          `yaml:"investor_id"`
	Status            intro.Status   `yaml:"status"`
	DateRequested     string         `yaml:"date_requested"`
	DateNodeAsked     string         `yaml:"date_node_asked"`
	DateIntroduced    string         `yaml:"date_introduced"`
	FirstMeetingDate  string         `yaml:"first_meeting_date"`
	SecondMeetingDate string         `yaml:"second_meeting_date"`
	NextFollowupDate  string         `yaml:"next_followup_date"`
	LastFollowupDate  string         `yaml:"last_followup_date"`
	FollowupOwner     intro.Owner    `yaml:"followup_owner"`
	PassReason        string         `yaml:"pass_reason"`
	Notes             string         `yaml:"notes"`
	CreatedAt         string         `yaml:"created_at"`
	UpdatedAt         string         `yaml:"updated_at"`
	Followups         []SeedFollowup `yaml:"followups"`
}

// SeedFollowup is a follow-up log attached to a seeded introduction.
type SeedFollowup struct {
	Type        intro.FollowupType `yaml:"type"`
	CompletedBy string             `yaml:"completed_by"`
	CompletedAt string             `yaml:"completed_at"`
	Notes       string             `yaml:"notes"`
	NextAction  string             `yaml:"next_action"`
}

// ImportResult counts the rows written by Import.
type ImportResult struct {
	Founders      int `json:"founders"`
	Nodes         int `json:"nodes"`
	Investors     int `json:"investors"`
	Introductions int `json:"introductions"`
	Followups     int `json:"followups"`
}

// LoadSeedFile reads and parses a YAML seed file.
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &seed, nil
}

// Import validates every row of seed and writes it in one transaction.
// Existing rows with the same IDs are replaced.
func (s *Store) Import(ctx context.Context, seed *Seed) (*ImportResult, error) {
	stamp := now()
	intros := make([]intro.Introduction, len(seed.Introductions))
	for i, si := range seed.Introductions {
		in, err := si.toIntroduction(timeNow())
		if err != nil {
			return nil, err
		}
		intros[i] = in
	}
	if err := checkActivePairs(intros); err != nil {
		return nil, err
	}
	for _, f := range seed.Founders {
		rs := f.RoundStatus
		if rs == "" {
			rs = intro.RoundPre
		}
		if err := intro.ValidateRoundStatus(rs); err != nil {
			return nil, fmt.Errorf("founder %d: %w", f.ID, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res := &ImportResult{}
	for _, f := range seed.Founders {
		rs := f.RoundStatus
		if rs == "" {
			rs = intro.RoundPre
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO founders (id, name, email, company, round_status, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			f.ID, f.Name, nullableString(f.Email), nullableString(f.Company), string(rs), stamp,
		); err != nil {
			return nil, fmt.Errorf("importing founder %d: %w", f.ID, err)
		}
		res.Founders++
	}
	for _, n := range seed.Nodes {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO nodes (id, name, email, created_at) VALUES (?, ?, ?, ?)`,
			n.ID, n.Name, nullableString(n.Email), stamp,
		); err != nil {
			return nil, fmt.Errorf("importing connector %d: %w", n.ID, err)
		}
		res.Nodes++
	}
	for _, v := range seed.Investors {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO investors
				(id, name, firm, website, stage_focus, sector_focus, research_notes, researched_at, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			v.ID, v.Name, nullableString(v.Firm), nullableString(v.Website),
			nullableString(v.StageFocus), nullableString(v.SectorFocus),
			nullableString(v.ResearchNotes), nullableString(v.ResearchedAt), stamp,
		); err != nil {
			return nil, fmt.Errorf("importing investor %d: %w", v.ID, err)
		}
		res.Investors++
	}

	for i, in := range intros {
		// Explicit delete so the old row's logs cascade.
		if _, err := tx.ExecContext(ctx, `DELETE FROM introductions WHERE id = ?`, in.ID); err != nil {
			return nil, fmt.Errorf("replacing introduction %d: %w", in.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO introductions
				(id, founder_id, node_id, investor_id, status, date_requested, date_node_asked,
				 date_introduced, first_meeting_date, second_meeting_date, next_followup_date,
				 last_followup_date, followup_owner, pass_reason, notes, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			in.ID, in.FounderID, in.NodeID, in.InvestorID, string(in.Status),
			nullableString(in.DateRequested), nullableString(in.DateNodeAsked),
			nullableString(in.DateIntroduced), nullableString(in.FirstMeetingDate),
			nullableString(in.SecondMeetingDate), nullableString(in.NextFollowupDate),
			nullableString(in.LastFollowupDate), nullableString(string(in.FollowupOwner)),
			nullableString(in.PassReason), nullableString(in.Notes),
			formatTime(in.CreatedAt), formatTime(in.UpdatedAt),
		); err != nil {
			return nil, fmt.Errorf("importing introduction %d: %w", in.ID, err)
		}
		res.Introductions++

		for _, fu := range seed.Introductions[i].Followups {
			at := in.UpdatedAt
			if fu.CompletedAt != "" {
				if at, err = parseTime(fu.CompletedAt); err != nil {
					return nil, fmt.Errorf("introduction %d follow-up: %w", in.ID, err)
				}
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO followup_logs
					(introduction_id, followup_type, completed_by, completed_at, notes, next_action)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				in.ID, string(fu.Type), fu.CompletedBy, formatTime(at),
				nullableString(fu.Notes), nullableString(fu.NextAction),
			); err != nil {
				return nil, fmt.Errorf("importing follow-up for introduction %d: %w", in.ID, err)
			}
			res.Followups++
		}
	}

	// Rows already in the database count too.
	if err := checkActivePairsTx(ctx, tx); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}
	return res, nil
}

// checkActivePairs rejects a seed holding two non-terminal introductions for
// the same founder and investor.
func checkActivePairs(intros []intro.Introduction) error {
	type pair struct{ founder, investor int64 }
	seen := make(map[pair]int64, len(intros))
	for _, in := range intros {
		if terminal, _ := intro.IsTerminal(in.Status); terminal {
			continue
		}
		k := pair{in.FounderID, in.InvestorID}
		if prev, ok := seen[k]; ok && prev != in.ID {
			return fmt.Errorf("introductions %d and %d, founder %d, investor %d: %w",
				prev, in.ID, in.FounderID, in.InvestorID, ErrDuplicateActive)
		}
		seen[k] = in.ID
	}
	return nil
}

func checkActivePairsTx(ctx context.Context, tx *sql.Tx) error {
	in, args := terminalStatusSet()
	var founderID, investorID int64
	err := tx.QueryRowContext(ctx,
		`SELECT founder_id, investor_id FROM introductions
		 WHERE status NOT IN (`+in+`)
		 GROUP BY founder_id, investor_id
		 HAVING COUNT(*) > 1
		 LIMIT 1`,
		args...,
	).Scan(&founderID, &investorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking active introductions: %w", err)
	}
	return fmt.Errorf("founder %d, investor %d: %w", founderID, investorID, ErrDuplicateActive)
}

func (si SeedIntroduction) toIntroduction(importedAt time.Time) (intro.Introduction, error) {
	in := intro.Introduction{
		ID:                si.ID,
		FounderID:         si.FounderID,
		NodeID:            si.NodeID,
		InvestorID:        si.InvestorID,
		Status:            si.Status,
		DateRequested:     si.DateRequested,
		DateNodeAsked:     si.DateNodeAsked,
		DateIntroduced:    si.DateIntroduced,
		FirstMeetingDate:  si.FirstMeetingDate,
		SecondMeetingDate: si.SecondMeetingDate,
		NextFollowupDate:  si.NextFollowupDate,
		LastFollowupDate:  si.LastFollowupDate,
		FollowupOwner:     si.FollowupOwner,
		PassReason:        si.PassReason,
		Notes:             si.Notes,
		CreatedAt:         importedAt.UTC(),
	}
	if in.ID <= 0 {
		return in, fmt.Errorf("seed introduction: id is required")
	}
	if in.Status == "" {
		in.Status = intro.StatusIntroRequestSent
	}
	var err error
	if si.CreatedAt != "" {
		if in.CreatedAt, err = parseTime(si.CreatedAt); err != nil {
			return in, fmt.Errorf("introduction %d: %w", si.ID, err)
		}
	}
	in.UpdatedAt = in.CreatedAt
	if si.UpdatedAt != "" {
		if in.UpdatedAt, err = parseTime(si.UpdatedAt); err != nil {
			return in, fmt.Errorf("introduction %d: %w", si.ID, err)
		}
	}
	for _, fu := range si.Followups {
		if err := intro.ValidateFollowupType(fu.Type); err != nil {
			return in, fmt.Errorf("introduction %d: %w", si.ID, err)
		}
	}
	if err := in.Validate(); err != nil {
		return in, err
	}
	return in, nil
}
