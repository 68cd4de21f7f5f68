package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/HendryAvila/introflow/internal/intro"
)

// CreateParams describes a new introduction request.
type CreateParams struct {
	FounderID        int64
	NodeID           int64
	InvestorID       int64
	DateRequested    string      // defaults to today
	NextFollowupDate string      // optional
	FollowupOwner    intro.Owner // optional
	Notes            string
}

// UpdateParams carries optional changes to an introduction. Nil fields are
// left untouched.
type UpdateParams struct {
	Status            *intro.Status
	DateNodeAsked     *string
	DateIntroduced    *string
	FirstMeetingDate  *string
	SecondMeetingDate *string
	NextFollowupDate  *string
	FollowupOwner     *intro.Owner
	PassReason        *string
	Notes             *string
}

// Filter narrows ListIntroductions. Zero values match everything.
type Filter struct {
	FounderID int64
	NodeID    int64
	Status    intro.Status
}

const introColumns = `
	i.id, i.founder_id, i.node_id, i.investor_id, i.status,
	i.date_requested, i.date_node_asked, i.date_introduced,
	i.first_meeting_date, i.second_meeting_date,
	i.next_followup_date, i.last_followup_date,
	i.followup_owner, i.pass_reason, i.notes, i.created_at, i.updated_at,
	f.id, f.name, f.email, f.company, f.round_status,
	n.id, n.name, n.email,
	v.id, v.name, v.firm, v.website, v.stage_focus, v.sector_focus, v.research_notes, v.researched_at`

const introFrom = `
	FROM introductions i
	LEFT JOIN founders  f ON f.id = i.founder_id
	LEFT JOIN nodes     n ON n.id = i.node_id
	LEFT JOIN investors v ON v.id = i.investor_id`

// CreateIntroduction records a new intro request in status
// intro_request_sent. A founder may hold only one non-terminal introduction
// per investor.
func (s *Store) CreateIntroduction(ctx context.Context, p CreateParams) (int64, error) {
	if p.FounderID <= 0 || p.NodeID <= 0 || p.InvestorID <= 0 {
		return 0, fmt.Errorf("founder, connector and investor are required")
	}
	ts := timeNow()
	if p.DateRequested == "" {
		p.DateRequested = intro.Today(ts)
	}
	if err := intro.ValidateDate("date_requested", p.DateRequested); err != nil {
		return 0, err
	}
	if p.NextFollowupDate != "" {
		if err := intro.ValidateDate("next_followup_date", p.NextFollowupDate); err != nil {
			return 0, err
		}
	}
	if err := intro.ValidateOwner(p.FollowupOwner); err != nil {
		return 0, err
	}

	active, err := s.hasActiveIntroduction(ctx, p.FounderID, p.InvestorID, 0)
	if err != nil {
		return 0, err
	}
	if active {
		return 0, fmt.Errorf("founder %d, investor %d: %w", p.FounderID, p.InvestorID, ErrDuplicateActive)
	}

	stamp := formatTime(ts)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO introductions
			(founder_id, node_id, investor_id, status, date_requested,
			 next_followup_date, followup_owner, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.FounderID, p.NodeID, p.InvestorID, string(intro.StatusIntroRequestSent), p.DateRequested,
		nullableString(p.NextFollowupDate), nullableString(string(p.FollowupOwner)),
		nullableString(p.Notes), stamp, stamp,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting introduction: %w", err)
	}
	return res.LastInsertId()
}

// hasActiveIntroduction reports whether a non-terminal introduction other
// than exceptID exists for the pair.
func (s *Store) hasActiveIntroduction(ctx context.Context, founderID, investorID, exceptID int64) (bool, error) {
	in, terminal := terminalStatusSet()
	args := append([]any{founderID, investorID, exceptID}, terminal...)
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM introductions
		 WHERE founder_id = ? AND investor_id = ? AND id != ?
		   AND status NOT IN (`+in+`)`,
		args...,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking active introductions: %w", err)
	}
	return n > 0, nil
}

// terminalStatusSet returns an IN-list of placeholders and its arguments
// covering every terminal status.
func terminalStatusSet() (string, []any) {
	var (
		marks []string
		args  []any
	)
	for _, st := range intro.AllStatuses {
		if t, _ := intro.IsTerminal(st); t {
			marks = append(marks, "?")
			args = append(args, string(st))
		}
	}
	return strings.Join(marks, ","), args
}

// GetIntroduction returns one introduction with its relations and logs.
func (s *Store) GetIntroduction(ctx context.Context, id int64) (*intro.Introduction, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+introColumns+introFrom+` WHERE i.id = ?`, id)
	in, err := scanIntroduction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("introduction %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting introduction %d: %w", id, err)
	}
	logs, err := s.followupsFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	in.Followups = logs[id]
	return in, nil
}

// ListIntroductions returns a snapshot of introductions matching f, ordered
// by ID, each with founder, connector, investor and follow-up logs attached.
// Relations that do not resolve are left nil.
func (s *Store) ListIntroductions(ctx context.Context, f Filter) ([]intro.Introduction, error) {
	var (
		where []string
		args  []any
	)
	if f.FounderID > 0 {
		where = append(where, "i.founder_id = ?")
		args = append(args, f.FounderID)
	}
	if f.NodeID > 0 {
		where = append(where, "i.node_id = ?")
		args = append(args, f.NodeID)
	}
	if f.Status != "" {
		where = append(where, "i.status = ?")
		args = append(args, string(f.Status))
	}
	query := `SELECT ` + introColumns + introFrom
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY i.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing introductions: %w", err)
	}
	defer rows.Close()

	var (
		out []intro.Introduction
		ids []int64
	)
	for rows.Next() {
		in, err := scanIntroduction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning introduction: %w", err)
		}
		out = append(out, *in)
		ids = append(ids, in.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logs, err := s.followupsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Followups = logs[out[i].ID]
	}
	return out, nil
}

// UpdateIntroduction applies p and bumps updated_at. A status change must be
// a legal transition; moving to introduced or a meeting status stamps the
// matching date with today when the caller did not supply one. Passing the
// current status leaves it alone and still applies the other fields.
func (s *Store) UpdateIntroduction(ctx context.Context, id int64, p UpdateParams) (*intro.Introduction, error) {
	cur, err := s.GetIntroduction(ctx, id)
	if err != nil {
		return nil, err
	}
	ts := timeNow()
	today := intro.Today(ts)

	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	setDate := func(col string, v *string) error {
		if v == nil {
			return nil
		}
		if *v != "" {
			if err := intro.ValidateDate(col, *v); err != nil {
				return err
			}
		}
		set(col, nullableString(*v))
		return nil
	}

	if p.Status != nil {
		if err := intro.ValidateTransition(cur.Status, *p.Status); err != nil {
			return nil, err
		}
		if *p.Status == cur.Status {
			p.Status = nil
		}
	}
	if p.Status != nil {
		wasTerminal, _ := intro.IsTerminal(cur.Status)
		staysTerminal, _ := intro.IsTerminal(*p.Status)
		if wasTerminal && !staysTerminal {
			active, err := s.hasActiveIntroduction(ctx, cur.FounderID, cur.InvestorID, id)
			if err != nil {
				return nil, err
			}
			if active {
				return nil, fmt.Errorf("founder %d, investor %d: %w", cur.FounderID, cur.InvestorID, ErrDuplicateActive)
			}
		}
	}
	if p.Status != nil {
		set("status", string(*p.Status))
		switch *p.Status {
		case intro.StatusIntroduced:
			if p.DateIntroduced == nil && cur.DateIntroduced == "" {
				p.DateIntroduced = &today
			}
		case intro.StatusFirstMeetingComplete:
			if p.FirstMeetingDate == nil && cur.FirstMeetingDate == "" {
				p.FirstMeetingDate = &today
			}
		case intro.StatusSecondMeetingComplete:
			if p.SecondMeetingDate == nil && cur.SecondMeetingDate == "" {
				p.SecondMeetingDate = &today
			}
		}
	}
	for _, d := range []struct {
		col string
		v   *string
	}{
		{"date_node_asked", p.DateNodeAsked},
		{"date_introduced", p.DateIntroduced},
		{"first_meeting_date", p.FirstMeetingDate},
		{"second_meeting_date", p.SecondMeetingDate},
		{"next_followup_date", p.NextFollowupDate},
	} {
		if err := setDate(d.col, d.v); err != nil {
			return nil, err
		}
	}
	if p.FollowupOwner != nil {
		if err := intro.ValidateOwner(*p.FollowupOwner); err != nil {
			return nil, err
		}
		set("followup_owner", nullableString(string(*p.FollowupOwner)))
	}
	if p.PassReason != nil {
		set("pass_reason", nullableString(*p.PassReason))
	}
	if p.Notes != nil {
		set("notes", nullableString(*p.Notes))
	}
	if len(sets) == 0 {
		return cur, nil
	}
	set("updated_at", formatTime(ts))
	args = append(args, id)

	if _, err := s.db.ExecContext(ctx,
		`UPDATE introductions SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...,
	); err != nil {
		return nil, fmt.Errorf("updating introduction %d: %w", id, err)
	}
	return s.GetIntroduction(ctx, id)
}

// DeleteIntroduction removes an introduction and its follow-up logs.
func (s *Store) DeleteIntroduction(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM introductions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting introduction %d: %w", id, err)
	}
	return expectOne(res, "introduction", id)
}

func scanIntroduction(r rowScanner) (*intro.Introduction, error) {
	var (
		in                                          intro.Introduction
		status, createdAt, updatedAt                string
		requested, asked, introduced, first, second sql.NullString
		next, last, owner, passReason, notes        sql.NullString

		fID                                  sql.NullInt64
		fName, fEmail, fCompany, fRound      sql.NullString
		nID                                  sql.NullInt64
		nName, nEmail                        sql.NullString
		vID                                  sql.NullInt64
		vName, vFirm, vSite, vStage, vSector sql.NullString
		vNotes, vAt                          sql.NullString
	)
	err := r.Scan(
		&in.ID, &in.FounderID, &in.NodeID, &in.InvestorID, &status,
		&requested, &asked, &introduced, &first, &second,
		&next, &last, &owner, &passReason, &notes, &createdAt, &updatedAt,
		&fID, &fName, &fEmail, &fCompany, &fRound,
		&nID, &nName, &nEmail,
		&vID, &vName, &vFirm, &vSite, &vStage, &vSector, &vNotes, &vAt,
	)
	if err != nil {
		return nil, err
	}

	in.Status = intro.Status(status)
	in.DateRequested = requested.String
	in.DateNodeAsked = asked.String
	in.DateIntroduced = introduced.String
	in.FirstMeetingDate = first.String
	in.SecondMeetingDate = second.String
	in.NextFollowupDate = next.String
	in.LastFollowupDate = last.String
	in.FollowupOwner = intro.Owner(owner.String)
	in.PassReason = passReason.String
	in.Notes = notes.String
	if in.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if in.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	if fID.Valid {
		in.Founder = &intro.Founder{
			ID: fID.Int64, Name: fName.String, Email: fEmail.String,
			Company: fCompany.String, RoundStatus: intro.RoundStatus(fRound.String),
		}
	}
	if nID.Valid {
		in.Node = &intro.Node{ID: nID.Int64, Name: nName.String, Email: nEmail.String}
	}
	if vID.Valid {
		in.Investor = &intro.Investor{
			ID: vID.Int64, Name: vName.String, Firm: vFirm.String, Website: vSite.String,
			StageFocus: vStage.String, SectorFocus: vSector.String,
			ResearchNotes: vNotes.String, ResearchedAt: vAt.String,
		}
	}
	return &in, nil
}
