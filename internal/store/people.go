package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/HendryAvila/introflow/internal/intro"
)

// ─── Founders ────────────────────────────────────────────────────────────────

// CreateFounder inserts a founder and returns its ID. An empty round status
// defaults to pre_round.
func (s *Store) CreateFounder(ctx context.Context, f intro.Founder) (int64, error) {
	if f.Name == "" {
		return 0, fmt.Errorf("founder name is required")
	}
	if f.RoundStatus == "" {
		f.RoundStatus = intro.RoundPre
	}
	if err := intro.ValidateRoundStatus(f.RoundStatus); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO founders (name, email, company, round_status, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		f.Name, nullableString(f.Email), nullableString(f.Company), string(f.RoundStatus), now(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting founder: %w", err)
	}
	return res.LastInsertId()
}

// GetFounder returns a founder by ID.
func (s *Store) GetFounder(ctx context.Context, id int64) (*intro.Founder, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, company, round_status FROM founders WHERE id = ?`, id)
	f, err := scanFounder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("founder %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting founder %d: %w", id, err)
	}
	return f, nil
}

// ListFounders returns every founder ordered by ID.
func (s *Store) ListFounders(ctx context.Context) ([]intro.Founder, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, company, round_status FROM founders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing founders: %w", err)
	}
	defer rows.Close()

	var out []intro.Founder
	for rows.Next() {
		f, err := scanFounder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning founder: %w", err)
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}

// SetRoundStatus updates a founder's fundraising round status.
func (s *Store) SetRoundStatus(ctx context.Context, founderID int64, rs intro.RoundStatus) error {
	if err := intro.ValidateRoundStatus(rs); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE founders SET round_status = ? WHERE id = ?`, string(rs), founderID)
	if err != nil {
		return fmt.Errorf("updating round status: %w", err)
	}
	return expectOne(res, "founder", founderID)
}

func scanFounder(r rowScanner) (*intro.Founder, error) {
	var (
		f              intro.Founder
		email, company sql.NullString
		round          string
	)
	if err := r.Scan(&f.ID, &f.Name, &email, &company, &round); err != nil {
		return nil, err
	}
	f.Email = email.String
	f.Company = company.String
	f.RoundStatus = intro.RoundStatus(round)
	return &f, nil
}

// ─── Connectors (nodes) ─────────────────────────────────────────────────────

// CreateNode inserts a connector and returns its ID.
func (s *Store) CreateNode(ctx context.Context, n intro.Node) (int64, error) {
	if n.Name == "" {
		return 0, fmt.Errorf("connector name is required")
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO nodes (name, email, created_at) VALUES (?, ?, ?)`,
		n.Name, nullableString(n.Email), now(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting connector: %w", err)
	}
	return res.LastInsertId()
}

// ListNodes returns every connector ordered by ID.
func (s *Store) ListNodes(ctx context.Context) ([]intro.Node, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, email FROM nodes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing connectors: %w", err)
	}
	defer rows.Close()

	var out []intro.Node
	for rows.Next() {
		var (
			n     intro.Node
			email sql.NullString
		)
		if err := rows.Scan(&n.ID, &n.Name, &email); err != nil {
			return nil, fmt.Errorf("scanning connector: %w", err)
		}
		n.Email = email.String
		out = append(out, n)
	}
	return out, rows.Err()
}

// ─── Investors ───────────────────────────────────────────────────────────────

// CreateInvestor inserts an investor and returns its ID.
func (s *Store) CreateInvestor(ctx context.Context, inv intro.Investor) (int64, error) {
	if inv.Name == "" {
		return 0, fmt.Errorf("investor name is required")
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO investors (name, firm, website, stage_focus, sector_focus, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		inv.Name, nullableString(inv.Firm), nullableString(inv.Website),
		nullableString(inv.StageFocus), nullableString(inv.SectorFocus), now(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting investor: %w", err)
	}
	return res.LastInsertId()
}

// ListInvestors returns investors ordered by ID. With unresearchedOnly set,
// investors that already carry research notes are skipped. A limit of zero
// or less means no limit.
func (s *Store) ListInvestors(ctx context.Context, unresearchedOnly bool, limit int) ([]intro.Investor, error) {
	query := `SELECT id, name, firm, website, stage_focus, sector_focus, research_notes, researched_at
		FROM investors`
	if unresearchedOnly {
		query += ` WHERE researched_at IS NULL`
	}
	query += ` ORDER BY id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing investors: %w", err)
	}
	defer rows.Close()

	var out []intro.Investor
	for rows.Next() {
		inv, err := scanInvestor(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning investor: %w", err)
		}
		out = append(out, *inv)
	}
	return out, rows.Err()
}

// SaveInvestorResearch stores research notes for an investor and stamps
// researched_at with the current date.
func (s *Store) SaveInvestorResearch(ctx context.Context, investorID int64, notes string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE investors SET research_notes = ?, researched_at = ? WHERE id = ?`,
		notes, intro.DateOf(timeNow()), investorID)
	if err != nil {
		return fmt.Errorf("saving investor research: %w", err)
	}
	return expectOne(res, "investor", investorID)
}

func scanInvestor(r rowScanner) (*intro.Investor, error) {
	var (
		inv                                     intro.Investor
		firm, website, stage, sector, notes, at sql.NullString
	)
	if err := r.Scan(&inv.ID, &inv.Name, &firm, &website, &stage, &sector, &notes, &at); err != nil {
		return nil, err
	}
	inv.Firm = firm.String
	inv.Website = website.String
	inv.StageFocus = stage.String
	inv.SectorFocus = sector.String
	inv.ResearchNotes = notes.String
	inv.ResearchedAt = at.String
	return &inv, nil
}

func expectOne(res sql.Result, kind string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return nil
}
