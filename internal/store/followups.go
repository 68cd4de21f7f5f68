package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/HendryAvila/introflow/internal/intro"
)

// FollowupParams describes a completed follow-up.
type FollowupParams struct {
	IntroductionID   int64
	Type             intro.FollowupType
	CompletedBy      string
	Notes            string
	NextAction       string
	NextFollowupDate string // optional; replaces the introduction's next follow-up
}

// AddFollowupLog appends a follow-up log, then in a second write sets the
// introduction's last_followup_date to today and bumps updated_at. The two
// writes are not atomic; a crash between them leaves the log without the
// date bump, which the next follow-up repairs.
func (s *Store) AddFollowupLog(ctx context.Context, p FollowupParams) (int64, error) {
	if err := intro.ValidateFollowupType(p.Type); err != nil {
		return 0, err
	}
	if p.CompletedBy == "" {
		return 0, fmt.Errorf("completed_by is required")
	}
	if p.NextFollowupDate != "" {
		if err := intro.ValidateDate("next_followup_date", p.NextFollowupDate); err != nil {
			return 0, err
		}
	}

	ts := timeNow()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO followup_logs
			(introduction_id, followup_type, completed_by, completed_at, notes, next_action)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.IntroductionID, string(p.Type), p.CompletedBy, formatTime(ts),
		nullableString(p.Notes), nullableString(p.NextAction),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting follow-up log: %w", err)
	}
	logID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	query := `UPDATE introductions SET last_followup_date = ?, updated_at = ?`
	args := []any{intro.Today(ts), formatTime(ts)}
	if p.NextFollowupDate != "" {
		query += `, next_followup_date = ?`
		args = append(args, p.NextFollowupDate)
	}
	query += ` WHERE id = ?`
	args = append(args, p.IntroductionID)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return logID, fmt.Errorf("bumping last follow-up date: %w", err)
	}
	return logID, nil
}

// followupsFor loads follow-up logs for the given introductions, keyed by
// introduction ID and ordered by completion time.
func (s *Store) followupsFor(ctx context.Context, ids []int64) (map[int64][]intro.FollowupLog, error) {
	out := make(map[int64][]intro.FollowupLog, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	// SQLite caps bound parameters; chunk large snapshots.
	const chunk = 500
	for start := 0; start < len(ids); start += chunk {
		end := min(start+chunk, len(ids))
		part := ids[start:end]

		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(part)), ",")
		args := make([]any, len(part))
		for i, id := range part {
			args[i] = id
		}
		rows, err := s.db.QueryContext(ctx,
			`SELECT id, introduction_id, followup_type, completed_by, completed_at, notes, next_action
			 FROM followup_logs
			 WHERE introduction_id IN (`+placeholders+`)
			 ORDER BY completed_at, id`, args...)
		if err != nil {
			return nil, fmt.Errorf("loading follow-up logs: %w", err)
		}
		if err := scanFollowups(rows, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func scanFollowups(rows *sql.Rows, out map[int64][]intro.FollowupLog) error {
	defer rows.Close()
	for rows.Next() {
		var (
			f             intro.FollowupLog
			typ, at       string
			notes, action sql.NullString
		)
		if err := rows.Scan(&f.ID, &f.IntroductionID, &typ, &f.CompletedBy, &at, &notes, &action); err != nil {
			return fmt.Errorf("scanning follow-up log: %w", err)
		}
		t, err := parseTime(at)
		if err != nil {
			return err
		}
		f.FollowupType = intro.FollowupType(typ)
		f.CompletedAt = t
		f.Notes = notes.String
		f.NextAction = action.String
		out[f.IntroductionID] = append(out[f.IntroductionID], f)
	}
	return rows.Err()
}
