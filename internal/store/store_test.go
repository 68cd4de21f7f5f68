package store_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/HendryAvila/introflow/internal/intro"
	"github.com/HendryAvila/introflow/internal/store"
)

// newTestStore creates a Store backed by a temp directory for isolation.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(store.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// clock pins the store clock to a mutable instant for the test.
func clock(t *testing.T, start time.Time) *time.Time {
	t.Helper()
	cur := start
	restore := store.SetNow(func() time.Time { return cur })
	t.Cleanup(restore)
	return &cur
}

type fixture struct {
	founder, node, investor int64
}

func seedPeople(t *testing.T, s *store.Store) fixture {
	t.Helper()
	ctx := context.Background()
	f, err := s.CreateFounder(ctx, intro.Founder{Name: "Ana", Company: "Acme"})
	if err != nil {
		t.Fatalf("CreateFounder: %v", err)
	}
	n, err := s.CreateNode(ctx, intro.Node{Name: "Nico"})
	if err != nil {
		t.Fatalf("CreateNode: %v", err)
	}
	v, err := s.CreateInvestor(ctx, intro.Investor{Name: "Vera", Firm: "Seedcap"})
	if err != nil {
		t.Fatalf("CreateInvestor: %v", err)
	}
	return fixture{founder: f, node: n, investor: v}
}

// ─── New / Initialization ───────────────────────────────────────────────────

func TestNew_CreatesDBFile(t *testing.T) {
	dir := t.TempDir()
	s, err := store.New(store.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(filepath.Join(dir, "introflow.db")); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestNew_ForeignKeysEnabled(t *testing.T) {
	s := newTestStore(t)
	var fk int
	if err := s.DB().QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("PRAGMA foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestNew_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	s, err := store.New(store.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := s.CreateFounder(context.Background(), intro.Founder{Name: "Ana"}); err != nil {
		t.Fatalf("CreateFounder: %v", err)
	}
	s.Close()

	s2, err := store.New(store.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	founders, err := s2.ListFounders(context.Background())
	if err != nil {
		t.Fatalf("ListFounders: %v", err)
	}
	if len(founders) != 1 {
		t.Errorf("got %d founders after reopen, want 1", len(founders))
	}
}

// ─── People ──────────────────────────────────────────────────────────────────

func TestCreateFounder_DefaultsRoundStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id, err := s.CreateFounder(ctx, intro.Founder{Name: "Ana"})
	if err != nil {
		t.Fatalf("CreateFounder: %v", err)
	}
	f, err := s.GetFounder(ctx, id)
	if err != nil {
		t.Fatalf("GetFounder: %v", err)
	}
	if f.RoundStatus != intro.RoundPre {
		t.Errorf("round status = %s, want pre_round", f.RoundStatus)
	}

	if err := s.SetRoundStatus(ctx, id, intro.RoundOpen); err != nil {
		t.Fatalf("SetRoundStatus: %v", err)
	}
	f, _ = s.GetFounder(ctx, id)
	if f.RoundStatus != intro.RoundOpen {
		t.Errorf("round status = %s, want round_open", f.RoundStatus)
	}
}

func TestSetRoundStatus_Invalid(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id, _ := s.CreateFounder(ctx, intro.Founder{Name: "Ana"})
	if err := s.SetRoundStatus(ctx, id, "raising"); !errors.Is(err, intro.ErrInvalidRoundStatus) {
		t.Errorf("error = %v, want ErrInvalidRoundStatus", err)
	}
	if err := s.SetRoundStatus(ctx, 999, intro.RoundOpen); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListNodes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if nodes, err := s.ListNodes(ctx); err != nil || len(nodes) != 0 {
		t.Fatalf("ListNodes on empty store = %v, %v", nodes, err)
	}
	s.CreateNode(ctx, intro.Node{Name: "Nico", Email: "nico@example.com"})
	s.CreateNode(ctx, intro.Node{Name: "Omar"})
	if _, err := s.CreateNode(ctx, intro.Node{}); err == nil {
		t.Error("expected error for missing connector name")
	}

	nodes, err := s.ListNodes(ctx)
	if err != nil {
		t.Fatalf("ListNodes: %v", err)
	}
	if len(nodes) != 2 || nodes[0].Name != "Nico" || nodes[0].Email != "nico@example.com" || nodes[1].Name != "Omar" {
		t.Errorf("nodes = %+v", nodes)
	}
}

func TestGetFounder_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetFounder(context.Background(), 42); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestInvestorResearch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	clock(t, time.Date(2024, 6, 25, 9, 0, 0, 0, time.UTC))
	a, _ := s.CreateInvestor(ctx, intro.Investor{Name: "A"})
	b, _ := s.CreateInvestor(ctx, intro.Investor{Name: "B"})

	if err := s.SaveInvestorResearch(ctx, a, "fintech, seed"); err != nil {
		t.Fatalf("SaveInvestorResearch: %v", err)
	}
	pending, err := s.ListInvestors(ctx, true, 0)
	if err != nil {
		t.Fatalf("ListInvestors: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != b {
		t.Errorf("unresearched = %+v, want only investor %d", pending, b)
	}

	all, _ := s.ListInvestors(ctx, false, 0)
	if all[0].ResearchNotes != "fintech, seed" || all[0].ResearchedAt != "2024-06-25" {
		t.Errorf("researched investor = %+v", all[0])
	}

	limited, _ := s.ListInvestors(ctx, false, 1)
	if len(limited) != 1 {
		t.Errorf("limit ignored: got %d", len(limited))
	}
}

// ─── Introductions ───────────────────────────────────────────────────────────

func TestCreateIntroduction_Defaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	clock(t, time.Date(2024, 6, 25, 9, 0, 0, 0, time.UTC))
	fx := seedPeople(t, s)

	id, err := s.CreateIntroduction(ctx, store.CreateParams{
		FounderID: fx.founder, NodeID: fx.node, InvestorID: fx.investor,
	})
	if err != nil {
		t.Fatalf("CreateIntroduction: %v", err)
	}
	in, err := s.GetIntroduction(ctx, id)
	if err != nil {
		t.Fatalf("GetIntroduction: %v", err)
	}
	if in.Status != intro.StatusIntroRequestSent {
		t.Errorf("status = %s", in.Status)
	}
	if in.DateRequested != "2024-06-25" {
		t.Errorf("date_requested = %s, want today", in.DateRequested)
	}
	if !in.CreatedAt.Equal(in.UpdatedAt) {
		t.Errorf("created_at %v != updated_at %v", in.CreatedAt, in.UpdatedAt)
	}
	if in.Founder == nil || in.Founder.Name != "Ana" || in.Investor == nil || in.Node == nil {
		t.Errorf("relations not attached: %+v", in)
	}
	if intro.HasBeenActedOn(in) {
		t.Error("fresh introduction should not count as acted on")
	}
}

func TestCreateIntroduction_RejectsDuplicateActive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	clock(t, time.Date(2024, 6, 25, 9, 0, 0, 0, time.UTC))
	fx := seedPeople(t, s)
	p := store.CreateParams{FounderID: fx.founder, NodeID: fx.node, InvestorID: fx.investor}

	id, err := s.CreateIntroduction(ctx, p)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := s.CreateIntroduction(ctx, p); !errors.Is(err, store.ErrDuplicateActive) {
		t.Fatalf("second create error = %v, want ErrDuplicateActive", err)
	}

	passed := intro.StatusPassed
	if _, err := s.UpdateIntroduction(ctx, id, store.UpdateParams{Status: &passed}); err != nil {
		t.Fatalf("UpdateIntroduction: %v", err)
	}
	if _, err := s.CreateIntroduction(ctx, p); err != nil {
		t.Errorf("create after terminal should succeed: %v", err)
	}
}

func TestCreateIntroduction_Validation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	fx := seedPeople(t, s)

	_, err := s.CreateIntroduction(ctx, store.CreateParams{
		FounderID: fx.founder, NodeID: fx.node, InvestorID: fx.investor, DateRequested: "06/25/2024",
	})
	if !errors.Is(err, intro.ErrInvalidDate) {
		t.Errorf("error = %v, want ErrInvalidDate", err)
	}
	_, err = s.CreateIntroduction(ctx, store.CreateParams{
		FounderID: fx.founder, NodeID: fx.node, InvestorID: fx.investor, FollowupOwner: "connector",
	})
	if !errors.Is(err, intro.ErrInvalidOwner) {
		t.Errorf("error = %v, want ErrInvalidOwner", err)
	}
	if _, err := s.CreateIntroduction(ctx, store.CreateParams{FounderID: fx.founder}); err == nil {
		t.Error("expected error for missing references")
	}
}

func TestUpdateIntroduction_BumpsUpdatedAtAndStampsDates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cur := clock(t, time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC))
	fx := seedPeople(t, s)
	id, _ := s.CreateIntroduction(ctx, store.CreateParams{
		FounderID: fx.founder, NodeID: fx.node, InvestorID: fx.investor,
	})

	*cur = time.Date(2024, 6, 22, 9, 0, 0, 0, time.UTC)
	introduced := intro.StatusIntroduced
	in, err := s.UpdateIntroduction(ctx, id, store.UpdateParams{Status: &introduced})
	if err != nil {
		t.Fatalf("UpdateIntroduction: %v", err)
	}
	if in.Status != intro.StatusIntroduced || in.DateIntroduced != "2024-06-22" {
		t.Errorf("got status=%s date_introduced=%s", in.Status, in.DateIntroduced)
	}
	if !in.UpdatedAt.Equal(*cur) {
		t.Errorf("updated_at = %v, want %v", in.UpdatedAt, *cur)
	}
	if !intro.HasBeenActedOn(in) {
		t.Error("updated introduction should count as acted on")
	}
}

func TestUpdateIntroduction_RejectsIllegalTransition(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	fx := seedPeople(t, s)
	id, _ := s.CreateIntroduction(ctx, store.CreateParams{
		FounderID: fx.founder, NodeID: fx.node, InvestorID: fx.investor,
	})
	introduced := intro.StatusIntroduced
	if _, err := s.UpdateIntroduction(ctx, id, store.UpdateParams{Status: &introduced}); err != nil {
		t.Fatalf("UpdateIntroduction: %v", err)
	}
	sent := intro.StatusIntroRequestSent
	if _, err := s.UpdateIntroduction(ctx, id, store.UpdateParams{Status: &sent}); !errors.Is(err, intro.ErrInvalidTransition) {
		t.Errorf("error = %v, want ErrInvalidTransition", err)
	}
	bad := intro.Status("lost")
	if _, err := s.UpdateIntroduction(ctx, id, store.UpdateParams{Status: &bad}); !errors.Is(err, intro.ErrInvalidStatus) {
		t.Errorf("error = %v, want ErrInvalidStatus", err)
	}
	if _, err := s.UpdateIntroduction(ctx, 999, store.UpdateParams{Status: &bad}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdateIntroduction_SameStatusStillAppliesDates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cur := clock(t, time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC))
	fx := seedPeople(t, s)
	id, _ := s.CreateIntroduction(ctx, store.CreateParams{
		FounderID: fx.founder, NodeID: fx.node, InvestorID: fx.investor,
	})
	introduced := intro.StatusIntroduced
	if _, err := s.UpdateIntroduction(ctx, id, store.UpdateParams{Status: &introduced}); err != nil {
		t.Fatalf("UpdateIntroduction: %v", err)
	}

	*cur = cur.Add(time.Hour)
	fixed := "2024-06-18"
	in, err := s.UpdateIntroduction(ctx, id, store.UpdateParams{Status: &introduced, DateIntroduced: &fixed})
	if err != nil {
		t.Fatalf("same-status update: %v", err)
	}
	if in.Status != intro.StatusIntroduced || in.DateIntroduced != fixed {
		t.Errorf("got status=%s date_introduced=%s, want introduced and %s", in.Status, in.DateIntroduced, fixed)
	}
	if !in.UpdatedAt.Equal(*cur) {
		t.Errorf("updated_at = %v, want %v", in.UpdatedAt, *cur)
	}
}

func TestUpdateIntroduction_ReopensTerminal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	clock(t, time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC))
	fx := seedPeople(t, s)
	id, _ := s.CreateIntroduction(ctx, store.CreateParams{
		FounderID: fx.founder, NodeID: fx.node, InvestorID: fx.investor,
	})
	ignored := intro.StatusIgnored
	if _, err := s.UpdateIntroduction(ctx, id, store.UpdateParams{Status: &ignored}); err != nil {
		t.Fatalf("ignore: %v", err)
	}

	introduced := intro.StatusIntroduced
	in, err := s.UpdateIntroduction(ctx, id, store.UpdateParams{Status: &introduced})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if in.Status != intro.StatusIntroduced || in.DateIntroduced != "2024-06-20" {
		t.Errorf("got status=%s date_introduced=%s", in.Status, in.DateIntroduced)
	}
}

func TestUpdateIntroduction_ReopenRejectsDuplicateActive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	fx := seedPeople(t, s)
	first, _ := s.CreateIntroduction(ctx, store.CreateParams{
		FounderID: fx.founder, NodeID: fx.node, InvestorID: fx.investor,
	})
	passed := intro.StatusPassed
	if _, err := s.UpdateIntroduction(ctx, first, store.UpdateParams{Status: &passed}); err != nil {
		t.Fatalf("pass: %v", err)
	}
	if _, err := s.CreateIntroduction(ctx, store.CreateParams{
		FounderID: fx.founder, NodeID: fx.node, InvestorID: fx.investor,
	}); err != nil {
		t.Fatalf("second request: %v", err)
	}

	circle := intro.StatusCircleBack
	if _, err := s.UpdateIntroduction(ctx, first, store.UpdateParams{Status: &circle}); !errors.Is(err, store.ErrDuplicateActive) {
		t.Errorf("error = %v, want ErrDuplicateActive", err)
	}
	notAFit := intro.StatusNotAFit
	if _, err := s.UpdateIntroduction(ctx, first, store.UpdateParams{Status: &notAFit}); err != nil {
		t.Errorf("terminal to terminal: %v", err)
	}
}

func TestUpdateIntroduction_NoChangesIsNoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cur := clock(t, time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC))
	fx := seedPeople(t, s)
	id, _ := s.CreateIntroduction(ctx, store.CreateParams{
		FounderID: fx.founder, NodeID: fx.node, InvestorID: fx.investor,
	})
	*cur = cur.Add(time.Hour)
	in, err := s.UpdateIntroduction(ctx, id, store.UpdateParams{})
	if err != nil {
		t.Fatalf("UpdateIntroduction: %v", err)
	}
	if !in.UpdatedAt.Equal(in.CreatedAt) {
		t.Error("empty update should not bump updated_at")
	}
}

func TestListIntroductions_Filters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	fx := seedPeople(t, s)
	other, _ := s.CreateFounder(ctx, intro.Founder{Name: "Ben"})
	inv2, _ := s.CreateInvestor(ctx, intro.Investor{Name: "W"})

	s.CreateIntroduction(ctx, store.CreateParams{FounderID: fx.founder, NodeID: fx.node, InvestorID: fx.investor})
	s.CreateIntroduction(ctx, store.CreateParams{FounderID: fx.founder, NodeID: fx.node, InvestorID: inv2})
	s.CreateIntroduction(ctx, store.CreateParams{FounderID: other, NodeID: fx.node, InvestorID: fx.investor})

	all, err := s.ListIntroductions(ctx, store.Filter{})
	if err != nil {
		t.Fatalf("ListIntroductions: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all = %d, want 3", len(all))
	}
	mine, _ := s.ListIntroductions(ctx, store.Filter{FounderID: fx.founder})
	if len(mine) != 2 {
		t.Errorf("founder filter = %d, want 2", len(mine))
	}
	byNode, _ := s.ListIntroductions(ctx, store.Filter{NodeID: fx.node, Status: intro.StatusIntroRequestSent})
	if len(byNode) != 3 {
		t.Errorf("node+status filter = %d, want 3", len(byNode))
	}
}

func TestListIntroductions_MissingRelationIsNil(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	fx := seedPeople(t, s)
	// Founder 77 does not exist; the row must still load.
	if _, err := s.CreateIntroduction(ctx, store.CreateParams{FounderID: 77, NodeID: fx.node, InvestorID: fx.investor}); err != nil {
		t.Fatalf("CreateIntroduction: %v", err)
	}
	all, err := s.ListIntroductions(ctx, store.Filter{})
	if err != nil {
		t.Fatalf("ListIntroductions: %v", err)
	}
	if all[0].Founder != nil {
		t.Errorf("founder = %+v, want nil", all[0].Founder)
	}
	if all[0].Investor == nil {
		t.Error("investor should still resolve")
	}
}

// ─── Follow-ups ──────────────────────────────────────────────────────────────

func TestAddFollowupLog_BumpsLastFollowup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cur := clock(t, time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC))
	fx := seedPeople(t, s)
	id, _ := s.CreateIntroduction(ctx, store.CreateParams{FounderID: fx.founder, NodeID: fx.node, InvestorID: fx.investor})

	*cur = time.Date(2024, 6, 24, 15, 0, 0, 0, time.UTC)
	if _, err := s.AddFollowupLog(ctx, store.FollowupParams{
		IntroductionID:   id,
		Type:             intro.FollowupConnectorUpdate,
		CompletedBy:      "Ana",
		Notes:            "told Nico about the meeting",
		NextFollowupDate: "2024-07-01",
	}); err != nil {
		t.Fatalf("AddFollowupLog: %v", err)
	}

	in, _ := s.GetIntroduction(ctx, id)
	if in.LastFollowupDate != "2024-06-24" {
		t.Errorf("last_followup_date = %s", in.LastFollowupDate)
	}
	if in.NextFollowupDate != "2024-07-01" {
		t.Errorf("next_followup_date = %s", in.NextFollowupDate)
	}
	if !in.HasFollowup(intro.FollowupConnectorUpdate) || len(in.Followups) != 1 {
		t.Errorf("followups = %+v", in.Followups)
	}
	if !in.UpdatedAt.Equal(*cur) {
		t.Errorf("updated_at = %v, want %v", in.UpdatedAt, *cur)
	}
}

func TestAddFollowupLog_Validation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	fx := seedPeople(t, s)
	id, _ := s.CreateIntroduction(ctx, store.CreateParams{FounderID: fx.founder, NodeID: fx.node, InvestorID: fx.investor})

	if _, err := s.AddFollowupLog(ctx, store.FollowupParams{IntroductionID: id, Type: "ping", CompletedBy: "x"}); !errors.Is(err, intro.ErrInvalidFollowupType) {
		t.Errorf("error = %v, want ErrInvalidFollowupType", err)
	}
	if _, err := s.AddFollowupLog(ctx, store.FollowupParams{IntroductionID: id, Type: intro.FollowupConnectorCheck}); err == nil {
		t.Error("expected error for missing completed_by")
	}
	if _, err := s.AddFollowupLog(ctx, store.FollowupParams{IntroductionID: 999, Type: intro.FollowupConnectorCheck, CompletedBy: "x"}); err == nil {
		t.Error("expected foreign key error for unknown introduction")
	}
}

func TestDeleteIntroduction_CascadesLogs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	fx := seedPeople(t, s)
	id, _ := s.CreateIntroduction(ctx, store.CreateParams{FounderID: fx.founder, NodeID: fx.node, InvestorID: fx.investor})
	s.AddFollowupLog(ctx, store.FollowupParams{IntroductionID: id, Type: intro.FollowupConnectorCheck, CompletedBy: "x"})

	// Hold one pooled connection so the delete runs on another.
	held, err := s.DB().Conn(ctx)
	if err != nil {
		t.Fatalf("Conn: %v", err)
	}
	defer held.Close()

	if err := s.DeleteIntroduction(ctx, id); err != nil {
		t.Fatalf("DeleteIntroduction: %v", err)
	}
	var n int
	if err := held.QueryRowContext(ctx, "SELECT COUNT(*) FROM followup_logs").Scan(&n); err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if n != 0 {
		t.Errorf("followup_logs = %d after delete, want 0", n)
	}
	if err := s.DeleteIntroduction(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestNew_EveryPooledConnHasPragmas(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.DB().Conn(ctx)
	if err != nil {
		t.Fatalf("Conn: %v", err)
	}
	defer first.Close()
	second, err := s.DB().Conn(ctx)
	if err != nil {
		t.Fatalf("Conn: %v", err)
	}
	defer second.Close()

	for name, c := range map[string]*sql.Conn{"first": first, "second": second} {
		var fk, timeout int
		if err := c.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk); err != nil {
			t.Fatalf("%s: PRAGMA foreign_keys: %v", name, err)
		}
		if err := c.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout); err != nil {
			t.Fatalf("%s: PRAGMA busy_timeout: %v", name, err)
		}
		if fk != 1 || timeout != 5000 {
			t.Errorf("%s conn: foreign_keys=%d busy_timeout=%d, want 1 and 5000", name, fk, timeout)
		}
	}
}

func TestAddFollowupLog_UnknownIntroductionOnSecondConn(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	held, err := s.DB().Conn(ctx)
	if err != nil {
		t.Fatalf("Conn: %v", err)
	}
	defer held.Close()

	if _, err := s.AddFollowupLog(ctx, store.FollowupParams{IntroductionID: 4242, Type: intro.FollowupConnectorCheck, CompletedBy: "x"}); err == nil {
		t.Error("expected foreign key error for unknown introduction")
	}
}
