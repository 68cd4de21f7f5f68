package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/HendryAvila/introflow/internal/intro"
	"github.com/HendryAvila/introflow/internal/store"
)

const seedYAML = `
founders:
  - id: 1
    name: Ana
    company: Acme
    round_status: round_open
nodes:
  - id: 10
    name: Nico
investors:
  - id: 100
    name: Vera
    firm: Seedcap
introductions:
  - id: 1000
    founder_id: 1
    node_id: 10
    investor_id: 100
    status: circle_back_round_opens
    date_requested: "2024-05-01"
    next_followup_date: "2024-06-20"
    followup_owner: admin
    created_at: "2024-05-01T09:00:00Z"
    updated_at: "2024-05-02T09:00:00Z"
    followups:
      - type: connector-check
        completed_by: admin
        completed_at: "2024-05-02T09:00:00Z"
`

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("writing seed: %v", err)
	}
	return path
}

func TestImport_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seed, err := store.LoadSeedFile(writeSeed(t, seedYAML))
	if err != nil {
		t.Fatalf("LoadSeedFile: %v", err)
	}
	res, err := s.Import(ctx, seed)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Founders != 1 || res.Nodes != 1 || res.Investors != 1 || res.Introductions != 1 || res.Followups != 1 {
		t.Errorf("result = %+v", res)
	}

	in, err := s.GetIntroduction(ctx, 1000)
	if err != nil {
		t.Fatalf("GetIntroduction: %v", err)
	}
	if in.Status != intro.StatusCircleBack || in.FollowupOwner != intro.OwnerAdmin {
		t.Errorf("introduction = %+v", in)
	}
	if in.Founder == nil || in.Founder.RoundStatus != intro.RoundOpen {
		t.Errorf("founder = %+v", in.Founder)
	}
	if !intro.HasBeenActedOn(in) {
		t.Error("seeded timestamps should be preserved")
	}
	if len(in.Followups) != 1 {
		t.Errorf("followups = %d, want 1", len(in.Followups))
	}
}

func TestImport_IsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed, _ := store.LoadSeedFile(writeSeed(t, seedYAML))

	if _, err := s.Import(ctx, seed); err != nil {
		t.Fatalf("first import: %v", err)
	}
	if _, err := s.Import(ctx, seed); err != nil {
		t.Fatalf("second import: %v", err)
	}
	all, _ := s.ListIntroductions(ctx, store.Filter{})
	if len(all) != 1 || len(all[0].Followups) != 1 {
		t.Errorf("after re-import: %d introductions, %d logs", len(all), len(all[0].Followups))
	}
}

func TestImport_RejectsInvalidRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed := &store.Seed{
		Introductions: []store.SeedIntroduction{{ID: 1, FounderID: 1, NodeID: 1, InvestorID: 1, Status: "lost"}},
	}
	if _, err := s.Import(ctx, seed); !errors.Is(err, intro.ErrInvalidStatus) {
		t.Errorf("error = %v, want ErrInvalidStatus", err)
	}

	seed = &store.Seed{
		Introductions: []store.SeedIntroduction{{
			ID: 1, FounderID: 1, NodeID: 1, InvestorID: 1,
			CreatedAt: "2024-05-02T00:00:00Z", UpdatedAt: "2024-05-01T00:00:00Z",
		}},
	}
	if _, err := s.Import(ctx, seed); !errors.Is(err, intro.ErrTimestampOrder) {
		t.Errorf("error = %v, want ErrTimestampOrder", err)
	}

	all, _ := s.ListIntroductions(ctx, store.Filter{})
	if len(all) != 0 {
		t.Errorf("rejected import wrote %d rows", len(all))
	}
}

func TestImport_RejectsDuplicateActivePair(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed := &store.Seed{
		Founders:  []intro.Founder{{ID: 1, Name: "Ana"}},
		Nodes:     []intro.Node{{ID: 1, Name: "Nico"}},
		Investors: []intro.Investor{{ID: 1, Name: "Vera"}},
		Introductions: []store.SeedIntroduction{
			{ID: 1, FounderID: 1, NodeID: 1, InvestorID: 1, Status: intro.StatusIntroduced},
			{ID: 2, FounderID: 1, NodeID: 1, InvestorID: 1, Status: intro.StatusIntroRequestSent},
		},
	}
	if _, err := s.Import(ctx, seed); !errors.Is(err, store.ErrDuplicateActive) {
		t.Errorf("error = %v, want ErrDuplicateActive", err)
	}
	if founders, _ := s.ListFounders(ctx); len(founders) != 0 {
		t.Errorf("rejected import wrote %d founders", len(founders))
	}

	// A terminal row for the same pair is fine.
	seed.Introductions[1].Status = intro.StatusPassed
	if _, err := s.Import(ctx, seed); err != nil {
		t.Fatalf("Import: %v", err)
	}
}

func TestImport_RejectsPairActiveInDatabase(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	fx := seedPeople(t, s)
	if _, err := s.CreateIntroduction(ctx, store.CreateParams{FounderID: fx.founder, NodeID: fx.node, InvestorID: fx.investor}); err != nil {
		t.Fatalf("CreateIntroduction: %v", err)
	}

	seed := &store.Seed{Introductions: []store.SeedIntroduction{{
		ID: 500, FounderID: fx.founder, NodeID: fx.node, InvestorID: fx.investor,
		Status: intro.StatusFirstMeetingComplete,
	}}}
	if _, err := s.Import(ctx, seed); !errors.Is(err, store.ErrDuplicateActive) {
		t.Errorf("error = %v, want ErrDuplicateActive", err)
	}
	if _, err := s.GetIntroduction(ctx, 500); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("rejected import left introduction 500 behind: %v", err)
	}
}

func TestLoadSeedFile_Errors(t *testing.T) {
	if _, err := store.LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := store.LoadSeedFile(writeSeed(t, "founders: [")); err == nil {
		t.Error("expected parse error")
	}
}
