package server

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HendryAvila/introflow/internal/config"
)

func TestNew_OpensStoreInDataDir(t *testing.T) {
	dir := t.TempDir()
	s, cleanup, err := New(config.Config{DataDir: dir, ResearchBatch: 5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cleanup()

	if s == nil {
		t.Fatal("expected server")
	}
	if _, err := os.Stat(filepath.Join(dir, "introflow.db")); err != nil {
		t.Errorf("database not created: %v", err)
	}
}

func TestNew_BadDataDirReturnsNoopCleanup(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, cleanup, err := New(config.Config{DataDir: file, ResearchBatch: 5})
	if err == nil {
		t.Fatal("expected error for data dir that is a file")
	}
	if cleanup == nil {
		t.Fatal("cleanup must never be nil")
	}
	cleanup()
}

func TestServerInstructions_NamesEveryTool(t *testing.T) {
	text := serverInstructions()
	for _, name := range []string{
		"intro_founder_tasks", "intro_connector_tasks", "intro_admin_digest",
		"intro_pending_founders", "intro_request", "intro_update_status",
		"intro_log_followup", "intro_pipeline_stats", "intro_pipeline_trends",
	} {
		if !strings.Contains(text, name) {
			t.Errorf("instructions do not mention %s", name)
		}
	}
}
