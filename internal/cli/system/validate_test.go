package system

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/cortisol/internal/cli"
	"github.com/julianstephens/cortisol/internal/engine"
	"github.com/julianstephens/cortisol/internal/history"
	"github.com/julianstephens/cortisol/internal/models"
	"github.com/julianstephens/cortisol/internal/storage"
)

func newEntry(e *engine.Engine, date string, mood int) models.Entry {
	draft := e.NewDraft()
	draft.Mood = mood
	return models.NewEntry("", date, draft, e.ComputeDerived(draft))
}

func setupHistoryContext(t *testing.T, h models.History) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := storage.NewMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if err := history.NewRepository(store).Save(h); err != nil {
		t.Fatal(err)
	}
	out := &bytes.Buffer{}
	return &cli.Context{Store: store, Engine: engine.Default(), Out: out}, out
}

func TestValidateCmd_Clean(t *testing.T) {
	e := engine.Default()
	ctx, out := setupHistoryContext(t, models.History{newEntry(e, "2024-03-01", 4)})

	if err := (&ValidateCmd{}).Run(ctx); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if strings.TrimSpace(out.String()) != "No conflicts detected." {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestValidateCmd_ReportOnly(t *testing.T) {
	e := engine.Default()
	h := models.History{newEntry(e, "2024-03-01", 4), newEntry(e, "2024-03-01", 2)}
	ctx, out := setupHistoryContext(t, h)

	if err := (&ValidateCmd{}).Run(ctx); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out.String(), "2 entries recorded on 2024-03-01") {
		t.Errorf("expected duplicate report, got %q", out.String())
	}

	stored, _ := ctx.History().Load()
	if len(stored) != 2 {
		t.Errorf("history changed without --fix: %d entries", len(stored))
	}
}

func TestValidateCmd_Fix(t *testing.T) {
	e := engine.Default()
	broken := newEntry(e, "2024-03-02", 5)
	broken.Score = 99
	h := models.History{
		newEntry(e, "2024-03-01", 4),
		newEntry(e, "2024-03-01", 2),
		broken,
	}
	ctx, out := setupHistoryContext(t, h)

	if err := (&ValidateCmd{Fix: true}).Run(ctx); err != nil {
		t.Fatalf("validate --fix failed: %v", err)
	}

	stored, err := ctx.History().Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 entries after fix, got %d", len(stored))
	}
	if stored[0].Mood != 4 {
		t.Errorf("expected the first entry of the day to be kept, got mood %d", stored[0].Mood)
	}
	want := e.ComputeDerived(broken.Draft())
	if stored[1].Score != want.Score {
		t.Errorf("score not recomputed: got %d, want %d", stored[1].Score, want.Score)
	}
	if !strings.Contains(out.String(), "Applied fixes:") {
		t.Errorf("expected fix summary, got %q", out.String())
	}
}

func TestValidateCmd_FixLeavesManualProblems(t *testing.T) {
	e := engine.Default()
	bad := newEntry(e, "not-a-date", 3)
	ctx, out := setupHistoryContext(t, models.History{bad})

	if err := (&ValidateCmd{Fix: true}).Run(ctx); err != nil {
		t.Fatalf("validate --fix failed: %v", err)
	}
	if !strings.Contains(out.String(), "Nothing could be fixed automatically.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestMetricsCmd(t *testing.T) {
	e := engine.Default()
	ctx, out := setupHistoryContext(t, models.History{newEntry(e, "2024-03-01", 4)})
	path := filepath.Join(t.TempDir(), "cortisol.prom")

	if err := (&MetricsCmd{Textfile: path}).Run(ctx); err != nil {
		t.Fatalf("metrics failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("textfile not written: %v", err)
	}
	if !strings.Contains(string(data), "cortisol_history_entries 1") {
		t.Errorf("textfile missing entry count:\n%s", data)
	}
	if !strings.Contains(out.String(), "Metrics written to "+path) {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestMetricsCmd_DefaultPath(t *testing.T) {
	ctx, _ := setupHistoryContext(t, models.History{})
	ctx.ConfigDir = t.TempDir()

	if err := (&MetricsCmd{}).Run(ctx); err != nil {
		t.Fatalf("metrics failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(ctx.ConfigDir, "metrics", "cortisol.prom")); err != nil {
		t.Errorf("expected textfile in config dir: %v", err)
	}
}
