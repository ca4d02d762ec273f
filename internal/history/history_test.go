package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/newecon/cleanbrief/internal/store"
)

func testHistory(t *testing.T) (*History, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	h, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h, dbPath
}

func TestMarkPushedAndFilterNew(t *testing.T) {
	h, _ := testHistory(t)

	pushed := []store.Article{
		{Title: "known", URL: "https://a.com", Source: "CBC"},
		{Title: "also known", URL: "https://b.com", Source: "CBC"},
	}
	if err := h.MarkPushed(pushed); err != nil {
		t.Fatalf("MarkPushed: %v", err)
	}

	candidates := []store.Article{
		{Title: "fresh", URL: "https://c.com"},
		{Title: "known", URL: "https://a.com"},
		{Title: "another fresh", URL: "https://d.com"},
	}
	fresh, err := h.FilterNew(candidates)
	if err != nil {
		t.Fatalf("FilterNew: %v", err)
	}

	if len(fresh) != 2 {
		t.Fatalf("expected 2 fresh articles, got %d", len(fresh))
	}
	if fresh[0].URL != "https://c.com" || fresh[1].URL != "https://d.com" {
		t.Errorf("fresh articles out of order: %+v", fresh)
	}
}

func TestFilterNewEmpty(t *testing.T) {
	h, _ := testHistory(t)
	fresh, err := h.FilterNew(nil)
	if err != nil {
		t.Fatalf("FilterNew(nil): %v", err)
	}
	if fresh != nil {
		t.Errorf("expected nil for empty input, got %v", fresh)
	}
}

func TestMarkPushedSkipsEmptyURL(t *testing.T) {
	h, _ := testHistory(t)
	if err := h.MarkPushed([]store.Article{{Title: "no url"}}); err != nil {
		t.Fatalf("MarkPushed: %v", err)
	}

	fresh, err := h.FilterNew([]store.Article{{Title: "no url"}})
	if err != nil {
		t.Fatalf("FilterNew: %v", err)
	}
	if len(fresh) != 1 {
		t.Errorf("article without URL should not be recorded as pushed")
	}
}

func TestNeedsRun(t *testing.T) {
	h, _ := testHistory(t)

	if !h.NeedsRun(time.Hour) {
		t.Error("fresh db should always need a run")
	}
	if err := h.SetLastRun(); err != nil {
		t.Fatalf("SetLastRun: %v", err)
	}
	if h.NeedsRun(time.Hour) {
		t.Error("run just recorded, interval not elapsed")
	}
	if !h.NeedsRun(0) {
		t.Error("zero interval should always need a run")
	}
}

func TestPrune(t *testing.T) {
	h, _ := testHistory(t)

	if err := h.MarkPushed([]store.Article{{URL: "https://old.com"}}); err != nil {
		t.Fatalf("MarkPushed: %v", err)
	}
	// Backdate the record so a short retention catches it.
	_, err := h.writeDB.Exec("UPDATE pushed SET pushed_at = ?", time.Now().Add(-48*time.Hour))
	if err != nil {
		t.Fatalf("backdating: %v", err)
	}

	deleted, err := h.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	fresh, err := h.FilterNew([]store.Article{{URL: "https://old.com"}})
	if err != nil {
		t.Fatalf("FilterNew: %v", err)
	}
	if len(fresh) != 1 {
		t.Error("pruned URL should be treated as new again")
	}
}

func TestStats(t *testing.T) {
	h, dbPath := testHistory(t)

	if err := h.MarkPushed([]store.Article{{URL: "https://a.com"}, {URL: "https://b.com"}}); err != nil {
		t.Fatalf("MarkPushed: %v", err)
	}

	count, size, err := h.Stats(dbPath)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if size <= 0 {
		t.Errorf("size = %d, want > 0", size)
	}
}
