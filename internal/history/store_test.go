package history

import (
	"path/filepath"
	"testing"
	"time"

	"dayplan/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndCompletions(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	records := []models.CompletionRecord{
		{TaskID: "t1", Title: "pay rent", SourceType: models.SourceEmail, CompletedAt: base},
		{TaskID: "t2", Title: "file report", SourceType: models.SourceDocument, CompletedAt: base.Add(26 * time.Hour)},
		{TaskID: "t3", Title: "call plumber", SourceType: models.SourceManual, CompletedAt: base.Add(48 * time.Hour)},
	}
	for _, r := range records {
		if err := store.Record(r); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := store.Completions(time.Time{})
	if err != nil {
		t.Fatalf("Completions() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}
	for i, r := range got {
		if r.TaskID != records[i].TaskID {
			t.Errorf("record %d TaskID = %q, want %q", i, r.TaskID, records[i].TaskID)
		}
		if !r.CompletedAt.Equal(records[i].CompletedAt) {
			t.Errorf("record %d CompletedAt = %v, want %v", i, r.CompletedAt, records[i].CompletedAt)
		}
		if r.SourceType != records[i].SourceType {
			t.Errorf("record %d SourceType = %q, want %q", i, r.SourceType, records[i].SourceType)
		}
	}
}

func TestCompletionsSince(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		r := models.CompletionRecord{
			TaskID:      "t",
			Title:       "daily review",
			SourceType:  models.SourceManual,
			CompletedAt: base.Add(time.Duration(i) * 24 * time.Hour),
		}
		if err := store.Record(r); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := store.Completions(base.Add(3 * 24 * time.Hour))
	if err != nil {
		t.Fatalf("Completions() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d records since cutoff, want 2", len(got))
	}
}

func TestCompletionsEmptyStore(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Completions(time.Time{})
	if err != nil {
		t.Fatalf("Completions() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d records, want 0", len(got))
	}
}
