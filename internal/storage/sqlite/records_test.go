package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ahasite/sitediary/internal/models"
	"github.com/ahasite/sitediary/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecord(id, date string, status models.Status) models.Record {
	return models.Record{
		ID:           id,
		ProjectTitle: "Harbor Bridge",
		ContractID:   "C-100",
		SiteLocation: "North Pier",
		Date:         date,
		Title:        "Entry " + id,
		Weather: models.Weather{
			Temperature:   "10-20°C",
			Sky:           "Overcast",
			Precipitation: "None",
			Wind:          "Calm",
		},
		WorkingHours: models.WorkingHours{StartTime: "07:00", EndTime: "16:30"},
		Tasks: []models.Task{
			{Description: "Site Inspection", Equipment: []string{"Safety Gear"}, Quantity: 1, Unit: "Hours"},
		},
		Status: status,
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	rec := testRecord("rec-1", "2025-06-14", models.StatusDraft)
	saved, err := store.Put(rec)
	if err != nil {
		t.Fatalf("failed to put record: %v", err)
	}
	if saved.LastModified.IsZero() {
		t.Error("expected Put to refresh lastModified")
	}

	got, err := store.Get("rec-1")
	if err != nil {
		t.Fatalf("failed to get record: %v", err)
	}
	if got.ProjectTitle != rec.ProjectTitle || got.Weather.Sky != rec.Weather.Sky {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].Description != "Site Inspection" {
		t.Errorf("tasks did not survive round trip: %+v", got.Tasks)
	}
	if !got.LastModified.Equal(saved.LastModified) {
		t.Errorf("expected lastModified %v, got %v", saved.LastModified, got.LastModified)
	}
}

func TestPutPreservesCreatedAt(t *testing.T) {
	store := setupTestStore(t)

	first, err := store.Put(testRecord("rec-1", "2025-06-14", models.StatusDraft))
	if err != nil {
		t.Fatalf("failed to put record: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	updated := testRecord("rec-1", "2025-06-14", models.StatusSubmitted)
	second, err := store.Put(updated)
	if err != nil {
		t.Fatalf("failed to overwrite record: %v", err)
	}

	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("createdAt changed on overwrite: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
	if !second.LastModified.After(first.LastModified) {
		t.Errorf("lastModified did not advance: %v -> %v", first.LastModified, second.LastModified)
	}

	got, err := store.Get("rec-1")
	if err != nil {
		t.Fatalf("failed to get record: %v", err)
	}
	if got.Status != models.StatusSubmitted {
		t.Errorf("overwrite did not replace record, status = %s", got.Status)
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get("no-such-id")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestQueryByStatus(t *testing.T) {
	store := setupTestStore(t)

	for _, rec := range []models.Record{
		testRecord("rec-1", "2025-06-14", models.StatusDraft),
		testRecord("rec-2", "2025-06-15", models.StatusSubmitted),
		testRecord("rec-3", "2025-06-16", models.StatusDraft),
	} {
		if _, err := store.Put(rec); err != nil {
			t.Fatalf("failed to put record %s: %v", rec.ID, err)
		}
	}

	drafts, err := store.QueryByStatus(models.StatusDraft)
	if err != nil {
		t.Fatalf("failed to query by status: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}
	for _, r := range drafts {
		if r.Status != models.StatusDraft {
			t.Errorf("draft query returned record with status %s", r.Status)
		}
	}

	submitted, err := store.QueryByStatus(models.StatusSubmitted)
	if err != nil {
		t.Fatalf("failed to query by status: %v", err)
	}
	if len(submitted) != 1 || submitted[0].ID != "rec-2" {
		t.Errorf("unexpected submitted set: %+v", submitted)
	}
}

func TestQueryByDateRange(t *testing.T) {
	store := setupTestStore(t)

	for _, rec := range []models.Record{
		testRecord("rec-1", "2025-06-10", models.StatusDraft),
		testRecord("rec-2", "2025-06-15", models.StatusDraft),
		testRecord("rec-3", "2025-06-20", models.StatusDraft),
	} {
		if _, err := store.Put(rec); err != nil {
			t.Fatalf("failed to put record %s: %v", rec.ID, err)
		}
	}

	got, err := store.QueryByDateRange("2025-06-12", "2025-06-18")
	if err != nil {
		t.Fatalf("failed to query by date range: %v", err)
	}
	if len(got) != 1 || got[0].ID != "rec-2" {
		t.Errorf("expected only rec-2 in range, got %+v", got)
	}

	// Bounds are inclusive
	got, err = store.QueryByDateRange("2025-06-10", "2025-06-20")
	if err != nil {
		t.Fatalf("failed to query by date range: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected all 3 records in inclusive range, got %d", len(got))
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.Put(testRecord("rec-1", "2025-06-14", models.StatusDraft)); err != nil {
		t.Fatalf("failed to put record: %v", err)
	}

	if err := store.Delete("rec-1"); err != nil {
		t.Fatalf("failed to delete record: %v", err)
	}
	if _, err := store.Get("rec-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleted record must be gone from every index query
	byStatus, err := store.QueryByStatus(models.StatusDraft)
	if err != nil {
		t.Fatalf("failed to query by status: %v", err)
	}
	byDate, err := store.QueryByDateRange("2025-06-01", "2025-06-30")
	if err != nil {
		t.Fatalf("failed to query by date range: %v", err)
	}
	if len(byStatus) != 0 || len(byDate) != 0 {
		t.Errorf("deleted record still visible in index queries: %d by status, %d by date", len(byStatus), len(byDate))
	}

	// Second delete of the same id succeeds
	if err := store.Delete("rec-1"); err != nil {
		t.Errorf("expected idempotent delete, got %v", err)
	}
	if err := store.Delete("never-existed"); err != nil {
		t.Errorf("expected delete of unknown id to succeed, got %v", err)
	}
}

func TestDurabilityAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	if _, err := store.Put(testRecord("rec-1", "2025-06-14", models.StatusSubmitted)); err != nil {
		t.Fatalf("failed to put record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	reopened := NewStore(dbPath)
	if err := reopened.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get("rec-1")
	if err != nil {
		t.Fatalf("record did not survive reopen: %v", err)
	}
	if got.Status != models.StatusSubmitted {
		t.Errorf("unexpected status after reopen: %s", got.Status)
	}
}

func TestPutEmptyIDFails(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.Put(models.Record{}); err == nil {
		t.Error("expected error for empty record id")
	}
}
