package cli

import (
	"path/filepath"
	"testing"

	"github.com/ahasite/sitediary/internal/models"
	"github.com/ahasite/sitediary/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) *Context {
	t.Helper()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "sitediary.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	records := []models.Record{
		{ID: "a", Title: "Foundation pour", Date: "2026-03-02", Status: models.StatusDraft, SiteLocation: "North Yard"},
		{ID: "b", Title: "Steel erection", Date: "2026-03-03", Status: models.StatusSubmitted, SiteLocation: "North Yard"},
		{ID: "c", Title: "Roof inspection", Date: "2026-03-10", Status: models.StatusDraft, SiteLocation: "South Hall"},
	}
	for _, rec := range records {
		if _, err := store.Put(rec); err != nil {
			t.Fatalf("failed to seed record %s: %v", rec.ID, err)
		}
	}

	return &Context{Store: store}
}

func TestListValidate(t *testing.T) {
	cases := []struct {
		name    string
		cmd     ListCmd
		wantErr bool
	}{
		{"empty", ListCmd{}, false},
		{"valid status", ListCmd{Status: "draft"}, false},
		{"invalid status", ListCmd{Status: "archived"}, true},
		{"range both bounds", ListCmd{From: "2026-03-01", To: "2026-03-31"}, false},
		{"range missing to", ListCmd{From: "2026-03-01"}, true},
		{"range bad date", ListCmd{From: "03/01/2026", To: "2026-03-31"}, true},
	}

	for _, tc := range cases {
		err := tc.cmd.Validate()
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestListFetchByStatus(t *testing.T) {
	ctx := setupTestContext(t)

	cmd := &ListCmd{Status: "draft"}
	records, err := cmd.fetch(ctx)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 draft records, got %d", len(records))
	}
	for _, rec := range records {
		if rec.Status != models.StatusDraft {
			t.Errorf("record %s has status %s, want draft", rec.ID, rec.Status)
		}
	}
}

func TestListFetchDateRangeWithStatus(t *testing.T) {
	ctx := setupTestContext(t)

	cmd := &ListCmd{From: "2026-03-01", To: "2026-03-05", Status: "submitted"}
	records, err := cmd.fetch(ctx)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if len(records) != 1 || records[0].ID != "b" {
		t.Fatalf("expected exactly record b, got %v", records)
	}
}

func TestFilterSearch(t *testing.T) {
	records := []models.Record{
		{ID: "a", Title: "Foundation pour", SiteLocation: "North Yard"},
		{ID: "b", Title: "Steel erection", Notes: "crane on site until noon"},
		{ID: "c", Title: "Roof inspection"},
	}

	matched := filterSearch(records, "CRANE")
	if len(matched) != 1 || matched[0].ID != "b" {
		t.Errorf("expected notes match for record b, got %v", matched)
	}

	matched = filterSearch(records, "north")
	if len(matched) != 1 || matched[0].ID != "a" {
		t.Errorf("expected location match for record a, got %v", matched)
	}

	if matched = filterSearch(records, "asphalt"); len(matched) != 0 {
		t.Errorf("expected no matches, got %v", matched)
	}
}
