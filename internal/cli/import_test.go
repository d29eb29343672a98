package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestImportLegacyArray(t *testing.T) {
	ctx := setupTestContext(t)

	legacy := `[
		{
			"id": "legacy-1",
			"title": "Old entry",
			"date": "2025-11-20",
			"weather": {"conditions": "Overcast", "temperature": "0-10°C"},
			"tasks": ["Site Inspection", "Safety Meeting"],
			"status": "draft"
		},
		{
			"title": "Entry without id",
			"date": "2025-11-21",
			"status": "archived"
		}
	]`
	path := filepath.Join(t.TempDir(), "legacy.json")
	if err := os.WriteFile(path, []byte(legacy), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cmd := &ImportCmd{File: path}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	rec, err := ctx.Store.Get("legacy-1")
	if err != nil {
		t.Fatalf("imported record not found: %v", err)
	}
	if rec.Weather.Sky != "Overcast" {
		t.Errorf("legacy conditions not folded into sky: %q", rec.Weather.Sky)
	}
	if len(rec.Tasks) != 2 || rec.Tasks[0].Description != "Site Inspection" {
		t.Errorf("string tasks not normalized: %v", rec.Tasks)
	}

	all, err := ctx.Store.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	// 3 seeded records plus 2 imported
	if len(all) != 5 {
		t.Fatalf("expected 5 records after import, got %d", len(all))
	}
	for _, rec := range all {
		if rec.ID == "" {
			t.Error("imported record has no id assigned")
		}
	}
}
