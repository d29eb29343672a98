package export

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ahasite/sitediary/internal/models"
)

func pageCount(data []byte) int {
	// Page objects carry "/Type /Page"; the page tree node carries
	// "/Type /Pages" and must not be counted.
	return bytes.Count(data, []byte("/Type /Page")) - bytes.Count(data, []byte("/Type /Pages"))
}

func docRecord(id string, taskCount int) models.Record {
	rec := models.Record{
		ID:           id,
		ProjectTitle: "Harbor Bridge",
		ContractID:   "C-100",
		SiteLocation: "North Pier",
		Date:         "2025-06-14",
		Title:        "Entry " + id,
		Weather: models.Weather{
			Temperature:   "10-20°C",
			Sky:           "Overcast",
			Precipitation: "None",
			Wind:          "Calm",
		},
		WorkingHours: models.WorkingHours{StartTime: "07:00", EndTime: "16:30"},
		Progress:     "Piling complete on the north face.",
		Safety:       "Toolbox talk held at 07:15.",
		Status:       models.StatusSubmitted,
		CreatedAt:    time.Date(2025, 6, 14, 18, 0, 0, 0, time.UTC),
	}
	for i := 0; i < taskCount; i++ {
		rec.Tasks = append(rec.Tasks, models.Task{
			Description: fmt.Sprintf("Task %d", i+1),
			Equipment:   []string{"Hand Tools"},
			Quantity:    float64(i + 1),
			Unit:        "Hours",
		})
	}
	return rec
}

func TestDocumentRenderSinglePage(t *testing.T) {
	renderer := NewDocumentRenderer(NewImageResolver())

	artifact, err := renderer.Render(context.Background(), docRecord("rec-1", 2))
	if err != nil {
		t.Fatalf("failed to render document: %v", err)
	}
	if artifact.Name != "aha-site-diary-rec-1.pdf" {
		t.Errorf("unexpected artifact name: %s", artifact.Name)
	}
	if len(artifact.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", artifact.Warnings)
	}
	if !bytes.HasPrefix(artifact.Data, []byte("%PDF")) {
		t.Error("artifact is not a PDF")
	}
}

func TestDocumentRenderLongTaskTablePaginates(t *testing.T) {
	renderer := NewDocumentRenderer(NewImageResolver())

	short, err := renderer.Render(context.Background(), docRecord("rec-1", 0))
	if err != nil {
		t.Fatalf("failed to render short document: %v", err)
	}
	long, err := renderer.Render(context.Background(), docRecord("rec-2", 50))
	if err != nil {
		t.Fatalf("failed to render long document: %v", err)
	}

	if pages := pageCount(long.Data); pages < 2 {
		t.Errorf("expected 50-task document to span multiple pages, got %d", pages)
	}
	if pageCount(long.Data) <= pageCount(short.Data) {
		t.Error("long task table did not add pages")
	}
}

func TestDocumentRenderZeroTasksPlaceholder(t *testing.T) {
	renderer := NewDocumentRenderer(NewImageResolver())

	artifact, err := renderer.Render(context.Background(), docRecord("rec-1", 0))
	if err != nil {
		t.Fatalf("failed to render document: %v", err)
	}
	// The placeholder row renders instead of an empty table; the document
	// still produces a full single-page artifact.
	if pages := pageCount(artifact.Data); pages != 1 {
		t.Errorf("expected a single page, got %d", pages)
	}
}

func TestDocumentRenderIsDeterministic(t *testing.T) {
	renderer := NewDocumentRenderer(NewImageResolver())
	rec := docRecord("rec-1", 3)

	first, err := renderer.Render(context.Background(), rec)
	if err != nil {
		t.Fatalf("failed to render document: %v", err)
	}
	second, err := renderer.Render(context.Background(), rec)
	if err != nil {
		t.Fatalf("failed to render document: %v", err)
	}

	if !bytes.Equal(first.Data, second.Data) {
		t.Error("identical input produced different artifacts")
	}
}

func TestDocumentRenderEmbedsImages(t *testing.T) {
	server := imageServer(t)
	renderer := NewDocumentRenderer(NewImageResolver())

	rec := docRecord("rec-1", 1)
	rec.ImageURLs = []string{server.URL + "/photo.png", server.URL + "/photo.jpg"}
	rec.Signature = server.URL + "/photo.png"

	artifact, err := renderer.Render(context.Background(), rec)
	if err != nil {
		t.Fatalf("failed to render document with images: %v", err)
	}
	if len(artifact.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", artifact.Warnings)
	}
	// Embedded raster data makes the artifact substantially larger
	plain, err := renderer.Render(context.Background(), docRecord("rec-2", 1))
	if err != nil {
		t.Fatalf("failed to render plain document: %v", err)
	}
	if len(artifact.Data) <= len(plain.Data) {
		t.Error("expected image-bearing document to be larger")
	}
}

func TestDocumentRenderImageFailureDegrades(t *testing.T) {
	server := imageServer(t)
	renderer := NewDocumentRenderer(NewImageResolver())

	rec := docRecord("rec-1", 1)
	rec.ImageURLs = []string{server.URL + "/photo.png", server.URL + "/missing.png"}

	artifact, err := renderer.Render(context.Background(), rec)
	if err != nil {
		t.Fatalf("image failure must not abort rendering: %v", err)
	}
	if len(artifact.Warnings) != 1 {
		t.Fatalf("expected one warning for the failed image, got %v", artifact.Warnings)
	}
	if !bytes.HasPrefix(artifact.Data, []byte("%PDF")) {
		t.Error("degraded artifact is not a PDF")
	}
}
