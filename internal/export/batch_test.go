package export

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ahasite/sitediary/internal/models"
)

func readArchive(t *testing.T, artifact Artifact) map[string][]byte {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(artifact.Data), int64(len(artifact.Data)))
	if err != nil {
		t.Fatalf("artifact is not a readable archive: %v", err)
	}
	members := map[string][]byte{}
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open archive member %s: %v", f.Name, err)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			t.Fatalf("failed to read archive member %s: %v", f.Name, err)
		}
		rc.Close()
		members[f.Name] = buf.Bytes()
	}
	return members
}

func TestExportRecordSingleFormat(t *testing.T) {
	coord := NewCoordinator(NewImageResolver())

	artifact, err := coord.ExportRecord(context.Background(), docRecord("rec-1", 2), FormatText)
	if err != nil {
		t.Fatalf("failed to export record: %v", err)
	}
	if artifact.Name != "aha-site-diary-rec-1.csv" {
		t.Errorf("unexpected artifact name: %s", artifact.Name)
	}
}

func TestExportBatchSingleRecordMultiFormat(t *testing.T) {
	coord := NewCoordinator(NewImageResolver())

	rec := docRecord("rec-1", 2)
	result, err := coord.ExportBatch(context.Background(), []models.Record{rec}, []Format{FormatWorkbook, FormatText})
	if err != nil {
		t.Fatalf("batch export failed: %v", err)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("unexpected failures: %+v", result.Failures)
	}
	if len(result.Artifacts) != 1 || !strings.HasSuffix(result.Artifacts[0].Name, ".zip") {
		t.Fatalf("expected one archive artifact, got %+v", artifactNames(result.Artifacts))
	}

	members := readArchive(t, result.Artifacts[0])
	if len(members) != 2 {
		t.Fatalf("expected 2 archive members, got %v", memberNames(members))
	}
	if _, ok := members["aha-site-diary-rec-1.xlsx"]; !ok {
		t.Errorf("workbook member missing: %v", memberNames(members))
	}
	text, ok := members["aha-site-diary-rec-1.csv"]
	if !ok {
		t.Fatalf("text member missing: %v", memberNames(members))
	}
	if strings.Count(string(text), "Task ") != 2 {
		t.Errorf("expected 2 task lines in text member")
	}
}

func TestExportBatchIsolatesRecordFailures(t *testing.T) {
	server := imageServer(t)
	coord := NewCoordinator(NewImageResolver())

	records := make([]models.Record, 5)
	for i := range records {
		records[i] = docRecord(string(rune('a'+i)), 1)
	}
	// One record's image cannot be resolved; its document degrades while
	// the other four render clean.
	records[2].ImageURLs = []string{server.URL + "/missing.png"}

	result, err := coord.ExportBatch(context.Background(), records, []Format{FormatDocument})
	if err != nil {
		t.Fatalf("batch export failed: %v", err)
	}

	bundle := result.Artifacts[0]
	members := readArchive(t, bundle)
	if len(members) != 5 {
		t.Fatalf("expected 5 document members, got %v", memberNames(members))
	}
	if len(bundle.Warnings) != 1 {
		t.Errorf("expected one degradation warning, got %v", bundle.Warnings)
	}
}

func TestExportBatchAllFormats(t *testing.T) {
	coord := NewCoordinator(NewImageResolver())

	records := []models.Record{docRecord("rec-1", 2), docRecord("rec-2", 1)}
	formats, err := ParseFormats([]string{"all"})
	if err != nil {
		t.Fatal(err)
	}

	result, err := coord.ExportBatch(context.Background(), records, formats)
	if err != nil {
		t.Fatalf("batch export failed: %v", err)
	}
	if len(result.Artifacts) != 1 {
		t.Fatalf("expected one archive, got %d artifacts", len(result.Artifacts))
	}

	members := readArchive(t, result.Artifacts[0])
	// 2 documents + 2 texts + 1 shared workbook
	want := []string{
		"aha-site-diary-rec-1.pdf",
		"aha-site-diary-rec-2.pdf",
		"aha-site-diary-rec-1.csv",
		"aha-site-diary-rec-2.csv",
		"aha-site-diary-exports.xlsx",
	}
	if len(members) != len(want) {
		t.Fatalf("expected %d members, got %v", len(want), memberNames(members))
	}
	for _, name := range want {
		if _, ok := members[name]; !ok {
			t.Errorf("missing archive member %s", name)
		}
	}
}

func TestExportBatchDeterministicArchive(t *testing.T) {
	coord := NewCoordinator(NewImageResolver())
	records := []models.Record{docRecord("rec-1", 2), docRecord("rec-2", 1)}

	first, err := coord.ExportBatch(context.Background(), records, []Format{FormatDocument, FormatText})
	if err != nil {
		t.Fatalf("batch export failed: %v", err)
	}
	second, err := coord.ExportBatch(context.Background(), records, []Format{FormatDocument, FormatText})
	if err != nil {
		t.Fatalf("batch export failed: %v", err)
	}

	if !bytes.Equal(first.Artifacts[0].Data, second.Artifacts[0].Data) {
		t.Error("repeated export of the same selection produced different archives")
	}
}

func TestExportBatchCancelledContextKeepsPartialResults(t *testing.T) {
	coord := NewCoordinator(NewImageResolver())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := []models.Record{docRecord("rec-1", 1), docRecord("rec-2", 1)}
	result, err := coord.ExportBatch(ctx, records, []Format{FormatDocument, FormatText})
	if err != nil {
		t.Fatalf("abandoned batch must still deliver results: %v", err)
	}

	// Document renders are skipped under the cancelled context and show up
	// as failures; the cheap text artifacts still land in the bundle.
	if len(result.Failures) != 2 {
		t.Errorf("expected 2 document failures, got %+v", result.Failures)
	}
	members := readArchive(t, result.Artifacts[0])
	if len(members) != 2 {
		t.Errorf("expected the 2 text members to survive cancellation, got %v", memberNames(members))
	}
}

func artifactNames(artifacts []Artifact) []string {
	names := make([]string, len(artifacts))
	for i, a := range artifacts {
		names[i] = a.Name
	}
	return names
}

func memberNames(members map[string][]byte) []string {
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	return names
}
