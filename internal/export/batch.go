package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ahasite/sitediary/internal/constants"
	"github.com/ahasite/sitediary/internal/logger"
	"github.com/ahasite/sitediary/internal/models"
)

// Failure records one failed (record, format) pair within a batch.
type Failure struct {
	RecordID string
	Format   Format
	Err      error
}

// BatchResult carries everything a batch produced. Artifacts that completed
// before a cancellation or a sibling failure remain valid and are returned.
type BatchResult struct {
	Artifacts []Artifact
	Failures  []Failure
}

// Coordinator drives the three exporters over a selection of records,
// isolates per-record failures, and bundles multi-artifact output into one
// archive.
type Coordinator struct {
	docs     *DocumentRenderer
	workbook *WorkbookExporter
	text     *TextExporter
	workers  int
}

func NewCoordinator(resolver *ImageResolver) *Coordinator {
	return &Coordinator{
		docs:     NewDocumentRenderer(resolver),
		workbook: NewWorkbookExporter(),
		text:     NewTextExporter(),
		workers:  constants.ExportWorkers,
	}
}

// ExportRecord produces the single artifact for one record and one concrete
// format (not "all").
func (c *Coordinator) ExportRecord(ctx context.Context, rec models.Record, format Format) (Artifact, error) {
	switch format {
	case FormatDocument:
		return c.docs.Render(ctx, rec)
	case FormatWorkbook:
		return c.workbook.Render([]models.Record{rec})
	case FormatText:
		return c.text.Render([]models.Record{rec})
	default:
		return Artifact{}, fmt.Errorf("unsupported export format %q", format)
	}
}

// ExportBatch exports every requested format for every record. Document and
// text artifacts are produced per record; the workbook covers the whole
// selection in one shared artifact. A failure for one record never aborts its
// siblings. A single record with a single concrete format yields that
// artifact directly; anything larger is bundled into one zip archive with
// deterministic member names.
func (c *Coordinator) ExportBatch(ctx context.Context, records []models.Record, formats []Format) (BatchResult, error) {
	if len(records) == 0 {
		return BatchResult{}, fmt.Errorf("no records selected for export")
	}
	if len(formats) == 0 {
		return BatchResult{}, fmt.Errorf("no export formats requested")
	}

	var result BatchResult
	for _, format := range formats {
		switch format {
		case FormatDocument:
			artifacts, failures := c.renderDocuments(ctx, records)
			result.Artifacts = append(result.Artifacts, artifacts...)
			result.Failures = append(result.Failures, failures...)
		case FormatWorkbook:
			artifact, err := c.workbook.Render(records)
			if err != nil {
				result.Failures = append(result.Failures, Failure{Format: FormatWorkbook, Err: err})
				continue
			}
			result.Artifacts = append(result.Artifacts, artifact)
		case FormatText:
			for _, rec := range records {
				artifact, err := c.text.Render([]models.Record{rec})
				if err != nil {
					result.Failures = append(result.Failures, Failure{RecordID: rec.ID, Format: FormatText, Err: err})
					continue
				}
				result.Artifacts = append(result.Artifacts, artifact)
			}
		default:
			return BatchResult{}, fmt.Errorf("unsupported export format %q", format)
		}
	}

	for _, f := range result.Failures {
		logger.Warn("Batch export member failed", "record", f.RecordID, "format", f.Format, "error", f.Err)
	}

	if len(records) == 1 && len(formats) == 1 && len(result.Artifacts) <= 1 {
		return result, nil
	}

	bundle, err := Bundle(result.Artifacts)
	if err != nil {
		return result, fmt.Errorf("failed to bundle artifacts: %w", err)
	}
	return BatchResult{Artifacts: []Artifact{bundle}, Failures: result.Failures}, nil
}

// renderDocuments renders one PDF per record with at most `workers` renders
// in flight. Artifacts assemble in record order, not completion order. On
// cancellation, already-produced artifacts are kept and the remaining records
// are reported as failures.
func (c *Coordinator) renderDocuments(ctx context.Context, records []models.Record) ([]Artifact, []Failure) {
	type slot struct {
		artifact Artifact
		err      error
	}
	slots := make([]slot, len(records))

	var wg sync.WaitGroup
	sem := make(chan struct{}, c.workers)
	for i, rec := range records {
		if ctx.Err() != nil {
			slots[i].err = ctx.Err()
			continue
		}
		wg.Add(1)
		go func(i int, rec models.Record) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			slots[i].artifact, slots[i].err = c.docs.Render(ctx, rec)
		}(i, rec)
	}
	wg.Wait()

	var artifacts []Artifact
	var failures []Failure
	for i, s := range slots {
		if s.err != nil {
			failures = append(failures, Failure{RecordID: records[i].ID, Format: FormatDocument, Err: s.err})
			continue
		}
		artifacts = append(artifacts, s.artifact)
	}
	return artifacts, failures
}

// Bundle packages artifacts into one zip archive with deterministic member
// names and metadata: repeated export of the same selection produces the
// same member set.
func Bundle(artifacts []Artifact) (Artifact, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, artifact := range artifacts {
		header := &zip.FileHeader{
			Name:     artifact.Name,
			Method:   zip.Deflate,
			Modified: time.Unix(0, 0).UTC(),
		}
		member, err := w.CreateHeader(header)
		if err != nil {
			return Artifact{}, fmt.Errorf("failed to create archive member %s: %w", artifact.Name, err)
		}
		if _, err := member.Write(artifact.Data); err != nil {
			return Artifact{}, fmt.Errorf("failed to write archive member %s: %w", artifact.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return Artifact{}, fmt.Errorf("failed to finalize archive: %w", err)
	}

	var warnings []string
	for _, artifact := range artifacts {
		warnings = append(warnings, artifact.Warnings...)
	}

	return Artifact{
		Name:     constants.ArtifactPrefix + constants.BulkArtifactID + ".zip",
		Data:     buf.Bytes(),
		Warnings: warnings,
	}, nil
}
