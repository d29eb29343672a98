package export

import (
	"fmt"
	"strings"

	"github.com/ahasite/sitediary/internal/constants"
)

// Format identifies a downstream export format.
type Format string

const (
	FormatDocument Format = "document"
	FormatWorkbook Format = "workbook"
	FormatText     Format = "text"
	FormatAll      Format = "all"
)

// Artifact is a generated output file ready for user download. Warnings hold
// per-block degradations (an image that could not be resolved) that did not
// abort the artifact.
type Artifact struct {
	Name     string
	Data     []byte
	Warnings []string
}

// RecordError is a whole-record export failure, isolated to that record
// within a batch.
type RecordError struct {
	RecordID string
	Format   Format
	Err      error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("export of record %s as %s failed: %v", e.RecordID, e.Format, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

func extension(f Format) string {
	switch f {
	case FormatDocument:
		return "pdf"
	case FormatWorkbook:
		return "xlsx"
	case FormatText:
		return "csv"
	default:
		return "bin"
	}
}

// ArtifactName derives the deterministic download name for one record and
// format: aha-site-diary-{id}.{ext}.
func ArtifactName(recordID string, f Format) string {
	return fmt.Sprintf("%s%s.%s", constants.ArtifactPrefix, recordID, extension(f))
}

// BulkArtifactName names the shared artifact covering a whole batch, such as
// the multi-record workbook or the bundle archive.
func BulkArtifactName(f Format) string {
	return fmt.Sprintf("%s%s.%s", constants.ArtifactPrefix, constants.BulkArtifactID, extension(f))
}

// ParseFormats expands the caller-supplied format tags into the concrete
// format set, preserving the canonical document, workbook, text order and
// dropping duplicates. "all" expands to the full set.
func ParseFormats(tags []string) ([]Format, error) {
	want := map[Format]bool{}
	for _, tag := range tags {
		switch Format(strings.ToLower(strings.TrimSpace(tag))) {
		case FormatDocument:
			want[FormatDocument] = true
		case FormatWorkbook:
			want[FormatWorkbook] = true
		case FormatText:
			want[FormatText] = true
		case FormatAll:
			want[FormatDocument] = true
			want[FormatWorkbook] = true
			want[FormatText] = true
		default:
			return nil, fmt.Errorf("unknown export format %q", tag)
		}
	}
	if len(want) == 0 {
		return nil, fmt.Errorf("no export formats requested")
	}

	var formats []Format
	for _, f := range []Format{FormatDocument, FormatWorkbook, FormatText} {
		if want[f] {
			formats = append(formats, f)
		}
	}
	return formats, nil
}
