package export

import (
	"fmt"
	"strings"

	"github.com/ahasite/sitediary/internal/models"
)

const (
	textSeparator = ","
	textDivider   = "-------------------"
)

// TextExporter converts one or many records into a flat delimited-text
// table. Field values are taken verbatim: a separator character inside a
// free-text value is a documented quoting gap the caller must account for.
type TextExporter struct{}

func NewTextExporter() *TextExporter {
	return &TextExporter{}
}

// Render produces the text artifact. Each record emits a fixed section
// order; multiple records are separated by a divider line.
func (e *TextExporter) Render(records []models.Record) (Artifact, error) {
	if len(records) == 0 {
		return Artifact{}, fmt.Errorf("no records to export")
	}

	var rows [][]string
	for i, rec := range records {
		if i > 0 {
			rows = append(rows, []string{""}, []string{textDivider}, []string{""})
		}
		rows = append(rows, recordRows(rec)...)
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, textSeparator)
	}

	name := BulkArtifactName(FormatText)
	if len(records) == 1 {
		name = ArtifactName(records[0].ID, FormatText)
	}
	return Artifact{Name: name, Data: []byte(strings.Join(lines, "\n") + "\n")}, nil
}

func recordRows(rec models.Record) [][]string {
	rows := [][]string{
		{"AHA Site Diary Entry"},
		{"Title", rec.Title},
		{"Date", rec.Date},
		{"Status", string(rec.Status)},
		{"Project", rec.ProjectTitle},
		{"Contract ID", rec.ContractID},
		{"Location", rec.SiteLocation},
		{""},
		{"Weather Conditions"},
		{"Sky", rec.Weather.Sky},
		{"Precipitation", rec.Weather.Precipitation},
		{"Temperature", rec.Weather.Temperature},
		{"Wind", rec.Weather.Wind},
		{""},
		{"Tasks"},
		{"Task No.", "Description", "Equipment", "Quantity", "Unit"},
	}

	for i, task := range rec.Tasks {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			task.Description,
			joinList(task.Equipment),
			fmt.Sprintf("%g", task.Quantity),
			task.Unit,
		})
	}

	rows = append(rows,
		[]string{""},
		[]string{"Notes"},
		[]string{rec.Notes},
	)
	return rows
}
