package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ahasite/sitediary/internal/constants"
	"github.com/ahasite/sitediary/internal/models"
)

var summaryHeaders = []string{
	"Title", "Date", "Status", "Project", "Contract ID", "Location",
	"Sky", "Precipitation", "Temperature", "Wind",
	"Start Time", "End Time",
	"Progress", "Safety", "Materials", "Equipment", "Labor",
	"Issues", "Next Steps", "Tasks Count", "Notes",
}

var taskHeaders = []string{
	"Entry Title", "Date", "Task No.", "Description", "Equipment", "Quantity", "Unit",
}

// WorkbookExporter converts one or many records into a multi-sheet xlsx
// workbook: a Summary sheet with one row per record and a Tasks sheet with
// one row per task across all records.
type WorkbookExporter struct{}

func NewWorkbookExporter() *WorkbookExporter {
	return &WorkbookExporter{}
}

// Render produces a workbook artifact covering the given records. A single
// record yields an artifact named from its id; multiple records share the
// fixed bulk report name.
func (e *WorkbookExporter) Render(records []models.Record) (Artifact, error) {
	if len(records) == 0 {
		return Artifact{}, fmt.Errorf("no records to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeSummarySheet(f, records); err != nil {
		return Artifact{}, err
	}
	if err := e.writeTasksSheet(f, records); err != nil {
		return Artifact{}, err
	}

	// Drop the default sheet so Summary leads the workbook
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return Artifact{}, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	index, err := f.GetSheetIndex("Summary")
	if err != nil {
		return Artifact{}, err
	}
	f.SetActiveSheet(index)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	name := BulkArtifactName(FormatWorkbook)
	if len(records) == 1 {
		name = ArtifactName(records[0].ID, FormatWorkbook)
	}
	return Artifact{Name: name, Data: buf.Bytes()}, nil
}

func (e *WorkbookExporter) writeSummarySheet(f *excelize.File, records []models.Record) error {
	if _, err := f.NewSheet("Summary"); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	rows := make([][]any, 0, len(records)+1)
	header := make([]any, len(summaryHeaders))
	for i, h := range summaryHeaders {
		header[i] = h
	}
	rows = append(rows, header)

	for _, rec := range records {
		rows = append(rows, []any{
			rec.Title, rec.Date, string(rec.Status), rec.ProjectTitle, rec.ContractID, rec.SiteLocation,
			rec.Weather.Sky, rec.Weather.Precipitation, rec.Weather.Temperature, rec.Weather.Wind,
			rec.WorkingHours.StartTime, rec.WorkingHours.EndTime,
			rec.Progress, rec.Safety, rec.Materials, rec.Equipment, rec.Labor,
			rec.Issues, rec.NextSteps, len(rec.Tasks), rec.Notes,
		})
	}

	return writeSheet(f, "Summary", rows)
}

func (e *WorkbookExporter) writeTasksSheet(f *excelize.File, records []models.Record) error {
	if _, err := f.NewSheet("Tasks"); err != nil {
		return fmt.Errorf("failed to create tasks sheet: %w", err)
	}

	rows := make([][]any, 0)
	header := make([]any, len(taskHeaders))
	for i, h := range taskHeaders {
		header[i] = h
	}
	rows = append(rows, header)

	for _, rec := range records {
		for i, task := range rec.Tasks {
			rows = append(rows, []any{
				rec.Title, rec.Date, i + 1, task.Description,
				joinList(task.Equipment), task.Quantity, task.Unit,
			})
		}
	}

	return writeSheet(f, "Tasks", rows)
}

// writeSheet writes all rows and sets each column's width to the longer of
// its header label and its longest rendered cell value, capped to keep
// pathological values from producing unusable columns. Numeric cell values
// stay numeric so the consumer can aggregate them.
func writeSheet(f *excelize.File, sheet string, rows [][]any) error {
	widths := map[int]float64{}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to set cell %s!%s: %w", sheet, cell, err)
			}

			rendered := fmt.Sprintf("%v", value)
			if w := float64(len([]rune(rendered))) + 2; w > widths[c] {
				widths[c] = w
			}
		}
	}

	for c, w := range widths {
		if w > constants.MaxColumnWidth {
			w = constants.MaxColumnWidth
		}
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("failed to set column width %s!%s: %w", sheet, col, err)
		}
	}
	return nil
}
