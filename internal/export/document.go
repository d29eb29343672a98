package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/ahasite/sitediary/internal/constants"
	"github.com/ahasite/sitediary/internal/models"
)

const (
	lineHeight    = 7.0
	headingHeight = 8.0
	taskRowHeight = 8.0
)

// taskColumns are the task table column widths in mm; they sum to the A4
// content width at 20mm margins.
var taskColumns = []struct {
	label string
	width float64
}{
	{"No.", 12},
	{"Description", 62},
	{"Equipment", 52},
	{"Quantity", 22},
	{"Unit", 22},
}

// DocumentRenderer converts one record into a paginated printable PDF.
type DocumentRenderer struct {
	resolver *ImageResolver
}

func NewDocumentRenderer(resolver *ImageResolver) *DocumentRenderer {
	return &DocumentRenderer{resolver: resolver}
}

// Render produces the document artifact. Image references are resolved up
// front with bounded concurrency and joined before layout; a failed fetch
// degrades to a warning on the artifact, never a failed render. Output bytes
// are reproducible for identical input and identical resolved image bytes:
// the embedded document dates are pinned to the record's creation time.
func (d *DocumentRenderer) Render(ctx context.Context, rec models.Record) (Artifact, error) {
	refs := append([]string{}, rec.ImageURLs...)
	if rec.Signature != "" {
		refs = append(refs, rec.Signature)
	}
	resolved := d.resolver.ResolveAll(ctx, refs)

	var warnings []string
	for _, ref := range refs {
		if _, ok := resolved[ref]; !ok {
			warnings = append(warnings, fmt.Sprintf("image %s could not be resolved", ref))
		}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pinned := rec.CreatedAt
	if pinned.IsZero() {
		pinned = time.Unix(0, 0).UTC()
	}
	pdf.SetCreationDate(pinned)
	pdf.SetModificationDate(pinned)
	pdf.SetTitle("Daily Construction Site Diary - "+rec.Title, true)
	pdf.SetMargins(constants.PageMarginMM, constants.PageMarginMM, constants.PageMarginMM)
	pdf.SetAutoPageBreak(true, constants.PageMarginMM)
	pdf.AddPage()

	l := &layout{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	l.text("Daily Construction Site Diary", 20, "B")
	l.space(8)

	l.text(fmt.Sprintf("Project: %s", rec.ProjectTitle), 14, "")
	l.text(fmt.Sprintf("Contract ID: %s", rec.ContractID), 14, "")
	l.text(fmt.Sprintf("Location: %s", rec.SiteLocation), 14, "")
	l.text(fmt.Sprintf("Date: %s", rec.Date), 14, "")
	l.space(8)

	l.section("Weather Conditions", fmt.Sprintf(
		"Temperature: %s\nSky: %s\nPrecipitation: %s\nWind: %s",
		rec.Weather.Temperature, rec.Weather.Sky, rec.Weather.Precipitation, rec.Weather.Wind))
	l.section("Working Hours", fmt.Sprintf(
		"Start Time: %s\nEnd Time: %s",
		rec.WorkingHours.StartTime, rec.WorkingHours.EndTime))

	l.taskTable(rec.Tasks)

	l.section("Progress Summary", rec.Progress)
	l.section("Safety Notes", rec.Safety)
	l.section("Materials Used", rec.Materials)
	l.section("Equipment Used", rec.Equipment)
	l.section("Labor Summary", rec.Labor)
	l.section("Issues/Delays", rec.Issues)
	l.section("Next Steps", rec.NextSteps)
	l.section("Notes", rec.Notes)

	if len(rec.ImageURLs) > 0 {
		l.heading("Site Photos")
		for _, url := range rec.ImageURLs {
			img, ok := resolved[url]
			if !ok {
				continue
			}
			l.image(img)
		}
	}

	if rec.Signature != "" {
		if img, ok := resolved[rec.Signature]; ok {
			l.heading("Signature:")
			l.image(img)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Artifact{}, &RecordError{RecordID: rec.ID, Format: FormatDocument, Err: err}
	}

	return Artifact{
		Name:     ArtifactName(rec.ID, FormatDocument),
		Data:     buf.Bytes(),
		Warnings: warnings,
	}, nil
}

// layout tracks cursor flow on the fixed-size content box.
type layout struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (l *layout) contentWidth() float64 {
	w, _ := l.pdf.GetPageSize()
	return w - 2*constants.PageMarginMM
}

func (l *layout) remaining() float64 {
	_, h := l.pdf.GetPageSize()
	return h - constants.PageMarginMM - l.pdf.GetY()
}

func (l *layout) space(h float64) {
	l.pdf.SetY(l.pdf.GetY() + h)
}

func (l *layout) text(s string, size float64, style string) {
	l.pdf.SetFont("Helvetica", style, size)
	l.pdf.SetTextColor(0, 0, 0)
	l.pdf.CellFormat(l.contentWidth(), lineHeight, l.tr(s), "", 1, "L", false, 0, "")
}

func (l *layout) heading(s string) {
	if l.remaining() < constants.MinSectionSpace {
		l.pdf.AddPage()
	}
	l.pdf.SetFont("Helvetica", "B", 14)
	l.pdf.CellFormat(l.contentWidth(), headingHeight, l.tr(s), "", 1, "L", false, 0, "")
}

// section emits a bold heading and wrapped body text. The body is measured
// before layout: a section never starts unless at least the heading and the
// first lines fit above the minimum remaining space, otherwise the whole
// section defers to a new page.
func (l *layout) section(title, body string) {
	l.pdf.SetFont("Helvetica", "", 12)
	lines := l.pdf.SplitText(l.tr(body), l.contentWidth())

	needed := headingHeight + float64(min(len(lines), 2))*lineHeight
	if l.remaining() < needed || l.remaining() < constants.MinSectionSpace {
		l.pdf.AddPage()
	}

	l.pdf.SetFont("Helvetica", "B", 14)
	l.pdf.CellFormat(l.contentWidth(), headingHeight, l.tr(title), "", 1, "L", false, 0, "")
	l.pdf.SetFont("Helvetica", "", 12)
	l.pdf.MultiCell(l.contentWidth(), lineHeight, l.tr(body), "", "L", false)
	l.space(4)
}

func (l *layout) taskTableHeader() {
	l.pdf.SetFont("Helvetica", "B", 11)
	l.pdf.SetFillColor(240, 240, 240)
	for _, col := range taskColumns {
		l.pdf.CellFormat(col.width, taskRowHeight, l.tr(col.label), "1", 0, "L", true, 0, "")
	}
	l.pdf.Ln(-1)
}

// taskTable renders one row per task. A list longer than fits on a page
// continues on the next page with the column headers repeated.
func (l *layout) taskTable(tasks []models.Task) {
	if l.remaining() < constants.MinSectionSpace {
		l.pdf.AddPage()
	}
	l.heading("Tasks")
	l.taskTableHeader()

	l.pdf.SetFont("Helvetica", "", 11)
	if len(tasks) == 0 {
		l.pdf.CellFormat(l.contentWidth(), taskRowHeight, l.tr("No tasks recorded"), "1", 1, "L", false, 0, "")
		l.space(4)
		return
	}

	for i, task := range tasks {
		if l.remaining() < taskRowHeight+constants.PageMarginMM/2 {
			l.pdf.AddPage()
			l.taskTableHeader()
			l.pdf.SetFont("Helvetica", "", 11)
		}
		cells := []string{
			fmt.Sprintf("%d", i+1),
			task.Description,
			joinList(task.Equipment),
			fmt.Sprintf("%g", task.Quantity),
			task.Unit,
		}
		for j, col := range taskColumns {
			l.pdf.CellFormat(col.width, taskRowHeight, l.tr(cells[j]), "1", 0, "L", false, 0, "")
		}
		l.pdf.Ln(-1)
	}
	l.space(4)
}

// image places a resolved image at the fixed display width, preserving the
// source aspect ratio, with a forced page break when the page's remaining
// height is under the threshold.
func (l *layout) image(img ResolvedImage) {
	w, h := img.DisplaySize()
	if l.remaining() < constants.ImageBreakMM || l.remaining() < h {
		l.pdf.AddPage()
	}

	opts := fpdf.ImageOptions{ImageType: img.Kind}
	l.pdf.RegisterImageOptionsReader(img.URL, opts, bytes.NewReader(img.Data))
	l.pdf.ImageOptions(img.URL, constants.PageMarginMM, l.pdf.GetY(), w, h, false, opts, 0, "")
	l.pdf.SetY(l.pdf.GetY() + h)
	l.space(5)
}

func joinList(items []string) string {
	return strings.Join(items, constants.ListSeparator)
}
