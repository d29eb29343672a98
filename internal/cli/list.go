package cli

import (
	"fmt"
	"strings"

	"github.com/ahasite/sitediary/internal/models"
	"github.com/ahasite/sitediary/internal/validation"
)

type ListCmd struct {
	Status string `short:"s" help:"Filter by status (draft|submitted)."`
	From   string `help:"Start of date range (YYYY-MM-DD), inclusive."`
	To     string `help:"End of date range (YYYY-MM-DD), inclusive."`
	Search string `short:"q" help:"Match against title, project, location, and notes."`
}

func (c *ListCmd) Validate() error {
	if c.Status != "" && c.Status != string(models.StatusDraft) && c.Status != string(models.StatusSubmitted) {
		return fmt.Errorf("invalid status %q (expected draft or submitted)", c.Status)
	}
	if (c.From == "") != (c.To == "") {
		return fmt.Errorf("--from and --to must be given together")
	}
	if c.From != "" {
		if err := validation.ValidateDate(c.From); err != nil {
			return err
		}
		if err := validation.ValidateDate(c.To); err != nil {
			return err
		}
	}
	return nil
}

func (c *ListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	records, err := c.fetch(ctx)
	if err != nil {
		return err
	}

	if c.Search != "" {
		records = filterSearch(records, c.Search)
	}

	if len(records) == 0 {
		fmt.Println("No diary entries found")
		return nil
	}

	fmt.Printf("Diary entries (%d):\n", len(records))
	for _, rec := range records {
		fmt.Printf("  %s\n", summaryLine(rec))
		fmt.Printf("      %s\n", faintStyle.Render("id: "+rec.ID))
	}
	return nil
}

func (c *ListCmd) fetch(ctx *Context) ([]models.Record, error) {
	switch {
	case c.From != "":
		records, err := ctx.Store.QueryByDateRange(c.From, c.To)
		if err != nil || c.Status == "" {
			return records, err
		}
		var matched []models.Record
		for _, rec := range records {
			if rec.Status == models.Status(c.Status) {
				matched = append(matched, rec)
			}
		}
		return matched, nil
	case c.Status != "":
		return ctx.Store.QueryByStatus(models.Status(c.Status))
	default:
		return ctx.Store.GetAll()
	}
}

func filterSearch(records []models.Record, query string) []models.Record {
	query = strings.ToLower(query)
	var matched []models.Record
	for _, rec := range records {
		haystack := strings.ToLower(strings.Join([]string{
			rec.Title, rec.ProjectTitle, rec.SiteLocation, rec.Notes,
		}, "\n"))
		if strings.Contains(haystack, query) {
			matched = append(matched, rec)
		}
	}
	return matched
}
