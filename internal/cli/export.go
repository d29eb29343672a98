package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ahasite/sitediary/internal/export"
	"github.com/ahasite/sitediary/internal/models"
	"github.com/ahasite/sitediary/internal/validation"
)

type ExportCmd struct {
	IDs    []string `arg:"" optional:"" help:"Record ids to export (default: all entries)."`
	Format []string `short:"f" default:"all" help:"Export formats (document|workbook|text|all)."`
	Status string   `short:"s" help:"Export only entries with this status."`
	From   string   `help:"Start of date range (YYYY-MM-DD), inclusive."`
	To     string   `help:"End of date range (YYYY-MM-DD), inclusive."`
	Output string   `short:"o" type:"path" default:"." help:"Directory to write artifacts into."`
}

func (c *ExportCmd) Validate() error {
	if len(c.IDs) > 0 && (c.Status != "" || c.From != "") {
		return fmt.Errorf("record ids cannot be combined with status or date filters")
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

func (c *ExportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	formats, err := export.ParseFormats(c.Format)
	if err != nil {
		return err
	}

	records, err := c.selectRecords(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no diary entries matched the selection")
	}

	coordinator := export.NewCoordinator(export.NewImageResolver())
	result, err := coordinator.ExportBatch(context.Background(), records, formats)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.Output, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, artifact := range result.Artifacts {
		path := filepath.Join(c.Output, artifact.Name)
		if err := os.WriteFile(path, artifact.Data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", artifact.Name, err)
		}
		fmt.Printf("✓ Wrote %s (%d bytes)\n", path, len(artifact.Data))
		for _, warning := range artifact.Warnings {
			fmt.Printf("  %s\n", warnStyle.Render("⚠ "+warning))
		}
	}

	for _, failure := range result.Failures {
		fmt.Printf("%s\n", warnStyle.Render(fmt.Sprintf("❌ %s as %s: %v", failure.RecordID, failure.Format, failure.Err)))
	}

	if len(result.Artifacts) == 0 {
		return fmt.Errorf("export produced no artifacts")
	}
	return nil
}

func (c *ExportCmd) selectRecords(ctx *Context) ([]models.Record, error) {
	if len(c.IDs) > 0 {
		records := make([]models.Record, 0, len(c.IDs))
		for _, id := range c.IDs {
			rec, err := ctx.Store.Get(id)
			if err != nil {
				return nil, fmt.Errorf("record %s: %w", id, err)
			}
			records = append(records, rec)
		}
		return records, nil
	}

	list := &ListCmd{Status: c.Status, From: c.From, To: c.To}
	return list.fetch(ctx)
}
