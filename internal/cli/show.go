package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/ahasite/sitediary/internal/constants"
)

type ShowCmd struct {
	ID string `arg:"" help:"Record id to display."`
}

func (c *ShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	rec, err := ctx.Store.Get(c.ID)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(rec.Title))
	fmt.Printf("%s  [%s]\n", rec.Date, statusLabel(rec.Status))
	fmt.Println()

	printField("Project", rec.ProjectTitle)
	printField("Contract", rec.ContractID)
	printField("Location", rec.SiteLocation)
	printField("Author", rec.CreatedBy)
	fmt.Println()

	fmt.Println(titleStyle.Render("Weather"))
	printField("Temperature", rec.Weather.Temperature)
	printField("Sky", rec.Weather.Sky)
	printField("Precipitation", rec.Weather.Precipitation)
	printField("Wind", rec.Weather.Wind)
	if rec.WorkingHours.StartTime != "" || rec.WorkingHours.EndTime != "" {
		printField("Working hours", rec.WorkingHours.StartTime+" - "+rec.WorkingHours.EndTime)
	}
	fmt.Println()

	if len(rec.Tasks) == 0 {
		fmt.Println(faintStyle.Render("No tasks recorded"))
	} else {
		fmt.Println(titleStyle.Render("Tasks"))
		for i, task := range rec.Tasks {
			line := fmt.Sprintf("  %d. %s", i+1, task.Description)
			if task.Quantity != 0 || task.Unit != "" {
				line += fmt.Sprintf("  (%g %s)", task.Quantity, task.Unit)
			}
			fmt.Println(line)
			if len(task.Equipment) > 0 {
				fmt.Printf("     %s\n", faintStyle.Render(strings.Join(task.Equipment, constants.ListSeparator)))
			}
		}
	}
	fmt.Println()

	printSection("Progress", rec.Progress)
	printSection("Safety", rec.Safety)
	printSection("Materials", rec.Materials)
	printSection("Equipment", rec.Equipment)
	printSection("Labor", rec.Labor)
	printSection("Issues", rec.Issues)
	printSection("Next steps", rec.NextSteps)
	printSection("Notes", rec.Notes)

	if len(rec.ImageURLs) > 0 {
		fmt.Println(titleStyle.Render("Photos"))
		for _, url := range rec.ImageURLs {
			fmt.Printf("  %s\n", url)
		}
		fmt.Println()
	}
	if rec.Signature != "" {
		printField("Signature", rec.Signature)
	}

	fmt.Println(faintStyle.Render(fmt.Sprintf("id: %s  created: %s  modified: %s",
		rec.ID,
		rec.CreatedAt.Format(time.RFC3339),
		rec.LastModified.Format(time.RFC3339))))
	return nil
}

func printField(label, value string) {
	if value == "" {
		return
	}
	fmt.Printf("  %-14s %s\n", label+":", value)
}

func printSection(heading, body string) {
	if body == "" {
		return
	}
	fmt.Println(titleStyle.Render(heading))
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		fmt.Printf("  %s\n", line)
	}
	fmt.Println()
}
