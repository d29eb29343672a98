package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/ahasite/sitediary/internal/constants"
	"github.com/ahasite/sitediary/internal/models"
	"github.com/ahasite/sitediary/internal/validation"
)

type NewCmd struct {
	CreatedBy string `help:"Author recorded on the entry."`
}

func (c *NewCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	rec := models.Record{
		ID:        uuid.New().String(),
		Date:      time.Now().Format(constants.DateFormat),
		Status:    models.StatusDraft,
		CreatedBy: c.CreatedBy,
	}
	var imageURLs string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Entry title").
				Value(&rec.Title),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&rec.Date).
				Validate(validation.ValidateDate),
			huh.NewInput().
				Title("Project title").
				Value(&rec.ProjectTitle),
			huh.NewInput().
				Title("Contract ID").
				Value(&rec.ContractID),
			huh.NewInput().
				Title("Site location").
				Value(&rec.SiteLocation),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Temperature").
				Options(huh.NewOptions(constants.TemperatureOptions...)...).
				Value(&rec.Weather.Temperature),
			huh.NewSelect[string]().
				Title("Sky").
				Options(huh.NewOptions(constants.SkyOptions...)...).
				Value(&rec.Weather.Sky),
			huh.NewSelect[string]().
				Title("Precipitation").
				Options(huh.NewOptions(constants.PrecipitationOptions...)...).
				Value(&rec.Weather.Precipitation),
			huh.NewSelect[string]().
				Title("Wind").
				Options(huh.NewOptions(constants.WindOptions...)...).
				Value(&rec.Weather.Wind),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Work started (HH:MM)").
				Value(&rec.WorkingHours.StartTime).
				Validate(validateClock),
			huh.NewInput().
				Title("Work ended (HH:MM)").
				Value(&rec.WorkingHours.EndTime).
				Validate(validateClock),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Work progress").
				Lines(3).
				Value(&rec.Progress),
			huh.NewText().
				Title("Safety observations").
				Lines(3).
				Value(&rec.Safety),
			huh.NewText().
				Title("Materials used").
				Lines(2).
				Value(&rec.Materials),
			huh.NewText().
				Title("Equipment on site").
				Lines(2).
				Value(&rec.Equipment),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Labor").
				Lines(2).
				Value(&rec.Labor),
			huh.NewText().
				Title("Issues encountered").
				Lines(2).
				Value(&rec.Issues),
			huh.NewText().
				Title("Next steps").
				Lines(2).
				Value(&rec.NextSteps),
			huh.NewText().
				Title("Additional notes").
				Lines(3).
				Value(&rec.Notes),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Photo URLs (comma-separated, optional)").
				Value(&imageURLs),
			huh.NewInput().
				Title("Signature URL (optional)").
				Value(&rec.Signature),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("entry form error: %w", err)
	}

	tasks, err := collectTasks()
	if err != nil {
		return err
	}
	rec.Tasks = tasks

	for _, url := range strings.Split(imageURLs, ",") {
		url = strings.TrimSpace(url)
		if url != "" {
			rec.ImageURLs = append(rec.ImageURLs, url)
		}
	}

	if err := validation.ValidateRecord(rec); err != nil {
		return err
	}

	saved, err := ctx.Store.Put(rec)
	if err != nil {
		return err
	}

	fmt.Printf("Added diary entry: %s (ID: %s)\n", saved.Title, saved.ID)
	return nil
}

// collectTasks loops one form per task until the user declines to add more.
func collectTasks() ([]models.Task, error) {
	var tasks []models.Task
	for {
		addMore := false
		prompt := "Add a task?"
		if len(tasks) > 0 {
			prompt = "Add another task?"
		}
		confirmForm := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().Title(prompt).Value(&addMore),
		))
		if err := confirmForm.Run(); err != nil {
			return nil, fmt.Errorf("entry form error: %w", err)
		}
		if !addMore {
			return tasks, nil
		}

		var (
			description string
			equipment   []string
			quantityStr string
			unit        string
		)
		taskForm := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Task").
				Options(huh.NewOptions(constants.CommonTasks...)...).
				Value(&description),
			huh.NewMultiSelect[string]().
				Title("Equipment used").
				Options(huh.NewOptions(constants.CommonEquipment...)...).
				Value(&equipment),
			huh.NewInput().
				Title("Quantity").
				Value(&quantityStr).
				Validate(validateQuantity),
			huh.NewSelect[string]().
				Title("Unit").
				Options(huh.NewOptions(constants.Units...)...).
				Value(&unit),
		))
		if err := taskForm.Run(); err != nil {
			return nil, fmt.Errorf("entry form error: %w", err)
		}

		quantity, _ := strconv.ParseFloat(strings.TrimSpace(quantityStr), 64)
		tasks = append(tasks, models.Task{
			Description: description,
			Equipment:   equipment,
			Quantity:    quantity,
			Unit:        unit,
		})
	}
}

func validateClock(value string) error {
	return validation.ValidateWorkingHours(models.WorkingHours{StartTime: value})
}

func validateQuantity(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	q, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("quantity must be a number")
	}
	if q < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}
	return nil
}
