package cli

import (
	"fmt"

	"github.com/ahasite/sitediary/internal/models"
)

type SubmitCmd struct {
	ID string `arg:"" help:"Record id to mark as submitted."`
}

func (c *SubmitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	rec, err := ctx.Store.Get(c.ID)
	if err != nil {
		return err
	}

	if rec.Status == models.StatusSubmitted {
		fmt.Printf("Entry %s is already submitted\n", c.ID)
		return nil
	}

	rec.Status = models.StatusSubmitted
	if _, err := ctx.Store.Put(rec); err != nil {
		return err
	}

	fmt.Printf("Submitted diary entry: %s\n", c.ID)
	return nil
}
