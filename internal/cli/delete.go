package cli

import (
	"errors"
	"fmt"

	"github.com/ahasite/sitediary/internal/storage"
)

type DeleteCmd struct {
	ID    string `arg:"" help:"Record id to delete."`
	Force bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	rec, err := ctx.Store.Get(c.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Printf("No diary entry with id %s\n", c.ID)
			return nil
		}
		return err
	}

	if !c.Force {
		ok, err := confirm(fmt.Sprintf("Delete %q (%s)? This cannot be undone.", rec.Title, rec.Date))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Delete(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted diary entry: %s\n", c.ID)
	return nil
}
