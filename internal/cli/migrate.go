package cli

import (
	"fmt"

	"github.com/ahasite/sitediary/internal/storage/sqlite"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return fmt.Errorf("store does not support schema migrations")
	}

	applied, err := store.Migrate(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return err
	}

	if applied > 0 {
		fmt.Printf("✓ Applied %d migration(s)\n", applied)
	}
	return nil
}
