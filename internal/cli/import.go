package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/ahasite/sitediary/internal/models"
)

type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"JSON file holding one entry or an array of entries."`
}

// Run ingests diary entries exported by earlier versions of the app. Each
// raw entry passes through the legacy-shape normalizer before it is stored,
// so historical field layouts land in the canonical schema.
func (c *ImportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		// Not an array; treat the file as a single entry
		raws = []json.RawMessage{data}
	}

	imported := 0
	for i, raw := range raws {
		rec, err := models.NormalizeRecord(raw)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		if _, err := ctx.Store.Put(rec); err != nil {
			return fmt.Errorf("entry %d (%s): %w", i+1, rec.ID, err)
		}
		imported++
	}

	fmt.Printf("✓ Imported %d diary entries from %s\n", imported, c.File)
	return nil
}
