package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ahasite/sitediary/internal/cli"
	"github.com/ahasite/sitediary/internal/constants"
	"github.com/ahasite/sitediary/internal/errors"
	"github.com/ahasite/sitediary/internal/logger"
	"github.com/ahasite/sitediary/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"path" default:"~/.config/sitediary/sitediary.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init   cli.InitCmd   `cmd:"" help:"Initialize sitediary storage."`
	New    cli.NewCmd    `cmd:"" help:"Create a diary entry interactively."`
	List   cli.ListCmd   `cmd:"" help:"List diary entries."`
	Show   cli.ShowCmd   `cmd:"" help:"Show one diary entry in full."`
	Delete cli.DeleteCmd `cmd:"" help:"Delete a diary entry."`
	Submit cli.SubmitCmd `cmd:"" help:"Mark a diary entry as submitted."`
	Export cli.ExportCmd `cmd:"" help:"Export diary entries to PDF, xlsx, or CSV."`
	Import cli.ImportCmd `cmd:"" help:"Import entries from a legacy JSON export."`
	Sync   cli.SyncCmd   `cmd:"" help:"Push pending entries to a remote endpoint."`
	Token  struct {
		Set   cli.TokenSetCmd   `cmd:"" help:"Store the sync bearer token in the OS keyring."`
		Clear cli.TokenClearCmd `cmd:"" help:"Remove the stored sync bearer token."`
	} `cmd:"" help:"Manage the sync bearer token."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a database backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the database from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Migrate cli.MigrateCmd `cmd:"" help:"Apply pending schema migrations."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run health checks."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Construction site diary - offline-first records with PDF/xlsx/CSV export"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store := sqlite.NewStore(CLI.Config)
	appCtx := &cli.Context{Store: store}

	err := ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	errors.Fatal(err)
}
