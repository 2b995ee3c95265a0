package main

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/lifetracker/internal/cli"
	"github.com/julianstephens/lifetracker/internal/cli/backups"
	"github.com/julianstephens/lifetracker/internal/cli/system"
	"github.com/julianstephens/lifetracker/internal/config"
	"github.com/julianstephens/lifetracker/internal/constants"
	"github.com/julianstephens/lifetracker/internal/errors"
	"github.com/julianstephens/lifetracker/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	DB       string `name:"db" help:"SQLite file, .json file, PostgreSQL connection string, or 'keyring'. Credentials must NOT be embedded in the connection string." env:"LIFETRACKER_DB" default:"${default_db}"`
	Debug    bool   `help:"Enable debug logging."`
	LogDir   string `help:"Directory for log files." default:"~/.config/lifetracker/logs"`
	Timezone string `help:"Timezone used to decide what 'today' is." env:"TZ_NAME" default:"Local"`

	Serve   system.ServeCmd   `cmd:"" help:"Run the HTTP API." default:"withargs"`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Stats   system.StatsCmd   `cmd:"" help:"Show dashboard statistics."`
	Backup  struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage SQLite database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" help:"Manage PostgreSQL credentials in the OS keyring."`
}

// options configures the kong parser.
func options() []kong.Option {
	return []kong.Option{
		kong.Name(constants.AppName),
		kong.Description("Journal & life task tracker API"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":    constants.Version,
			"default_db": constants.DefaultDBPath,
		},
	}
}

func main() {
	ctx := kong.Parse(&CLI, append(options(), kong.Configuration(config.YAML, config.Paths...))...)

	command := ctx.Command()
	logDir, err := cli.ExpandPath(CLI.LogDir)
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{
		Debug:  CLI.Debug,
		LogDir: logDir,
		Stderr: strings.HasPrefix(command, "serve"),
	}); err != nil {
		errors.Fatal(err)
	}

	loc, err := cli.LoadLocation(CLI.Timezone)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{Location: loc, Out: os.Stdout, In: os.Stdin}

	// Keyring commands manage the credentials a store would be opened with.
	if !strings.HasPrefix(command, "keyring") {
		store, err := cli.OpenStore(CLI.DB)
		if err != nil {
			errors.Fatal(err)
		}
		appCtx.Store = store
	}

	logger.Debug("Running command", "command", command, "db", CLI.DB)
	errors.Fatal(ctx.Run(appCtx))
}
