package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/lifetracker/internal/backup"
	"github.com/julianstephens/lifetracker/internal/cli"
	"github.com/julianstephens/lifetracker/internal/storage"
)

type DoctorCmd struct{}

// errSkipped marks a check that does not apply to the configured backend.
var errSkipped = errors.New("not applicable")

type check struct {
	name string
	// warnOnly checks report a warning instead of failing the run.
	warnOnly bool
	// needsDB checks are skipped when the database is unreachable.
	needsDB bool
	run     func(context.Context, *cli.Context) error
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Data readable", needsDB: true, run: checkDataReadable},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	defer ctx.Store.Close()

	appCtx := context.Background()
	ctx.Println(titleStyle.Render("Running diagnostics..."))

	hasError := false
	dbReachable := true

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("%s %s: %s\n", mutedStyle.Render("⊘"), c.name, mutedStyle.Render("SKIPPED (database not reachable)"))
			continue
		}

		err := c.run(appCtx, ctx)
		switch {
		case err == nil:
			ctx.Printf("%s %s: %s\n", okStyle.Render("✓"), c.name, okStyle.Render("OK"))
		case errors.Is(err, errSkipped):
			ctx.Printf("%s %s: %s\n", mutedStyle.Render("⊘"), c.name, mutedStyle.Render("SKIPPED ("+err.Error()+")"))
		case c.warnOnly:
			ctx.Printf("%s %s: %s\n", warnStyle.Render("⚠"), c.name, warnStyle.Render("WARNING"))
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("%s %s: %s\n", failStyle.Render("❌"), c.name, failStyle.Render("FAIL"))
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == checks[0].name {
				dbReachable = false
			}
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(appCtx context.Context, ctx *cli.Context) error {
	if err := ctx.Store.Load(appCtx); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if err := ctx.Store.Ping(appCtx); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func schemaStatus(appCtx context.Context, ctx *cli.Context) (int, int, error) {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return 0, 0, fmt.Errorf("%w: storage has no schema", errSkipped)
	}
	return migrator.SchemaStatus(appCtx)
}

func checkSchemaVersion(appCtx context.Context, ctx *cli.Context) error {
	current, latest, err := schemaStatus(appCtx, ctx)
	if err != nil {
		return err
	}
	if current == 0 {
		return fmt.Errorf("no schema version recorded - run 'lifetracker migrate'")
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(appCtx context.Context, ctx *cli.Context) error {
	current, latest, err := schemaStatus(appCtx, ctx)
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkDataReadable(appCtx context.Context, ctx *cli.Context) error {
	if _, err := ctx.Tracker().Dashboard.Stats(appCtx); err != nil {
		return fmt.Errorf("failed to read records: %w", err)
	}
	return nil
}

func checkBackupsPresent(_ context.Context, ctx *cli.Context) error {
	path, err := ctx.SQLitePath()
	if err != nil {
		return fmt.Errorf("%w: backups are SQLite only", errSkipped)
	}

	backups, err := backup.NewManager(path).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'lifetracker backup create'")
	}
	return nil
}

func checkClockTimezone(_ context.Context, ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Location == nil {
		return fmt.Errorf("no timezone configured")
	}
	return nil
}
