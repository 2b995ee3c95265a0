package system

import (
	"context"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/lifetracker/internal/cli"
	"github.com/julianstephens/lifetracker/internal/models"
)

// StatsCmd prints the dashboard counts.
type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	defer ctx.Store.Close()

	appCtx := context.Background()
	if err := ctx.Store.Load(appCtx); err != nil {
		return err
	}

	stats, err := ctx.Tracker().Dashboard.Stats(appCtx)
	if err != nil {
		return err
	}

	ctx.Println(titleStyle.Render("Dashboard"))
	ctx.Println(renderStats(stats))
	return nil
}

func renderStats(stats models.DashboardStats) string {
	today := failStyle.Render("no")
	if stats.HasTodayJournal {
		today = okStyle.Render("yes")
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers("Metric", "Value").
		Row("Journal entries", strconv.Itoa(stats.TotalJournalEntries)).
		Row("Life tasks", strconv.Itoa(stats.TotalLifeTasks)).
		Row("Journal written today", today).
		Row("Progress logged today", strconv.Itoa(stats.TodayProgressCount)).
		Render()
}
