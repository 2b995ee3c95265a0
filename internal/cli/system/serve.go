package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/lifetracker/internal/cli"
	"github.com/julianstephens/lifetracker/internal/logger"
	"github.com/julianstephens/lifetracker/internal/server"
)

type ServeCmd struct {
	Addr            string        `help:"Address to listen on." env:"LIFETRACKER_ADDR" default:":8001"`
	CORSOrigins     []string      `name:"cors-origins" help:"Allowed CORS origins." env:"CORS_ORIGINS" default:"*" sep:","`
	ShutdownTimeout time.Duration `help:"Grace period for in-flight requests on shutdown." default:"10s"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	appCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.serve(appCtx, ctx)
}

// serve initializes storage, then blocks until appCtx is cancelled.
func (c *ServeCmd) serve(appCtx context.Context, ctx *cli.Context) error {
	if err := ctx.Store.Init(appCtx); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if err := ctx.Store.Close(); err != nil {
			logger.Warn("Failed to close storage", "error", err)
		}
	}()

	logger.Info("Storage ready", "source", ctx.Store.GetConfigPath(), "timezone", ctx.Location.String())

	srv := server.New(ctx.Tracker(), server.Config{
		Addr:            c.Addr,
		CORSOrigins:     c.CORSOrigins,
		ShutdownTimeout: c.ShutdownTimeout,
	})
	return srv.Run(appCtx)
}
