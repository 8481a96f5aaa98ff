package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/CallMeChewy/Finder/internal/mcp"
)

// serveCommand runs the MCP server over stdio until interrupted.
func serveCommand(c *cli.Context) error {
	cfg, root, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return mcp.NewServer(cfg, root).Run(ctx)
}
