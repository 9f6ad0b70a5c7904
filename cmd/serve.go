package main

import (
	"context"
	"fmt"
	"net"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tdx/internal/server"
)

// Serve exposes the selected daemon and the task metrics over HTTP until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	a, err := r.Adapter()
	if err != nil {
		return err
	}

	addr := cmd.String("addr")
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	r.writePlain("Serving %s on http://%s (metrics at /metrics)\n", a.Settings().Name, ln.Addr())
	return server.Serve(ctx, ln, server.New(a, r.metrics, r.logger), r.logger)
}
