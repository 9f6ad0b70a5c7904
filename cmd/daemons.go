package main

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tdx/internal/formatter"
	"github.com/desertthunder/tdx/internal/models"
)

// DaemonsList prints the configured daemons and the daemon types this build can talk to.
func (r *Runner) DaemonsList(ctx context.Context, cmd *cli.Command) error {
	registry := r.Registry()
	if err := r.write(formatter.DaemonsToText(r.config.Daemons, registry.Supports)); err != nil {
		return err
	}

	kinds := registry.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return r.writePlainln("Available adapters: %s (of %d known daemon types)", strings.Join(names, ", "), len(models.Daemons()))
}
