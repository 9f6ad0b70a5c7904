package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tdx/internal/formatter"
	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/repositories"
	"github.com/desertthunder/tdx/internal/shared"
)

// websearch opens the websearch repository, seeding it from [[websearch]] on first use.
func (r *Runner) websearch() (*repositories.WebsearchRepository, error) {
	db, err := r.Database()
	if err != nil {
		return nil, err
	}

	repo := repositories.NewWebsearchRepository(db)
	n, err := repo.Seed(r.config.Websearch)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		r.logger.Debug("seeded websearch sites from config", "count", n)
	}
	return repo, nil
}

func (r *Runner) WebsearchList(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.websearch()
	if err != nil {
		return err
	}

	settings, err := repo.List()
	if err != nil {
		return err
	}
	return r.write(formatter.WebsearchToText(settings))
}

func (r *Runner) WebsearchAdd(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg("url")
	if url == "" {
		return fmt.Errorf("%w: url", shared.ErrMissingArgument)
	}

	repo, err := r.websearch()
	if err != nil {
		return err
	}

	s, err := repo.Append(cmd.String("name"), url)
	if err != nil {
		return err
	}
	r.writePlain("✓ Added %s as %s\n", s.Name(), s.Key())
	return nil
}

// WebsearchRename changes the display name of a site. Its key stays the same.
func (r *Runner) WebsearchRename(ctx context.Context, cmd *cli.Command) error {
	key, name := cmd.StringArg("key"), cmd.StringArg("name")
	if key == "" || name == "" {
		return fmt.Errorf("%w: key and name", shared.ErrMissingArgument)
	}

	repo, err := r.websearch()
	if err != nil {
		return err
	}

	s, err := repo.Rename(key, name)
	if err != nil {
		return err
	}
	r.writePlain("✓ %s renamed to %s\n", s.Key(), s.Name())
	return nil
}

func (r *Runner) WebsearchRemove(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	if key == "" {
		return fmt.Errorf("%w: key", shared.ErrMissingArgument)
	}

	repo, err := r.websearch()
	if err != nil {
		return err
	}

	if err := repo.Delete(key); err != nil {
		return err
	}
	r.writePlain("✓ Removed %s\n", key)
	return nil
}

// WebsearchOpen searches a site for the query in the default browser.
func (r *Runner) WebsearchOpen(ctx context.Context, cmd *cli.Command) error {
	query := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	repo, err := r.websearch()
	if err != nil {
		return err
	}

	var site models.WebsearchSetting
	if key := cmd.String("key"); key != "" {
		if site, err = repo.Get(key); err != nil {
			return err
		}
	} else {
		settings, err := repo.List()
		if err != nil {
			return err
		}
		if len(settings) == 0 {
			return fmt.Errorf("%w: no websearch sites configured", shared.ErrNotFound)
		}
		site = settings[0]
	}

	url := site.SearchURL(query)
	if cmd.Bool("print") {
		return r.writePlain("%s\n", url)
	}

	r.logger.Info("opening browser", "site", site.Name(), "url", url)
	return r.openURL(url)
}
