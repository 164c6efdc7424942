package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/pageza/recipe-explorer/backend/config"
	"github.com/pageza/recipe-explorer/backend/internal/ingest"
	"github.com/pageza/recipe-explorer/backend/internal/logging"
	"github.com/pageza/recipe-explorer/backend/internal/store"
)

// RunCommand returns the run CLI command.
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Parse a recipe dump and replace the catalog with it",
		Description: `The source is parsed completely before anything is deleted, so a
malformed file leaves the existing catalog untouched.

Example:
  ingest run --source s3://dumps/recipes.json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "Path or s3://bucket/key of the recipe dump (default from config)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Parse and count the recipes without writing anything",
			},
		},
		Action: runIngest,
	}
}

// MigrateCommand returns the migrate CLI command.
func MigrateCommand() *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "Create the recipes table or collection indexes without loading data",
		Action: runMigrate,
	}
}

func setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, logging.New(cfg.LogLevel, cfg.LogFormat), nil
}

func runIngest(c *cli.Context) error {
	ctx := c.Context
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	raw := c.String("source")
	if raw == "" {
		raw = cfg.IngestSource
	}
	src, err := ingest.ParseSource(raw)
	if err != nil {
		return err
	}

	var objects ingest.ObjectGetter
	if src.IsS3() {
		s3cfg, err := config.NewS3Config(ctx, cfg.AWSRegion)
		if err != nil {
			return fmt.Errorf("failed to configure S3: %w", err)
		}
		objects = s3cfg.Client
	}

	body, err := src.Open(ctx, objects)
	if err != nil {
		return err
	}
	defer body.Close()

	dryRun := c.Bool("dry-run")
	var target store.RecipeStore
	if !dryRun {
		s, closeStore, err := store.Open(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := closeStore(); err != nil {
				log.WithError(err).Warn("Failed to close storage")
			}
		}()
		target = s
	}

	log.WithField("source", src.String()).Info("Ingesting recipes")
	n, err := ingest.NewIngester(target, log).Run(ctx, body, dryRun)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Ingested %d\n", n)
	return nil
}

func runMigrate(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	_, closeStore, err := store.Open(c.Context, cfg, log)
	if err != nil {
		return err
	}
	log.WithField("driver", cfg.StorageDriver).Info("Schema is up to date")
	return closeStore()
}
