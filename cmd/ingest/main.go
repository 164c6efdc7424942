// Package main provides the ingest CLI that loads a recipe dump into storage.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "ingest",
		Usage: "Load recipe dumps into the configured storage backend",
		Description: `Reads a JSON array, an object of recipe objects or NDJSON from a local
file or an s3://bucket/key location and replaces the whole catalog with it.

Storage is selected with the same configuration as the API server
(STORAGE_DRIVER, DB_*, MONGODB_URI, REDIS_URL, CONFIG_FILE).`,
		Commands: []*cli.Command{
			RunCommand(),
			MigrateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
