// Package ingest loads a recipe dump into a store, replacing its contents.
package ingest

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/pageza/recipe-explorer/backend/internal/store"
)

// Ingester parses a source and replaces the catalog with it.
type Ingester struct {
	store store.RecipeStore
	log   logrus.FieldLogger
}

// NewIngester creates an ingester writing into s. s may be nil for dry runs.
func NewIngester(s store.RecipeStore, log logrus.FieldLogger) *Ingester {
	return &Ingester{store: s, log: log}
}

// Run reads r to the end and loads every recipe it contains. The input is
// fully parsed before anything is deleted. With dryRun set nothing is
// written. It returns the number of recipes parsed.
func (i *Ingester) Run(ctx context.Context, r io.Reader, dryRun bool) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("failed to read source: %w", err)
	}

	recipes, err := Parse(data)
	if err != nil {
		return 0, err
	}

	if dryRun {
		i.log.WithField("count", len(recipes)).Info("Dry run, nothing written")
		return len(recipes), nil
	}

	if err := i.store.Replace(ctx, recipes); err != nil {
		return 0, fmt.Errorf("failed to replace recipes: %w", err)
	}
	i.log.WithField("count", len(recipes)).Info("Ingested recipes")
	return len(recipes), nil
}
