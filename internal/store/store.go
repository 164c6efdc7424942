// Package store executes compiled predicates against the recipe collection.
//
// Every backend translates the same query.Predicate clause list natively,
// sorts by rating descending (unrated recipes last, ties by id) and applies
// the pagination window after counting all matches.
package store

import (
	"context"
	"errors"

	"github.com/pageza/recipe-explorer/backend/internal/model"
	"github.com/pageza/recipe-explorer/backend/internal/query"
)

// ErrUnsupportedClause is returned when a backend cannot translate a clause.
var ErrUnsupportedClause = errors.New("unsupported clause")

// Result is one page of matches plus the total match count.
type Result struct {
	Data  []model.Recipe `json:"data"`
	Total int64          `json:"total"`
}

// RecipeStore is the persistence engine behind the query executor.
type RecipeStore interface {
	// Find returns the window of recipes satisfying p and the count of all
	// matches. Data is never nil.
	Find(ctx context.Context, p query.Predicate, w query.Window) (Result, error)
	// Replace deletes every recipe and loads recipes in their place.
	Replace(ctx context.Context, recipes []model.Recipe) error
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}
