// Package service implements the query executor that the list and search
// endpoints share.
package service

import (
	"context"

	"github.com/pageza/recipe-explorer/backend/internal/model"
	"github.com/pageza/recipe-explorer/backend/internal/query"
	"github.com/pageza/recipe-explorer/backend/internal/store"
)

// RecipeService handles recipe queries
type RecipeService struct {
	store store.RecipeStore
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(s store.RecipeStore) *RecipeService {
	return &RecipeService{store: s}
}

// List returns one page of the whole catalog
func (s *RecipeService) List(ctx context.Context, w query.Window) (*model.Envelope, error) {
	return s.execute(ctx, query.Predicate{}, w)
}

// Search returns one page of the recipes matching in. Unparseable or blank
// fields are ignored, so a search without usable filters is a listing.
func (s *RecipeService) Search(ctx context.Context, in query.FilterInput, w query.Window) (*model.Envelope, error) {
	return s.execute(ctx, query.Compile(in), w)
}

// Ping reports whether the backing store is reachable
func (s *RecipeService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *RecipeService) execute(ctx context.Context, p query.Predicate, w query.Window) (*model.Envelope, error) {
	res, err := s.store.Find(ctx, p, w)
	if err != nil {
		return nil, err
	}

	data := res.Data
	if data == nil {
		data = []model.Recipe{}
	}

	return &model.Envelope{
		Page:  w.Page,
		Limit: w.Limit,
		Total: res.Total,
		Data:  data,
	}, nil
}
