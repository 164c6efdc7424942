package service

import (
	"context"

	"github.com/pageza/recipe-explorer/backend/internal/model"
	"github.com/pageza/recipe-explorer/backend/internal/query"
)

// IRecipeService defines the read operations exposed over HTTP
type IRecipeService interface {
	List(ctx context.Context, w query.Window) (*model.Envelope, error)
	Search(ctx context.Context, in query.FilterInput, w query.Window) (*model.Envelope, error)
	Ping(ctx context.Context) error
}
