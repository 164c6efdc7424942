package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-explorer/backend/internal/model"
	"github.com/pageza/recipe-explorer/backend/internal/query"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// List mocks the List method
func (m *MockRecipeService) List(ctx context.Context, w query.Window) (*model.Envelope, error) {
	args := m.Called(ctx, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Envelope), args.Error(1)
}

// Search mocks the Search method
func (m *MockRecipeService) Search(ctx context.Context, in query.FilterInput, w query.Window) (*model.Envelope, error) {
	args := m.Called(ctx, in, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Envelope), args.Error(1)
}

// Ping mocks the Ping method
func (m *MockRecipeService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
