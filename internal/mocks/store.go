// Package mocks provides testify mocks for the storage and service layers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-explorer/backend/internal/model"
	"github.com/pageza/recipe-explorer/backend/internal/query"
	"github.com/pageza/recipe-explorer/backend/internal/store"
)

// MockRecipeStore is a mock implementation of store.RecipeStore
type MockRecipeStore struct {
	mock.Mock
}

// Find mocks the Find method
func (m *MockRecipeStore) Find(ctx context.Context, p query.Predicate, w query.Window) (store.Result, error) {
	args := m.Called(ctx, p, w)
	return args.Get(0).(store.Result), args.Error(1)
}

// Replace mocks the Replace method
func (m *MockRecipeStore) Replace(ctx context.Context, recipes []model.Recipe) error {
	args := m.Called(ctx, recipes)
	return args.Error(0)
}

// Ping mocks the Ping method
func (m *MockRecipeStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
