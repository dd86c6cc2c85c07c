package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealfinder/backend/internal/events"
	"github.com/pageza/mealfinder/backend/internal/model"
	"github.com/pageza/mealfinder/backend/internal/service"
	"github.com/pageza/mealfinder/backend/internal/types"
)

// MockRecipePipeline is a mock implementation of the recipe pipeline
type MockRecipePipeline struct {
	mock.Mock
}

// FetchRecipes mocks the FetchRecipes method
func (m *MockRecipePipeline) FetchRecipes(ctx context.Context, rawInput string) types.FetchOutcome {
	args := m.Called(ctx, rawInput)
	return args.Get(0).(types.FetchOutcome)
}

// MockResultStore is a mock implementation of the session result store
type MockResultStore struct {
	mock.Mock
}

// Begin mocks the Begin method
func (m *MockResultStore) Begin(ctx context.Context, sessionID string) (uint64, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(uint64), args.Error(1)
}

// Commit mocks the Commit method
func (m *MockResultStore) Commit(ctx context.Context, set *types.ResultSet) (bool, error) {
	args := m.Called(ctx, set)
	return args.Bool(0), args.Error(1)
}

// Latest mocks the Latest method
func (m *MockResultStore) Latest(ctx context.Context, sessionID string) (*types.ResultSet, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ResultSet), args.Error(1)
}

// MockHistoryService is a mock implementation of the history service
type MockHistoryService struct {
	mock.Mock
}

// Record mocks the Record method
func (m *MockHistoryService) Record(ctx context.Context, entry *model.SearchLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// Recent mocks the Recent method
func (m *MockHistoryService) Recent(ctx context.Context, sessionID string, limit int) ([]model.SearchLog, error) {
	args := m.Called(ctx, sessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SearchLog), args.Error(1)
}

// MockSearchService is a mock implementation of the search service
type MockSearchService struct {
	mock.Mock
}

// Search mocks the Search method
func (m *MockSearchService) Search(ctx context.Context, sessionID, rawInput string) (*service.SearchResult, error) {
	args := m.Called(ctx, sessionID, rawInput)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SearchResult), args.Error(1)
}

// Recipe mocks the Recipe method
func (m *MockSearchService) Recipe(ctx context.Context, sessionID, recipeID string) (*types.RecipeDetail, error) {
	args := m.Called(ctx, sessionID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeDetail), args.Error(1)
}

// History mocks the History method
func (m *MockSearchService) History(ctx context.Context, sessionID string, limit int) ([]model.SearchLog, error) {
	args := m.Called(ctx, sessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SearchLog), args.Error(1)
}

// MockPublisher is a mock implementation of the search event publisher
type MockPublisher struct {
	mock.Mock
}

// Publish mocks the Publish method
func (m *MockPublisher) Publish(ctx context.Context, event events.SearchEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// Close mocks the Close method
func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
