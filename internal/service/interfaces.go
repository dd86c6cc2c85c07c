package service

import (
	"context"

	"github.com/pageza/mealfinder/backend/internal/model"
	"github.com/pageza/mealfinder/backend/internal/types"
)

// RecipeSource is the upstream recipe database.
type RecipeSource interface {
	FilterByIngredient(ctx context.Context, ingredient string) ([]types.RecipeSummary, error)
	LookupByID(ctx context.Context, id string) (*types.RecipeDetail, error)
}

// IRecipePipeline runs the two-stage recipe lookup.
type IRecipePipeline interface {
	FetchRecipes(ctx context.Context, rawInput string) types.FetchOutcome
}

// IResultStore owns the last successful result set of each session.
type IResultStore interface {
	// Begin issues the next sequence number for a search in the session.
	Begin(ctx context.Context, sessionID string) (uint64, error)
	// Commit replaces the session's result set if seq is still the latest
	// issued number. It reports whether the set was replaced.
	Commit(ctx context.Context, set *types.ResultSet) (bool, error)
	// Latest returns the last committed result set, or nil if none.
	Latest(ctx context.Context, sessionID string) (*types.ResultSet, error)
}

// IHistoryService records searches for later listing.
type IHistoryService interface {
	Record(ctx context.Context, entry *model.SearchLog) error
	Recent(ctx context.Context, sessionID string, limit int) ([]model.SearchLog, error)
}

// ISearchService is the presentation-facing search API.
type ISearchService interface {
	Search(ctx context.Context, sessionID, rawInput string) (*SearchResult, error)
	Recipe(ctx context.Context, sessionID, recipeID string) (*types.RecipeDetail, error)
	History(ctx context.Context, sessionID string, limit int) ([]model.SearchLog, error)
}
