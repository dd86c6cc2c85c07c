package api

import (
	"github.com/pageza/mealfinder/backend/internal/model"
	"github.com/pageza/mealfinder/backend/internal/service"
	"github.com/pageza/mealfinder/backend/internal/view"
)

// SearchResponse is the JSON body of a search. Status is "success",
// "empty" or "failure"; Recipes is only populated on success.
type SearchResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message,omitempty"`
	Seq     uint64        `json:"seq"`
	Stale   bool          `json:"stale"`
	Term    string        `json:"term"`
	Recipes []view.Detail `json:"recipes"`
}

// HistoryResponse lists recent searches of the session.
type HistoryResponse struct {
	Searches []model.SearchLog `json:"searches"`
}

func newSearchResponse(result *service.SearchResult) SearchResponse {
	resp := SearchResponse{
		Status:  string(result.Outcome.Kind),
		Message: result.Message,
		Seq:     result.Seq,
		Stale:   result.Stale,
		Term:    result.Outcome.Term,
		Recipes: make([]view.Detail, 0, len(result.Outcome.Recipes)),
	}
	for _, r := range result.Outcome.Recipes {
		resp.Recipes = append(resp.Recipes, view.NewDetail(r))
	}
	return resp
}
