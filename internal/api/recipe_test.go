package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/pageza/mealfinder/backend/internal/errors"
	"github.com/pageza/mealfinder/backend/internal/model"
	"github.com/pageza/mealfinder/backend/internal/service"
	"github.com/pageza/mealfinder/backend/internal/types"
)

var chickenRecipes = []types.RecipeDetail{
	{
		ID:       "52772",
		Name:     "Teriyaki Chicken Casserole",
		Category: "Chicken",
		Ingredients: []types.Ingredient{
			{Position: 1, Name: "soy sauce", Measure: "3/4 cup"},
			{Position: 3, Name: "Salt"},
		},
	},
	{ID: "52940", Name: "Brown Stew Chicken"},
}

func TestSearchRecipesSuccess(t *testing.T) {
	router, search := setupTestRouter(t)
	search.On("Search", mock.Anything, testSession, "chicken, rice").
		Return(&service.SearchResult{Outcome: types.Success("chicken", chickenRecipes), Seq: 3}, nil)

	w := doRequest(router, "/api/v1/recipes/search?q=chicken,+rice")

	require.Equal(t, http.StatusOK, w.Code)
	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, uint64(3), resp.Seq)
	assert.Equal(t, "chicken", resp.Term)
	assert.False(t, resp.Stale)
	require.Len(t, resp.Recipes, 2)
	assert.Equal(t, "52772", resp.Recipes[0].ID)
	assert.Equal(t, []string{"3/4 cup soy sauce", "Salt"}, resp.Recipes[0].Ingredients)
	assert.Equal(t, "N/A", resp.Recipes[1].Category)
	assert.Equal(t, "No instructions available.", resp.Recipes[1].Instructions)
}

func TestSearchRecipesEmptyAndFailure(t *testing.T) {
	tests := []struct {
		name    string
		result  *service.SearchResult
		status  string
		message string
	}{
		{
			name:    "empty",
			result:  &service.SearchResult{Outcome: types.Empty("dragonfruit"), Seq: 1, Message: service.MsgNoRecipes},
			status:  "empty",
			message: "No recipes found.",
		},
		{
			name:    "failure",
			result:  &service.SearchResult{Outcome: types.Failure("egg", apperrors.Transportf("status 503")), Seq: 2, Message: service.MsgFetchError},
			status:  "failure",
			message: "Error fetching recipes. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, search := setupTestRouter(t)
			search.On("Search", mock.Anything, testSession, "x").Return(tt.result, nil)

			w := doRequest(router, "/api/v1/recipes/search?q=x")

			require.Equal(t, http.StatusOK, w.Code)
			var resp SearchResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.message, resp.Message)
			assert.Empty(t, resp.Recipes)
		})
	}
}

func TestSearchRecipesValidation(t *testing.T) {
	router, search := setupTestRouter(t)
	search.On("Search", mock.Anything, testSession, "").
		Return(nil, apperrors.New(apperrors.ErrValidation, http.StatusBadRequest, service.MsgEmptyInput))

	w := doRequest(router, "/api/v1/recipes/search")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Please enter an ingredient."}`, w.Body.String())
}

func TestSearchRecipesInternalError(t *testing.T) {
	router, search := setupTestRouter(t)
	search.On("Search", mock.Anything, testSession, "egg").Return(nil, errors.New("redis down"))

	w := doRequest(router, "/api/v1/recipes/search?q=egg")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
}

func TestGetRecipe(t *testing.T) {
	router, search := setupTestRouter(t)
	search.On("Recipe", mock.Anything, testSession, "52772").Return(&chickenRecipes[0], nil)

	w := doRequest(router, "/api/v1/recipes/52772")

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "52772", resp["id"])
	assert.Equal(t, "Chicken", resp["category"])
}

func TestGetRecipeNotInResults(t *testing.T) {
	router, search := setupTestRouter(t)
	search.On("Recipe", mock.Anything, testSession, "1").
		Return(nil, apperrors.Newf(apperrors.ErrNotFound, http.StatusNotFound, "recipe %s is not in the current results", "1"))

	w := doRequest(router, "/api/v1/recipes/1")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"recipe 1 is not in the current results"}`, w.Body.String())
}

func TestListSearches(t *testing.T) {
	router, search := setupTestRouter(t)
	search.On("History", mock.Anything, testSession, 5).Return([]model.SearchLog{
		{Seq: 2, Query: "egg", Term: "egg", Outcome: types.OutcomeEmpty},
		{Seq: 1, Query: "chicken", Term: "chicken", Outcome: types.OutcomeSuccess, ResultCount: 2},
	}, nil)

	w := doRequest(router, "/api/v1/searches?limit=5")

	require.Equal(t, http.StatusOK, w.Code)
	var resp HistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Searches, 2)
	assert.Equal(t, "egg", resp.Searches[0].Term)
	assert.Equal(t, types.OutcomeSuccess, resp.Searches[1].Outcome)
}

func TestListSearchesBadLimit(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, "/api/v1/searches?limit=many")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
