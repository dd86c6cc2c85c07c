package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/pageza/mealfinder/backend/internal/errors"
	"github.com/pageza/mealfinder/backend/internal/middleware"
	"github.com/pageza/mealfinder/backend/internal/service"
	"github.com/pageza/mealfinder/backend/internal/types"
	"github.com/pageza/mealfinder/backend/internal/view"
)

// RecipeHandler serves the JSON search API. Errors are attached to the
// context and rendered by middleware.ErrorHandler.
type RecipeHandler struct {
	search service.ISearchService
}

func NewRecipeHandler(search service.ISearchService) *RecipeHandler {
	return &RecipeHandler{search: search}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("/search", h.SearchRecipes)
		recipes.GET("/:id", h.GetRecipe)
	}
	router.GET("/searches", h.ListSearches)
}

// SearchRecipes runs a search. Empty and failed searches are still a 200
// with the status and placeholder message set.
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		_ = c.Error(apperrors.New(apperrors.ErrValidation, http.StatusBadRequest, service.MsgEmptyInput))
		return
	}

	result, err := h.search.Search(c.Request.Context(), middleware.SessionID(c), req.Query)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, newSearchResponse(result))
}

// GetRecipe returns a recipe of the session's last successful search.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.search.Recipe(c.Request.Context(), middleware.SessionID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, view.NewDetail(*recipe))
}

func (h *RecipeHandler) ListSearches(c *gin.Context) {
	var req types.HistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		_ = c.Error(apperrors.New(apperrors.ErrValidation, http.StatusBadRequest, "limit must be a number"))
		return
	}

	searches, err := h.search.History(c.Request.Context(), middleware.SessionID(c), req.Limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, HistoryResponse{Searches: searches})
}
