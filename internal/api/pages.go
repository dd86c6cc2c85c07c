package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/pageza/mealfinder/backend/internal/errors"
	"github.com/pageza/mealfinder/backend/internal/middleware"
	"github.com/pageza/mealfinder/backend/internal/service"
	"github.com/pageza/mealfinder/backend/internal/types"
	"github.com/pageza/mealfinder/backend/internal/view"
	"github.com/pageza/mealfinder/backend/internal/web"
)

const (
	pageTitle        = "Recipe Finder"
	msgRecipeMissing = "Recipe not found."
)

// PageHandler serves the search page and its HTML fragments. The engine
// must have the web templates loaded.
type PageHandler struct {
	search        service.ISearchService
	skeletonCount int
}

func NewPageHandler(search service.ISearchService, skeletonCount int) *PageHandler {
	return &PageHandler{search: search, skeletonCount: skeletonCount}
}

func (h *PageHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/", h.Index)
	router.GET("/fragments/skeletons", h.Skeletons)
	router.GET("/fragments/results", h.Results)
	router.GET("/fragments/recipes/:id", h.Recipe)
}

func (h *PageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index", web.PageData{
		Title:     pageTitle,
		Skeletons: view.Skeletons(h.skeletonCount),
	})
}

func (h *PageHandler) Skeletons(c *gin.Context) {
	c.HTML(http.StatusOK, "skeletons", view.Skeletons(h.skeletonCount))
}

// Results renders the cards of a search, or a single placeholder message
// when nothing was found or the search failed.
func (h *PageHandler) Results(c *gin.Context) {
	var req types.SearchRequest
	_ = c.ShouldBindQuery(&req)

	result, err := h.search.Search(c.Request.Context(), middleware.SessionID(c), req.Query)
	if err != nil {
		c.HTML(apperrors.HTTPStatusCode(err), "results", web.ResultsData{Message: fragmentMessage(err, service.MsgFetchError)})
		return
	}

	data := web.ResultsData{
		Seq:     result.Seq,
		Stale:   result.Stale,
		Term:    result.Outcome.Term,
		Message: result.Message,
	}
	if result.Outcome.Kind == types.OutcomeSuccess {
		data.Heading = view.Heading(result.Outcome.Term, len(result.Outcome.Recipes))
		data.Cards = view.Cards(result.Outcome.Recipes)
	}
	c.HTML(http.StatusOK, "results", data)
}

// Recipe renders the detail modal body.
func (h *PageHandler) Recipe(c *gin.Context) {
	recipe, err := h.search.Recipe(c.Request.Context(), middleware.SessionID(c), c.Param("id"))
	if err != nil {
		msg := msgRecipeMissing
		if !errors.Is(err, apperrors.ErrNotFound) {
			msg = service.MsgFetchError
		}
		c.HTML(apperrors.HTTPStatusCode(err), "placeholder", msg)
		return
	}

	c.HTML(http.StatusOK, "detail", view.NewDetail(*recipe))
}

// fragmentMessage picks the user-facing text for a failed request.
// Internal errors are logged and replaced by fallback.
func fragmentMessage(err error, fallback string) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	slog.Error("fragment request failed", "component", "http", "error", err)
	return fallback
}
