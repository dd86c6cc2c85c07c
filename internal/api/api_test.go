package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealfinder/backend/internal/middleware"
	"github.com/pageza/mealfinder/backend/internal/mocks"
	"github.com/pageza/mealfinder/backend/internal/web"
)

const testSession = "5f0c7c3e-8a4e-4d7e-9a57-0a4b8f3c2d11"

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestRouter(t *testing.T) (*gin.Engine, *mocks.MockSearchService) {
	t.Helper()
	search := new(mocks.MockSearchService)
	t.Cleanup(func() { search.AssertExpectations(t) })

	router := gin.New()
	router.SetHTMLTemplate(web.Templates())
	app := router.Group("", middleware.Session(time.Hour, false))
	NewPageHandler(search, 3).RegisterRoutes(app)
	NewRecipeHandler(search).RegisterRoutes(app.Group("/api/v1", middleware.ErrorHandler()))
	return router, search
}

func doRequest(router http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: testSession})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
