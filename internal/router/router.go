package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pageza/mealfinder/backend/config"
	"github.com/pageza/mealfinder/backend/internal/api"
	"github.com/pageza/mealfinder/backend/internal/metrics"
	"github.com/pageza/mealfinder/backend/internal/middleware"
	"github.com/pageza/mealfinder/backend/internal/web"
)

// Handlers groups the route handlers mounted by SetupRouter.
type Handlers struct {
	Pages   *api.PageHandler
	Recipes *api.RecipeHandler
	Health  *api.HealthHandler
}

// SetupRouter configures the application routes. m may be nil to disable
// the metrics middleware and scrape endpoint.
func SetupRouter(cfg *config.Config, m *metrics.Metrics, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(), middleware.RequestLogger())

	if m != nil {
		router.Use(middleware.Metrics(m))
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	if corsConfig, ok := corsConfig(cfg.CORSOrigins); ok {
		router.Use(cors.New(corsConfig))
	}

	router.SetHTMLTemplate(web.Templates())
	router.StaticFS("/static", web.Static())

	router.GET("/healthz", h.Health.HealthCheck)

	app := router.Group("", middleware.Session(cfg.SessionTTL, cfg.Environment == config.Production))
	h.Pages.RegisterRoutes(app)

	// API v1 routes
	v1 := app.Group("/api/v1", middleware.ErrorHandler())
	h.Recipes.RegisterRoutes(v1)

	return router
}

func corsConfig(origins []string) (cors.Config, bool) {
	if len(origins) == 0 {
		return cors.Config{}, false
	}

	c := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return c, true
}
