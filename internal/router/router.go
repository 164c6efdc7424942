// Package router assembles the gin engine serving the API.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipe-explorer/backend/config"
	"github.com/pageza/recipe-explorer/backend/internal/api"
	"github.com/pageza/recipe-explorer/backend/internal/middleware"
	"github.com/pageza/recipe-explorer/backend/internal/service"
)

// SetupRouter configures the application routes
func SetupRouter(recipes service.IRecipeService, cfg *config.Config, log logrus.FieldLogger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	api.RegisterRoutes(router, recipes, cfg, log)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
