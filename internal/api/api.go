// Package api contains the gin handlers of the recipe browsing API.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipe-explorer/backend/config"
	"github.com/pageza/recipe-explorer/backend/internal/service"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, recipes service.IRecipeService, cfg *config.Config, log logrus.FieldLogger) {
	healthHandler := NewHealthHandler(recipes, log)
	recipeHandler := NewRecipeHandler(recipes, cfg.DefaultLimit, cfg.MaxLimit)

	v := router.Group("/api")
	{
		v.GET("/health", healthHandler.HealthCheck)
		recipeHandler.RegisterRoutes(v)
	}
}
