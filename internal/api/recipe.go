package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/schema"

	"github.com/pageza/recipe-explorer/backend/internal/query"
	"github.com/pageza/recipe-explorer/backend/internal/service"
)

type RecipeHandler struct {
	recipes      service.IRecipeService
	decoder      *schema.Decoder
	defaultLimit int
	maxLimit     int
}

func NewRecipeHandler(recipes service.IRecipeService, defaultLimit, maxLimit int) *RecipeHandler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &RecipeHandler{
		recipes:      recipes,
		decoder:      decoder,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/search", h.SearchRecipes)
	}
}

func (h *RecipeHandler) window(page, limit string) query.Window {
	return query.ParseWindow(page, limit, h.defaultLimit, h.maxLimit)
}

// ListRecipes handles GET /api/recipes
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var req pageRequest
	// Every field is a string, so decoding only fails on keys we ignore anyway.
	_ = h.decoder.Decode(&req, c.Request.URL.Query())

	env, err := h.recipes.List(c.Request.Context(), h.window(req.Page, req.Limit))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, env)
}

// SearchRecipes handles GET /api/recipes/search
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	var req searchRequest
	_ = h.decoder.Decode(&req, c.Request.URL.Query())

	env, err := h.recipes.Search(c.Request.Context(), req.filters(), h.window(req.Page, req.Limit))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, env)
}
