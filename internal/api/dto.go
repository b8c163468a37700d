package api

import (
	"github.com/starford/chihom/internal/catalog"
	"github.com/starford/chihom/internal/models"
	"github.com/starford/chihom/internal/service"
)

// ListResponse wraps collection listings.
type ListResponse[T any] struct {
	Items []T `json:"items" validate:"required"`
	Total int `json:"total" example:"20" validate:"required"`
}

func newList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}

// ShoppingListResponse is returned by GET /api/menu/shopping-list.
type ShoppingListResponse struct {
	Recipes []int                   `json:"recipes" example:"1,2"`
	Entries []catalog.ShoppingEntry `json:"entries" validate:"required"`
}

// ArticleResponse is a single knowledge article (aliased from the service layer).
type ArticleResponse = service.Article

// ApplyThemeRequest is the request body for PUT /api/theme.
type ApplyThemeRequest struct {
	Name string `json:"name" example:"蓝色" validate:"required"`
}

// ThemeResponse is the active theme (aliased from the service layer).
type ThemeResponse = service.ActiveTheme

// RecipeListResponse documents recipe listings for swag.
type RecipeListResponse = ListResponse[models.Recipe]

// ArticleListResponse documents article listings for swag.
type ArticleListResponse = ListResponse[models.KnowledgeItem]

// ProjectListResponse documents project listings for swag.
type ProjectListResponse = ListResponse[models.Project]
