package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/chihom/internal/service"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
//
// Fixed knowledge routes win over /knowledge/{slug}: an article whose slug
// is "categories", "tags", "stats" or "recent" is reachable only by its id
// or through the MCP read_article tool.
func NewRouter(svc *service.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Route("/menu", func(r chi.Router) {
		r.Get("/categories", h.MenuCategories)
		r.Get("/categories/{id}", h.MenuCategory)
		r.Get("/items", h.Recipes)
		r.Get("/items/{id}", h.Recipe)
		r.Get("/popular", h.PopularRecipes)
		r.Get("/shopping-list", h.ShoppingList)
	})

	r.Route("/knowledge", func(r chi.Router) {
		r.Get("/", h.SearchKnowledge)
		r.Get("/categories", h.KnowledgeCategories)
		r.Get("/categories/{category}", h.ArticlesByCategory)
		r.Get("/tags", h.KnowledgeTags)
		r.Get("/stats", h.KnowledgeStats)
		r.Get("/recent", h.RecentArticles)
		r.Get("/{slug}", h.Article)
		r.Get("/*", h.Article)
	})

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", h.SearchProjects)
		r.Get("/categories", h.ProjectCategories)
		r.Get("/languages", h.ProjectLanguages)
		r.Get("/languages/{language}", h.ProjectsByLanguage)
		r.Get("/topics/{topic}", h.ProjectsByTopic)
		r.Get("/stats", h.ProjectStats)
		r.Get("/recent", h.RecentProjects)
		r.Get("/trending", h.TrendingProjects)
		r.Get("/{id}", h.Project)
	})

	r.Get("/themes", h.Themes)
	r.Get("/theme", h.ActiveTheme)
	r.Put("/theme", h.ApplyTheme)
	r.Delete("/theme", h.ResetTheme)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
