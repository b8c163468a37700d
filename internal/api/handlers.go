package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/chihom/internal/checksum"
	"github.com/starford/chihom/internal/collection"
	"github.com/starford/chihom/internal/knowledge"
	"github.com/starford/chihom/internal/project"
	"github.com/starford/chihom/internal/service"
)

// Handler holds API route handlers.
type Handler struct {
	svc *service.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// MenuCategories handles GET /api/menu/categories.
//
//	@Summary	List menu categories
//	@Tags		menu
//	@Produce	json
//	@Success	200	{array}	models.RecipeCategory
//	@Router		/menu/categories [get]
func (h *Handler) MenuCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.MenuCategories(r.Context()))
}

// MenuCategory handles GET /api/menu/categories/{id}.
//
//	@Summary	Get a menu category
//	@Tags		menu
//	@Produce	json
//	@Param		id	path		string	true	"Category id"
//	@Success	200	{object}	models.RecipeCategory
//	@Failure	404	{object}	errResponse
//	@Router		/menu/categories/{id} [get]
func (h *Handler) MenuCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.MenuCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Recipes handles GET /api/menu/items.
//
//	@Summary	List recipes, optionally within one category
//	@Tags		menu
//	@Produce	json
//	@Param		category	query		string	false	"Category id"
//	@Success	200			{object}	RecipeListResponse
//	@Router		/menu/items [get]
func (h *Handler) Recipes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newList(h.svc.Recipes(r.Context(), r.URL.Query().Get("category"))))
}

// Recipe handles GET /api/menu/items/{id}.
//
//	@Summary	Get a recipe
//	@Tags		menu
//	@Produce	json
//	@Param		id	path		int	true	"Recipe id"
//	@Success	200	{object}	models.Recipe
//	@Failure	400	{object}	errResponse
//	@Failure	404	{object}	errResponse
//	@Router		/menu/items/{id} [get]
func (h *Handler) Recipe(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("id must be an integer"))
		return
	}
	recipe, err := h.svc.Recipe(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

// PopularRecipes handles GET /api/menu/popular.
//
//	@Summary	List up to six popular recipes
//	@Tags		menu
//	@Produce	json
//	@Success	200	{array}	models.Recipe
//	@Router		/menu/popular [get]
func (h *Handler) PopularRecipes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.PopularRecipes(r.Context()))
}

// ShoppingList handles GET /api/menu/shopping-list.
//
//	@Summary	Merge the ingredients of several recipes
//	@Tags		menu
//	@Produce	json
//	@Param		ids	query		string	true	"Comma separated recipe ids"
//	@Success	200	{object}	ShoppingListResponse
//	@Failure	400	{object}	errResponse
//	@Router		/menu/shopping-list [get]
func (h *Handler) ShoppingList(w http.ResponseWriter, r *http.Request) {
	ids, err := service.ParseRecipeIDs(r.URL.Query().Get("ids"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ShoppingListResponse{
		Recipes: ids,
		Entries: h.svc.ShoppingList(r.Context(), ids),
	})
}

// SearchKnowledge handles GET /api/knowledge.
//
//	@Summary	Filter, search and sort knowledge articles
//	@Tags		knowledge
//	@Produce	json
//	@Param		category	query		string	false	"Exact category"
//	@Param		search		query		string	false	"Case-insensitive text"
//	@Param		sortBy		query		string	false	"Sort key"	Enums(date, title, category)
//	@Param		sortOrder	query		string	false	"Direction"	Enums(asc, desc)
//	@Success	200			{object}	ArticleListResponse
//	@Failure	400			{object}	errResponse
//	@Router		/knowledge [get]
func (h *Handler) SearchKnowledge(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.svc.SearchKnowledge(r.Context(), knowledge.Filter{
		Category:  q.Get("category"),
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: collection.Order(q.Get("sortOrder")),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(items))
}

// Article handles GET /api/knowledge/{slug}.
//
//	@Summary	Get an article by slug
//	@Tags		knowledge
//	@Produce	json
//	@Param		slug	path		string	true	"Article slug or id"
//	@Success	200		{object}	ArticleResponse
//	@Success	304
//	@Failure	404		{object}	errResponse
//	@Router		/knowledge/{slug} [get]
func (h *Handler) Article(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		// Nested vault ids such as "go/channels" arrive through the wildcard.
		slug = chi.URLParam(r, "*")
	}
	a, err := h.svc.Article(r.Context(), slug)
	if err != nil {
		writeError(w, r, err)
		return
	}
	etag := checksum.ETag(a.Checksum)
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// KnowledgeCategories handles GET /api/knowledge/categories.
//
//	@Summary	Article counts per category, most used first
//	@Tags		knowledge
//	@Produce	json
//	@Success	200	{array}	collection.Count
//	@Router		/knowledge/categories [get]
func (h *Handler) KnowledgeCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.KnowledgeCategories(r.Context()))
}

// ArticlesByCategory handles GET /api/knowledge/categories/{category}.
func (h *Handler) ArticlesByCategory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newList(h.svc.ArticlesByCategory(r.Context(), chi.URLParam(r, "category"))))
}

// KnowledgeTags handles GET /api/knowledge/tags.
//
//	@Summary	Ten most used tags
//	@Tags		knowledge
//	@Produce	json
//	@Success	200	{array}	knowledge.Tag
//	@Router		/knowledge/tags [get]
func (h *Handler) KnowledgeTags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.KnowledgeTags(r.Context()))
}

// KnowledgeStats handles GET /api/knowledge/stats.
func (h *Handler) KnowledgeStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.KnowledgeStats(r.Context()))
}

// RecentArticles handles GET /api/knowledge/recent.
func (h *Handler) RecentArticles(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.RecentArticles(r.Context(), limit))
}

// SearchProjects handles GET /api/projects.
//
//	@Summary	Filter, search and sort projects
//	@Tags		projects
//	@Produce	json
//	@Param		category	query		string	false	"Topic"
//	@Param		language	query		string	false	"Exact language"
//	@Param		search		query		string	false	"Case-insensitive text"
//	@Param		sortBy		query		string	false	"Sort key"	Enums(stars, forks, updated, name, created)
//	@Param		sortOrder	query		string	false	"Direction"	Enums(asc, desc)
//	@Success	200			{object}	ProjectListResponse
//	@Failure	400			{object}	errResponse
//	@Router		/projects [get]
func (h *Handler) SearchProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.svc.SearchProjects(r.Context(), project.Filter{
		Category:  q.Get("category"),
		Language:  q.Get("language"),
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: collection.Order(q.Get("sortOrder")),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(items))
}

// Project handles GET /api/projects/{id}.
func (h *Handler) Project(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Project(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ProjectCategories handles GET /api/projects/categories.
func (h *Handler) ProjectCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ProjectCategories(r.Context()))
}

// ProjectLanguages handles GET /api/projects/languages.
func (h *Handler) ProjectLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ProjectLanguages(r.Context()))
}

// ProjectsByLanguage handles GET /api/projects/languages/{language}.
func (h *Handler) ProjectsByLanguage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newList(h.svc.ProjectsByLanguage(r.Context(), chi.URLParam(r, "language"))))
}

// ProjectsByTopic handles GET /api/projects/topics/{topic}.
func (h *Handler) ProjectsByTopic(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newList(h.svc.ProjectsByTopic(r.Context(), chi.URLParam(r, "topic"))))
}

// ProjectStats handles GET /api/projects/stats.
func (h *Handler) ProjectStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ProjectStats(r.Context()))
}

// RecentProjects handles GET /api/projects/recent.
func (h *Handler) RecentProjects(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.RecentProjects(r.Context(), limit))
}

// TrendingProjects handles GET /api/projects/trending.
func (h *Handler) TrendingProjects(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.TrendingProjects(r.Context(), limit))
}

// Themes handles GET /api/themes.
//
//	@Summary	List the preset themes
//	@Tags		theme
//	@Produce	json
//	@Success	200	{array}	theme.Color
//	@Router		/themes [get]
func (h *Handler) Themes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Themes(r.Context()))
}

// ActiveTheme handles GET /api/theme.
func (h *Handler) ActiveTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ActiveTheme(r.Context()))
}

// ApplyTheme handles PUT /api/theme.
//
//	@Summary	Apply and persist a theme
//	@Tags		theme
//	@Accept		json
//	@Produce	json
//	@Param		body	body		ApplyThemeRequest	true	"Theme name"
//	@Success	200		{object}	ThemeResponse
//	@Failure	400		{object}	errResponse
//	@Security	BearerAuth
//	@Router		/theme [put]
func (h *Handler) ApplyTheme(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<10)
	var req ApplyThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON"))
		return
	}
	at, err := h.svc.ApplyTheme(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, at)
}

// ResetTheme handles DELETE /api/theme.
//
//	@Summary	Forget the stored theme and fall back to the default
//	@Tags		theme
//	@Produce	json
//	@Success	200	{object}	ThemeResponse
//	@Security	BearerAuth
//	@Router		/theme [delete]
func (h *Handler) ResetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ResetTheme(r.Context()))
}

// StyleSheet serves the active theme as CSS custom properties.
func StyleSheet(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write([]byte(svc.StyleSheet(r.Context())))
	}
}
