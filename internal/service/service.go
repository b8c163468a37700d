// Package service is the read model shared by the HTTP API and the MCP
// server. It fronts the menu catalog, the knowledge and project collections
// and the theme registry.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/starford/chihom/internal/apperr"
	"github.com/starford/chihom/internal/catalog"
	"github.com/starford/chihom/internal/checksum"
	"github.com/starford/chihom/internal/collection"
	"github.com/starford/chihom/internal/knowledge"
	"github.com/starford/chihom/internal/models"
	"github.com/starford/chihom/internal/project"
	"github.com/starford/chihom/internal/theme"
)

// DefaultRecentLimit applies when a caller asks for recent items without
// a limit.
const DefaultRecentLimit = 5

// Publisher is notified when the active theme changes.
type Publisher interface {
	PublishTheme(name string)
}

// Article is a knowledge item together with its content fingerprint.
type Article struct {
	models.KnowledgeItem
	Checksum string `json:"checksum"`
}

// ActiveTheme is the persisted theme name and the colors it resolves to.
type ActiveTheme struct {
	Name  string      `json:"name"`
	Color theme.Color `json:"color"`
}

// Service coordinates the site's read-only data and the theme registry.
type Service struct {
	menu      *catalog.Store
	knowledge *knowledge.Collection
	projects  *project.Collection
	themes    *theme.Registry
	sheet     *theme.StyleSheet
	pub       Publisher
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets the receiver of theme change notifications.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.pub = p
	}
}

// New returns a Service over the given stores.
func New(menu *catalog.Store, kn *knowledge.Collection, proj *project.Collection, themes *theme.Registry, sheet *theme.StyleSheet, opts ...Option) *Service {
	s := &Service{
		menu:      menu,
		knowledge: kn,
		projects:  proj,
		themes:    themes,
		sheet:     sheet,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// --- Menu ---

func (s *Service) MenuCategories(_ context.Context) []models.RecipeCategory {
	return s.menu.Categories()
}

func (s *Service) MenuCategory(_ context.Context, id string) (models.RecipeCategory, error) {
	c, ok := s.menu.CategoryByID(id)
	if !ok {
		return models.RecipeCategory{}, fmt.Errorf("menu category %q: %w", id, apperr.ErrNotFound)
	}
	return c, nil
}

// Recipes returns the recipes of categoryID, or every recipe when it is empty.
func (s *Service) Recipes(_ context.Context, categoryID string) []models.Recipe {
	if categoryID == "" {
		return s.menu.Items()
	}
	return s.menu.ItemsByCategory(categoryID)
}

func (s *Service) Recipe(_ context.Context, id int) (models.Recipe, error) {
	r, ok := s.menu.ItemByID(id)
	if !ok {
		return models.Recipe{}, fmt.Errorf("recipe %d: %w", id, apperr.ErrNotFound)
	}
	return r, nil
}

func (s *Service) PopularRecipes(_ context.Context) []models.Recipe {
	return s.menu.PopularItems()
}

func (s *Service) ShoppingList(_ context.Context, ids []int) []catalog.ShoppingEntry {
	return s.menu.ShoppingList(ids)
}

// --- Knowledge ---

// SearchKnowledge validates f and returns the matching articles.
func (s *Service) SearchKnowledge(_ context.Context, f knowledge.Filter) ([]models.KnowledgeItem, error) {
	f.SortOrder = collection.Order(strings.ToLower(string(f.SortOrder)))
	if err := f.Validate(); err != nil {
		return nil, apperr.Invalid(err)
	}
	return s.knowledge.Query(f), nil
}

// Article looks an article up by slug, falling back to its id.
func (s *Service) Article(_ context.Context, slug string) (*Article, error) {
	item, ok := s.knowledge.BySlug(slug)
	if !ok {
		item, ok = s.knowledge.ByID(slug)
	}
	if !ok {
		return nil, fmt.Errorf("article %q: %w", slug, apperr.ErrNotFound)
	}
	data, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	return &Article{KnowledgeItem: item, Checksum: checksum.Sum(data)}, nil
}

// ArticlesByCategory returns the articles of one category in collection
// order, newest first.
func (s *Service) ArticlesByCategory(_ context.Context, category string) []models.KnowledgeItem {
	return s.knowledge.ItemsByCategory(category)
}

func (s *Service) KnowledgeCategories(_ context.Context) []collection.Count {
	return s.knowledge.Categories()
}

func (s *Service) KnowledgeTags(_ context.Context) []knowledge.Tag {
	return s.knowledge.Tags()
}

func (s *Service) KnowledgeStats(_ context.Context) knowledge.Stats {
	return s.knowledge.Stats()
}

func (s *Service) RecentArticles(_ context.Context, limit int) []models.KnowledgeItem {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.knowledge.Recent(limit)
}

// --- Projects ---

// SearchProjects validates f and returns the matching projects.
func (s *Service) SearchProjects(_ context.Context, f project.Filter) ([]models.Project, error) {
	f.SortOrder = collection.Order(strings.ToLower(string(f.SortOrder)))
	if err := f.Validate(); err != nil {
		return nil, apperr.Invalid(err)
	}
	return s.projects.Query(f), nil
}

func (s *Service) Project(_ context.Context, id string) (models.Project, error) {
	p, ok := s.projects.ByID(id)
	if !ok {
		return models.Project{}, fmt.Errorf("project %q: %w", id, apperr.ErrNotFound)
	}
	return p, nil
}

// ProjectsByTopic returns projects carrying topic exactly.
func (s *Service) ProjectsByTopic(_ context.Context, topic string) []models.Project {
	return s.projects.ByTopic(topic)
}

// ProjectsByLanguage returns projects whose primary language is language.
func (s *Service) ProjectsByLanguage(_ context.Context, language string) []models.Project {
	return s.projects.ByLanguage(language)
}

func (s *Service) ProjectCategories(_ context.Context) []collection.Count {
	return s.projects.Categories()
}

func (s *Service) ProjectLanguages(_ context.Context) []project.Language {
	return s.projects.Languages()
}

func (s *Service) ProjectStats(_ context.Context) project.Stats {
	return s.projects.Stats()
}

func (s *Service) RecentProjects(_ context.Context, limit int) []models.Project {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.projects.Recent(limit)
}

func (s *Service) TrendingProjects(_ context.Context, limit int) []models.Project {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.projects.Trending(limit)
}

// --- Theme ---

func (s *Service) Themes(_ context.Context) []theme.Color {
	return theme.Presets()
}

func (s *Service) ActiveTheme(_ context.Context) ActiveTheme {
	name := s.themes.Active()
	return ActiveTheme{Name: name, Color: theme.Resolve(name)}
}

// ApplyTheme applies name to the shared style sheet, persists it and
// notifies the publisher. Unknown names resolve to the first preset.
func (s *Service) ApplyTheme(_ context.Context, name string) (ActiveTheme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ActiveTheme{}, apperr.Invalid(errors.New("theme name is required"))
	}
	c := s.themes.Apply(name, s.sheet)
	if s.pub != nil {
		s.pub.PublishTheme(name)
	}
	return ActiveTheme{Name: name, Color: c}, nil
}

// ResetTheme clears the stored preference and paints the configured
// fallback theme.
func (s *Service) ResetTheme(_ context.Context) ActiveTheme {
	name, c := s.themes.Reset(s.sheet)
	if s.pub != nil {
		s.pub.PublishTheme(name)
	}
	return ActiveTheme{Name: name, Color: c}
}

// StyleSheet renders the applied theme as CSS.
func (s *Service) StyleSheet(_ context.Context) string {
	return s.sheet.CSS()
}
