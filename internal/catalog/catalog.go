// Package catalog serves the static recipe menu: categories, dishes,
// ingredients and cooking steps.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/starford/chihom/internal/models"
)

//go:embed menu.yaml
var menuYAML []byte

// maxPopular bounds PopularItems.
const maxPopular = 6

// Menu is the on-disk shape of the catalog.
type Menu struct {
	Categories []models.RecipeCategory `yaml:"categories"`
	Items      []models.Recipe         `yaml:"items"`
}

// Store is an immutable recipe catalog. Accessors return items in
// declaration order.
type Store struct {
	categories []models.RecipeCategory
	items      []models.Recipe
	byID       map[int]int
}

// Default returns the catalog bundled with the binary.
func Default() (*Store, error) {
	return Parse(menuYAML)
}

// Parse builds a Store from a YAML menu document.
func Parse(data []byte) (*Store, error) {
	var m Menu
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("catalog: parse menu: %w", err)
	}
	return New(m), nil
}

// New builds a Store over m. Duplicate ids resolve to the first item.
func New(m Menu) *Store {
	s := &Store{
		categories: m.Categories,
		items:      m.Items,
		byID:       make(map[int]int, len(m.Items)),
	}
	for i, it := range m.Items {
		if _, dup := s.byID[it.ID]; !dup {
			s.byID[it.ID] = i
		}
	}
	return s
}

// Categories returns every recipe category.
func (s *Store) Categories() []models.RecipeCategory {
	return append([]models.RecipeCategory{}, s.categories...)
}

// CategoryByID returns the category with the given id.
func (s *Store) CategoryByID(id string) (models.RecipeCategory, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.RecipeCategory{}, false
}

// Items returns every recipe.
func (s *Store) Items() []models.Recipe {
	return append([]models.Recipe{}, s.items...)
}

// ItemsByCategory returns the recipes of one category.
func (s *Store) ItemsByCategory(categoryID string) []models.Recipe {
	out := []models.Recipe{}
	for _, it := range s.items {
		if it.CategoryID == categoryID {
			out = append(out, it)
		}
	}
	return out
}

// ItemByID returns the recipe with the given id.
func (s *Store) ItemByID(id int) (models.Recipe, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Recipe{}, false
	}
	return s.items[i], true
}

// PopularItems returns the first six recipes flagged popular.
func (s *Store) PopularItems() []models.Recipe {
	out := []models.Recipe{}
	for _, it := range s.items {
		if len(out) == maxPopular {
			break
		}
		if it.Popular {
			out = append(out, it)
		}
	}
	return out
}
