// Package project answers topic, language and ranking queries over a
// collection of GitHub-style project records.
package project

import (
	"cmp"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/chihom/internal/collection"
	"github.com/starford/chihom/internal/models"
)

// Sort keys accepted by Filter.SortBy.
const (
	SortByStars   = "stars"
	SortByForks   = "forks"
	SortByUpdated = "updated"
	SortByName    = "name"
	SortByCreated = "created"
)

const topTopics = 10

// Filter selects and orders projects. Category matches any of a project's
// topics. Zero values mean "no filter" and the default ordering (most
// starred first).
type Filter struct {
	Category  string           `json:"category,omitempty"`
	Language  string           `json:"language,omitempty"`
	Search    string           `json:"search,omitempty"`
	SortBy    string           `json:"sortBy,omitempty"`
	SortOrder collection.Order `json:"sortOrder,omitempty"`
}

// Validate rejects unknown sort keys and directions.
func (f Filter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.SortBy, validation.In(SortByStars, SortByForks, SortByUpdated, SortByName, SortByCreated)),
		validation.Field(&f.SortOrder, validation.In(collection.Asc, collection.Desc)),
	)
}

// Language is one row of the language table.
type Language struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// Stats summarises the collection.
type Stats struct {
	TotalProjects int            `json:"totalProjects"`
	TotalStars    int            `json:"totalStars"`
	TotalForks    int            `json:"totalForks"`
	TotalWatchers int            `json:"totalWatchers"`
	Languages     map[string]int `json:"languages"`
}

// Collection is the set of projects currently shown by the site.
type Collection struct {
	items collection.Collection[models.Project]
}

// NewCollection returns a collection holding items.
func NewCollection(items []models.Project) *Collection {
	c := &Collection{}
	c.SetItems(items)
	return c
}

// SetItems replaces every project.
func (c *Collection) SetItems(items []models.Project) {
	c.items.SetItems(items)
}

// Items returns all projects in stored order.
func (c *Collection) Items() []models.Project {
	return c.items.Items()
}

// Len returns the number of projects.
func (c *Collection) Len() int {
	return c.items.Len()
}

// Categories counts projects per topic and returns the ten most used. A
// project counts once for every topic it lists.
func (c *Collection) Categories() []collection.Count {
	counts := collection.Tally(c.items.Items(), func(p models.Project) []string {
		return p.Topics
	})
	return collection.Limit(counts, topTopics)
}

// Languages counts projects per language, most used first. Each language
// keeps the color of the first project seen with it.
func (c *Collection) Languages() []Language {
	counter := collection.NewCounter()
	colors := make(map[string]string)
	for _, p := range c.items.Items() {
		if p.Language == "" {
			continue
		}
		if _, ok := colors[p.Language]; !ok {
			colors[p.Language] = p.LanguageColor
		}
		counter.Add(p.Language)
	}
	counts := counter.Counts()
	out := make([]Language, len(counts))
	for i, lc := range counts {
		out[i] = Language{Name: lc.Name, Count: lc.Count, Color: colors[lc.Name]}
	}
	return out
}

// Stats sums stars, forks and watchers and counts projects per language.
func (c *Collection) Stats() Stats {
	items := c.items.Items()
	s := Stats{TotalProjects: len(items), Languages: make(map[string]int)}
	for _, p := range items {
		s.TotalStars += p.Stars
		s.TotalForks += p.Forks
		s.TotalWatchers += p.Watchers
		if p.Language != "" {
			s.Languages[p.Language]++
		}
	}
	return s
}

// Query filters by topic, then language, then a case-insensitive search over
// name, full name, description and topics, then sorts. The result is a new
// slice.
func (c *Collection) Query(f Filter) []models.Project {
	result := c.items.Filter(func(p models.Project) bool {
		if f.Category != "" && !slices.Contains(p.Topics, f.Category) {
			return false
		}
		if f.Language != "" && p.Language != f.Language {
			return false
		}
		if f.Search != "" {
			return matches(p, f.Search)
		}
		return true
	})

	order := f.SortOrder
	if order == "" {
		order = collection.Desc
	}
	collection.SortStable(result, comparator(f.SortBy), order)
	return result
}

func matches(p models.Project, search string) bool {
	if collection.ContainsFold(p.Name, search) ||
		collection.ContainsFold(p.FullName, search) ||
		collection.ContainsFold(p.Description, search) {
		return true
	}
	return slices.ContainsFunc(p.Topics, func(topic string) bool {
		return collection.ContainsFold(topic, search)
	})
}

// comparator returns the ascending comparison for a sort key; unknown keys
// sort by stars.
func comparator(sortBy string) func(a, b models.Project) int {
	switch sortBy {
	case SortByForks:
		return func(a, b models.Project) int { return cmp.Compare(a.Forks, b.Forks) }
	case SortByUpdated:
		return byUpdated
	case SortByCreated:
		return func(a, b models.Project) int {
			return cmp.Compare(collection.EpochMillis(a.CreatedAt), collection.EpochMillis(b.CreatedAt))
		}
	case SortByName:
		text := collection.TextComparer()
		return func(a, b models.Project) int { return text(a.Name, b.Name) }
	default:
		return byStars
	}
}

func byStars(a, b models.Project) int {
	return cmp.Compare(a.Stars, b.Stars)
}

func byUpdated(a, b models.Project) int {
	return cmp.Compare(collection.EpochMillis(a.UpdatedAt), collection.EpochMillis(b.UpdatedAt))
}

// ByID returns the first project with the given id.
func (c *Collection) ByID(id string) (models.Project, bool) {
	return c.items.Find(func(p models.Project) bool { return p.ID == id })
}

// ByLanguage returns the projects written in language, in stored order.
func (c *Collection) ByLanguage(language string) []models.Project {
	return c.items.Filter(func(p models.Project) bool { return p.Language == language })
}

// ByTopic returns the projects tagged with topic, in stored order.
func (c *Collection) ByTopic(topic string) []models.Project {
	return c.items.Filter(func(p models.Project) bool { return slices.Contains(p.Topics, topic) })
}

// Recent returns up to limit projects, most recently updated first.
func (c *Collection) Recent(limit int) []models.Project {
	return c.items.Top(limit, func(a, b models.Project) int { return byUpdated(b, a) })
}

// Trending returns up to limit projects, most starred first.
func (c *Collection) Trending(limit int) []models.Project {
	return c.items.Top(limit, func(a, b models.Project) int { return byStars(b, a) })
}
