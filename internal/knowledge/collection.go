package knowledge

import (
	"cmp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/chihom/internal/collection"
	"github.com/starford/chihom/internal/models"
)

// Sort keys accepted by Filter.SortBy.
const (
	SortByDate     = "date"
	SortByTitle    = "title"
	SortByCategory = "category"
)

const topTags = 10

// Filter selects and orders articles. Zero values mean "no filter" and the
// default ordering (newest first).
type Filter struct {
	Category  string           `json:"category,omitempty"`
	Search    string           `json:"search,omitempty"`
	SortBy    string           `json:"sortBy,omitempty"`
	SortOrder collection.Order `json:"sortOrder,omitempty"`
}

// Validate rejects unknown sort keys and directions.
func (f Filter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.SortBy, validation.In(SortByDate, SortByTitle, SortByCategory)),
		validation.Field(&f.SortOrder, validation.In(collection.Asc, collection.Desc)),
	)
}

// Tag is one row of the tag frequency table.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats summarises the collection.
type Stats struct {
	TotalArticles   int `json:"totalArticles"`
	TotalCategories int `json:"totalCategories"`
	TotalTags       int `json:"totalTags"`
}

// Collection is the set of articles currently shown by the site.
type Collection struct {
	items collection.Collection[models.KnowledgeItem]
}

// NewCollection returns a collection holding items.
func NewCollection(items []models.KnowledgeItem) *Collection {
	c := &Collection{}
	c.SetItems(items)
	return c
}

// SetItems replaces every article.
func (c *Collection) SetItems(items []models.KnowledgeItem) {
	c.items.SetItems(items)
}

// Items returns all articles in stored order.
func (c *Collection) Items() []models.KnowledgeItem {
	return c.items.Items()
}

// Len returns the number of articles.
func (c *Collection) Len() int {
	return c.items.Len()
}

// Categories counts articles per category, most used first.
func (c *Collection) Categories() []collection.Count {
	return collection.Tally(c.items.Items(), func(it models.KnowledgeItem) []string {
		return []string{it.Category}
	})
}

// Tags returns the ten most used tags.
func (c *Collection) Tags() []Tag {
	counts := collection.Tally(c.items.Items(), func(it models.KnowledgeItem) []string {
		return it.Tags
	})
	counts = collection.Limit(counts, topTags)
	out := make([]Tag, len(counts))
	for i, tc := range counts {
		out[i] = Tag{Name: tc.Name, Count: tc.Count}
	}
	return out
}

// Stats counts articles and distinct categories. TotalTags is the size of
// the tag table returned by Tags, so it never exceeds ten.
func (c *Collection) Stats() Stats {
	items := c.items.Items()
	cats := collection.NewCounter()
	for _, it := range items {
		cats.Add(it.Category)
	}
	return Stats{
		TotalArticles:   len(items),
		TotalCategories: cats.Len(),
		TotalTags:       len(c.Tags()),
	}
}

// Query filters by exact category, then by a case-insensitive search over
// title, description and content, then sorts. The result is a new slice.
func (c *Collection) Query(f Filter) []models.KnowledgeItem {
	result := c.items.Filter(func(it models.KnowledgeItem) bool {
		if f.Category != "" && it.Category != f.Category {
			return false
		}
		if f.Search != "" {
			return collection.ContainsFold(it.Title, f.Search) ||
				collection.ContainsFold(it.Description, f.Search) ||
				collection.ContainsFold(it.Content, f.Search)
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

// comparator returns the ascending comparison for a sort key; unknown keys
// sort by date.
func comparator(sortBy string) func(a, b models.KnowledgeItem) int {
	switch sortBy {
	case SortByTitle:
		text := collection.TextComparer()
		return func(a, b models.KnowledgeItem) int { return text(a.Title, b.Title) }
	case SortByCategory:
		text := collection.TextComparer()
		return func(a, b models.KnowledgeItem) int { return text(a.Category, b.Category) }
	default:
		return byDate
	}
}

func byDate(a, b models.KnowledgeItem) int {
	return cmp.Compare(collection.EpochMillis(a.Date), collection.EpochMillis(b.Date))
}

// ItemsByCategory returns the articles of one category in stored order.
func (c *Collection) ItemsByCategory(category string) []models.KnowledgeItem {
	return c.items.Filter(func(it models.KnowledgeItem) bool {
		return it.Category == category
	})
}

// BySlug returns the first article with the given slug.
func (c *Collection) BySlug(slug string) (models.KnowledgeItem, bool) {
	return c.items.Find(func(it models.KnowledgeItem) bool { return it.Slug == slug })
}

// ByID returns the first article with the given id.
func (c *Collection) ByID(id string) (models.KnowledgeItem, bool) {
	return c.items.Find(func(it models.KnowledgeItem) bool { return it.ID == id })
}

// Recent returns up to limit articles, newest first.
func (c *Collection) Recent(limit int) []models.KnowledgeItem {
	return c.items.Top(limit, func(a, b models.KnowledgeItem) int {
		return byDate(b, a)
	})
}
