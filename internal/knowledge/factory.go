// Package knowledge builds knowledge articles from Markdown documents and
// answers category, tag and search queries over a collection of them.
package knowledge

import (
	"regexp"
	"strings"
	"time"

	"github.com/starford/chihom/internal/models"
	"github.com/starford/chihom/internal/parser"
)

// DefaultCategory is assigned to articles whose frontmatter names none.
const DefaultCategory = "未分类"

const dateLayout = "2006-01-02"

var (
	extRe       = regexp.MustCompile(`\.[A-Za-z0-9]+$`)
	slugStripRe = regexp.MustCompile(`[^\w\s-]`)
	slugSepRe   = regexp.MustCompile(`[\s_-]+`)
)

// Factory creates KnowledgeItems from raw Markdown.
type Factory struct {
	now func() time.Time
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithClock sets the time source used for the default article date.
func WithClock(now func() time.Time) FactoryOption {
	return func(f *Factory) {
		f.now = now
	}
}

// NewFactory returns a Factory using the wall clock unless overridden.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create parses raw and fills every field missing from its frontmatter with
// a default. sourceName is the document's file name.
func (f *Factory) Create(id, raw, sourceName string) models.KnowledgeItem {
	res := parser.Parse(raw)

	title := res.Get("title")
	if title == "" {
		title = extRe.ReplaceAllString(sourceName, "")
	}
	slug := res.Get("slug")
	if slug == "" {
		slug = Slugify(title)
	}
	category := res.Get("category")
	if category == "" {
		category = DefaultCategory
	}
	date := res.Get("date")
	if date == "" {
		date = f.now().UTC().Format(dateLayout)
	}

	return models.KnowledgeItem{
		ID:          id,
		Title:       title,
		Slug:        slug,
		Description: res.Get("description"),
		Category:    category,
		Tags:        splitTags(res.Get("tags")),
		Date:        date,
		Content:     res.Body,
	}
}

// splitTags splits a comma-separated tag list and trims each piece. Empty
// pieces such as the middle of "a,,b" are kept as "".
func splitTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	tags := strings.Split(raw, ",")
	for i, t := range tags {
		tags[i] = strings.TrimSpace(t)
	}
	return tags
}

// Slugify lowercases text, drops everything but ASCII word characters,
// whitespace and hyphens, and joins the remaining words with single hyphens.
func Slugify(text string) string {
	s := strings.TrimSpace(strings.ToLower(text))
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugSepRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
