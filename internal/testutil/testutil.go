// Package testutil provides a seeded service for tests.
package testutil

import (
	"context"
	"testing"

	"github.com/starford/chihom/internal/catalog"
	"github.com/starford/chihom/internal/knowledge"
	"github.com/starford/chihom/internal/project"
	"github.com/starford/chihom/internal/service"
	"github.com/starford/chihom/internal/theme"
)

// TestService builds a Service over the bundled menu, seed articles and
// seed projects, with themes kept in memory.
func TestService(t *testing.T, opts ...service.Option) *service.Service {
	t.Helper()
	menu, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	articles, err := knowledge.NewSeedLoader(knowledge.NewFactory()).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	projects, err := project.Seed()
	if err != nil {
		t.Fatal(err)
	}
	return service.New(
		menu,
		knowledge.NewCollection(articles),
		project.NewCollection(projects),
		theme.NewRegistry(theme.NewMemoryStore()),
		theme.NewStyleSheet(),
		opts...,
	)
}
