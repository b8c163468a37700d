package knowledge

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/starford/chihom/internal/models"
)

//go:embed seed/*.md
var seedFS embed.FS

// Loader produces the full list of articles to show.
type Loader interface {
	Load(ctx context.Context) ([]models.KnowledgeItem, error)
}

// SeedLoader loads the articles bundled with the binary.
type SeedLoader struct {
	factory *Factory
}

// NewSeedLoader returns a loader over the embedded seed articles.
func NewSeedLoader(factory *Factory) *SeedLoader {
	return &SeedLoader{factory: factory}
}

// Load parses every seed document and returns the articles newest first.
func (l *SeedLoader) Load(_ context.Context) ([]models.KnowledgeItem, error) {
	entries, err := fs.ReadDir(seedFS, "seed")
	if err != nil {
		return nil, fmt.Errorf("knowledge: read seed: %w", err)
	}
	items := make([]models.KnowledgeItem, 0, len(entries))
	for _, e := range entries {
		data, err := seedFS.ReadFile(path.Join("seed", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("knowledge: read seed %s: %w", e.Name(), err)
		}
		id := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		items = append(items, l.factory.Create(id, string(data), e.Name()))
	}
	return NewCollection(items).Recent(len(items)), nil
}
