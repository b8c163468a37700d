// Package vault loads knowledge articles from a directory of markdown files
// and keeps them current as the files change.
package vault

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/starford/chihom/internal/knowledge"
	"github.com/starford/chihom/internal/models"
	"github.com/starford/chihom/internal/storage"
)

var _ knowledge.Loader = (*Loader)(nil)

type cached struct {
	checksum string
	item     models.KnowledgeItem
}

// Loader builds articles from every .md file in a vault. Files whose
// checksum has not changed since the previous Load reuse their article.
type Loader struct {
	store   storage.Provider
	factory *knowledge.Factory
	logger  *slog.Logger

	mu    sync.Mutex
	cache map[string]cached
}

// NewLoader returns a Loader reading from store.
func NewLoader(store storage.Provider, factory *knowledge.Factory, logger *slog.Logger) *Loader {
	return &Loader{
		store:   store,
		factory: factory,
		logger:  logger,
		cache:   make(map[string]cached),
	}
}

// ArticleID derives the article id from a vault-relative path: the path
// without its extension, using forward slashes.
func ArticleID(rel string) string {
	id := strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.ToSlash(id)
}

// Load lists the vault and returns its articles newest first. Unreadable
// files are logged and skipped.
func (l *Loader) Load(ctx context.Context) ([]models.KnowledgeItem, error) {
	docs, err := l.store.List("")
	if err != nil {
		return nil, fmt.Errorf("vault: list: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := make(map[string]cached, len(docs))
	items := make([]models.KnowledgeItem, 0, len(docs))
	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if c, ok := l.cache[d.Path]; ok && c.checksum == d.Checksum {
			next[d.Path] = c
			items = append(items, c.item)
			continue
		}
		data, err := l.store.Read(d.Path)
		if err != nil {
			l.logger.Warn("vault: read failed", slog.String("path", d.Path), slog.String("error", err.Error()))
			continue
		}
		item := l.factory.Create(ArticleID(d.Path), string(data), filepath.Base(d.Path))
		next[d.Path] = cached{checksum: d.Checksum, item: item}
		items = append(items, item)
		l.logger.Debug("vault: parsed", slog.String("path", d.Path))
	}
	l.cache = next

	return knowledge.NewCollection(items).Recent(len(items)), nil
}

// Sync loads the vault and replaces the contents of coll. It returns the
// number of articles loaded.
func Sync(ctx context.Context, coll *knowledge.Collection, loader knowledge.Loader) (int, error) {
	items, err := loader.Load(ctx)
	if err != nil {
		return 0, err
	}
	coll.SetItems(items)
	return len(items), nil
}
