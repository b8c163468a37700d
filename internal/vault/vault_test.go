package vault

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/starford/chihom/internal/knowledge"
	"github.com/starford/chihom/internal/storage"
)

func testEnv(t *testing.T) (string, *Loader) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return dir, NewLoader(store, knowledge.NewFactory(), logger)
}

func writeArticle(t *testing.T, dir, rel, content string) {
	t.Helper()
	p := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func TestArticleID(t *testing.T) {
	if got := ArticleID(filepath.Join("go", "channels.md")); got != "go/channels" {
		t.Errorf("ArticleID = %q", got)
	}
}

func TestLoad(t *testing.T) {
	dir, loader := testEnv(t)
	writeArticle(t, dir, "old.md", "---\ntitle: Old\ndate: 2023-01-01\n---\nold body")
	writeArticle(t, dir, "sub/new.md", "---\ntitle: New\ndate: 2024-06-01\ncategory: 后端\n---\nnew body")
	writeArticle(t, dir, "notes.txt", "ignored")

	items, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d", len(items))
	}
	if items[0].ID != "sub/new" || items[0].Category != "后端" || items[0].Content != "new body" {
		t.Errorf("first = %+v", items[0])
	}
	if items[1].Title != "Old" {
		t.Errorf("second = %+v", items[1])
	}
	if c, ok := loader.cache["old.md"]; !ok || c.checksum == "" {
		t.Error("checksum for old not recorded")
	}
}

func TestLoadReusesUnchanged(t *testing.T) {
	dir, loader := testEnv(t)
	writeArticle(t, dir, "a.md", "---\ntitle: A\ndate: 2024-01-01\n---\nbody")
	first, _ := loader.Load(context.Background())
	before := loader.cache["a.md"].checksum

	writeArticle(t, dir, "a.md", "---\ntitle: A2\ndate: 2024-01-01\n---\nbody")
	second, _ := loader.Load(context.Background())
	after := loader.cache["a.md"].checksum

	if first[0].Title != "A" || second[0].Title != "A2" {
		t.Errorf("titles = %q, %q", first[0].Title, second[0].Title)
	}
	if before == after {
		t.Error("checksum did not change after edit")
	}

	_ = os.Remove(filepath.Join(dir, "a.md"))
	third, _ := loader.Load(context.Background())
	if len(third) != 0 {
		t.Errorf("removed file still loaded: %+v", third)
	}
	if _, ok := loader.cache["a.md"]; ok {
		t.Error("stale cache entry kept")
	}
}

func TestSync(t *testing.T) {
	dir, loader := testEnv(t)
	writeArticle(t, dir, "x.md", "# x")
	coll := knowledge.NewCollection(nil)
	n, err := Sync(context.Background(), coll, loader)
	if err != nil || n != 1 || coll.Len() != 1 {
		t.Errorf("Sync = %d, %v; len %d", n, err, coll.Len())
	}
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	dir, loader := testEnv(t)
	coll := knowledge.NewCollection(nil)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var counts []int
	go Watch(ctx, dir, coll, loader, logger, func(n int, err error) {
		if err != nil {
			return
		}
		mu.Lock()
		counts = append(counts, n)
		mu.Unlock()
	})
	time.Sleep(100 * time.Millisecond)

	writeArticle(t, dir, "new.md", "---\ntitle: Fresh\n---\nhello")

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		_, ok := coll.ByID("new")
		return ok
	}, "new article not loaded by watcher")

	eventually(t, 2*time.Second, 50*time.Millisecond, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(counts) > 0 && counts[len(counts)-1] == 1
	}, "expected reload callback with one article")
}

func TestWatcher_NewDirWatched(t *testing.T) {
	dir, loader := testEnv(t)
	coll := knowledge.NewCollection(nil)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Watch(ctx, dir, coll, loader, logger, nil)
	time.Sleep(100 * time.Millisecond)

	sub := filepath.Join(dir, "subdir")
	_ = os.MkdirAll(sub, 0o755)
	time.Sleep(100 * time.Millisecond)
	writeArticle(t, dir, "subdir/deep.md", "# deep")

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		_, ok := coll.ByID("subdir/deep")
		return ok
	}, "article in new subdir not loaded")
}

func TestWatcher_DeleteRemoves(t *testing.T) {
	dir, loader := testEnv(t)
	writeArticle(t, dir, "del.md", "# bye")
	coll := knowledge.NewCollection(nil)
	if _, err := Sync(context.Background(), coll, loader); err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Watch(ctx, dir, coll, loader, logger, nil)
	time.Sleep(100 * time.Millisecond)

	_ = os.Remove(filepath.Join(dir, "del.md"))

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return coll.Len() == 0
	}, "deleted article still loaded")
}
