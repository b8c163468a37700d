package knowledge

import (
	"testing"
	"time"
)

var fixedNow = func() time.Time {
	return time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC)
}

func TestCreate_FromFrontmatter(t *testing.T) {
	f := NewFactory(WithClock(fixedNow))
	raw := "---\ntitle: Redis 缓存策略与实践\nslug: redis-caching\ndescription: 缓存: 核心概念\ncategory: 后端\ntags: Redis, 缓存 , 数据库\ndate: 2023-12-20\n---\n# Redis\n正文\n"
	it := f.Create("redis", raw, "redis.md")

	if it.ID != "redis" || it.Title != "Redis 缓存策略与实践" || it.Slug != "redis-caching" {
		t.Errorf("item = %+v", it)
	}
	if it.Description != "缓存: 核心概念" {
		t.Errorf("description = %q", it.Description)
	}
	if it.Category != "后端" {
		t.Errorf("category = %q", it.Category)
	}
	if len(it.Tags) != 3 || it.Tags[1] != "缓存" {
		t.Errorf("tags = %q", it.Tags)
	}
	if it.Date != "2023-12-20" {
		t.Errorf("date = %q", it.Date)
	}
	if it.Content != "# Redis\n正文\n" {
		t.Errorf("content = %q", it.Content)
	}
}

func TestCreate_Defaults(t *testing.T) {
	f := NewFactory(WithClock(fixedNow))
	it := f.Create("x", "plain body", "Go Concurrency Notes.md")

	if it.Title != "Go Concurrency Notes" {
		t.Errorf("title = %q", it.Title)
	}
	if it.Slug != "go-concurrency-notes" {
		t.Errorf("slug = %q", it.Slug)
	}
	if it.Category != DefaultCategory {
		t.Errorf("category = %q", it.Category)
	}
	if it.Description != "" {
		t.Errorf("description = %q", it.Description)
	}
	if it.Tags == nil || len(it.Tags) != 0 {
		t.Errorf("tags = %#v, want empty non-nil", it.Tags)
	}
	if it.Date != "2025-03-09" {
		t.Errorf("date = %q, want clock date", it.Date)
	}
	if it.Content != "plain body" {
		t.Errorf("content = %q", it.Content)
	}
}

func TestCreate_DefaultDateUsesUTC(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)
	f := NewFactory(WithClock(func() time.Time {
		return time.Date(2025, 3, 10, 2, 0, 0, 0, shanghai)
	}))
	if got := f.Create("x", "body", "a.md").Date; got != "2025-03-09" {
		t.Errorf("date = %q, want UTC date 2025-03-09", got)
	}
}

func TestCreate_EmptyTagPiecesKept(t *testing.T) {
	f := NewFactory(WithClock(fixedNow))
	it := f.Create("x", "---\ntags: a,, b ,\n---\nbody", "x.md")
	want := []string{"a", "", "b", ""}
	if len(it.Tags) != len(want) {
		t.Fatalf("tags = %q, want %q", it.Tags, want)
	}
	for i := range want {
		if it.Tags[i] != want[i] {
			t.Errorf("tags = %q, want %q", it.Tags, want)
		}
	}

	if it := f.Create("y", "---\ntitle: T\n---\nbody", "y.md"); it.Tags == nil || len(it.Tags) != 0 {
		t.Errorf("missing tags = %#v", it.Tags)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":               "hello-world",
		"  Vue 3 Composition API  ": "vue-3-composition-api",
		"Node.js 性能优化实战":            "nodejs",
		"snake_case -- and  dashes": "snake-case-and-dashes",
		"---trim---":                "trim",
		"中文标题":                      "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"Redis 缓存策略与实践",
		"A_B-C  d",
		"  --Mixed__Case--Title!!  ",
		"",
		"Ünïcödé Wörds",
		"tab\tseparated\nlines",
	}
	for _, in := range inputs {
		once := Slugify(in)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}
