package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/starford/chihom/internal/apperr"
	"github.com/starford/chihom/internal/knowledge"
	"github.com/starford/chihom/internal/project"
	"github.com/starford/chihom/internal/service"
	"github.com/starford/chihom/internal/testutil"
)

type recordingPublisher struct {
	names []string
}

func (p *recordingPublisher) PublishTheme(name string) { p.names = append(p.names, name) }

func TestRecipes(t *testing.T) {
	svc := testutil.TestService(t)
	ctx := context.Background()

	if got := len(svc.Recipes(ctx, "")); got != 12 {
		t.Errorf("all recipes = %d, want 12", got)
	}
	if got := svc.Recipes(ctx, "nope"); got == nil || len(got) != 0 {
		t.Errorf("unknown category = %v", got)
	}
	r, err := svc.Recipe(ctx, 1)
	if err != nil || r.ID != 1 {
		t.Errorf("Recipe(1) = %+v, %v", r, err)
	}
	if _, err := svc.Recipe(ctx, 999); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Recipe(999) err = %v", err)
	}
	if got := len(svc.PopularRecipes(ctx)); got != 6 {
		t.Errorf("popular = %d", got)
	}
}

func TestSearchKnowledge(t *testing.T) {
	svc := testutil.TestService(t)
	ctx := context.Background()

	items, err := svc.SearchKnowledge(ctx, knowledge.Filter{Category: "工具", SortOrder: "ASC"})
	if err != nil {
		t.Fatalf("SearchKnowledge: %v", err)
	}
	if len(items) != 4 {
		t.Errorf("工具 = %d, want 4", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].Date > items[i].Date {
			t.Errorf("not ascending at %d", i)
		}
	}

	if _, err := svc.SearchKnowledge(ctx, knowledge.Filter{SortBy: "views"}); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("bad sort key err = %v", err)
	}
}

func TestArticle(t *testing.T) {
	svc := testutil.TestService(t)
	ctx := context.Background()

	a, err := svc.Article(ctx, "redis-caching")
	if err != nil {
		t.Fatalf("Article: %v", err)
	}
	if a.Checksum == "" || a.Slug != "redis-caching" {
		t.Errorf("article = %+v", a)
	}
	again, _ := svc.Article(ctx, "redis-caching")
	if again.Checksum != a.Checksum {
		t.Error("checksum not stable")
	}
	if _, err := svc.Article(ctx, "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing err = %v", err)
	}
}

func TestRecentDefaults(t *testing.T) {
	svc := testutil.TestService(t)
	ctx := context.Background()
	if got := len(svc.RecentArticles(ctx, 0)); got != 5 {
		t.Errorf("recent articles = %d", got)
	}
	if got := len(svc.RecentProjects(ctx, 2)); got != 2 {
		t.Errorf("recent projects = %d", got)
	}
	trending := svc.TrendingProjects(ctx, 0)
	if len(trending) != 5 || trending[0].Stars < trending[1].Stars {
		t.Errorf("trending = %+v", trending)
	}
}

func TestSearchProjects(t *testing.T) {
	svc := testutil.TestService(t)
	ctx := context.Background()

	got, err := svc.SearchProjects(ctx, project.Filter{Language: "Go"})
	if err != nil || len(got) != 2 {
		t.Errorf("Go projects = %d, %v", len(got), err)
	}
	if _, err := svc.SearchProjects(ctx, project.Filter{SortOrder: "sideways"}); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("bad order err = %v", err)
	}
	if _, err := svc.Project(ctx, "golang-go"); err != nil {
		t.Errorf("Project: %v", err)
	}
	if _, err := svc.Project(ctx, "nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing project err = %v", err)
	}
	if got := svc.ProjectsByTopic(ctx, "frontend"); len(got) != 4 {
		t.Errorf("frontend topic = %d", len(got))
	}
	if got := svc.ProjectsByLanguage(ctx, "Go"); len(got) != 2 {
		t.Errorf("Go language = %d", len(got))
	}
}

func TestMenuCategory(t *testing.T) {
	svc := testutil.TestService(t)
	ctx := context.Background()

	if c, err := svc.MenuCategory(ctx, "soup"); err != nil || c.Name != "汤品" {
		t.Errorf("MenuCategory(soup) = %+v, %v", c, err)
	}
	if _, err := svc.MenuCategory(ctx, "bbq"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing category err = %v", err)
	}
}

func TestArticlesByCategory(t *testing.T) {
	svc := testutil.TestService(t)
	got := svc.ArticlesByCategory(context.Background(), "工具")
	if len(got) != 4 {
		t.Fatalf("工具 = %d", len(got))
	}
	for _, it := range got {
		if it.Category != "工具" {
			t.Errorf("unexpected %q in 工具", it.Category)
		}
	}
}

func TestParseRecipeIDs(t *testing.T) {
	ids, err := service.ParseRecipeIDs(" 1, 2,,5 ")
	if err != nil || len(ids) != 3 || ids[0] != 1 || ids[2] != 5 {
		t.Errorf("ids = %v, %v", ids, err)
	}
	if ids, err := service.ParseRecipeIDs(""); err != nil || ids == nil || len(ids) != 0 {
		t.Errorf("empty = %#v, %v", ids, err)
	}
	if _, err := service.ParseRecipeIDs("1,x"); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("bad id err = %v", err)
	}
}

func TestApplyTheme(t *testing.T) {
	pub := &recordingPublisher{}
	svc := testutil.TestService(t, service.WithPublisher(pub))
	ctx := context.Background()

	if got := svc.ActiveTheme(ctx).Name; got != "橙色" {
		t.Errorf("initial = %q", got)
	}
	at, err := svc.ApplyTheme(ctx, "蓝色")
	if err != nil {
		t.Fatalf("ApplyTheme: %v", err)
	}
	if at.Color.Primary != "#3b82f6" {
		t.Errorf("applied = %+v", at)
	}
	if svc.ActiveTheme(ctx).Name != "蓝色" {
		t.Error("not persisted")
	}
	if !strings.Contains(svc.StyleSheet(ctx), "--color-primary: #3b82f6;") {
		t.Errorf("css = %q", svc.StyleSheet(ctx))
	}
	if len(pub.names) != 1 || pub.names[0] != "蓝色" {
		t.Errorf("published = %v", pub.names)
	}

	if _, err := svc.ApplyTheme(ctx, "  "); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("blank name err = %v", err)
	}

	reset := svc.ResetTheme(ctx)
	if reset.Name != "橙色" || svc.ActiveTheme(ctx).Name != "橙色" {
		t.Errorf("reset = %+v, active = %q", reset, svc.ActiveTheme(ctx).Name)
	}
	if !strings.Contains(svc.StyleSheet(ctx), "--color-primary: "+reset.Color.Primary+";") {
		t.Errorf("css after reset = %q", svc.StyleSheet(ctx))
	}
	if len(pub.names) != 2 || pub.names[1] != "橙色" {
		t.Errorf("published = %v", pub.names)
	}
	if got := len(svc.Themes(ctx)); got != 8 {
		t.Errorf("themes = %d", got)
	}
}
