package project

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/chihom/internal/collection"
	"github.com/starford/chihom/internal/models"
)

func sampleProjects() []models.Project {
	return []models.Project{
		{ID: "1", Name: "core", FullName: "vuejs/core", Description: "Vue.js framework", Language: "TypeScript", LanguageColor: "#3178c6", Stars: 100, Forks: 10, Watchers: 5, Topics: []string{"vue", "frontend"}, CreatedAt: "2018-06-12T18:43:25Z", UpdatedAt: "2024-01-15T09:00:00Z"},
		{ID: "2", Name: "go", FullName: "golang/go", Description: "The Go programming language", Language: "Go", LanguageColor: "#00ADD8", Stars: 300, Forks: 5, Watchers: 7, Topics: []string{"go", "language"}, CreatedAt: "2014-08-19T04:33:40Z", UpdatedAt: "2024-01-10T00:00:00Z"},
		{ID: "3", Name: "vite", FullName: "vitejs/vite", Description: "Frontend tooling", Language: "TypeScript", LanguageColor: "#000000", Stars: 200, Forks: 30, Watchers: 1, Topics: []string{"frontend", "build-tool"}, CreatedAt: "2020-04-21T05:26:55Z", UpdatedAt: "2024-01-12T00:00:00Z"},
		{ID: "4", Name: "dotfiles", FullName: "me/dotfiles", Description: "Personal config", Stars: 1, Topics: []string{}, UpdatedAt: "bogus"},
	}
}

func TestCategoriesCountEveryTopic(t *testing.T) {
	cats := NewCollection(sampleProjects()).Categories()
	if cats[0].Name != "frontend" || cats[0].Count != 2 {
		t.Errorf("top topic = %+v", cats[0])
	}
	sum := 0
	for i, c := range cats {
		sum += c.Count
		if i > 0 && c.Count > cats[i-1].Count {
			t.Errorf("not sorted at %d", i)
		}
	}
	if sum != 6 {
		t.Errorf("sum = %d, want 6 (project, topic) pairs", sum)
	}
}

func TestCategoriesTopTen(t *testing.T) {
	var items []models.Project
	for i := 0; i < 15; i++ {
		items = append(items, models.Project{ID: fmt.Sprint(i), Topics: []string{fmt.Sprintf("topic-%d", i)}})
	}
	if got := NewCollection(items).Categories(); len(got) != 10 {
		t.Errorf("len = %d, want 10", len(got))
	}
}

func TestLanguages(t *testing.T) {
	langs := NewCollection(sampleProjects()).Languages()
	if len(langs) != 2 {
		t.Fatalf("languages = %+v", langs)
	}
	if langs[0].Name != "TypeScript" || langs[0].Count != 2 || langs[0].Color != "#3178c6" {
		t.Errorf("languages[0] = %+v, want first-seen color", langs[0])
	}
	if langs[1].Name != "Go" || langs[1].Count != 1 {
		t.Errorf("languages[1] = %+v", langs[1])
	}
}

func TestStats(t *testing.T) {
	s := NewCollection(sampleProjects()).Stats()
	if s.TotalProjects != 4 || s.TotalStars != 601 || s.TotalForks != 45 || s.TotalWatchers != 13 {
		t.Errorf("stats = %+v", s)
	}
	if s.Languages["TypeScript"] != 2 || s.Languages["Go"] != 1 || len(s.Languages) != 2 {
		t.Errorf("languages = %v", s.Languages)
	}
}

func TestQuery_DefaultStarsDesc(t *testing.T) {
	got := NewCollection(sampleProjects()).Query(Filter{})
	if ids(got) != "2314" {
		t.Errorf("order = %s, want 2314", ids(got))
	}
}

func TestQuery_Filters(t *testing.T) {
	c := NewCollection(sampleProjects())
	if got := c.Query(Filter{Category: "frontend"}); ids(got) != "31" {
		t.Errorf("topic filter = %s", ids(got))
	}
	if got := c.Query(Filter{Category: "frontend", Language: "TypeScript", SortBy: SortByName, SortOrder: collection.Asc}); ids(got) != "13" {
		t.Errorf("topic+language = %s", ids(got))
	}
	if got := c.Query(Filter{Search: "GOLANG"}); ids(got) != "2" {
		t.Errorf("search fullName = %s", ids(got))
	}
	if got := c.Query(Filter{Search: "build"}); ids(got) != "3" {
		t.Errorf("search topic = %s", ids(got))
	}
}

func TestQuery_SortKeys(t *testing.T) {
	c := NewCollection(sampleProjects())
	cases := []struct {
		f    Filter
		want string
	}{
		{Filter{SortBy: SortByForks}, "3124"},
		{Filter{SortBy: SortByStars, SortOrder: collection.Asc}, "4132"},
		{Filter{SortBy: SortByUpdated}, "1324"},
		{Filter{SortBy: SortByCreated, SortOrder: collection.Asc}, "4213"},
		{Filter{SortBy: SortByName, SortOrder: collection.Asc}, "1423"},
	}
	for _, tc := range cases {
		if got := ids(c.Query(tc.f)); got != tc.want {
			t.Errorf("%+v: got %s, want %s", tc.f, got, tc.want)
		}
	}
}

func TestFilterValidate(t *testing.T) {
	if err := (Filter{SortBy: SortByUpdated, SortOrder: collection.Desc}).Validate(); err != nil {
		t.Errorf("valid filter: %v", err)
	}
	if err := (Filter{SortBy: "date"}).Validate(); err == nil {
		t.Error("expected error for knowledge-only sort key")
	}
}

func TestLookupsAndRankings(t *testing.T) {
	c := NewCollection(sampleProjects())
	if p, ok := c.ByID("3"); !ok || p.Name != "vite" {
		t.Errorf("ByID = %+v, %v", p, ok)
	}
	if _, ok := c.ByID("missing"); ok {
		t.Error("expected not found")
	}
	if got := c.ByLanguage("TypeScript"); ids(got) != "13" {
		t.Errorf("ByLanguage = %s", ids(got))
	}
	if got := c.ByTopic("go"); ids(got) != "2" {
		t.Errorf("ByTopic = %s", ids(got))
	}
	if got := c.Recent(2); ids(got) != "13" {
		t.Errorf("Recent = %s", ids(got))
	}
	if got := c.Trending(3); ids(got) != "231" {
		t.Errorf("Trending = %s", ids(got))
	}
	if got := c.Trending(10); len(got) != 4 {
		t.Errorf("Trending(10) len = %d", len(got))
	}
	if ids(c.Items()) != "1234" {
		t.Error("rankings reordered the collection")
	}
}

func TestSetItemsReplaces(t *testing.T) {
	c := NewCollection(sampleProjects())
	c.SetItems([]models.Project{{ID: "9", Language: "Rust", Stars: 3}})
	s := c.Stats()
	if s.TotalProjects != 1 || s.TotalStars != 3 || s.Languages["Go"] != 0 {
		t.Errorf("stats after replace = %+v", s)
	}
}

func TestSeed(t *testing.T) {
	items, err := Seed()
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("seed is empty")
	}
	for _, p := range items {
		if p.ID == "" || p.FullName == "" {
			t.Errorf("incomplete seed project: %+v", p)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.yaml")
	doc := "projects:\n  - id: x\n    name: x\n    fullName: me/x\n    stars: 4\n    owner:\n      login: me\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	items, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(items) != 1 || items[0].Owner.Login != "me" || items[0].Topics == nil {
		t.Errorf("items = %+v", items)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func ids(items []models.Project) string {
	s := ""
	for _, p := range items {
		s += p.ID
	}
	return s
}
