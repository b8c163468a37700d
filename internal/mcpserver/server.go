// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the chihom menu, knowledge base and project showcase to LLM
// clients over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/chihom/internal/apperr"
	"github.com/starford/chihom/internal/collection"
	"github.com/starford/chihom/internal/knowledge"
	"github.com/starford/chihom/internal/project"
	"github.com/starford/chihom/internal/service"
)

// ArticleFormatURI addresses the article format resource.
const ArticleFormatURI = "chihom://article-format"

// Server wraps the MCP server with chihom tools.
type Server struct {
	mcp *server.MCPServer
	svc *service.Service
}

// New creates a new MCP server with all tools registered.
func New(svc *service.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"chihom",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_knowledge",
		mcp.WithDescription("Filter, search and sort knowledge articles. Returns metadata without article bodies."),
		mcp.WithString("query", mcp.Description("Case-insensitive text matched against title, description and content")),
		mcp.WithString("category", mcp.Description("Exact category name")),
		mcp.WithString("sort_by", mcp.Description("date, title or category (default date)")),
		mcp.WithString("sort_order", mcp.Description("asc or desc (default desc)")),
	), s.searchKnowledge)

	s.mcp.AddTool(mcp.NewTool("read_article",
		mcp.WithDescription("Read the full Markdown body of a knowledge article."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Article slug or id")),
	), s.readArticle)

	s.mcp.AddTool(mcp.NewTool("knowledge_facets",
		mcp.WithDescription("Category counts, the ten most used tags and totals for the knowledge base."),
	), s.knowledgeFacets)

	s.mcp.AddTool(mcp.NewTool("list_recipes",
		mcp.WithDescription("List menu recipes, optionally within one category."),
		mcp.WithString("category", mcp.Description("Category id such as main or soup; empty for all")),
	), s.listRecipes)

	s.mcp.AddTool(mcp.NewTool("get_recipe",
		mcp.WithDescription("Get one recipe with its ingredients and tutorial steps."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Numeric recipe id")),
	), s.getRecipe)

	s.mcp.AddTool(mcp.NewTool("popular_recipes",
		mcp.WithDescription("Up to six recipes flagged as popular."),
	), s.popularRecipes)

	s.mcp.AddTool(mcp.NewTool("shopping_list",
		mcp.WithDescription("Merge the ingredients of several recipes into one shopping list."),
		mcp.WithString("ids", mcp.Required(), mcp.Description("Comma separated recipe ids, e.g. 1,2,5")),
	), s.shoppingList)

	s.mcp.AddTool(mcp.NewTool("search_projects",
		mcp.WithDescription("Search the project showcase, most starred first."),
		mcp.WithString("query", mcp.Description("Case-insensitive text matched against names, description and topics")),
		mcp.WithString("language", mcp.Description("Exact primary language")),
		mcp.WithString("topic", mcp.Description("Topic the project must carry")),
	), s.searchProjects)

	s.mcp.AddTool(mcp.NewTool("list_themes",
		mcp.WithDescription("List the color themes and report the active one."),
	), s.listThemes)

	s.mcp.AddResource(
		mcp.NewResource(ArticleFormatURI, "Article Format",
			mcp.WithResourceDescription("Frontmatter format understood by the knowledge loader."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readArticleFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// articleSummary is an article without its body.
type articleSummary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Date        string   `json:"date,omitempty"`
}

func (s *Server) searchKnowledge(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.svc.SearchKnowledge(ctx, knowledge.Filter{
		Category:  req.GetString("category", ""),
		Search:    req.GetString("query", ""),
		SortBy:    req.GetString("sort_by", ""),
		SortOrder: collection.Order(req.GetString("sort_order", "")),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := make([]articleSummary, len(items))
	for i, it := range items {
		out[i] = articleSummary{
			ID:          it.ID,
			Title:       it.Title,
			Slug:        it.Slug,
			Description: it.Description,
			Category:    it.Category,
			Tags:        it.Tags,
			Date:        it.Date,
		}
	}
	return jsonResult(out)
}

func (s *Server) readArticle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a, err := s.svc.Article(ctx, slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("# %s\n\n%s", a.Title, a.Content)), nil
}

func (s *Server) knowledgeFacets(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]any{
		"categories": s.svc.KnowledgeCategories(ctx),
		"tags":       s.svc.KnowledgeTags(ctx),
		"stats":      s.svc.KnowledgeStats(ctx),
	})
}

func (s *Server) listRecipes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.Recipes(ctx, req.GetString("category", "")))
}

func (s *Server) getRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid id: %s", raw)), nil
	}
	r, err := s.svc.Recipe(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %d", id)), nil
	}
	return jsonResult(r)
}

func (s *Server) popularRecipes(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.PopularRecipes(ctx))
}

func (s *Server) shoppingList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("ids")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ids, err := service.ParseRecipeIDs(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.svc.ShoppingList(ctx, ids))
}

func (s *Server) searchProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.svc.SearchProjects(ctx, project.Filter{
		Category: req.GetString("topic", ""),
		Language: req.GetString("language", ""),
		Search:   req.GetString("query", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(items) == 0 {
		return mcp.NewToolResultText("no projects found"), nil
	}
	var b strings.Builder
	for _, p := range items {
		fmt.Fprintf(&b, "%s (%s, %d stars): %s\n", p.FullName, p.Language, p.Stars, p.Description)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) listThemes(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]any{
		"active": s.svc.ActiveTheme(ctx),
		"themes": s.svc.Themes(ctx),
	})
}

func (s *Server) readArticleFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ArticleFormatURI,
			MIMEType: "text/markdown",
			Text:     ArticleFormat,
		},
	}, nil
}
