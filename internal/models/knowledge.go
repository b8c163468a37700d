package models

// KnowledgeItem is a blog-like article built from a Markdown document.
type KnowledgeItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	// Date is an ISO 8601 date; empty means absent.
	Date    string `json:"date,omitempty"`
	Content string `json:"content"`
}
