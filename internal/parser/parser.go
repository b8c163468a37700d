// Package parser splits a Markdown document into its frontmatter header and body.
package parser

import (
	"regexp"
	"strings"
)

// frontmatterRe matches a leading "---" line, a non-empty metadata block, a
// closing "---" line and a non-empty remainder. Blank lines after the
// closing delimiter belong to the body.
var frontmatterRe = regexp.MustCompile(`(?s)\A---[ \t]*\r?\n(.*?)\n---[ \t]*\r?\n(.*)\z`)

// Result holds the output of parsing a document.
type Result struct {
	Frontmatter map[string]string
	Body        string
}

// Get returns the trimmed frontmatter value for key, or "" when absent.
func (r *Result) Get(key string) string {
	return r.Frontmatter[key]
}

// Parse separates the frontmatter header from the body. Text without a
// well-formed header is returned whole as body with empty metadata.
func Parse(text string) *Result {
	m := frontmatterRe.FindStringSubmatch(text)
	if m == nil || m[1] == "" || m[2] == "" {
		return &Result{Frontmatter: map[string]string{}, Body: text}
	}
	return &Result{
		Frontmatter: parseHeader(m[1]),
		Body:        m[2],
	}
}

// parseHeader reads "key: value" lines. The value is everything after the
// first colon, so it may itself contain colons. Lines without a colon or
// with an empty key are skipped; later keys override earlier ones.
func parseHeader(block string) map[string]string {
	fm := make(map[string]string)
	for _, line := range strings.Split(block, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		fm[key] = strings.TrimSpace(value)
	}
	return fm
}
