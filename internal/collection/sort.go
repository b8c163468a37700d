package collection

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Order is a requested sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// SortStable sorts items in place by cmp. With Desc the comparator result is
// negated. Records whose keys compare equal keep their relative order in
// both directions.
func SortStable[T any](items []T, cmp func(a, b T) int, order Order) {
	slices.SortStableFunc(items, func(a, b T) int {
		if order == Desc {
			return -cmp(a, b)
		}
		return cmp(a, b)
	})
}

// Limit truncates items to at most n records. A negative n keeps everything.
func Limit[T any](items []T, n int) []T {
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}

// ContainsFold reports whether substr occurs in s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// TextComparer returns a locale-aware string comparison. The returned func
// must not be shared between goroutines.
func TextComparer() func(a, b string) int {
	c := collate.New(language.Und)
	return c.CompareString
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// EpochMillis parses a date or timestamp and returns milliseconds since the
// Unix epoch. Empty and unparseable values yield 0.
func EpochMillis(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}
