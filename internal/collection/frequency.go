package collection

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Count is one row of a frequency table.
type Count struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Counter tallies labels and remembers the order in which each label was
// first seen.
type Counter struct {
	order  []string
	counts map[string]int
}

// NewCounter returns an empty Counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add records one occurrence of label.
func (c *Counter) Add(label string) {
	if _, ok := c.counts[label]; !ok {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

// Get returns the number of occurrences of label.
func (c *Counter) Get(label string) int {
	return c.counts[label]
}

// Len returns the number of distinct labels.
func (c *Counter) Len() int {
	return len(c.order)
}

// Counts returns the table sorted by descending count. Labels with equal
// counts keep their first-seen order.
func (c *Counter) Counts() []Count {
	out := make([]Count, 0, len(c.order))
	for _, label := range c.order {
		out = append(out, Count{ID: NormalizeID(label), Name: label, Count: c.counts[label]})
	}
	slices.SortStableFunc(out, func(a, b Count) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}

// Tally counts every label returned by labels across items.
func Tally[T any](items []T, labels func(T) []string) []Count {
	c := NewCounter()
	for _, it := range items {
		for _, l := range labels(it) {
			c.Add(l)
		}
	}
	return c.Counts()
}

// NormalizeID lowercases name and replaces whitespace runs with a hyphen.
func NormalizeID(name string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(name), "-")
}
