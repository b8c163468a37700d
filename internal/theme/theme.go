// Package theme resolves named color themes and remembers the active one.
package theme

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// StorageKey is the preference key holding the active theme name.
const StorageKey = "chihom-know-theme"

// DefaultActive is the theme used when no preference is stored.
const DefaultActive = "橙色"

// CSS custom properties published by Apply.
const (
	PropPrimary   = "--color-primary"
	PropSecondary = "--color-secondary"
	PropAccent    = "--color-accent"
)

// Color is a named primary/secondary/accent triple.
type Color struct {
	Name      string `json:"name"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

var presets = []Color{
	{Name: "紫色", Primary: "#667eea", Secondary: "#764ba2", Accent: "#667eea"},
	{Name: "蓝色", Primary: "#3b82f6", Secondary: "#1d4ed8", Accent: "#3b82f6"},
	{Name: "绿色", Primary: "#10b981", Secondary: "#059669", Accent: "#10b981"},
	{Name: "橙色", Primary: "#f59e0b", Secondary: "#d97706", Accent: "#f59e0b"},
	{Name: "红色", Primary: "#ef4444", Secondary: "#dc2626", Accent: "#ef4444"},
	{Name: "粉色", Primary: "#ec4899", Secondary: "#db2777", Accent: "#ec4899"},
	{Name: "青色", Primary: "#06b6d4", Secondary: "#0891b2", Accent: "#06b6d4"},
	{Name: "靛蓝", Primary: "#6366f1", Secondary: "#4f46e5", Accent: "#6366f1"},
}

// Presets returns the fixed theme list.
func Presets() []Color {
	return append([]Color{}, presets...)
}

// Names returns the preset names in list order.
func Names() []string {
	out := make([]string, len(presets))
	for i, c := range presets {
		out[i] = c.Name
	}
	return out
}

// Resolve returns the preset named name, or the first preset.
func Resolve(name string) Color {
	for _, c := range presets {
		if c.Name == name {
			return c
		}
	}
	return presets[0]
}

// Store persists string preferences.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Surface receives the colors of the applied theme.
type Surface interface {
	SetProperty(name, value string)
}

// Registry reads and writes the active theme through a Store.
type Registry struct {
	store    Store
	fallback string
	logger   *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithFallback sets the name returned by Active when nothing is stored.
func WithFallback(name string) Option {
	return func(r *Registry) {
		r.fallback = name
	}
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry returns a Registry over store. A nil store behaves like
// NopStore.
func NewRegistry(store Store, opts ...Option) *Registry {
	if store == nil {
		store = NopStore{}
	}
	r := &Registry{store: store, fallback: DefaultActive, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Active returns the persisted theme name, or the fallback when none is
// stored or the store fails.
func (r *Registry) Active() string {
	name, ok, err := r.store.Get(StorageKey)
	if err != nil {
		r.logger.Warn("theme: read preference failed", slog.String("error", err.Error()))
		return r.fallback
	}
	if !ok || name == "" {
		return r.fallback
	}
	return name
}

// SetActive persists name as given; unknown names resolve to the first
// preset later.
func (r *Registry) SetActive(name string) {
	if err := r.store.Set(StorageKey, name); err != nil {
		r.logger.Warn("theme: write preference failed",
			slog.String("theme", name),
			slog.String("error", err.Error()))
	}
}

// Apply publishes the colors of name to surface and persists name.
func (r *Registry) Apply(name string, surface Surface) Color {
	c := paint(Resolve(name), surface)
	r.SetActive(name)
	return c
}

// Reset forgets the stored preference and paints the fallback theme. It
// returns the fallback name and its colors.
func (r *Registry) Reset(surface Surface) (string, Color) {
	if err := r.store.Delete(StorageKey); err != nil {
		r.logger.Warn("theme: clear preference failed", slog.String("error", err.Error()))
	}
	return r.fallback, paint(Resolve(r.fallback), surface)
}

func paint(c Color, surface Surface) Color {
	if surface != nil {
		surface.SetProperty(PropPrimary, c.Primary)
		surface.SetProperty(PropSecondary, c.Secondary)
		surface.SetProperty(PropAccent, c.Accent)
	}
	return c
}

// Initialize applies the persisted theme.
func (r *Registry) Initialize(surface Surface) Color {
	return r.Apply(r.Active(), surface)
}

// StyleSheet is an in-memory Surface rendered as a :root CSS rule.
type StyleSheet struct {
	mu    sync.RWMutex
	props map[string]string
}

// NewStyleSheet returns an empty StyleSheet.
func NewStyleSheet() *StyleSheet {
	return &StyleSheet{props: make(map[string]string)}
}

// SetProperty sets a custom property.
func (s *StyleSheet) SetProperty(name, value string) {
	s.mu.Lock()
	s.props[name] = value
	s.mu.Unlock()
}

// property returns the value of a custom property.
func (s *StyleSheet) property(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.props[name]
}

// CSS renders the properties as a :root rule, sorted by name.
func (s *StyleSheet) CSS() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.props))
	for n := range s.props {
		names = append(names, n)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, n := range names {
		fmt.Fprintf(&b, "  %s: %s;\n", n, s.props[n])
	}
	b.WriteString("}\n")
	return b.String()
}
