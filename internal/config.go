package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/chihom/internal/theme"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Knowledge KnowledgeConfig   `yaml:"knowledge"`
	Projects  ProjectsConfig    `yaml:"projects"`
	SQLite    SQLiteConfig      `yaml:"sqlite"`
	Theme     ThemeConfig       `yaml:"theme"`
	Auth      AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Theme.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// KnowledgeConfig selects where articles come from. An empty VaultPath
// serves the articles bundled with the binary.
type KnowledgeConfig struct {
	VaultPath string `yaml:"vault_path"`
	Watch     bool   `yaml:"watch"`
}

// ProjectsConfig points at an optional YAML project list replacing the
// bundled one.
type ProjectsConfig struct {
	Path string `yaml:"path"`
}

// SQLiteConfig holds the preferences database location.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// ThemeConfig holds the theme used before a preference is stored.
type ThemeConfig struct {
	Fallback string `yaml:"fallback"`
}

// Validate validates the theme configuration.
func (c *ThemeConfig) Validate() error {
	names := theme.Names()
	allowed := make([]any, len(names))
	for i, n := range names {
		allowed[i] = n
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Fallback, validation.Required, validation.In(allowed...)),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Knowledge: KnowledgeConfig{
			Watch: true,
		},
		SQLite: SQLiteConfig{
			Path: "./chihom.db",
		},
		Theme: ThemeConfig{
			Fallback: theme.DefaultActive,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
