package project

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/starford/chihom/internal/models"
)

//go:embed seed.yaml
var seedYAML []byte

type document struct {
	Projects []models.Project `yaml:"projects"`
}

// Seed returns the projects bundled with the binary.
func Seed() ([]models.Project, error) {
	return decode(seedYAML, "seed")
}

// LoadFile reads projects from a YAML file with a top-level "projects" list.
func LoadFile(path string) ([]models.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("project: read %s: %w", path, err)
	}
	return decode(data, path)
}

func decode(data []byte, source string) ([]models.Project, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("project: parse %s: %w", source, err)
	}
	for i := range doc.Projects {
		if doc.Projects[i].Topics == nil {
			doc.Projects[i].Topics = []string{}
		}
	}
	return doc.Projects, nil
}
