package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/gridsweep/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Solver describes the external executable a sweep runs.
type Solver struct {
	Path        string            `yaml:"path" json:"path"`
	Dir         string            `yaml:"dir" json:"dir"`
	Environment map[string]string `yaml:"env" json:"env"`
	Description string            `yaml:"description" json:"description"`
}

// LoadSolver reads a solver description (YAML or JSON, by extension).
// An empty path in the file means the default solver.
func LoadSolver(path string) (Solver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Solver{}, fmt.Errorf("failed to read solver config: %w", err)
	}

	var s Solver
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		if err := json.Unmarshal(data, &s); err != nil {
			return Solver{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Solver{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if s.Path == "" {
		s.Path = domain.DefaultSolverPath
	}
	// Relative dirs are resolved against the file that names them.
	if s.Dir != "" && !filepath.IsAbs(s.Dir) {
		s.Dir = filepath.Join(filepath.Dir(path), s.Dir)
	}
	return s, nil
}
