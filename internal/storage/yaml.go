package storage

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitual/internal/models"
)

// exportVersion is bumped whenever the export document changes shape.
const exportVersion = 1

type exportDocument struct {
	Version int            `yaml:"version"`
	Habits  []models.Habit `yaml:"habits"`
}

// ExportYAML writes habits as a versioned YAML document.
func ExportYAML(w io.Writer, habits []models.Habit) error {
	if habits == nil {
		habits = []models.Habit{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(exportDocument{Version: exportVersion, Habits: habits}); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return enc.Close()
}

// ImportYAML reads a document written by ExportYAML. Every habit must pass
// validation; zero counts are dropped.
func ImportYAML(r io.Reader) ([]models.Habit, error) {
	var doc exportDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return []models.Habit{}, nil
		}
		return nil, fmt.Errorf("failed to decode import: %w", err)
	}
	if doc.Version > exportVersion {
		return nil, fmt.Errorf("import version %d is newer than supported version %d", doc.Version, exportVersion)
	}

	habits := make([]models.Habit, 0, len(doc.Habits))
	seen := make(map[string]bool, len(doc.Habits))
	for i := range doc.Habits {
		h := doc.Habits[i]
		h.Normalize()
		for key, n := range h.Completions {
			if n <= 0 {
				delete(h.Completions, key)
			}
		}
		if err := h.Validate(); err != nil {
			return nil, fmt.Errorf("habit %d (%q): %w", i+1, h.Name, err)
		}
		if seen[h.ID] {
			return nil, fmt.Errorf("habit %d (%q): duplicate id %s", i+1, h.Name, h.ID)
		}
		seen[h.ID] = true
		habits = append(habits, h)
	}
	return habits, nil
}
