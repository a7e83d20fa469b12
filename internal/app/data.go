package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// loadData reads a YAML mapping of option data.
func loadData(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file %s: %w", path, err)
	}
	var data map[string]any
	if err := yaml.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("failed to parse data file %s: %w", path, err)
	}
	return data, nil
}

// mergeData returns base overlaid with over. Neither input is modified.
func mergeData(base, over map[string]any) map[string]any {
	if len(over) == 0 {
		return base
	}
	out := make(map[string]any, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}
