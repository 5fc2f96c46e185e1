// Package yamlreader loads typed application configs from YAML files.
package yamlreader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func NewConfig[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	var cfg T
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	return &cfg, nil
}
