// Package yamlenv provides typed YAML config values that can be
// substituted from the environment with ${VAR} placeholders.
package yamlenv

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Env holds a single config value. In YAML it is written either as a
// literal ("8080") or as a placeholder ("${API_PORT}") resolved from the
// environment at load time.
type Env[T any] struct {
	Value T
}

func (e *Env[T]) UnmarshalYAML(node *yaml.Node) error {
	raw := node.Value

	if strings.HasPrefix(raw, "${") && strings.HasSuffix(raw, "}") {
		name := strings.TrimSuffix(strings.TrimPrefix(raw, "${"), "}")

		var resolved yaml.Node
		resolved.SetString(os.Getenv(name))

		if err := resolved.Decode(&e.Value); err != nil {
			return fmt.Errorf("yamlenv: decode %s: %w", name, err)
		}

		return nil
	}

	if err := node.Decode(&e.Value); err != nil {
		return fmt.Errorf("yamlenv: decode: %w", err)
	}

	return nil
}

func (e *Env[T]) String() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%v", e.Value)
}
