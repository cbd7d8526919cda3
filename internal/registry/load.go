package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvRegistry names the environment variable that selects a registry file
// when no explicit path is given (used by the MCP server, which has no
// flags of its own once launched by a host).
const EnvRegistry = "SWITCHBOARD_REGISTRY"

// LoadFile reads and validates a registry file. JSON is the default
// format; files ending in .yaml or .yml are parsed as YAML with the same
// field names. Read and parse failures, like validation failures, are
// fatal configuration errors — there is no fallback to defaults for an
// explicitly requested file.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry %s: %w", path, err)
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing registry %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing registry %s: %w", path, err)
		}
	}

	r, err := New(f)
	if err != nil {
		return nil, fmt.Errorf("registry %s: %w", path, err)
	}
	return r, nil
}

// Resolve picks the registry to use: the file at path when non-empty,
// otherwise the file named by SWITCHBOARD_REGISTRY, otherwise the
// compiled-in defaults.
func Resolve(path string) (*Registry, error) {
	if path == "" {
		path = os.Getenv(EnvRegistry)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
