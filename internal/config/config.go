// Package config loads wgsl-pp settings from YAML config files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	yamlv3 "go.yaml.in/yaml/v3"
)

// Config holds the CLI settings that can come from a config file.
// Command-line flags override any of these.
type Config struct {
	// Defines are object-like macros applied before the root file is read.
	Defines map[string]string `json:"defines"`

	// Output is the path the expanded source is written to; empty means stdout.
	Output string `json:"output"`

	// Validator is an external command run over the expanded source.
	Validator string `json:"validator"`
}

// DefaultPaths returns the config search order. The first existing
// file wins.
func DefaultPaths() []string {
	paths := []string{".wgsl-pp.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".wgsl-pp.yaml"))
	}
	return paths
}

// Load reads the first config file found among paths and decodes it.
// With no arguments it searches DefaultPaths, where having no config
// file at all is fine and yields the zero Config. Explicitly requested
// paths are stricter: if none of them can be read, Load fails instead
// of silently running without them.
func Load(paths ...string) (*Config, error) {
	explicit := len(paths) > 0
	if !explicit {
		paths = DefaultPaths()
	}

	var cfg Config
	var readErr error
	loaded := false
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			if readErr == nil {
				readErr = err
			}
			continue
		}

		raw, err := parseConfigBytes(content)
		if err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		if err := decodeConfigMap(raw, &cfg); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}

		slog.Debug("Loaded config from file", "path", path)
		loaded = true
		break
	}
	if explicit && !loaded {
		return nil, fmt.Errorf("read config file: %w", readErr)
	}
	return &cfg, nil
}

func parseConfigBytes(content []byte) (map[string]any, error) {
	var raw any
	if err := yamlv3.Unmarshal(content, &raw); err != nil {
		return nil, err
	}

	normalized := normalizeMapKeys(raw)
	if normalized == nil {
		return map[string]any{}, nil
	}
	configMap, ok := normalized.(map[string]any)
	if !ok {
		return nil, errors.New("config root must be a mapping")
	}
	return configMap, nil
}

// normalizeMapKeys converts map[any]any trees produced by the YAML
// decoder into map[string]any so mapstructure can walk them.
func normalizeMapKeys(val any) any {
	switch typed := val.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[key] = normalizeMapKeys(value)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[fmt.Sprintf("%v", key)] = normalizeMapKeys(value)
		}
		return out
	case []any:
		for i := range typed {
			typed[i] = normalizeMapKeys(typed[i])
		}
		return typed
	default:
		return val
	}
}

func decodeConfigMap(data map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "json",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(data)
}
