package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "tetrion.yaml"

// LoadTetrion loads the rule configuration.
// Search order: customPath -> ~/.tetrion/configs/tetrion.yaml -> ./configs/tetrion.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a file only needs the
// keys it changes. An explicit customPath that cannot be read, parsed or
// validated is an error; the implicit locations are skipped instead.
func LoadTetrion(customPath string) (TetrionConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TetrionConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return TetrionConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return TetrionConfig{}, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(configFileName), filepath.Join("configs", configFileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decode(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decode(defaultTetrionYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultTetrionConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decode parses YAML over the default configuration. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
func decode(data []byte) (TetrionConfig, error) {
	cfg := DefaultTetrionConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return TetrionConfig{}, err
	}
	return cfg, nil
}

// Marshal renders a configuration as YAML.
func Marshal(cfg TetrionConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return buf.Bytes(), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetrion", "configs", filename)
}
