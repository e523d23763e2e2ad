package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SkippedFile is a config file that was found during the search but could not
// be used.
type SkippedFile struct {
	Path string
	Err  error
}

func (s SkippedFile) Error() string {
	return fmt.Sprintf("config %s skipped: %v", s.Path, s.Err)
}

func (s SkippedFile) Unwrap() error { return s.Err }

// LoadSnake loads Snake configuration.
// Search order: customPath -> ~/.snake/configs/snake.yaml -> ./configs/snake.yaml -> embedded default.
// Files are applied on top of the built-in defaults, so partial files are fine,
// down to single fields of a variant.
// A custom path must exist and be valid. The other locations are skipped when
// missing; when present but broken they are skipped and reported in skipped.
func LoadSnake(customPath string) (cfg SnakeConfig, skipped []SkippedFile, err error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SnakeConfig{}, nil, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return SnakeConfig{}, nil, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil, nil
	}

	candidates := []string{filepath.Join("configs", "snake.yaml")}
	if userCfgPath := userConfigPath("snake.yaml"); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				skipped = append(skipped, SkippedFile{Path: path, Err: err})
			}
			continue
		}
		cfg, err := parse(data)
		if err != nil {
			skipped = append(skipped, SkippedFile{Path: path, Err: err})
			continue
		}
		return cfg, skipped, nil
	}

	// Use embedded default YAML
	cfg, err = parse(defaultSnakeYAML)
	if err != nil {
		return DefaultSnakeConfig(), skipped, nil // Fallback to hardcoded if embed fails
	}
	return cfg, skipped, nil
}

// rulesOverride is a variant entry as written in a file. Absent fields keep
// the default.
type rulesOverride struct {
	Edges       *string `yaml:"edges"`
	OnCollision *string `yaml:"on_collision"`
	Turns       *string `yaml:"turns"`
}

func (o rulesOverride) applyTo(r *RulesConfig) {
	if o.Edges != nil {
		r.Edges = *o.Edges
	}
	if o.OnCollision != nil {
		r.OnCollision = *o.OnCollision
	}
	if o.Turns != nil {
		r.Turns = *o.Turns
	}
}

// parse decodes YAML over the defaults and validates the result.
func parse(data []byte) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SnakeConfig{}, err
	}

	// yaml.v3 replaces whole map entries, so variants are merged field by field
	var file struct {
		Variants map[string]rulesOverride `yaml:"variants"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return SnakeConfig{}, err
	}
	cfg.Variants = DefaultSnakeConfig().Variants
	for id, o := range file.Variants {
		r := cfg.Variants[id]
		o.applyTo(&r)
		cfg.Variants[id] = r
	}

	if err := cfg.Validate(); err != nil {
		return SnakeConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "configs", filename)
}
