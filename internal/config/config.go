// Package config provides YAML-based game configuration loading and
// validation for the snake platform.
package config

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// ErrInvalidConfig is returned when a config fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Board    BoardConfig            `yaml:"board"`
	Scoring  ScoringConfig          `yaml:"scoring"`
	Timing   TimingConfig           `yaml:"timing"`
	Variants map[string]RulesConfig `yaml:"variants" validate:"dive"`
}

// BoardConfig defines the grid size in cells.
type BoardConfig struct {
	Width  int `yaml:"width" validate:"min=2,max=200"`
	Height int `yaml:"height" validate:"min=2,max=100"`
}

// ScoringConfig defines how apples are scored.
type ScoringConfig struct {
	AppleReward int `yaml:"apple_reward" validate:"min=0"`
}

// TimingConfig defines how fast the board moves relative to the tick rate.
type TimingConfig struct {
	MoveEveryTicks int `yaml:"move_every_ticks" validate:"min=1,max=600"`
}

// RulesConfig is the policy set of one variant.
type RulesConfig struct {
	Edges       string `yaml:"edges" validate:"oneof=wrap walled"`
	OnCollision string `yaml:"on_collision" validate:"oneof=reset game_over"`
	Turns       string `yaml:"turns" validate:"oneof=first last"`
}

// DefaultSnakeConfig returns the built-in Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			Width:  20,
			Height: 15,
		},
		Scoring: ScoringConfig{
			AppleReward: 10,
		},
		Timing: TimingConfig{
			MoveEveryTicks: 6, // 10 moves per second at 60 FPS
		},
		Variants: map[string]RulesConfig{
			"snake": {
				Edges:       "wrap",
				OnCollision: "reset",
				Turns:       "first",
			},
			"snake_walled": {
				Edges:       "walled",
				OnCollision: "game_over",
				Turns:       "last",
			},
		},
	}
}

// RulesFor returns the configured rules of a variant.
func (c SnakeConfig) RulesFor(variantID string) (RulesConfig, bool) {
	r, ok := c.Variants[variantID]
	return r, ok
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field against its constraints.
func (c SnakeConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q (value %v)", ErrInvalidConfig, fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultSnakeYAML
}
