package snake

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/grid"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Variant is a named, fixed rule set.
type Variant struct {
	ID    string
	Title string
	Rules config.RulesConfig
}

var (
	// Classic wraps around the edges and starts over after a self-bite.
	Classic = Variant{
		ID:    "snake",
		Title: "Snake",
		Rules: config.RulesConfig{Edges: "wrap", OnCollision: "reset", Turns: "first"},
	}

	// Walled ends the game on any collision, walls included.
	Walled = Variant{
		ID:    "snake_walled",
		Title: "Snake (Walled)",
		Rules: config.RulesConfig{Edges: "walled", OnCollision: "game_over", Turns: "last"},
	}
)

func init() {
	for _, v := range []Variant{Classic, Walled} {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}

var (
	gameConfigMu sync.RWMutex
	gameConfig   = config.DefaultSnakeConfig()
)

// SetConfig replaces the configuration used by games created afterwards.
func SetConfig(cfg config.SnakeConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	gameConfigMu.Lock()
	gameConfig = cfg
	gameConfigMu.Unlock()
	return nil
}

// CurrentConfig returns the configuration games are built from.
func CurrentConfig() config.SnakeConfig {
	gameConfigMu.RLock()
	defer gameConfigMu.RUnlock()
	return gameConfig
}

// gridConfig merges board settings with the variant's rules. Rules set in the
// config file under the variant's id override the built-in ones.
func (v Variant) gridConfig(cfg config.SnakeConfig) (grid.Config, error) {
	rules := v.Rules
	if r, ok := cfg.RulesFor(v.ID); ok {
		rules = r
	}

	edges, err := grid.ParseEdgePolicy(rules.Edges)
	if err != nil {
		return grid.Config{}, fmt.Errorf("variant %s: %w", v.ID, err)
	}
	onCollision, err := grid.ParseCollisionPolicy(rules.OnCollision)
	if err != nil {
		return grid.Config{}, fmt.Errorf("variant %s: %w", v.ID, err)
	}
	turns, err := grid.ParseTurnPolicy(rules.Turns)
	if err != nil {
		return grid.Config{}, fmt.Errorf("variant %s: %w", v.ID, err)
	}

	return grid.Config{
		Width:       cfg.Board.Width,
		Height:      cfg.Board.Height,
		Edges:       edges,
		OnCollision: onCollision,
		Turns:       turns,
		Reward:      cfg.Scoring.AppleReward,
	}, nil
}

// buildBoard creates a board from cfg. When cfg cannot produce one, the
// built-in configuration is used instead and returned as the config in effect.
func (v Variant) buildBoard(cfg config.SnakeConfig, seed int64) (*grid.State, config.SnakeConfig, error) {
	board, err := v.newBoard(cfg, seed)
	if err == nil {
		return board, cfg, nil
	}

	def := config.DefaultSnakeConfig()
	board, defErr := v.newBoard(def, seed)
	if defErr != nil {
		return nil, cfg, fmt.Errorf("cannot build board: %w", errors.Join(err, defErr))
	}
	return board, def, nil
}

func (v Variant) newBoard(cfg config.SnakeConfig, seed int64) (*grid.State, error) {
	gc, err := v.gridConfig(cfg)
	if err != nil {
		return nil, err
	}
	return grid.New(gc, seed)
}
