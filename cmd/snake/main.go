// snake is a terminal Snake game with wrap-around and walled variants.
//
// Usage:
//
//	snake list              - List available variants
//	snake play [variant]    - Play a variant (picker menu when omitted)
//	snake serve             - Start SSH server for remote play
//	snake sim [variant]     - Headless deterministic run, JSON lines out
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Custom config YAML
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic, in your terminal",
	Long: `Snake is a terminal version of the classic game.

Available commands:
  list     - Show all variants
  play     - Play a variant (menu when none is given)
  serve    - Start SSH server for remote play
  sim      - Run a variant headless and print snapshots

Examples:
  snake list
  snake play
  snake play snake_walled
  snake play --plain
  snake serve --ssh :2222
  snake sim snake --ticks 600 --script "12:up,40:left"`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

// loadConfig resolves the YAML config and hands it to the snake variants.
func loadConfig(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	cfg, skipped, err := config.LoadSnake(flagConfig)
	if err != nil {
		return err
	}
	for _, s := range skipped {
		log.Warn("ignoring config file", "path", s.Path, "error", s.Err)
	}
	return snake.SetConfig(cfg)
}
