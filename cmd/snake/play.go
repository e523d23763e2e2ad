package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/console"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

var flagPlain bool

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing Snake. Without a variant a picker menu is shown first.

Controls:
  Arrows/WASD/HJKL - Steer
  P                - Pause
  R                - Restart (after game over)
  Esc/B            - Back to menu (paused or game over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

With --plain the game runs without the full-screen UI: the terminal is redrawn
after every move and the program exits when the game is over.

Examples:
  snake play
  snake play snake_walled
  snake play snake --plain
  snake play --seed 42 --config ./my-snake.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagPlain, "plain", false, "Use the plain console runner instead of the full-screen UI")
}

// terminalConfig builds the runtime config from the terminal size and global flags.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(_ *cobra.Command, args []string) error {
	// The TUI owns the terminal, so logs only go to --log-file
	logger, closeLog, err := newLogger(io.Discard, "snake")
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := terminalConfig()

	if len(args) == 1 && !registry.Exists(args[0]) {
		return fmt.Errorf("unknown variant %q, run 'snake list' to see available variants", args[0])
	}

	if flagPlain {
		gameID := snake.Classic.ID
		if len(args) == 1 {
			gameID = args[0]
		}
		game, err := registry.Create(gameID)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return console.Run(ctx, game, cfg, os.Stdin, os.Stdout, logger)
	}

	// A variant on the command line skips the menu once; back returns to it
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
	}

	for {
		if gameID == "" {
			result, err := tui.RunMenu(cfg)
			if err != nil {
				return fmt.Errorf("menu: %w", err)
			}
			if result.Quit {
				return nil
			}
			cfg = result.Config
			gameID = result.GameID
		}

		game, err := registry.Create(gameID)
		if err != nil {
			return err
		}

		back, err := tui.Run(game, cfg, logger)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !back {
			return nil
		}
		gameID = ""
	}
}
