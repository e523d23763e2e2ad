// Package console runs a game on a plain terminal: raw-mode keyboard input and a
// full redraw per move, without Bubble Tea.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

const clearScreen = "\x1b[H\x1b[2J"

type runner struct {
	game   registry.Game
	cfg    core.RuntimeConfig
	screen *core.Screen
	out    io.Writer
	logger *log.Logger
}

// Run plays game until the player quits, input ends, or ctx is cancelled. A
// finished game stays on screen until the player restarts or quits. Stdin is
// switched to raw mode when it is a terminal.
func Run(ctx context.Context, game registry.Game, cfg core.RuntimeConfig, in io.Reader, out io.Writer, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("console: raw mode: %w", err)
		}
		defer term.Restore(fd, oldState) //nolint:errcheck // best-effort on exit
	}

	r := &runner{
		game:   game,
		cfg:    cfg,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		out:    out,
		logger: logger.With("game", game.ID()),
	}

	game.Reset(cfg)
	r.logger.Info("game started", "seed", cfg.Seed, "front_end", "console")
	if err := r.draw(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make(chan core.Action, 64)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return readKeys(gctx, in, keys)
	})
	g.Go(func() error {
		defer cancel()
		return r.loop(gctx, keys)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	state := game.State()
	r.logger.Info("game ended", "score", state.Score, "over", state.GameOver)
	_, err := fmt.Fprintf(out, "\r\nFinal score: %d\r\n", state.Score)
	return err
}

// readKeys forwards decoded actions until quit, end of input, or cancellation.
func readKeys(ctx context.Context, in io.Reader, keys chan<- core.Action) error {
	chunks := make(chan []byte)

	// A blocked Read cannot be interrupted; this goroutine exits on the next
	// read once ctx is done.
	go func() {
		defer close(chunks)
		buf := make([]byte, 16)
		for {
			n, err := in.Read(buf)
			if n > 0 {
				chunk := append([]byte(nil), buf[:n]...)
				select {
				case chunks <- chunk:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case chunk, ok := <-chunks:
			if !ok {
				return nil
			}
			for _, a := range decodeKeys(chunk) {
				if a == core.ActionQuit {
					return nil
				}
				select {
				case keys <- a:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}
}

// loop steps the game at the configured tick rate and redraws after every
// move, key press, or game over.
func (r *runner) loop(ctx context.Context, keys <-chan core.Action) error {
	ticker := time.NewTicker(time.Second / time.Duration(r.cfg.TickRate))
	defer ticker.Stop()

	frame := core.NewInputFrame()
	over := false
	for {
		select {
		case <-ctx.Done():
			return nil

		case a := <-keys:
			frame.Set(a)

		case <-ticker.C:
			pressed := !frame.Empty()
			res := r.game.Step(frame)
			frame.Clear()

			ended := res.State.GameOver && !over
			if ended {
				r.logger.Info("game over", "score", res.State.Score)
			}
			over = res.State.GameOver

			if res.Moved || pressed || ended {
				if err := r.draw(); err != nil {
					return err
				}
			}
		}
	}
}

// draw clears the terminal and prints the screen and score line.
func (r *runner) draw() error {
	r.game.Render(r.screen)

	var sb strings.Builder
	sb.WriteString(clearScreen)
	for y := range r.screen.Height() {
		// Raw mode needs explicit carriage returns
		sb.WriteString(strings.TrimRight(r.screen.Row(y), " "))
		sb.WriteString("\r\n")
	}
	fmt.Fprintf(&sb, "Score: %d\r\n", r.game.State().Score)

	if _, err := io.WriteString(r.out, sb.String()); err != nil {
		return fmt.Errorf("console: write: %w", err)
	}
	return nil
}
