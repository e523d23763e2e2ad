// Package snake adapts the grid engine to the platform Game interface:
// move pacing, pause/restart, HUD and overlays.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/grid"
)

const (
	hudHeight = 2 // Title line + separator

	// bannerTicks is how long the "starting over" banner stays up (~1.5s at 60 FPS).
	bannerTicks = 90
)

// Game implements the Snake game for one variant.
type Game struct {
	variant Variant
	cfg     config.SnakeConfig
	runtime core.RuntimeConfig
	seeds   *rand.Rand // Seeds for restarts
	board   *grid.State
	tick    uint64

	moveEveryTicks int
	moveTicker     int // Counts ticks until next move
	lastOutcome    grid.Outcome
	banner         int // Ticks left on the reset banner

	// Layout
	mapOffsetX int
	mapOffsetY int

	paused   bool
	tooSmall bool
}

// New creates a game for the given variant.
func New(v Variant) *Game {
	return &Game{variant: v}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Describe returns a one-line summary of the variant's rules.
func (g *Game) Describe() string {
	r := g.variant.Rules
	if cr, ok := CurrentConfig().RulesFor(g.variant.ID); ok {
		r = cr
	}
	onCollision := "starts over on collision"
	if r.OnCollision == "game_over" {
		onCollision = "game over on collision"
	}
	return fmt.Sprintf("%s edges, %s, %s turn per move wins", r.Edges, onCollision, r.Turns)
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.cfg = CurrentConfig()
	g.seeds = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.moveTicker = 0
	g.lastOutcome = grid.OutcomeMoved
	g.banner = 0
	g.paused = false

	board, used, err := g.variant.buildBoard(g.cfg, cfg.Seed)
	if err != nil {
		panic(fmt.Sprintf("snake: %v", err))
	}
	g.cfg = used
	g.board = board
	g.moveEveryTicks = max(1, g.cfg.Timing.MoveEveryTicks)

	g.layout()
}

// Resize adapts the layout to a new screen size and keeps the board.
func (g *Game) Resize(cfg core.RuntimeConfig) {
	g.runtime.ScreenW = cfg.ScreenW
	g.runtime.ScreenH = cfg.ScreenH
	g.layout()
}

// layout centers the boxed board below the HUD.
func (g *Game) layout() {
	boxW := g.board.Width() + 2
	boxH := g.board.Height() + 2
	requiredH := hudHeight + boxH + 1 // Banner line

	g.tooSmall = g.runtime.ScreenW < boxW || g.runtime.ScreenH < requiredH
	g.mapOffsetX = (g.runtime.ScreenW - boxW) / 2
	g.mapOffsetY = hudHeight
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++
	over := g.board.Status() == grid.StatusOver

	// Handle restart
	if input.Has(core.ActionRestart) && over {
		next := g.runtime
		next.Seed = g.seeds.Int63()
		g.Reset(next)
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !over {
		g.paused = !g.paused
	}

	if over || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.banner > 0 {
		g.banner--
	}

	// Keys go to the board in press order; its turn policy picks the winner
	for _, d := range input.Directions() {
		g.board.QueueDirection(d)
	}

	g.moveTicker++
	if g.moveTicker < g.moveEveryTicks {
		return core.StepResult{State: g.State()}
	}
	g.moveTicker = 0

	g.lastOutcome = g.board.Tick()
	if g.lastOutcome == grid.OutcomeReset {
		g.banner = bannerTicks
	}

	return core.StepResult{State: g.State(), Moved: true}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d", g.board.Width()+2, hudHeight+g.board.Height()+3))
		return
	}

	g.renderBoard(dst)

	if g.banner > 0 {
		dst.DrawTextCentered(g.mapOffsetY+g.board.Height()+2, "Bitten! Starting over")
	}

	switch {
	case g.board.Status() == grid.StatusOver:
		g.renderOverlay(dst, g.overTitle(), fmt.Sprintf("Score: %d", g.board.Score()), "R: restart  Q: quit")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// overTitle names the reason the game ended.
func (g *Game) overTitle() string {
	switch g.lastOutcome {
	case grid.OutcomeWallHit:
		return "Game Over: hit the wall"
	case grid.OutcomeSelfHit:
		return "Game Over: bit yourself"
	case grid.OutcomeBoardFull:
		return "Board full. You win!"
	default:
		return "Game Over"
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s — Score: %d  Length: %d", g.Title(), g.board.Score(), len(g.board.Body()))
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderBoard draws the frame, apple and snake.
func (g *Game) renderBoard(dst *core.Screen) {
	frame := core.NewRect(g.mapOffsetX, g.mapOffsetY, g.board.Width()+2, g.board.Height()+2)
	frameColor := core.ColorGray
	if g.board.Config().Edges == grid.EdgeWalled {
		frameColor = core.ColorYellow
	}
	dst.DrawBox(frame, frameColor)

	apple := g.board.Apple()
	if g.board.Status() == grid.StatusRunning || !g.board.Occupied(apple) {
		dst.SetColor(g.cellX(apple), g.cellY(apple), '*', core.ColorBrightRed)
	}

	for i, seg := range g.board.Body() {
		if i == 0 {
			dst.SetColor(g.cellX(seg), g.cellY(seg), 'O', core.ColorBrightGreen)
		} else {
			dst.SetColor(g.cellX(seg), g.cellY(seg), 'o', core.ColorGreen)
		}
	}
}

func (g *Game) cellX(p core.Point) int { return g.mapOffsetX + 1 + p.X }
func (g *Game) cellY(p core.Point) int { return g.mapOffsetY + 1 + p.Y }

// renderOverlay draws a centered box with one message per line.
func (g *Game) renderOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}
	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i, l)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.board.Score(),
		GameOver: g.board.Status() == grid.StatusOver,
		Paused:   g.paused,
	}
}

// Board exposes the underlying grid state to front ends and tests.
func (g *Game) Board() *grid.State {
	return g.board
}

// LastOutcome returns the outcome of the most recent board move.
func (g *Game) LastOutcome() grid.Outcome {
	return g.lastOutcome
}
