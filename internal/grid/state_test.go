package grid

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func classicConfig() Config {
	return Config{
		Width:       20,
		Height:      15,
		Edges:       EdgeWrap,
		OnCollision: CollisionReset,
		Turns:       TurnFirstWins,
		Reward:      DefaultReward,
	}
}

func walledConfig() Config {
	cfg := classicConfig()
	cfg.Edges = EdgeWalled
	cfg.OnCollision = CollisionGameOver
	cfg.Turns = TurnLastWins
	return cfg
}

func mustNew(t *testing.T, cfg Config) *State {
	t.Helper()
	s, err := New(cfg, 42)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

// place sets the snake body directly. The apple is parked in a corner away from it.
func place(s *State, dir core.Direction, target int, body ...core.Point) {
	s.snake.Body = body
	s.snake.Dir = dir
	s.snake.Next = core.DirNone
	s.snake.Target = target
	s.apple = core.Point{X: 0, Y: 0}
}

func TestStartScenario(t *testing.T) {
	s := mustNew(t, classicConfig())

	if got := s.Head(); got != (core.Point{X: 10, Y: 7}) {
		t.Fatalf("initial head = %v, expected (10, 7)", got)
	}
	if s.Direction() != core.DirRight {
		t.Fatalf("initial direction = %v, expected right", s.Direction())
	}
	if len(s.Body()) != 1 || s.TargetLength() != 1 {
		t.Fatalf("initial length = %d/%d, expected 1/1", len(s.Body()), s.TargetLength())
	}

	// Keep the apple off the path
	s.apple = core.Point{X: 0, Y: 0}

	for i := 0; i < 3; i++ {
		if out := s.Tick(); out != OutcomeMoved {
			t.Fatalf("tick %d: outcome = %v, expected moved", i, out)
		}
	}

	if got := s.Head(); got != (core.Point{X: 13, Y: 7}) {
		t.Errorf("head after 3 ticks = %v, expected (13, 7)", got)
	}
	if len(s.Body()) != 1 {
		t.Errorf("body length after 3 ticks = %d, expected 1", len(s.Body()))
	}
}

func TestWrapAround(t *testing.T) {
	tests := []struct {
		name string
		from core.Point
		dir  core.Direction
		want core.Point
	}{
		{"right edge", core.Point{X: 19, Y: 5}, core.DirRight, core.Point{X: 0, Y: 5}},
		{"left edge", core.Point{X: 0, Y: 5}, core.DirLeft, core.Point{X: 19, Y: 5}},
		{"top edge", core.Point{X: 4, Y: 0}, core.DirUp, core.Point{X: 4, Y: 14}},
		{"bottom edge", core.Point{X: 4, Y: 14}, core.DirDown, core.Point{X: 4, Y: 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := mustNew(t, classicConfig())
			place(s, tc.dir, 1, tc.from)
			s.apple = core.Point{X: 10, Y: 10}

			if out := s.Tick(); out != OutcomeMoved {
				t.Fatalf("outcome = %v, expected moved", out)
			}
			if got := s.Head(); got != tc.want {
				t.Errorf("head = %v, expected %v", got, tc.want)
			}
			if s.Status() != StatusRunning {
				t.Error("wraparound must never end the game")
			}
		})
	}
}

func TestWalledWallHitIsTerminal(t *testing.T) {
	s := mustNew(t, walledConfig())
	place(s, core.DirRight, 1, core.Point{X: 19, Y: 5})

	if out := s.Tick(); out != OutcomeWallHit {
		t.Fatalf("outcome = %v, expected wall_hit", out)
	}
	if s.Status() != StatusOver {
		t.Fatal("wall hit should end the game")
	}

	// OVER is terminal: nothing moves, input is refused
	if s.QueueDirection(core.DirUp) {
		t.Error("QueueDirection should refuse input after game over")
	}
	for i := 0; i < 3; i++ {
		if out := s.Tick(); out != OutcomeHalted {
			t.Errorf("tick after game over = %v, expected halted", out)
		}
	}
	if got := s.Head(); got != (core.Point{X: 19, Y: 5}) {
		t.Errorf("head moved after game over: %v", got)
	}
}

func TestWalledWithResetPolicy(t *testing.T) {
	cfg := walledConfig()
	cfg.OnCollision = CollisionReset
	s := mustNew(t, cfg)
	place(s, core.DirUp, 3, core.Point{X: 3, Y: 0}, core.Point{X: 3, Y: 1}, core.Point{X: 3, Y: 2})
	s.score = 30

	if out := s.Tick(); out != OutcomeReset {
		t.Fatalf("outcome = %v, expected reset", out)
	}
	assertStartState(t, s)
	if s.Resets() != 1 {
		t.Errorf("Resets() = %d, expected 1", s.Resets())
	}
}

func assertStartState(t *testing.T, s *State) {
	t.Helper()
	body := s.Body()
	if len(body) != 1 || body[0] != s.Start() {
		t.Errorf("body = %v, expected [%v]", body, s.Start())
	}
	if s.TargetLength() != 1 {
		t.Errorf("target = %d, expected 1", s.TargetLength())
	}
	if s.Direction() != core.DirRight {
		t.Errorf("direction = %v, expected right", s.Direction())
	}
	if s.Pending() != core.DirNone {
		t.Errorf("pending = %v, expected none", s.Pending())
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, expected 0", s.Score())
	}
	if s.Status() != StatusRunning {
		t.Error("reset must keep the game running")
	}
	if s.Occupied(s.Apple()) {
		t.Error("apple must not sit on the snake after a reset")
	}
}

func TestSelfCollisionIntoSecondSegment(t *testing.T) {
	tests := []struct {
		name   string
		policy CollisionPolicy
		want   Outcome
	}{
		{"reset policy", CollisionReset, OutcomeReset},
		{"game over policy", CollisionGameOver, OutcomeSelfHit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := walledConfig()
			cfg.OnCollision = tc.policy
			s := mustNew(t, cfg)
			place(s, core.DirRight, 3,
				core.Point{X: 5, Y: 5}, core.Point{X: 4, Y: 5}, core.Point{X: 3, Y: 5})

			// Force the reversal past the input guards
			s.snake.Dir = core.DirLeft

			if out := s.Move(); out != tc.want {
				t.Fatalf("Move() = %v, expected %v", out, tc.want)
			}
			switch tc.policy {
			case CollisionReset:
				assertStartState(t, s)
			case CollisionGameOver:
				if s.Status() != StatusOver {
					t.Error("self hit should end the game")
				}
			}
		})
	}
}

func TestMoveIntoVacatingTail(t *testing.T) {
	square := []core.Point{
		{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5},
	}

	t.Run("tail leaves", func(t *testing.T) {
		s := mustNew(t, walledConfig())
		place(s, core.DirRight, 4, square...)

		if out := s.Move(); out != OutcomeMoved {
			t.Fatalf("Move() = %v, expected moved", out)
		}
		if s.Head() != (core.Point{X: 6, Y: 5}) {
			t.Errorf("head = %v, expected (6, 5)", s.Head())
		}
		if len(s.Body()) != 4 {
			t.Errorf("length = %d, expected 4", len(s.Body()))
		}
	})

	t.Run("tail stays while growing", func(t *testing.T) {
		s := mustNew(t, walledConfig())
		place(s, core.DirRight, 5, square...)

		if out := s.Move(); out != OutcomeSelfHit {
			t.Fatalf("Move() = %v, expected self_hit", out)
		}
	})
}

func TestEating(t *testing.T) {
	s := mustNew(t, classicConfig())
	place(s, core.DirRight, 1, core.Point{X: 5, Y: 5})
	s.apple = core.Point{X: 6, Y: 5}

	if out := s.Tick(); out != OutcomeAte {
		t.Fatalf("outcome = %v, expected ate", out)
	}
	if s.TargetLength() != 2 {
		t.Errorf("target = %d, expected 2", s.TargetLength())
	}
	if s.Score() != DefaultReward {
		t.Errorf("score = %d, expected %d", s.Score(), DefaultReward)
	}
	if s.Apple() == (core.Point{X: 6, Y: 5}) {
		t.Error("apple should move after being eaten")
	}
	if s.Occupied(s.Apple()) {
		t.Errorf("apple relocated onto the snake at %v", s.Apple())
	}

	// Growth shows up on the next move: the tail is kept one extra tick
	if len(s.Body()) != 1 {
		t.Errorf("length right after eating = %d, expected 1", len(s.Body()))
	}
	s.apple = core.Point{X: 0, Y: 0}
	s.Tick()
	if len(s.Body()) != 2 {
		t.Errorf("length one tick after eating = %d, expected 2", len(s.Body()))
	}
	if _, ok := s.Vacated(); ok {
		t.Error("no cell should be vacated on a growing move")
	}
}

func TestVacatedCell(t *testing.T) {
	s := mustNew(t, classicConfig())
	place(s, core.DirDown, 2, core.Point{X: 5, Y: 5}, core.Point{X: 5, Y: 4})

	s.Tick()

	cell, ok := s.Vacated()
	if !ok || cell != (core.Point{X: 5, Y: 4}) {
		t.Errorf("Vacated() = %v, %v; expected (5, 4), true", cell, ok)
	}
}

func TestQueueDirectionPolicies(t *testing.T) {
	tests := []struct {
		name    string
		turns   TurnPolicy
		presses []core.Direction
		want    core.Direction
	}{
		{"first wins keeps first turn", TurnFirstWins, []core.Direction{core.DirUp, core.DirDown}, core.DirUp},
		{"last wins keeps last turn", TurnLastWins, []core.Direction{core.DirUp, core.DirDown}, core.DirDown},
		{"reversal ignored (first)", TurnFirstWins, []core.Direction{core.DirLeft}, core.DirRight},
		{"reversal ignored (last)", TurnLastWins, []core.Direction{core.DirUp, core.DirLeft}, core.DirUp},
		{"same heading does not block first", TurnFirstWins, []core.Direction{core.DirRight, core.DirDown}, core.DirDown},
		{"last wins can cancel a turn", TurnLastWins, []core.Direction{core.DirUp, core.DirRight}, core.DirRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := classicConfig()
			cfg.Turns = tc.turns
			s := mustNew(t, cfg)
			s.apple = core.Point{X: 0, Y: 0}

			for _, d := range tc.presses {
				s.QueueDirection(d)
			}
			s.Tick()

			if s.Direction() != tc.want {
				t.Errorf("direction = %v, expected %v", s.Direction(), tc.want)
			}
			if s.Pending() != core.DirNone {
				t.Error("pending slot should be cleared after a tick")
			}
		})
	}
}

func TestUpdateDirectionRejectsReverse(t *testing.T) {
	s := mustNew(t, classicConfig())
	s.snake.Next = core.DirLeft // bypass QueueDirection

	s.UpdateDirection()

	if s.Direction() != core.DirRight {
		t.Errorf("direction = %v, expected right", s.Direction())
	}
	if s.Pending() != core.DirNone {
		t.Error("pending slot should be cleared even when rejected")
	}
}

func TestBoardFull(t *testing.T) {
	cfg := classicConfig()
	cfg.Width, cfg.Height = 2, 2
	s := mustNew(t, cfg)
	place(s, core.DirUp, 5, core.Point{X: 0, Y: 1}, core.Point{X: 1, Y: 1}, core.Point{X: 1, Y: 0})
	s.apple = core.Point{X: 0, Y: 0}

	if out := s.Tick(); out != OutcomeBoardFull {
		t.Fatalf("outcome = %v, expected board_full", out)
	}
	if s.Status() != StatusOver {
		t.Error("a full board should end the game")
	}
	if !OutcomeBoardFull.Fatal() {
		t.Error("board_full should be fatal")
	}
}

// TestRandomPlayInvariants drives a board with random input and checks the
// length, reversal and apple invariants after every tick.
func TestRandomPlayInvariants(t *testing.T) {
	for _, cfg := range []Config{classicConfig(), walledConfig()} {
		t.Run(cfg.Edges.String(), func(t *testing.T) {
			rng := rand.New(rand.NewSource(7))
			dirs := []core.Direction{core.DirUp, core.DirDown, core.DirLeft, core.DirRight}

			for game := 0; game < 20; game++ {
				s, err := New(cfg, int64(game))
				if err != nil {
					t.Fatalf("New() failed: %v", err)
				}

				for tick := 0; tick < 500 && s.Status() == StatusRunning; tick++ {
					if rng.Intn(3) == 0 {
						s.QueueDirection(dirs[rng.Intn(len(dirs))])
					}
					before := s.Direction()

					out := s.Tick()

					if out != OutcomeReset && s.Direction() == before.Opposite() {
						t.Fatalf("direction reversed from %v to %v", before, s.Direction())
					}
					n := len(s.Body())
					if n > s.TargetLength() || n < s.TargetLength()-1 {
						t.Fatalf("length %d out of range for target %d", n, s.TargetLength())
					}
					if s.Status() == StatusRunning && s.Occupied(s.Apple()) {
						t.Fatalf("apple %v inside the snake", s.Apple())
					}
					if !s.Head().In(s.Width(), s.Height()) {
						t.Fatalf("head %v left the board", s.Head())
					}
				}
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	s1 := mustNew(t, classicConfig())
	s2 := mustNew(t, classicConfig())

	for i := 0; i < 200; i++ {
		if i%7 == 0 {
			d := []core.Direction{core.DirUp, core.DirLeft, core.DirDown, core.DirRight}[i%4]
			s1.QueueDirection(d)
			s2.QueueDirection(d)
		}
		o1, o2 := s1.Tick(), s2.Tick()
		if o1 != o2 {
			t.Fatalf("tick %d: outcome mismatch %v vs %v", i, o1, o2)
		}
		if s1.Head() != s2.Head() || s1.Apple() != s2.Apple() {
			t.Fatalf("tick %d: state diverged", i)
		}
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
		want error
	}{
		{"too narrow", func(c *Config) { c.Width = 1 }, ErrInvalidSize},
		{"too short", func(c *Config) { c.Height = 0 }, ErrInvalidSize},
		{"negative reward", func(c *Config) { c.Reward = -1 }, ErrInvalidReward},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := classicConfig()
			tc.mod(&cfg)
			if _, err := New(cfg, 1); !errors.Is(err, tc.want) {
				t.Errorf("New() error = %v, expected %v", err, tc.want)
			}
		})
	}
}

func TestParsePolicies(t *testing.T) {
	if p, err := ParseEdgePolicy("walled"); err != nil || p != EdgeWalled {
		t.Errorf("ParseEdgePolicy(walled) = %v, %v", p, err)
	}
	if p, err := ParseCollisionPolicy("game_over"); err != nil || p != CollisionGameOver {
		t.Errorf("ParseCollisionPolicy(game_over) = %v, %v", p, err)
	}
	if p, err := ParseTurnPolicy("last"); err != nil || p != TurnLastWins {
		t.Errorf("ParseTurnPolicy(last) = %v, %v", p, err)
	}

	if _, err := ParseEdgePolicy("bouncy"); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}
	if _, err := ParseCollisionPolicy(""); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}
	if _, err := ParseTurnPolicy("middle"); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}

	// String forms parse back
	for _, p := range []EdgePolicy{EdgeWrap, EdgeWalled} {
		if got, _ := ParseEdgePolicy(p.String()); got != p {
			t.Errorf("round trip of %v failed", p)
		}
	}
}
