// Package grid implements the snake movement, growth and collision rules
// on a fixed-size board. A State is owned by a single game loop and is
// advanced one cell per Tick.
package grid

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// DefaultReward is the score added for every apple.
const DefaultReward = 10

// Config holds the board size and the rule set of a State.
type Config struct {
	Width       int
	Height      int
	Edges       EdgePolicy
	OnCollision CollisionPolicy
	Turns       TurnPolicy
	Reward      int
}

// Validate checks the board size and reward.
func (c Config) Validate() error {
	if c.Width < 2 || c.Height < 2 {
		return ErrInvalidSize
	}
	if c.Reward < 0 {
		return ErrInvalidReward
	}
	return nil
}

// Snake is the ordered body (head first) plus its growth target and heading.
type Snake struct {
	Body   []core.Point
	Target int
	Dir    core.Direction
	Next   core.Direction // Pending direction, DirNone when empty
}

// State is the complete board: snake, apple, score and status.
type State struct {
	cfg    Config
	rng    *rand.Rand
	snake  Snake
	apple  core.Point
	score  int
	status Status
	ticks  uint64
	resets int

	// vacated is the tail cell dropped by the last move, kept for renderers
	// that erase instead of redrawing.
	vacated    core.Point
	hasVacated bool
}

// New creates a running state with the snake centered and an apple placed.
func New(cfg Config, seed int64) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &State{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
	s.resetSnake()
	s.placeApple()
	return s, nil
}

// resetSnake restores the starting snake: length 1, centered, facing right.
func (s *State) resetSnake() {
	s.snake = Snake{
		Body:   []core.Point{s.Start()},
		Target: 1,
		Dir:    core.DirRight,
		Next:   core.DirNone,
	}
	s.score = 0
	s.hasVacated = false
}

// Start returns the starting cell, the center of the board.
func (s *State) Start() core.Point {
	return core.Point{X: s.cfg.Width / 2, Y: s.cfg.Height / 2}
}

// QueueDirection records a direction request for the next tick.
// Reversals of the current heading are ignored. Under TurnFirstWins the
// first stored request of the tick is kept; under TurnLastWins later
// requests overwrite it. Returns whether the request was stored.
func (s *State) QueueDirection(d core.Direction) bool {
	if d == core.DirNone || s.status == StatusOver {
		return false
	}
	if d == s.snake.Dir.Opposite() {
		return false
	}

	switch s.cfg.Turns {
	case TurnFirstWins:
		if s.snake.Next != core.DirNone || d == s.snake.Dir {
			return false
		}
	case TurnLastWins:
		// overwrite below
	}

	s.snake.Next = d
	return true
}

// UpdateDirection adopts the pending direction unless it reverses the
// current heading, then clears the pending slot.
func (s *State) UpdateDirection() {
	next := s.snake.Next
	s.snake.Next = core.DirNone
	if next == core.DirNone || next == s.snake.Dir.Opposite() {
		return
	}
	s.snake.Dir = next
}

// Move advances the snake one cell. It does not resolve eating; Tick does.
func (s *State) Move() Outcome {
	if s.status == StatusOver {
		return OutcomeHalted
	}
	s.hasVacated = false

	next := s.snake.Body[0].Add(s.snake.Dir)
	switch s.cfg.Edges {
	case EdgeWrap:
		next = next.Wrap(s.cfg.Width, s.cfg.Height)
	case EdgeWalled:
		if !next.In(s.cfg.Width, s.cfg.Height) {
			return s.collide(OutcomeWallHit)
		}
	}

	if s.bites(next) {
		return s.collide(OutcomeSelfHit)
	}

	body := make([]core.Point, 0, len(s.snake.Body)+1)
	body = append(body, next)
	body = append(body, s.snake.Body...)
	if len(body) > s.snake.Target {
		s.vacated = body[len(body)-1]
		s.hasVacated = true
		body = body[:len(body)-1]
	}
	s.snake.Body = body

	return OutcomeMoved
}

// bites reports whether p hits the body. The tail is skipped when it is
// about to be vacated by this move.
func (s *State) bites(p core.Point) bool {
	check := s.snake.Body
	if len(check) >= s.snake.Target {
		check = check[:len(check)-1]
	}
	for _, seg := range check {
		if seg == p {
			return true
		}
	}
	return false
}

// collide applies the configured collision policy.
func (s *State) collide(cause Outcome) Outcome {
	if s.cfg.OnCollision == CollisionReset {
		s.resets++
		s.resetSnake()
		if s.Occupied(s.apple) {
			s.placeApple()
		}
		return OutcomeReset
	}
	s.status = StatusOver
	return cause
}

// Tick runs one simulation step: direction update, move, eating.
// Once the game is over every Tick returns OutcomeHalted.
func (s *State) Tick() Outcome {
	if s.status == StatusOver {
		return OutcomeHalted
	}
	s.ticks++

	s.UpdateDirection()
	outcome := s.Move()
	if outcome != OutcomeMoved {
		return outcome
	}

	if s.snake.Body[0] == s.apple {
		return s.eat()
	}
	return OutcomeMoved
}

// eat grows the snake, scores the apple and relocates it.
func (s *State) eat() Outcome {
	s.snake.Target++
	s.score += s.cfg.Reward
	if !s.placeApple() {
		s.status = StatusOver
		return OutcomeBoardFull
	}
	return OutcomeAte
}

// placeApple moves the apple to a uniformly random free cell by rejection
// sampling. Returns false when the snake covers the whole board.
func (s *State) placeApple() bool {
	if len(s.snake.Body) >= s.cfg.Width*s.cfg.Height {
		return false
	}
	for {
		p := core.Point{
			X: s.rng.Intn(s.cfg.Width),
			Y: s.rng.Intn(s.cfg.Height),
		}
		if !s.Occupied(p) {
			s.apple = p
			return true
		}
	}
}

// Occupied reports whether a snake segment covers p.
func (s *State) Occupied(p core.Point) bool {
	for _, seg := range s.snake.Body {
		if seg == p {
			return true
		}
	}
	return false
}

// Body returns a copy of the snake segments, head first.
func (s *State) Body() []core.Point {
	out := make([]core.Point, len(s.snake.Body))
	copy(out, s.snake.Body)
	return out
}

// Head returns the head cell.
func (s *State) Head() core.Point {
	return s.snake.Body[0]
}

// Vacated returns the tail cell dropped by the most recent move, if any.
func (s *State) Vacated() (core.Point, bool) {
	return s.vacated, s.hasVacated
}

// Apple returns the apple cell.
func (s *State) Apple() core.Point { return s.apple }

// Score returns the accumulated score.
func (s *State) Score() int { return s.score }

// Status returns Running or Over.
func (s *State) Status() Status { return s.status }

// Direction returns the current heading.
func (s *State) Direction() core.Direction { return s.snake.Dir }

// Pending returns the queued direction, DirNone if none.
func (s *State) Pending() core.Direction { return s.snake.Next }

// TargetLength returns the length the snake is growing toward.
func (s *State) TargetLength() int { return s.snake.Target }

// Width returns the board width in cells.
func (s *State) Width() int { return s.cfg.Width }

// Height returns the board height in cells.
func (s *State) Height() int { return s.cfg.Height }

// Ticks returns the number of ticks run while the game was running.
func (s *State) Ticks() uint64 { return s.ticks }

// Resets returns how many times the reset policy restarted the snake.
func (s *State) Resets() int { return s.resets }

// Config returns the rule set.
func (s *State) Config() Config { return s.cfg }
