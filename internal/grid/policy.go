package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned for boards smaller than 2x2.
	ErrInvalidSize = errors.New("grid: board must be at least 2x2")

	// ErrInvalidReward is returned for a negative apple reward.
	ErrInvalidReward = errors.New("grid: apple reward must not be negative")

	// ErrUnknownPolicy is returned when a policy name cannot be parsed.
	ErrUnknownPolicy = errors.New("grid: unknown policy")
)

// EdgePolicy decides what happens when the head leaves the board.
type EdgePolicy int

const (
	// EdgeWrap re-enters the board from the opposite edge.
	EdgeWrap EdgePolicy = iota
	// EdgeWalled treats leaving the board as a fatal collision.
	EdgeWalled
)

func (p EdgePolicy) String() string {
	switch p {
	case EdgeWrap:
		return "wrap"
	case EdgeWalled:
		return "walled"
	default:
		return "unknown"
	}
}

// ParseEdgePolicy converts "wrap" or "walled".
func ParseEdgePolicy(s string) (EdgePolicy, error) {
	switch s {
	case "wrap":
		return EdgeWrap, nil
	case "walled":
		return EdgeWalled, nil
	}
	return 0, fmt.Errorf("%w: edges %q", ErrUnknownPolicy, s)
}

// CollisionPolicy decides what a failed move does.
type CollisionPolicy int

const (
	// CollisionReset puts the snake back to its starting state.
	CollisionReset CollisionPolicy = iota
	// CollisionGameOver ends the game.
	CollisionGameOver
)

func (p CollisionPolicy) String() string {
	switch p {
	case CollisionReset:
		return "reset"
	case CollisionGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// ParseCollisionPolicy converts "reset" or "game_over".
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch s {
	case "reset":
		return CollisionReset, nil
	case "game_over":
		return CollisionGameOver, nil
	}
	return 0, fmt.Errorf("%w: on_collision %q", ErrUnknownPolicy, s)
}

// TurnPolicy decides which of several direction requests within one tick is kept.
type TurnPolicy int

const (
	// TurnFirstWins keeps the first valid request of the tick.
	TurnFirstWins TurnPolicy = iota
	// TurnLastWins keeps the most recent request of the tick.
	TurnLastWins
)

func (p TurnPolicy) String() string {
	switch p {
	case TurnFirstWins:
		return "first"
	case TurnLastWins:
		return "last"
	default:
		return "unknown"
	}
}

// ParseTurnPolicy converts "first" or "last".
func ParseTurnPolicy(s string) (TurnPolicy, error) {
	switch s {
	case "first":
		return TurnFirstWins, nil
	case "last":
		return TurnLastWins, nil
	}
	return 0, fmt.Errorf("%w: turns %q", ErrUnknownPolicy, s)
}

// Status is the game-level state machine: Running until a fatal outcome, then Over.
type Status int

const (
	StatusRunning Status = iota
	StatusOver
)

func (s Status) String() string {
	if s == StatusOver {
		return "over"
	}
	return "running"
}

// Outcome names the result of a single move or tick.
type Outcome int

const (
	// OutcomeMoved is a plain one-cell move.
	OutcomeMoved Outcome = iota
	// OutcomeAte is a move that ended on the apple.
	OutcomeAte
	// OutcomeReset is a collision handled by resetting the snake.
	OutcomeReset
	// OutcomeWallHit is a fatal wall collision.
	OutcomeWallHit
	// OutcomeSelfHit is a fatal bite into the snake's own body.
	OutcomeSelfHit
	// OutcomeBoardFull means the snake filled the board and no apple can be placed.
	OutcomeBoardFull
	// OutcomeHalted is returned by every tick after the game is over.
	OutcomeHalted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeAte:
		return "ate"
	case OutcomeReset:
		return "reset"
	case OutcomeWallHit:
		return "wall_hit"
	case OutcomeSelfHit:
		return "self_hit"
	case OutcomeBoardFull:
		return "board_full"
	case OutcomeHalted:
		return "halted"
	default:
		return "unknown"
	}
}

// Fatal reports whether the outcome ended the game.
func (o Outcome) Fatal() bool {
	return o == OutcomeWallHit || o == OutcomeSelfHit || o == OutcomeBoardFull
}
