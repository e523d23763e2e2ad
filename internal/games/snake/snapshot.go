package snake

// Snapshot captures the game state for determinism testing and replay output.
type Snapshot struct {
	Tick     uint64 `json:"tick"`
	Move     uint64 `json:"move"`
	Variant  string `json:"variant"`
	Score    int    `json:"score"`
	Length   int    `json:"length"`
	Target   int    `json:"target"`
	HeadX    int    `json:"head_x"`
	HeadY    int    `json:"head_y"`
	Dir      string `json:"dir"`
	AppleX   int    `json:"apple_x"`
	AppleY   int    `json:"apple_y"`
	Outcome  string `json:"outcome"`
	Status   string `json:"status"`
	Resets   int    `json:"resets"`
	Paused   bool   `json:"paused,omitempty"`
	TooSmall bool   `json:"too_small,omitempty"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	head := g.board.Head()
	apple := g.board.Apple()

	return Snapshot{
		Tick:     g.tick,
		Move:     g.board.Ticks(),
		Variant:  g.variant.ID,
		Score:    g.board.Score(),
		Length:   len(g.board.Body()),
		Target:   g.board.TargetLength(),
		HeadX:    head.X,
		HeadY:    head.Y,
		Dir:      g.board.Direction().String(),
		AppleX:   apple.X,
		AppleY:   apple.Y,
		Outcome:  g.lastOutcome.String(),
		Status:   g.board.Status().String(),
		Resets:   g.board.Resets(),
		Paused:   g.paused,
		TooSmall: g.tooSmall,
	}
}
