package main

import (
	"bufio"
	"bytes"
	"errors"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

func decodeLines(t *testing.T, out []byte) []snake.Snapshot {
	t.Helper()
	var snaps []snake.Snapshot
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		var s snake.Snapshot
		if err := json.Unmarshal(sc.Bytes(), &s); err != nil {
			t.Fatalf("bad JSON line %q: %v", sc.Text(), err)
		}
		snaps = append(snaps, s)
	}
	return snaps
}

func TestSimulateIsDeterministic(t *testing.T) {
	script, err := snake.ParseScript("10:down,40:left,80:up")
	if err != nil {
		t.Fatal(err)
	}

	var a, b bytes.Buffer
	if err := simulate(&a, snake.Classic.ID, 99, 300, script); err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if err := simulate(&b, snake.Classic.ID, 99, 300, script); err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	if a.String() != b.String() {
		t.Error("equal seeds and scripts should give identical output")
	}

	snaps := decodeLines(t, a.Bytes())
	every := snake.CurrentConfig().Timing.MoveEveryTicks
	if len(snaps) != 300/every {
		t.Errorf("got %d snapshots, expected one per move (%d)", len(snaps), 300/every)
	}
	if snaps[0].Variant != snake.Classic.ID || snaps[0].Move != 1 {
		t.Errorf("first snapshot = %+v", snaps[0])
	}
}

func TestSimulateStopsAfterGameOver(t *testing.T) {
	var out bytes.Buffer
	if err := simulate(&out, snake.Walled.ID, 3, 10000, snake.Script{}); err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	snaps := decodeLines(t, out.Bytes())
	last := snaps[len(snaps)-1]
	if last.Status != "over" || last.Outcome != "wall_hit" {
		t.Errorf("last snapshot = %+v, expected a wall hit", last)
	}
	if len(snaps) != 10 {
		t.Errorf("got %d moves, expected 10 before hitting the wall", len(snaps))
	}
}

func TestSimulateUnknownVariant(t *testing.T) {
	var out bytes.Buffer
	err := simulate(&out, "tetris", 1, 10, snake.Script{})
	if !errors.Is(err, registry.ErrUnknownGame) {
		t.Errorf("simulate() error = %v, expected ErrUnknownGame", err)
	}
}
