package snake

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ErrBadScript is returned for malformed input scripts.
var ErrBadScript = errors.New("snake: bad input script")

// Script is scripted input keyed by simulation tick (1-based).
// Written as "tick:action" pairs separated by commas, e.g. "12:up,30:left,30:down".
// Actions: up, down, left, right (or u/d/l/r), pause, restart.
type Script map[uint64][]core.Action

// ParseScript parses the textual script form. Several actions may share a tick;
// they are applied in the order written.
func ParseScript(s string) (Script, error) {
	script := make(Script)
	s = strings.TrimSpace(s)
	if s == "" {
		return script, nil
	}

	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		tickStr, name, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not tick:action", ErrBadScript, entry)
		}

		tick, err := strconv.ParseUint(strings.TrimSpace(tickStr), 10, 64)
		if err != nil || tick == 0 {
			return nil, fmt.Errorf("%w: bad tick in %q", ErrBadScript, entry)
		}

		action, err := parseAction(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadScript, err)
		}
		script[tick] = append(script[tick], action)
	}
	return script, nil
}

func parseAction(name string) (core.Action, error) {
	if d, ok := core.ParseDirection(name); ok {
		return core.ActionFor(d), nil
	}
	switch name {
	case "pause", "p":
		return core.ActionPause, nil
	case "restart":
		return core.ActionRestart, nil
	}
	return core.ActionNone, fmt.Errorf("unknown action %q", name)
}

// Frame builds the input frame for a tick.
func (s Script) Frame(tick uint64) core.InputFrame {
	frame := core.NewInputFrame()
	for _, a := range s[tick] {
		frame.Set(a)
	}
	return frame
}

// Last returns the highest tick mentioned in the script.
func (s Script) Last() uint64 {
	var last uint64
	for tick := range s {
		last = max(last, tick)
	}
	return last
}
