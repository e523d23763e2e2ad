package console

import "github.com/vovakirdan/tui-snake/internal/core"

// decodeKeys turns raw terminal bytes into actions. Arrow keys arrive as
// ESC [ A..D; a lone ESC maps to ActionBack.
func decodeKeys(buf []byte) []core.Action {
	var actions []core.Action
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == 0x1b {
			if i+2 < len(buf) && buf[i+1] == '[' {
				if a := arrow(buf[i+2]); a != core.ActionNone {
					actions = append(actions, a)
				}
				i += 2
				continue
			}
			actions = append(actions, core.ActionBack)
			continue
		}

		if a := letter(b); a != core.ActionNone {
			actions = append(actions, a)
		}
	}
	return actions
}

func arrow(b byte) core.Action {
	switch b {
	case 'A':
		return core.ActionUp
	case 'B':
		return core.ActionDown
	case 'C':
		return core.ActionRight
	case 'D':
		return core.ActionLeft
	}
	return core.ActionNone
}

func letter(b byte) core.Action {
	switch b {
	case 'w', 'W', 'k':
		return core.ActionUp
	case 's', 'S', 'j':
		return core.ActionDown
	case 'a', 'A', 'h':
		return core.ActionLeft
	case 'd', 'D', 'l':
		return core.ActionRight
	case 'p', 'P':
		return core.ActionPause
	case 'r', 'R':
		return core.ActionRestart
	case 'q', 'Q', 0x03: // ctrl+c arrives as ETX in raw mode
		return core.ActionQuit
	}
	return core.ActionNone
}
