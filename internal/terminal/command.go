package terminal

import (
	"errors"
	"fmt"
	"strings"

	"judgy/internal/core/attitude"
)

// ErrUnknownCommand is returned for a command name parseCommand does not know.
var ErrUnknownCommand = errors.New("unknown command")

type commandKind string

const (
	commandScore  commandKind = "score"
	commandNudge  commandKind = "nudge"
	commandReset  commandKind = "reset"
	commandRearm  commandKind = "rearm"
	commandPause  commandKind = "pause"
	commandResume commandKind = "resume"
	commandQuit   commandKind = "quit"
)

type command struct {
	kind  commandKind
	value int
}

// parseCommand reads a ":" command line. Numeric arguments follow the
// score engine's coercion, so ":score abc" sets the score to 0.
func parseCommand(input string) (command, error) {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(input), ":"))
	if len(fields) == 0 {
		return command{}, fmt.Errorf("parse command: %w", ErrUnknownCommand)
	}
	name := strings.ToLower(fields[0])
	var argument any
	if len(fields) > 1 {
		argument = fields[1]
	}

	switch name {
	case "score", "s":
		return command{kind: commandScore, value: attitude.Coerce(argument)}, nil
	case "nudge", "n":
		return command{kind: commandNudge, value: attitude.Coerce(argument)}, nil
	case "reset":
		return command{kind: commandReset}, nil
	case "rearm":
		return command{kind: commandRearm}, nil
	case "pause":
		return command{kind: commandPause}, nil
	case "resume":
		return command{kind: commandResume}, nil
	case "q", "quit":
		return command{kind: commandQuit}, nil
	default:
		return command{}, fmt.Errorf("parse command %q: %w", name, ErrUnknownCommand)
	}
}
