package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mystal/mines/internal/session"
)

type wsCommand string

const (
	wsNoop    wsCommand = "g"
	wsOpen    wsCommand = "o"
	wsFlag    wsCommand = "f"
	wsForfeit wsCommand = "r"
)

// number of arguments per command
var commandNargs = map[wsCommand]int{
	wsNoop:    0,
	wsOpen:    2,
	wsFlag:    2,
	wsForfeit: 0,
}

func parseXY(args []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(args[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(args[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

func parseCommand(line string) (session.Move, error) {
	tokens := strings.Fields(line)
	cmd, args := wsCommand(tokens[0]), tokens[1:]
	nargs, ok := commandNargs[cmd]
	if !ok {
		return session.Move{}, fmt.Errorf("unknown command %q", cmd)
	}
	if nargs != len(args) {
		return session.Move{}, fmt.Errorf(
			"command %q takes %d arguments, got %d", cmd, nargs, len(args),
		)
	}
	switch cmd {
	case wsOpen, wsFlag:
		x, y, err := parseXY(args)
		if err != nil {
			return session.Move{}, err
		}
		kind := session.Open
		if cmd == wsFlag {
			kind = session.Flag
		}
		return session.Move{Kind: kind, X: x, Y: y}, nil
	case wsForfeit:
		return session.Move{Kind: session.Forfeit}, nil
	default:
		return session.Move{Kind: session.Noop}, nil
	}
}

// parseCommands reads one command per line; blank lines are skipped.
func parseCommands(message string) ([]session.Move, error) {
	var moves []session.Move
	for i, line := range strings.Split(message, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		move, err := parseCommand(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		moves = append(moves, move)
	}
	return moves, nil
}
