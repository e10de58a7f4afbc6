package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mystal/mines/internal/session"
)

func TestParseCommands(t *testing.T) {
	moves, err := parseCommands("g\no 1 2\n\nf 3 4\nr\n")
	require.NoError(t, err)
	assert.Equal(t, []session.Move{
		{Kind: session.Noop},
		{Kind: session.Open, X: 1, Y: 2},
		{Kind: session.Flag, X: 3, Y: 4},
		{Kind: session.Forfeit},
	}, moves)
}

func TestParseCommandsErrors(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"unknown", "z", `line 1: unknown command "z"`},
		{"too few", "o 1", `line 1: command "o" takes 2 arguments, got 1`},
		{"too many", "g\nr 1", `line 2: command "r" takes 0 arguments, got 1`},
		{"bad x", "f a 1", "line 1: first argument must be an int"},
		{"bad y", "o 1 b", "line 1: second argument must be an int"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseCommands(tc.message)
			require.EqualError(t, err, tc.want)
		})
	}
}
