package minegrid

import (
	"fmt"
	"strings"
)

type Difficulty uint8

const (
	Easy Difficulty = iota + 1
	Medium
	Hard
)

var difficulties = map[string]Difficulty{
	"easy":   Easy,
	"medium": Medium,
	"hard":   Hard,
}

func ParseDifficulty(s string) (Difficulty, error) {
	d, ok := difficulties[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("difficulty must be one of 'easy', 'medium', 'hard', got %q", s)
	}
	return d, nil
}

// Params returns the width, height and mine count of the preset.
func (d Difficulty) Params() (width, height, mines int) {
	switch d {
	case Easy:
		return 9, 9, 10
	case Medium:
		return 16, 16, 40
	case Hard:
		return 40, 16, 99
	default:
		panic(fmt.Sprintf("minegrid: unknown difficulty %d", d))
	}
}

func (d Difficulty) String() string {
	for name, v := range difficulties {
		if v == d {
			return name
		}
	}
	return fmt.Sprintf("Difficulty(%d)", d)
}
