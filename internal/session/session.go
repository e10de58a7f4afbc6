// Package session keeps the live games of the server in memory. Every grid
// is owned by one session, and every engine call on it happens under that
// session's lock.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mystal/mines/internal/minegrid"
)

var (
	ErrNotFound      = errors.New("game session not found")
	ErrForbidden     = errors.New("game session belongs to another player")
	ErrInvalidParams = errors.New("invalid game parameters")
)

type Params struct {
	Width, Height, MineCount int
}

type MoveKind uint8

const (
	Noop MoveKind = iota
	Open
	Flag
	Forfeit
)

type Move struct {
	Kind MoveKind
	X, Y int
}

type Session struct {
	mu        sync.Mutex
	id        int64
	owner     int64
	grid      *minegrid.Grid
	startedAt time.Time
	endedAt   time.Time
	touchedAt time.Time
	forfeited bool
}

// Snapshot is a consistent copy of a session taken under its lock.
type Snapshot struct {
	ID        int64
	Owner     int64
	Width     int
	Height    int
	MineCount int
	MinesLeft int
	State     minegrid.GridState
	Forfeited bool
	StartedAt time.Time
	EndedAt   *time.Time
	Cells     []minegrid.Cell
}

// Over reports whether the game accepts no more moves.
func (s Snapshot) Over() bool {
	return s.Forfeited || s.State.Terminal()
}

func (s *Session) over() bool {
	return s.forfeited || s.grid.State().Terminal()
}

// apply runs moves in order and stops at the first one that ends the game.
func (s *Session) apply(now time.Time, moves []Move) error {
	for _, move := range moves {
		if s.over() {
			break
		}
		switch move.Kind {
		case Noop:
		case Open:
			s.grid.Reveal(move.X, move.Y)
		case Flag:
			s.grid.ToggleFlag(move.X, move.Y)
		case Forfeit:
			s.forfeited = true
		default:
			return fmt.Errorf("unknown move kind %d", move.Kind)
		}
	}
	if s.over() && s.endedAt.IsZero() {
		s.endedAt = now
	}
	s.touchedAt = now
	return nil
}

func (s *Session) snapshot() *Snapshot {
	snap := &Snapshot{
		ID:        s.id,
		Owner:     s.owner,
		Width:     s.grid.Width(),
		Height:    s.grid.Height(),
		MineCount: s.grid.Mines(),
		MinesLeft: s.grid.MinesLeft(),
		State:     s.grid.State(),
		Forfeited: s.forfeited,
		StartedAt: s.startedAt,
		Cells:     make([]minegrid.Cell, 0, s.grid.Width()*s.grid.Height()),
	}
	if !s.endedAt.IsZero() {
		endedAt := s.endedAt
		snap.EndedAt = &endedAt
	}
	for c := range s.grid.All() {
		snap.Cells = append(snap.Cells, c)
	}
	return snap
}
