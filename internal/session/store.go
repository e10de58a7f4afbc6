package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mystal/mines/internal/config"
	"github.com/mystal/mines/internal/minegrid"
)

type Store struct {
	mu        sync.RWMutex
	sessions  map[int64]*Session
	nextID    int64
	ttl       time.Duration
	maxWidth  int
	maxHeight int
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewStore(log logrus.FieldLogger, cfg *config.Sessions) *Store {
	return &Store{
		sessions:  make(map[int64]*Session),
		ttl:       cfg.TTL,
		maxWidth:  cfg.MaxWidth,
		maxHeight: cfg.MaxHeight,
		log:       log.WithField("component", "sessions"),
		now:       time.Now,
	}
}

func (st *Store) validate(p Params) error {
	if p.Width < 1 || p.Height < 1 {
		return fmt.Errorf("%w: grid must be at least 1x1", ErrInvalidParams)
	}
	if p.Width > st.maxWidth || p.Height > st.maxHeight {
		return fmt.Errorf(
			"%w: grid must be at most %dx%d",
			ErrInvalidParams, st.maxWidth, st.maxHeight,
		)
	}
	return nil
}

func (st *Store) Create(owner int64, p Params) (*Snapshot, error) {
	if err := st.validate(p); err != nil {
		return nil, err
	}
	grid, err := minegrid.New(p.Width, p.Height, p.MineCount)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	now := st.now().UTC()
	s := &Session{
		owner:     owner,
		grid:      grid,
		startedAt: now,
		touchedAt: now,
	}

	st.mu.Lock()
	st.nextID++
	s.id = st.nextID
	st.sessions[s.id] = s
	st.mu.Unlock()

	st.log.WithFields(logrus.Fields{
		"session": s.id,
		"owner":   owner,
		"width":   p.Width,
		"height":  p.Height,
		"mines":   p.MineCount,
	}).Debug("created game session")

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

func (st *Store) lookup(id int64) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return s, nil
}

func (st *Store) Get(id int64) (*Snapshot, error) {
	s, err := st.lookup(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

// Authorize checks that the session exists and belongs to owner.
func (st *Store) Authorize(id, owner int64) error {
	s, err := st.lookup(id)
	if err != nil {
		return err
	}
	if s.owner != owner {
		return fmt.Errorf("%w: %d", ErrForbidden, id)
	}
	return nil
}

// Play applies moves on behalf of owner. Moves arriving after the game has
// ended are ignored.
func (st *Store) Play(id, owner int64, moves ...Move) (*Snapshot, error) {
	s, err := st.lookup(id)
	if err != nil {
		return nil, err
	}
	if s.owner != owner {
		return nil, fmt.Errorf("%w: %d", ErrForbidden, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wasOver := s.over()
	if err := s.apply(st.now().UTC(), moves); err != nil {
		return nil, err
	}
	if !wasOver && s.over() {
		st.log.WithFields(logrus.Fields{
			"session":   s.id,
			"state":     s.grid.State().String(),
			"forfeited": s.forfeited,
			"duration":  s.endedAt.Sub(s.startedAt).String(),
		}).Info("game over")
	}
	return s.snapshot(), nil
}

func (st *Store) Reveal(id, owner int64, x, y int) (*Snapshot, error) {
	return st.Play(id, owner, Move{Kind: Open, X: x, Y: y})
}

func (st *Store) ToggleFlag(id, owner int64, x, y int) (*Snapshot, error) {
	return st.Play(id, owner, Move{Kind: Flag, X: x, Y: y})
}

func (st *Store) Forfeit(id, owner int64) (*Snapshot, error) {
	return st.Play(id, owner, Move{Kind: Forfeit})
}

func (st *Store) Remove(id int64) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions nobody has touched for longer than the TTL and
// returns how many were dropped.
func (st *Store) Sweep(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		s.mu.Lock()
		idle := now.Sub(s.touchedAt)
		s.mu.Unlock()
		if idle > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		st.log.WithFields(logrus.Fields{
			"removed": removed,
			"live":    len(st.sessions),
		}).Debug("swept idle game sessions")
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			st.Sweep(st.now())
		}
	}
}
