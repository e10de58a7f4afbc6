package config

import (
	"fmt"
	"time"
)

const (
	defaultSessionTTL    = time.Hour
	defaultSweepInterval = time.Minute
	defaultMaxSide       = 100
)

type Sessions struct {
	TTL           time.Duration
	SweepInterval time.Duration
	MaxWidth      int
	MaxHeight     int
}

func NewSessions() (*Sessions, error) {
	ttl, err := lookupDuration("SESSION_TTL", defaultSessionTTL)
	if err != nil {
		return nil, err
	}
	sweep, err := lookupDuration("SESSION_SWEEP_INTERVAL", defaultSweepInterval)
	if err != nil {
		return nil, err
	}
	maxWidth, err := lookupInt("GRID_MAX_WIDTH", defaultMaxSide)
	if err != nil {
		return nil, err
	}
	maxHeight, err := lookupInt("GRID_MAX_HEIGHT", defaultMaxSide)
	if err != nil {
		return nil, err
	}
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("GRID_MAX_WIDTH and GRID_MAX_HEIGHT must be positive")
	}
	if ttl <= 0 || sweep <= 0 {
		return nil, fmt.Errorf("SESSION_TTL and SESSION_SWEEP_INTERVAL must be positive")
	}

	sessions := &Sessions{
		TTL:           ttl,
		SweepInterval: sweep,
		MaxWidth:      maxWidth,
		MaxHeight:     maxHeight,
	}

	return sessions, nil
}
