package handlers

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/mystal/mines/internal/minegrid"
	"github.com/mystal/mines/internal/session"
)

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type CreateNewGameDTO struct {
	Width     int `schema:"width,required"`
	Height    int `schema:"height,required"`
	MineCount int `schema:"mine_count,required"`
}

type CreatePresetGameDTO struct {
	Difficulty string `schema:"difficulty,required"`
}

// ParseGameParams accepts either a difficulty preset or an explicit
// width, height and mine_count.
func ParseGameParams(src url.Values) (session.Params, error) {
	if src.Has("difficulty") {
		var dto CreatePresetGameDTO
		if err := newDecoder().Decode(&dto, src); err != nil {
			return session.Params{}, err
		}
		d, err := minegrid.ParseDifficulty(dto.Difficulty)
		if err != nil {
			return session.Params{}, err
		}
		w, h, m := d.Params()
		return session.Params{Width: w, Height: h, MineCount: m}, nil
	}

	var dto CreateNewGameDTO
	if err := newDecoder().Decode(&dto, src); err != nil {
		return session.Params{}, err
	}
	return session.Params(dto), nil
}

type point struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePosition(src url.Values) (point, error) {
	var p point
	err := newDecoder().Decode(&p, src)
	return p, err
}

var ErrBadMove = fmt.Errorf("move must be one of 'open', 'flag'")

func ParseGameMove(s string) (session.MoveKind, error) {
	switch s {
	case "open":
		return session.Open, nil
	case "flag":
		return session.Flag, nil
	default:
		return 0, ErrBadMove
	}
}

// Player-visible cell values. The mine markers only appear once the game
// is over.
const (
	viewHidden      = " "
	viewFlagged     = "*"
	viewExploded    = "x"
	viewMine        = "m"
	viewFlaggedMine = "M"
	viewFalseFlag   = "!"
)

func cellView(c minegrid.Cell, over bool) string {
	switch s := c.State().(type) {
	case minegrid.Revealed:
		if c.IsMine() {
			return viewExploded
		}
		return strconv.Itoa(int(c.SurroundingMines()))
	case minegrid.Hidden:
		switch {
		case !over && s.Flags > 0:
			return viewFlagged
		case !over:
			return viewHidden
		case s.Flags > 0 && c.IsMine():
			return viewFlaggedMine
		case s.Flags > 0:
			return viewFalseFlag
		case c.IsMine():
			return viewMine
		default:
			return viewHidden
		}
	default:
		panic(fmt.Sprintf("handlers: unknown cell state %T", s))
	}
}

type GameSessionDTO struct {
	GameSessionId string   `json:"game_session_id"`
	Grid          []string `json:"grid"`
	Width         int      `json:"width"`
	Height        int      `json:"height"`
	MineCount     int      `json:"mine_count"`
	MinesLeft     int      `json:"mines_left"`
	State         string   `json:"state"`
	Forfeited     bool     `json:"forfeited"`
	StartedAt     int64    `json:"started_at"`
	EndedAt       *int64   `json:"ended_at,omitempty"`
}

func gameStateName(s minegrid.GridState) string {
	switch s {
	case minegrid.Play:
		return "play"
	case minegrid.Win:
		return "win"
	case minegrid.Lose:
		return "lose"
	default:
		panic(fmt.Sprintf("handlers: unknown grid state %d", s))
	}
}

func NewGameSessionDTO(s *session.Snapshot) *GameSessionDTO {
	var endedAt *int64
	if s.EndedAt != nil {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	over := s.Over()
	grid := make([]string, len(s.Cells))
	for i, c := range s.Cells {
		grid[i] = cellView(c, over)
	}
	dto := &GameSessionDTO{
		GameSessionId: strconv.FormatInt(s.ID, 10),
		Grid:          grid,
		Width:         s.Width,
		Height:        s.Height,
		MineCount:     s.MineCount,
		MinesLeft:     s.MinesLeft,
		State:         gameStateName(s.State),
		Forfeited:     s.Forfeited,
		StartedAt:     s.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
	}
	return dto
}
