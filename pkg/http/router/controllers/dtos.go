package controllers

import (
	"encoding/json"
	"time"

	"github.com/teja123git/Maze-Generator/pkg"
	da "github.com/teja123git/Maze-Generator/pkg/datastructure"
	"github.com/teja123git/Maze-Generator/pkg/engine"
	"github.com/teja123git/Maze-Generator/pkg/engine/session"
)

// websocket event names
const (
	EventGenerateMaze       = "generate_maze"
	EventPauseResume        = "pause_resume"
	EventSetSpeed           = "set_speed"
	EventMazeUpdate         = "maze_update"
	EventGenerationComplete = "generation_complete"
	EventConnectError       = "connect_error"
	EventError              = "error"
)

// wire error codes
const (
	CodeInvalidRequest = "invalid_request"
	CodeNotFound       = "not_found"
	CodeInternal       = "internal"
)

type inboundMessage struct {
	Event string          `json:"event" validate:"required"`
	Data  json.RawMessage `json:"data"`
}

type outboundMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type generateMazeRequest struct {
	Algorithm string  `json:"algorithm"`
	Width     int     `json:"width" validate:"omitempty,min=3,odd"`
	Height    int     `json:"height" validate:"omitempty,min=3,odd"`
	Seed      *uint64 `json:"seed"`
}

func (r generateMazeRequest) toStartRequest() session.StartRequest {
	return session.StartRequest{
		Algorithm: r.Algorithm,
		Width:     r.Width,
		Height:    r.Height,
		Seed:      r.Seed,
	}
}

type pauseResumeRequest struct {
	IsPaused *bool `json:"isPaused" validate:"required"`
}

// setSpeedRequest. lte must stay in sync with pkg.MAX_SPEED_MS.
type setSpeedRequest struct {
	Speed *float64 `json:"speed" validate:"required,gte=0,lte=10000"`
}

// delay. speed is the delay between two events in milliseconds, saturated at pkg.MAX_SPEED_MS.
func (r setSpeedRequest) delay() time.Duration {
	ms := min(max(*r.Speed, 0), pkg.MAX_SPEED_MS)
	return time.Duration(ms * float64(time.Millisecond))
}

type mazeUpdateResponse struct {
	Cell [2]int  `json:"cell"`
	Type string  `json:"type"`
	From *[2]int `json:"from,omitempty"`
}

func NewMazeUpdateResponse(ev da.Event) mazeUpdateResponse {
	resp := mazeUpdateResponse{
		Cell: [2]int{ev.Cell.Row, ev.Cell.Col},
		Type: ev.Type.String(),
	}
	if ev.From != nil {
		resp.From = &[2]int{ev.From.Row, ev.From.Col}
	}
	return resp
}

type generationCompleteResponse struct {
	Algo   string `json:"algo"`
	Time   string `json:"time"`
	Events int    `json:"events"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Seed   uint64 `json:"seed"`
	RunID  string `json:"run_id"`
}

func NewGenerationCompleteResponse(info session.RunInfo, summary session.Summary) generationCompleteResponse {
	return generationCompleteResponse{
		Algo:   info.Algorithm,
		Time:   summary.ElapsedString(),
		Events: summary.Events,
		Width:  info.Width,
		Height: info.Height,
		Seed:   info.Seed,
		RunID:  info.ID,
	}
}

type connectErrorResponse struct {
	Message string `json:"message"`
}

type errorMessageResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type algorithmsResponse struct {
	Algorithms []string `json:"algorithms"`
}

type mazeRequest struct {
	Algorithm string  `json:"algorithm"`
	Width     int     `json:"width" validate:"omitempty,min=3,odd"`
	Height    int     `json:"height" validate:"omitempty,min=3,odd"`
	Seed      *uint64 `json:"seed"`
}

type cellWalls struct {
	North bool `json:"n"`
	East  bool `json:"e"`
	South bool `json:"s"`
	West  bool `json:"w"`
}

type mazeResponse struct {
	Algorithm      string        `json:"algorithm"`
	Width          int           `json:"width"`
	Height         int           `json:"height"`
	Seed           uint64        `json:"seed"`
	Start          [2]int        `json:"start"`
	End            [2]int        `json:"end"`
	Events         int           `json:"events"`
	PathEvents     int           `json:"path_events"`
	FrontierEvents int           `json:"frontier_events"`
	Walls          [][]cellWalls `json:"walls"`
	Ascii          string        `json:"ascii,omitempty"`
}

func NewMazeResponse(m *engine.Maze, withAscii bool) mazeResponse {
	g := m.Grid
	walls := make([][]cellWalls, g.Height())
	for r := 0; r < g.Height(); r++ {
		walls[r] = make([]cellWalls, g.Width())
		for c := 0; c < g.Width(); c++ {
			w := g.Walls(da.NewCell(r, c))
			walls[r][c] = cellWalls{North: w.North, East: w.East, South: w.South, West: w.West}
		}
	}

	resp := mazeResponse{
		Algorithm:      m.Summary.Algorithm,
		Width:          g.Width(),
		Height:         g.Height(),
		Seed:           m.Seed,
		Start:          [2]int{g.Start().Row, g.Start().Col},
		End:            [2]int{g.End().Row, g.End().Col},
		Events:         m.Summary.Events,
		PathEvents:     m.Summary.PathEvents,
		FrontierEvents: m.Summary.FrontierEvents,
		Walls:          walls,
	}
	if withAscii {
		resp.Ascii = g.String()
	}
	return resp
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
