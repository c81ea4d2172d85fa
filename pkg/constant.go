package pkg

// enum of maze event type
type EventType uint8

const (
	PATH_EVENT EventType = iota
	FRONTIER_EVENT
)

func (t EventType) String() string {
	switch t {
	case PATH_EVENT:
		return "path"
	case FRONTIER_EVENT:
		return "frontier"
	default:
		return "unknown"
	}
}

// generation algorithm ids, as sent by the client in generate_maze
const (
	ALGORITHM_DFS           = "dfs"
	ALGORITHM_PRIMS         = "prims"
	ALGORITHM_KRUSKALS      = "kruskals"
	ALGORITHM_ELLERS        = "ellers"
	ALGORITHM_ALDOUS_BRODER = "aldous_broder"
)

const (
	DEFAULT_WIDTH     = 41
	DEFAULT_HEIGHT    = 23
	DEFAULT_ALGORITHM = ALGORITHM_DFS
	MIN_DIMENSION     = 3
	MAX_DIMENSION     = 201

	DEFAULT_SPEED_MS = 1.0 // delay between two emitted events
	MAX_SPEED_MS     = 10000.0
)

const (
	DEBUG = false
)
