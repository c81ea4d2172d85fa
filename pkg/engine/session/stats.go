package session

import (
	"fmt"
	"time"

	"github.com/teja123git/Maze-Generator/pkg"
	da "github.com/teja123git/Maze-Generator/pkg/datastructure"
)

// Summary of one completed run.
type Summary struct {
	Algorithm      string        `json:"algorithm" yaml:"algorithm"`
	Width          int           `json:"width" yaml:"width"`
	Height         int           `json:"height" yaml:"height"`
	Elapsed        time.Duration `json:"elapsed" yaml:"elapsed"`
	Events         int           `json:"events" yaml:"events"`
	PathEvents     int           `json:"path_events" yaml:"path_events"`
	FrontierEvents int           `json:"frontier_events" yaml:"frontier_events"`
}

// ElapsedString. wall time in milliseconds with two decimals, e.g. "12.34 ms".
func (s Summary) ElapsedString() string {
	return FormatElapsed(s.Elapsed)
}

func FormatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.2f ms", float64(d)/float64(time.Millisecond))
}

type Clock func() time.Time

// StatsCollector. wall time and event counts of a single run, not safe for concurrent use:
// only the drive loop records into it.
type StatsCollector struct {
	now       Clock
	algorithm string
	width     int
	height    int
	start     time.Time
	end       time.Time
	events    int
	path      int
	frontier  int
}

func NewStatsCollector(now Clock) *StatsCollector {
	if now == nil {
		now = time.Now
	}
	return &StatsCollector{now: now}
}

func (s *StatsCollector) Start(algorithm string, width, height int) {
	s.algorithm = algorithm
	s.width, s.height = width, height
	s.start = s.now()
	s.end = time.Time{}
	s.events, s.path, s.frontier = 0, 0, 0
}

func (s *StatsCollector) Record(ev da.Event) {
	s.events++
	switch ev.Type {
	case pkg.PATH_EVENT:
		s.path++
	case pkg.FRONTIER_EVENT:
		s.frontier++
	}
}

// Elapsed. time since Start, frozen once Finish was called.
func (s *StatsCollector) Elapsed() time.Duration {
	if s.end.IsZero() {
		return s.now().Sub(s.start)
	}
	return s.end.Sub(s.start)
}

func (s *StatsCollector) Finish() Summary {
	s.end = s.now()
	return s.Summary()
}

func (s *StatsCollector) Summary() Summary {
	return Summary{
		Algorithm:      s.algorithm,
		Width:          s.width,
		Height:         s.height,
		Elapsed:        s.Elapsed(),
		Events:         s.events,
		PathEvents:     s.path,
		FrontierEvents: s.frontier,
	}
}
