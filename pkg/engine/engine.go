package engine

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/teja123git/Maze-Generator/pkg"
	"github.com/teja123git/Maze-Generator/pkg/datastructure"
	"github.com/teja123git/Maze-Generator/pkg/engine/generation"
	"github.com/teja123git/Maze-Generator/pkg/engine/session"
	"go.uber.org/zap"
)

type Config struct {
	DefaultWidth     int
	DefaultHeight    int
	DefaultAlgorithm string
	DefaultSpeed     time.Duration
	MaxDimension     int
	MazeCacheSize    int
}

func DefaultConfig() Config {
	return Config{
		DefaultWidth:     pkg.DEFAULT_WIDTH,
		DefaultHeight:    pkg.DEFAULT_HEIGHT,
		DefaultAlgorithm: pkg.DEFAULT_ALGORITHM,
		DefaultSpeed:     time.Duration(pkg.DEFAULT_SPEED_MS * float64(time.Millisecond)),
		MaxDimension:     pkg.MAX_DIMENSION,
		MazeCacheSize:    256,
	}
}

// Maze. a completely generated maze, produced without playback pacing.
// Events is only filled by Trace, cached mazes keep the grid and the counts.
type Maze struct {
	Seed    uint64
	Grid    *datastructure.Grid
	Events  []datastructure.Event
	Summary session.Summary
}

type mazeKey struct {
	algorithm     string
	width, height int
	seed          uint64
}

// Engine holds what every connection shares: the generator registry, the defaults and the limits.
// it is immutable after NewEngine except for the internal maze cache.
type Engine struct {
	registry *generation.Registry
	cfg      Config
	log      *zap.Logger
	mazes    *lru.Cache[mazeKey, *Maze]
}

func NewEngine(cfg Config, logger *zap.Logger) (*Engine, error) {
	if cfg.MaxDimension <= 0 {
		cfg.MaxDimension = pkg.MAX_DIMENSION
	}
	if cfg.MazeCacheSize <= 0 {
		cfg.MazeCacheSize = 256
	}
	if cfg.DefaultSpeed < 0 {
		cfg.DefaultSpeed = 0
	}

	registry := generation.NewRegistry()
	if _, err := registry.Lookup(cfg.DefaultAlgorithm); err != nil {
		return nil, err
	}
	if err := datastructure.ValidateDimension(cfg.DefaultWidth, cfg.DefaultHeight, cfg.MaxDimension); err != nil {
		return nil, err
	}

	mazes, err := lru.New[mazeKey, *Maze](cfg.MazeCacheSize)
	if err != nil {
		return nil, err
	}

	logger.Info("maze generation engine ready", zap.Strings("algorithms", registry.Names()),
		zap.Int("max_dimension", cfg.MaxDimension), zap.Duration("default_speed", cfg.DefaultSpeed))

	return &Engine{
		registry: registry,
		cfg:      cfg,
		log:      logger,
		mazes:    mazes,
	}, nil
}

func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) Algorithms() []string {
	return e.registry.Names()
}

// NewSession. one session engine per observer, paced with the configured default speed.
func (e *Engine) NewSession(observer session.Observer) *session.Engine {
	return session.NewEngine(e.registry, observer, session.Config{
		DefaultSpeed: e.cfg.DefaultSpeed,
		MaxDimension: e.cfg.MaxDimension,
	}, e.log)
}

// Generate runs an algorithm to completion. results are cached per (algorithm, size, seed)
// and must be treated as read-only by callers.
func (e *Engine) Generate(algorithm string, width, height int, seed uint64) (*Maze, error) {
	key := mazeKey{algorithm: algorithm, width: width, height: height, seed: seed}
	if m, ok := e.mazes.Get(key); ok {
		return m, nil
	}

	m, err := e.build(algorithm, width, height, seed, false)
	if err != nil {
		return nil, err
	}
	e.mazes.Add(key, m)
	return m, nil
}

// Trace generates without the cache and keeps the ordered event stream in Maze.Events.
func (e *Engine) Trace(algorithm string, width, height int, seed uint64) (*Maze, error) {
	return e.build(algorithm, width, height, seed, true)
}

// Measure generates without touching the cache, so the summary reflects a fresh run.
func (e *Engine) Measure(algorithm string, width, height int, seed uint64) (session.Summary, error) {
	m, err := e.build(algorithm, width, height, seed, false)
	if err != nil {
		return session.Summary{}, err
	}
	return m.Summary, nil
}

func (e *Engine) build(algorithm string, width, height int, seed uint64, keepEvents bool) (*Maze, error) {
	gen, err := e.registry.Lookup(algorithm)
	if err != nil {
		return nil, err
	}
	grid, err := datastructure.NewGridWithLimit(width, height, e.cfg.MaxDimension)
	if err != nil {
		return nil, err
	}

	var events []datastructure.Event
	stats := session.NewStatsCollector(time.Now)
	stats.Start(algorithm, width, height)
	for ev, err := range gen.Generate(grid, generation.NewRand(seed)) {
		if err != nil {
			return nil, err
		}
		stats.Record(ev)
		if keepEvents {
			events = append(events, ev)
		}
	}

	return &Maze{
		Seed:    seed,
		Grid:    grid,
		Events:  events,
		Summary: stats.Finish(),
	}, nil
}
