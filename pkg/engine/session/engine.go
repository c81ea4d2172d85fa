package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	da "github.com/teja123git/Maze-Generator/pkg/datastructure"
	"github.com/teja123git/Maze-Generator/pkg/engine/generation"
	"github.com/teja123git/Maze-Generator/pkg/engine/playback"
	"github.com/teja123git/Maze-Generator/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var (
	ErrSessionActive   = errors.New("a maze is already being generated")
	ErrNoActiveSession = errors.New("no active maze generation")
)

type State int32

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateComplete
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateComplete:
		return "complete"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

func (s State) active() bool {
	return s == StateRunning || s == StatePaused
}

type StartRequest struct {
	Algorithm string
	Width     int
	Height    int
	Seed      *uint64 // nil picks a random seed
}

// RunInfo identifies one accepted run. Seed replays the exact event sequence.
type RunInfo struct {
	ID        string
	Algorithm string
	Width     int
	Height    int
	Seed      uint64
}

// Observer receives the output of the drive loop, in order, from a single goroutine.
// an error from OnEvent or OnComplete is treated as a transport failure and cancels the run.
type Observer interface {
	OnEvent(info RunInfo, ev da.Event) error
	OnComplete(info RunInfo, summary Summary) error
	OnFailure(info RunInfo, err error)
}

type GeneratorLookup interface {
	Lookup(name string) (generation.Generator, error)
}

type Config struct {
	DefaultSpeed time.Duration
	MaxDimension int
	Clock        Clock
}

type run struct {
	info   RunInfo
	grid   *da.Grid
	stats  *StatsCollector
	cancel context.CancelFunc
	done   chan struct{}
}

// Engine owns the generation lifecycle of one observer (one websocket connection).
// inbound commands only touch the state mutex and the gate, the events are produced by a single drive goroutine.
type Engine struct {
	generators GeneratorLookup
	observer   Observer
	cfg        Config
	log        *zap.Logger
	gate       *playback.Gate

	mu    sync.Mutex
	state State
	run   *run
}

func NewEngine(generators GeneratorLookup, observer Observer, cfg Config, log *zap.Logger) *Engine {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Engine{
		generators: generators,
		observer:   observer,
		cfg:        cfg,
		log:        log,
		gate:       playback.NewGate(cfg.DefaultSpeed),
		state:      StateIdle,
	}
}

// Start validates the request and launches a new run. Rejected requests leave the current run untouched.
func (e *Engine) Start(req StartRequest) (RunInfo, error) {
	e.mu.Lock()
	if err := e.checkIdle(req); err != nil {
		e.mu.Unlock()
		return RunInfo{}, err
	}
	prev := e.run
	e.mu.Unlock()

	gen, err := e.generators.Lookup(req.Algorithm)
	if err != nil {
		return RunInfo{}, err
	}
	grid, err := da.NewGridWithLimit(req.Width, req.Height, e.cfg.MaxDimension)
	if err != nil {
		return RunInfo{}, err
	}

	// a finished or cancelled loop may still be delivering its last message
	if prev != nil {
		<-prev.done
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkIdle(req); err != nil {
		return RunInfo{}, err
	}

	seed := rand.Uint64()
	if req.Seed != nil {
		seed = *req.Seed
	}

	info := RunInfo{
		ID:        uuid.NewString(),
		Algorithm: gen.Name(),
		Width:     grid.Width(),
		Height:    grid.Height(),
		Seed:      seed,
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &run{
		info:   info,
		grid:   grid,
		stats:  NewStatsCollector(e.cfg.Clock),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	e.gate.Reset(e.cfg.DefaultSpeed)
	r.stats.Start(info.Algorithm, info.Width, info.Height)
	e.run = r
	e.state = StateRunning

	e.log.Debug("maze generation started", zap.String("run_id", info.ID),
		zap.String("algorithm", info.Algorithm), zap.Int("width", info.Width),
		zap.Int("height", info.Height), zap.Uint64("seed", seed))

	go e.drive(ctx, r, gen, generation.NewRand(seed))
	return info, nil
}

func (e *Engine) checkIdle(req StartRequest) error {
	if !e.state.active() {
		return nil
	}
	return util.WrapErrorf(ErrSessionActive, util.ErrBadParamInput,
		"cannot start %s while a %s run is %s", req.Algorithm, e.run.info.Algorithm, e.state)
}

// SetPaused. only valid while a run is running or paused.
func (e *Engine) SetPaused(paused bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.active() {
		return util.WrapErrorf(ErrNoActiveSession, util.ErrBadParamInput, "cannot pause or resume in state %s", e.state)
	}

	e.gate.SetPaused(paused)
	if paused {
		e.state = StatePaused
	} else {
		e.state = StateRunning
	}
	return nil
}

// SetSpeed. valid in any state but idle, applies to the next emitted event.
func (e *Engine) SetSpeed(delay time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateIdle {
		return util.WrapErrorf(ErrNoActiveSession, util.ErrBadParamInput, "cannot set speed before a maze was requested")
	}
	e.gate.SetSpeed(delay)
	return nil
}

// Close cancels the current run and waits for its drive loop to exit. Safe to call more than once.
func (e *Engine) Close() {
	e.mu.Lock()
	r := e.run
	if r == nil {
		e.mu.Unlock()
		return
	}
	if e.state.active() {
		e.state = StateCancelled
	}
	r.cancel()
	e.mu.Unlock()

	<-r.done
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) Speed() time.Duration {
	return e.gate.Speed()
}

// Current. info of the latest accepted run, false while idle.
func (e *Engine) Current() (RunInfo, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.run == nil {
		return RunInfo{}, false
	}
	return e.run.info, true
}

// Wait blocks until the drive loop of the current run has exited.
func (e *Engine) Wait() {
	e.mu.Lock()
	r := e.run
	e.mu.Unlock()
	if r != nil {
		<-r.done
	}
}

// Grid. maze state of the current run, only safe to read once Wait returned.
func (e *Engine) Grid() *da.Grid {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.run == nil {
		return nil
	}
	return e.run.grid
}

func (e *Engine) drive(ctx context.Context, r *run, gen generation.Generator, rng *rand.Rand) {
	defer close(r.done)
	defer r.cancel()

	for ev, err := range gen.Generate(r.grid, rng) {
		if err != nil {
			e.fail(r, err)
			return
		}

		if err := e.gate.AwaitTurn(ctx); err != nil {
			e.log.Debug("maze generation cancelled", zap.String("run_id", r.info.ID), zap.Error(err))
			e.cancelled(r)
			return
		}
		if ctx.Err() != nil {
			e.cancelled(r)
			return
		}

		if err := e.observer.OnEvent(r.info, ev); err != nil {
			e.fail(r, err)
			return
		}
		r.stats.Record(ev)
	}

	e.finish(r)
}

// transition. move r into a final state, false when r was already cancelled or superseded.
func (e *Engine) transition(r *run, to State) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.run != r || !e.state.active() {
		return false
	}
	e.state = to
	return true
}

func (e *Engine) cancelled(r *run) {
	e.transition(r, StateCancelled)
}

func (e *Engine) fail(r *run, err error) {
	if !e.transition(r, StateCancelled) {
		return
	}
	e.log.Error("maze generation failed", zap.String("run_id", r.info.ID),
		zap.String("algorithm", r.info.Algorithm), zap.Error(err))
	e.observer.OnFailure(r.info, err)
}

func (e *Engine) finish(r *run) {
	summary := r.stats.Finish()
	if !e.transition(r, StateComplete) {
		return
	}

	e.log.Debug("maze generation complete", zap.String("run_id", r.info.ID),
		zap.String("algorithm", r.info.Algorithm), zap.Int("events", summary.Events),
		zap.String("time", summary.ElapsedString()))

	if err := e.observer.OnComplete(r.info, summary); err != nil {
		e.log.Error("failed to deliver completion", zap.String("run_id", r.info.ID), zap.Error(err))
		e.observer.OnFailure(r.info, err)
	}
}
