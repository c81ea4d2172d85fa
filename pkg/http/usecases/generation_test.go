package usecases

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teja123git/Maze-Generator/pkg"
	da "github.com/teja123git/Maze-Generator/pkg/datastructure"
	"github.com/teja123git/Maze-Generator/pkg/engine"
	"github.com/teja123git/Maze-Generator/pkg/engine/session"
	"github.com/teja123git/Maze-Generator/pkg/util"
	"go.uber.org/zap"
)

type countingObserver struct {
	mu       sync.Mutex
	events   int
	complete []session.Summary
}

func (o *countingObserver) OnEvent(info session.RunInfo, ev da.Event) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events++
	return nil
}

func (o *countingObserver) OnComplete(info session.RunInfo, summary session.Summary) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.complete = append(o.complete, summary)
	return nil
}

func (o *countingObserver) OnFailure(info session.RunInfo, err error) {}

func newTestService(t *testing.T) *GenerationService {
	t.Helper()
	return newPacedTestService(t, 0)
}

func newPacedTestService(t *testing.T, speed time.Duration) *GenerationService {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.DefaultSpeed = speed
	e, err := engine.NewEngine(cfg, zap.NewNop())
	require.NoError(t, err)
	gs := NewGenerationService(zap.NewNop(), e)
	t.Cleanup(gs.CloseAll)
	return gs
}

func TestStartAppliesDefaults(t *testing.T) {
	gs := newTestService(t)
	obs := &countingObserver{}
	gs.Open("conn-1", obs)

	info, err := gs.Start("conn-1", session.StartRequest{})
	require.NoError(t, err)
	assert.Equal(t, pkg.DEFAULT_ALGORITHM, info.Algorithm)
	assert.Equal(t, pkg.DEFAULT_WIDTH, info.Width)
	assert.Equal(t, pkg.DEFAULT_HEIGHT, info.Height)

	gs.Close("conn-1")
	assert.Equal(t, 0, gs.Connections())
}

func TestConnectionsAreIsolated(t *testing.T) {
	gs := newTestService(t)
	a, b := &countingObserver{}, &countingObserver{}
	gs.Open("a", a)
	gs.Open("b", b)
	assert.Equal(t, 2, gs.Connections())

	s := uint64(9)
	_, err := gs.Start("a", session.StartRequest{Algorithm: pkg.ALGORITHM_KRUSKALS, Width: 9, Height: 9, Seed: &s})
	require.NoError(t, err)

	// b has no run, so it cannot be paused
	err = gs.SetPaused("b", true)
	assert.True(t, errors.Is(err, session.ErrNoActiveSession))

	assert.Eventually(t, func() bool {
		a.mu.Lock()
		defer a.mu.Unlock()
		return len(a.complete) == 1
	}, 5*time.Second, time.Millisecond)

	a.mu.Lock()
	assert.Equal(t, 80, a.events)
	a.mu.Unlock()
	b.mu.Lock()
	assert.Equal(t, 0, b.events)
	b.mu.Unlock()
}

func TestUnknownConnection(t *testing.T) {
	gs := newTestService(t)

	_, err := gs.Start("missing", session.StartRequest{})
	assert.True(t, errors.Is(err, ErrUnknownConnection))
	assert.True(t, errors.Is(err, util.ErrNotFound))

	assert.True(t, errors.Is(gs.SetSpeed("missing", time.Millisecond), ErrUnknownConnection))
	gs.Close("missing")
}

func TestGenerateSynchronously(t *testing.T) {
	gs := newTestService(t)
	s := uint64(1)

	m, err := gs.Generate(pkg.ALGORITHM_PRIMS, 11, 11, &s)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), m.Seed)
	assert.Equal(t, 120, m.Grid.CarvedEdges())

	m, err = gs.Generate("", 0, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, pkg.DEFAULT_WIDTH, m.Grid.Width())
	assert.Equal(t, pkg.DEFAULT_ALGORITHM, m.Summary.Algorithm)
	assert.Equal(t, []string{"aldous_broder", "dfs", "ellers", "kruskals", "prims"}, gs.Algorithms())
}

func TestStartAfterConcurrentClose(t *testing.T) {
	gs := newPacedTestService(t, 20*time.Millisecond)
	obs := &countingObserver{}
	gs.Open("conn-1", obs)

	// the session was looked up, then the connection went away before the run started
	s, err := gs.session("conn-1")
	require.NoError(t, err)
	gs.Close("conn-1")

	_, err = gs.startOn("conn-1", s, session.StartRequest{Algorithm: pkg.ALGORITHM_DFS, Width: 41, Height: 23})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownConnection))
	assert.True(t, errors.Is(err, util.ErrNotFound))

	assert.Equal(t, session.StateCancelled, s.State())
	obs.mu.Lock()
	defer obs.mu.Unlock()
	assert.LessOrEqual(t, obs.events, 1)
	assert.Empty(t, obs.complete)
}
