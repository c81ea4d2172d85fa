package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teja123git/Maze-Generator/pkg"
	da "github.com/teja123git/Maze-Generator/pkg/datastructure"
	"github.com/teja123git/Maze-Generator/pkg/engine/generation"
	"github.com/teja123git/Maze-Generator/pkg/util"
	"go.uber.org/zap"
)

var errBrokenPipe = errors.New("broken pipe")

type recorder struct {
	mu        sync.Mutex
	events    []da.Event
	summaries []Summary
	failures  []error
	infos     []RunInfo

	// hook runs on the drive goroutine after the n-th event (1 based) was recorded
	hook func(n int) error
}

func (r *recorder) OnEvent(info RunInfo, ev da.Event) error {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.infos = append(r.infos, info)
	n := len(r.events)
	hook := r.hook
	r.mu.Unlock()

	if hook != nil {
		return hook(n)
	}
	return nil
}

func (r *recorder) OnComplete(info RunInfo, summary Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, summary)
	return nil
}

func (r *recorder) OnFailure(info RunInfo, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, err)
}

func (r *recorder) Events() []da.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]da.Event(nil), r.events...)
}

func (r *recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.summaries = nil
	r.failures = nil
	r.infos = nil
}

func newTestEngine(t *testing.T, obs Observer, speed time.Duration) *Engine {
	t.Helper()
	e := NewEngine(generation.NewRegistry(), obs, Config{
		DefaultSpeed: speed,
		MaxDimension: pkg.MAX_DIMENSION,
	}, zap.NewNop())
	t.Cleanup(e.Close)
	return e
}

func seed(v uint64) *uint64 {
	return &v
}

func reference(t *testing.T, algorithm string, width, height int, s uint64) []da.Event {
	t.Helper()
	gen, err := generation.NewRegistry().Lookup(algorithm)
	require.NoError(t, err)
	grid, err := da.NewGrid(width, height)
	require.NoError(t, err)
	events, err := generation.Collect(gen, grid, generation.NewRand(s))
	require.NoError(t, err)
	return events
}

func TestStartRejectsInvalidRequest(t *testing.T) {
	testCases := []struct {
		name    string
		req     StartRequest
		wantErr error
	}{
		{name: "even width", req: StartRequest{Algorithm: "dfs", Width: 40, Height: 23}, wantErr: da.ErrInvalidDimension},
		{name: "too small", req: StartRequest{Algorithm: "dfs", Width: 1, Height: 23}, wantErr: da.ErrInvalidDimension},
		{name: "too large", req: StartRequest{Algorithm: "dfs", Width: 203, Height: 23}, wantErr: da.ErrInvalidDimension},
		{name: "unknown algorithm", req: StartRequest{Algorithm: "wilsons", Width: 41, Height: 23}, wantErr: generation.ErrUnknownAlgorithm},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			e := newTestEngine(t, rec, 0)

			_, err := e.Start(tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.True(t, errors.Is(err, util.ErrBadParamInput))
			assert.Equal(t, StateIdle, e.State())
			assert.Empty(t, rec.Events())
		})
	}
}

func TestKruskalsEndToEnd(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(t, rec, 0)

	info, err := e.Start(StartRequest{Algorithm: pkg.ALGORITHM_KRUSKALS, Width: 9, Height: 9, Seed: seed(11)})
	require.NoError(t, err)
	assert.NotEmpty(t, info.ID)
	assert.Equal(t, uint64(11), info.Seed)

	e.Wait()
	assert.Equal(t, StateComplete, e.State())

	events := rec.Events()
	require.Len(t, events, 80)
	for _, ev := range events {
		assert.Equal(t, pkg.PATH_EVENT, ev.Type)
	}

	require.Len(t, rec.summaries, 1)
	assert.Equal(t, "kruskals", rec.summaries[0].Algorithm)
	assert.Equal(t, 80, rec.summaries[0].Events)
	assert.Equal(t, 80, rec.summaries[0].PathEvents)
	assert.Empty(t, rec.failures)
	assert.Equal(t, 80, e.Grid().CarvedEdges())
}

func TestStartWhileRunningIsRejected(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(t, rec, 5*time.Millisecond)

	first, err := e.Start(StartRequest{Algorithm: pkg.ALGORITHM_DFS, Width: 41, Height: 23, Seed: seed(1)})
	require.NoError(t, err)

	_, err = e.Start(StartRequest{Algorithm: pkg.ALGORITHM_PRIMS, Width: 9, Height: 9})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSessionActive))
	assert.True(t, errors.Is(err, util.ErrBadParamInput))

	current, ok := e.Current()
	require.True(t, ok)
	assert.Equal(t, first, current)
	assert.Equal(t, StateRunning, e.State())

	e.Close()
	assert.Equal(t, StateCancelled, e.State())
	assert.Less(t, len(rec.Events()), 41*23)
	assert.Empty(t, rec.summaries)
	assert.Empty(t, rec.failures)

	for _, info := range rec.infos {
		assert.Equal(t, first.ID, info.ID)
	}
}

func TestPauseResumeKeepsSequence(t *testing.T) {
	const (
		width, height = 21, 15
		s             = uint64(2024)
	)

	for _, algorithm := range generation.NewRegistry().Names() {
		t.Run(algorithm, func(t *testing.T) {
			want := reference(t, algorithm, width, height, s)

			rec := &recorder{}
			e := newTestEngine(t, rec, 0)

			pauseAt := map[int]bool{1: true, 10: true, 57: true}
			resumed := make(chan struct{}, len(pauseAt))
			rec.hook = func(n int) error {
				if !pauseAt[n] {
					return nil
				}
				assert.NoError(t, e.SetPaused(true))
				go func() {
					time.Sleep(10 * time.Millisecond)
					// nothing is emitted while paused
					assert.Equal(t, n, len(rec.Events()))
					assert.Equal(t, StatePaused, e.State())
					assert.NoError(t, e.SetPaused(false))
					resumed <- struct{}{}
				}()
				return nil
			}

			_, err := e.Start(StartRequest{Algorithm: algorithm, Width: width, Height: height, Seed: seed(s)})
			require.NoError(t, err)
			e.Wait()

			assert.Equal(t, StateComplete, e.State())
			assert.Equal(t, want, rec.Events())
			assert.Eventually(t, func() bool { return len(resumed) == len(pauseAt) }, time.Second, time.Millisecond)
		})
	}
}

func TestSpeedChangeKeepsSequence(t *testing.T) {
	want := reference(t, pkg.ALGORITHM_PRIMS, 11, 11, 77)

	rec := &recorder{}
	e := newTestEngine(t, rec, time.Millisecond)
	rec.hook = func(n int) error {
		switch n {
		case 5:
			assert.NoError(t, e.SetSpeed(0))
		case 20:
			assert.NoError(t, e.SetSpeed(2*time.Millisecond))
		case 25:
			assert.NoError(t, e.SetSpeed(-1))
		}
		return nil
	}

	_, err := e.Start(StartRequest{Algorithm: pkg.ALGORITHM_PRIMS, Width: 11, Height: 11, Seed: seed(77)})
	require.NoError(t, err)
	e.Wait()

	assert.Equal(t, want, rec.Events())
	assert.Equal(t, time.Duration(0), e.Speed())
}

func TestRestartAfterCompletionIsFresh(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(t, rec, 0)

	first, err := e.Start(StartRequest{Algorithm: pkg.ALGORITHM_ELLERS, Width: 9, Height: 9, Seed: seed(3)})
	require.NoError(t, err)
	e.Wait()
	firstEvents := rec.Events()
	firstGrid := e.Grid()
	rec.Reset()

	// speed changes after completion must not leak into the next run
	require.NoError(t, e.SetSpeed(50*time.Millisecond))

	second, err := e.Start(StartRequest{Algorithm: pkg.ALGORITHM_ELLERS, Width: 9, Height: 9, Seed: seed(3)})
	require.NoError(t, err)
	e.Wait()

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, firstEvents, rec.Events())
	assert.NotSame(t, firstGrid, e.Grid())
	assert.Equal(t, 80, e.Grid().CarvedEdges())
	assert.Equal(t, time.Duration(0), e.Speed())
	require.Len(t, rec.summaries, 1)
}

func TestRestartAfterCancel(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(t, rec, 0)
	rec.hook = func(n int) error {
		if n == 3 {
			return errBrokenPipe
		}
		return nil
	}

	_, err := e.Start(StartRequest{Algorithm: pkg.ALGORITHM_DFS, Width: 9, Height: 9, Seed: seed(1)})
	require.NoError(t, err)
	e.Wait()
	assert.Equal(t, StateCancelled, e.State())

	rec.Reset()
	rec.mu.Lock()
	rec.hook = nil
	rec.mu.Unlock()

	_, err = e.Start(StartRequest{Algorithm: pkg.ALGORITHM_DFS, Width: 9, Height: 9, Seed: seed(1)})
	require.NoError(t, err)
	e.Wait()
	assert.Equal(t, StateComplete, e.State())
	assert.Equal(t, reference(t, pkg.ALGORITHM_DFS, 9, 9, 1), rec.Events())
}

func TestTransportFailureCancelsRun(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(t, rec, 0)
	rec.hook = func(n int) error {
		if n == 5 {
			return errBrokenPipe
		}
		return nil
	}

	_, err := e.Start(StartRequest{Algorithm: pkg.ALGORITHM_PRIMS, Width: 15, Height: 15})
	require.NoError(t, err)
	e.Wait()

	assert.Equal(t, StateCancelled, e.State())
	assert.Len(t, rec.Events(), 5)
	assert.Empty(t, rec.summaries)
	require.Len(t, rec.failures, 1)
	assert.True(t, errors.Is(rec.failures[0], errBrokenPipe))
}

func TestCommandsWithoutActiveRun(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(t, rec, 0)

	err := e.SetPaused(true)
	assert.True(t, errors.Is(err, ErrNoActiveSession))
	assert.True(t, errors.Is(err, util.ErrBadParamInput))
	err = e.SetSpeed(10 * time.Millisecond)
	assert.True(t, errors.Is(err, ErrNoActiveSession))
	assert.Equal(t, StateIdle, e.State())

	_, ok := e.Current()
	assert.False(t, ok)
	assert.Nil(t, e.Grid())

	_, err = e.Start(StartRequest{Algorithm: pkg.ALGORITHM_DFS, Width: 3, Height: 3, Seed: seed(1)})
	require.NoError(t, err)
	e.Wait()

	err = e.SetPaused(true)
	assert.True(t, errors.Is(err, ErrNoActiveSession))
	assert.Equal(t, StateComplete, e.State())
	assert.NoError(t, e.SetSpeed(10*time.Millisecond))
}

func TestCloseIsIdempotent(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(t, rec, 0)
	e.Close()
	assert.Equal(t, StateIdle, e.State())

	_, err := e.Start(StartRequest{Algorithm: pkg.ALGORITHM_ALDOUS_BRODER, Width: 41, Height: 23})
	require.NoError(t, err)
	require.NoError(t, e.SetPaused(true))

	e.Close()
	e.Close()
	assert.Equal(t, StateCancelled, e.State())
	assert.Empty(t, rec.summaries)
}

func TestRandomSeedIsReported(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(t, rec, 0)

	info, err := e.Start(StartRequest{Algorithm: pkg.ALGORITHM_PRIMS, Width: 9, Height: 9})
	require.NoError(t, err)
	e.Wait()

	assert.Equal(t, reference(t, pkg.ALGORITHM_PRIMS, 9, 9, info.Seed), rec.Events())
}
