package generation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teja123git/Maze-Generator/pkg"
	da "github.com/teja123git/Maze-Generator/pkg/datastructure"
	"github.com/teja123git/Maze-Generator/pkg/util"
)

var growingAlgorithms = map[string]bool{
	pkg.ALGORITHM_DFS:           true,
	pkg.ALGORITHM_PRIMS:         true,
	pkg.ALGORITHM_ALDOUS_BRODER: true,
}

// reachable. number of cells reachable from (0,0) through open walls.
func reachable(g *da.Grid) int {
	seen := make([]bool, g.NumberOfCells())
	queue := []da.Cell{da.NewCell(0, 0)}
	seen[0] = true
	count := 0
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		count++
		for _, n := range g.Neighbors(c) {
			if g.IsOpen(c, n) && !seen[g.Index(n)] {
				seen[g.Index(n)] = true
				queue = append(queue, n)
			}
		}
	}
	return count
}

func TestGeneratorsProduceSpanningTree(t *testing.T) {
	registry := NewRegistry()
	sizes := [][2]int{{3, 3}, {9, 9}, {15, 7}, {41, 23}}

	for _, name := range registry.Names() {
		for _, size := range sizes {
			t.Run(fmt.Sprintf("%s %dx%d", name, size[0], size[1]), func(t *testing.T) {
				gen, err := registry.Lookup(name)
				require.NoError(t, err)
				grid, err := da.NewGrid(size[0], size[1])
				require.NoError(t, err)

				events, err := Collect(gen, grid, NewRand(42))
				require.NoError(t, err)

				n := grid.NumberOfCells()
				assert.Equal(t, n-1, grid.CarvedEdges())
				assert.Equal(t, n, grid.VisitedCount())
				assert.Equal(t, n, reachable(grid))

				carves, roots := 0, 0
				for _, ev := range events {
					require.True(t, grid.InBounds(ev.Cell))
					if ev.Type != pkg.PATH_EVENT {
						assert.Nil(t, ev.From)
						continue
					}
					if ev.From == nil {
						roots++
						continue
					}
					carves++
					assert.Equal(t, 1, util.Abs(ev.Cell.Row-ev.From.Row)+util.Abs(ev.Cell.Col-ev.From.Col))
					assert.True(t, grid.IsOpen(ev.Cell, *ev.From))
				}
				assert.Equal(t, n-1, carves)
				if growingAlgorithms[name] {
					assert.Equal(t, 1, roots)
					assert.Equal(t, grid.Start(), events[0].Cell)
				} else {
					assert.Equal(t, 0, roots)
				}
			})
		}
	}
}

func TestGrowingAlgorithmsCoverEveryCellOnce(t *testing.T) {
	registry := NewRegistry()
	for name := range growingAlgorithms {
		t.Run(name, func(t *testing.T) {
			gen, err := registry.Lookup(name)
			require.NoError(t, err)
			grid, err := da.NewGrid(11, 9)
			require.NoError(t, err)

			events, err := Collect(gen, grid, NewRand(7))
			require.NoError(t, err)

			seen := make(map[da.Cell]int)
			for _, ev := range events {
				if ev.Type == pkg.PATH_EVENT {
					seen[ev.Cell]++
				}
			}
			assert.Len(t, seen, grid.NumberOfCells())
			for c, count := range seen {
				assert.Equal(t, 1, count, "cell %v", c)
			}
		})
	}
}

func TestGeneratorsAreDeterministic(t *testing.T) {
	registry := NewRegistry()
	for _, name := range registry.Names() {
		t.Run(name, func(t *testing.T) {
			gen, err := registry.Lookup(name)
			require.NoError(t, err)

			run := func(seed uint64) []da.Event {
				grid, err := da.NewGrid(21, 13)
				require.NoError(t, err)
				events, err := Collect(gen, grid, NewRand(seed))
				require.NoError(t, err)
				return events
			}

			assert.Equal(t, run(1234), run(1234))
			assert.NotEqual(t, run(1234), run(4321))
		})
	}
}

func TestKruskalsPathEventCount(t *testing.T) {
	grid, err := da.NewGrid(9, 9)
	require.NoError(t, err)

	events, err := Collect(NewKruskals(), grid, NewRand(99))
	require.NoError(t, err)
	require.Len(t, events, 80)
	for _, ev := range events {
		assert.Equal(t, pkg.PATH_EVENT, ev.Type)
		assert.NotNil(t, ev.From)
	}
}

func TestEllersEmitsOnlyPathEvents(t *testing.T) {
	grid, err := da.NewGrid(13, 11)
	require.NoError(t, err)

	events, err := Collect(NewEllers(), grid, NewRand(5))
	require.NoError(t, err)
	assert.Len(t, events, grid.NumberOfCells()-1)

	// rows are completed top to bottom
	lastRow := 0
	for _, ev := range events {
		row := max(ev.Cell.Row, ev.From.Row)
		assert.GreaterOrEqual(t, row, lastRow)
		lastRow = row
	}
}

func TestGeneratorStopsWhenConsumerStops(t *testing.T) {
	grid, err := da.NewGrid(9, 9)
	require.NoError(t, err)

	taken := 0
	for _, err := range NewDFS().Generate(grid, NewRand(3)) {
		require.NoError(t, err)
		taken++
		if taken == 5 {
			break
		}
	}
	assert.Equal(t, 5, taken)
	assert.Less(t, grid.VisitedCount(), grid.NumberOfCells())
}

func TestGeneratorReportsInvariantViolation(t *testing.T) {
	grid, err := da.NewGrid(3, 3)
	require.NoError(t, err)
	for _, e := range grid.Edges() {
		_, err := grid.Carve(e.A, e.B)
		require.NoError(t, err)
	}

	events, err := Collect(NewKruskals(), grid, NewRand(1))
	require.Error(t, err)
	assert.Empty(t, events)
	assert.True(t, errors.Is(err, util.ErrInternalInvariant))
	assert.True(t, errors.Is(err, da.ErrAlreadyCarved))
}

func TestRegistryLookup(t *testing.T) {
	registry := NewRegistry()
	assert.Equal(t, []string{"aldous_broder", "dfs", "ellers", "kruskals", "prims"}, registry.Names())

	gen, err := registry.Lookup(pkg.ALGORITHM_PRIMS)
	require.NoError(t, err)
	assert.Equal(t, pkg.ALGORITHM_PRIMS, gen.Name())

	_, err = registry.Lookup("bogus")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
	assert.True(t, errors.Is(err, util.ErrBadParamInput))

	var uerr *util.Error
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "Algorithm 'bogus' not found.", uerr.Message())
}
