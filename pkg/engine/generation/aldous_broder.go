package generation

import (
	"iter"

	"github.com/teja123git/Maze-Generator/pkg"
	da "github.com/teja123git/Maze-Generator/pkg/datastructure"
	"golang.org/x/exp/rand"
)

// AldousBroder. uniform random walk, carving into every cell the walk enters for the first time.
// the number of steps (and frontier events) is not bounded by the grid size.
type AldousBroder struct{}

func NewAldousBroder() *AldousBroder {
	return &AldousBroder{}
}

func (ab *AldousBroder) Name() string {
	return pkg.ALGORITHM_ALDOUS_BRODER
}

func (ab *AldousBroder) Generate(grid *da.Grid, rng *rand.Rand) iter.Seq2[da.Event, error] {
	return func(yield func(da.Event, error) bool) {
		current := grid.Start()
		if !visitRoot(yield, grid, current) {
			return
		}

		total := grid.NumberOfCells()
		for grid.VisitedCount() < total {
			neighbors := grid.Neighbors(current)
			next := neighbors[rng.Intn(len(neighbors))]

			var (
				ev  da.Event
				err error
			)
			if grid.Visited(next) {
				ev, err = grid.MarkFrontier(next)
			} else {
				ev, err = grid.Carve(current, next)
			}
			if !emit(yield, ev, err) {
				return
			}
			current = next
		}
	}
}
