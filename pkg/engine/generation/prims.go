package generation

import (
	"iter"

	"github.com/teja123git/Maze-Generator/pkg"
	da "github.com/teja123git/Maze-Generator/pkg/datastructure"
	"github.com/teja123git/Maze-Generator/pkg/util"
	"golang.org/x/exp/rand"
)

// Prims. randomized prim's over the cell graph.
type Prims struct{}

func NewPrims() *Prims {
	return &Prims{}
}

func (p *Prims) Name() string {
	return pkg.ALGORITHM_PRIMS
}

func (p *Prims) Generate(grid *da.Grid, rng *rand.Rand) iter.Seq2[da.Event, error] {
	return func(yield func(da.Event, error) bool) {
		start := grid.Start()
		if !visitRoot(yield, grid, start) {
			return
		}

		frontier := da.NewFrontierSet()
		expand := func(c da.Cell) bool {
			for _, n := range grid.UnvisitedNeighbors(c) {
				if !frontier.Add(n) {
					continue
				}
				ev, err := grid.MarkFrontier(n)
				if !emit(yield, ev, err) {
					return false
				}
			}
			return true
		}

		if !expand(start) {
			return
		}

		for frontier.Len() > 0 {
			cell := frontier.At(rng.Intn(frontier.Len()))
			frontier.Remove(cell)

			carved := grid.VisitedNeighbors(cell)
			if len(carved) == 0 {
				yield(da.Event{}, util.WrapErrorf(da.ErrNotAdjacent, util.ErrInternalInvariant,
					"frontier cell %v has no carved neighbor", cell))
				return
			}

			from := carved[rng.Intn(len(carved))]
			ev, err := grid.Carve(from, cell)
			if !emit(yield, ev, err) {
				return
			}

			if !expand(cell) {
				return
			}
		}
	}
}
