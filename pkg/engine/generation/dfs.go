package generation

import (
	"iter"

	"github.com/teja123git/Maze-Generator/pkg"
	da "github.com/teja123git/Maze-Generator/pkg/datastructure"
	"golang.org/x/exp/rand"
)

// DFS. recursive backtracker driven by an explicit stack, so a run can be suspended between any two steps.
type DFS struct{}

func NewDFS() *DFS {
	return &DFS{}
}

func (d *DFS) Name() string {
	return pkg.ALGORITHM_DFS
}

func (d *DFS) Generate(grid *da.Grid, rng *rand.Rand) iter.Seq2[da.Event, error] {
	return func(yield func(da.Event, error) bool) {
		start := grid.Start()
		if !visitRoot(yield, grid, start) {
			return
		}

		stack := []da.Cell{start}
		backtracking := false
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			candidates := grid.UnvisitedNeighbors(top)
			if len(candidates) == 0 {
				stack = stack[:len(stack)-1]
				backtracking = true
				continue
			}

			if backtracking {
				// the cell the walk resumes from after a dead end
				ev, err := grid.MarkFrontier(top)
				if !emit(yield, ev, err) {
					return
				}
				backtracking = false
			}

			next := candidates[rng.Intn(len(candidates))]
			ev, err := grid.Carve(top, next)
			if !emit(yield, ev, err) {
				return
			}
			stack = append(stack, next)
		}
	}
}
