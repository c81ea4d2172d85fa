package generation

import (
	"iter"

	"github.com/teja123git/Maze-Generator/pkg"
	da "github.com/teja123git/Maze-Generator/pkg/datastructure"
	"golang.org/x/exp/rand"
)

// Ellers. row-by-row generation keeping one disjoint set per connected region.
//
// rows other than the last: adjacent cells of different sets are joined eastward with probability 1/2,
// then every set present in the row is carved southward from one uniformly chosen member and from each
// other member with probability 1/2. the last row joins every remaining pair of different sets eastward,
// left to right.
type Ellers struct{}

func NewEllers() *Ellers {
	return &Ellers{}
}

func (e *Ellers) Name() string {
	return pkg.ALGORITHM_ELLERS
}

func (e *Ellers) Generate(grid *da.Grid, rng *rand.Rand) iter.Seq2[da.Event, error] {
	return func(yield func(da.Event, error) bool) {
		width, height := grid.Width(), grid.Height()
		sets := da.NewDisjointSet(grid.NumberOfCells())

		for r := 0; r < height; r++ {
			lastRow := r == height-1

			for c := 0; c+1 < width; c++ {
				a, b := da.NewCell(r, c), da.NewCell(r, c+1)
				if sets.Connected(grid.Index(a), grid.Index(b)) {
					continue
				}
				if !lastRow && rng.Intn(2) == 0 {
					continue
				}

				sets.Union(grid.Index(a), grid.Index(b))
				ev, err := grid.Carve(a, b)
				if !emit(yield, ev, err) {
					return
				}
			}

			if lastRow {
				return
			}

			down := e.chooseDownward(grid, sets, r, rng)
			for c := 0; c < width; c++ {
				if !down[c] {
					continue
				}
				a, b := da.NewCell(r, c), da.NewCell(r+1, c)
				sets.Union(grid.Index(a), grid.Index(b))
				ev, err := grid.Carve(a, b)
				if !emit(yield, ev, err) {
					return
				}
			}
		}
	}
}

// chooseDownward. columns of row r that get a south carve, at least one per set.
// sets are visited in order of their first column so the rng draws are reproducible.
func (e *Ellers) chooseDownward(grid *da.Grid, sets *da.DisjointSet, r int, rng *rand.Rand) []bool {
	width := grid.Width()
	order := make([]int, 0, width)
	members := make(map[int][]int, width)
	for c := 0; c < width; c++ {
		root := sets.Find(grid.Index(da.NewCell(r, c)))
		if _, ok := members[root]; !ok {
			order = append(order, root)
		}
		members[root] = append(members[root], c)
	}

	down := make([]bool, width)
	for _, root := range order {
		cols := members[root]
		first := cols[rng.Intn(len(cols))]
		for _, c := range cols {
			if c == first || rng.Intn(2) == 1 {
				down[c] = true
			}
		}
	}
	return down
}
