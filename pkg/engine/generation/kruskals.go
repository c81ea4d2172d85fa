package generation

import (
	"iter"

	"github.com/teja123git/Maze-Generator/pkg"
	da "github.com/teja123git/Maze-Generator/pkg/datastructure"
	"golang.org/x/exp/rand"
)

// Kruskals. kruskal's over uniformly shuffled edges, i.e. a minimum spanning tree under random weights.
type Kruskals struct{}

func NewKruskals() *Kruskals {
	return &Kruskals{}
}

func (k *Kruskals) Name() string {
	return pkg.ALGORITHM_KRUSKALS
}

func (k *Kruskals) Generate(grid *da.Grid, rng *rand.Rand) iter.Seq2[da.Event, error] {
	return func(yield func(da.Event, error) bool) {
		edges := grid.Edges()
		rng.Shuffle(len(edges), func(i, j int) {
			edges[i], edges[j] = edges[j], edges[i]
		})

		forest := da.NewDisjointSet(grid.NumberOfCells())
		for _, e := range edges {
			if forest.Count() == 1 {
				// every remaining edge closes a cycle
				return
			}
			if !forest.Union(grid.Index(e.A), grid.Index(e.B)) {
				continue
			}

			ev, err := grid.Carve(e.A, e.B)
			if !emit(yield, ev, err) {
				return
			}
		}
	}
}
