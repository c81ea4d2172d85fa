package generation

import (
	"errors"
	"iter"
	"sort"

	"github.com/teja123git/Maze-Generator/pkg"
	da "github.com/teja123git/Maze-Generator/pkg/datastructure"
	"github.com/teja123git/Maze-Generator/pkg/util"
	"golang.org/x/exp/rand"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown maze generation algorithm")
)

// Generator produces the ordered event sequence of one maze run.
// the sequence suspends only at yield; an invariant violation is yielded once as (Event{}, err) and ends the sequence.
type Generator interface {
	Name() string
	Generate(grid *da.Grid, rng *rand.Rand) iter.Seq2[da.Event, error]
}

type Registry struct {
	generators map[string]Generator
}

// NewRegistry. every supported algorithm keyed by its protocol id. the registry is read-only after construction.
func NewRegistry() *Registry {
	gens := []Generator{
		NewDFS(),
		NewPrims(),
		NewKruskals(),
		NewEllers(),
		NewAldousBroder(),
	}

	r := &Registry{generators: make(map[string]Generator, len(gens))}
	for _, g := range gens {
		r.generators[g.Name()] = g
	}
	return r
}

func (r *Registry) Lookup(name string) (Generator, error) {
	g, ok := r.generators[name]
	if !ok {
		return nil, util.WrapErrorf(ErrUnknownAlgorithm, util.ErrBadParamInput, "Algorithm '%s' not found.", name)
	}
	return g, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewRand. seeded entropy source, the same seed reproduces the same event sequence.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Collect. run a generator to completion without any playback gating.
func Collect(gen Generator, grid *da.Grid, rng *rand.Rand) ([]da.Event, error) {
	events := make([]da.Event, 0, 2*grid.NumberOfCells())
	for ev, err := range gen.Generate(grid, rng) {
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// emit. forward an event or the error that replaced it, false when the sequence must end.
func emit(yield func(da.Event, error) bool, ev da.Event, err error) bool {
	if err != nil {
		yield(da.Event{}, err)
		return false
	}
	return yield(ev, nil)
}

// visitRoot. mark the root of a tree-growing algorithm visited and emit it as the first path event.
func visitRoot(yield func(da.Event, error) bool, grid *da.Grid, root da.Cell) bool {
	if err := grid.Visit(root); err != nil {
		yield(da.Event{}, err)
		return false
	}
	return yield(da.Event{Cell: root, Type: pkg.PATH_EVENT}, nil)
}
