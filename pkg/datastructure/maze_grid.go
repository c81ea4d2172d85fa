package datastructure

import (
	"errors"
	"strings"

	"github.com/teja123git/Maze-Generator/pkg"
	"github.com/teja123git/Maze-Generator/pkg/util"
)

var (
	ErrInvalidDimension = errors.New("width and height must be odd and at least 3")
	ErrOutOfBounds      = errors.New("cell is out of bounds")
	ErrNotAdjacent      = errors.New("cells are not grid-adjacent")
	ErrAlreadyCarved    = errors.New("wall between cells is already carved")
)

type Cell struct {
	Row int
	Col int
}

func NewCell(row, col int) Cell {
	return Cell{Row: row, Col: col}
}

func (c Cell) Move(d Direction) Cell {
	dr, dc := d.Delta()
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

// Event is one structural change (or visualization hint) produced while generating a maze.
// From is only set for path events produced by a carve.
type Event struct {
	Cell Cell
	From *Cell
	Type pkg.EventType
}

func (e Event) IsCarve() bool {
	return e.Type == pkg.PATH_EVENT && e.From != nil
}

// Edge. unordered pair of grid-adjacent cells, A precedes B in row-major order.
type Edge struct {
	A Cell
	B Cell
}

func NewEdge(a, b Cell) Edge {
	if b.Row < a.Row || (b.Row == a.Row && b.Col < a.Col) {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Walls of a single cell, true means closed.
type Walls struct {
	North bool
	East  bool
	South bool
	West  bool
}

type gridCell struct {
	visited bool
}

// Grid. cell and wall state of one maze instance.
// walls are stored once per logical edge: east[r][c] separates (r,c) and (r,c+1), south[r][c] separates (r,c) and (r+1,c).
type Grid struct {
	width, height int
	cells         []gridCell
	east          []bool // true = open
	south         []bool
	visitedCount  int
	carvedEdges   int
}

// NewGrid. allocate a fully walled grid. width and height must be odd, >= 3 and <= pkg.MAX_DIMENSION.
func NewGrid(width, height int) (*Grid, error) {
	return NewGridWithLimit(width, height, pkg.MAX_DIMENSION)
}

// NewGridWithLimit. same as NewGrid with a configurable upper bound, 0 means pkg.MAX_DIMENSION.
func NewGridWithLimit(width, height, maxDimension int) (*Grid, error) {
	if maxDimension <= 0 {
		maxDimension = pkg.MAX_DIMENSION
	}
	if err := ValidateDimension(width, height, maxDimension); err != nil {
		return nil, err
	}

	n := width * height
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]gridCell, n),
		east:   make([]bool, n),
		south:  make([]bool, n),
	}, nil
}

func ValidateDimension(width, height, maxDimension int) error {
	for _, v := range []int{width, height} {
		if v < pkg.MIN_DIMENSION || v%2 == 0 {
			return util.WrapErrorf(ErrInvalidDimension, util.ErrBadParamInput, "invalid maze dimension %dx%d", width, height)
		}
		if v > maxDimension {
			return util.WrapErrorf(ErrInvalidDimension, util.ErrBadParamInput,
				"invalid maze dimension %dx%d, max is %d", width, height, maxDimension)
		}
	}
	return nil
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

func (g *Grid) NumberOfCells() int {
	return g.width * g.height
}

func (g *Grid) Start() Cell {
	return Cell{Row: 1, Col: 1}
}

func (g *Grid) End() Cell {
	return Cell{Row: g.height - 2, Col: g.width - 2}
}

func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.height && c.Col >= 0 && c.Col < g.width
}

func (g *Grid) Index(c Cell) int {
	return c.Row*g.width + c.Col
}

func (g *Grid) CellAt(i int) Cell {
	return Cell{Row: i / g.width, Col: i % g.width}
}

func (g *Grid) Visited(c Cell) bool {
	return g.cells[g.Index(c)].visited
}

func (g *Grid) VisitedCount() int {
	return g.visitedCount
}

func (g *Grid) CarvedEdges() int {
	return g.carvedEdges
}

// Visit. mark the root cell of a tree-growing algorithm visited without carving.
func (g *Grid) Visit(c Cell) error {
	if !g.InBounds(c) {
		return util.WrapErrorf(ErrOutOfBounds, util.ErrInternalInvariant, "visit %v", c)
	}
	g.markVisited(c)
	return nil
}

func (g *Grid) markVisited(c Cell) bool {
	i := g.Index(c)
	if g.cells[i].visited {
		return false
	}
	g.cells[i].visited = true
	g.visitedCount++
	return true
}

// Carve. open the wall between two adjacent cells and mark both visited.
// the returned event points at the newly visited cell, b when both or neither were new.
func (g *Grid) Carve(a, b Cell) (Event, error) {
	if !g.InBounds(a) || !g.InBounds(b) {
		return Event{}, util.WrapErrorf(ErrOutOfBounds, util.ErrInternalInvariant, "carve %v -> %v", a, b)
	}
	if util.Abs(a.Row-b.Row)+util.Abs(a.Col-b.Col) != 1 {
		return Event{}, util.WrapErrorf(ErrNotAdjacent, util.ErrInternalInvariant, "carve %v -> %v", a, b)
	}

	wall := g.wallOf(a, b)
	if *wall {
		return Event{}, util.WrapErrorf(ErrAlreadyCarved, util.ErrInternalInvariant, "carve %v -> %v", a, b)
	}
	*wall = true
	g.carvedEdges++

	aNew := g.markVisited(a)
	bNew := g.markVisited(b)

	cell, from := b, a
	if aNew && !bNew {
		cell, from = a, b
	}
	return Event{Cell: cell, From: &from, Type: pkg.PATH_EVENT}, nil
}

// MarkFrontier. visualization hint only, wall state is untouched.
func (g *Grid) MarkFrontier(c Cell) (Event, error) {
	if !g.InBounds(c) {
		return Event{}, util.WrapErrorf(ErrOutOfBounds, util.ErrInternalInvariant, "frontier %v", c)
	}
	return Event{Cell: c, Type: pkg.FRONTIER_EVENT}, nil
}

// wallOf. a and b must be in bounds and adjacent.
func (g *Grid) wallOf(a, b Cell) *bool {
	e := NewEdge(a, b)
	if e.A.Row == e.B.Row {
		return &g.east[g.Index(e.A)]
	}
	return &g.south[g.Index(e.A)]
}

func (g *Grid) IsOpen(a, b Cell) bool {
	if !g.InBounds(a) || !g.InBounds(b) || util.Abs(a.Row-b.Row)+util.Abs(a.Col-b.Col) != 1 {
		return false
	}
	return *g.wallOf(a, b)
}

func (g *Grid) Walls(c Cell) Walls {
	return Walls{
		North: !g.IsOpen(c, c.Move(NORTH)),
		East:  !g.IsOpen(c, c.Move(EAST)),
		South: !g.IsOpen(c, c.Move(SOUTH)),
		West:  !g.IsOpen(c, c.Move(WEST)),
	}
}

// Neighbors. in-bound neighbors in N, E, S, W order.
func (g *Grid) Neighbors(c Cell) []Cell {
	ns := make([]Cell, 0, 4)
	for _, d := range Directions {
		n := c.Move(d)
		if g.InBounds(n) {
			ns = append(ns, n)
		}
	}
	return ns
}

func (g *Grid) UnvisitedNeighbors(c Cell) []Cell {
	ns := make([]Cell, 0, 4)
	for _, n := range g.Neighbors(c) {
		if !g.Visited(n) {
			ns = append(ns, n)
		}
	}
	return ns
}

func (g *Grid) VisitedNeighbors(c Cell) []Cell {
	ns := make([]Cell, 0, 4)
	for _, n := range g.Neighbors(c) {
		if g.Visited(n) {
			ns = append(ns, n)
		}
	}
	return ns
}

// Edges. every interior edge, row-major with the east edge before the south edge.
func (g *Grid) Edges() []Edge {
	edges := make([]Edge, 0, 2*g.width*g.height-g.width-g.height)
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			cell := Cell{Row: r, Col: c}
			if c+1 < g.width {
				edges = append(edges, Edge{A: cell, B: cell.Move(EAST)})
			}
			if r+1 < g.height {
				edges = append(edges, Edge{A: cell, B: cell.Move(SOUTH)})
			}
		}
	}
	return edges
}

// String. ascii rendering, one "+---+" box per cell.
func (g *Grid) String() string {
	return g.Render(nil)
}

// Render draws the grid as ascii art. label, when not nil, returns the three-column body of a cell.
func (g *Grid) Render(label func(c Cell) string) string {
	var sb strings.Builder

	body := func(c Cell) string {
		if label == nil {
			return "   "
		}
		return label(c)
	}

	sb.WriteString("+" + strings.Repeat("---+", g.width) + "\n")
	for r := 0; r < g.height; r++ {
		sb.WriteString("|")
		for c := 0; c < g.width; c++ {
			cell := Cell{Row: r, Col: c}
			sb.WriteString(body(cell))
			if g.east[g.Index(cell)] {
				sb.WriteString(" ")
			} else {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n+")
		for c := 0; c < g.width; c++ {
			if g.south[g.Index(Cell{Row: r, Col: c})] {
				sb.WriteString("   +")
			} else {
				sb.WriteString("---+")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
