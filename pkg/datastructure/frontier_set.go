package datastructure

// FrontierSet. cells adjacent to the carved region that are not carved yet. a cell appears at most once.
// order is insertion order until a removal swaps the last cell into the removed slot.
type FrontierSet struct {
	cells []Cell
	pos   map[Cell]int
}

func NewFrontierSet() *FrontierSet {
	return &FrontierSet{
		cells: make([]Cell, 0),
		pos:   make(map[Cell]int),
	}
}

// Add. false if c is already in the set.
func (fs *FrontierSet) Add(c Cell) bool {
	if _, ok := fs.pos[c]; ok {
		return false
	}
	fs.pos[c] = len(fs.cells)
	fs.cells = append(fs.cells, c)
	return true
}

func (fs *FrontierSet) Remove(c Cell) bool {
	i, ok := fs.pos[c]
	if !ok {
		return false
	}
	last := len(fs.cells) - 1
	fs.cells[i] = fs.cells[last]
	fs.pos[fs.cells[i]] = i
	fs.cells = fs.cells[:last]
	delete(fs.pos, c)
	return true
}

func (fs *FrontierSet) Contains(c Cell) bool {
	_, ok := fs.pos[c]
	return ok
}

func (fs *FrontierSet) At(i int) Cell {
	return fs.cells[i]
}

func (fs *FrontierSet) Len() int {
	return len(fs.cells)
}
