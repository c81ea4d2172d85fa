package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisjointSet(t *testing.T) {
	ds := NewDisjointSet(6)
	assert.Equal(t, 6, ds.Count())

	assert.True(t, ds.Union(0, 1))
	assert.True(t, ds.Union(2, 3))
	assert.False(t, ds.Union(1, 0))
	assert.Equal(t, 4, ds.Count())

	assert.True(t, ds.Connected(0, 1))
	assert.False(t, ds.Connected(1, 2))

	assert.True(t, ds.Union(1, 3))
	assert.True(t, ds.Connected(0, 2))
	assert.Equal(t, ds.Find(0), ds.Find(3))
	assert.Equal(t, 3, ds.Count())

	assert.False(t, ds.Connected(4, 5))
	assert.Equal(t, 4, ds.Find(4))
}

func TestFrontierSet(t *testing.T) {
	fs := NewFrontierSet()

	assert.True(t, fs.Add(NewCell(0, 0)))
	assert.True(t, fs.Add(NewCell(0, 1)))
	assert.True(t, fs.Add(NewCell(0, 2)))
	assert.False(t, fs.Add(NewCell(0, 1)), "a cell appears at most once")
	assert.Equal(t, 3, fs.Len())

	assert.True(t, fs.Remove(NewCell(0, 0)))
	assert.False(t, fs.Remove(NewCell(0, 0)))
	assert.Equal(t, 2, fs.Len())
	assert.Equal(t, NewCell(0, 2), fs.At(0))
	assert.False(t, fs.Contains(NewCell(0, 0)))
	assert.True(t, fs.Contains(NewCell(0, 2)))

	assert.True(t, fs.Remove(NewCell(0, 1)))
	assert.True(t, fs.Remove(NewCell(0, 2)))
	assert.Equal(t, 0, fs.Len())
	assert.True(t, fs.Add(NewCell(0, 1)))
}
