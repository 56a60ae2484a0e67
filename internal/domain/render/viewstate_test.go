package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewViewState_Defaults(t *testing.T) {
	s := NewViewState(5)
	assert.Equal(t, 0, s.ActiveModelIndex())
	assert.Equal(t, LayoutSingle, s.LayoutMode())
}

func TestViewState_SelectModelClamps(t *testing.T) {
	s := NewViewState(3)

	s.SelectModel(2)
	assert.Equal(t, 2, s.ActiveModelIndex())

	s.SelectModel(99)
	assert.Equal(t, 2, s.ActiveModelIndex())

	s.SelectModel(-1)
	assert.Equal(t, 0, s.ActiveModelIndex())
}

func TestViewState_LayoutSwitchKeepsActiveIndex(t *testing.T) {
	s := NewViewState(4)
	s.SelectModel(3)

	s.SetLayoutMode(LayoutGrid)
	assert.Equal(t, LayoutGrid, s.LayoutMode())
	assert.Equal(t, 3, s.ActiveModelIndex())

	s.SetLayoutMode(LayoutSingle)
	assert.Equal(t, 3, s.ActiveModelIndex())
}

func TestViewState_SelectDoesNotFlipLayout(t *testing.T) {
	// Selecting in grid mode expresses single-view intent, but flipping the
	// layout is the UI's call.
	s := NewViewState(4)
	s.SetLayoutMode(LayoutGrid)
	s.SelectModel(1)
	assert.Equal(t, LayoutGrid, s.LayoutMode())
}

func TestViewState_UnknownLayoutIgnored(t *testing.T) {
	s := NewViewState(2)
	s.SetLayoutMode(LayoutMode("mosaic"))
	assert.Equal(t, LayoutSingle, s.LayoutMode())
}

func TestViewState_EmptyDataset(t *testing.T) {
	s := NewViewState(0)
	s.SelectModel(5)
	assert.Equal(t, 0, s.ActiveModelIndex())
}
