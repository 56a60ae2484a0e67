package render

// LayoutMode selects between the single-pose viewer and the all-poses grid.
type LayoutMode string

const (
	LayoutSingle LayoutMode = "single"
	LayoutGrid   LayoutMode = "grid"
)

// ViewState holds the two pieces of viewer state external to the data model:
// which pose is active and which layout is requested.  It is pure state with
// no parsing and no persistence beyond the current session.
type ViewState struct {
	activeModelIndex int
	layoutMode       LayoutMode
	modelCount       int
}

// NewViewState returns the default state for a dataset of modelCount poses:
// the first pose active, single layout.
func NewViewState(modelCount int) *ViewState {
	if modelCount < 0 {
		modelCount = 0
	}
	return &ViewState{layoutMode: LayoutSingle, modelCount: modelCount}
}

// ActiveModelIndex returns the active pose index, always within
// [0, modelCount) for a non-empty dataset.
func (s *ViewState) ActiveModelIndex() int {
	return s.activeModelIndex
}

// LayoutMode returns the requested layout.
func (s *ViewState) LayoutMode() LayoutMode {
	return s.layoutMode
}

// SetLayoutMode switches between single and grid layout.  Switching never
// alters the active model index.  Unknown values are ignored.
func (s *ViewState) SetLayoutMode(mode LayoutMode) {
	switch mode {
	case LayoutSingle, LayoutGrid:
		s.layoutMode = mode
	}
}

// SelectModel sets the active pose, clamping into the valid range.  Selecting
// a pose expresses single-view intent, but whether the layout also flips is
// the UI collaborator's decision, so layoutMode is left untouched here.
func (s *ViewState) SelectModel(index int) {
	if s.modelCount == 0 {
		s.activeModelIndex = 0
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= s.modelCount {
		index = s.modelCount - 1
	}
	s.activeModelIndex = index
}
