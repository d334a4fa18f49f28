// Package carousel pages through a collection a fixed number of items at a
// time, advancing on a timer and wrapping at the end.
//
// All transitions go through Reduce, which keeps Index valid for the
// current PageCount after every event.
package carousel

// State is a carousel position. The zero value is an empty carousel with a
// page size of zero; use NewState.
type State struct {
	Index     int `json:"index"`
	PageSize  int `json:"page_size"`
	ItemCount int `json:"item_count"`
	PageCount int `json:"page_count"`
}

func NewState(pageSize int) State {
	if pageSize <= 0 {
		pageSize = 1
	}
	return State{PageSize: pageSize}
}

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// Tick advances to the next page, wrapping to the first.
type Tick struct{}

// Resize sets the page size. Non-positive sizes are ignored.
type Resize struct {
	PageSize int
}

// ItemsChanged sets the number of items. Negative counts are treated as 0.
type ItemsChanged struct {
	Count int
}

// JumpTo moves to a page. Out-of-range indexes are ignored.
type JumpTo struct {
	Index int
}

func (Tick) isEvent()         {}
func (Resize) isEvent()       {}
func (ItemsChanged) isEvent() {}
func (JumpTo) isEvent()       {}

// Reduce returns the state that follows s after e.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case Tick:
		if s.PageCount == 0 {
			return s
		}
		s.Index = (s.Index + 1) % s.PageCount
	case Resize:
		if e.PageSize <= 0 {
			return s
		}
		s.PageSize = e.PageSize
		s = s.recompute()
	case ItemsChanged:
		s.ItemCount = max(e.Count, 0)
		s = s.recompute()
	case JumpTo:
		if e.Index < 0 || e.Index >= s.PageCount {
			return s
		}
		s.Index = e.Index
	}
	return s
}

func (s State) recompute() State {
	if s.PageSize <= 0 {
		s.PageSize = 1
	}
	s.PageCount = (s.ItemCount + s.PageSize - 1) / s.PageSize
	switch {
	case s.PageCount == 0:
		s.Index = 0
	case s.Index >= s.PageCount:
		s.Index = s.PageCount - 1
	case s.Index < 0:
		s.Index = 0
	}
	return s
}

// Window returns the items on the current page.
func Window[T any](items []T, s State) []T {
	if s.PageSize <= 0 {
		return nil
	}
	start := s.Index * s.PageSize
	if start >= len(items) || start < 0 {
		return nil
	}
	end := min(start+s.PageSize, len(items))
	return items[start:end]
}

// Breakpoints are the viewport widths at which the page size grows.
type Breakpoints struct {
	Narrow int
	Medium int
}

func DefaultBreakpoints() Breakpoints {
	return Breakpoints{Narrow: 640, Medium: 1024}
}

// PageSizeForWidth maps a viewport width to a page size: 1 below Narrow,
// 2 below Medium, 3 otherwise.
func PageSizeForWidth(width int, bp Breakpoints) int {
	switch {
	case width < bp.Narrow:
		return 1
	case width < bp.Medium:
		return 2
	default:
		return 3
	}
}
