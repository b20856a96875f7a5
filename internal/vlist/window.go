package vlist

// Package vlist holds the pure windowing math behind the virtualized result
// list: given a scroll offset it decides which slice of a long list gets
// rendered, so the mounted row count stays bounded no matter how many items
// accumulate.

// Params describes one list geometry. Heights are in the same unit as
// ScrollTop (terminal rows here, pixels in a browser — the math is agnostic).
type Params struct {
	RowHeight       int // height of one row, > 0
	Gap             int // spacing between rows
	ViewportHeight  int // visible height
	OverscanCount   int // rows rendered beyond each edge of the viewport
	ScrollThreshold int // distance from the bottom that triggers a fetch
}

// Window is the half-open index range [Start, End) to render.
type Window struct {
	Start int
	End   int
}

// Count returns the number of rendered rows.
func (w Window) Count() int {
	return w.End - w.Start
}

func (p Params) rowStride() int {
	stride := p.RowHeight + p.Gap
	if stride <= 0 {
		stride = 1
	}
	return stride
}

// VisibleCount returns how many full rows fit the viewport.
func (p Params) VisibleCount() int {
	return p.ViewportHeight / p.rowStride()
}

// Compute returns the render window for the given scroll offset. The row
// count never exceeds VisibleCount + 2*OverscanCount.
func (p Params) Compute(scrollTop, itemCount int) Window {
	if itemCount <= 0 {
		return Window{}
	}
	stride := p.rowStride()

	first := scrollTop / stride
	start := first - p.OverscanCount
	if start < 0 {
		start = 0
	}

	end := first + p.VisibleCount() + p.OverscanCount
	if end > itemCount {
		end = itemCount
	}
	if start > end {
		start = end
	}
	return Window{Start: start, End: end}
}

// TotalHeight synthesizes the scrollable height as if every row were
// mounted, so the scrollbar behaves normally.
func (p Params) TotalHeight(itemCount int) int {
	if itemCount <= 0 {
		return 0
	}
	return itemCount * p.rowStride()
}

// MaxScroll returns the largest useful scroll offset.
func (p Params) MaxScroll(itemCount int) int {
	max := p.TotalHeight(itemCount) - p.ViewportHeight
	if max < 0 {
		return 0
	}
	return max
}

// ClampScroll bounds a scroll offset to the valid range.
func (p Params) ClampScroll(scrollTop, itemCount int) int {
	if scrollTop < 0 {
		return 0
	}
	if max := p.MaxScroll(itemCount); scrollTop > max {
		return max
	}
	return scrollTop
}

// NearBottom reports whether the viewport is within ScrollThreshold of the
// end of the synthesized height — the trigger for fetching the next page.
func (p Params) NearBottom(scrollTop, itemCount int) bool {
	if itemCount <= 0 {
		return false
	}
	remaining := p.TotalHeight(itemCount) - (scrollTop + p.ViewportHeight)
	return remaining <= p.ScrollThreshold
}
