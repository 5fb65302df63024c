// Package browser holds the navigation state of the hosts browser: a scrollable
// highlight cursor over the current display list, and the session state machine
// that turns user events into tree changes or a launch request.
//
// Nothing here touches the terminal. Renderers pass in the viewport height each
// frame and read back offsets and scrollbar geometry.
package browser

// Direction of a single highlight move.
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// Viewport is a window of at most height rows over a display list of visible rows.
//
// Top is the index of the first painted row; Highlight is the highlighted row
// within the painted page, so the selected index is Top+Highlight.
type Viewport struct {
	Top       int
	Highlight int
}

// Selected returns the absolute index of the highlighted row.
func (v Viewport) Selected() int { return v.Top + v.Highlight }

// Page returns the half-open range [start, end) of rows painted for this frame.
func (v Viewport) Page(visible, height int) (start, end int) {
	if visible <= 0 || height <= 0 {
		return 0, 0
	}
	start = v.Top
	if start > visible {
		start = visible
	}
	end = start + height
	if end > visible {
		end = visible
	}
	return start, end
}

// Clamp pulls the offsets back inside the current list. It runs before every
// frame because collapsing a group or narrowing a search can shrink the list
// under a stale cursor.
func (v *Viewport) Clamp(visible, height int) {
	if v.Top < 0 {
		v.Top = 0
	}
	if v.Highlight < 0 {
		v.Highlight = 0
	}
	if height > 0 && v.Highlight >= height {
		v.Highlight = height - 1
	}
	if v.Top >= visible {
		v.Top = 0
	}
	if visible <= 0 || height <= 0 {
		v.Highlight = 0
		return
	}
	pageLen := visible - v.Top
	if pageLen > height {
		pageLen = height
	}
	if v.Highlight >= pageLen {
		v.Highlight = pageLen - 1
	}
}

// Move shifts the highlight one row. At the edge of the page the page scrolls
// instead; at either end of the list the move is a no-op.
func (v *Viewport) Move(d Direction, visible, height int) {
	if visible <= 0 || height <= 0 {
		return
	}
	v.Clamp(visible, height)
	switch d {
	case Up:
		if v.Selected() == 0 {
			return
		}
		if v.Highlight == 0 {
			v.Top--
			return
		}
		v.Highlight--
	case Down:
		if v.Selected() >= visible-1 {
			return
		}
		if v.Highlight >= height-1 {
			v.Top++
			return
		}
		v.Highlight++
	}
}

// PageUp moves up one screenful, row by row.
func (v *Viewport) PageUp(visible, height int) {
	for i := 0; i < height; i++ {
		v.Move(Up, visible, height)
	}
}

// PageDown moves down one screenful, row by row.
func (v *Viewport) PageDown(visible, height int) {
	for i := 0; i < height; i++ {
		v.Move(Down, visible, height)
	}
}

// JumpTop highlights the first row of the list.
func (v *Viewport) JumpTop() {
	v.Top = 0
	v.Highlight = 0
}

// JumpBottom shows the last page and highlights the last row.
func (v *Viewport) JumpBottom(visible, height int) {
	if visible <= 0 || height <= 0 {
		v.JumpTop()
		return
	}
	v.Top = max(visible-height, 0)
	v.Highlight = min(height, visible) - 1
}

// ScrollBar holds the rows (0-based, within the page) of the scrollbar marks.
type ScrollBar struct {
	Top       int // '^'
	Bottom    int // 'v'
	Highlight int // '+'
}

// ComputeScrollBar derives the scrollbar marks proportionally from the list size,
// page size and offsets, rounding up. ok is false when there is nothing to draw.
func ComputeScrollBar(visible, height int, v Viewport) (sb ScrollBar, ok bool) {
	if visible <= 0 || height <= 0 {
		return ScrollBar{}, false
	}
	v.Clamp(visible, height)
	start, end := v.Page(visible, height)
	pageLen := end - start
	if pageLen <= 0 {
		return ScrollBar{}, false
	}

	top := ceilDiv((v.Top+1)*height-max(visible, height), max(visible, height))
	barHeight := ceilDiv(pageLen*height, visible)
	mark := ceilDiv(barHeight*(v.Highlight+1), min(height, pageLen))

	sb.Top = clampRow(top, height)
	sb.Bottom = clampRow(min(height, top+barHeight)-1, height)
	sb.Highlight = clampRow(min(height, top+mark)-1, height)
	return sb, true
}

// ceilDiv rounds a/b up for b > 0. Go division truncates toward zero, which is
// already the ceiling for negative quotients.
func ceilDiv(a, b int) int {
	if a > 0 {
		return (a + b - 1) / b
	}
	return a / b
}

func clampRow(r, height int) int {
	if r < 0 {
		return 0
	}
	if r >= height {
		return height - 1
	}
	return r
}
