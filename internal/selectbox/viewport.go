package selectbox

// Viewport is the scroll window over the rendered option rows.
type Viewport struct {
	Offset int
	Height int
}

// EnsureVisible scrolls by the smallest amount that brings the rows
// [top, top+height) fully into view. A zero-height viewport shows every row
// and never scrolls.
func (v *Viewport) EnsureVisible(top, height int) {
	if v.Height <= 0 {
		v.Offset = 0
		return
	}
	bottom := top + height
	viewBottom := v.Offset + v.Height
	if bottom > viewBottom {
		v.Offset += bottom - viewBottom
	} else if top < v.Offset {
		v.Offset += top - v.Offset
	}
}

// Clamp keeps the window inside a list of total rows.
func (v *Viewport) Clamp(total int) {
	if v.Height <= 0 {
		v.Offset = 0
		return
	}
	if limit := total - v.Height; v.Offset > limit {
		v.Offset = limit
	}
	if v.Offset < 0 {
		v.Offset = 0
	}
}

// Window returns the half-open range of rows currently visible.
func (v Viewport) Window(total int) (int, int) {
	if v.Height <= 0 {
		return 0, total
	}
	start := min(v.Offset, total)
	return start, min(start+v.Height, total)
}
