package app

// Viewport tracks which slice of the channel list the sidebar shows, as
// three non-negative offsets: Top is the list index of the first visible
// row, Upside the rows between the selection and the top of the window,
// Downside the rows between the selection and the bottom. Top+Upside equals
// the selected index whenever a selection exists. The engine pairs every
// transition with the matching statelist move.
type Viewport struct {
	Top      int
	Upside   int
	Downside int
}

// OnUp transitions the window for a selection moving up. Called with the
// current selected index before the paired Previous call; selected == 0
// means the selection is about to wrap to the bottom of the list.
func (v *Viewport) OnUp(selected, length int) {
	if selected == 0 {
		// Jump the window to the tail so the new (last) selection is the
		// bottom visible row. When the list is shorter than the window the
		// tail is the head; Top clamps at 0 and the slack stays below the
		// selection so all three offsets remain non-negative.
		span := v.Upside + v.Downside
		v.Top = length - span - 1
		if v.Top < 0 {
			v.Top = 0
		}
		v.Upside = (length - 1) - v.Top
		v.Downside = span - v.Upside
		return
	}
	if v.Upside == 0 {
		if v.Top > 0 {
			v.Top--
		}
		return
	}
	v.Upside--
	v.Downside++
}

// OnDown transitions the window for a selection moving down; called before
// the paired Next call. When the move wraps to index 0 the caller follows
// with SnapTop.
func (v *Viewport) OnDown() {
	if v.Downside == 0 {
		v.Top++
		return
	}
	v.Upside++
	v.Downside--
}

// SnapTop rewinds the window to the head of the list after a Next call that
// wrapped the selection back to index 0.
func (v *Viewport) SnapTop() {
	v.Top = 0
	v.Downside = v.Upside
	v.Upside = 0
}

// Rederive recomputes the triple from scratch for moves the incremental
// transitions do not cover: window resizes and direct selection jumps.
// height is the number of visible rows; selected < 0 means no selection.
func (v *Viewport) Rederive(selected, height int) {
	if height <= 0 || selected < 0 {
		v.Top, v.Upside, v.Downside = 0, 0, 0
		return
	}
	if selected < v.Top {
		v.Top = selected
	}
	if selected > v.Top+height-1 {
		v.Top = selected - height + 1
	}
	v.Upside = selected - v.Top
	v.Downside = height - 1 - v.Upside
}
