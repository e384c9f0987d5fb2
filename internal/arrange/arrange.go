// Package arrange implements the deterministic layout pass that repositions
// sections before submission so no two overlap, while keeping the user's
// insertion order meaningful.
package arrange

import (
	"math"

	"seatly/internal/layout"
)

// Tunable layout constants. The margin and iteration budget are empirically
// chosen; the budget bounds the relaxation pass, it does not guarantee zero
// overlaps for pathological inputs.
const (
	MinSectionWidth  = 180.0
	MinSectionHeight = 150.0

	OverlapMargin  = 25.0
	MaxRelaxPasses = 15

	MaxColumns = 3

	// MaxCanvasX bounds horizontal pushes during relaxation; a section that
	// would be shoved past it is pushed downward instead.
	MaxCanvasX = 1600.0

	defaultCanvasWidth = 1200.0
)

// gaps returns the horizontal and vertical spacing between grid cells for a
// layout type. Arena-scale layouts get wider gaps.
func gaps(t layout.LayoutType) (h, v float64) {
	switch t {
	case layout.LayoutStadium, layout.LayoutOutdoor,
		layout.LayoutFootballStadium, layout.LayoutBasketballArena:
		return 80, 70
	default:
		// Must clear twice the overlap margin or every freshly gridded
		// layout would trip the relaxation pass.
		return 60, 55
	}
}

// Arrange returns an arranged copy of m. It never fails: if the relaxation
// budget runs out the best layout found so far is returned. Only section
// positions and label anchors change; ids, names, sizes beyond the minimum
// floor, capacities and ticket-type links are preserved.
func Arrange(m *layout.SeatingMap) *layout.SeatingMap {
	out := m.Clone()
	if len(out.Sections) == 0 {
		return out
	}

	// Grow undersized sections to the uniform minimum. Never shrink.
	for i := range out.Sections {
		s := &out.Sections[i]
		s.Width = math.Max(s.Width, MinSectionWidth)
		s.Height = math.Max(s.Height, MinSectionHeight)
	}

	if out.LayoutType.IsArena() {
		placeArena(out)
	} else {
		placeGrid(out)
	}

	relax(out)

	for i := range out.Sections {
		s := &out.Sections[i]
		s.X = math.Max(0, s.X)
		s.Y = math.Max(0, s.Y)
		s.RecomputeLabel()
	}
	return out
}

// Adjusted reports whether any section moved between the two maps. The
// caller surfaces this to the user after submission.
func Adjusted(before, after *layout.SeatingMap) bool {
	if len(before.Sections) != len(after.Sections) {
		return true
	}
	const eps = 0.01
	for i := range before.Sections {
		b, a := &before.Sections[i], &after.Sections[i]
		if math.Abs(b.X-a.X) > eps || math.Abs(b.Y-a.Y) > eps {
			return true
		}
	}
	return false
}

// maxSectionSize returns the widest and tallest section dimensions, used as
// the uniform grid cell size.
func maxSectionSize(m *layout.SeatingMap) (w, h float64) {
	for i := range m.Sections {
		w = math.Max(w, m.Sections[i].Width)
		h = math.Max(h, m.Sections[i].Height)
	}
	return w, h
}

// placeGrid assigns sections to a row/column grid below the stage in
// insertion order.
func placeGrid(m *layout.SeatingMap) {
	hGap, vGap := gaps(m.LayoutType)
	maxW, maxH := maxSectionSize(m)

	availableWidth := m.Stage.Width
	if availableWidth <= 0 {
		availableWidth = defaultCanvasWidth
	}
	cols := int(math.Floor(availableWidth / (maxW + hGap)))
	if cols < 1 {
		cols = 1
	}
	if cols > MaxColumns {
		cols = MaxColumns
	}

	startX := m.Stage.X
	startY := m.Stage.Y + m.Stage.Height + vGap
	for i := range m.Sections {
		row := i / cols
		col := i % cols
		s := &m.Sections[i]
		s.X = startX + float64(col)*(maxW+hGap)
		s.Y = startY + float64(row)*(maxH+vGap)
	}
}

// placeArena partitions sections into three index groups around the field:
// a left column, a bottom row and a right column. The user never specifies
// sides explicitly; this approximates "sections surround the field".
func placeArena(m *layout.SeatingMap) {
	hGap, vGap := gaps(m.LayoutType)
	maxW, maxH := maxSectionSize(m)
	field := m.Stage

	n := len(m.Sections)
	group := (n + 2) / 3

	leftX := math.Max(0, field.X-maxW-hGap)
	rightX := field.X + field.Width + hGap
	bottomY := field.Y + field.Height + vGap

	for i := range m.Sections {
		s := &m.Sections[i]
		switch {
		case i < group: // left of field
			s.X = leftX
			s.Y = field.Y + float64(i)*(maxH+vGap)
		case i < 2*group: // below field
			k := i - group
			s.X = field.X + float64(k)*(maxW+hGap)
			s.Y = bottomY
		default: // right of field
			k := i - 2*group
			s.X = rightX
			s.Y = field.Y + float64(k)*(maxH+vGap)
		}
	}
}

// relax runs the bounded overlap-resolution pass: for every pair (i < j)
// whose margin-inflated rectangles intersect, section j is pushed away from
// section i, horizontally when room remains and downward otherwise. The pass
// repeats until clean or the budget is spent.
func relax(m *layout.SeatingMap) {
	for pass := 0; pass < MaxRelaxPasses; pass++ {
		moved := false
		for i := 0; i < len(m.Sections); i++ {
			for j := i + 1; j < len(m.Sections); j++ {
				a, b := &m.Sections[i], &m.Sections[j]
				if !a.Rect().Intersects(b.Rect(), OverlapMargin) {
					continue
				}
				pushApart(a, b)
				moved = true
			}
		}
		if !moved {
			return
		}
	}
}

func pushApart(a, b *layout.Section) {
	nx := a.X + a.Width + 2*OverlapMargin
	if nx+b.Width <= MaxCanvasX {
		b.X = nx
	} else {
		b.Y = a.Y + a.Height + 2*OverlapMargin
	}
	b.RecomputeLabel()
}

// HasOverlaps reports whether any pair of sections still intersects with the
// safety margin applied. Exposed for validation and tests.
func HasOverlaps(m *layout.SeatingMap) bool {
	for i := 0; i < len(m.Sections); i++ {
		for j := i + 1; j < len(m.Sections); j++ {
			if m.Sections[i].Rect().Intersects(m.Sections[j].Rect(), OverlapMargin) {
				return true
			}
		}
	}
	return false
}
