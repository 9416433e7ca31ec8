package glyphvg

import (
	"slices"

	"golang.org/x/image/math/fixed"
)

// Tag holds the per-point flags of an outline control point.
type Tag uint8

const (
	// TagOnCurve marks a point the outline passes through.
	TagOnCurve Tag = 1 << 0

	// TagCubic marks an off-curve point as a cubic control point.
	// It has no meaning for on-curve points.
	TagCubic Tag = 1 << 1
)

// OnCurve reports whether the point lies on the outline.
func (t Tag) OnCurve() bool {
	return t&TagOnCurve != 0
}

// Cubic reports whether an off-curve point is a cubic control point.
func (t Tag) Cubic() bool {
	return t&TagCubic != 0
}

// ControlPoint is one point of a glyph outline in 26.6 fixed point.
type ControlPoint struct {
	X, Y fixed.Int26_6
	Tag  Tag
}

// On returns an on-curve control point.
func On(x, y fixed.Int26_6) ControlPoint {
	return ControlPoint{X: x, Y: y, Tag: TagOnCurve}
}

// OffQuad returns an off-curve quadratic control point.
func OffQuad(x, y fixed.Int26_6) ControlPoint {
	return ControlPoint{X: x, Y: y}
}

// OffCubic returns an off-curve cubic control point.
func OffCubic(x, y fixed.Int26_6) ControlPoint {
	return ControlPoint{X: x, Y: y, Tag: TagCubic}
}

// Outline is the raw outline of one glyph: a flat point list split into
// contours by ContourEnds.
//
// ContourEnds[i] is the index of the last point of contour i. The indices
// must be strictly increasing and the last one must be len(Points)-1.
//
// Coordinates are pixels at the provider's size, relative to the glyph
// origin on the baseline, with y pointing up as in the font.
//
// Outlines returned by a FontProvider are transient: they are only valid
// until the next call on the same provider.
type Outline struct {
	Points      []ControlPoint
	ContourEnds []int
}

// NumPoints returns the total number of points in the outline.
func (o *Outline) NumPoints() int {
	return len(o.Points)
}

// NumContours returns the number of contours in the outline.
func (o *Outline) NumContours() int {
	return len(o.ContourEnds)
}

// IsEmpty reports whether the outline has no contours (e.g. a space).
func (o *Outline) IsEmpty() bool {
	return o == nil || len(o.ContourEnds) == 0
}

// Contour returns the points of contour i.
// It returns nil if the contour bounds are inconsistent.
func (o *Outline) Contour(i int) []ControlPoint {
	if i < 0 || i >= len(o.ContourEnds) {
		return nil
	}
	start := 0
	if i > 0 {
		start = o.ContourEnds[i-1] + 1
	}
	end := o.ContourEnds[i] + 1
	if start >= end || end > len(o.Points) {
		return nil
	}
	return o.Points[start:end]
}

// Reset clears the outline, keeping the allocated storage.
func (o *Outline) Reset() {
	o.Points = o.Points[:0]
	o.ContourEnds = o.ContourEnds[:0]
}

// AddContour appends pts as a new closed contour.
//
// Font tables may start a contour anywhere, including at a control point.
// The contour is rotated to start at its first on-curve point. A quadratic
// contour without any on-curve point starts at the implied point between
// its last and first control points, floored onto the 26.6 grid.
func (o *Outline) AddContour(pts []ControlPoint) {
	if len(pts) == 0 {
		return
	}
	start := slices.IndexFunc(pts, func(p ControlPoint) bool { return p.Tag.OnCurve() })
	switch {
	case start > 0:
		o.Points = append(o.Points, pts[start:]...)
		o.Points = append(o.Points, pts[:start]...)
	case start < 0 && !pts[0].Tag.Cubic():
		first, last := pts[0], pts[len(pts)-1]
		o.Points = append(o.Points, On((first.X+last.X)>>1, (first.Y+last.Y)>>1))
		o.Points = append(o.Points, pts...)
	default:
		o.Points = append(o.Points, pts...)
	}
	o.ContourEnds = append(o.ContourEnds, len(o.Points)-1)
}
