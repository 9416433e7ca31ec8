package glyphvg

import (
	"errors"

	"golang.org/x/image/math/fixed"
)

// errNoMoveTo is returned when a segment stream draws before its first MoveTo.
var errNoMoveTo = errors.New("glyphvg: segment before MoveTo")

// OutlineBuilder rebuilds a tagged Outline from a segment stream, for font
// libraries that expose MoveTo/LineTo/QuadTo/CubeTo segments rather than
// raw control points.
//
// The zero value is ready to use. Reset reuses the allocated storage.
type OutlineBuilder struct {
	outline Outline

	// start is the index of the open contour's first point.
	start int
	open  bool
	err   error
}

// Reset clears the builder for a new glyph.
func (b *OutlineBuilder) Reset() {
	b.outline.Reset()
	b.open = false
	b.err = nil
}

// MoveTo closes the current contour, if any, and starts a new one at p.
func (b *OutlineBuilder) MoveTo(p fixed.Point26_6) {
	b.closeContour()
	b.start = len(b.outline.Points)
	b.open = true
	b.add(p, TagOnCurve)
}

// LineTo adds an on-curve point.
func (b *OutlineBuilder) LineTo(p fixed.Point26_6) {
	if !b.check() {
		return
	}
	b.add(p, TagOnCurve)
}

// QuadTo adds a quadratic control point and an on-curve end point.
func (b *OutlineBuilder) QuadTo(c, p fixed.Point26_6) {
	if !b.check() {
		return
	}
	b.add(c, 0)
	b.add(p, TagOnCurve)
}

// CubeTo adds two cubic control points and an on-curve end point.
func (b *OutlineBuilder) CubeTo(c1, c2, p fixed.Point26_6) {
	if !b.check() {
		return
	}
	b.add(c1, TagCubic)
	b.add(c2, TagCubic)
	b.add(p, TagOnCurve)
}

// Outline closes the last contour and returns the outline. The result is
// owned by the builder and valid until the next Reset.
func (b *OutlineBuilder) Outline() (*Outline, error) {
	b.closeContour()
	if b.err != nil {
		return nil, b.err
	}
	return &b.outline, nil
}

func (b *OutlineBuilder) check() bool {
	if !b.open && b.err == nil {
		b.err = errNoMoveTo
	}
	return b.err == nil
}

func (b *OutlineBuilder) add(p fixed.Point26_6, tag Tag) {
	b.outline.Points = append(b.outline.Points, ControlPoint{X: p.X, Y: p.Y, Tag: tag})
}

// closeContour records the end of the open contour. An explicit final
// point that returns to the start is dropped; ClosePath covers it.
func (b *OutlineBuilder) closeContour() {
	if !b.open {
		return
	}
	b.open = false

	pts := b.outline.Points
	last := len(pts) - 1
	if last > b.start {
		first, end := pts[b.start], pts[last]
		if end.Tag.OnCurve() && end.X == first.X && end.Y == first.Y {
			b.outline.Points = pts[:last]
			last--
		}
	}
	b.outline.ContourEnds = append(b.outline.ContourEnds, last)
}
