// path_builder.go

package glyphvg

// circleK is the control point distance for a quarter circle of radius 1
// approximated by a cubic Bezier: 4/3 * (sqrt(2) - 1).
const circleK = 0.5522847498307936

// PathBuilder provides a fluent interface for building simple shapes into
// a bounded PathBuffer. All methods return the builder for chaining.
//
// The first error (typically ErrCapacityExceeded) sticks: later calls are
// ignored and Data returns it.
type PathBuilder struct {
	buf *PathBuffer
	err error
}

// BuildPath starts a new path builder with the default capacities.
func BuildPath() *PathBuilder {
	return &PathBuilder{buf: NewPathBuffer(DefaultMaxSegments, DefaultMaxCoords)}
}

// BuildPathInto starts a path builder that writes into buf after resetting it.
func BuildPathInto(buf *PathBuffer) *PathBuilder {
	buf.Reset()
	return &PathBuilder{buf: buf}
}

func (b *PathBuilder) emit(c Command, pts ...float32) *PathBuilder {
	if b.err != nil {
		return b
	}
	if b.err = b.buf.command(c); b.err != nil {
		return b
	}
	for i := 0; i+1 < len(pts); i += 2 {
		if b.err = b.buf.point(pts[i], pts[i+1]); b.err != nil {
			return b
		}
	}
	return b
}

// MoveTo moves to a new position.
func (b *PathBuilder) MoveTo(x, y float32) *PathBuilder {
	return b.emit(CmdMoveTo, x, y)
}

// LineTo draws a line to a position.
func (b *PathBuilder) LineTo(x, y float32) *PathBuilder {
	return b.emit(CmdLineTo, x, y)
}

// QuadTo draws a quadratic Bezier curve.
func (b *PathBuilder) QuadTo(cx, cy, x, y float32) *PathBuilder {
	return b.emit(CmdQuadTo, cx, cy, x, y)
}

// CubicTo draws a cubic Bezier curve.
func (b *PathBuilder) CubicTo(c1x, c1y, c2x, c2y, x, y float32) *PathBuilder {
	return b.emit(CmdCubicTo, c1x, c1y, c2x, c2y, x, y)
}

// Close closes the current subpath.
func (b *PathBuilder) Close() *PathBuilder {
	return b.emit(CmdClosePath)
}

// Rect adds a rectangle to the path.
func (b *PathBuilder) Rect(x, y, w, h float32) *PathBuilder {
	return b.MoveTo(x, y).
		LineTo(x+w, y).
		LineTo(x+w, y+h).
		LineTo(x, y+h).
		Close()
}

// RoundRect adds a rectangle with elliptical corners of radii rx, ry.
func (b *PathBuilder) RoundRect(x, y, w, h, rx, ry float32) *PathBuilder {
	// Clamp radii
	rx = min(max(rx, 0), w/2)
	ry = min(max(ry, 0), h/2)
	kx := circleK * rx
	ky := circleK * ry

	return b.MoveTo(x+rx, y).
		LineTo(x+w-rx, y).
		CubicTo(x+w-rx+kx, y, x+w, y+ry-ky, x+w, y+ry).
		LineTo(x+w, y+h-ry).
		CubicTo(x+w, y+h-ry+ky, x+w-rx+kx, y+h, x+w-rx, y+h).
		LineTo(x+rx, y+h).
		CubicTo(x+rx-kx, y+h, x, y+h-ry+ky, x, y+h-ry).
		LineTo(x, y+ry).
		CubicTo(x, y+ry-ky, x+rx-kx, y, x+rx, y).
		Close()
}

// Ellipse adds an ellipse centered at (cx, cy) with the given width and height.
func (b *PathBuilder) Ellipse(cx, cy, w, h float32) *PathBuilder {
	rx, ry := w/2, h/2
	ox := rx * circleK
	oy := ry * circleK

	return b.MoveTo(cx+rx, cy).
		CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry).
		CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy).
		CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry).
		CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy).
		Close()
}

// Circle adds a circle to the path.
func (b *PathBuilder) Circle(cx, cy, r float32) *PathBuilder {
	return b.Ellipse(cx, cy, 2*r, 2*r)
}

// Err returns the first error encountered, if any.
func (b *PathBuilder) Err() error {
	return b.err
}

// Data returns the built path, or the first error encountered.
// The result aliases the builder's buffer.
func (b *PathBuilder) Data() (PathData, error) {
	if b.err != nil {
		return PathData{}, b.err
	}
	return b.buf.Data(), nil
}
