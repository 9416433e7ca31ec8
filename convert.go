package glyphvg

import "fmt"

// ConverterConfig holds configuration for Converter.
type ConverterConfig struct {
	// MaxSegments is the maximum number of path commands per glyph.
	// Default: 256
	MaxSegments int

	// MaxCoords is the maximum number of coordinates (floats) per glyph.
	// Default: 1024
	MaxCoords int
}

// DefaultConverterConfig returns the default converter configuration.
func DefaultConverterConfig() ConverterConfig {
	return ConverterConfig{
		MaxSegments: DefaultMaxSegments,
		MaxCoords:   DefaultMaxCoords,
	}
}

// Converter turns glyph outlines into path command streams.
//
// A Converter owns one bounded PathBuffer which every conversion resets and
// rewrites, so it is not safe for concurrent use and the PathData returned
// by Convert is only valid until the next call.
type Converter struct {
	buf *PathBuffer
}

// NewConverter creates a converter with the default configuration.
func NewConverter() *Converter {
	return NewConverterWithConfig(DefaultConverterConfig())
}

// NewConverterWithConfig creates a converter with the given configuration.
func NewConverterWithConfig(config ConverterConfig) *Converter {
	return &Converter{buf: NewPathBuffer(config.MaxSegments, config.MaxCoords)}
}

// Config returns the effective configuration.
func (c *Converter) Config() ConverterConfig {
	return ConverterConfig{
		MaxSegments: c.buf.MaxSegments(),
		MaxCoords:   c.buf.MaxCoords(),
	}
}

// Convert converts a whole outline into one path command stream.
//
// The contours must cover the point list exactly. Errors match
// ErrMalformedOutline or ErrCapacityExceeded.
func (c *Converter) Convert(o *Outline) (PathData, error) {
	c.buf.Reset()
	if o == nil {
		return c.buf.Data(), nil
	}

	start := 0
	for i, last := range o.ContourEnds {
		end := last + 1
		if end <= start {
			return PathData{}, &OutlineError{Contour: i, Point: -1,
				Reason: fmt.Sprintf("contour end %d does not follow %d", last, start-1)}
		}
		if end > len(o.Points) {
			return PathData{}, &OutlineError{Contour: i, Point: -1,
				Reason: fmt.Sprintf("contour end %d beyond %d points", last, len(o.Points))}
		}
		if err := c.convertContour(i, o.Points[start:end]); err != nil {
			return PathData{}, err
		}
		start = end
	}

	if start != len(o.Points) {
		return PathData{}, &OutlineError{Contour: len(o.ContourEnds) - 1, Point: -1,
			Reason: fmt.Sprintf("contours cover %d of %d points", start, len(o.Points))}
	}
	return c.buf.Data(), nil
}

// convertContour appends one closed contour to the buffer.
//
// pending counts the points appended since the last emitted command; a
// LineTo consumes 1, a QuadTo 2 and a CubicTo 3.
func (c *Converter) convertContour(contour int, pts []ControlPoint) error {
	if len(pts) == 0 {
		return &OutlineError{Contour: contour, Point: -1, Reason: "empty contour"}
	}

	b := c.buf
	first := b.NumCoords()
	malformed := func(point int, reason string) error {
		return &OutlineError{Contour: contour, Point: point, Reason: reason}
	}

	var lastTag Tag
	pending := 0
	for i, p := range pts {
		pending++
		tag := p.Tag

		switch {
		case i == 0:
			if !tag.OnCurve() {
				return malformed(i, "contour starts off-curve")
			}
			if err := b.command(CmdMoveTo); err != nil {
				return err
			}
			pending = 0

		case tag.OnCurve():
			cmd, want := CmdLineTo, 1
			if !lastTag.OnCurve() {
				cmd, want = CmdQuadTo, 2
				if lastTag.Cubic() {
					cmd, want = CmdCubicTo, 3
				}
			}
			if pending != want {
				return malformed(i, fmt.Sprintf("%v needs %d points, have %d", cmd, want, pending))
			}
			if err := b.command(cmd); err != nil {
				return err
			}
			pending = 0

		case tag.Cubic():
			if !lastTag.OnCurve() && !lastTag.Cubic() {
				return malformed(i, "cubic control point follows quadratic control point")
			}
			if pending > 2 {
				return malformed(i, "more than two consecutive cubic control points")
			}

		default:
			// Two quadratic control points in a row imply an on-curve
			// point halfway between them.
			if !lastTag.OnCurve() {
				if lastTag.Cubic() {
					return malformed(i, "quadratic control point follows cubic control point")
				}
				if pending != 2 {
					return malformed(i, fmt.Sprintf("QuadTo needs 2 points, have %d", pending))
				}
				if err := b.command(CmdQuadTo); err != nil {
					return err
				}
				n := b.NumCoords()
				x := (b.coord(n-2) + FixedToFloat(p.X)) * 0.5
				y := (b.coord(n-1) + FixedToFloat(p.Y)) * 0.5
				if err := b.point(x, y); err != nil {
					return err
				}
				pending = 1
			}
		}

		lastTag = tag
		if err := b.point(FixedToFloat(p.X), FixedToFloat(p.Y)); err != nil {
			return err
		}
	}

	// A contour ending on-curve is closed by the final ClosePath. One that
	// ends off-curve needs a curve back to its start point.
	if !lastTag.OnCurve() {
		pending++
		cmd, want := CmdQuadTo, 2
		if lastTag.Cubic() {
			cmd, want = CmdCubicTo, 3
		}
		if pending != want {
			return malformed(len(pts)-1, fmt.Sprintf("closing %v needs %d points, have %d", cmd, want, pending))
		}
		if err := b.command(cmd); err != nil {
			return err
		}
		if err := b.point(b.coord(first), b.coord(first+1)); err != nil {
			return err
		}
	}

	return b.command(CmdClosePath)
}
