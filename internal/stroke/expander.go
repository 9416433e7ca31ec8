package stroke

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// LineCap specifies the shape of open subpath ends.
type LineCap int

const (
	// LineCapButt ends the stroke flat at the endpoint.
	LineCapButt LineCap = iota
	// LineCapRound ends the stroke with a half circle.
	LineCapRound
	// LineCapSquare extends the stroke by half its width past the endpoint.
	LineCapSquare
)

// LineJoin specifies the shape of corners between segments.
type LineJoin int

const (
	// LineJoinMiter extends the outer edges until they meet, falling back
	// to a bevel past the miter limit.
	LineJoinMiter LineJoin = iota
	// LineJoinRound rounds the outer corner.
	LineJoinRound
	// LineJoinBevel cuts the outer corner straight.
	LineJoinBevel
)

// Style describes how a path is stroked.
type Style struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
}

// DefaultStyle returns a one unit wide stroke with butt caps and miter
// joins limited to 4.
func DefaultStyle() Style {
	return Style{
		Width:      1,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4,
	}
}

// maxDepth bounds curve subdivision.
const maxDepth = 16

// minSegmentSq is the squared length below which segments are dropped.
const minSegmentSq = 1e-10

// Expander converts stroked paths to fill outlines.
//
// An Expander keeps its buffers between calls and is not safe for
// concurrent use.
type Expander struct {
	style     Style
	tolerance float64

	fwd, bwd, out path.Data
	ends          []int

	start, last         vec.Vec2
	startTan, startNorm vec.Vec2
	lastTan, lastNorm   vec.Vec2

	// Joins flatter than this are replaced by a plain line.
	joinThresh float64
}

// NewExpander creates an expander for style with a flattening tolerance
// of 0.25.
func NewExpander(style Style) *Expander {
	return &Expander{
		style:     style,
		tolerance: 0.25,
	}
}

// SetTolerance sets the maximum distance between a curve and the lines it
// is flattened to. Non-positive values are ignored.
func (e *Expander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
	}
}

// Expand returns the outline of p stroked with the expander's style.
// The returned data is overwritten by the next call. A stroke without a
// positive width has an empty outline.
func (e *Expander) Expand(p path.Path) *path.Data {
	e.reset()
	if !(e.style.Width > 0) {
		return &e.out
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			e.finish()
			e.start, e.last = pts[0], pts[0]
		case path.CmdLineTo:
			e.lineTo(pts[0])
		case path.CmdQuadTo:
			e.flattenQuad(e.last, pts[0], pts[1], 0)
		case path.CmdCubeTo:
			e.flattenCubic(e.last, pts[0], pts[1], pts[2], 0)
		case path.CmdClose:
			e.lineTo(e.start)
			e.finishClosed()
			e.last = e.start
		}
	}
	e.finish()
	return &e.out
}

func (e *Expander) reset() {
	truncate(&e.fwd)
	truncate(&e.bwd)
	truncate(&e.out)
	e.start, e.last = vec.Vec2{}, vec.Vec2{}
	e.startTan, e.startNorm = vec.Vec2{}, vec.Vec2{}
	e.lastTan, e.lastNorm = vec.Vec2{}, vec.Vec2{}
	e.joinThresh = 2 * e.tolerance / e.style.Width
}

func truncate(d *path.Data) {
	d.Cmds = d.Cmds[:0]
	d.Coords = d.Coords[:0]
}

// normal returns the left normal of tan scaled to half the stroke width.
func (e *Expander) normal(tan vec.Vec2) vec.Vec2 {
	return tan.Rot90().Mul(0.5 * e.style.Width / tan.Length())
}

func (e *Expander) lineTo(p vec.Vec2) {
	tan := p.Sub(e.last)
	if tan.Dot(tan) <= minSegmentSq {
		return
	}
	e.join(tan)
	e.lastTan = tan

	norm := e.normal(tan)
	e.fwd.LineTo(p.Sub(norm))
	e.bwd.LineTo(p.Add(norm))
	e.last = p
	e.lastNorm = norm
}

// join connects the segment starting at e.last with tangent tan to the
// previous one, or starts both sides when it is the first.
func (e *Expander) join(tan vec.Vec2) {
	norm := e.normal(tan)
	p0 := e.last

	if len(e.fwd.Cmds) == 0 {
		e.fwd.MoveTo(p0.Sub(norm))
		e.bwd.MoveTo(p0.Add(norm))
		e.startTan = tan
		e.startNorm = norm
		return
	}

	ab, cd := e.lastTan, tan
	c := cross(ab, cd)
	dot := ab.Dot(cd)
	hypot := math.Hypot(c, dot)

	if dot > 0 && math.Abs(c) < hypot*e.joinThresh {
		e.fwd.LineTo(p0.Sub(norm))
		e.bwd.LineTo(p0.Add(norm))
		return
	}

	switch e.style.Join {
	case LineJoinMiter:
		limit := e.style.MiterLimit
		if 2*hypot < (hypot+dot)*limit*limit {
			e.miter(p0, norm, ab, cd, c)
		}
	case LineJoinRound:
		e.roundJoin(p0, norm, c, dot)
		return
	}
	e.fwd.LineTo(p0.Sub(norm))
	e.bwd.LineTo(p0.Add(norm))
}

// miter adds the miter point on the outer side of the corner at p0 and
// passes the inner side through p0.
func (e *Expander) miter(p0, norm, ab, cd vec.Vec2, c float64) {
	lastNorm := e.normal(ab)
	outer, inner := &e.fwd, &e.bwd
	if c < 0 {
		outer, inner = inner, outer
		lastNorm, norm = lastNorm.Neg(), norm.Neg()
	}
	before := p0.Sub(lastNorm)
	after := p0.Sub(norm)
	h := cross(ab, after.Sub(before)) / c
	outer.LineTo(after.Sub(cd.Mul(h)))
	inner.LineTo(p0)
}

// roundJoin arcs the outer side from the previous normal to norm.
func (e *Expander) roundJoin(p0, norm vec.Vec2, c, dot float64) {
	lastNorm := e.normal(e.lastTan)
	angle := math.Atan2(c, dot)
	if angle > 0 {
		e.bwd.LineTo(p0.Add(norm))
		arc(&e.fwd, p0, lastNorm.Neg(), angle)
	} else {
		e.fwd.LineTo(p0.Sub(norm))
		arc(&e.bwd, p0, lastNorm, angle)
	}
}

// finish emits an open subpath with its caps.
func (e *Expander) finish() {
	if len(e.fwd.Cmds) == 0 {
		return
	}
	e.out.Cmds = append(e.out.Cmds, e.fwd.Cmds...)
	e.out.Coords = append(e.out.Coords, e.fwd.Coords...)

	e.lineCap(e.last, e.lastNorm.Neg(), false)
	e.appendReversed(&e.bwd)
	e.lineCap(e.start, e.startNorm, true)

	truncate(&e.fwd)
	truncate(&e.bwd)
}

// finishClosed emits a closed subpath as two loops.
func (e *Expander) finishClosed() {
	if len(e.fwd.Cmds) == 0 {
		return
	}
	e.join(e.startTan)

	e.out.Cmds = append(e.out.Cmds, e.fwd.Cmds...)
	e.out.Coords = append(e.out.Coords, e.fwd.Coords...)
	e.out.Close()

	e.out.MoveTo(e.bwd.Coords[len(e.bwd.Coords)-1])
	e.appendReversed(&e.bwd)
	e.out.Close()

	truncate(&e.fwd)
	truncate(&e.bwd)
}

// lineCap joins the two sides at center. norm points from center to the
// current point.
func (e *Expander) lineCap(center, norm vec.Vec2, closePath bool) {
	switch e.style.Cap {
	case LineCapRound:
		arc(&e.out, center, norm, math.Pi)
		if closePath {
			e.out.Close()
		}
	case LineCapSquare:
		// In the frame of norm, x runs across the stroke and y along it.
		at := func(x, y float64) vec.Vec2 {
			return center.Add(norm.Mul(x)).Add(norm.Rot90().Mul(y))
		}
		e.out.LineTo(at(1, 1))
		e.out.LineTo(at(-1, 1))
		if closePath {
			e.out.Close()
		} else {
			e.out.LineTo(at(-1, 0))
		}
	default:
		if closePath {
			e.out.Close()
		} else {
			e.out.LineTo(center.Sub(norm))
		}
	}
}

// appendReversed appends d walked backwards, starting from its last point.
func (e *Expander) appendReversed(d *path.Data) {
	e.ends = e.ends[:0]
	n := 0
	for _, c := range d.Cmds {
		n += c.NumPoints()
		e.ends = append(e.ends, n)
	}

	for i := len(d.Cmds) - 1; i >= 1; i-- {
		prev := d.Coords[e.ends[i-1]-1]
		pts := d.Coords[e.ends[i-1]:e.ends[i]]
		switch d.Cmds[i] {
		case path.CmdLineTo:
			e.out.LineTo(prev)
		case path.CmdQuadTo:
			e.out.QuadTo(pts[0], prev)
		case path.CmdCubeTo:
			e.out.CubeTo(pts[1], pts[0], prev)
		}
	}
}

// arc appends a circular arc around center, starting at center+norm and
// turning by angle radians, counter-clockwise when positive.
func arc(out *path.Data, center, norm vec.Vec2, angle float64) {
	n := max(1, int(math.Ceil(math.Abs(angle)/(math.Pi/2))))
	step := angle / float64(n)
	a := math.Atan2(norm.Y, norm.X)
	r := norm.Length()
	for range n {
		arcSegment(out, center, r, a, a+step)
		a += step
	}
}

// arcSegment appends the cubic approximation of an arc of at most a
// quarter turn from angle a0 to a1.
func arcSegment(out *path.Data, center vec.Vec2, r, a0, a1 float64) {
	da := a1 - a0
	t := math.Tan(da / 2)
	alpha := math.Sin(da) * (math.Sqrt(4+3*t*t) - 1) / 3

	sin0, cos0 := math.Sincos(a0)
	sin1, cos1 := math.Sincos(a1)
	p1 := vec.Vec2{X: center.X + r*cos0, Y: center.Y + r*sin0}
	p2 := vec.Vec2{X: center.X + r*cos1, Y: center.Y + r*sin1}
	c1 := vec.Vec2{X: p1.X - alpha*r*sin0, Y: p1.Y + alpha*r*cos0}
	c2 := vec.Vec2{X: p2.X + alpha*r*sin1, Y: p2.Y - alpha*r*cos1}
	out.CubeTo(c1, c2, p2)
}

func (e *Expander) flattenQuad(p0, p1, p2 vec.Vec2, depth int) {
	if depth >= maxDepth || distanceToLine(p1, p0, p2) < e.tolerance {
		e.lineTo(p2)
		return
	}
	q0 := vec.Middle(p0, p1)
	q1 := vec.Middle(p1, p2)
	q2 := vec.Middle(q0, q1)
	e.flattenQuad(p0, q0, q2, depth+1)
	e.flattenQuad(q2, q1, p2, depth+1)
}

func (e *Expander) flattenCubic(p0, p1, p2, p3 vec.Vec2, depth int) {
	d := max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if depth >= maxDepth || d < e.tolerance {
		e.lineTo(p3)
		return
	}
	q0 := vec.Middle(p0, p1)
	q1 := vec.Middle(p1, p2)
	q2 := vec.Middle(p2, p3)
	r0 := vec.Middle(q0, q1)
	r1 := vec.Middle(q1, q2)
	s := vec.Middle(r0, r1)
	e.flattenCubic(p0, q0, r0, s, depth+1)
	e.flattenCubic(s, r1, q2, p3, depth+1)
}

// distanceToLine returns the distance from p to the segment a-b.
func distanceToLine(p, a, b vec.Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < minSegmentSq {
		return p.Sub(a).Length()
	}
	t := p.Sub(a).Dot(ab) / l2
	switch {
	case t < 0:
		return p.Sub(a).Length()
	case t > 1:
		return p.Sub(b).Length()
	}
	return p.Sub(a.Add(ab.Mul(t))).Length()
}

// cross returns the z component of the 3D cross product of a and b.
func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}
