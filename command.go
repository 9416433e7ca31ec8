package glyphvg

// Command is one vector path command.
type Command uint8

const (
	// CmdMoveTo starts a new subpath at the next coordinate pair.
	CmdMoveTo Command = iota

	// CmdLineTo draws a line to the next coordinate pair.
	CmdLineTo

	// CmdQuadTo draws a quadratic Bezier curve: control point, end point.
	CmdQuadTo

	// CmdCubicTo draws a cubic Bezier curve: two control points, end point.
	CmdCubicTo

	// CmdClosePath closes the current subpath back to its start.
	CmdClosePath
)

// String returns a string representation of the command.
func (c Command) String() string {
	switch c {
	case CmdMoveTo:
		return "MoveTo"
	case CmdLineTo:
		return "LineTo"
	case CmdQuadTo:
		return "QuadTo"
	case CmdCubicTo:
		return "CubicTo"
	case CmdClosePath:
		return "ClosePath"
	default:
		return "Unknown"
	}
}

// Pairs returns the number of coordinate pairs the command consumes.
// It returns -1 for unknown commands.
func (c Command) Pairs() int {
	switch c {
	case CmdMoveTo, CmdLineTo:
		return 1
	case CmdQuadTo:
		return 2
	case CmdCubicTo:
		return 3
	case CmdClosePath:
		return 0
	default:
		return -1
	}
}

// PathData is a format-agnostic path: a command stream and the flat
// x, y coordinate list the commands consume in order.
type PathData struct {
	Commands []Command
	Coords   []float32
}

// Len returns the number of commands.
func (d PathData) Len() int {
	return len(d.Commands)
}

// IsEmpty reports whether the path has no commands.
func (d PathData) IsEmpty() bool {
	return len(d.Commands) == 0
}

// Validate checks that the coordinates match what the commands consume.
func (d PathData) Validate() error {
	pairs := 0
	for _, c := range d.Commands {
		n := c.Pairs()
		if n < 0 {
			return ErrInvalidPathData
		}
		pairs += n
	}
	if 2*pairs != len(d.Coords) {
		return ErrInvalidPathData
	}
	return nil
}

// Clone returns a deep copy that does not alias d.
func (d PathData) Clone() PathData {
	clone := PathData{
		Commands: make([]Command, len(d.Commands)),
		Coords:   make([]float32, len(d.Coords)),
	}
	copy(clone.Commands, d.Commands)
	copy(clone.Coords, d.Coords)
	return clone
}

// Walk calls fn for each command with the coordinates it consumes.
// It stops at the first error returned by fn.
func (d PathData) Walk(fn func(c Command, pts []float32) error) error {
	if err := d.Validate(); err != nil {
		return err
	}
	i := 0
	for _, c := range d.Commands {
		n := 2 * c.Pairs()
		if err := fn(c, d.Coords[i:i+n]); err != nil {
			return err
		}
		i += n
	}
	return nil
}

// PathHandle is an opaque reference to a path owned by a PathBackend.
type PathHandle uint32

// NoPath is the handle of a glyph that has no visible outline.
const NoPath PathHandle = 0

// Capability is a set of operations a backend path supports.
type Capability uint32

// Path capabilities.
const (
	CapAppendFrom Capability = 1 << iota
	CapAppendTo
	CapModify
	CapTransformFrom
	CapTransformTo
	CapInterpolateFrom
	CapInterpolateTo
	CapPathLength
	CapPointAlongPath
	CapTangentAlongPath
	CapPathBounds
	CapPathTransformedBounds

	// CapAll is every capability.
	CapAll Capability = 1<<iota - 1
)

// CapsReadOnly is the set removed from compiled glyph paths. Cached paths
// are shared by every draw and must not be appended to, modified,
// transformed or interpolated as a source or destination.
const CapsReadOnly = CapAppendFrom | CapAppendTo | CapModify |
	CapTransformFrom | CapTransformTo |
	CapInterpolateFrom | CapInterpolateTo

// Has reports whether all bits of other are set in c.
func (c Capability) Has(other Capability) bool {
	return c&other == other
}
