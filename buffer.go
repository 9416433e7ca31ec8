package glyphvg

// Default capacities of a PathBuffer. A glyph that needs more is reported
// with ErrCapacityExceeded instead of growing the buffer.
const (
	DefaultMaxSegments = 256
	DefaultMaxCoords   = 1024
)

// PathBuffer is a bounded command and coordinate arena. Its storage is
// allocated once; appends never reallocate.
//
// PathBuffer is not safe for concurrent use.
type PathBuffer struct {
	commands []Command
	coords   []float32
}

// NewPathBuffer creates a buffer holding at most maxSegments commands and
// maxCoords coordinates (floats, two per point).
// Non-positive values select the defaults.
func NewPathBuffer(maxSegments, maxCoords int) *PathBuffer {
	if maxSegments <= 0 {
		maxSegments = DefaultMaxSegments
	}
	if maxCoords <= 0 {
		maxCoords = DefaultMaxCoords
	}
	return &PathBuffer{
		commands: make([]Command, 0, maxSegments),
		coords:   make([]float32, 0, maxCoords),
	}
}

// Reset empties the buffer.
func (b *PathBuffer) Reset() {
	b.commands = b.commands[:0]
	b.coords = b.coords[:0]
}

// MaxSegments returns the command capacity.
func (b *PathBuffer) MaxSegments() int {
	return cap(b.commands)
}

// MaxCoords returns the coordinate capacity.
func (b *PathBuffer) MaxCoords() int {
	return cap(b.coords)
}

// NumSegments returns the number of commands written.
func (b *PathBuffer) NumSegments() int {
	return len(b.commands)
}

// NumCoords returns the number of coordinates written.
func (b *PathBuffer) NumCoords() int {
	return len(b.coords)
}

// Data returns the buffered path. The result aliases the buffer and is
// only valid until the next Reset.
func (b *PathBuffer) Data() PathData {
	return PathData{Commands: b.commands, Coords: b.coords}
}

func (b *PathBuffer) command(c Command) error {
	if len(b.commands) == cap(b.commands) {
		return &CapacityError{Resource: "segments", Max: cap(b.commands)}
	}
	b.commands = append(b.commands, c)
	return nil
}

func (b *PathBuffer) point(x, y float32) error {
	if len(b.coords)+2 > cap(b.coords) {
		return &CapacityError{Resource: "coords", Max: cap(b.coords)}
	}
	b.coords = append(b.coords, x, y)
	return nil
}

// coord returns the coordinate at index i.
func (b *PathBuffer) coord(i int) float32 {
	return b.coords[i]
}
