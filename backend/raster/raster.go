// Package raster is a CPU vector path backend built on golang.org/x/image/vector.
//
// Paths live in a handle table guarded by a mutex. Each path carries a set
// of capability bits; compiled glyphs lose the mutating ones, which makes
// them read-only while still allowing Fill, Stroke and the bounds queries.
// Strokes are expanded into a scratch outline and filled.
//
// Importing the package registers it with the backend registry under
// backend.BackendRaster.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"sync"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"github.com/gogpu/glyphvg"
	"github.com/gogpu/glyphvg/backend"
	"github.com/gogpu/glyphvg/internal/stroke"
)

func init() {
	backend.Register(backend.BackendRaster, func() backend.PathRenderer {
		return New()
	})
}

// Errors returned by Backend.
var (
	// ErrInvalidHandle is returned for handles that were never created or
	// have already been destroyed.
	ErrInvalidHandle = errors.New("raster: invalid path handle")

	// ErrCapability is returned when a path lacks the capability an
	// operation needs.
	ErrCapability = errors.New("raster: missing path capability")

	// ErrStrokeWidth is returned by Stroke for widths that are not positive.
	ErrStrokeWidth = errors.New("raster: invalid stroke width")
)

var _ backend.PathRenderer = (*Backend)(nil)

// slogger returns the shared glyphvg logger.
func slogger() *slog.Logger { return glyphvg.Logger() }

// Rect is an axis-aligned rectangle in path coordinates.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// Width returns the width of the rectangle.
func (r Rect) Width() float32 { return r.MaxX - r.MinX }

// Height returns the height of the rectangle.
func (r Rect) Height() float32 { return r.MaxY - r.MinY }

type path struct {
	data glyphvg.PathData
	caps glyphvg.Capability
}

// Backend implements backend.PathRenderer.
//
// All methods are safe for concurrent use. Fills and strokes are
// serialized since they share one rasterizer.
type Backend struct {
	mu    sync.Mutex
	next  glyphvg.PathHandle
	paths map[glyphvg.PathHandle]*path
	rast  vector.Rasterizer
}

// New creates an empty backend.
func New() *Backend {
	return &Backend{
		paths: make(map[glyphvg.PathHandle]*path),
	}
}

// Name implements backend.PathRenderer.
func (b *Backend) Name() string {
	return backend.BackendRaster
}

// CreatePath copies data into a new path with every capability.
func (b *Backend) CreatePath(data glyphvg.PathData) (glyphvg.PathHandle, error) {
	if err := data.Validate(); err != nil {
		return glyphvg.NoPath, fmt.Errorf("raster: create path: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.insert(data.Clone()), nil
}

// insert stores data under a fresh handle. b.mu must be held.
func (b *Backend) insert(data glyphvg.PathData) glyphvg.PathHandle {
	for {
		b.next++
		if b.next == glyphvg.NoPath {
			continue
		}
		if _, used := b.paths[b.next]; !used {
			break
		}
	}
	b.paths[b.next] = &path{data: data, caps: glyphvg.CapAll}
	return b.next
}

// lookup returns the path for h. b.mu must be held.
func (b *Backend) lookup(h glyphvg.PathHandle) (*path, error) {
	p, ok := b.paths[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	return p, nil
}

// DestroyPath releases h. Destroying a handle twice is an error.
func (b *Backend) DestroyPath(h glyphvg.PathHandle) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.lookup(h); err != nil {
		return err
	}
	delete(b.paths, h)
	return nil
}

// RemoveCapabilities clears caps on h. Capabilities cannot be added back.
func (b *Backend) RemoveCapabilities(h glyphvg.PathHandle, caps glyphvg.Capability) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := b.lookup(h)
	if err != nil {
		return err
	}
	p.caps &^= caps
	return nil
}

// Capabilities returns the capabilities h still has.
func (b *Backend) Capabilities(h glyphvg.PathHandle) (glyphvg.Capability, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := b.lookup(h)
	if err != nil {
		return 0, err
	}
	return p.caps, nil
}

// Bounds returns the control box of h: the bounds of all its points,
// curve control points included. It needs CapPathBounds.
func (b *Backend) Bounds(h glyphvg.PathHandle) (Rect, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := b.lookup(h)
	if err != nil {
		return Rect{}, err
	}
	if !p.caps.Has(glyphvg.CapPathBounds) {
		return Rect{}, fmt.Errorf("%w: bounds of path %d", ErrCapability, h)
	}

	bb := geomPath(p.data).BBox()
	return Rect{
		MinX: float32(bb.LLx),
		MinY: float32(bb.LLy),
		MaxX: float32(bb.URx),
		MaxY: float32(bb.URy),
	}, nil
}

// Data returns a copy of the command stream of h.
func (b *Backend) Data(h glyphvg.PathHandle) (glyphvg.PathData, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := b.lookup(h)
	if err != nil {
		return glyphvg.PathData{}, err
	}
	return p.data.Clone(), nil
}

// Transform creates a new path holding h mapped through m. The source
// needs CapTransformFrom, so read-only glyph paths cannot be transformed.
func (b *Backend) Transform(h glyphvg.PathHandle, m matrix.Matrix) (glyphvg.PathHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := b.lookup(h)
	if err != nil {
		return glyphvg.NoPath, err
	}
	if !p.caps.Has(glyphvg.CapTransformFrom) {
		return glyphvg.NoPath, fmt.Errorf("%w: transform from path %d", ErrCapability, h)
	}

	data := p.data.Clone()
	c := data.Coords
	for i := 0; i+1 < len(c); i += 2 {
		x, y := m.Apply(float64(c[i]), float64(c[i+1]))
		c[i], c[i+1] = float32(x), float32(y)
	}
	return b.insert(data), nil
}

// Fill implements backend.PathRenderer. Coordinates are mapped through m
// into the pixel space of dst, then filled with src under the Over
// operator. The path itself is left unchanged.
func (b *Backend) Fill(dst draw.Image, h glyphvg.PathHandle, m matrix.Matrix, src image.Image) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := b.lookup(h)
	if err != nil {
		return err
	}
	b.rasterize(dst, geomPath(p.data), m, src)
	return nil
}

// Stroke implements backend.PathRenderer. The outline of h is expanded in
// path coordinates into a scratch path and filled through m, so read-only
// glyph paths can be stroked as they are.
func (b *Backend) Stroke(dst draw.Image, h glyphvg.PathHandle, m matrix.Matrix, style backend.StrokeStyle, src image.Image) error {
	if !(style.Width > 0) {
		return fmt.Errorf("%w: %v", ErrStrokeWidth, style.Width)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := b.lookup(h)
	if err != nil {
		return err
	}
	// Cap and join values are shared with the stroke package.
	e := stroke.NewExpander(stroke.Style{
		Width:      style.Width,
		Cap:        stroke.LineCap(style.Cap),
		Join:       stroke.LineJoin(style.Join),
		MiterLimit: style.MiterLimit,
	})
	outline := e.Expand(geomPath(p.data))
	b.rasterize(dst, outline.Iter(), m, src)
	return nil
}

// rasterize fills p mapped through m into dst with src under the Over
// operator. b.mu must be held.
func (b *Backend) rasterize(dst draw.Image, p path.Path, m matrix.Matrix, src image.Image) {
	r := dst.Bounds()
	if r.Empty() {
		return
	}
	// The rasterizer covers (0, 0)-(w, h); shift by the image origin.
	m = m.Mul(matrix.Translate(float64(-r.Min.X), float64(-r.Min.Y)))

	z := &b.rast
	z.Reset(r.Dx(), r.Dy())
	z.DrawOp = draw.Over
	for cmd, pts := range p.Transform(m) {
		switch cmd {
		case path.CmdMoveTo:
			z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
		case path.CmdLineTo:
			z.LineTo(float32(pts[0].X), float32(pts[0].Y))
		case path.CmdQuadTo:
			z.QuadTo(
				float32(pts[0].X), float32(pts[0].Y),
				float32(pts[1].X), float32(pts[1].Y))
		case path.CmdCubeTo:
			z.CubeTo(
				float32(pts[0].X), float32(pts[0].Y),
				float32(pts[1].X), float32(pts[1].Y),
				float32(pts[2].X), float32(pts[2].Y))
		case path.CmdClose:
			z.ClosePath()
		}
	}
	z.Draw(dst, r, src, r.Min)
}

// Live returns the number of paths not yet destroyed.
func (b *Backend) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.paths)
}

// Close implements backend.PathRenderer. Paths still alive are released
// and reported at Warn level.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n := len(b.paths); n > 0 {
		slogger().Warn("raster: closing backend with live paths", "paths", n)
	}
	clear(b.paths)
	return nil
}

var errStop = errors.New("stop")

var geomCommands = [...]path.Command{
	glyphvg.CmdMoveTo:    path.CmdMoveTo,
	glyphvg.CmdLineTo:    path.CmdLineTo,
	glyphvg.CmdQuadTo:    path.CmdQuadTo,
	glyphvg.CmdCubicTo:   path.CmdCubeTo,
	glyphvg.CmdClosePath: path.CmdClose,
}

// geomPath iterates d as a geom path. d must be valid, as every stored
// path is.
func geomPath(d glyphvg.PathData) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [3]vec.Vec2
		_ = d.Walk(func(c glyphvg.Command, pts []float32) error {
			n := len(pts) / 2
			for i := range n {
				buf[i] = vec.Vec2{X: float64(pts[2*i]), Y: float64(pts[2*i+1])}
			}
			if !yield(geomCommands[c], buf[:n]) {
				return errStop
			}
			return nil
		})
	}
}
