package backend

import (
	"errors"
	"image"
	"image/draw"

	"seehuhn.de/go/geom/matrix"

	"github.com/gogpu/glyphvg"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Backend names.
const (
	// BackendRaster is the CPU rasterizer in backend/raster.
	BackendRaster = "raster"
)

// PathRenderer is the interface for vector path backends.
// It compiles command streams into handles, as glyphvg.Compiler needs,
// and fills those handles into images.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type PathRenderer interface {
	glyphvg.PathBackend
	glyphvg.CapabilityRemover

	// Name returns the backend identifier (e.g., "raster").
	Name() string

	// Fill paints the interior of path h into dst with src, after mapping
	// path coordinates through m.
	Fill(dst draw.Image, h glyphvg.PathHandle, m matrix.Matrix, src image.Image) error

	// Stroke paints the outline of path h into dst with src. The style is
	// applied in path space, so the width scales with m. Stroking reads
	// the path and needs no capability.
	Stroke(dst draw.Image, h glyphvg.PathHandle, m matrix.Matrix, style StrokeStyle, src image.Image) error

	// Close releases all paths still held by the backend.
	// The backend should not be used after Close is called.
	Close() error
}

// LineCap specifies the shape of open subpath ends.
type LineCap int

// Line caps.
const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// LineJoin specifies the shape of stroke corners.
type LineJoin int

// Line joins.
const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

// StrokeStyle describes how PathRenderer.Stroke outlines a path.
type StrokeStyle struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
}

// DefaultStrokeStyle returns a one unit wide stroke with butt caps and
// miter joins limited to 4.
func DefaultStrokeStyle() StrokeStyle {
	return StrokeStyle{
		Width:      1,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4,
	}
}
