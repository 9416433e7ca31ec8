package glyphvg

import (
	"errors"
	"fmt"
)

// Sentinel errors for the glyphvg package.
var (
	// ErrMalformedOutline is returned when an outline's tag sequence or
	// point count is inconsistent.
	ErrMalformedOutline = errors.New("glyphvg: malformed outline")

	// ErrCapacityExceeded is returned when a path would not fit in the
	// bounded segment or coordinate buffer.
	ErrCapacityExceeded = errors.New("glyphvg: path capacity exceeded")

	// ErrGlyphNotFound is returned by font providers when the font has no
	// glyph for a character.
	ErrGlyphNotFound = errors.New("glyphvg: glyph not found")

	// ErrCacheState is returned when a cache operation is not valid in the
	// cache's current state.
	ErrCacheState = errors.New("glyphvg: invalid cache state")

	// ErrInvalidPathData is returned when a command stream and its
	// coordinates disagree.
	ErrInvalidPathData = errors.New("glyphvg: invalid path data")
)

// OutlineError describes where an outline was found to be malformed.
// A Point of -1 means the problem concerns the contour as a whole.
type OutlineError struct {
	Contour int
	Point   int
	Reason  string
}

func (e *OutlineError) Error() string {
	if e.Point < 0 {
		return fmt.Sprintf("glyphvg: malformed outline: contour %d: %s", e.Contour, e.Reason)
	}
	return fmt.Sprintf("glyphvg: malformed outline: contour %d, point %d: %s", e.Contour, e.Point, e.Reason)
}

// Unwrap returns ErrMalformedOutline.
func (e *OutlineError) Unwrap() error {
	return ErrMalformedOutline
}

// CapacityError reports which bounded buffer ran out of room.
type CapacityError struct {
	// Resource is "segments" or "coords".
	Resource string

	// Max is the configured capacity of the resource.
	Max int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("glyphvg: path capacity exceeded: more than %d %s", e.Max, e.Resource)
}

// Unwrap returns ErrCapacityExceeded.
func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}

// GlyphError ties a compilation failure to the character being compiled.
type GlyphError struct {
	Rune rune
	Err  error
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("glyphvg: glyph %q (U+%04X): %v", e.Rune, e.Rune, e.Err)
}

func (e *GlyphError) Unwrap() error {
	return e.Err
}
