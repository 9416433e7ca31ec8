package glyphvg

import (
	"errors"
	"fmt"
)

// Compiler compiles characters into backend paths: it loads the outline
// from a FontProvider, converts it and hands the command stream to a
// PathBackend.
//
// A Compiler reuses one conversion buffer and is not safe for concurrent use.
type Compiler struct {
	provider FontProvider
	backend  PathBackend
	conv     *Converter
	caps     Capability
}

// NewCompiler creates a compiler for the given font and backend.
func NewCompiler(provider FontProvider, backend PathBackend, opts ...Option) *Compiler {
	o := defaultCompilerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Compiler{
		provider: provider,
		backend:  backend,
		conv:     NewConverterWithConfig(o.converter),
		caps:     o.caps,
	}
}

// Backend returns the backend paths are created in.
func (c *Compiler) Backend() PathBackend {
	return c.backend
}

// CompileData loads and converts the outline for r without creating a
// backend path. The result aliases the compiler's buffer and is only valid
// until the next call. Glyphs without contours return empty data.
func (c *Compiler) CompileData(r rune) (PathData, error) {
	outline, err := c.provider.LoadOutline(r)
	if err != nil {
		return PathData{}, &GlyphError{Rune: r, Err: err}
	}
	// Convert also checks outlines without contours: stray points are
	// malformed, not an empty glyph.
	data, err := c.conv.Convert(outline)
	if err != nil {
		return PathData{}, &GlyphError{Rune: r, Err: err}
	}
	return data, nil
}

// Compile builds the path for r.
//
// Glyphs without contours (such as a space) return NoPath and a nil error.
// Errors are *GlyphError values wrapping ErrGlyphNotFound,
// ErrMalformedOutline, ErrCapacityExceeded or a backend error.
//
// When the backend implements CapabilityRemover the path is made read-only
// before it is returned, since compiled glyphs are shared by every draw.
func (c *Compiler) Compile(r rune) (PathHandle, error) {
	data, err := c.CompileData(r)
	if err != nil {
		return NoPath, err
	}
	if data.IsEmpty() {
		Logger().Debug("glyphvg: empty glyph", "rune", string(r))
		return NoPath, nil
	}

	h, err := c.backend.CreatePath(data)
	if err != nil {
		return NoPath, &GlyphError{Rune: r, Err: fmt.Errorf("create path: %w", err)}
	}

	if remover, ok := c.backend.(CapabilityRemover); ok && c.caps != 0 {
		if err := remover.RemoveCapabilities(h, c.caps); err != nil {
			err = fmt.Errorf("remove capabilities: %w", err)
			if derr := c.backend.DestroyPath(h); derr != nil {
				err = errors.Join(err, fmt.Errorf("destroy path: %w", derr))
			}
			return NoPath, &GlyphError{Rune: r, Err: err}
		}
	}

	Logger().Debug("glyphvg: compiled glyph",
		"rune", string(r),
		"segments", data.Len(),
		"coords", len(data.Coords),
		"handle", uint32(h))
	return h, nil
}
