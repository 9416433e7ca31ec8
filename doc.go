// Package glyphvg compiles font glyph outlines into vector paths and caches
// them per character.
//
// The pipeline has three collaborators:
//
//   - FontProvider: loads a glyph's raw outline (26.6 fixed-point control
//     points with on-curve and cubic tags, split into contours)
//   - Converter: turns an outline into a MoveTo/LineTo/QuadTo/CubicTo/
//     ClosePath command stream in a bounded buffer
//   - PathBackend: compiles a command stream into an opaque PathHandle
//
// Compiler ties them together for one character, and GlyphCache compiles a
// fixed alphabet once and serves the paths by lookup afterwards.
//
// # Example usage
//
//	provider, err := truetype.New(goregular.TTF, truetype.WithSize(100))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	backend := raster.New()
//
//	cache := glyphvg.NewGlyphCache(glyphvg.NewCompiler(provider, backend))
//	defer cache.Teardown()
//	if err := cache.Build(glyphvg.DefaultAlphabet); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Glyphs are y-up: flip them onto the image with the baseline at y=120.
//	if h, ok := cache.Lookup('a'); ok && h != glyphvg.NoPath {
//	    backend.Fill(img, h, matrix.Matrix{1, 0, 0, -1, 10, 120}, image.Black)
//	}
//
// # Bounded buffers
//
// Conversion never allocates: the command and coordinate buffers have a
// fixed capacity (DefaultMaxSegments, DefaultMaxCoords) and a glyph that
// does not fit fails with ErrCapacityExceeded.
//
// # Errors
//
// Malformed outlines report ErrMalformedOutline with the contour and point
// index in an *OutlineError. Missing glyphs report ErrGlyphNotFound. A
// character that was never cached is not an error: Lookup returns ok=false.
package glyphvg
