// Package backend provides a pluggable vector path backend abstraction.
//
// A backend turns glyphvg command streams into opaque path handles and
// fills or strokes them into images. The raster backend registers itself on import:
//
//	import _ "github.com/gogpu/glyphvg/backend/raster"
//
// # Backend Selection
//
// Use Default() to get the raster backend, or whichever is registered when
// it is not, or Get() to request a specific backend by name:
//
//	b := backend.Default()
//
//	// Or request a specific backend
//	b := backend.Get(backend.BackendRaster)
//
// # Usage with a glyph cache
//
//	b, err := backend.Open("")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	cache := glyphvg.NewGlyphCache(glyphvg.NewCompiler(provider, b))
//
// # Stroking
//
// Stroke outlines a path instead of filling it. The style applies in path
// coordinates:
//
//	style := backend.DefaultStrokeStyle()
//	style.Width = 2
//	err := b.Stroke(img, h, m, style, image.White)
package backend
