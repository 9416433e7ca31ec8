// Package stroke expands stroked paths into fill outlines.
//
// A subpath is stroked by walking it twice in parallel: the forward side
// is offset by half the width to the right of the tangent, the backward
// side to the left. The outline is then
//  1. the forward side,
//  2. the end cap,
//  3. the backward side reversed,
//  4. the start cap, closing the loop.
//
// Closed subpaths produce two loops, one per side, with no caps.
//
// Curves are flattened to lines within the expander tolerance before they
// are offset. Joins and round caps are emitted as cubic arcs.
//
// # Usage
//
//	e := stroke.NewExpander(stroke.Style{
//		Width:      2,
//		Cap:        stroke.LineCapButt,
//		Join:       stroke.LineJoinMiter,
//		MiterLimit: 4,
//	})
//	outline := e.Expand(data.Iter())
//
// The result can be filled with the nonzero rule.
package stroke
