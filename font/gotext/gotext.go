// Package gotext loads glyph outlines with github.com/go-text/typesetting.
//
// go-text reports outlines as segments in font units. The provider scales
// them to the requested size and rounds to 26.6.
package gotext

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/glyphvg"
)

// DefaultSize is the default size in pixels per em.
const DefaultSize = 100

// ErrNotOutline is returned for glyphs stored as bitmaps or SVG documents.
var ErrNotOutline = errors.New("gotext: glyph has no vector outline")

// Option configures a Provider.
type Option func(*Provider)

// WithSize sets the size in pixels per em. Non-positive values are ignored.
func WithSize(ppem float64) Option {
	return func(p *Provider) {
		if ppem > 0 {
			p.size = ppem
		}
	}
}

// Provider implements glyphvg.FontProvider for a go-text font face.
//
// A go-text Face is not safe for concurrent use, and neither is Provider.
type Provider struct {
	face    *font.Face
	size    float64
	scale   float64
	builder glyphvg.OutlineBuilder
}

// New parses a TrueType or OpenType font.
func New(data []byte, opts ...Option) (*Provider, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gotext: failed to parse font: %w", err)
	}
	return NewFromFace(face, opts...), nil
}

// NewFromFace wraps an already parsed face.
func NewFromFace(face *font.Face, opts ...Option) *Provider {
	p := &Provider{
		face: face,
		size: DefaultSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.scale = p.size / float64(face.Upem())
	return p
}

// Size returns the size in pixels per em.
func (p *Provider) Size() float64 {
	return p.size
}

// LoadOutline implements glyphvg.FontProvider.
func (p *Provider) LoadOutline(r rune) (*glyphvg.Outline, error) {
	gid, ok := p.face.NominalGlyph(r)
	if !ok || gid == 0 {
		return nil, fmt.Errorf("gotext: %q: %w", r, glyphvg.ErrGlyphNotFound)
	}

	b := &p.builder
	b.Reset()

	switch data := p.face.GlyphData(gid).(type) {
	case font.GlyphOutline:
		for _, seg := range data.Segments {
			switch seg.Op {
			case opentype.SegmentOpMoveTo:
				b.MoveTo(p.point(seg.Args[0]))
			case opentype.SegmentOpLineTo:
				b.LineTo(p.point(seg.Args[0]))
			case opentype.SegmentOpQuadTo:
				b.QuadTo(p.point(seg.Args[0]), p.point(seg.Args[1]))
			case opentype.SegmentOpCubeTo:
				b.CubeTo(p.point(seg.Args[0]), p.point(seg.Args[1]), p.point(seg.Args[2]))
			}
		}
	case nil:
		// no glyph data at all: treat as blank
	default:
		return nil, fmt.Errorf("gotext: glyph %d (%T): %w", gid, data, ErrNotOutline)
	}

	outline, err := b.Outline()
	if err != nil {
		return nil, fmt.Errorf("gotext: glyph %d: %w", gid, err)
	}
	return outline, nil
}

func (p *Provider) point(sp opentype.SegmentPoint) fixed.Point26_6 {
	return fixed.Point26_6{
		X: glyphvg.FloatToFixed(float64(sp.X) * p.scale),
		Y: glyphvg.FloatToFixed(float64(sp.Y) * p.scale),
	}
}
