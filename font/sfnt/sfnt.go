// Package sfnt loads glyph outlines with golang.org/x/image/font/sfnt.
//
// It reads TrueType (quadratic) and CFF-flavored OpenType (cubic) fonts.
// The library hands out a segment stream with implied on-curve points
// already resolved; the provider rebuilds tagged control points from it.
package sfnt

import (
	"fmt"

	xsfnt "golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/glyphvg"
)

// DefaultSize is the default size in pixels per em.
const DefaultSize = 100

// Option configures a Provider.
type Option func(*Provider)

// WithSize sets the size in pixels per em. Non-positive values are ignored.
func WithSize(ppem float64) Option {
	return func(p *Provider) {
		if ppem > 0 {
			p.ppem = glyphvg.FloatToFixed(ppem)
		}
	}
}

// Provider implements glyphvg.FontProvider for an x/image sfnt font.
//
// A Provider reuses its buffers and is not safe for concurrent use.
type Provider struct {
	font    *xsfnt.Font
	buf     xsfnt.Buffer
	ppem    fixed.Int26_6
	builder glyphvg.OutlineBuilder
}

// New parses a TrueType or OpenType font.
func New(data []byte, opts ...Option) (*Provider, error) {
	f, err := xsfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("sfnt: failed to parse font: %w", err)
	}
	return NewFromFont(f, opts...), nil
}

// NewFromFont wraps an already parsed font.
func NewFromFont(f *xsfnt.Font, opts ...Option) *Provider {
	p := &Provider{
		font: f,
		ppem: fixed.I(DefaultSize),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Size returns the size in pixels per em.
func (p *Provider) Size() float64 {
	return float64(p.ppem) / 64
}

// Name returns the font family name, or "" if the font has none.
func (p *Provider) Name() string {
	name, err := p.font.Name(&p.buf, xsfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// LoadOutline implements glyphvg.FontProvider.
func (p *Provider) LoadOutline(r rune) (*glyphvg.Outline, error) {
	gid, err := p.font.GlyphIndex(&p.buf, r)
	if err != nil {
		return nil, fmt.Errorf("sfnt: glyph index for %q: %w", r, err)
	}
	if gid == 0 {
		return nil, fmt.Errorf("sfnt: %q: %w", r, glyphvg.ErrGlyphNotFound)
	}

	segments, err := p.font.LoadGlyph(&p.buf, gid, p.ppem, nil)
	if err != nil {
		return nil, fmt.Errorf("sfnt: load glyph %d: %w", gid, err)
	}

	b := &p.builder
	b.Reset()
	for _, seg := range segments {
		switch seg.Op {
		case xsfnt.SegmentOpMoveTo:
			b.MoveTo(flip(seg.Args[0]))
		case xsfnt.SegmentOpLineTo:
			b.LineTo(flip(seg.Args[0]))
		case xsfnt.SegmentOpQuadTo:
			b.QuadTo(flip(seg.Args[0]), flip(seg.Args[1]))
		case xsfnt.SegmentOpCubeTo:
			b.CubeTo(flip(seg.Args[0]), flip(seg.Args[1]), flip(seg.Args[2]))
		}
	}

	outline, err := b.Outline()
	if err != nil {
		return nil, fmt.Errorf("sfnt: glyph %d: %w", gid, err)
	}
	return outline, nil
}

// flip converts from the library's y-down space to font space.
func flip(p fixed.Point26_6) fixed.Point26_6 {
	return fixed.Point26_6{X: p.X, Y: -p.Y}
}
