// Package truetype loads raw TrueType glyph outlines with
// github.com/golang/freetype.
//
// The outlines are the glyf table's own control points, scaled to the
// requested size and optionally grid-fitted by the bytecode hinter. Implied
// on-curve points are left for the converter to synthesize.
package truetype

import (
	"fmt"

	freetype "github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/glyphvg"
)

// DefaultSize is the default size in pixels per em.
const DefaultSize = 100

// flagOnCurve is the glyf point flag for on-curve points. The other flag
// bits describe the table encoding and carry no outline meaning.
const flagOnCurve = 1 << 0

// Option configures a Provider.
type Option func(*Provider)

// WithSize sets the size in pixels per em. Non-positive values are ignored.
func WithSize(ppem float64) Option {
	return func(p *Provider) {
		if ppem > 0 {
			p.scale = glyphvg.FloatToFixed(ppem)
		}
	}
}

// WithHinting sets the hinting mode. The default is font.HintingNone.
func WithHinting(h font.Hinting) Option {
	return func(p *Provider) {
		p.hinting = h
	}
}

// Provider implements glyphvg.FontProvider for a TrueType font.
//
// A Provider reuses its glyph buffer and is not safe for concurrent use.
type Provider struct {
	font    *freetype.Font
	glyph   freetype.GlyphBuf
	scale   fixed.Int26_6
	hinting font.Hinting
	points  []glyphvg.ControlPoint
	outline glyphvg.Outline
}

// New parses a TrueType font.
func New(ttf []byte, opts ...Option) (*Provider, error) {
	f, err := freetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("truetype: failed to parse font: %w", err)
	}
	p := &Provider{
		font:    f,
		scale:   fixed.I(DefaultSize),
		hinting: font.HintingNone,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Size returns the size in pixels per em.
func (p *Provider) Size() float64 {
	return float64(p.scale) / 64
}

// Hinting returns the hinting mode.
func (p *Provider) Hinting() font.Hinting {
	return p.hinting
}

// Name returns the font family name.
func (p *Provider) Name() string {
	return p.font.Name(freetype.NameIDFontFamily)
}

// LoadOutline implements glyphvg.FontProvider.
func (p *Provider) LoadOutline(r rune) (*glyphvg.Outline, error) {
	idx := p.font.Index(r)
	if idx == 0 {
		return nil, fmt.Errorf("truetype: %q: %w", r, glyphvg.ErrGlyphNotFound)
	}
	if err := p.glyph.Load(p.font, p.scale, idx, p.hinting); err != nil {
		return nil, fmt.Errorf("truetype: load glyph %d: %w", idx, err)
	}

	p.points = p.points[:0]
	for _, pt := range p.glyph.Points {
		var tag glyphvg.Tag
		if pt.Flags&flagOnCurve != 0 {
			tag = glyphvg.TagOnCurve
		}
		p.points = append(p.points, glyphvg.ControlPoint{X: pt.X, Y: pt.Y, Tag: tag})
	}

	o := &p.outline
	o.Reset()
	start := 0
	for _, end := range p.glyph.Ends {
		if end < start || end > len(p.points) {
			return nil, fmt.Errorf("truetype: glyph %d: contour end %d out of range: %w",
				idx, end, glyphvg.ErrMalformedOutline)
		}
		o.AddContour(p.points[start:end])
		start = end
	}
	return o, nil
}
