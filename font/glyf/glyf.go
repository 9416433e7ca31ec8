// Package glyf reads glyph outlines straight from the glyf table of a
// TrueType font, using seehuhn.de/go/sfnt.
//
// The points are the unpacked font-unit coordinates of simple glyphs,
// scaled to the requested size. Composite glyphs are not resolved.
package glyf

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyf"

	"github.com/gogpu/glyphvg"
)

// DefaultSize is the default size in pixels per em.
const DefaultSize = 100

var (
	// ErrNotTrueType is returned by New for fonts with CFF outlines.
	ErrNotTrueType = errors.New("glyf: font has no glyf table")

	// ErrCompositeGlyph is returned for glyphs assembled from other glyphs.
	ErrCompositeGlyph = errors.New("glyf: composite glyph")
)

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

// Provider implements glyphvg.FontProvider over a decoded glyf table.
//
// A Provider is not safe for concurrent use.
type Provider struct {
	info     *sfnt.Font
	outlines *glyf.Outlines
	cmap     cmap.Subtable

	size    float64
	scale   float64
	points  []glyphvg.ControlPoint
	outline glyphvg.Outline
}

// New reads a TrueType font.
func New(data []byte, opts ...Option) (*Provider, error) {
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("glyf: failed to read font: %w", err)
	}
	outlines, ok := info.Outlines.(*glyf.Outlines)
	if !ok {
		return nil, ErrNotTrueType
	}
	subtable, err := info.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("glyf: no usable cmap: %w", err)
	}

	p := &Provider{
		info:     info,
		outlines: outlines,
		cmap:     subtable,
		size:     DefaultSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.scale = p.size / float64(info.UnitsPerEm)
	return p, nil
}

// Size returns the size in pixels per em.
func (p *Provider) Size() float64 {
	return p.size
}

// Name returns the font family name.
func (p *Provider) Name() string {
	return p.info.FamilyName
}

// NumGlyphs returns the number of glyphs in the font.
func (p *Provider) NumGlyphs() int {
	return len(p.outlines.Glyphs)
}

// LoadOutline implements glyphvg.FontProvider.
func (p *Provider) LoadOutline(r rune) (*glyphvg.Outline, error) {
	gid := p.cmap.Lookup(r)
	if gid == 0 || int(gid) >= len(p.outlines.Glyphs) {
		return nil, fmt.Errorf("glyf: %q: %w", r, glyphvg.ErrGlyphNotFound)
	}

	o := &p.outline
	o.Reset()

	g := p.outlines.Glyphs[gid]
	if g == nil {
		// glyphs without data, such as the space, have no contours
		return o, nil
	}

	switch data := g.Data.(type) {
	case glyf.SimpleGlyph:
		unpacked, err := data.Unpack()
		if err != nil {
			return nil, fmt.Errorf("glyf: unpack glyph %d: %w", gid, err)
		}
		for _, contour := range unpacked.Contours {
			p.points = p.points[:0]
			for _, pt := range contour {
				cp := glyphvg.ControlPoint{X: p.scaled(float64(pt.X)), Y: p.scaled(float64(pt.Y))}
				if pt.OnCurve {
					cp.Tag = glyphvg.TagOnCurve
				}
				p.points = append(p.points, cp)
			}
			o.AddContour(p.points)
		}
	case glyf.CompositeGlyph:
		return nil, fmt.Errorf("glyf: glyph %d for %q: %w", gid, r, ErrCompositeGlyph)
	default:
		return nil, fmt.Errorf("glyf: glyph %d: unexpected data %T", gid, data)
	}
	return o, nil
}

func (p *Provider) scaled(v float64) fixed.Int26_6 {
	return glyphvg.FloatToFixed(v * p.scale)
}
