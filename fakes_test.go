package glyphvg

import (
	"errors"
	"fmt"

	"golang.org/x/image/math/fixed"
)

// px converts whole pixels to 26.6.
func px(v int) fixed.Int26_6 {
	return fixed.I(v)
}

// fakeProvider serves hand-written outlines.
type fakeProvider struct {
	outlines map[rune]*Outline
	errs     map[rune]error
	loads    map[rune]int
}

func (p *fakeProvider) LoadOutline(r rune) (*Outline, error) {
	if p.loads == nil {
		p.loads = make(map[rune]int)
	}
	p.loads[r]++
	if err, ok := p.errs[r]; ok {
		return nil, err
	}
	o, ok := p.outlines[r]
	if !ok {
		return nil, fmt.Errorf("fake: %q: %w", r, ErrGlyphNotFound)
	}
	return o, nil
}

// testFont returns a provider for the end-to-end alphabet "ab ":
// 'a' is a square of four on-curve points, 'b' has two on-curve and two
// quadratic control points and ' ' has no contours.
func testFont() *fakeProvider {
	return &fakeProvider{
		outlines: map[rune]*Outline{
			'a': {
				Points: []ControlPoint{
					On(px(0), px(0)), On(px(10), px(0)), On(px(10), px(10)), On(px(0), px(10)),
				},
				ContourEnds: []int{3},
			},
			'b': {
				Points: []ControlPoint{
					On(px(0), px(0)), OffQuad(px(0), px(10)), OffQuad(px(10), px(10)), On(px(10), px(0)),
				},
				ContourEnds: []int{3},
			},
			' ': {},
			'é': {
				Points:      []ControlPoint{On(px(0), px(0)), On(px(5), px(8)), On(px(8), px(0))},
				ContourEnds: []int{2},
			},
			'?': {
				// points but no contours
				Points: []ControlPoint{On(px(0), px(0)), On(px(1), px(0))},
			},
			'!': {
				// starts off-curve
				Points:      []ControlPoint{OffQuad(px(0), px(0)), On(px(5), px(5))},
				ContourEnds: []int{1},
			},
		},
	}
}

// fakeBackend records every path it creates and destroys.
type fakeBackend struct {
	next      PathHandle
	paths     map[PathHandle]PathData
	caps      map[PathHandle]Capability
	destroyed map[PathHandle]int

	createErr  error
	removeErr  error
	destroyErr error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		paths:     make(map[PathHandle]PathData),
		caps:      make(map[PathHandle]Capability),
		destroyed: make(map[PathHandle]int),
	}
}

var errFakeBackend = errors.New("fake backend failure")

func (b *fakeBackend) CreatePath(data PathData) (PathHandle, error) {
	if b.createErr != nil {
		return NoPath, b.createErr
	}
	if err := data.Validate(); err != nil {
		return NoPath, err
	}
	b.next++
	b.paths[b.next] = data.Clone()
	b.caps[b.next] = CapAll
	return b.next, nil
}

func (b *fakeBackend) DestroyPath(h PathHandle) error {
	b.destroyed[h]++
	if b.destroyErr != nil {
		return b.destroyErr
	}
	if _, ok := b.paths[h]; !ok {
		return fmt.Errorf("fake: unknown handle %d", h)
	}
	delete(b.paths, h)
	delete(b.caps, h)
	return nil
}

func (b *fakeBackend) RemoveCapabilities(h PathHandle, caps Capability) error {
	if b.removeErr != nil {
		return b.removeErr
	}
	b.caps[h] &^= caps
	return nil
}

// live returns the number of paths not yet destroyed.
func (b *fakeBackend) live() int {
	return len(b.paths)
}
