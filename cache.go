package glyphvg

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/text/unicode/norm"
)

// DefaultAlphabet is the character set cached when no other is given.
const DefaultAlphabet = ":/?0123456789abcdefghijklmnopqrstuvwxyz"

// CacheState is the lifecycle state of a GlyphCache.
type CacheState uint8

const (
	// CacheUninitialized is the state before Build.
	CacheUninitialized CacheState = iota

	// CacheReady is the state after a successful Build.
	CacheReady

	// CacheFailed is the state after a Build that aborted. Paths compiled
	// before the failure are still owned by the cache until Teardown.
	CacheFailed

	// CacheDestroyed is the state after Teardown.
	CacheDestroyed
)

// String returns a string representation of the state.
func (s CacheState) String() string {
	switch s {
	case CacheUninitialized:
		return "Uninitialized"
	case CacheReady:
		return "Ready"
	case CacheFailed:
		return "Failed"
	case CacheDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// GlyphCacheStats holds cache statistics.
type GlyphCacheStats struct {
	Hits   atomic.Uint64
	Misses atomic.Uint64
}

// GlyphCache maps characters of a fixed alphabet to compiled paths.
//
// The cache is built once with Build, serves Lookup until Teardown, and
// owns every path it compiled: Teardown destroys each exactly once.
//
// Lookup is safe for concurrent use once the cache is built. Build and
// Teardown are exclusive and must not overlap with each other.
type GlyphCache struct {
	mu sync.RWMutex

	compiler *Compiler
	paths    map[rune]PathHandle
	state    CacheState
	opts     cacheOptions

	stats GlyphCacheStats
}

// NewGlyphCache creates an empty cache that compiles glyphs with c.
func NewGlyphCache(c *Compiler, opts ...CacheOption) *GlyphCache {
	var o cacheOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &GlyphCache{
		compiler: c,
		paths:    make(map[rune]PathHandle),
		opts:     o,
	}
}

// Build compiles every distinct character of alphabet.
//
// The alphabet is normalized to NFC first so that a decomposed accented
// letter is cached under its precomposed character.
//
// Build fails fast on the first compile error. Paths compiled before the
// failure stay owned by the cache; call Teardown to release them.
// Characters without a glyph fail the build unless WithSkipMissing is set.
func (c *GlyphCache) Build(alphabet string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != CacheUninitialized {
		return fmt.Errorf("%w: build in state %v", ErrCacheState, c.state)
	}

	skipped := 0
	for _, r := range norm.NFC.String(alphabet) {
		if _, ok := c.paths[r]; ok {
			continue
		}

		h, err := c.compiler.Compile(r)
		if err != nil {
			if c.opts.skipMissing && errors.Is(err, ErrGlyphNotFound) {
				Logger().Warn("glyphvg: skipping character without glyph", "rune", string(r))
				skipped++
				continue
			}
			c.state = CacheFailed
			return err
		}
		c.paths[r] = h
	}

	c.state = CacheReady
	Logger().Info("glyphvg: glyph cache built",
		"glyphs", len(c.paths),
		"skipped", skipped)
	return nil
}

// Lookup returns the path for r.
//
// ok is false when r was not part of the built alphabet. An empty glyph
// such as a space returns NoPath with ok true.
func (c *GlyphCache) Lookup(r rune) (h PathHandle, ok bool) {
	c.mu.RLock()
	h, ok = c.paths[r]
	c.mu.RUnlock()

	if ok {
		c.stats.Hits.Add(1)
	} else {
		c.stats.Misses.Add(1)
	}
	return h, ok
}

// Teardown destroys every path owned by the cache and clears it.
//
// It is safe to call after a failed Build and is a no-op once the cache is
// destroyed. All paths are released even if some fail; the failures are
// joined into the returned error.
func (c *GlyphCache) Teardown() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == CacheDestroyed {
		return nil
	}

	backend := c.compiler.Backend()
	var errs []error
	destroyed := 0
	for r, h := range c.paths {
		if h == NoPath {
			continue
		}
		if err := backend.DestroyPath(h); err != nil {
			Logger().Warn("glyphvg: failed to destroy glyph path", "rune", string(r), "err", err)
			errs = append(errs, &GlyphError{Rune: r, Err: err})
			continue
		}
		destroyed++
	}

	clear(c.paths)
	c.state = CacheDestroyed
	Logger().Info("glyphvg: glyph cache torn down", "paths", destroyed)
	return errors.Join(errs...)
}

// State returns the current lifecycle state.
func (c *GlyphCache) State() CacheState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Len returns the number of cached characters, including empty glyphs.
func (c *GlyphCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.paths)
}

// Alphabet returns the cached characters in ascending order.
func (c *GlyphCache) Alphabet() []rune {
	c.mu.RLock()
	runes := make([]rune, 0, len(c.paths))
	for r := range c.paths {
		runes = append(runes, r)
	}
	c.mu.RUnlock()

	slices.Sort(runes)
	return runes
}

// Stats returns cache statistics.
func (c *GlyphCache) Stats() (hits, misses uint64) {
	return c.stats.Hits.Load(), c.stats.Misses.Load()
}

// HitRate returns the lookup hit rate as a percentage.
// Returns 0 if there are no lookups.
func (c *GlyphCache) HitRate() float64 {
	hits := c.stats.Hits.Load()
	misses := c.stats.Misses.Load()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

// ResetStats resets the cache statistics.
func (c *GlyphCache) ResetStats() {
	c.stats.Hits.Store(0)
	c.stats.Misses.Store(0)
}
