package glyphvg

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func buildCache(t *testing.T, alphabet string, opts ...CacheOption) (*GlyphCache, *fakeProvider, *fakeBackend) {
	t.Helper()
	provider := testFont()
	backend := newFakeBackend()
	cache := NewGlyphCache(NewCompiler(provider, backend), opts...)
	if err := cache.Build(alphabet); err != nil {
		t.Fatalf("Build(%q) error = %v", alphabet, err)
	}
	return cache, provider, backend
}

func TestGlyphCache_EndToEnd(t *testing.T) {
	cache, _, backend := buildCache(t, "ab ")

	if cache.State() != CacheReady {
		t.Fatalf("State() = %v, want Ready", cache.State())
	}
	if cache.Len() != 3 {
		t.Errorf("Len() = %d, want 3", cache.Len())
	}

	ha, ok := cache.Lookup('a')
	if !ok || ha == NoPath {
		t.Fatalf("Lookup('a') = %d, %v", ha, ok)
	}
	if n := backend.paths[ha].Len(); n != 5 {
		t.Errorf("'a' has %d commands, want 5", n)
	}

	hb, ok := cache.Lookup('b')
	if !ok || hb == NoPath {
		t.Fatalf("Lookup('b') = %d, %v", hb, ok)
	}
	if n := backend.paths[hb].Len(); n != 4 {
		t.Errorf("'b' has %d commands, want 4", n)
	}

	if h, ok := cache.Lookup(' '); !ok || h != NoPath {
		t.Errorf("Lookup(' ') = %d, %v; want NoPath, true", h, ok)
	}
	if h, ok := cache.Lookup('z'); ok || h != NoPath {
		t.Errorf("Lookup('z') = %d, %v; want NoPath, false", h, ok)
	}

	if err := cache.Teardown(); err != nil {
		t.Fatalf("Teardown() error = %v", err)
	}
	if backend.live() != 0 {
		t.Errorf("%d paths left after Teardown", backend.live())
	}
	if cache.State() != CacheDestroyed {
		t.Errorf("State() = %v, want Destroyed", cache.State())
	}
	if _, ok := cache.Lookup('a'); ok {
		t.Error("Lookup after Teardown must miss")
	}
}

func TestGlyphCache_LookupIsStable(t *testing.T) {
	cache, provider, _ := buildCache(t, "ab")
	defer cache.Teardown()

	first, _ := cache.Lookup('a')
	for range 10 {
		if h, _ := cache.Lookup('a'); h != first {
			t.Fatalf("Lookup('a') = %d, want %d", h, first)
		}
	}
	if provider.loads['a'] != 1 {
		t.Errorf("'a' loaded %d times, want 1", provider.loads['a'])
	}
}

func TestGlyphCache_BuildTwice(t *testing.T) {
	cache, _, backend := buildCache(t, "a")

	if err := cache.Build("b"); !errors.Is(err, ErrCacheState) {
		t.Errorf("second Build() error = %v, want ErrCacheState", err)
	}
	if backend.next != 1 {
		t.Errorf("second Build created paths")
	}

	cache.Teardown()
	if err := cache.Build("a"); !errors.Is(err, ErrCacheState) {
		t.Errorf("Build() after Teardown error = %v, want ErrCacheState", err)
	}
}

func TestGlyphCache_BuildFailure(t *testing.T) {
	provider := testFont()
	backend := newFakeBackend()
	cache := NewGlyphCache(NewCompiler(provider, backend))

	err := cache.Build("ab!")
	if !errors.Is(err, ErrMalformedOutline) {
		t.Fatalf("Build() error = %v, want ErrMalformedOutline", err)
	}
	var ge *GlyphError
	if !errors.As(err, &ge) || ge.Rune != '!' {
		t.Errorf("Build() error %v does not name '!'", err)
	}
	if cache.State() != CacheFailed {
		t.Errorf("State() = %v, want Failed", cache.State())
	}
	if backend.live() != 2 {
		t.Fatalf("%d live paths after failed build, want 2", backend.live())
	}

	if err := cache.Teardown(); err != nil {
		t.Fatalf("Teardown() error = %v", err)
	}
	if backend.live() != 0 {
		t.Errorf("%d paths leaked", backend.live())
	}
	for h, n := range backend.destroyed {
		if n != 1 {
			t.Errorf("path %d destroyed %d times", h, n)
		}
	}
	if len(backend.destroyed) != 2 {
		t.Errorf("%d paths destroyed, want 2", len(backend.destroyed))
	}
}

func TestGlyphCache_MissingGlyph(t *testing.T) {
	t.Run("fails by default", func(t *testing.T) {
		cache := NewGlyphCache(NewCompiler(testFont(), newFakeBackend()))
		if err := cache.Build("az"); !errors.Is(err, ErrGlyphNotFound) {
			t.Fatalf("Build() error = %v, want ErrGlyphNotFound", err)
		}
		cache.Teardown()
	})

	t.Run("skipped", func(t *testing.T) {
		cache, _, _ := buildCache(t, "azb", WithSkipMissing(true))
		defer cache.Teardown()

		if diff := cmp.Diff([]rune{'a', 'b'}, cache.Alphabet()); diff != "" {
			t.Errorf("Alphabet() mismatch (-want +got):\n%s", diff)
		}
		if _, ok := cache.Lookup('z'); ok {
			t.Error("skipped character must not be cached")
		}
	})

	t.Run("skip does not hide malformed outlines", func(t *testing.T) {
		cache := NewGlyphCache(NewCompiler(testFont(), newFakeBackend()), WithSkipMissing(true))
		if err := cache.Build("a!"); !errors.Is(err, ErrMalformedOutline) {
			t.Fatalf("Build() error = %v, want ErrMalformedOutline", err)
		}
		cache.Teardown()
	})
}

func TestGlyphCache_Normalization(t *testing.T) {
	// "e" + COMBINING ACUTE ACCENT composes to U+00E9.
	cache, provider, _ := buildCache(t, "e\u0301")
	defer cache.Teardown()

	if h, ok := cache.Lookup('é'); !ok || h == NoPath {
		t.Errorf("Lookup('é') = %d, %v", h, ok)
	}
	if provider.loads['e'] != 0 || provider.loads['\u0301'] != 0 {
		t.Error("decomposed characters must not be loaded")
	}
}

func TestGlyphCache_Duplicates(t *testing.T) {
	cache, provider, backend := buildCache(t, "abab  a")
	defer cache.Teardown()

	if cache.Len() != 3 {
		t.Errorf("Len() = %d, want 3", cache.Len())
	}
	for _, r := range "ab " {
		if provider.loads[r] != 1 {
			t.Errorf("%q loaded %d times, want 1", r, provider.loads[r])
		}
	}
	if backend.live() != 2 {
		t.Errorf("%d live paths, want 2", backend.live())
	}
}

func TestGlyphCache_TeardownIdempotent(t *testing.T) {
	cache, _, backend := buildCache(t, "ab")

	for range 3 {
		if err := cache.Teardown(); err != nil {
			t.Fatalf("Teardown() error = %v", err)
		}
	}
	for h, n := range backend.destroyed {
		if n != 1 {
			t.Errorf("path %d destroyed %d times", h, n)
		}
	}
}

func TestGlyphCache_TeardownBeforeBuild(t *testing.T) {
	cache := NewGlyphCache(NewCompiler(testFont(), newFakeBackend()))
	if err := cache.Teardown(); err != nil {
		t.Fatalf("Teardown() error = %v", err)
	}
	if cache.State() != CacheDestroyed {
		t.Errorf("State() = %v, want Destroyed", cache.State())
	}
}

func TestGlyphCache_TeardownErrors(t *testing.T) {
	cache, _, backend := buildCache(t, "ab")
	backend.destroyErr = errFakeBackend

	err := cache.Teardown()
	if !errors.Is(err, errFakeBackend) {
		t.Fatalf("Teardown() error = %v, want %v", err, errFakeBackend)
	}
	if len(backend.destroyed) != 2 {
		t.Errorf("Teardown attempted %d paths, want 2", len(backend.destroyed))
	}
	if cache.State() != CacheDestroyed {
		t.Errorf("State() = %v, want Destroyed", cache.State())
	}
}

func TestGlyphCache_ConcurrentLookup(t *testing.T) {
	cache, _, _ := buildCache(t, "ab ")
	defer cache.Teardown()

	const goroutines = 8
	const lookups = 1000

	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range lookups {
				r := []rune("ab z")[i%4]
				cache.Lookup(r)
			}
		}()
	}
	wg.Wait()

	hits, misses := cache.Stats()
	if hits+misses != goroutines*lookups {
		t.Errorf("stats count %d lookups, want %d", hits+misses, goroutines*lookups)
	}
	if misses != goroutines*lookups/4 {
		t.Errorf("misses = %d, want %d", misses, goroutines*lookups/4)
	}
	if rate := cache.HitRate(); rate != 75 {
		t.Errorf("HitRate() = %v, want 75", rate)
	}

	cache.ResetStats()
	if hits, misses := cache.Stats(); hits != 0 || misses != 0 {
		t.Errorf("Stats() after reset = %d, %d", hits, misses)
	}
}

func TestCacheState_String(t *testing.T) {
	tests := []struct {
		state CacheState
		want  string
	}{
		{CacheUninitialized, "Uninitialized"},
		{CacheReady, "Ready"},
		{CacheFailed, "Failed"},
		{CacheDestroyed, "Destroyed"},
		{CacheState(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("CacheState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
