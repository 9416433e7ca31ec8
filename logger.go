package glyphvg

import (
	"log/slog"
	"sync/atomic"
)

// discard is in effect until SetLogger installs a logger. Its handler
// reports every level as disabled, so log calls return before any
// attribute is formatted.
var discard = slog.New(slog.DiscardHandler)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(discard)
}

// SetLogger routes the diagnostics of glyphvg, its font providers and its
// backends to l. Nothing is logged until SetLogger is called; nil silences
// logging again. It may be called while other goroutines are logging.
//
// Levels:
//   - [slog.LevelDebug]: per-glyph events with segment and coordinate counts
//   - [slog.LevelInfo]: glyph cache built and torn down
//   - [slog.LevelWarn]: skipped glyphs, failed path releases, live paths at
//     backend close
//
// To see everything:
//
//	glyphvg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discard
	}
	current.Store(l)
}

// Logger returns the logger installed by SetLogger. Sub-packages log
// through it so one call configures the whole module.
func Logger() *slog.Logger {
	return current.Load()
}
