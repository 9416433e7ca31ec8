// Command glyphdemo renders text from a glyph path cache into PNG frames.
//
// Each frame fills a rounded rectangle and an ellipse that moves from frame
// to frame, then draws two strings glyph by glyph from the cache. Glyphs are
// stroked in white with butt caps and miter joins and left unfilled; a
// stroke width of 0 fills them instead.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/geom/matrix"

	"github.com/gogpu/glyphvg"
	"github.com/gogpu/glyphvg/backend"
	_ "github.com/gogpu/glyphvg/backend/raster"
	"github.com/gogpu/glyphvg/font/glyf"
	"github.com/gogpu/glyphvg/font/gotext"
	"github.com/gogpu/glyphvg/font/sfnt"
	"github.com/gogpu/glyphvg/font/truetype"
)

var (
	blue  = image.NewUniform(color.RGBA{B: 0xff, A: 0xff})
	red   = image.NewUniform(color.RGBA{R: 0xff, A: 0xff})
	white = image.NewUniform(color.White)
)

type config struct {
	font        string
	provider    string
	backend     string
	size        float64
	hinting     bool
	alphabet    string
	skipMissing bool
	maxSegments int
	maxCoords   int
	width       int
	height      int
	frames      int
	escapement  float64
	stroke      float64
	out         string
	verbose     bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.font, "font", "", "font file or installed font name (default: embedded Go Regular)")
	flag.StringVar(&cfg.provider, "provider", "truetype", "outline loader: truetype, sfnt, gotext or glyf")
	flag.StringVar(&cfg.backend, "backend", backend.BackendRaster, "path backend")
	flag.Float64Var(&cfg.size, "size", 100, "font size in pixels per em")
	flag.BoolVar(&cfg.hinting, "hinting", false, "grid-fit outlines (truetype provider only)")
	flag.StringVar(&cfg.alphabet, "alphabet", glyphvg.DefaultAlphabet, "characters to cache")
	flag.BoolVar(&cfg.skipMissing, "skip-missing", false, "skip characters the font has no glyph for")
	flag.IntVar(&cfg.maxSegments, "max-segments", glyphvg.DefaultMaxSegments, "path commands per glyph")
	flag.IntVar(&cfg.maxCoords, "max-coords", glyphvg.DefaultMaxCoords, "coordinates per glyph")
	flag.IntVar(&cfg.width, "width", 1920, "image width")
	flag.IntVar(&cfg.height, "height", 1080, "image height")
	flag.IntVar(&cfg.frames, "frames", 3, "number of frames")
	flag.Float64Var(&cfg.escapement, "escapement", 50, "horizontal distance between characters")
	flag.Float64Var(&cfg.stroke, "stroke", 2, "glyph stroke width in pixels, 0 to fill")
	flag.StringVar(&cfg.out, "out", "img%d.png", "output file pattern")
	flag.BoolVar(&cfg.verbose, "v", false, "debug logging")
	flag.Parse()

	if cfg.verbose {
		glyphvg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(cfg); err != nil {
		log.Fatalf("glyphdemo: %v", err)
	}
}

func run(cfg config) (err error) {
	data, err := loadFont(cfg.font)
	if err != nil {
		return err
	}
	provider, err := newProvider(cfg, data)
	if err != nil {
		return err
	}

	b, err := backend.Open(cfg.backend)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, b.Close()) }()

	compiler := glyphvg.NewCompiler(provider, b, glyphvg.WithCapacity(cfg.maxSegments, cfg.maxCoords))
	cache := glyphvg.NewGlyphCache(compiler, glyphvg.WithSkipMissing(cfg.skipMissing))
	defer func() { err = errors.Join(err, cache.Teardown()) }()

	if err := cache.Build(cfg.alphabet); err != nil {
		return fmt.Errorf("build glyph cache: %w", err)
	}
	log.Printf("Cached %d glyphs", cache.Len())

	// User space has y pointing up with the origin at the bottom left,
	// as in the font.
	device := matrix.Matrix{1, 0, 0, -1, 0, float64(cfg.height)}

	img := image.NewRGBA(image.Rect(0, 0, cfg.width, cfg.height))
	shapes := glyphvg.NewPathBuffer(0, 0)
	for i := range cfg.frames {
		draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)

		if err := drawShapes(img, b, shapes, device, i); err != nil {
			return err
		}
		d := &textDrawer{
			cache:      cache,
			backend:    b,
			device:     device,
			escapement: cfg.escapement,
			stroke:     cfg.stroke,
		}
		if err := d.drawString(img, "string test 1 x:500 y:500", 500, 500); err != nil {
			return err
		}
		if err := d.drawString(img, "string test 2 x:300 y:300", 300, 300); err != nil {
			return err
		}

		name := fmt.Sprintf(cfg.out, i)
		if err := savePNG(name, img); err != nil {
			return err
		}
		log.Printf("%s saved", name)
	}

	hits, misses := cache.Stats()
	log.Printf("Lookups: %d hits, %d misses (%.1f%%)", hits, misses, cache.HitRate())
	return nil
}

// loadFont returns the embedded Go Regular font for an empty name, the
// file at name if it exists, and otherwise the installed font called name.
func loadFont(name string) ([]byte, error) {
	if name == "" {
		return goregular.TTF, nil
	}
	path := name
	if _, err := os.Stat(path); err != nil {
		path, err = findfont.Find(name)
		if err != nil {
			return nil, fmt.Errorf("font %q: %w", name, err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return data, nil
}

func newProvider(cfg config, data []byte) (glyphvg.FontProvider, error) {
	switch cfg.provider {
	case "truetype":
		hinting := font.HintingNone
		if cfg.hinting {
			hinting = font.HintingFull
		}
		return truetype.New(data, truetype.WithSize(cfg.size), truetype.WithHinting(hinting))
	case "sfnt":
		return sfnt.New(data, sfnt.WithSize(cfg.size))
	case "gotext":
		return gotext.New(data, gotext.WithSize(cfg.size))
	case "glyf":
		return glyf.New(data, glyf.WithSize(cfg.size))
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.provider)
	}
}

// drawShapes fills the frame's rounded rectangle and ellipse. Odd frames
// are blue, even frames red.
func drawShapes(img draw.Image, b backend.PathRenderer, buf *glyphvg.PathBuffer, device matrix.Matrix, frame int) error {
	data, err := glyphvg.BuildPathInto(buf).
		RoundRect(28, 10, 200, 60, 15, 15).
		Ellipse(128+100*float32(frame), 200, 60, 40).
		Data()
	if err != nil {
		return fmt.Errorf("build shapes: %w", err)
	}

	h, err := b.CreatePath(data)
	if err != nil {
		return fmt.Errorf("create shapes: %w", err)
	}
	paint := red
	if frame%2 == 1 {
		paint = blue
	}
	return errors.Join(b.Fill(img, h, device, paint), b.DestroyPath(h))
}

type textDrawer struct {
	cache      *glyphvg.GlyphCache
	backend    backend.PathRenderer
	device     matrix.Matrix
	escapement float64
	stroke     float64
}

// drawString draws s one cached glyph per character with a fixed advance.
// Characters that were not cached are logged and skipped.
func (d *textDrawer) drawString(img draw.Image, s string, x, y float64) error {
	for i, r := range []rune(s) {
		h, ok := d.cache.Lookup(r)
		if !ok {
			glyphvg.Logger().Warn("glyphdemo: character not in cache", "rune", string(r))
			continue
		}
		if h == glyphvg.NoPath {
			continue
		}
		m := matrix.Translate(x+float64(i)*d.escapement, y).Mul(d.device)
		if err := d.draw(img, h, m); err != nil {
			return fmt.Errorf("draw %q: %w", r, err)
		}
	}
	return nil
}

func (d *textDrawer) draw(img draw.Image, h glyphvg.PathHandle, m matrix.Matrix) error {
	if d.stroke <= 0 {
		return d.backend.Fill(img, h, m, white)
	}
	style := backend.StrokeStyle{
		Width:      d.stroke,
		Cap:        backend.LineCapButt,
		Join:       backend.LineJoinMiter,
		MiterLimit: 4,
	}
	return d.backend.Stroke(img, h, m, style, white)
}

func savePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
