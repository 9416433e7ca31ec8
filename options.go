package glyphvg

// Option configures a Compiler during creation.
//
// Example:
//
//	// Default capacities (256 segments, 1024 coordinates)
//	c := glyphvg.NewCompiler(provider, backend)
//
//	// Room for more complex glyphs
//	c := glyphvg.NewCompiler(provider, backend, glyphvg.WithCapacity(1024, 4096))
type Option func(*compilerOptions)

// compilerOptions holds optional configuration for Compiler creation.
type compilerOptions struct {
	converter ConverterConfig
	caps      Capability
}

// defaultCompilerOptions returns the default compiler options.
func defaultCompilerOptions() compilerOptions {
	return compilerOptions{
		converter: DefaultConverterConfig(),
		caps:      CapsReadOnly,
	}
}

// WithConverterConfig sets the converter configuration.
func WithConverterConfig(config ConverterConfig) Option {
	return func(o *compilerOptions) {
		o.converter = config
	}
}

// WithCapacity sets the maximum segments and coordinates per glyph.
// Non-positive values keep the defaults.
func WithCapacity(maxSegments, maxCoords int) Option {
	return func(o *compilerOptions) {
		if maxSegments > 0 {
			o.converter.MaxSegments = maxSegments
		}
		if maxCoords > 0 {
			o.converter.MaxCoords = maxCoords
		}
	}
}

// WithRemovedCapabilities sets the capabilities removed from every compiled
// path when the backend implements CapabilityRemover.
// The default is CapsReadOnly; zero leaves paths untouched.
func WithRemovedCapabilities(caps Capability) Option {
	return func(o *compilerOptions) {
		o.caps = caps
	}
}

// CacheOption configures a GlyphCache during creation.
type CacheOption func(*cacheOptions)

// cacheOptions holds optional configuration for GlyphCache creation.
type cacheOptions struct {
	skipMissing bool
}

// WithSkipMissing makes Build skip characters the font has no glyph for
// instead of failing. Skipped characters look up as not found.
func WithSkipMissing(skip bool) CacheOption {
	return func(o *cacheOptions) {
		o.skipMissing = skip
	}
}
