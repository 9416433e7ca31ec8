package glyphvg

// FontProvider loads raw glyph outlines.
//
// LoadOutline returns an error matching ErrGlyphNotFound when the font has
// no glyph for r. The returned outline is owned by the provider and only
// valid until its next call.
type FontProvider interface {
	LoadOutline(r rune) (*Outline, error)
}

// PathBackend turns command streams into backend-owned paths.
//
// CreatePath must not retain data: the slices are reused by the caller.
type PathBackend interface {
	CreatePath(data PathData) (PathHandle, error)
	DestroyPath(h PathHandle) error
}

// CapabilityRemover is implemented by backends that can restrict what a
// path may be used for after it is built.
type CapabilityRemover interface {
	RemoveCapabilities(h PathHandle, caps Capability) error
}
