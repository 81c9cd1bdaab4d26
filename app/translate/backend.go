// Package translate renders text into the target language through an ordered
// cascade of interchangeable backends. Every failure mode degrades to the
// original text; nothing in the public surface returns an error.
package translate

import "context"

// Backend is one externally hosted translation API. Backends are ranked
// fallbacks; the engine advances through them until one produces a usable
// translation.
type Backend interface {
	Name() string
	// Limit is the per-request character budget of this backend.
	Limit() int
	// Translate returns the translated text. source may be "auto" only for
	// backends that support detection.
	Translate(ctx context.Context, text, source, target string) (string, error)
}
