package cache

import "fmt"

// RevisionLength is the number of key characters that form a revision.
const RevisionLength = 8

// RendererKind identifies the renderer whose output is cached. Changing the
// renderer kind invalidates every cached drawing.
const RendererKind = "svg2d"

// Keyer generates cache and lock keys for renders.
type Keyer interface {
	// RenderKey returns the content-addressed key for a render.
	RenderKey(schemaHash, templatePackID, rendererKind string) string
	// LockKey returns the coordination key guarding renders of renderKey.
	LockKey(renderKey string) string
}

// DefaultKeyer implements Keyer with the standard key format.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RenderKey hashes "<schemaHash>:<templatePackID>:<rendererKind>".
func (DefaultKeyer) RenderKey(schemaHash, templatePackID, rendererKind string) string {
	return Hash([]byte(fmt.Sprintf("%s:%s:%s", schemaHash, templatePackID, rendererKind)))
}

// LockKey returns "render:<renderKey>".
func (DefaultKeyer) LockKey(renderKey string) string {
	return "render:" + renderKey
}

// ScopedKeyer wraps a Keyer with a prefix for lock-key isolation, so several
// deployments can share one Redis without contending on each other's renders.
// Render keys are left untouched: they determine revisions and stored paths.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a lock-key prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// RenderKey delegates to the wrapped keyer.
func (k *ScopedKeyer) RenderKey(schemaHash, templatePackID, rendererKind string) string {
	return k.inner.RenderKey(schemaHash, templatePackID, rendererKind)
}

// LockKey prefixes the wrapped keyer's lock key.
func (k *ScopedKeyer) LockKey(renderKey string) string {
	return k.prefix + k.inner.LockKey(renderKey)
}

// Revision returns the short revision identifier of a render key.
func Revision(renderKey string) string {
	if len(renderKey) < RevisionLength {
		return renderKey
	}
	return renderKey[:RevisionLength]
}
