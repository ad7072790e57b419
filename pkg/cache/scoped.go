package cache

// ScopedKeyer prefixes every key of an inner [Keyer], giving each server
// instance or tenant its own namespace in a shared cache such as Redis.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "mindmap:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

func (k *ScopedKeyer) LayoutKey(mapHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(mapHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
