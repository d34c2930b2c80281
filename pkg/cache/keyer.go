package cache

// Keyer builds cache keys.
type Keyer interface {
	// HTTPKey returns the key for a remote response identified by key within
	// namespace (e.g. "uniprot:search").
	HTTPKey(namespace, key string) string
}

// DefaultKeyer produces plain "http:<namespace>:<key>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey generates a key for HTTP response caching.
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// ScopedKeyer prefixes every key of an inner Keyer, so clients pointed at
// different endpoints never share entries:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "rest.uniprot.org:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns inner scoped by prefix. A nil inner uses the
// default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// HTTPKey returns the inner key with the prefix prepended.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}
