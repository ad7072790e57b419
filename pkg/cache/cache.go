package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Default TTLs by entry kind.
const (
	TTLHTTP     = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Keyer derives cache keys. Keys of different kinds never collide.
type Keyer interface {
	// HTTPKey keys a cached HTTP response body.
	HTTPKey(namespace, key string) string
	// LayoutKey keys a computed layout for a mind map document hash.
	LayoutKey(mapHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered output for a layout hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the layout parameters that change the result.
type LayoutKeyOpts struct {
	VizType string  `json:"viz_type"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// ArtifactKeyOpts holds the render parameters that change the result.
type ArtifactKeyOpts struct {
	VizType    string  `json:"viz_type"`
	Format     string  `json:"format"`
	Style      string  `json:"style"`
	Theme      string  `json:"theme"`
	Labels     bool    `json:"labels"`
	Background bool    `json:"background"`
	Scale      float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces "kind:hash" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

func (DefaultKeyer) LayoutKey(mapHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", mapHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
