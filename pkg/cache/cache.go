// Package cache provides content-addressed caching for rendered artifacts.
//
// Rendering a scene diagram through Graphviz is the slowest step in the CLI;
// the cache keys artifacts by a hash of the scene snapshot plus render
// options, so an unchanged scene re-renders for free. The file backend is the
// default for CLI usage; NullCache disables caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache is the storage backend interface. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the artifact types the CLI produces.
type Keyer interface {
	// SceneKey generates a key for a serialized scene snapshot.
	SceneKey(sceneHash string) string

	// ArtifactKey generates a key for a rendered artifact derived from a
	// scene snapshot.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts captures everything besides the scene content that
// influences a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SceneKey generates a key for a serialized scene snapshot.
func (k *DefaultKeyer) SceneKey(sceneHash string) string {
	return hashKey("scene", sceneHash)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
