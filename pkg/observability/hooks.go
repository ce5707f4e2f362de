// Package observability provides hooks for metrics, tracing, and logging.
//
// The engine emits events about hierarchy edits, layout recomputes, and
// cascade propagation without depending on any observability backend.
// Consumers register hook implementations at startup; libraries call the
// accessor functions to emit events. Defaults are no-ops, so the hooks are
// free when unused and registration cannot create import cycles.
package observability

import (
	"context"
	"sync"
	"time"
)

// EngineHooks receives events from scene engine operations.
type EngineHooks interface {
	// OnReparent records a completed or failed reparent. oldParent and
	// newParent are object IDs; zero means root level.
	OnReparent(ctx context.Context, object, oldParent, newParent uint64, err error)

	// OnLayoutStart records the beginning of a container recompute.
	OnLayoutStart(ctx context.Context, container uint64, childCount int)

	// OnLayoutComplete records the end of a container recompute with its
	// outcome ("applied", "disabled", ...) and whether the container resized.
	OnLayoutComplete(ctx context.Context, container uint64, outcome string, resized bool, duration time.Duration, err error)

	// OnCascade records one finished upward propagation: how many ancestor
	// recomputes it took before terminating.
	OnCascade(ctx context.Context, object uint64, steps int, err error)
}

// CacheHooks receives events from artifact cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnReparent(context.Context, uint64, uint64, uint64, error) {}
func (NoopEngineHooks) OnLayoutStart(context.Context, uint64, int)                {}
func (NoopEngineHooks) OnLayoutComplete(context.Context, uint64, string, bool, time.Duration, error) {
}
func (NoopEngineHooks) OnCascade(context.Context, uint64, int, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// This should be called once at application startup before any scene operations.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	cacheHooks = NoopCacheHooks{}
}
