package observability

import (
	"context"
	"testing"
	"time"
)

type recordingEngineHooks struct {
	reparents int
	layouts   int
	cascades  int
}

func (r *recordingEngineHooks) OnReparent(context.Context, uint64, uint64, uint64, error) {
	r.reparents++
}
func (r *recordingEngineHooks) OnLayoutStart(context.Context, uint64, int) {}
func (r *recordingEngineHooks) OnLayoutComplete(context.Context, uint64, string, bool, time.Duration, error) {
	r.layouts++
}
func (r *recordingEngineHooks) OnCascade(context.Context, uint64, int, error) {
	r.cascades++
}

type recordingCacheHooks struct {
	hits, misses, sets int
}

func (r *recordingCacheHooks) OnCacheHit(context.Context, string)      { r.hits++ }
func (r *recordingCacheHooks) OnCacheMiss(context.Context, string)     { r.misses++ }
func (r *recordingCacheHooks) OnCacheSet(context.Context, string, int) { r.sets++ }

func TestSetEngineHooks(t *testing.T) {
	defer Reset()

	rec := &recordingEngineHooks{}
	SetEngineHooks(rec)

	ctx := context.Background()
	Engine().OnReparent(ctx, 1, 0, 2, nil)
	Engine().OnLayoutComplete(ctx, 2, "applied", true, time.Millisecond, nil)
	Engine().OnCascade(ctx, 1, 3, nil)

	if rec.reparents != 1 || rec.layouts != 1 || rec.cascades != 1 {
		t.Errorf("hooks not invoked: %+v", rec)
	}
}

func TestSetCacheHooks(t *testing.T) {
	defer Reset()

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheSet(ctx, "artifact", 128)

	if rec.hits != 1 || rec.misses != 1 || rec.sets != 1 {
		t.Errorf("hooks not invoked: %+v", rec)
	}
}

func TestSetHooksIgnoresNil(t *testing.T) {
	defer Reset()

	rec := &recordingEngineHooks{}
	SetEngineHooks(rec)
	SetEngineHooks(nil)

	Engine().OnCascade(context.Background(), 1, 0, nil)
	if rec.cascades != 1 {
		t.Error("nil registration should keep the previous hooks")
	}
}

func TestReset(t *testing.T) {
	SetEngineHooks(&recordingEngineHooks{})
	SetCacheHooks(&recordingCacheHooks{})
	Reset()

	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Reset should restore NoopEngineHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset should restore NoopCacheHooks")
	}
}
