package workspace

import (
	"context"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return store
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	sess := New("/tmp/scene.json", 12, time.Hour)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for stored session")
	}
	if got.Path != sess.Path || got.ObjectCount != 12 {
		t.Errorf("Get = %+v, want path %q with 12 objects", got, sess.Path)
	}
}

func TestFileStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	got, err := store.Get(ctx, "does-not-exist")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("Get for missing session = %+v, want nil", got)
	}
}

func TestFileStoreGetExpired(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	sess := New("/tmp/scene.json", 1, -time.Hour)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("Get for expired session = %+v, want nil", got)
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	sess := New("/tmp/scene.json", 1, time.Hour)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, _ := store.Get(ctx, sess.ID)
	if got != nil {
		t.Error("session should be gone after Delete")
	}

	// Deleting again is not an error.
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Errorf("Delete of missing session: %v", err)
	}
}

func TestFileStoreListOrdersByActivity(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	old := New("/tmp/old.json", 1, time.Hour)
	old.UpdatedAt = time.Now().Add(-time.Minute)
	fresh := New("/tmp/fresh.json", 2, time.Hour)
	expired := New("/tmp/expired.json", 3, -time.Hour)

	for _, sess := range []*Session{old, fresh, expired} {
		if err := store.Set(ctx, sess); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	sessions, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("List returned %d sessions, want 2", len(sessions))
	}
	if sessions[0].Path != "/tmp/fresh.json" || sessions[1].Path != "/tmp/old.json" {
		t.Errorf("List order = [%s %s], want fresh first", sessions[0].Path, sessions[1].Path)
	}
}

func TestFileStoreCleanup(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	live := New("/tmp/live.json", 1, time.Hour)
	expired := New("/tmp/expired.json", 1, -time.Hour)
	for _, sess := range []*Session{live, expired} {
		if err := store.Set(ctx, sess); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	if err := store.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	if got, _ := store.Get(ctx, live.ID); got == nil {
		t.Error("Cleanup removed a live session")
	}
	sessions, _ := store.List(ctx)
	if len(sessions) != 1 {
		t.Errorf("List after Cleanup returned %d sessions, want 1", len(sessions))
	}
}

func TestRecordUpsertsByPath(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := Record(ctx, store, "/tmp/scene.json", 5); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := Record(ctx, store, "/tmp/scene.json", 8); err != nil {
		t.Fatalf("Record: %v", err)
	}

	sessions, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("List returned %d sessions, want 1 (same path should upsert)", len(sessions))
	}
	if sessions[0].ObjectCount != 8 {
		t.Errorf("ObjectCount = %d, want 8 after second Record", sessions[0].ObjectCount)
	}

	if err := Record(ctx, store, "/tmp/other.json", 2); err != nil {
		t.Fatalf("Record: %v", err)
	}
	sessions, _ = store.List(ctx)
	if len(sessions) != 2 {
		t.Errorf("List returned %d sessions, want 2 for distinct paths", len(sessions))
	}
}

func TestSessionTouchExtendsExpiry(t *testing.T) {
	sess := New("/tmp/scene.json", 1, time.Minute)
	before := sess.ExpiresAt
	sess.Touch(time.Hour)
	if !sess.ExpiresAt.After(before) {
		t.Error("Touch should push ExpiresAt forward")
	}
	if sess.IsExpired() {
		t.Error("freshly touched session should not be expired")
	}
}
