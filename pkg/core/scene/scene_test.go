package scene

import (
	"errors"
	"testing"

	"github.com/matterframe/matterframe/pkg/core/spatial"
)

func newLeaf(t *testing.T, s *Scene, x, y, z float64) ID {
	t.Helper()
	return s.AddLeaf(LeafSpec{
		Local:   spatial.At(x, y, z),
		Extents: spatial.Extents{Width: 1, Height: 1, Depth: 1},
	})
}

func newContainer(t *testing.T, s *Scene, mode SizingMode) ID {
	t.Helper()
	id, err := s.AddContainer(ContainerSpec{SizingMode: mode})
	if err != nil {
		t.Fatalf("AddContainer: %v", err)
	}
	return id
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	s := New()
	a := newLeaf(t, s, 0, 0, 0)
	b := newLeaf(t, s, 0, 0, 0)
	if a == None || b == None {
		t.Fatal("IDs must not be the null ID")
	}
	if b <= a {
		t.Errorf("IDs should be monotonic: got %d then %d", a, b)
	}
}

func TestIDsNeverReused(t *testing.T) {
	s := New()
	a := newLeaf(t, s, 0, 0, 0)
	if err := s.Remove(a, false); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	b := newLeaf(t, s, 0, 0, 0)
	if b == a {
		t.Errorf("freed ID %d was reused", a)
	}
	if _, err := s.Get(a); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(removed) = %v, want ErrNotFound", err)
	}
}

func TestAddContainerRejectsFill(t *testing.T) {
	s := New()
	if _, err := s.AddContainer(ContainerSpec{SizingMode: SizingFill}); !errors.Is(err, ErrInvalidSizing) {
		t.Errorf("AddContainer(fill) = %v, want ErrInvalidSizing", err)
	}
}

func TestZeroLocalNormalizedToIdentity(t *testing.T) {
	s := New()
	id := s.AddLeaf(LeafSpec{})
	rec, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !spatial.ApproxEqual(rec.Local(), spatial.Identity(), spatial.Tolerance) {
		t.Errorf("zero local = %+v, want identity", rec.Local())
	}
}

func TestChildrenKeepInsertionOrder(t *testing.T) {
	s := New()
	c := newContainer(t, s, SizingFixed)
	var want []ID
	for i := 0; i < 5; i++ {
		leaf := newLeaf(t, s, float64(i), 0, 0)
		if err := s.SetParent(leaf, c); err != nil {
			t.Fatalf("SetParent: %v", err)
		}
		want = append(want, leaf)
	}

	got, err := s.Children(c)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children = %v, want insertion order %v", got, want)
		}
	}
}

func TestChildrenOfLeafFails(t *testing.T) {
	s := New()
	leaf := newLeaf(t, s, 0, 0, 0)
	if _, err := s.Children(leaf); !errors.Is(err, ErrNotContainer) {
		t.Errorf("Children(leaf) = %v, want ErrNotContainer", err)
	}
}

func TestRemoveNonEmptyContainerRequiresCascade(t *testing.T) {
	s := New()
	c := newContainer(t, s, SizingFixed)
	leaf := newLeaf(t, s, 0, 0, 0)
	if err := s.SetParent(leaf, c); err != nil {
		t.Fatalf("SetParent: %v", err)
	}

	if err := s.Remove(c, false); !errors.Is(err, ErrContainerNotEmpty) {
		t.Fatalf("Remove without cascade = %v, want ErrContainerNotEmpty", err)
	}
	if !s.Contains(c) || !s.Contains(leaf) {
		t.Fatal("failed remove must leave the scene unchanged")
	}
}

func TestRemoveCascadePromotesChildren(t *testing.T) {
	s := New()
	outer := newContainer(t, s, SizingFixed)
	inner := newContainer(t, s, SizingFixed)
	if err := s.SetParent(inner, outer); err != nil {
		t.Fatalf("SetParent: %v", err)
	}
	leaf := newLeaf(t, s, 2, 0, 0)
	if err := s.SetParent(leaf, inner); err != nil {
		t.Fatalf("SetParent: %v", err)
	}

	worldBefore, err := s.WorldPosition(leaf)
	if err != nil {
		t.Fatalf("WorldPosition: %v", err)
	}

	if err := s.Remove(inner, true); err != nil {
		t.Fatalf("Remove cascade: %v", err)
	}

	parent, err := s.Parent(leaf)
	if err != nil {
		t.Fatalf("Parent: %v", err)
	}
	if parent != outer {
		t.Errorf("promoted parent = %d, want %d", parent, outer)
	}

	worldAfter, err := s.WorldPosition(leaf)
	if err != nil {
		t.Fatalf("WorldPosition: %v", err)
	}
	if !worldBefore.ApproxEqualThreshold(worldAfter, spatial.Tolerance) {
		t.Errorf("world position moved during cascade: %v -> %v", worldBefore, worldAfter)
	}

	if err := s.Validate(); err != nil {
		t.Errorf("Validate after cascade: %v", err)
	}
}

func TestSetAutoLayoutCapturesAnchorOnce(t *testing.T) {
	s := New()
	c := newContainer(t, s, SizingHug)
	small := s.AddLeaf(LeafSpec{
		Local:   spatial.At(0, 0, 0),
		Extents: spatial.Extents{Width: 1, Height: 1, Depth: 1},
	})
	big := s.AddLeaf(LeafSpec{
		Local:   spatial.At(4, 0, 0),
		Extents: spatial.Extents{Width: 1, Height: 1, Depth: 3},
	})
	for _, id := range []ID{small, big} {
		if err := s.SetParent(id, c); err != nil {
			t.Fatalf("SetParent: %v", err)
		}
	}

	cfg := LayoutConfig{Direction: []Axis{AxisX}, Enabled: true}
	if err := s.SetAutoLayout(c, cfg); err != nil {
		t.Fatalf("SetAutoLayout: %v", err)
	}

	rec, _ := s.Get(c)
	anchor := rec.Anchor()
	if anchor == nil {
		t.Fatal("anchor should be captured when enabling layout with children")
	}
	// Volume-weighted toward the bigger child: (0*1 + 4*3)/4 = 3.
	if got := anchor.X(); got < 2.9 || got > 3.1 {
		t.Errorf("anchor x = %v, want 3", got)
	}

	// Disable and re-enable: the anchor must survive unchanged.
	cfg.Enabled = false
	if err := s.SetAutoLayout(c, cfg); err != nil {
		t.Fatalf("SetAutoLayout disable: %v", err)
	}
	cfg.Enabled = true
	if err := s.SetAutoLayout(c, cfg); err != nil {
		t.Fatalf("SetAutoLayout re-enable: %v", err)
	}
	rec, _ = s.Get(c)
	if got := rec.Anchor(); got == nil || got.X() != anchor.X() {
		t.Errorf("anchor after re-enable = %v, want %v", got, anchor)
	}
}

func TestSetAutoLayoutOnLeafFails(t *testing.T) {
	s := New()
	leaf := newLeaf(t, s, 0, 0, 0)
	err := s.SetAutoLayout(leaf, LayoutConfig{Enabled: true})
	if !errors.Is(err, ErrNotContainer) {
		t.Errorf("SetAutoLayout(leaf) = %v, want ErrNotContainer", err)
	}
}

func TestLayoutConfigIsCopied(t *testing.T) {
	s := New()
	c := newContainer(t, s, SizingFixed)
	cfg := LayoutConfig{Direction: []Axis{AxisX, AxisY}, Enabled: true}
	if err := s.SetAutoLayout(c, cfg); err != nil {
		t.Fatalf("SetAutoLayout: %v", err)
	}

	cfg.Direction[0] = AxisZ

	rec, _ := s.Get(c)
	if got := rec.Layout().Direction[0]; got != AxisX {
		t.Errorf("stored config aliased caller slice: direction[0] = %v", got)
	}
}
