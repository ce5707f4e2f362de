package scene

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matterframe/matterframe/pkg/core/spatial"
)

func TestLoadRebuildsHierarchy(t *testing.T) {
	anchor := mgl64.Vec3{1, 0, 0}
	specs := []RestoreSpec{
		{
			ID:         1,
			Kind:       KindContainer,
			Local:      spatial.At(10, 0, 0),
			SizingMode: SizingHug,
			Layout:     &LayoutConfig{Direction: []Axis{AxisX}, Gap: 0.5, Enabled: true},
			Anchor:     &anchor,
			Children:   []ID{3, 2},
		},
		{ID: 2, Kind: KindLeaf, Parent: 1, Local: spatial.At(1, 0, 0)},
		{ID: 3, Kind: KindLeaf, Parent: 1, Local: spatial.At(-1, 0, 0)},
	}

	s, err := Load(specs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Child order comes from the restore specs, not from ID order.
	kids, err := s.Children(1)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	if len(kids) != 2 || kids[0] != 3 || kids[1] != 2 {
		t.Errorf("children = %v, want [3 2]", kids)
	}

	rec, _ := s.Get(1)
	if rec.Anchor() == nil || rec.Anchor().X() != 1 {
		t.Errorf("anchor = %v, want (1,0,0)", rec.Anchor())
	}
	if !rec.LayoutEnabled() {
		t.Error("layout config should survive the load")
	}

	// New IDs continue past the loaded maximum.
	next := s.AddLeaf(LeafSpec{})
	if next <= 3 {
		t.Errorf("next ID = %d, want > 3", next)
	}
}

func TestLoadRejectsZeroID(t *testing.T) {
	_, err := Load([]RestoreSpec{{ID: 0, Kind: KindLeaf}})
	if err == nil {
		t.Fatal("Load should reject the null ID")
	}
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	_, err := Load([]RestoreSpec{
		{ID: 1, Kind: KindLeaf},
		{ID: 1, Kind: KindLeaf},
	})
	if !errors.Is(err, ErrCorruptHierarchy) {
		t.Errorf("Load(dup) = %v, want ErrCorruptHierarchy", err)
	}
}

func TestLoadRejectsDanglingParent(t *testing.T) {
	_, err := Load([]RestoreSpec{{ID: 1, Kind: KindLeaf, Parent: 99}})
	if err == nil {
		t.Fatal("Load should reject a dangling parent reference")
	}
}

func TestLoadRejectsCycle(t *testing.T) {
	_, err := Load([]RestoreSpec{
		{ID: 1, Kind: KindContainer, Parent: 2, SizingMode: SizingFixed, Children: []ID{2}},
		{ID: 2, Kind: KindContainer, Parent: 1, SizingMode: SizingFixed, Children: []ID{1}},
	})
	if err == nil {
		t.Fatal("Load should reject a parent cycle")
	}
}

func TestLoadRejectsFillContainer(t *testing.T) {
	_, err := Load([]RestoreSpec{
		{ID: 1, Kind: KindContainer, SizingMode: SizingFill},
	})
	if !errors.Is(err, ErrInvalidSizing) {
		t.Errorf("Load(fill container) = %v, want ErrInvalidSizing", err)
	}
}

func TestLoadRejectsAsymmetricChildList(t *testing.T) {
	// Container claims a child whose parent pointer disagrees.
	_, err := Load([]RestoreSpec{
		{ID: 1, Kind: KindContainer, SizingMode: SizingFixed, Children: []ID{2}},
		{ID: 2, Kind: KindLeaf, Parent: 0},
	})
	if err == nil {
		t.Fatal("Load should reject asymmetric parent/child links")
	}
}
