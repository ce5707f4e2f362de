package snapshot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matterframe/matterframe/pkg/core/scene"
	"github.com/matterframe/matterframe/pkg/core/spatial"
)

// buildScene assembles a container with an active layout and two leaves
// parented in reverse ID order, so round trips must preserve more than the
// default ordering.
func buildScene(t *testing.T) *scene.Scene {
	t.Helper()
	s := scene.New()

	c, err := s.AddContainer(scene.ContainerSpec{
		Local:      spatial.At(1, 2, 3),
		SizingMode: scene.SizingHug,
	})
	if err != nil {
		t.Fatalf("AddContainer: %v", err)
	}
	a := s.AddLeaf(scene.LeafSpec{Extents: spatial.Extents{Width: 1, Height: 1, Depth: 1}})
	b := s.AddLeaf(scene.LeafSpec{Extents: spatial.Extents{Width: 2, Height: 1, Depth: 1}})

	// Parent the later leaf first so children order differs from ID order.
	for _, id := range []scene.ID{b, a} {
		if err := s.SetParent(id, c); err != nil {
			t.Fatalf("SetParent: %v", err)
		}
	}
	if err := s.SetAutoLayout(c, scene.LayoutConfig{
		Direction: []scene.Axis{scene.AxisX, scene.AxisY},
		Gap:       0.5,
		Padding:   scene.Padding{Left: 1, Right: 1},
		Enabled:   true,
	}); err != nil {
		t.Fatalf("SetAutoLayout: %v", err)
	}
	return s
}

func TestRoundTripPreservesStructure(t *testing.T) {
	s := buildScene(t)

	data, err := MarshalScene(s)
	if err != nil {
		t.Fatalf("MarshalScene: %v", err)
	}
	restored, err := ReadScene(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadScene: %v", err)
	}

	if got, want := restored.IDs(), s.IDs(); len(got) != len(want) {
		t.Fatalf("restored %d objects, want %d", len(got), len(want))
	}

	wantKids, _ := s.Children(1)
	gotKids, err := restored.Children(1)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	if len(gotKids) != 2 || gotKids[0] != wantKids[0] || gotKids[1] != wantKids[1] {
		t.Errorf("children order = %v, want %v", gotKids, wantKids)
	}

	rec, err := restored.Get(1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	cfg := rec.Layout()
	if cfg == nil {
		t.Fatal("layout config lost in round trip")
	}
	if len(cfg.Direction) != 2 || cfg.Direction[0] != scene.AxisX || cfg.Direction[1] != scene.AxisY {
		t.Errorf("direction = %v, want [x y]", cfg.Direction)
	}
	if cfg.Gap != 0.5 || cfg.Padding.Left != 1 || !cfg.Enabled {
		t.Errorf("layout fields = %+v, want gap 0.5, left padding 1, enabled", cfg)
	}
	if rec.Anchor() == nil {
		t.Error("anchor lost in round trip")
	}
	if !spatial.ApproxEqual(rec.Local(), spatial.At(1, 2, 3), spatial.Tolerance) {
		t.Errorf("container local = %+v, want position (1,2,3)", rec.Local())
	}
}

func TestRoundTripContinuesIDSequence(t *testing.T) {
	s := buildScene(t)
	data, err := MarshalScene(s)
	if err != nil {
		t.Fatalf("MarshalScene: %v", err)
	}
	restored, err := ReadScene(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadScene: %v", err)
	}

	next := restored.AddLeaf(scene.LeafSpec{})
	if next <= 3 {
		t.Errorf("new ID = %d, want > 3 (IDs must not be reused)", next)
	}
}

func TestMarshalSceneDeterministic(t *testing.T) {
	s := buildScene(t)
	first, err := MarshalScene(s)
	if err != nil {
		t.Fatalf("MarshalScene: %v", err)
	}
	second, err := MarshalScene(s)
	if err != nil {
		t.Fatalf("MarshalScene: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("MarshalScene output should be byte-stable")
	}
}

func TestRoundTripRotation(t *testing.T) {
	s := scene.New()
	rot := mgl64.QuatRotate(1.2, mgl64.Vec3{0, 0, 1})
	s.AddLeaf(scene.LeafSpec{
		Local: spatial.Transform{
			Position: mgl64.Vec3{1, 0, 0},
			Rotation: rot,
			Scale:    mgl64.Vec3{1, 1, 1},
		},
		Extents: spatial.Extents{Width: 1, Height: 1, Depth: 1},
	})

	data, err := MarshalScene(s)
	if err != nil {
		t.Fatalf("MarshalScene: %v", err)
	}
	restored, err := ReadScene(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadScene: %v", err)
	}
	rec, _ := restored.Get(1)
	if !rec.Local().Rotation.ApproxEqualThreshold(rot, spatial.Tolerance) {
		t.Errorf("rotation = %v, want %v", rec.Local().Rotation, rot)
	}
}

func TestToSceneRejectsUnknownKind(t *testing.T) {
	snap := Snapshot{Objects: []Object{{
		ID:    1,
		Kind:  "widget",
		Scale: [3]float64{1, 1, 1},
	}}}
	if _, err := ToScene(snap); err == nil {
		t.Error("unknown kind should fail")
	}
}

func TestToSceneRejectsUnknownSizing(t *testing.T) {
	snap := Snapshot{Objects: []Object{{
		ID:     1,
		Kind:   KindLeaf,
		Scale:  [3]float64{1, 1, 1},
		Sizing: [3]string{"stretch", "fixed", "fixed"},
	}}}
	if _, err := ToScene(snap); err == nil {
		t.Error("unknown sizing mode should fail")
	}
}

func TestToSceneRejectsUnknownAxis(t *testing.T) {
	snap := Snapshot{Objects: []Object{{
		ID:         1,
		Kind:       KindContainer,
		Scale:      [3]float64{1, 1, 1},
		SizingMode: SizingHug,
		Layout:     &Layout{Direction: []string{"w"}},
	}}}
	if _, err := ToScene(snap); err == nil {
		t.Error("unknown axis should fail")
	}
}

func TestToSceneRejectsDuplicateIDs(t *testing.T) {
	snap := Snapshot{Objects: []Object{
		{ID: 1, Kind: KindLeaf, Scale: [3]float64{1, 1, 1}},
		{ID: 1, Kind: KindLeaf, Scale: [3]float64{1, 1, 1}},
	}}
	if _, err := ToScene(snap); err == nil {
		t.Error("duplicate IDs should fail")
	}
}

func TestReadSceneRejectsGarbage(t *testing.T) {
	if _, err := ReadScene(strings.NewReader("{not json")); err == nil {
		t.Error("malformed JSON should fail")
	}
}

func TestWriteAndReadSceneFile(t *testing.T) {
	s := buildScene(t)
	path := t.TempDir() + "/scene.json"

	if err := WriteSceneFile(s, path); err != nil {
		t.Fatalf("WriteSceneFile: %v", err)
	}
	restored, err := ReadSceneFile(path)
	if err != nil {
		t.Fatalf("ReadSceneFile: %v", err)
	}
	if len(restored.IDs()) != len(s.IDs()) {
		t.Errorf("restored %d objects, want %d", len(restored.IDs()), len(s.IDs()))
	}
}
