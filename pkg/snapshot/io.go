package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matterframe/matterframe/pkg/core/scene"
)

// MarshalScene converts a scene to JSON bytes.
// Objects are sorted by ID for deterministic output.
func MarshalScene(s *scene.Scene) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeSceneTo(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSceneFile writes a scene to a JSON file.
// The file is created with 0644 permissions.
func WriteSceneFile(s *scene.Scene, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeSceneTo(s, f)
}

// WriteScene writes a scene as JSON to an io.Writer.
// Use MarshalScene for in-memory serialization or WriteSceneFile for files.
func WriteScene(s *scene.Scene, w io.Writer) error {
	return writeSceneTo(s, w)
}

// ReadSceneFile reads a JSON file and returns the restored scene.
// Returns validation errors for malformed snapshots or hierarchy
// constraint violations.
func ReadSceneFile(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readSceneFrom(f)
}

// ReadScene decodes a JSON snapshot from an io.Reader into a scene.
// Use ReadSceneFile for files or pass bytes.NewReader for in-memory data.
func ReadScene(r io.Reader) (*scene.Scene, error) {
	return readSceneFrom(r)
}

// Unmarshal deserializes JSON bytes to a Snapshot without building a scene.
func Unmarshal(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func writeSceneTo(s *scene.Scene, w io.Writer) error {
	out := FromScene(s)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readSceneFrom(r io.Reader) (*scene.Scene, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToScene(snap)
}
