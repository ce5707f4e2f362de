package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a namespaced cache key from the given parts. The parts are
// serialized and digested together, so two keys collide only when every
// component matches; the namespace prefix keeps scene and artifact entries
// from ever shadowing each other.
func hashKey(namespace string, parts ...any) string {
	payload, _ := json.Marshal(parts)
	sum := sha256.Sum256(payload)
	return namespace + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 digest of data. The digest of the canonical
// snapshot bytes is the content address artifact keys are derived from:
// any scene edit that survives serialization produces a new address.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
