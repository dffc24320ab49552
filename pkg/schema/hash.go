package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// contentHashLength is the number of hex characters kept from the SHA-256 of
// the canonical schema encoding.
const contentHashLength = 16

// ContentHash returns the schema's content hash. A hash supplied upstream in
// SchemaHash is authoritative; otherwise the hash is derived from the canonical
// JSON encoding, so two schemas with the same semantic content share a hash
// regardless of where they came from.
func (a *Assembly) ContentHash() string {
	if a.SchemaHash != "" {
		return a.SchemaHash
	}
	return ComputeHash(a)
}

// ComputeHash hashes the canonical JSON encoding of a, ignoring any SchemaHash
// already set on it.
func ComputeHash(a *Assembly) string {
	c := *a
	c.SchemaHash = ""
	// Struct encoding has a fixed field order and no maps, so it is canonical.
	data, err := json.Marshal(&c)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:contentHashLength]
}
