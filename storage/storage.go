/*
Package storage defines the key-value persistence interface shared by all
collection stores.

PURPOSE:
  Every persisted collection in the system (appointments, services,
  earnings, completed appointments) is serialized as one self-describing
  blob under its own key. Access is always load-entire-collection /
  mutate-in-memory / save-entire-collection; there is no partial update
  format. From a caller's point of view a write is atomic: either the old
  or the new full collection is observed, never a mix.

KEY DECISIONS:
  - Decode failures are silent: a blob that cannot be decoded is treated
    as an empty collection, never surfaced to the user.
  - Writes are best-effort: a failed save is logged and dropped. There is
    no retry. This is an acknowledged gap, not an accident.

IMPLEMENTATIONS:
  - Memory (memory.go): mutex-guarded map, used in tests.
  - sqlite.Store (sqlite/sqlite.go): durable single-table blob store.

SEE ALSO:
  - booking/store.go: appointment collection built on this interface
  - earnings/ledger.go, stats/archive.go: derived record collections
*/
package storage

import (
	"encoding/json"
	"log"
)

// =============================================================================
// KV - Key-value persistence interface
// =============================================================================

// KV is the minimal persistence contract. Every store receives an explicit
// KV instance at construction time; nothing discovers storage ambiently.
type KV interface {
	// Get returns the blob stored under key. The second return value is
	// false when the key is absent.
	Get(key string) ([]byte, bool, error)

	// Set stores the blob under key, replacing any previous value.
	Set(key string, value []byte) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(key string) error
}

// =============================================================================
// JSON COLLECTION HELPERS
// =============================================================================

// LoadJSON decodes the collection stored under key into out.
// Absent keys, read errors and malformed blobs all leave out untouched and
// return false: the caller proceeds with an empty collection.
func LoadJSON(kv KV, key string, out any) bool {
	data, ok, err := kv.Get(key)
	if err != nil {
		log.Printf("storage: load %q failed: %v", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("storage: decode %q failed, treating as empty: %v", key, err)
		return false
	}
	return true
}

// SaveJSON serializes the collection and rewrites the blob under key.
// Failures are logged and dropped.
func SaveJSON(kv KV, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("storage: encode %q failed: %v", key, err)
		return
	}
	if err := kv.Set(key, data); err != nil {
		log.Printf("storage: save %q failed: %v", key, err)
	}
}
