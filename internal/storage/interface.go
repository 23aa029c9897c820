package storage

// Store is the persistent key-value adapter backing all cached snapshots.
//
// The cache is an optimization, never a source of truth: no method returns
// an error. A failed Get reads as a miss, a failed Set or Delete is a
// silent no-op (logged, not surfaced).
type Store interface {
	// Get returns the stored blob for key, or nil on a miss or failure.
	Get(key string) []byte
	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string)
	// Clear removes every entry.
	Clear()
}
