package cache

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mlfc/matchday/internal/storage"
	"github.com/vmihailenco/msgpack/v5"
)

// Envelope format versions. The version lives in the value, not the key,
// so entries migrate in place on their next write.
const (
	versionJSON    = 1
	versionMsgpack = 2
)

// Entry wraps a cached payload with the time it was written.
type Entry[T any] struct {
	Version   int       `json:"v" msgpack:"v"`
	Timestamp time.Time `json:"ts" msgpack:"ts"`
	Payload   T         `json:"payload" msgpack:"payload"`
}

// Wrap stamps payload with the current time.
func Wrap[T any](payload T) Entry[T] {
	return Entry[T]{
		Version:   versionMsgpack,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// Unwrap returns the payload of entry, or nil for a missing entry.
func Unwrap[T any](entry *Entry[T]) *T {
	if entry == nil {
		return nil
	}
	return &entry.Payload
}

// IsFresh reports whether entry exists and was written within ttl.
func IsFresh[T any](entry *Entry[T], ttl time.Duration) bool {
	if entry == nil || entry.Timestamp.IsZero() {
		return false
	}
	return time.Since(entry.Timestamp) <= ttl
}

// Load reads and decodes the envelope stored under key.
// A miss, a decode failure or an unknown version all read as nil.
func Load[T any](store storage.Store, key string) *Entry[T] {
	raw := store.Get(key)
	if len(raw) == 0 {
		return nil
	}

	var entry Entry[T]
	// Version 1 envelopes are JSON objects; everything newer is msgpack.
	if raw[0] == '{' {
		if err := json.Unmarshal(raw, &entry); err != nil {
			log.Error("Failed to decode JSON cache envelope", "key", key, "error", err)
			return nil
		}
		if entry.Version == 0 {
			entry.Version = versionJSON
		}
	} else {
		if err := msgpack.Unmarshal(raw, &entry); err != nil {
			log.Error("Failed to decode msgpack cache envelope", "key", key, "error", err)
			return nil
		}
	}
	return &entry
}

// Save encodes entry and writes it under key. Encoding failures drop the
// write; the cache never fails outward.
func Save[T any](store storage.Store, key string, entry Entry[T]) {
	entry.Version = versionMsgpack
	raw, err := msgpack.Marshal(entry)
	if err != nil {
		log.Error("Failed to encode cache envelope, dropping write", "key", key, "error", err)
		return
	}
	store.Set(key, raw)
}
