package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (Store, func()) {
	t.Helper()
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	return New(db), teardown
}

func TestInitDB_CreatesCacheTable(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='cache_entries'").Scan(&name)
	require.NoError(t, err, "Querying for cache_entries table should not produce an error")
	assert.Equal(t, "cache_entries", name)
}

func TestStore_RoundTrip(t *testing.T) {
	store, teardown := newTestStore(t)
	defer teardown()

	key := Key("open_matches", "S1")
	store.Set(key, []byte(`{"ok":true}`))
	assert.Equal(t, []byte(`{"ok":true}`), store.Get(key))

	store.Set(key, []byte(`{"ok":false}`))
	assert.Equal(t, []byte(`{"ok":false}`), store.Get(key), "Set should replace the previous value")
}

func TestStore_MissReturnsNil(t *testing.T) {
	store, teardown := newTestStore(t)
	defer teardown()

	assert.Nil(t, store.Get(Key("open_matches", "nope")))
}

func TestStore_Delete(t *testing.T) {
	store, teardown := newTestStore(t)
	defer teardown()

	key := Key("leaderboard", "S1")
	store.Set(key, []byte("x"))
	store.Delete(key)
	assert.Nil(t, store.Get(key))

	// Deleting a missing key is a no-op.
	store.Delete(key)
}

func TestStore_Clear(t *testing.T) {
	store, teardown := newTestStore(t)
	defer teardown()

	store.Set(Key("players", ""), []byte("a"))
	store.Set(Key("seasons", ""), []byte("b"))
	store.Clear()

	assert.Nil(t, store.Get(Key("players", "")))
	assert.Nil(t, store.Get(Key("seasons", "")))
}

func TestStore_FailureIsolation(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	store := New(db)

	// Kill the backing store. Every operation must degrade to a no-op
	// without panicking or surfacing an error.
	teardown()

	key := Key("match_detail", "M1")
	store.Set(key, []byte("never stored"))
	assert.Nil(t, store.Get(key), "a failed Set must not leave a readable partial write")
	store.Delete(key)
}

func TestKey_DisjointDomains(t *testing.T) {
	assert.Equal(t, "matchday:open_matches:S1", Key("open_matches", "S1"))
	assert.Equal(t, "matchday:players", Key("players", ""))

	// A domain containing the separator cannot collide with another
	// domain's identifier space.
	assert.NotEqual(t, Key("open:matches", "S1"), Key("open", "matches:S1"))
}
