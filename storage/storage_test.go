package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/booking-engine/storage"
)

func TestMemory_GetSetRemove(t *testing.T) {
	kv := storage.NewMemory()

	_, ok, err := kv.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("k", []byte("v1")))
	data, ok, err := kv.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), data)

	// Whole-value replacement.
	require.NoError(t, kv.Set("k", []byte("v2")))
	data, _, _ = kv.Get("k")
	assert.Equal(t, []byte("v2"), data)

	require.NoError(t, kv.Remove("k"))
	_, ok, _ = kv.Get("k")
	assert.False(t, ok)

	// Removing an absent key is not an error.
	assert.NoError(t, kv.Remove("k"))
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set("k", []byte("abc")))

	data, _, _ := kv.Get("k")
	data[0] = 'X'

	fresh, _, _ := kv.Get("k")
	assert.Equal(t, []byte("abc"), fresh)
}

func TestLoadJSON_RoundTrip(t *testing.T) {
	kv := storage.NewMemory()

	type item struct {
		Name string `json:"name"`
	}
	storage.SaveJSON(kv, "items", []item{{Name: "a"}, {Name: "b"}})

	var loaded []item
	require.True(t, storage.LoadJSON(kv, "items", &loaded))
	assert.Equal(t, []item{{Name: "a"}, {Name: "b"}}, loaded)
}

func TestLoadJSON_AbsentKey(t *testing.T) {
	kv := storage.NewMemory()

	var loaded []string
	assert.False(t, storage.LoadJSON(kv, "missing", &loaded))
	assert.Empty(t, loaded)
}

func TestLoadJSON_CorruptBlobTreatedAsEmpty(t *testing.T) {
	// Decode failure is silent recovery: the caller proceeds with an
	// empty collection, never an error.
	kv := storage.NewMemory()
	require.NoError(t, kv.Set("items", []byte("{not json")))

	var loaded []string
	assert.False(t, storage.LoadJSON(kv, "items", &loaded))
	assert.Empty(t, loaded)
}
