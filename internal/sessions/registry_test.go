package sessions

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iammorganparry/relaypanel/internal/models"
	"github.com/iammorganparry/relaypanel/internal/store"
)

// memKV is an in-memory KV whose writes can be made to fail.
type memKV struct {
	mu      sync.Mutex
	data    map[string][]byte
	putErr  error
	getErr  error
	putKeys []string
}

func newMemKV() *memKV {
	return &memKV{data: map[string][]byte{}}
}

func (m *memKV) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.putKeys = append(m.putKeys, key)
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func TestLoad_EmptyStore(t *testing.T) {
	r, err := Load(newMemKV())
	require.NoError(t, err)
	assert.Equal(t, [models.ButtonCount]string{}, r.All())
}

func TestLoad_ReadsPersistedSlots(t *testing.T) {
	kv := newMemKV()
	kv.data["button0"] = []byte("A")
	kv.data["button2"] = []byte("B")

	r, err := Load(kv)
	require.NoError(t, err)
	assert.Equal(t, [models.ButtonCount]string{"A", "", "B", "", ""}, r.All())
}

func TestLoad_StoreError(t *testing.T) {
	kv := newMemKV()
	kv.getErr = errors.New("disk gone")

	_, err := Load(kv)
	require.Error(t, err)
}

func TestSet_RoundTrip(t *testing.T) {
	r, err := Load(newMemKV())
	require.NoError(t, err)

	for i, s := range []string{"DayOBananaBoat", "", "B", "Café ☕", "x"} {
		require.NoError(t, r.Set(i, s))
		assert.Equal(t, s, r.All()[i])
		assert.Equal(t, s, r.Lookup(i))
	}
}

func TestSet_OverwritesAndClears(t *testing.T) {
	r, err := Load(newMemKV())
	require.NoError(t, err)

	require.NoError(t, r.Set(1, "first"))
	require.NoError(t, r.Set(1, "second"))
	assert.Equal(t, "second", r.Lookup(1))

	require.NoError(t, r.Set(1, ""))
	assert.Equal(t, "", r.Lookup(1))
}

func TestSet_DuplicatesAllowed(t *testing.T) {
	r, err := Load(newMemKV())
	require.NoError(t, err)

	require.NoError(t, r.Set(0, "same"))
	require.NoError(t, r.Set(4, "same"))
	assert.Equal(t, [models.ButtonCount]string{"same", "", "", "", "same"}, r.All())
}

func TestSet_InvalidIndex(t *testing.T) {
	kv := newMemKV()
	r, err := Load(kv)
	require.NoError(t, err)
	require.NoError(t, r.Set(0, "A"))

	for _, i := range []int{-1, models.ButtonCount, 100} {
		err := r.Set(i, "X")
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrInvalidIndex))
	}
	assert.Equal(t, [models.ButtonCount]string{"A", "", "", "", ""}, r.All())
	assert.Equal(t, []string{"button0"}, kv.putKeys)
	assert.Equal(t, "", r.Lookup(-1))
}

func TestSet_StorageFailureLeavesValue(t *testing.T) {
	kv := newMemKV()
	r, err := Load(kv)
	require.NoError(t, err)
	require.NoError(t, r.Set(3, "before"))

	kv.putErr = errors.New("flash full")
	err = r.Set(3, "after")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrStorage))
	assert.Equal(t, "before", r.Lookup(3))
}

func TestRegistry_PersistsAcrossReload(t *testing.T) {
	db, err := store.Open(filepath.Join(t.TempDir(), "relayd.db"))
	require.NoError(t, err)
	defer db.Close()

	r, err := Load(store.NewKVStore(db))
	require.NoError(t, err)
	require.NoError(t, r.Set(2, "Workshop"))

	reloaded, err := Load(store.NewKVStore(db))
	require.NoError(t, err)
	assert.Equal(t, "Workshop", reloaded.Lookup(2))
}
