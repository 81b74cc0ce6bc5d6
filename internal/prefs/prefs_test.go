package prefs_test

import (
	"testing"

	"github.com/parcauto/fleet-dashboard/internal/config"
	"github.com/parcauto/fleet-dashboard/internal/prefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *prefs.Store {
	t.Helper()
	store, err := prefs.NewStore(&config.PrefsConfig{Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate())
	return store
}

func TestSetAndGet(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set(1, "theme", `{"mode":"dark"}`))

	value, err := store.Get(1, "theme")
	require.NoError(t, err)
	assert.Equal(t, `{"mode":"dark"}`, value)
}

func TestGetMissingKey(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(1, "absent")
	assert.ErrorIs(t, err, prefs.ErrNotFound)
}

func TestSetOverwritesExistingValue(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set(1, "per_page", `10`))
	require.NoError(t, store.Set(1, "per_page", `25`))

	value, err := store.Get(1, "per_page")
	require.NoError(t, err)
	assert.Equal(t, `25`, value)

	all, err := store.All(1)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPreferencesAreScopedPerUser(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set(1, "theme", `"dark"`))
	require.NoError(t, store.Set(2, "theme", `"light"`))

	v1, err := store.Get(1, "theme")
	require.NoError(t, err)
	v2, err := store.Get(2, "theme")
	require.NoError(t, err)

	assert.Equal(t, `"dark"`, v1)
	assert.Equal(t, `"light"`, v2)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set(1, "theme", `"dark"`))
	require.NoError(t, store.Delete(1, "theme"))

	_, err := store.Get(1, "theme")
	assert.ErrorIs(t, err, prefs.ErrNotFound)

	// Deleting again is still fine
	assert.NoError(t, store.Delete(1, "theme"))
}

func TestAllReturnsKeysInOrder(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set(1, "theme", `"dark"`))
	require.NoError(t, store.Set(1, "filters", `{"status":"active"}`))
	require.NoError(t, store.Set(2, "theme", `"light"`))

	all, err := store.All(1)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "filters", all[0].Key)
	assert.Equal(t, "theme", all[1].Key)
}
