package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestKV(t *testing.T) *SQLiteKV {
	t.Helper()
	kv, err := OpenSQLiteKV(filepath.Join(t.TempDir(), "portal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestSQLiteKVGetMissing(t *testing.T) {
	kv := openTestKV(t)

	value, found, err := kv.Get(context.Background(), KeyStudents)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, value)
}

func TestSQLiteKVPutOverwrites(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, KeyConfig, []byte(`{"name":"প্রথম"}`)))
	require.NoError(t, kv.Put(ctx, KeyConfig, []byte(`{"name":"দ্বিতীয়"}`)))

	value, found, err := kv.Get(ctx, KeyConfig)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`{"name":"দ্বিতীয়"}`), value)
}

func TestSQLiteKVKeysAreIndependent(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, KeyStudents, []byte(`[]`)))
	require.NoError(t, kv.Put(ctx, KeyMarks, []byte(`{}`)))

	students, found, err := kv.Get(ctx, KeyStudents)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte(`[]`), students)

	marks, found, err := kv.Get(ctx, KeyMarks)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte(`{}`), marks)
}

func TestSQLiteKVPutAll(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, KeyStudents, []byte(`["stale"]`)))

	require.NoError(t, kv.PutAll(ctx, map[string][]byte{
		KeyStudents: []byte(`[]`),
		KeyConfig:   []byte(`{"name":"মাদরাসা"}`),
		KeyMarks:    []byte(`{}`),
	}))

	for key, expected := range map[string][]byte{
		KeyStudents: []byte(`[]`),
		KeyConfig:   []byte(`{"name":"মাদরাসা"}`),
		KeyMarks:    []byte(`{}`),
	} {
		value, found, err := kv.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, found, "key %s", key)
		assert.Equal(t, expected, value)
	}
}

func TestSQLiteKVReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.db")
	ctx := context.Background()

	kv, err := OpenSQLiteKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Put(ctx, KeyStudents, []byte(`[{"roll":10001}]`)))
	require.NoError(t, kv.Close())

	reopened, err := OpenSQLiteKV(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, found, err := reopened.Get(ctx, KeyStudents)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`[{"roll":10001}]`), value)
}
