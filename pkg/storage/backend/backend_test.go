package backend

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/ImmobilienScout24/yum-repo-server/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Registry Tests
// ============================================================================

func TestRegister_CustomType(t *testing.T) {
	t.Parallel()

	customType := types.StorageType("test-custom")

	Register(customType, func(cfg types.BackendConfig) (types.ArtifactStorage, error) {
		return NewMemoryStorage(), nil
	})

	storage, err := New(types.BackendConfig{Type: customType})
	require.NoError(t, err)
	require.NotNil(t, storage)
	defer storage.Close()

	assert.Equal(t, StorageTypeMemory, storage.Type())
}

func TestNew_UnknownType(t *testing.T) {
	t.Parallel()

	_, err := New(types.BackendConfig{Type: "unknown-type"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage type")
}

// ============================================================================
// Manager Tests
// ============================================================================

func TestManager_Add_Memory(t *testing.T) {
	t.Parallel()

	mgr := NewManager()
	defer mgr.Close()

	err := mgr.AddMemory("test-mem")
	require.NoError(t, err)

	storage, ok := mgr.Get("test-mem")
	assert.True(t, ok)
	require.NotNil(t, storage)
	assert.Equal(t, StorageTypeMemory, storage.Type())
}

func TestManager_Get_Missing(t *testing.T) {
	t.Parallel()

	mgr := NewManager()
	defer mgr.Close()

	_, ok := mgr.Get("nope")
	assert.False(t, ok)
}

func TestManager_List(t *testing.T) {
	t.Parallel()

	mgr := NewManager()
	defer mgr.Close()

	require.NoError(t, mgr.AddMemory("a"))
	require.NoError(t, mgr.AddMemory("b"))

	ids := mgr.List()
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}

// ============================================================================
// Local Backend Tests
// ============================================================================

func newLocalBackend(t *testing.T) types.ArtifactStorage {
	t.Helper()

	storage, err := NewLocal(types.BackendConfig{
		Type: types.StorageTypeLocal,
		Path: t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })
	return storage
}

func TestLocal_RequiresPath(t *testing.T) {
	t.Parallel()

	_, err := NewLocal(types.BackendConfig{Type: types.StorageTypeLocal})
	require.Error(t, err)
}

func TestLocal_WriteReadStat(t *testing.T) {
	t.Parallel()

	storage := newLocalBackend(t)
	ctx := context.Background()

	payload := []byte("some rpm payload")
	key := "updates/x86_64/foo-1.0.rpm"
	require.NoError(t, storage.Write(ctx, key, bytes.NewReader(payload), int64(len(payload))))

	info, err := storage.Stat(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), info.Size)
	assert.Equal(t, "application/x-rpm", info.ContentType)

	r, err := storage.Read(ctx, key)
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestLocal_Stat_NotFound(t *testing.T) {
	t.Parallel()

	storage := newLocalBackend(t)

	_, err := storage.Stat(context.Background(), "missing/key.rpm")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestLocal_ReadRange(t *testing.T) {
	t.Parallel()

	storage := newLocalBackend(t)
	ctx := context.Background()

	payload := []byte("0123456789")
	key := "updates/x86_64/foo-1.0.rpm"
	require.NoError(t, storage.Write(ctx, key, bytes.NewReader(payload), int64(len(payload))))

	tests := []struct {
		name     string
		offset   int64
		length   int64
		expected string
	}{
		{"bounded window", 2, 5, "23456"},
		{"open-ended", 7, -1, "789"},
		{"window past end is capped", 8, 100, "89"},
		{"zero-length", 3, 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := storage.ReadRange(ctx, key, tc.offset, tc.length)
			require.NoError(t, err)
			defer r.Close()

			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(data))
		})
	}
}

func TestLocal_Delete_ReportsAbsence(t *testing.T) {
	t.Parallel()

	storage := newLocalBackend(t)
	ctx := context.Background()

	key := "updates/x86_64/foo-1.0.rpm"
	require.NoError(t, storage.Write(ctx, key, strings.NewReader("data"), 4))

	require.NoError(t, storage.Delete(ctx, key))

	err := storage.Delete(ctx, key)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestLocal_Exists(t *testing.T) {
	t.Parallel()

	storage := newLocalBackend(t)
	ctx := context.Background()

	exists, err := storage.Exists(ctx, "nope.rpm")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, storage.Write(ctx, "yes.rpm", strings.NewReader("x"), 1))
	exists, err = storage.Exists(ctx, "yes.rpm")
	require.NoError(t, err)
	assert.True(t, exists)
}

// ============================================================================
// Memory Backend Tests
// ============================================================================

func TestMemory_ReadRange(t *testing.T) {
	t.Parallel()

	storage := NewMemoryStorage()
	defer storage.Close()
	ctx := context.Background()

	payload := []byte("0123456789")
	key := "updates/x86_64/foo-1.0.rpm"
	require.NoError(t, storage.Write(ctx, key, bytes.NewReader(payload), int64(len(payload))))

	r, err := storage.ReadRange(ctx, key, 2, 5)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "23456", string(data))

	// open-ended
	r, err = storage.ReadRange(ctx, key, 7, -1)
	require.NoError(t, err)
	data, err = io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "789", string(data))

	// offset beyond end yields an empty window
	r, err = storage.ReadRange(ctx, key, 100, 5)
	require.NoError(t, err)
	data, err = io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestMemory_Delete_ReportsAbsence(t *testing.T) {
	t.Parallel()

	storage := NewMemoryStorage()
	defer storage.Close()
	ctx := context.Background()

	err := storage.Delete(ctx, "missing.rpm")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, storage.Write(ctx, "there.rpm", strings.NewReader("x"), 1))
	require.NoError(t, storage.Delete(ctx, "there.rpm"))
}

func TestMemory_Stat_ContentType(t *testing.T) {
	t.Parallel()

	storage := NewMemoryStorage()
	defer storage.Close()
	ctx := context.Background()

	require.NoError(t, storage.Write(ctx, "repo/arch/pkg.rpm", strings.NewReader("abc"), 3))

	info, err := storage.Stat(ctx, "repo/arch/pkg.rpm")
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size)
	assert.Equal(t, "application/x-rpm", info.ContentType)
}
