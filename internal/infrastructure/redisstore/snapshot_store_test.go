package redisstore_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplepro/simplepro-api/internal/infrastructure/redisstore"
)

type snapshotPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newStore(t *testing.T) *redisstore.SnapshotStore {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisstore.NewWithClient(client)
}

func TestSnapshotStore_SaveLoadRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	in := snapshotPayload{Name: "cartera", Count: 3}
	require.NoError(t, store.Save(ctx, "customer-storage:user_1", in))

	var out snapshotPayload
	found, err := store.Load(ctx, "customer-storage:user_1", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

// Una clave ausente no es error: se reporta como no encontrada.
func TestSnapshotStore_LoadClaveAusente(t *testing.T) {
	store := newStore(t)

	var out snapshotPayload
	found, err := store.Load(context.Background(), "no-existe", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

// Los snapshots de usuarios distintos no se pisan entre sí.
func TestSnapshotStore_ClavesPorUsuarioAisladas(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "quote-storage:user_1", snapshotPayload{Name: "a"}))
	require.NoError(t, store.Save(ctx, "quote-storage:user_2", snapshotPayload{Name: "b"}))

	var out snapshotPayload
	found, err := store.Load(ctx, "quote-storage:user_1", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "a", out.Name)
}

func TestSnapshotStore_Delete(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "job-storage:user_1", snapshotPayload{Name: "x"}))
	require.NoError(t, store.Delete(ctx, "job-storage:user_1"))

	var out snapshotPayload
	found, err := store.Load(ctx, "job-storage:user_1", &out)
	require.NoError(t, err)
	assert.False(t, found)

	// Borrar una clave ausente también es no-op.
	assert.NoError(t, store.Delete(ctx, "job-storage:user_1"))
}

// El store nulo acepta todo y nunca encuentra nada.
func TestNoop(t *testing.T) {
	var store redisstore.Noop
	ctx := context.Background()

	assert.NoError(t, store.Save(ctx, "k", snapshotPayload{}))
	var out snapshotPayload
	found, err := store.Load(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, store.Delete(ctx, "k"))
}
