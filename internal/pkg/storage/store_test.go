package storage

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	// Arrange
	store := NewMemoryStore()
	ctx := context.Background()

	// Act
	require.NoError(t, store.Set(ctx, "currentOrder", `{"id":"order-1"}`))
	val, err := store.Get(ctx, "currentOrder")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, `{"id":"order-1"}`, val)

	require.NoError(t, store.Delete(ctx, "currentOrder"))
	_, err = store.Get(ctx, "currentOrder")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_DeleteManyIsIdempotent(t *testing.T) {
	// Arrange
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "token", "abc"))
	require.NoError(t, store.Set(ctx, "user", "{}"))

	// Act
	require.NoError(t, store.Delete(ctx, "token", "user", "missing"))
	require.NoError(t, store.Delete(ctx, "token"))

	// Assert
	assert.Equal(t, 0, store.Len())
}

func TestRedisStore_PrefixesKeys(t *testing.T) {
	// Arrange
	client, mock := redismock.NewClientMock()
	store := NewRedisStoreWithClient(client, "device-a")
	ctx := context.Background()

	mock.ExpectSet("device-a:currentOrder", `{"id":"order-1"}`, 0).SetVal("OK")
	mock.ExpectGet("device-a:currentOrder").SetVal(`{"id":"order-1"}`)
	mock.ExpectDel("device-a:currentOrder", "device-a:orderStatus").SetVal(2)

	// Act
	require.NoError(t, store.Set(ctx, "currentOrder", `{"id":"order-1"}`))
	val, err := store.Get(ctx, "currentOrder")
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, "currentOrder", "orderStatus"))

	// Assert
	assert.Equal(t, `{"id":"order-1"}`, val)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_MissingKeyMapsToErrNotFound(t *testing.T) {
	// Arrange
	client, mock := redismock.NewClientMock()
	store := NewRedisStoreWithClient(client, "")
	mock.ExpectGet("driverState").RedisNil()

	// Act
	_, err := store.Get(context.Background(), "driverState")

	// Assert
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
