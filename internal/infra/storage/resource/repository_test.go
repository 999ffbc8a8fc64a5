package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-ResourceBooking/pkg/ptr"
)

func TestRepository_RoomLifecycle(t *testing.T) {
	db, qb := storagetest.NewSQLite(t)
	repo := NewRepository(db, qb)
	ctx := context.Background()

	room, err := repo.Create(ctx, &domain.Resource{
		Type:        domain.ResourceRoom,
		Name:        "Room A",
		Capacity:    ptr.Ptr(12),
		Description: ptr.Ptr("2nd floor"),
	})
	require.NoError(t, err)
	require.NotZero(t, room.ID)

	got, err := repo.GetByRef(ctx, room.Ref())
	require.NoError(t, err)
	assert.Equal(t, "Room A", got.Name)
	require.NotNil(t, got.Capacity)
	assert.Equal(t, 12, *got.Capacity)
	require.NotNil(t, got.Description)
	assert.Equal(t, "2nd floor", *got.Description)

	got.Name = "Room B"
	got.Capacity = ptr.Ptr(20)
	got.Description = nil
	updated, err := repo.Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "Room B", updated.Name)
	assert.Equal(t, 20, *updated.Capacity)
	assert.Nil(t, updated.Description)

	require.NoError(t, repo.Delete(ctx, room.Ref()))

	exists, err := repo.Exists(ctx, room.Ref())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepository_ServerHasNoCapacity(t *testing.T) {
	db, qb := storagetest.NewSQLite(t)
	repo := NewRepository(db, qb)
	ctx := context.Background()

	server, err := repo.Create(ctx, &domain.Resource{Type: domain.ResourceServer, Name: "srv-1"})
	require.NoError(t, err)

	got, err := repo.GetByRef(ctx, server.Ref())
	require.NoError(t, err)
	assert.Nil(t, got.Capacity)
	assert.Equal(t, domain.ResourceServer, got.Type)
}

func TestRepository_IdsAreScopedByType(t *testing.T) {
	db, qb := storagetest.NewSQLite(t)
	repo := NewRepository(db, qb)
	ctx := context.Background()

	room, err := repo.Create(ctx, &domain.Resource{Type: domain.ResourceRoom, Name: "R", Capacity: ptr.Ptr(1)})
	require.NoError(t, err)

	_, err = repo.GetByRef(ctx, domain.ResourceRef{Type: domain.ResourceServer, ID: room.ID})
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestRepository_List(t *testing.T) {
	db, qb := storagetest.NewSQLite(t)
	repo := NewRepository(db, qb)
	ctx := context.Background()

	for _, name := range []string{"b-srv", "a-srv"} {
		_, err := repo.Create(ctx, &domain.Resource{Type: domain.ResourceServer, Name: name})
		require.NoError(t, err)
	}

	servers, err := repo.List(ctx, domain.ResourceServer)
	require.NoError(t, err)
	require.Len(t, servers, 2)
	assert.Equal(t, "a-srv", servers[0].Name)

	rooms, err := repo.List(ctx, domain.ResourceRoom)
	require.NoError(t, err)
	assert.Empty(t, rooms)

	_, err = repo.List(ctx, domain.ResourceType("printer"))
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestRepository_NotFound(t *testing.T) {
	db, qb := storagetest.NewSQLite(t)
	repo := NewRepository(db, qb)
	ctx := context.Background()

	ref := domain.ResourceRef{Type: domain.ResourceRoom, ID: 42}
	_, err := repo.Update(ctx, &domain.Resource{ID: 42, Type: domain.ResourceRoom, Name: "x", Capacity: ptr.Ptr(1)})
	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, ref), ErrResourceNotFound)
}
