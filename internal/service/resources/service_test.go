package resources

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ResourceBooking/internal/infra/storage/booking"
	resourceRepo "github.com/m04kA/SMC-ResourceBooking/internal/infra/storage/resource"
	"github.com/m04kA/SMC-ResourceBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/policy"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/resources/models"
	"github.com/m04kA/SMC-ResourceBooking/pkg/ptr"
	"github.com/m04kA/SMC-ResourceBooking/pkg/resourcelock"
	"github.com/m04kA/SMC-ResourceBooking/pkg/txmanager"
)

var (
	admin = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	guest = domain.Actor{UserID: 10, Role: domain.RoleGuest}
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fixture struct {
	svc      *Service
	bookings *bookingRepo.Repository
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, qb := storagetest.NewSQLite(t)

	svc := NewService(
		resourceRepo.NewRepository(db, qb),
		policy.New(),
		resourcelock.NewMemoryLocker(),
		txmanager.NewTransactionManager(db, txmanager.WithoutIsolationLevels()),
		time.Second,
		noopLogger{},
	)

	return &fixture{svc: svc, bookings: bookingRepo.NewRepository(db, qb)}
}

func TestService_CreateAndList(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	room, err := f.svc.Create(ctx, admin, &models.CreateResourceRequest{Type: "room", Name: "  Blue room ", Capacity: ptr.Ptr(8)})
	require.NoError(t, err)
	assert.Equal(t, "Blue room", room.Name)
	assert.Equal(t, "room", room.Type)

	server, err := f.svc.Create(ctx, admin, &models.CreateResourceRequest{Type: "Server", Name: "gpu-1", Description: ptr.Ptr("A100")})
	require.NoError(t, err)
	assert.Nil(t, server.Capacity)

	all, err := f.svc.List(ctx, guest, nil)
	require.NoError(t, err)
	require.Len(t, all.Resources, 2)
	assert.Equal(t, "room", all.Resources[0].Type)
	assert.Equal(t, "server", all.Resources[1].Type)

	servers, err := f.svc.List(ctx, guest, ptr.Ptr("server"))
	require.NoError(t, err)
	require.Len(t, servers.Resources, 1)
	assert.Equal(t, "gpu-1", servers.Resources[0].Name)

	_, err = f.svc.List(ctx, guest, ptr.Ptr("printer"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.List(ctx, domain.Actor{}, nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestService_CreateValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.CreateResourceRequest
	}{
		{name: "room without capacity", req: models.CreateResourceRequest{Type: "room", Name: "R"}},
		{name: "server with capacity", req: models.CreateResourceRequest{Type: "server", Name: "S", Capacity: ptr.Ptr(2)}},
		{name: "empty name", req: models.CreateResourceRequest{Type: "server", Name: "   "}},
		{name: "unknown type", req: models.CreateResourceRequest{Type: "desk", Name: "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, admin, &tt.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestService_GuestCannotManage(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, guest, &models.CreateResourceRequest{Type: "server", Name: "S"})
	assert.ErrorIs(t, err, policy.ErrAccessDenied)

	created, err := f.svc.Create(ctx, admin, &models.CreateResourceRequest{Type: "server", Name: "S"})
	require.NoError(t, err)
	ref := domain.ResourceRef{Type: domain.ResourceServer, ID: created.ID}

	_, err = f.svc.Update(ctx, guest, ref, &models.UpdateResourceRequest{Name: ptr.Ptr("X")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = f.svc.Delete(ctx, guest, ref)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestService_Update(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, admin, &models.CreateResourceRequest{Type: "room", Name: "R", Capacity: ptr.Ptr(4)})
	require.NoError(t, err)
	ref := domain.ResourceRef{Type: domain.ResourceRoom, ID: created.ID}

	updated, err := f.svc.Update(ctx, admin, ref, &models.UpdateResourceRequest{Capacity: ptr.Ptr(12)})
	require.NoError(t, err)
	assert.Equal(t, "R", updated.Name)
	require.NotNil(t, updated.Capacity)
	assert.Equal(t, 12, *updated.Capacity)

	_, err = f.svc.Update(ctx, admin, ref, &models.UpdateResourceRequest{Capacity: ptr.Ptr(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.Update(ctx, admin, domain.ResourceRef{Type: domain.ResourceRoom, ID: 999}, &models.UpdateResourceRequest{})
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestService_DeleteCascadesBookings(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, admin, &models.CreateResourceRequest{Type: "room", Name: "R", Capacity: ptr.Ptr(4)})
	require.NoError(t, err)
	ref := domain.ResourceRef{Type: domain.ResourceRoom, ID: created.ID}

	start := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	booking, err := f.bookings.Create(ctx, &domain.Booking{
		UserID:    guest.UserID,
		Resource:  ref,
		Purpose:   "demo",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    domain.StatusPending,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, admin, ref))

	_, err = f.svc.Get(ctx, admin, ref)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.bookings.GetByID(ctx, booking.ID)
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)

	err = f.svc.Delete(ctx, admin, ref)
	assert.ErrorIs(t, err, ErrResourceNotFound)
}
