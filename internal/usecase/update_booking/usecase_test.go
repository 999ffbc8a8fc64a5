package update_booking

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
	"github.com/m04kA/SMC-ResourceBooking/internal/integrations/events"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/availability"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/policy"
	"github.com/m04kA/SMC-ResourceBooking/pkg/ptr"
	"github.com/m04kA/SMC-ResourceBooking/pkg/resourcelock"
	"github.com/m04kA/SMC-ResourceBooking/pkg/txmanager"
)

var (
	testNow = time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC)
	march1  = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	admin = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	alice = domain.Actor{UserID: 10, Role: domain.RoleGuest}
	bob   = domain.Actor{UserID: 20, Role: domain.RoleGuest}
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakePublisher struct{ events []events.BookingEvent }

func (p *fakePublisher) Publish(_ context.Context, event events.BookingEvent) error {
	p.events = append(p.events, event)
	return nil
}

type fixture struct {
	uc        *UseCase
	bookings  *bookingRepo.Repository
	publisher *fakePublisher
	room      domain.ResourceRef
	server    domain.ResourceRef
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, qb := storagetest.NewSQLite(t)
	ctx := context.Background()

	resources := resourceRepo.NewRepository(db, qb)
	room, err := resources.Create(ctx, &domain.Resource{Type: domain.ResourceRoom, Name: "R1", Capacity: ptr.Ptr(4)})
	require.NoError(t, err)
	server, err := resources.Create(ctx, &domain.Resource{Type: domain.ResourceServer, Name: "S1"})
	require.NoError(t, err)

	clock := &fakeClock{t: testNow}
	bookings := bookingRepo.NewRepository(db, qb)
	publisher := &fakePublisher{}

	uc := NewUseCase(
		bookings,
		resources,
		availability.NewChecker(bookings, clock, nil, noopLogger{}),
		policy.New(),
		resourcelock.NewMemoryLocker(),
		txmanager.NewTransactionManager(db, txmanager.WithoutIsolationLevels()),
		publisher,
		time.Second,
		noopLogger{},
	)
	uc.timeProvider = clock

	return &fixture{uc: uc, bookings: bookings, publisher: publisher, room: room.Ref(), server: server.Ref()}
}

func (f *fixture) create(t *testing.T, owner int64, ref domain.ResourceRef, from, to int, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b, err := f.bookings.Create(context.Background(), &domain.Booking{
		UserID:    owner,
		Resource:  ref,
		Purpose:   "planning",
		StartTime: march1.Add(time.Duration(from) * time.Hour),
		EndTime:   march1.Add(time.Duration(to) * time.Hour),
		Status:    status,
	})
	require.NoError(t, err)
	return b
}

func explicitMode() *domain.ResolveMode {
	m := domain.ModeExplicit
	return &m
}

func window(from, to int) domain.ResolveParams {
	start := march1.Add(time.Duration(from) * time.Hour)
	end := march1.Add(time.Duration(to) * time.Hour)
	return domain.ResolveParams{Start: &start, End: &end}
}

func TestUpdateBooking_PurposeOnly(t *testing.T) {
	f := setup(t)
	b := f.create(t, alice.UserID, f.room, 0, 12, domain.StatusPending)

	resp, err := f.uc.Execute(context.Background(), alice, &Request{BookingID: b.ID, Purpose: ptr.Ptr("  new purpose ")})
	require.NoError(t, err)
	assert.Equal(t, "new purpose", resp.Purpose)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, b.StartTime, resp.StartTime)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.EventBookingUpdated, f.publisher.events[0].Type)
}

func TestUpdateBooking_OwnWindowDoesNotConflict(t *testing.T) {
	f := setup(t)
	b := f.create(t, alice.UserID, f.room, 0, 12, domain.StatusPending)

	// Сдвиг внутри собственного окна пересекается только с самим собой
	resp, err := f.uc.Execute(context.Background(), alice, &Request{
		BookingID: b.ID,
		Mode:      explicitMode(),
		Window:    window(2, 14),
	})
	require.NoError(t, err)
	assert.Equal(t, march1.Add(2*time.Hour), resp.StartTime)
	assert.Equal(t, march1.Add(14*time.Hour), resp.EndTime)
}

func TestUpdateBooking_ConflictWithOther(t *testing.T) {
	f := setup(t)
	b := f.create(t, alice.UserID, f.room, 0, 12, domain.StatusPending)
	other := f.create(t, bob.UserID, f.room, 12, 24, domain.StatusApproved)

	_, err := f.uc.Execute(context.Background(), alice, &Request{
		BookingID: b.ID,
		Mode:      explicitMode(),
		Window:    window(6, 18),
	})
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, other.ID, conflict.BookingID)

	stored, err := f.bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, march1.Add(12*time.Hour), stored.EndTime)
}

func TestUpdateBooking_MoveToAnotherResource(t *testing.T) {
	f := setup(t)
	b := f.create(t, alice.UserID, f.room, 0, 12, domain.StatusPending)
	f.create(t, bob.UserID, f.server, 0, 12, domain.StatusPending)

	_, err := f.uc.Execute(context.Background(), alice, &Request{
		BookingID:    b.ID,
		ResourceType: ptr.Ptr("server"),
		ResourceID:   ptr.Ptr(f.server.ID),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	resp, err := f.uc.Execute(context.Background(), alice, &Request{
		BookingID:    b.ID,
		ResourceType: ptr.Ptr("server"),
		ResourceID:   ptr.Ptr(f.server.ID),
		Mode:         explicitMode(),
		Window:       window(12, 24),
	})
	require.NoError(t, err)
	assert.Equal(t, "server", resp.ResourceType)
	assert.Equal(t, f.server.ID, resp.ResourceID)
}

func TestUpdateBooking_Access(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	pending := f.create(t, alice.UserID, f.room, 0, 12, domain.StatusPending)
	approved := f.create(t, alice.UserID, f.room, 12, 24, domain.StatusApproved)

	_, err := f.uc.Execute(ctx, bob, &Request{BookingID: pending.ID, Purpose: ptr.Ptr("mine now")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Execute(ctx, alice, &Request{BookingID: approved.ID, Purpose: ptr.Ptr("x")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	resp, err := f.uc.Execute(ctx, admin, &Request{BookingID: approved.ID, Purpose: ptr.Ptr("admin edit")})
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
}

func TestUpdateBooking_Validation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	b := f.create(t, alice.UserID, f.room, 0, 12, domain.StatusPending)

	_, err := f.uc.Execute(ctx, alice, &Request{BookingID: b.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Execute(ctx, alice, &Request{BookingID: b.ID, ResourceType: ptr.Ptr("server")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Execute(ctx, alice, &Request{BookingID: 999, Purpose: ptr.Ptr("x")})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.uc.Execute(ctx, alice, &Request{BookingID: b.ID, ResourceType: ptr.Ptr("room"), ResourceID: ptr.Ptr(int64(999))})
	assert.ErrorIs(t, err, ErrResourceNotFound)

	_, err = f.uc.Execute(ctx, alice, &Request{BookingID: b.ID, Mode: explicitMode(), Window: window(12, 6)})
	assert.ErrorIs(t, err, domain.ErrInvalidOrdering)

	assert.Empty(t, f.publisher.events)
}

func TestLockOrder(t *testing.T) {
	room := domain.ResourceRef{Type: domain.ResourceRoom, ID: 2}
	server := domain.ResourceRef{Type: domain.ResourceServer, ID: 1}

	assert.Equal(t, []domain.ResourceRef{room, server}, lockOrder(server, room))
	assert.Equal(t, []domain.ResourceRef{room}, lockOrder(room, room))
}
