package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

var (
	now  = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	room = domain.ResourceRef{Type: domain.ResourceRoom, ID: 1}
)

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	bookings []*domain.Booking
	err      error
	calls    int
	lastExcl *int64
}

// FindActiveForResource повторяет фильтр репозитория: не rejected, end > now, без excludingID
func (r *fakeRepo) FindActiveForResource(_ context.Context, ref domain.ResourceRef, excludingID *int64, now time.Time) ([]*domain.Booking, error) {
	r.calls++
	r.lastExcl = excludingID
	if r.err != nil {
		return nil, r.err
	}
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.Resource != ref || !b.IsActive(now) {
			continue
		}
		if excludingID != nil && b.ID == *excludingID {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

type fakeMetrics struct{ reasons []string }

func (m *fakeMetrics) RecordAvailabilityRejection(reason string) {
	m.reasons = append(m.reasons, reason)
}

func at(h int) time.Time { return now.Add(time.Duration(h) * time.Hour) }

func window(from, to int) domain.TimeWindow {
	return domain.TimeWindow{Start: at(from), End: at(to)}
}

func existing(id int64, from, to int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{ID: id, UserID: 9, Resource: room, StartTime: at(from), EndTime: at(to), Status: status}
}

func newChecker(repo *fakeRepo, m *fakeMetrics) *Checker {
	return NewChecker(repo, fakeClock{t: now}, m, noopLogger{})
}

func TestCheck_Ordering(t *testing.T) {
	repo := &fakeRepo{}
	m := &fakeMetrics{}
	c := newChecker(repo, m)

	assert.ErrorIs(t, c.Check(context.Background(), room, window(3, 2), nil), domain.ErrInvalidOrdering)
	assert.ErrorIs(t, c.Check(context.Background(), room, window(2, 2), nil), domain.ErrInvalidOrdering)
	assert.Equal(t, 0, repo.calls)
	assert.Equal(t, []string{"invalid_ordering", "invalid_ordering"}, m.reasons)
}

func TestCheck_OrderingBeforePast(t *testing.T) {
	c := newChecker(&fakeRepo{}, &fakeMetrics{})

	// Окно и перевёрнуто, и в прошлом: первой срабатывает проверка порядка
	err := c.Check(context.Background(), room, window(-1, -3), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidOrdering)
}

func TestCheck_InThePast(t *testing.T) {
	repo := &fakeRepo{}
	c := newChecker(repo, &fakeMetrics{})

	assert.ErrorIs(t, c.Check(context.Background(), room, window(-3, -1), nil), domain.ErrInThePast)
	assert.Equal(t, 0, repo.calls)

	// Окно, которое уже началось, но ещё не закончилось, допустимо
	assert.NoError(t, c.Check(context.Background(), room, window(-1, 1), nil))
}

func TestCheck_Conflict(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{existing(7, 10, 12, domain.StatusApproved)}}
	c := newChecker(repo, &fakeMetrics{})

	err := c.Check(context.Background(), room, window(11, 13), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, domain.ResourceRoom, conflict.ResourceType)
	assert.Equal(t, int64(7), conflict.BookingID)
}

func TestCheck_AdjacentWindowsDoNotConflict(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{existing(7, 10, 12, domain.StatusApproved)}}
	c := newChecker(repo, &fakeMetrics{})

	assert.NoError(t, c.Check(context.Background(), room, window(12, 14), nil))
	assert.NoError(t, c.Check(context.Background(), room, window(8, 10), nil))
}

func TestCheck_IgnoresRejectedAndFinished(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{
		existing(1, 10, 12, domain.StatusRejected),
		existing(2, -5, -1, domain.StatusApproved),
	}}
	c := newChecker(repo, &fakeMetrics{})

	assert.NoError(t, c.Check(context.Background(), room, window(10, 12), nil))
}

func TestCheck_OtherResourceDoesNotConflict(t *testing.T) {
	b := existing(1, 10, 12, domain.StatusApproved)
	b.Resource = domain.ResourceRef{Type: domain.ResourceServer, ID: 1}
	c := newChecker(&fakeRepo{bookings: []*domain.Booking{b}}, &fakeMetrics{})

	assert.NoError(t, c.Check(context.Background(), room, window(10, 12), nil))
}

func TestCheck_ExcludingSelf(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{existing(5, 10, 12, domain.StatusPending)}}
	c := newChecker(repo, &fakeMetrics{})
	id := int64(5)

	assert.NoError(t, c.Check(context.Background(), room, window(11, 13), &id))
	require.NotNil(t, repo.lastExcl)
	assert.Equal(t, int64(5), *repo.lastExcl)

	assert.ErrorIs(t, c.Check(context.Background(), room, window(11, 13), nil), domain.ErrConflict)
}

func TestCheck_Idempotent(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{existing(1, 10, 12, domain.StatusApproved)}}
	c := newChecker(repo, &fakeMetrics{})

	first := c.Check(context.Background(), room, window(1, 2), nil)
	second := c.Check(context.Background(), room, window(1, 2), nil)
	assert.NoError(t, first)
	assert.NoError(t, second)
	assert.Len(t, repo.bookings, 1)

	first = c.Check(context.Background(), room, window(11, 12), nil)
	second = c.Check(context.Background(), room, window(11, 12), nil)
	assert.Equal(t, first, second)
}

func TestCheck_RepositoryError(t *testing.T) {
	c := newChecker(&fakeRepo{err: errors.New("db down")}, &fakeMetrics{})

	err := c.Check(context.Background(), room, window(1, 2), nil)
	assert.ErrorIs(t, err, ErrRepository)
	assert.NotErrorIs(t, err, domain.ErrConflict)
}

func TestScenario_SecondBookingOfSameSlotConflicts(t *testing.T) {
	// Комната 1, 2025-03-01 12:00-24:00 уже занята, вторая заявка на тот же слот отклоняется
	clock := fakeClock{t: time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC)}
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	w, err := domain.ResolveWindow(domain.ModeSingle, domain.ResolveParams{Date: &date, Slot: string(domain.SlotDay)})
	require.NoError(t, err)

	repo := &fakeRepo{bookings: []*domain.Booking{{
		ID: 1, Resource: room, StartTime: w.Start, EndTime: w.End, Status: domain.StatusApproved,
	}}}
	c := NewChecker(repo, clock, nil, noopLogger{})

	err = c.Check(context.Background(), room, w, nil)
	assert.ErrorIs(t, err, domain.ErrConflict)

	n, ok := domain.NotificationFromError(err)
	require.True(t, ok)
	assert.Equal(t, domain.NotificationConflict, n.Kind)

	night, err := domain.ResolveWindow(domain.ModeSingle, domain.ResolveParams{Date: &date, Slot: string(domain.SlotNight)})
	require.NoError(t, err)
	assert.NoError(t, c.Check(context.Background(), room, night, nil))
}

func TestValidateWindow(t *testing.T) {
	assert.NoError(t, ValidateWindow(window(0, 1), now))
	// Окно, заканчивающееся ровно сейчас, не считается прошедшим
	assert.NoError(t, ValidateWindow(window(-1, 0), now))
	assert.ErrorIs(t, ValidateWindow(window(-2, -1), now), domain.ErrInThePast)
}

func TestFindConflict(t *testing.T) {
	bookings := []*domain.Booking{existing(1, 0, 2, domain.StatusApproved), existing(2, 4, 6, domain.StatusPending)}

	assert.NoError(t, FindConflict(domain.ResourceRoom, window(2, 4), bookings))
	err := FindConflict(domain.ResourceRoom, window(5, 7), bookings)

	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, int64(2), conflict.BookingID)
}
