package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/lifecycle"
)

var (
	now   = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	admin = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	owner = domain.Actor{UserID: 2, Role: domain.RoleGuest}
	other = domain.Actor{UserID: 3, Role: domain.RoleGuest}
)

func ownedBooking(status domain.BookingStatus, end time.Time) *domain.Booking {
	return &domain.Booking{ID: 5, UserID: owner.UserID, Status: status, StartTime: end.Add(-time.Hour), EndTime: end}
}

func TestPolicy_CanView(t *testing.T) {
	p := New()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name    string
		actor   domain.Actor
		booking *domain.Booking
		want    bool
	}{
		{name: "admin sees rejected", actor: admin, booking: ownedBooking(domain.StatusRejected, past), want: true},
		{name: "owner sees own rejected", actor: owner, booking: ownedBooking(domain.StatusRejected, future), want: true},
		{name: "owner sees own completed", actor: owner, booking: ownedBooking(domain.StatusApproved, past), want: true},
		{name: "other sees upcoming pending", actor: other, booking: ownedBooking(domain.StatusPending, future), want: true},
		{name: "other sees upcoming approved", actor: other, booking: ownedBooking(domain.StatusApproved, future), want: true},
		{name: "other does not see rejected", actor: other, booking: ownedBooking(domain.StatusRejected, future), want: false},
		{name: "other does not see expired", actor: other, booking: ownedBooking(domain.StatusApproved, past), want: false},
		{name: "anonymous sees nothing", actor: domain.Actor{}, booking: ownedBooking(domain.StatusApproved, future), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.CanView(tt.actor, tt.booking, now))
		})
	}
}

func TestPolicy_CanUpdateAndDelete(t *testing.T) {
	p := New()
	future := now.Add(time.Hour)

	tests := []struct {
		name    string
		actor   domain.Actor
		booking *domain.Booking
		want    bool
	}{
		{name: "admin on approved", actor: admin, booking: ownedBooking(domain.StatusApproved, future), want: true},
		{name: "owner on pending", actor: owner, booking: ownedBooking(domain.StatusPending, future), want: true},
		{name: "owner on approved", actor: owner, booking: ownedBooking(domain.StatusApproved, future), want: false},
		{name: "owner on rejected", actor: owner, booking: ownedBooking(domain.StatusRejected, future), want: false},
		{name: "other on pending", actor: other, booking: ownedBooking(domain.StatusPending, future), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.CanUpdate(tt.actor, tt.booking))
			assert.Equal(t, tt.want, p.CanDelete(tt.actor, tt.booking))
		})
	}
}

func TestPolicy_GuestDeleteScenario(t *testing.T) {
	p := New()
	future := now.Add(time.Hour)

	err := p.AuthorizeDelete(owner, ownedBooking(domain.StatusApproved, future))
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.NoError(t, p.AuthorizeDelete(owner, ownedBooking(domain.StatusPending, future)))
}

func TestPolicy_ErrorsAreDistinctFromLifecycle(t *testing.T) {
	p := New()
	err := p.AuthorizeTransition(owner, ownedBooking(domain.StatusPending, now.Add(time.Hour)))

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.NotErrorIs(t, err, lifecycle.ErrTransitionForbidden)
}

func TestPolicy_RoleChecks(t *testing.T) {
	p := New()

	assert.True(t, p.CanCreate(owner))
	assert.False(t, p.CanCreate(domain.Actor{UserID: 0, Role: domain.RoleGuest}))
	assert.True(t, p.CanTransition(admin))
	assert.False(t, p.CanTransition(owner))
	assert.NoError(t, p.AuthorizeManageResources(admin))
	assert.ErrorIs(t, p.AuthorizeManageResources(owner), ErrAccessDenied)
	assert.True(t, p.CanBookOnBehalf(owner, owner.UserID))
	assert.False(t, p.CanBookOnBehalf(owner, other.UserID))
	assert.True(t, p.CanBookOnBehalf(admin, other.UserID))
	assert.False(t, p.CanOpenTab(owner, domain.TabPending))
	assert.True(t, p.CanOpenTab(owner, domain.TabMine))
	assert.True(t, p.CanOpenTab(admin, domain.TabRejected))
}
