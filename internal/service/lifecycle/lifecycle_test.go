package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

var (
	now   = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	admin = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	guest = domain.Actor{UserID: 2, Role: domain.RoleGuest}
)

func booking(status domain.BookingStatus, end time.Time) *domain.Booking {
	return &domain.Booking{ID: 1, UserID: guest.UserID, Status: status, StartTime: end.Add(-time.Hour), EndTime: end}
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, domain.StatusApproved, InitialStatus(admin))
	assert.Equal(t, domain.StatusPending, InitialStatus(guest))
}

func TestTransition(t *testing.T) {
	future := now.Add(time.Hour)

	tests := []struct {
		name    string
		actor   domain.Actor
		booking *domain.Booking
		to      domain.BookingStatus
		wantErr error
	}{
		{name: "admin approves pending", actor: admin, booking: booking(domain.StatusPending, future), to: domain.StatusApproved},
		{name: "admin rejects pending", actor: admin, booking: booking(domain.StatusPending, future), to: domain.StatusRejected},
		{name: "guest approves own pending", actor: guest, booking: booking(domain.StatusPending, future), to: domain.StatusApproved, wantErr: ErrTransitionForbidden},
		{name: "guest rejects", actor: guest, booking: booking(domain.StatusPending, future), to: domain.StatusRejected, wantErr: ErrTransitionForbidden},
		{name: "approved is terminal", actor: admin, booking: booking(domain.StatusApproved, future), to: domain.StatusRejected, wantErr: ErrInvalidTransition},
		{name: "rejected is terminal", actor: admin, booking: booking(domain.StatusRejected, future), to: domain.StatusApproved, wantErr: ErrInvalidTransition},
		{name: "same status", actor: admin, booking: booking(domain.StatusPending, future), to: domain.StatusPending, wantErr: ErrInvalidTransition},
		{name: "completed is never a target", actor: admin, booking: booking(domain.StatusPending, future), to: domain.StatusCompleted, wantErr: ErrInvalidTransition},
		{name: "expired pending is completed", actor: admin, booking: booking(domain.StatusPending, now.Add(-time.Minute)), to: domain.StatusApproved, wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Transition(tt.actor, tt.booking, tt.to, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrForbidden)
		})
	}
}

func TestTransition_DoesNotMutate(t *testing.T) {
	b := booking(domain.StatusPending, now.Add(time.Hour))
	assert.NoError(t, Transition(admin, b, domain.StatusApproved, now))
	assert.Equal(t, domain.StatusPending, b.Status)
}
