package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooking_EffectiveStatus(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status BookingStatus
		end    time.Time
		want   BookingStatus
	}{
		{name: "approved in the future", status: StatusApproved, end: now.Add(time.Hour), want: StatusApproved},
		{name: "approved in the past", status: StatusApproved, end: now.Add(-time.Hour), want: StatusCompleted},
		{name: "pending in the past", status: StatusPending, end: now.Add(-time.Hour), want: StatusCompleted},
		{name: "rejected in the past stays rejected", status: StatusRejected, end: now.Add(-time.Hour), want: StatusRejected},
		{name: "ending right now is completed", status: StatusApproved, end: now, want: StatusCompleted},
		{name: "pending ending right now is completed", status: StatusPending, end: now, want: StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.status, StartTime: tt.end.Add(-time.Hour), EndTime: tt.end}
			assert.Equal(t, tt.want, b.EffectiveStatus(now))
		})
	}
}

func TestBooking_IsActive(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, (&Booking{Status: StatusPending, EndTime: now.Add(time.Minute)}).IsActive(now))
	assert.False(t, (&Booking{Status: StatusRejected, EndTime: now.Add(time.Minute)}).IsActive(now))
	assert.False(t, (&Booking{Status: StatusApproved, EndTime: now}).IsActive(now))
}

func TestBooking_ActiveAndExpiredAreComplementary(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, end := range []time.Time{now.Add(-time.Second), now, now.Add(time.Second)} {
		b := &Booking{Status: StatusPending, StartTime: end.Add(-time.Hour), EndTime: end}
		assert.NotEqual(t, b.IsActive(now), b.IsExpired(now), "end=%s", end)
	}
}

func TestValidatePurpose(t *testing.T) {
	purpose, err := ValidatePurpose("  team sync  ")
	require.NoError(t, err)
	assert.Equal(t, "team sync", purpose)

	_, err = ValidatePurpose("   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ValidatePurpose(strings.Repeat("я", MaxPurposeLength))
	assert.NoError(t, err)

	_, err = ValidatePurpose(strings.Repeat("a", MaxPurposeLength+1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResource_Validate(t *testing.T) {
	capacity := 10
	zero := 0
	longDescription := strings.Repeat("d", MaxDescriptionLength+1)

	tests := []struct {
		name     string
		resource Resource
		wantErr  bool
	}{
		{name: "valid room", resource: Resource{Type: ResourceRoom, Name: "R1", Capacity: &capacity}},
		{name: "valid server", resource: Resource{Type: ResourceServer, Name: "S1"}},
		{name: "room without capacity", resource: Resource{Type: ResourceRoom, Name: "R1"}, wantErr: true},
		{name: "room with zero capacity", resource: Resource{Type: ResourceRoom, Name: "R1", Capacity: &zero}, wantErr: true},
		{name: "server with capacity", resource: Resource{Type: ResourceServer, Name: "S1", Capacity: &capacity}, wantErr: true},
		{name: "empty name", resource: Resource{Type: ResourceServer, Name: " "}, wantErr: true},
		{name: "long description", resource: Resource{Type: ResourceServer, Name: "S1", Description: &longDescription}, wantErr: true},
		{name: "unknown type", resource: Resource{Type: "printer", Name: "P1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.resource.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNotificationFromError(t *testing.T) {
	n, ok := NotificationFromError(&ConflictError{ResourceType: ResourceRoom, BookingID: 7})
	require.True(t, ok)
	assert.Equal(t, NotificationConflict, n.Kind)
	require.NotNil(t, n.ResourceType)
	assert.Equal(t, ResourceRoom, *n.ResourceType)
	assert.Contains(t, n.Message, "Room")

	n, ok = NotificationFromError(ErrInThePast)
	require.True(t, ok)
	assert.Equal(t, NotificationInThePast, n.Kind)
	assert.Nil(t, n.ResourceType)

	_, ok = NotificationFromError(errors.New("boom"))
	assert.False(t, ok)
}

func TestConflictError_Is(t *testing.T) {
	var err error = &ConflictError{ResourceType: ResourceServer, BookingID: 1}
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "Server is already booked")
}
