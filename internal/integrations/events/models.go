package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// EventType тип события бронирования, он же routing key
type EventType string

const (
	EventBookingCreated  EventType = "booking.created"
	EventBookingUpdated  EventType = "booking.updated"
	EventBookingApproved EventType = "booking.approved"
	EventBookingRejected EventType = "booking.rejected"
	EventBookingDeleted  EventType = "booking.deleted"
)

// BookingEvent событие жизненного цикла бронирования
type BookingEvent struct {
	ID           string    `json:"id"`
	Type         EventType `json:"type"`
	BookingID    int64     `json:"booking_id"`
	UserID       int64     `json:"user_id"`
	ActorID      int64     `json:"actor_id"`
	ResourceType string    `json:"resource_type"`
	ResourceID   int64     `json:"resource_id"`
	Status       string    `json:"status"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// NewBookingEvent собирает событие по бронированию после изменения
func NewBookingEvent(eventType EventType, booking *domain.Booking, actor domain.Actor, now time.Time) BookingEvent {
	return BookingEvent{
		ID:           uuid.NewString(),
		Type:         eventType,
		BookingID:    booking.ID,
		UserID:       booking.UserID,
		ActorID:      actor.UserID,
		ResourceType: string(booking.Resource.Type),
		ResourceID:   booking.Resource.ID,
		Status:       string(booking.Status),
		StartTime:    booking.StartTime.UTC(),
		EndTime:      booking.EndTime.UTC(),
		OccurredAt:   now.UTC(),
	}
}
