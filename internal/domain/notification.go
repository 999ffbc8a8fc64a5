package domain

import (
	"errors"
	"fmt"
)

// NotificationKind тип уведомления для слоя представления
type NotificationKind string

const (
	NotificationInvalidOrdering NotificationKind = "invalid_ordering"
	NotificationInThePast       NotificationKind = "in_the_past"
	NotificationConflict        NotificationKind = "conflict"
)

// Notification уведомление о неудачной проверке окна
type Notification struct {
	Kind         NotificationKind `json:"kind"`
	ResourceType *ResourceType    `json:"resourceType,omitempty"`
	Title        string           `json:"title"`
	Message      string           `json:"message"`
}

// NotificationFromError строит уведомление по ошибке проверки доступности.
// Для остальных ошибок возвращает false.
func NotificationFromError(err error) (Notification, bool) {
	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		resourceType := conflict.ResourceType
		return Notification{
			Kind:         NotificationConflict,
			ResourceType: &resourceType,
			Title:        "Booking Conflict",
			Message:      fmt.Sprintf("This %s is already booked during the selected time period.", resourceType.Title()),
		}, true

	case errors.Is(err, ErrInvalidOrdering):
		return Notification{
			Kind:    NotificationInvalidOrdering,
			Title:   "Booking Time Invalid",
			Message: "The selected start time period is after end time. Please pick a valid time.",
		}, true

	case errors.Is(err, ErrInThePast):
		return Notification{
			Kind:    NotificationInThePast,
			Title:   "Booking Time Invalid",
			Message: "The selected booking time period is in the past. Please pick a valid time.",
		}, true
	}

	return Notification{}, false
}
