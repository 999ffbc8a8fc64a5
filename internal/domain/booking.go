package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending  BookingStatus = "pending"
	StatusApproved BookingStatus = "approved"
	StatusRejected BookingStatus = "rejected"
	// StatusCompleted никогда не хранится в БД, вычисляется по end_time при чтении
	StatusCompleted BookingStatus = "completed"
)

// Label человекочитаемое название статуса
func (s BookingStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// IsStored returns true if the status may be persisted
func (s BookingStatus) IsStored() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Booking represents a reservation of a room or a server
type Booking struct {
	ID        int64
	UserID    int64
	Resource  ResourceRef
	Purpose   string
	StartTime time.Time
	EndTime   time.Time
	Status    BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window возвращает временное окно бронирования [start, end)
func (b *Booking) Window() TimeWindow {
	return TimeWindow{Start: b.StartTime, End: b.EndTime}
}

// IsActive returns true if the booking still occupies its resource.
// Отклонённые и завершённые бронирования ресурс не занимают.
func (b *Booking) IsActive(now time.Time) bool {
	return b.Status != StatusRejected && b.EndTime.After(now)
}

// IsExpired returns true if the booking window has already ended (end <= now)
func (b *Booking) IsExpired(now time.Time) bool {
	return !b.EndTime.After(now)
}

// EffectiveStatus возвращает статус с учётом времени:
// pending/approved бронирование, окно которого закончилось, считается completed.
func (b *Booking) EffectiveStatus(now time.Time) BookingStatus {
	if b.Status != StatusRejected && b.IsExpired(now) {
		return StatusCompleted
	}
	return b.Status
}

// IsOwnedBy returns true if the booking was created for the given user
func (b *Booking) IsOwnedBy(userID int64) bool {
	return b.UserID == userID
}

// IsPending returns true if the booking is waiting for approval
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// ValidatePurpose проверяет цель бронирования: непустая строка не длиннее MaxPurposeLength
func ValidatePurpose(purpose string) (string, error) {
	trimmed := strings.TrimSpace(purpose)
	if trimmed == "" {
		return "", wrapInvalid("purpose is required")
	}
	if utf8.RuneCountInString(trimmed) > MaxPurposeLength {
		return "", wrapInvalid("purpose is too long")
	}
	return trimmed, nil
}

// BookingTab вкладка списка бронирований
type BookingTab string

const (
	TabAll      BookingTab = "all"
	TabMine     BookingTab = "mine"
	TabRoom     BookingTab = "room"
	TabServer   BookingTab = "server"
	TabPending  BookingTab = "pending"
	TabRejected BookingTab = "rejected"
)

// IsAdminOnly returns true if only admins may open the tab
func (t BookingTab) IsAdminOnly() bool {
	return t == TabPending || t == TabRejected
}

// TimeStatus фильтр по времени окончания бронирования
type TimeStatus string

const (
	TimeStatusPast     TimeStatus = "past"
	TimeStatusUpcoming TimeStatus = "upcoming"
)

// BookingsFilter фильтр для получения списка бронирований
type BookingsFilter struct {
	UserID       *int64        // Только бронирования пользователя (опционально)
	ResourceType *ResourceType // Только комнаты или только серверы (опционально)
	ResourceID   *int64        // Конкретный ресурс, требует ResourceType (опционально)
	Status       *BookingStatus
	EndedBefore  *time.Time // end_time <= EndedBefore
	EndsAfter    *time.Time // end_time > EndsAfter
	EndFrom      *time.Time // Начало периода по end_time (включительно)
	EndTo        *time.Time // Конец периода по end_time (включительно)
}
