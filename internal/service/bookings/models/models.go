package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// Request модели

// ListBookingsRequest параметры списка бронирований
type ListBookingsRequest struct {
	Tab        string     `json:"tab,omitempty"`        // all, mine, room, server, pending, rejected
	TimeStatus *string    `json:"timeStatus,omitempty"` // past, upcoming
	Status     *string    `json:"status,omitempty"`     // Только для администратора
	ResourceID *int64     `json:"resourceId,omitempty"` // Вместе с вкладкой room/server
	From       *time.Time `json:"from,omitempty"`       // Дата окончания не раньше (включительно)
	To         *time.Time `json:"to,omitempty"`         // Дата окончания не позже (включительно)
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	ResourceType string    `json:"resourceType"`
	ResourceID   int64     `json:"resourceId"`
	Purpose      string    `json:"purpose"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Status       string    `json:"status"` // С учётом времени: закончившиеся pending/approved отдаются как completed
	StatusLabel  string    `json:"statusLabel"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking, now time.Time) *BookingResponse {
	if b == nil {
		return nil
	}

	status := b.EffectiveStatus(now)

	return &BookingResponse{
		ID:           b.ID,
		UserID:       b.UserID,
		ResourceType: string(b.Resource.Type),
		ResourceID:   b.Resource.ID,
		Purpose:      b.Purpose,
		StartTime:    b.StartTime.UTC(),
		EndTime:      b.EndTime.UTC(),
		Status:       string(status),
		StatusLabel:  status.Label(),
		CreatedAt:    b.CreatedAt.UTC(),
		UpdatedAt:    b.UpdatedAt.UTC(),
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, now time.Time) *BookingListResponse {
	resp := &BookingListResponse{Bookings: make([]BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b, now))
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в хранимый статус.
// completed вычисляемый, фильтровать по нему нужно через timeStatus=past.
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsStored() {
		return "", fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, s)
	}
	return status, nil
}

// ToDomainTab конвертирует строку во вкладку, пустая строка - все бронирования
func ToDomainTab(s string) (domain.BookingTab, error) {
	tab := domain.BookingTab(strings.ToLower(strings.TrimSpace(s)))
	switch tab {
	case "":
		return domain.TabAll, nil
	case domain.TabAll, domain.TabMine, domain.TabRoom, domain.TabServer, domain.TabPending, domain.TabRejected:
		return tab, nil
	default:
		return "", fmt.Errorf("%w: unknown tab %q", domain.ErrInvalidInput, s)
	}
}

// ToDomainTimeStatus конвертирует строку в фильтр по времени
func ToDomainTimeStatus(s string) (domain.TimeStatus, error) {
	ts := domain.TimeStatus(strings.ToLower(strings.TrimSpace(s)))
	if ts != domain.TimeStatusPast && ts != domain.TimeStatusUpcoming {
		return "", fmt.Errorf("%w: unknown time status %q", domain.ErrInvalidInput, s)
	}
	return ts, nil
}
