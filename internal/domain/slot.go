package domain

import (
	"fmt"
	"strings"
	"time"
)

// HalfDaySlot один из двух фиксированных полудневных интервалов
type HalfDaySlot string

const (
	// SlotNight 00:00–12:00
	SlotNight HalfDaySlot = "00:00-12:00"
	// SlotDay 12:00–24:00, заканчивается в 00:00 следующего дня
	SlotDay HalfDaySlot = "12:00-24:00"
)

// Label название слота
func (s HalfDaySlot) Label() string {
	switch s {
	case SlotNight:
		return "Night"
	case SlotDay:
		return "Day"
	default:
		return string(s)
	}
}

// IsValid returns true for the two known slots
func (s HalfDaySlot) IsValid() bool {
	return s == SlotNight || s == SlotDay
}

// offsets возвращает смещения начала и конца слота от полуночи
func (s HalfDaySlot) offsets() (time.Duration, time.Duration) {
	if s == SlotDay {
		return 12 * time.Hour, 24 * time.Hour
	}
	return 0, 12 * time.Hour
}

// ParseSlot конвертирует строку в HalfDaySlot.
// Принимает как "00:00-12:00", так и названия "night"/"day".
func ParseSlot(s string) (HalfDaySlot, error) {
	v := strings.TrimSpace(s)
	switch strings.ToLower(v) {
	case "":
		return "", fmt.Errorf("%w: slot is required", ErrIncompleteInput)
	case "night":
		return SlotNight, nil
	case "day":
		return SlotDay, nil
	}

	slot := HalfDaySlot(strings.ReplaceAll(v, " ", ""))
	if !slot.IsValid() {
		return "", fmt.Errorf("%w: unknown slot %q", ErrIncompleteInput, s)
	}
	return slot, nil
}

// ResolveMode способ задания временного окна
type ResolveMode string

const (
	ModeSingle   ResolveMode = "single"
	ModeRange    ResolveMode = "range"
	ModeExplicit ResolveMode = "explicit"
)

// ResolveParams входные данные резолвера.
// Для ModeSingle нужны Date и Slot, для ModeRange - StartDate, StartSlot, EndDate, EndSlot,
// для ModeExplicit - Start и End.
type ResolveParams struct {
	Date *time.Time
	Slot string

	StartDate *time.Time
	StartSlot string
	EndDate   *time.Time
	EndSlot   string

	Start *time.Time
	End   *time.Time
}

// ResolveWindow превращает выбор пользователя в конкретное окно [start, end).
// Функция чистая: не делает I/O и не проверяет доступность.
func ResolveWindow(mode ResolveMode, params ResolveParams) (TimeWindow, error) {
	switch mode {
	case ModeSingle:
		if params.Date == nil {
			return TimeWindow{}, fmt.Errorf("%w: date is required", ErrIncompleteInput)
		}
		slot, err := ParseSlot(params.Slot)
		if err != nil {
			return TimeWindow{}, err
		}
		day := startOfDay(*params.Date)
		from, to := slot.offsets()
		return NewTimeWindow(day.Add(from), day.Add(to)), nil

	case ModeRange:
		if params.StartDate == nil || params.EndDate == nil {
			return TimeWindow{}, fmt.Errorf("%w: start and end dates are required", ErrIncompleteInput)
		}
		startSlot, err := ParseSlot(params.StartSlot)
		if err != nil {
			return TimeWindow{}, err
		}
		endSlot, err := ParseSlot(params.EndSlot)
		if err != nil {
			return TimeWindow{}, err
		}
		from, _ := startSlot.offsets()
		_, to := endSlot.offsets()
		return NewTimeWindow(startOfDay(*params.StartDate).Add(from), startOfDay(*params.EndDate).Add(to)), nil

	case ModeExplicit:
		if params.Start == nil || params.End == nil {
			return TimeWindow{}, fmt.Errorf("%w: start and end are required", ErrIncompleteInput)
		}
		return NewTimeWindow(*params.Start, *params.End), nil

	default:
		return TimeWindow{}, fmt.Errorf("%w: unknown mode %q", ErrIncompleteInput, mode)
	}
}

// startOfDay полночь календарной даты в UTC
func startOfDay(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
