package handlers

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// WindowSelection выбор временного окна в теле запроса.
// Даты в формате YYYY-MM-DD, моменты времени в RFC3339.
type WindowSelection struct {
	Mode      string  `json:"mode"`
	Date      *string `json:"date,omitempty"`
	Slot      string  `json:"slot,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	StartSlot string  `json:"startSlot,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
	EndSlot   string  `json:"endSlot,omitempty"`
	Start     *string `json:"start,omitempty"`
	End       *string `json:"end,omitempty"`
}

// IsEmpty returns true if no window fields were sent
func (s *WindowSelection) IsEmpty() bool {
	return s.Mode == "" && s.Date == nil && s.Slot == "" &&
		s.StartDate == nil && s.StartSlot == "" && s.EndDate == nil && s.EndSlot == "" &&
		s.Start == nil && s.End == nil
}

// ToResolveParams конвертирует выбор в параметры резолвера.
// Без mode режим выводится из заполненных полей.
func (s *WindowSelection) ToResolveParams() (domain.ResolveMode, domain.ResolveParams, error) {
	var params domain.ResolveParams
	var err error

	if params.Date, err = parseDate(s.Date); err != nil {
		return "", params, err
	}
	if params.StartDate, err = parseDate(s.StartDate); err != nil {
		return "", params, err
	}
	if params.EndDate, err = parseDate(s.EndDate); err != nil {
		return "", params, err
	}
	if params.Start, err = parseInstant(s.Start); err != nil {
		return "", params, err
	}
	if params.End, err = parseInstant(s.End); err != nil {
		return "", params, err
	}
	params.Slot = s.Slot
	params.StartSlot = s.StartSlot
	params.EndSlot = s.EndSlot

	mode := domain.ResolveMode(s.Mode)
	if mode == "" {
		switch {
		case s.Start != nil || s.End != nil:
			mode = domain.ModeExplicit
		case s.StartDate != nil || s.EndDate != nil:
			mode = domain.ModeRange
		default:
			mode = domain.ModeSingle
		}
	}

	return mode, params, nil
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, *value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", domain.ErrInvalidInput, *value)
	}
	return &t, nil
}

func parseInstant(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid time %q", domain.ErrInvalidInput, *value)
	}
	return &t, nil
}
