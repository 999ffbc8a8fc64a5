package update_booking

import (
	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	updateBooking "github.com/m04kA/SMC-ResourceBooking/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model
// Все поля опциональны. Окно меняется, только если передан выбор даты.
type UpdateBookingRequest struct {
	ResourceType *string `json:"resourceType,omitempty"`
	ResourceID   *int64  `json:"resourceId,omitempty"`
	Purpose      *string `json:"purpose,omitempty"`
	handlers.WindowSelection
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID int64) (*updateBooking.Request, error) {
	req := &updateBooking.Request{
		BookingID:    bookingID,
		ResourceType: r.ResourceType,
		ResourceID:   r.ResourceID,
		Purpose:      r.Purpose,
	}

	if r.WindowSelection.IsEmpty() {
		return req, nil
	}

	mode, params, err := r.WindowSelection.ToResolveParams()
	if err != nil {
		return nil, err
	}
	req.Mode = &mode
	req.Window = params

	return req, nil
}
