package update_booking

import (
	"fmt"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if !req.HasChanges() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if (req.ResourceType == nil) != (req.ResourceID == nil) {
		return fmt.Errorf("%w: resourceType and resourceId must be set together", ErrInvalidInput)
	}

	return nil
}

// applyRequest строит новое состояние бронирования из текущего и запроса
func applyRequest(current *domain.Booking, req *Request) (*domain.Booking, error) {
	next := *current

	if req.ResourceType != nil {
		resourceType, err := domain.ParseResourceType(*req.ResourceType)
		if err != nil {
			return nil, err
		}
		next.Resource = domain.ResourceRef{Type: resourceType, ID: *req.ResourceID}
		if err := next.Resource.Validate(); err != nil {
			return nil, err
		}
	}

	if req.Purpose != nil {
		purpose, err := domain.ValidatePurpose(*req.Purpose)
		if err != nil {
			return nil, err
		}
		next.Purpose = purpose
	}

	if req.Mode != nil {
		window, err := domain.ResolveWindow(*req.Mode, req.Window)
		if err != nil {
			return nil, err
		}
		next.StartTime = window.Start
		next.EndTime = window.End
	}

	return &next, nil
}
