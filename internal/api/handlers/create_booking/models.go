package create_booking

import (
	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-ResourceBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	UserID       *int64 `json:"userId,omitempty"` // Учитывается только для администратора
	ResourceType string `json:"resourceType"`     // room, server
	ResourceID   int64  `json:"resourceId"`
	Purpose      string `json:"purpose"`
	handlers.WindowSelection
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	mode, params, err := r.WindowSelection.ToResolveParams()
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:       r.UserID,
		ResourceType: r.ResourceType,
		ResourceID:   r.ResourceID,
		Purpose:      r.Purpose,
		Mode:         mode,
		Window:       params,
	}, nil
}
