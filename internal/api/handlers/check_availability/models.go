package check_availability

import (
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	checkAvailability "github.com/m04kA/SMC-ResourceBooking/internal/usecase/check_availability"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	ResourceType       string `json:"resourceType"`
	ResourceID         int64  `json:"resourceId"`
	ExcludingBookingID *int64 `json:"excludingBookingId,omitempty"`
	handlers.WindowSelection
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available    bool                 `json:"available"`
	ResourceType string               `json:"resourceType"`
	ResourceID   int64                `json:"resourceId"`
	StartTime    string               `json:"startTime"`
	EndTime      string               `json:"endTime"`
	Notification *domain.Notification `json:"notification,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest() (*checkAvailability.Request, error) {
	mode, params, err := r.WindowSelection.ToResolveParams()
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		ResourceType: r.ResourceType,
		ResourceID:   r.ResourceID,
		Mode:         mode,
		Window:       params,
		ExcludingID:  r.ExcludingBookingID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Available:    resp.Available,
		ResourceType: string(resp.Resource.Type),
		ResourceID:   resp.Resource.ID,
		StartTime:    resp.StartTime.UTC().Format(time.RFC3339),
		EndTime:      resp.EndTime.UTC().Format(time.RFC3339),
		Notification: resp.Notification,
	}
}
