package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса и возвращает ссылку на ресурс и цель
func validateRequest(req *Request) (domain.ResourceRef, string, error) {
	resourceType, err := domain.ParseResourceType(req.ResourceType)
	if err != nil {
		return domain.ResourceRef{}, "", err
	}

	ref := domain.ResourceRef{Type: resourceType, ID: req.ResourceID}
	if err := ref.Validate(); err != nil {
		return domain.ResourceRef{}, "", err
	}

	purpose, err := domain.ValidatePurpose(req.Purpose)
	if err != nil {
		return domain.ResourceRef{}, "", err
	}

	if req.UserID != nil && *req.UserID <= 0 {
		return domain.ResourceRef{}, "", fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	return ref, purpose, nil
}
