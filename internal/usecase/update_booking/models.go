package update_booking

import "github.com/m04kA/SMC-ResourceBooking/internal/domain"

// Request модель запроса на изменение бронирования.
// Все поля опциональны - меняется только переданное, статус не меняется никогда.
type Request struct {
	BookingID    int64
	ResourceType *string              // Новый ресурс, вместе с ResourceID
	ResourceID   *int64               // Новый ресурс, вместе с ResourceType
	Purpose      *string              // Новая цель
	Mode         *domain.ResolveMode  // Новое окно, если задан режим
	Window       domain.ResolveParams // Выбор даты и слотов для Mode
}

// HasChanges returns true if the request changes anything
func (r *Request) HasChanges() bool {
	return r.ResourceType != nil || r.ResourceID != nil || r.Purpose != nil || r.Mode != nil
}
