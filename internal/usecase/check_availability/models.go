package check_availability

import (
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// Request модель запроса на проверку доступности
type Request struct {
	ResourceType string               // room, server
	ResourceID   int64                // ID комнаты или сервера
	Mode         domain.ResolveMode   // single, range, explicit
	Window       domain.ResolveParams // Выбор даты и слотов или явные моменты
	ExcludingID  *int64               // Редактируемое бронирование (опционально)
}

// Response результат проверки. Если окно недоступно, Notification объясняет почему.
type Response struct {
	Available    bool
	Resource     domain.ResourceRef
	StartTime    time.Time
	EndTime      time.Time
	Notification *domain.Notification
}
