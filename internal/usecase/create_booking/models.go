package create_booking

import "github.com/m04kA/SMC-ResourceBooking/internal/domain"

// Request модель запроса на создание бронирования
type Request struct {
	UserID       *int64               // Владелец бронирования, задаёт только администратор (опционально)
	ResourceType string               // room, server
	ResourceID   int64                // ID комнаты или сервера
	Purpose      string               // Цель бронирования
	Mode         domain.ResolveMode   // single, range, explicit
	Window       domain.ResolveParams // Выбор даты и слотов или явные моменты
}
