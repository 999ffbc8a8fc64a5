package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrInvalidStatus возвращается при попытке сохранить вычисляемый или неизвестный статус
	ErrInvalidStatus = errors.New("booking.repository: invalid booking status")

	// ErrInvalidResource возвращается, когда у бронирования нет корректной ссылки на ресурс
	ErrInvalidResource = errors.New("booking.repository: invalid resource reference")

	// ErrLock возвращается, когда не удалось взять блокировку ресурса в БД
	ErrLock = errors.New("booking.repository: failed to lock resource")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
