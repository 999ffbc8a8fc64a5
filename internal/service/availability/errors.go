package availability

import "errors"

// ErrRepository возвращается, когда не удалось получить бронирования ресурса
var ErrRepository = errors.New("availability: failed to load bookings")
