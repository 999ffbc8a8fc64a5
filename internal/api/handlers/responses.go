package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgConcurrent    = "данные изменились параллельно, повторите запрос"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code         int                  `json:"code"`
	Message      string               `json:"message"`
	Notification *domain.Notification `json:"notification,omitempty"`
}

// DecodeJSON декодирует тело запроса, неизвестные поля запрещены
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondError отправляет ошибку с сообщением
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

// RespondNotification отправляет ошибку проверки доступности с уведомлением для клиента
func RespondNotification(w http.ResponseWriter, status int, message string, notification domain.Notification) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message, Notification: &notification})
}

// RespondBadRequest отправляет 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized отправляет 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden отправляет 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound отправляет 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict отправляет 409
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondInternalError отправляет 500 без деталей ошибки
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondAvailabilityError отвечает на ошибки проверки окна: порядок и прошлое дают 400, пересечение 409.
// Возвращает false, если err не относится к проверке доступности.
func RespondAvailabilityError(w http.ResponseWriter, err error) bool {
	if errors.Is(err, domain.ErrConcurrentModification) {
		RespondConflict(w, msgConcurrent)
		return true
	}

	notification, ok := domain.NotificationFromError(err)
	if !ok {
		return false
	}

	status := http.StatusBadRequest
	if notification.Kind == domain.NotificationConflict {
		status = http.StatusConflict
	}
	RespondNotification(w, status, notification.Message, notification)
	return true
}
