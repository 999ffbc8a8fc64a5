package list_bookings

import (
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/bookings/models"
)

// parseQuery собирает параметры списка из query string.
// Даты from и to в формате YYYY-MM-DD.
func parseQuery(r *http.Request) (*models.ListBookingsRequest, error) {
	q := r.URL.Query()

	resourceID, err := handlers.QueryInt64(r, "resourceId")
	if err != nil {
		return nil, err
	}

	from, err := parseDate(q.Get("from"))
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	to, err := parseDate(q.Get("to"))
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}

	return &models.ListBookingsRequest{
		Tab:        q.Get("tab"),
		TimeStatus: handlers.QueryString(r, "timeStatus"),
		Status:     handlers.QueryString(r, "status"),
		ResourceID: resourceID,
		From:       from,
		To:         to,
	}, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
