package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// PathInt64 извлекает положительный int64 параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	value, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return value, nil
}

// PathResourceRef извлекает ссылку на ресурс из /resources/{type}/{id}
func PathResourceRef(r *http.Request) (domain.ResourceRef, error) {
	resourceType, err := domain.ParseResourceType(mux.Vars(r)["type"])
	if err != nil {
		return domain.ResourceRef{}, err
	}
	id, err := PathInt64(r, "id")
	if err != nil {
		return domain.ResourceRef{}, err
	}
	return domain.ResourceRef{Type: resourceType, ID: id}, nil
}

// QueryInt64 читает необязательный int64 параметр запроса
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &value, nil
}

// QueryString читает необязательный строковый параметр запроса
func QueryString(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}
