package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

// Request модели

// CreateResourceRequest запрос на создание комнаты или сервера
type CreateResourceRequest struct {
	Type        string  `json:"type"`               // room, server
	Name        string  `json:"name"`
	Capacity    *int    `json:"capacity,omitempty"` // Обязательна для комнаты, запрещена для сервера
	Description *string `json:"description,omitempty"`
}

// UpdateResourceRequest запрос на обновление ресурса
// Все поля опциональны - обновляются только переданные значения
type UpdateResourceRequest struct {
	Name        *string `json:"name,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Response модели

// ResourceResponse ответ с данными ресурса
type ResourceResponse struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Capacity    *int      `json:"capacity,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ResourceListResponse ответ со списком ресурсов
type ResourceListResponse struct {
	Resources []ResourceResponse `json:"resources"`
}

// Методы конвертации

// FromDomainResource конвертирует domain модель в DTO
func FromDomainResource(r *domain.Resource) *ResourceResponse {
	if r == nil {
		return nil
	}

	return &ResourceResponse{
		ID:          r.ID,
		Type:        string(r.Type),
		Name:        r.Name,
		Capacity:    r.Capacity,
		Description: r.Description,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

// FromDomainResourceList конвертирует список domain моделей в DTO
func FromDomainResourceList(resources []*domain.Resource) *ResourceListResponse {
	resp := &ResourceListResponse{Resources: make([]ResourceResponse, 0, len(resources))}
	for _, r := range resources {
		resp.Resources = append(resp.Resources, *FromDomainResource(r))
	}
	return resp
}

// ToDomainResource конвертирует CreateResourceRequest в domain модель
func (r *CreateResourceRequest) ToDomainResource(t domain.ResourceType) *domain.Resource {
	return &domain.Resource{
		Type:        t,
		Name:        strings.TrimSpace(r.Name),
		Capacity:    r.Capacity,
		Description: r.Description,
	}
}

// ApplyToResource применяет обновления к существующему ресурсу
// Обновляются только непустые (not nil) поля из request
func (r *UpdateResourceRequest) ApplyToResource(res *domain.Resource) {
	if r.Name != nil {
		res.Name = strings.TrimSpace(*r.Name)
	}
	if r.Capacity != nil {
		res.Capacity = r.Capacity
	}
	if r.Description != nil {
		res.Description = r.Description
	}
}
