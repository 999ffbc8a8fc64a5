package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ResourceType тип бронируемого ресурса
type ResourceType string

const (
	ResourceRoom   ResourceType = "room"
	ResourceServer ResourceType = "server"
)

// IsValid returns true for known resource types
func (t ResourceType) IsValid() bool {
	return t == ResourceRoom || t == ResourceServer
}

// Title возвращает название типа с заглавной буквы ("Room", "Server")
func (t ResourceType) Title() string {
	switch t {
	case ResourceRoom:
		return "Room"
	case ResourceServer:
		return "Server"
	default:
		return string(t)
	}
}

// ParseResourceType конвертирует строку в ResourceType с валидацией
func ParseResourceType(s string) (ResourceType, error) {
	t := ResourceType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: unknown resource type %q", ErrInvalidInput, s)
	}
	return t, nil
}

// ResourceRef ссылка ровно на один ресурс: комнату или сервер
type ResourceRef struct {
	Type ResourceType
	ID   int64
}

// Validate проверяет корректность ссылки на ресурс
func (r ResourceRef) Validate() error {
	if !r.Type.IsValid() {
		return fmt.Errorf("%w: unknown resource type %q", ErrInvalidInput, r.Type)
	}
	if r.ID <= 0 {
		return fmt.Errorf("%w: resource id must be positive", ErrInvalidInput)
	}
	return nil
}

// LockKey ключ для сериализации записей по ресурсу
func (r ResourceRef) LockKey() string {
	return fmt.Sprintf("%s:%d", r.Type, r.ID)
}

func (r ResourceRef) String() string {
	return r.LockKey()
}

// Resource represents a bookable room or server
type Resource struct {
	ID          int64
	Type        ResourceType
	Name        string
	Capacity    *int // Только для комнат
	Description *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Ref возвращает ссылку на ресурс
func (r *Resource) Ref() ResourceRef {
	return ResourceRef{Type: r.Type, ID: r.ID}
}

// Validate проверяет поля ресурса перед сохранением
func (r *Resource) Validate() error {
	if !r.Type.IsValid() {
		return fmt.Errorf("%w: unknown resource type %q", ErrInvalidInput, r.Type)
	}

	name := strings.TrimSpace(r.Name)
	if name == "" {
		return wrapInvalid("name is required")
	}
	if utf8.RuneCountInString(name) > MaxResourceNameLength {
		return wrapInvalid("name is too long")
	}

	if r.Description != nil && utf8.RuneCountInString(*r.Description) > MaxDescriptionLength {
		return wrapInvalid("description is too long")
	}

	switch r.Type {
	case ResourceRoom:
		if r.Capacity == nil {
			return wrapInvalid("capacity is required for rooms")
		}
		if *r.Capacity <= 0 {
			return wrapInvalid("capacity must be positive")
		}
	case ResourceServer:
		if r.Capacity != nil {
			return wrapInvalid("servers have no capacity")
		}
	}

	return nil
}
