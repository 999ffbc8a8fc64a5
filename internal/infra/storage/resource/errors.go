package resource

import "errors"

var (
	// ErrResourceNotFound возвращается, когда комната или сервер не найдены
	ErrResourceNotFound = errors.New("resource.repository: resource not found")

	// ErrUnknownType возвращается для неизвестного типа ресурса
	ErrUnknownType = errors.New("resource.repository: unknown resource type")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("resource.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("resource.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("resource.repository: failed to scan row")
)
