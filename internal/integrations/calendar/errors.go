package calendar

import "errors"

var (
	// ErrNotConfigured возвращается, когда учетные данные календаря не заданы
	ErrNotConfigured = errors.New("calendar client: provider is not configured")

	// ErrUnavailable возвращается, когда провайдер недоступен или вернул ошибку
	ErrUnavailable = errors.New("calendar client: provider unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("calendar client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendar client: internal error")
)
