package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном окне дат
	ErrInvalidInput = errors.New("invalid input data")

	// ErrProviderUnavailable возвращается, когда календарь недоступен или не настроен
	ErrProviderUnavailable = errors.New("calendar provider unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
