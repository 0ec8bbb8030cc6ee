package approve_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("approve_booking: booking not found")

	// ErrAlreadyProcessed возвращается, когда бронирование уже не в статусе pending
	ErrAlreadyProcessed = errors.New("approve_booking: booking already processed")

	// ErrInvalidSlot возвращается при индексе слота вне диапазона
	ErrInvalidSlot = errors.New("approve_booking: invalid slot index")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("approve_booking: invalid input data")

	// ErrProviderUnavailable возвращается, когда не удалось создать встречу в календаре
	ErrProviderUnavailable = errors.New("approve_booking: calendar provider unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("approve_booking: internal error")
)
