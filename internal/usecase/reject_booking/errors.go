package reject_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reject_booking: booking not found")

	// ErrAlreadyProcessed возвращается, когда бронирование уже не в статусе pending
	ErrAlreadyProcessed = errors.New("reject_booking: booking already processed")

	// ErrInvalidInput возвращается при некорректной причине отказа
	ErrInvalidInput = errors.New("reject_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reject_booking: internal error")
)
