package submit_inquiry

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_inquiry: invalid input data")

	// ErrDeliveryFailed возвращается, когда письмо администратору не отправлено
	ErrDeliveryFailed = errors.New("submit_inquiry: delivery failed")
)
