package notifications

import "errors"

var (
	// ErrRender возвращается при ошибке рендеринга шаблона
	ErrRender = errors.New("notifications: failed to render template")

	// ErrQueueFull возвращается, когда очередь отправки переполнена
	ErrQueueFull = errors.New("notifications: queue is full")

	// ErrStopped возвращается при отправке после остановки диспетчера
	ErrStopped = errors.New("notifications: dispatcher stopped")

	// ErrRecipientMissing возвращается, когда адрес администратора не настроен
	ErrRecipientMissing = errors.New("notifications: recipient is not configured")

	// ErrDelivery возвращается при ошибке синхронной отправки
	ErrDelivery = errors.New("notifications: delivery failed")
)
