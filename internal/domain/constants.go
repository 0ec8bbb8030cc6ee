package domain

// Default business hours policy
const (
	DefaultOpenTime              = "10:00"
	DefaultCloseTime             = "18:00"
	DefaultSlotDurationMinutes   = 60
	DefaultWindowStartOffsetDays = 1  // с завтрашнего дня
	DefaultWindowDays            = 14 // две недели вперед
	DefaultTimezone              = "Asia/Tokyo"
)

// Business validation constants
const (
	MaxPreferredSlots     = 3
	MaxNameLength         = 100
	MaxEmailLength        = 254
	MaxPhoneLength        = 30
	MaxMessageLength      = 2000
	MaxAdminNotesLength   = 1000
	MaxRejectReasonLength = 500
	MaxCategoryLength     = 50
	MaxWindowDays         = 62
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllStatuses все допустимые статусы бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusCancelled,
}
