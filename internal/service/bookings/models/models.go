package models

import (
	"time"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// SlotResponse слот в ответах API
type SlotResponse struct {
	Date      string `json:"date"`      // "2025-03-10"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              string         `json:"id"`
	CompanyName     string         `json:"companyName"`
	ContactName     string         `json:"contactName"`
	Email           string         `json:"email"`
	Phone           *string        `json:"phone,omitempty"`
	Message         *string        `json:"message,omitempty"`
	PreferredSlots  []SlotResponse `json:"preferredSlots"`
	Status          string         `json:"status"`
	ConfirmedSlot   *SlotResponse  `json:"confirmedSlot,omitempty"`
	MeetLink        *string        `json:"meetLink,omitempty"`
	CalendarEventID *string        `json:"calendarEventId,omitempty"`
	AdminNotes      *string        `json:"adminNotes,omitempty"`
	CreatedAt       string         `json:"createdAt"`
	UpdatedAt       string         `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainSlot конвертирует domain.DateTimeSlot в SlotResponse
func FromDomainSlot(slot domain.DateTimeSlot) SlotResponse {
	return SlotResponse{
		Date:      slot.Date,
		StartTime: slot.StartTime.String(),
		EndTime:   slot.EndTime.String(),
	}
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	slots := make([]SlotResponse, 0, len(b.PreferredSlots))
	for _, s := range b.PreferredSlots {
		slots = append(slots, FromDomainSlot(s))
	}

	resp := &BookingResponse{
		ID:              b.ID,
		CompanyName:     b.CompanyName,
		ContactName:     b.ContactName,
		Email:           b.Email,
		Phone:           b.Phone,
		Message:         b.Message,
		PreferredSlots:  slots,
		Status:          string(b.Status),
		MeetLink:        b.MeetLink,
		CalendarEventID: b.CalendarEventID,
		AdminNotes:      b.AdminNotes,
		CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if b.ConfirmedSlot != nil {
		confirmed := FromDomainSlot(*b.ConfirmedSlot)
		resp.ConfirmedSlot = &confirmed
	}

	return resp
}

// FromDomainBookings конвертирует список бронирований
func FromDomainBookings(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: result, Total: len(result)}
}
