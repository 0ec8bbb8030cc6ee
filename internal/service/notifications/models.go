package notifications

import (
	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// Kind тип уведомления
type Kind string

const (
	KindNewBookingAdmin         Kind = "new_booking_admin"
	KindBookingReceivedCustomer Kind = "booking_received_customer"
	KindBookingApprovedCustomer Kind = "booking_approved_customer"
	KindBookingRejectedCustomer Kind = "booking_rejected_customer"
	KindInquiryAdmin            Kind = "inquiry_admin"
)

// templateName имя файла шаблона для типа уведомления
func (k Kind) templateName() string {
	return string(k) + ".html"
}

type slotView struct {
	Date      string
	StartTime string
	EndTime   string
}

type bookingView struct {
	ID             string
	CompanyName    string
	ContactName    string
	Email          string
	Phone          string
	Message        string
	PreferredSlots []slotView
	ConfirmedSlot  *slotView
	MeetLink       string
}

// templateData данные для шаблонов; все значения экранируются html/template
type templateData struct {
	Title         string
	PublicBaseURL string
	Timezone      string
	Booking       *bookingView
	Reason        string
	Inquiry       *domain.Inquiry
}

func newSlotView(s domain.DateTimeSlot) slotView {
	return slotView{Date: s.Date, StartTime: s.StartTime.String(), EndTime: s.EndTime.String()}
}

func newBookingView(b *domain.Booking) *bookingView {
	view := &bookingView{
		ID:          b.ID,
		CompanyName: b.CompanyName,
		ContactName: b.ContactName,
		Email:       b.Email,
	}
	if b.Phone != nil {
		view.Phone = *b.Phone
	}
	if b.Message != nil {
		view.Message = *b.Message
	}
	if b.MeetLink != nil {
		view.MeetLink = *b.MeetLink
	}
	for _, s := range b.PreferredSlots {
		view.PreferredSlots = append(view.PreferredSlots, newSlotView(s))
	}
	if b.ConfirmedSlot != nil {
		confirmed := newSlotView(*b.ConfirmedSlot)
		view.ConfirmedSlot = &confirmed
	}
	return view
}
