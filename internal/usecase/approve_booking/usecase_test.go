package approve_booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	"github.com/m04kA/SMC-MeetingBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/calendar"
	"github.com/m04kA/SMC-MeetingBooking/pkg/logger"
	"github.com/m04kA/SMC-MeetingBooking/pkg/ptr"
)

var jst = time.FixedZone("JST", 9*60*60)

type fakeCalendar struct {
	err      error
	requests []*calendar.EventRequest
	before   func()
}

func (f *fakeCalendar) CreateEvent(_ context.Context, req *calendar.EventRequest) (*calendar.Event, error) {
	f.requests = append(f.requests, req)
	if f.before != nil {
		f.before()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &calendar.Event{ID: "evt-1", MeetLink: "https://meet.google.com/abc-defg-hij"}, nil
}

func (f *fakeCalendar) FreeBusy(context.Context, time.Time, time.Time) (*calendar.Availability, error) {
	return nil, errors.New("not used")
}

type fakeNotifier struct {
	approved []*domain.Booking
}

func (n *fakeNotifier) BookingApproved(b *domain.Booking) {
	n.approved = append(n.approved, b)
}

type fixture struct {
	repo     *booking.MemoryRepository
	calendar *fakeCalendar
	notifier *fakeNotifier
	uc       *UseCase
}

func newFixture() *fixture {
	policy := domain.DefaultBusinessHoursPolicy()
	policy.Location = jst

	f := &fixture{
		repo:     booking.NewMemoryRepository(),
		calendar: &fakeCalendar{},
		notifier: &fakeNotifier{},
	}
	f.uc = NewUseCase(f.repo, f.calendar, f.notifier, policy, nil, logger.NewNop())
	return f
}

func (f *fixture) createBooking(t *testing.T) *domain.Booking {
	t.Helper()
	b, err := f.repo.Create(context.Background(), &domain.Booking{
		CompanyName: "Acme",
		ContactName: "Jane",
		Email:       "jane@acme.com",
		PreferredSlots: []domain.DateTimeSlot{
			{Date: "2025-03-10", StartTime: "10:00", EndTime: "11:00"},
			{Date: "2025-03-11", StartTime: "14:00", EndTime: "15:00"},
		},
	})
	require.NoError(t, err)
	return b
}

func TestExecute_ApprovesSelectedSlot(t *testing.T) {
	f := newFixture()
	b := f.createBooking(t)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: b.ID, SelectedSlotIndex: 1})
	require.NoError(t, err)

	approved := resp.Booking
	assert.Equal(t, domain.StatusApproved, approved.Status)
	require.NotNil(t, approved.ConfirmedSlot)
	assert.Equal(t, b.PreferredSlots[1], *approved.ConfirmedSlot)
	require.NotNil(t, approved.MeetLink)
	assert.Equal(t, "https://meet.google.com/abc-defg-hij", *approved.MeetLink)
	require.NotNil(t, approved.CalendarEventID)
	assert.Equal(t, "evt-1", *approved.CalendarEventID)

	require.Len(t, f.calendar.requests, 1)
	req := f.calendar.requests[0]
	assert.True(t, req.Start.Equal(time.Date(2025, 3, 11, 14, 0, 0, 0, jst)))
	assert.True(t, req.End.Equal(time.Date(2025, 3, 11, 15, 0, 0, 0, jst)))
	assert.Equal(t, []string{"jane@acme.com"}, req.AttendeeEmails)
	assert.Equal(t, b.ID, req.RequestID)
	assert.Contains(t, req.Summary, "Acme")

	require.Len(t, f.notifier.approved, 1)
	assert.Equal(t, b.ID, f.notifier.approved[0].ID)

	stored, err := f.repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, stored.Status)
}

func TestExecute_SecondApprovalFails(t *testing.T) {
	f := newFixture()
	b := f.createBooking(t)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: b.ID, SelectedSlotIndex: 0})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{BookingID: b.ID, SelectedSlotIndex: 1})
	assert.ErrorIs(t, err, ErrAlreadyProcessed)

	stored, err := f.repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, stored.Status)
	assert.Equal(t, b.PreferredSlots[0], *stored.ConfirmedSlot)

	assert.Len(t, f.calendar.requests, 1)
	assert.Len(t, f.notifier.approved, 1)
}

func TestExecute_InvalidSlotIndex(t *testing.T) {
	for _, index := range []int{99, 2, -1} {
		f := newFixture()
		b := f.createBooking(t)

		_, err := f.uc.Execute(context.Background(), &Request{BookingID: b.ID, SelectedSlotIndex: index})
		assert.ErrorIs(t, err, ErrInvalidSlot, "index %d", index)

		stored, err := f.repo.GetByID(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, stored.Status)
		assert.Empty(t, f.calendar.requests)
		assert.Empty(t, f.notifier.approved)
	}
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: "missing", SelectedSlotIndex: 0})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_CalendarFailureAbortsApproval(t *testing.T) {
	f := newFixture()
	f.calendar.err = calendar.ErrUnavailable
	b := f.createBooking(t)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: b.ID, SelectedSlotIndex: 0})
	assert.ErrorIs(t, err, ErrProviderUnavailable)

	stored, err := f.repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Nil(t, stored.MeetLink)
	assert.Empty(t, f.notifier.approved)
}

func TestExecute_DevelopmentFallbackUsesPlaceholderLink(t *testing.T) {
	f := newFixture()
	f.calendar.err = calendar.ErrUnavailable
	f.uc.calendar = calendar.NewFallback(f.calendar, logger.NewNop())
	b := f.createBooking(t)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: b.ID, SelectedSlotIndex: 0})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusApproved, resp.Booking.Status)
	require.NotNil(t, resp.Booking.MeetLink)
	assert.True(t, strings.HasPrefix(*resp.Booking.MeetLink, "https://meet.google.com/"))
}

func TestExecute_ConcurrentTransitionLoses(t *testing.T) {
	f := newFixture()
	b := f.createBooking(t)

	// заявку отменяют, пока создается встреча
	f.calendar.before = func() {
		status := domain.StatusCancelled
		_, err := f.repo.UpdateIfStatus(context.Background(), b.ID, domain.StatusPending, domain.BookingPatch{Status: &status})
		require.NoError(t, err)
	}

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: b.ID, SelectedSlotIndex: 0})
	assert.ErrorIs(t, err, ErrAlreadyProcessed)

	stored, err := f.repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	assert.Nil(t, stored.ConfirmedSlot)
	assert.Empty(t, f.notifier.approved)
}

func TestExecute_AdminNotes(t *testing.T) {
	f := newFixture()
	b := f.createBooking(t)

	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID:         b.ID,
		SelectedSlotIndex: 0,
		AdminNotes:        ptr.Ptr("  VIP\x00 customer "),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Booking.AdminNotes)
	assert.Equal(t, "VIP customer", *resp.Booking.AdminNotes)
	assert.Contains(t, f.calendar.requests[0].Description, "Notes: VIP customer")

	f2 := newFixture()
	b2 := f2.createBooking(t)
	_, err = f2.uc.Execute(context.Background(), &Request{
		BookingID:  b2.ID,
		AdminNotes: ptr.Ptr(strings.Repeat("x", domain.MaxAdminNotesLength+1)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, f2.calendar.requests)
}
