package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/calendar"
	"github.com/m04kA/SMC-MeetingBooking/pkg/logger"
)

var jst = time.FixedZone("JST", 9*60*60)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeCalendar struct {
	busy   []domain.BusyInterval
	source domain.SlotSource
	err    error

	calls    int
	from, to time.Time
}

func (f *fakeCalendar) FreeBusy(_ context.Context, from, to time.Time) (*calendar.Availability, error) {
	f.calls++
	f.from, f.to = from, to
	if f.err != nil {
		return nil, f.err
	}
	return &calendar.Availability{Busy: f.busy, Source: f.source}, nil
}

func testPolicy() domain.BusinessHoursPolicy {
	return domain.BusinessHoursPolicy{
		OpenTime:              "10:00",
		CloseTime:             "18:00",
		SlotDurationMinutes:   60,
		Location:              jst,
		WindowStartOffsetDays: 1,
		WindowDays:            14,
		SkipWeekends:          true,
	}
}

func newTestUseCase(cal CalendarProvider, now time.Time) *UseCase {
	uc := NewUseCase(cal, testPolicy(), logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func at(date string, hour, minute int) time.Time {
	d, _ := time.ParseInLocation(domain.DateFormat, date, jst)
	return d.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func day(date string) *time.Time {
	d, _ := time.Parse(domain.DateFormat, date)
	return &d
}

func hasSlot(slots []domain.DateTimeSlot, date, start string) bool {
	for _, s := range slots {
		if s.Date == date && s.StartTime.String() == start {
			return true
		}
	}
	return false
}

func TestExecute_DefaultWindow(t *testing.T) {
	cal := &fakeCalendar{}
	// пятница, 2025-03-07 12:00
	now := at("2025-03-07", 12, 0)
	uc := newTestUseCase(cal, now)

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, 1, cal.calls)
	assert.True(t, cal.from.Equal(at("2025-03-08", 0, 0)))
	assert.True(t, cal.to.Equal(at("2025-03-23", 0, 0)))

	// 10 рабочих дней по 8 слотов
	require.Len(t, resp.Slots, 80)
	assert.Equal(t, domain.DateTimeSlot{Date: "2025-03-10", StartTime: "10:00", EndTime: "11:00"}, resp.Slots[0])
	assert.Equal(t, domain.DateTimeSlot{Date: "2025-03-21", StartTime: "17:00", EndTime: "18:00"}, resp.Slots[79])
	assert.Equal(t, domain.SlotSourceLive, resp.Source)
	assert.Equal(t, now.UTC(), resp.GeneratedAt)
}

func TestExecute_SlotProperties(t *testing.T) {
	busy := []domain.BusyInterval{
		{Start: at("2025-03-10", 10, 30), End: at("2025-03-10", 11, 30)},
		{Start: at("2025-03-11", 13, 0), End: at("2025-03-11", 15, 0)},
		{Start: at("2025-03-12", 9, 0), End: at("2025-03-12", 10, 15)},
		{Start: at("2025-03-13", 17, 59), End: at("2025-03-14", 10, 1)},
	}
	cal := &fakeCalendar{busy: busy}
	now := at("2025-03-10", 14, 20)
	uc := newTestUseCase(cal, now)

	resp, err := uc.Execute(context.Background(), &Request{From: day("2025-03-08"), To: day("2025-03-16")})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)

	for _, s := range resp.Slots {
		start, end, err := s.Interval(jst)
		require.NoError(t, err)

		startMin, _ := s.StartTime.Minutes()
		endMin, _ := s.EndTime.Minutes()
		assert.GreaterOrEqual(t, startMin, 10*60, s.String())
		assert.Less(t, startMin, 18*60, s.String())
		assert.Equal(t, startMin+60, endMin, s.String())

		wd := start.Weekday()
		assert.NotEqual(t, time.Saturday, wd, s.String())
		assert.NotEqual(t, time.Sunday, wd, s.String())

		assert.True(t, start.After(now), s.String())

		for _, b := range busy {
			assert.False(t, start.Before(b.End) && end.After(b.Start), "slot %s overlaps busy %v-%v", s, b.Start, b.End)
		}
	}

	assert.False(t, hasSlot(resp.Slots, "2025-03-10", "14:00"))
	assert.True(t, hasSlot(resp.Slots, "2025-03-10", "15:00"))
	assert.False(t, hasSlot(resp.Slots, "2025-03-12", "10:00"))
	assert.True(t, hasSlot(resp.Slots, "2025-03-12", "11:00"))
	assert.False(t, hasSlot(resp.Slots, "2025-03-13", "17:00"))
	assert.False(t, hasSlot(resp.Slots, "2025-03-14", "10:00"))
	assert.True(t, hasSlot(resp.Slots, "2025-03-14", "11:00"))
}

func TestExecute_BoundaryTouchIsNotOverlap(t *testing.T) {
	cal := &fakeCalendar{busy: []domain.BusyInterval{
		{Start: at("2025-03-10", 11, 0), End: at("2025-03-10", 12, 0)},
	}}
	uc := newTestUseCase(cal, at("2025-03-07", 12, 0))

	resp, err := uc.Execute(context.Background(), &Request{From: day("2025-03-10"), To: day("2025-03-10")})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 7)
	assert.True(t, hasSlot(resp.Slots, "2025-03-10", "10:00"))
	assert.False(t, hasSlot(resp.Slots, "2025-03-10", "11:00"))
	assert.True(t, hasSlot(resp.Slots, "2025-03-10", "12:00"))
}

func TestExecute_BusyInsideSlot(t *testing.T) {
	cal := &fakeCalendar{busy: []domain.BusyInterval{
		{Start: at("2025-03-10", 10, 15), End: at("2025-03-10", 10, 45)},
	}}
	uc := newTestUseCase(cal, at("2025-03-07", 12, 0))

	resp, err := uc.Execute(context.Background(), &Request{From: day("2025-03-10"), To: day("2025-03-10")})
	require.NoError(t, err)

	assert.False(t, hasSlot(resp.Slots, "2025-03-10", "10:00"))
	assert.True(t, hasSlot(resp.Slots, "2025-03-10", "11:00"))
}

func TestExecute_ExcludesPastAndCurrentSlots(t *testing.T) {
	cal := &fakeCalendar{}
	uc := newTestUseCase(cal, at("2025-03-10", 12, 0))

	resp, err := uc.Execute(context.Background(), &Request{From: day("2025-03-10"), To: day("2025-03-10")})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 5)
	assert.Equal(t, "13:00", resp.Slots[0].StartTime.String())
	assert.False(t, hasSlot(resp.Slots, "2025-03-10", "12:00"))
}

func TestExecute_WeekendsIncludedWhenPolicyAllows(t *testing.T) {
	cal := &fakeCalendar{}
	uc := newTestUseCase(cal, at("2025-03-07", 12, 0))
	uc.policy.SkipWeekends = false

	resp, err := uc.Execute(context.Background(), &Request{From: day("2025-03-08"), To: day("2025-03-09")})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 16)
}

func TestExecute_MockSource(t *testing.T) {
	cal := &fakeCalendar{source: domain.SlotSourceMock}
	uc := newTestUseCase(cal, at("2025-03-07", 12, 0))

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotSourceMock, resp.Source)
}

func TestExecute_ProviderUnavailable(t *testing.T) {
	cal := &fakeCalendar{err: errors.New("dial tcp: i/o timeout")}
	uc := newTestUseCase(cal, at("2025-03-07", 12, 0))

	resp, err := uc.Execute(context.Background(), &Request{})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestExecute_InvalidWindow(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{name: "to before from", req: &Request{From: day("2025-03-12"), To: day("2025-03-10")}},
		{name: "window too long", req: &Request{From: day("2025-03-10"), To: day("2025-05-12")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := &fakeCalendar{}
			uc := newTestUseCase(cal, at("2025-03-07", 12, 0))

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, cal.calls)
		})
	}
}

func TestExecute_FromOnlyUsesPolicyLength(t *testing.T) {
	cal := &fakeCalendar{}
	uc := newTestUseCase(cal, at("2025-03-07", 12, 0))

	_, err := uc.Execute(context.Background(), &Request{From: day("2025-03-10")})
	require.NoError(t, err)
	assert.True(t, cal.to.Equal(at("2025-03-25", 0, 0)))
}

func TestGenerateDaySlots_UnevenClose(t *testing.T) {
	policy := testPolicy()
	policy.CloseTime = "12:30"
	policy.SlotDurationMinutes = 45

	slots, err := generateDaySlots(policy, at("2025-03-10", 0, 0))
	require.NoError(t, err)

	require.Len(t, slots, 3)
	assert.Equal(t, "11:30", slots[2].StartTime.String())
	assert.Equal(t, "12:15", slots[2].EndTime.String())
}
