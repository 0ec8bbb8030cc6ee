package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

const (
	conferenceTypeMeet = "hangoutsMeet"
	entryPointVideo    = "video"

	operationFreeBusy    = "freebusy"
	operationCreateEvent = "create_event"

	resultOK    = "ok"
	resultError = "error"
)

// Options параметры подключения к Google Calendar
type Options struct {
	CalendarID      string
	CredentialsJSON string
	CredentialsFile string
	Timeout         time.Duration

	// ClientOptions дополнительные опции (endpoint, http client); используются в тестах
	ClientOptions []option.ClientOption
}

// Client клиент Google Calendar API
type Client struct {
	svc        *gcal.Service
	calendarID string
	timeout    time.Duration
	log        Logger
	metrics    Metrics
}

// NewClient создает клиент с учетными данными сервисного аккаунта
func NewClient(ctx context.Context, opts Options, log Logger, metrics Metrics) (*Client, error) {
	clientOpts := []option.ClientOption{option.WithScopes(gcal.CalendarScope)}
	switch {
	case opts.CredentialsJSON != "":
		clientOpts = append(clientOpts, option.WithCredentialsJSON([]byte(opts.CredentialsJSON)))
	case opts.CredentialsFile != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	case len(opts.ClientOptions) == 0:
		return nil, ErrNotConfigured
	}
	clientOpts = append(clientOpts, opts.ClientOptions...)

	svc, err := gcal.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create calendar service: %v", ErrInternal, err)
	}

	calendarID := opts.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	return &Client{
		svc:        svc,
		calendarID: calendarID,
		timeout:    opts.Timeout,
		log:        log,
		metrics:    metrics,
	}, nil
}

// FreeBusy возвращает занятые интервалы календаря в окне [from, to) одним запросом
func (c *Client) FreeBusy(ctx context.Context, from, to time.Time) (*Availability, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req := &gcal.FreeBusyRequest{
		TimeMin: from.Format(time.RFC3339),
		TimeMax: to.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: c.calendarID}},
	}

	resp, err := c.svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		c.record(operationFreeBusy, resultError)
		return nil, fmt.Errorf("%w: freebusy query: %v", ErrUnavailable, err)
	}

	cal, ok := resp.Calendars[c.calendarID]
	if !ok {
		c.record(operationFreeBusy, resultError)
		return nil, fmt.Errorf("%w: calendar %q missing in freebusy response", ErrInvalidResponse, c.calendarID)
	}
	if len(cal.Errors) > 0 {
		c.record(operationFreeBusy, resultError)
		return nil, fmt.Errorf("%w: freebusy error for calendar %q: %s", ErrUnavailable, c.calendarID, cal.Errors[0].Reason)
	}

	busy := make([]domain.BusyInterval, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			c.record(operationFreeBusy, resultError)
			return nil, fmt.Errorf("%w: busy start %q: %v", ErrInvalidResponse, period.Start, err)
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			c.record(operationFreeBusy, resultError)
			return nil, fmt.Errorf("%w: busy end %q: %v", ErrInvalidResponse, period.End, err)
		}
		busy = append(busy, domain.BusyInterval{Start: start, End: end})
	}

	c.record(operationFreeBusy, resultOK)
	return &Availability{Busy: busy, Source: domain.SlotSourceLive}, nil
}

// CreateEvent создает встречу с конференцией Google Meet и приглашает участников
func (c *Client) CreateEvent(ctx context.Context, req *EventRequest) (*Event, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	attendees := make([]*gcal.EventAttendee, 0, len(req.AttendeeEmails))
	for _, email := range req.AttendeeEmails {
		attendees = append(attendees, &gcal.EventAttendee{Email: email})
	}

	event := &gcal.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start:       &gcal.EventDateTime{DateTime: req.Start.Format(time.RFC3339), TimeZone: req.TimeZone},
		End:         &gcal.EventDateTime{DateTime: req.End.Format(time.RFC3339), TimeZone: req.TimeZone},
		Attendees:   attendees,
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId:             req.RequestID,
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{Type: conferenceTypeMeet},
			},
		},
	}

	created, err := c.svc.Events.Insert(c.calendarID, event).
		ConferenceDataVersion(1).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		c.record(operationCreateEvent, resultError)
		return nil, fmt.Errorf("%w: insert event: %v", ErrUnavailable, err)
	}

	meetLink := extractMeetLink(created)
	if meetLink == "" {
		c.log.Warn("Calendar event created without conference link: event_id=%s", created.Id)
	}

	c.record(operationCreateEvent, resultOK)
	return &Event{
		ID:       created.Id,
		MeetLink: meetLink,
		HTMLLink: created.HtmlLink,
	}, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) record(operation, result string) {
	if c.metrics != nil {
		c.metrics.IncCalendarCall(operation, result)
	}
}

// extractMeetLink ссылка на видеовстречу: hangoutLink либо video entry point конференции
func extractMeetLink(event *gcal.Event) string {
	if event.HangoutLink != "" {
		return event.HangoutLink
	}
	if event.ConferenceData == nil {
		return ""
	}
	for _, ep := range event.ConferenceData.EntryPoints {
		if ep.EntryPointType == entryPointVideo && ep.Uri != "" {
			return ep.Uri
		}
	}
	return ""
}
