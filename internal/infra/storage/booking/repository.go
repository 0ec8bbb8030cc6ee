package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	"github.com/m04kA/SMC-MeetingBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-MeetingBooking/pkg/types"
)

const tableBookings = "bookings"

var bookingColumns = []string{
	"id",
	"company_name",
	"contact_name",
	"email",
	"phone",
	"message",
	"preferred_slots",
	"status",
	"confirmed_slot",
	"meet_link",
	"calendar_event_id",
	"admin_notes",
	"created_at",
	"updated_at",
}

// slotRecord представление слота в JSONB
type slotRecord struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Repository репозиторий бронирований в PostgreSQL
type Repository struct {
	db  DB
	now func() time.Time
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DB) *Repository {
	return &Repository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create создает новое бронирование в статусе pending
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	stored := booking.Clone()
	prepareForCreate(stored, r.now())

	slots, err := encodeSlots(stored.PreferredSlots)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - preferred slots: %v", ErrEncodeSlots, err)
	}

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"id",
			"company_name",
			"contact_name",
			"email",
			"phone",
			"message",
			"preferred_slots",
			"status",
			"created_at",
			"updated_at",
		).
		Values(
			stored.ID,
			stored.CompanyName,
			stored.ContactName,
			stored.Email,
			stored.Phone,
			stored.Message,
			string(slots),
			stored.Status,
			stored.CreatedAt,
			stored.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return stored, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return r.getByID(ctx, r.db, id, false)
}

// List получает список бронирований, новые первыми.
// Опционально фильтрует по статусу
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		OrderBy("created_at DESC", "id DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// Update применяет частичное обновление
func (r *Repository) Update(ctx context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	return r.update(ctx, id, nil, patch)
}

// UpdateIfStatus применяет обновление, только если текущий статус равен expected.
// Строка блокируется SELECT ... FOR UPDATE, поэтому два конкурентных перехода не теряют запись.
func (r *Repository) UpdateIfStatus(ctx context.Context, id string, expected domain.BookingStatus, patch domain.BookingPatch) (*domain.Booking, error) {
	return r.update(ctx, id, &expected, patch)
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id string) error {
	if !isValidID(id) {
		return ErrBookingNotFound
	}

	query, args, err := psqlbuilder.Delete(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) update(ctx context.Context, id string, expected *domain.BookingStatus, patch domain.BookingPatch) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: update - begin: %v", ErrTransaction, err)
	}
	defer func() { _ = tx.Rollback() }()

	// 1. Блокируем строку до конца транзакции
	booking, err := r.getByID(ctx, tx, id, true)
	if err != nil {
		return nil, err
	}

	// 2. Проверяем ожидаемый статус (compare-and-swap)
	if expected != nil && booking.Status != *expected {
		return nil, ErrStatusConflict
	}

	// 3. Применяем изменения теми же правилами, что и in-memory хранилище
	if err := patch.Apply(booking, r.now()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStatusConflict, err)
	}

	query, args, err := buildUpdateQuery(booking)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: update - execute update: %v", ErrExecQuery, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: update - commit: %v", ErrTransaction, err)
	}

	return booking, nil
}

func (r *Repository) getByID(ctx context.Context, executor DBExecutor, id string, forUpdate bool) (*domain.Booking, error) {
	if !isValidID(id) {
		return nil, ErrBookingNotFound
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - %v", ErrScanRow, err)
	}

	return booking, nil
}

// buildUpdateQuery записывает все изменяемые поля; id и created_at не трогаются
func buildUpdateQuery(b *domain.Booking) (string, []interface{}, error) {
	var confirmed interface{}
	if b.ConfirmedSlot != nil {
		encoded, err := encodeSlot(*b.ConfirmedSlot)
		if err != nil {
			return "", nil, fmt.Errorf("%w: update - confirmed slot: %v", ErrEncodeSlots, err)
		}
		confirmed = string(encoded)
	}

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", b.Status).
		Set("confirmed_slot", confirmed).
		Set("meet_link", b.MeetLink).
		Set("calendar_event_id", b.CalendarEventID).
		Set("admin_notes", b.AdminNotes).
		Set("updated_at", b.UpdatedAt).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: update - build update query: %v", ErrBuildQuery, err)
	}

	return query, args, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking                              domain.Booking
		phone, message                       sql.NullString
		meetLink, calendarEventID, adminNote sql.NullString
		preferred, confirmed                 []byte
		status                               string
	)

	err := row.Scan(
		&booking.ID,
		&booking.CompanyName,
		&booking.ContactName,
		&booking.Email,
		&phone,
		&message,
		&preferred,
		&status,
		&confirmed,
		&meetLink,
		&calendarEventID,
		&adminNote,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Status = domain.BookingStatus(status)
	booking.Phone = nullString(phone)
	booking.Message = nullString(message)
	booking.MeetLink = nullString(meetLink)
	booking.CalendarEventID = nullString(calendarEventID)
	booking.AdminNotes = nullString(adminNote)

	booking.PreferredSlots, err = decodeSlots(preferred)
	if err != nil {
		return nil, fmt.Errorf("decode preferred slots: %w", err)
	}

	if len(confirmed) > 0 {
		slot, err := decodeSlot(confirmed)
		if err != nil {
			return nil, fmt.Errorf("decode confirmed slot: %w", err)
		}
		booking.ConfirmedSlot = &slot
	}

	return &booking, nil
}

func encodeSlots(slots []domain.DateTimeSlot) ([]byte, error) {
	records := make([]slotRecord, 0, len(slots))
	for _, s := range slots {
		records = append(records, toSlotRecord(s))
	}
	return json.Marshal(records)
}

func encodeSlot(slot domain.DateTimeSlot) ([]byte, error) {
	return json.Marshal(toSlotRecord(slot))
}

func decodeSlots(data []byte) ([]domain.DateTimeSlot, error) {
	var records []slotRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	slots := make([]domain.DateTimeSlot, 0, len(records))
	for _, rec := range records {
		slots = append(slots, rec.toDomain())
	}
	return slots, nil
}

func decodeSlot(data []byte) (domain.DateTimeSlot, error) {
	var rec slotRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.DateTimeSlot{}, err
	}
	return rec.toDomain(), nil
}

func toSlotRecord(s domain.DateTimeSlot) slotRecord {
	return slotRecord{Date: s.Date, StartTime: s.StartTime.String(), EndTime: s.EndTime.String()}
}

func (rec slotRecord) toDomain() domain.DateTimeSlot {
	return domain.DateTimeSlot{
		Date:      rec.Date,
		StartTime: types.TimeString(rec.StartTime),
		EndTime:   types.TimeString(rec.EndTime),
	}
}

// isValidID колонка id имеет тип UUID: строка другого формата не может существовать
func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
