package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

type memoryRecord struct {
	seq     uint64
	booking *domain.Booking
}

// MemoryRepository хранилище бронирований в памяти процесса.
// Все операции сериализуются мьютексом, наружу отдаются только копии.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*memoryRecord
	seq     uint64
	now     func() time.Time
}

// NewMemoryRepository создает пустое хранилище
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[string]*memoryRecord),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Create сохраняет новое бронирование в статусе pending
func (r *MemoryRepository) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	stored := booking.Clone()
	prepareForCreate(stored, r.now())

	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		if _, exists := r.records[stored.ID]; !exists {
			break
		}
		stored.ID = uuid.NewString()
	}

	r.seq++
	r.records[stored.ID] = &memoryRecord{seq: r.seq, booking: stored}

	return stored.Clone(), nil
}

// GetByID получает бронирование по ID
func (r *MemoryRepository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return rec.booking.Clone(), nil
}

// List возвращает бронирования, новые первыми
func (r *MemoryRepository) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.mu.RLock()
	matched := make([]*memoryRecord, 0, len(r.records))
	for _, rec := range r.records {
		if filter.Status != nil && rec.booking.Status != *filter.Status {
			continue
		}
		matched = append(matched, &memoryRecord{seq: rec.seq, booking: rec.booking.Clone()})
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.booking.CreatedAt.Equal(b.booking.CreatedAt) {
			return a.booking.CreatedAt.After(b.booking.CreatedAt)
		}
		return a.seq > b.seq
	})

	bookings := make([]*domain.Booking, 0, len(matched))
	for _, rec := range matched {
		bookings = append(bookings, rec.booking)
	}
	return bookings, nil
}

// Update применяет частичное обновление
func (r *MemoryRepository) Update(_ context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, ErrBookingNotFound
	}

	if err := patch.Apply(rec.booking, r.now()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStatusConflict, err)
	}
	return rec.booking.Clone(), nil
}

// UpdateIfStatus применяет обновление, только если текущий статус равен expected
func (r *MemoryRepository) UpdateIfStatus(_ context.Context, id string, expected domain.BookingStatus, patch domain.BookingPatch) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	if rec.booking.Status != expected {
		return nil, ErrStatusConflict
	}

	if err := patch.Apply(rec.booking, r.now()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStatusConflict, err)
	}
	return rec.booking.Clone(), nil
}

// Delete удаляет бронирование
func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return ErrBookingNotFound
	}
	delete(r.records, id)
	return nil
}

// prepareForCreate заполняет серверные поля новой записи
func prepareForCreate(b *domain.Booking, now time.Time) {
	b.ID = uuid.NewString()
	b.Status = domain.StatusPending
	b.ConfirmedSlot = nil
	b.MeetLink = nil
	b.CalendarEventID = nil
	b.TruncatePreferredSlots()
	b.CreatedAt = now
	b.UpdatedAt = now
}
