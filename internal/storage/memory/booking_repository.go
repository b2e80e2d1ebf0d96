package memory

import (
	"context"
	"sort"
	"sync"

	"cloud.google.com/go/civil"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
)

// bookingRepositoryInMemory — in-memory реализация BookingRepository.
type bookingRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[int]domain.Booking
}

// NewBookingRepository возвращает in-memory репозиторий бронирований для локальной разработки и тестов.
func NewBookingRepository() domain.BookingRepository {
	return &bookingRepositoryInMemory{
		items: make(map[int]domain.Booking),
	}
}

// Save сохраняет бронирование; дубликат отклоняется без изменения состояния.
func (r *bookingRepositoryInMemory) Save(_ context.Context, booking domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := domain.RequireNoDuplicateKey(r.items, booking.ID, "Booking"); err != nil {
		return err
	}
	r.items[booking.ID] = booking
	return nil
}

func (r *bookingRepositoryInMemory) FindByID(_ context.Context, id int) (domain.Booking, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.items[id]
	return booking, ok, nil
}

func (r *bookingRepositoryInMemory) FindAll(_ context.Context) ([]domain.Booking, error) {
	return r.filter(func(domain.Booking) bool { return true }), nil
}

func (r *bookingRepositoryInMemory) FindByDate(_ context.Context, date civil.Date) ([]domain.Booking, error) {
	return r.filter(func(b domain.Booking) bool { return b.OnDate(date) }), nil
}

func (r *bookingRepositoryInMemory) FindByCustomerID(_ context.Context, customerID int) ([]domain.Booking, error) {
	return r.filter(func(b domain.Booking) bool { return b.CustomerID == customerID }), nil
}

// FindByDateRange возвращает бронирования в диапазоне, включая обе границы.
func (r *bookingRepositoryInMemory) FindByDateRange(_ context.Context, start, end civil.Date) ([]domain.Booking, error) {
	return r.filter(func(b domain.Booking) bool { return b.Within(start, end) }), nil
}

func (r *bookingRepositoryInMemory) filter(match func(domain.Booking) bool) []domain.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Booking, 0, len(r.items))
	for _, booking := range r.items {
		if match(booking) {
			result = append(result, booking)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

var _ domain.BookingRepository = (*bookingRepositoryInMemory)(nil)
