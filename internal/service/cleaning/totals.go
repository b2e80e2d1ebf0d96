package cleaning

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"golang.org/x/sync/errgroup"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
)

// GetTotalWindowsForDate суммирует окна всех клиентов, забронированных на date.
func (s *Service) GetTotalWindowsForDate(ctx context.Context, date civil.Date) (_ int, err error) {
	defer func(started time.Time) { s.observe(opGetTotalWindowsForDate, started, err) }(time.Now())

	bookings, err := s.bookingsForDate(ctx, date)
	if err != nil {
		return 0, err
	}
	return s.sumOverCustomers(ctx, bookings, windowsOf)
}

// GetTotalWindowsForDateRange суммирует окна по бронированиям в диапазоне [start, end].
func (s *Service) GetTotalWindowsForDateRange(ctx context.Context, start, end civil.Date) (_ int, err error) {
	defer func(started time.Time) { s.observe(opGetTotalWindowsForDateRange, started, err) }(time.Now())

	bookings, err := s.bookingsForDateRange(ctx, start, end)
	if err != nil {
		return 0, err
	}
	return s.sumOverCustomers(ctx, bookings, windowsOf)
}

// GetTotalCostForBooking возвращает стоимость одного визита: окна * CostPerWindow + CostPerProperty.
func (s *Service) GetTotalCostForBooking(ctx context.Context, bookingID int) (_ int, err error) {
	defer func(started time.Time) { s.observe(opGetTotalCostForBooking, started, err) }(time.Now())

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return 0, err
	}
	customer, err := s.getCustomer(ctx, booking.CustomerID)
	if err != nil {
		return 0, err
	}
	return customer.VisitCost(), nil
}

// GetTotalCostForDate суммирует стоимость всех визитов на date.
func (s *Service) GetTotalCostForDate(ctx context.Context, date civil.Date) (_ int, err error) {
	defer func(started time.Time) { s.observe(opGetTotalCostForDate, started, err) }(time.Now())

	bookings, err := s.bookingsForDate(ctx, date)
	if err != nil {
		return 0, err
	}
	return s.sumOverCustomers(ctx, bookings, costOf)
}

// GetTotalCostForDateRange суммирует стоимость визитов в диапазоне [start, end].
func (s *Service) GetTotalCostForDateRange(ctx context.Context, start, end civil.Date) (_ int, err error) {
	defer func(started time.Time) { s.observe(opGetTotalCostForDateRange, started, err) }(time.Now())

	bookings, err := s.bookingsForDateRange(ctx, start, end)
	if err != nil {
		return 0, err
	}
	return s.sumOverCustomers(ctx, bookings, costOf)
}

func windowsOf(c domain.Customer) int { return c.Windows }

func costOf(c domain.Customer) int { return c.VisitCost() }

// customerLookupConcurrency ограничивает число параллельных запросов клиентов в агрегатах.
const customerLookupConcurrency = 8

// sumOverCustomers суммирует value по владельцам бронирований.
// Агрегат либо полный, либо ошибка: бронирование без клиента даёт ErrCustomerNotFound.
func (s *Service) sumOverCustomers(ctx context.Context, bookings []domain.Booking, value func(domain.Customer) int) (int, error) {
	if s.metrics != nil {
		s.metrics.RecordAggregateSize(len(bookings))
	}

	resolved, err := s.resolveCustomers(ctx, bookings)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, booking := range bookings {
		total += value(resolved[booking.CustomerID])
	}
	return total, nil
}

// resolveCustomers загружает каждого клиента один раз; первая ошибка отменяет остальные запросы.
func (s *Service) resolveCustomers(ctx context.Context, bookings []domain.Booking) (map[int]domain.Customer, error) {
	ids := make([]int, 0, len(bookings))
	seen := make(map[int]struct{}, len(bookings))
	for _, booking := range bookings {
		if _, ok := seen[booking.CustomerID]; ok {
			continue
		}
		seen[booking.CustomerID] = struct{}{}
		ids = append(ids, booking.CustomerID)
	}

	customers := make([]domain.Customer, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(customerLookupConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			customer, err := s.getCustomer(gctx, id)
			if err != nil {
				return err
			}
			customers[i] = customer
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resolved := make(map[int]domain.Customer, len(ids))
	for i, id := range ids {
		resolved[id] = customers[i]
	}
	return resolved, nil
}
