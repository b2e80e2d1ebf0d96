package cleaning

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
)

// AddBooking создаёт бронирование.
// Порядок проверок определяет, какую ошибку увидит вызывающий:
// null → структура → дата в прошлом → существование клиента → дубликат.
func (s *Service) AddBooking(ctx context.Context, booking *domain.Booking) (err error) {
	defer func(started time.Time) { s.observe(opAddBooking, started, err) }(time.Now())

	if err := domain.RequireNotNull(booking, "booking"); err != nil {
		return err
	}
	if err := booking.Validate(); err != nil {
		return err
	}
	if err := domain.RequireDateNotPast(booking.Date, s.Today()); err != nil {
		return err
	}
	if _, err := s.getCustomer(ctx, booking.CustomerID); err != nil {
		return err
	}
	if err := s.bookings.Save(ctx, *booking); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordBookingCreated()
	}
	s.logger.WithFields(log.Fields{
		"booking_id":  booking.ID,
		"customer_id": booking.CustomerID,
		"date":        booking.Date.String(),
	}).Info("booking created")

	s.enqueueEvent(domain.AggregateTypeBooking, booking.ID, domain.EventTypeBookingCreated, bookingCreatedPayload{
		BookingID:  booking.ID,
		CustomerID: booking.CustomerID,
		Date:       booking.Date.String(),
	})
	return nil
}

// GetBookingByID возвращает бронирование или ErrBookingNotFound.
func (s *Service) GetBookingByID(ctx context.Context, id int) (_ domain.Booking, err error) {
	defer func(started time.Time) { s.observe(opGetBookingByID, started, err) }(time.Now())
	return s.getBooking(ctx, id)
}

// GetAllBookings возвращает все бронирования.
func (s *Service) GetAllBookings(ctx context.Context) (_ []domain.Booking, err error) {
	defer func(started time.Time) { s.observe(opGetAllBookings, started, err) }(time.Now())

	bookings, err := s.bookings.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// GetBookingsForDate возвращает бронирования на указанную дату.
func (s *Service) GetBookingsForDate(ctx context.Context, date civil.Date) (_ []domain.Booking, err error) {
	defer func(started time.Time) { s.observe(opGetBookingsForDate, started, err) }(time.Now())
	return s.bookingsForDate(ctx, date)
}

// GetBookingsForCustomerID возвращает бронирования клиента.
// Существование клиента не проверяется: для неизвестного ID результат пустой.
func (s *Service) GetBookingsForCustomerID(ctx context.Context, customerID int) (_ []domain.Booking, err error) {
	defer func(started time.Time) { s.observe(opGetBookingsForCustomerID, started, err) }(time.Now())
	return s.bookingsForCustomer(ctx, customerID)
}

// GetBookingsForDateRange возвращает бронирования в диапазоне [start, end].
func (s *Service) GetBookingsForDateRange(ctx context.Context, start, end civil.Date) (_ []domain.Booking, err error) {
	defer func(started time.Time) { s.observe(opGetBookingsForDateRange, started, err) }(time.Now())
	return s.bookingsForDateRange(ctx, start, end)
}

// GetBookingsForCustomerName возвращает бронирования единственного клиента с именем name.
func (s *Service) GetBookingsForCustomerName(ctx context.Context, name string) (_ []domain.Booking, err error) {
	defer func(started time.Time) { s.observe(opGetBookingsForCustomerName, started, err) }(time.Now())

	customerID, err := s.getCustomerIDByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.bookingsForCustomer(ctx, customerID)
}

func (s *Service) getBooking(ctx context.Context, id int) (domain.Booking, error) {
	booking, ok, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("find booking %d: %w", id, err)
	}
	if !ok {
		return domain.Booking{}, domain.NewBookingNotFound()
	}
	return booking, nil
}

func (s *Service) bookingsForDate(ctx context.Context, date civil.Date) ([]domain.Booking, error) {
	if err := domain.RequireNotNull(date, "date"); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("find bookings for %s: %w", date, err)
	}
	return bookings, nil
}

func (s *Service) bookingsForCustomer(ctx context.Context, customerID int) ([]domain.Booking, error) {
	bookings, err := s.bookings.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("find bookings for customer %d: %w", customerID, err)
	}
	return bookings, nil
}

func (s *Service) bookingsForDateRange(ctx context.Context, start, end civil.Date) ([]domain.Booking, error) {
	if err := domain.RequireNotNull(start, "startDate"); err != nil {
		return nil, err
	}
	if err := domain.RequireNotNull(end, "endDate"); err != nil {
		return nil, err
	}
	if err := domain.RequireStartBeforeEnd(start, end); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("find bookings for %s..%s: %w", start, end, err)
	}
	return bookings, nil
}
