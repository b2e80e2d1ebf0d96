// Package cleaning реализует доменный сервис клиентов и бронирований мойки окон:
// регистрацию, поиск и агрегаты по окнам и стоимости.
package cleaning

import (
	"time"

	"cloud.google.com/go/civil"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
	"github.com/vladislavdragonenkov/windowcleaning/internal/metrics"
)

// Имена операций для логов и метрик.
const (
	opAddCustomer                 = "AddCustomer"
	opGetCustomer                 = "GetCustomer"
	opGetAllCustomers             = "GetAllCustomers"
	opGetCustomerIDByName         = "GetCustomerIDByName"
	opAddBooking                  = "AddBooking"
	opGetBookingByID              = "GetBookingByID"
	opGetAllBookings              = "GetAllBookings"
	opGetBookingsForDate          = "GetBookingsForDate"
	opGetBookingsForCustomerID    = "GetBookingsForCustomerID"
	opGetBookingsForDateRange     = "GetBookingsForDateRange"
	opGetBookingsForCustomerName  = "GetBookingsForCustomerName"
	opGetTotalWindowsForDate      = "GetTotalWindowsForDate"
	opGetTotalWindowsForDateRange = "GetTotalWindowsForDateRange"
	opGetTotalCostForBooking      = "GetTotalCostForBooking"
	opGetTotalCostForDate         = "GetTotalCostForDate"
	opGetTotalCostForDateRange    = "GetTotalCostForDateRange"
)

// Options задаёт необязательные зависимости сервиса.
type Options struct {
	Logger   *log.Entry
	Outbox   domain.OutboxRepository
	Metrics  *metrics.BookingMetrics
	Clock    func() time.Time
	Location *time.Location
}

// Option настраивает Service.
type Option func(*Options)

// WithLogger задаёт logger сервиса.
func WithLogger(logger *log.Entry) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithOutbox включает публикацию доменных событий через transactional outbox.
func WithOutbox(outbox domain.OutboxRepository) Option {
	return func(opts *Options) {
		opts.Outbox = outbox
	}
}

// WithMetrics включает запись Prometheus-метрик.
func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(opts *Options) {
		opts.Metrics = m
	}
}

// WithClock подменяет источник текущего времени (нужно для проверки дат в прошлом).
func WithClock(clock func() time.Time) Option {
	return func(opts *Options) {
		opts.Clock = clock
	}
}

// WithLocation задаёт часовой пояс, в котором определяется "сегодня".
func WithLocation(loc *time.Location) Option {
	return func(opts *Options) {
		opts.Location = loc
	}
}

// Service оркестрирует хранилища клиентов и бронирований.
// Любая ошибка возвращается сразу, частичных результатов нет.
type Service struct {
	customers domain.CustomerRepository
	bookings  domain.BookingRepository
	outbox    domain.OutboxRepository
	metrics   *metrics.BookingMetrics
	logger    *log.Entry
	clock     func() time.Time
	location  *time.Location
}

// NewService конструирует сервис с зависимостями.
func NewService(customers domain.CustomerRepository, bookings domain.BookingRepository, options ...Option) *Service {
	opts := Options{}
	for _, option := range options {
		option(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = log.WithField("component", "cleaning-service")
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	return &Service{
		customers: customers,
		bookings:  bookings,
		outbox:    opts.Outbox,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		clock:     opts.Clock,
		location:  opts.Location,
	}
}

// Today возвращает текущую календарную дату в часовом поясе сервиса.
func (s *Service) Today() civil.Date {
	return civil.DateOf(s.clock().In(s.location))
}

// observe пишет метрики и лог по завершении операции.
func (s *Service) observe(operation string, started time.Time, err error) {
	if s.metrics != nil {
		s.metrics.RecordOperationDuration(operation, time.Since(started))
		s.metrics.RecordRejection(operation, err)
	}
	if err == nil {
		return
	}

	entry := s.logger.WithError(err).WithField("operation", operation)
	if domain.KindOf(err) != nil {
		entry.Debug("operation rejected")
		return
	}
	entry.Error("operation failed")
}
