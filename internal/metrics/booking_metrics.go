package metrics

import (
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
)

// BookingMetrics содержит метрики доменного сервиса клиентов и бронирований.
type BookingMetrics struct {
	customersRegistered prometheus.Counter
	bookingsCreated     prometheus.Counter
	outboxEvents        prometheus.Counter

	// Отказы операций с разбивкой по виду доменной ошибки.
	rejections *prometheus.CounterVec

	operationDuration *prometheus.HistogramVec
	// Сколько бронирований просмотрено одной агрегирующей операцией.
	aggregateBookings prometheus.Histogram
}

// NewBookingMetrics создаёт метрики в DefaultRegisterer.
func NewBookingMetrics() *BookingMetrics {
	return NewBookingMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewBookingMetricsWithRegisterer создаёт метрики в указанном registerer.
// Повторная регистрация переиспользует уже существующие коллекторы.
func NewBookingMetricsWithRegisterer(registerer prometheus.Registerer) *BookingMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &BookingMetrics{
		customersRegistered: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wcs_customers_registered_total",
			Help: "Total number of customers registered",
		})),
		bookingsCreated: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wcs_bookings_created_total",
			Help: "Total number of bookings created",
		})),
		outboxEvents: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wcs_outbox_events_enqueued_total",
			Help: "Total number of domain events enqueued into the outbox",
		})),
		rejections: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wcs_operation_rejections_total",
			Help: "Total number of rejected operations grouped by operation and error kind",
		}, []string{"operation", "kind"})),
		operationDuration: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wcs_operation_duration_seconds",
			Help:    "Duration of booking service operations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		}, []string{"operation"})),
		aggregateBookings: register(registerer, prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wcs_aggregate_bookings",
			Help:    "Number of bookings scanned by a single aggregate query",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		})),
	}
}

// register регистрирует коллектор или возвращает ранее зарегистрированный того же типа.
func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) C {
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(C)
			if !ok {
				panic(fmt.Sprintf("collector already registered with unexpected type %T", alreadyRegistered.ExistingCollector))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector: %v", err))
	}
	return collector
}

// RecordCustomerRegistered увеличивает счётчик зарегистрированных клиентов.
func (m *BookingMetrics) RecordCustomerRegistered() {
	m.customersRegistered.Inc()
}

// RecordBookingCreated увеличивает счётчик созданных бронирований.
func (m *BookingMetrics) RecordBookingCreated() {
	m.bookingsCreated.Inc()
}

// RecordOutboxEvent увеличивает счётчик событий, положенных в outbox.
func (m *BookingMetrics) RecordOutboxEvent() {
	m.outboxEvents.Inc()
}

// RecordRejection учитывает отказ операции. Недоменные ошибки идут с kind="internal".
func (m *BookingMetrics) RecordRejection(operation string, err error) {
	if err == nil {
		return
	}
	m.rejections.WithLabelValues(operation, KindLabel(err)).Inc()
}

// RecordOperationDuration записывает время выполнения операции.
func (m *BookingMetrics) RecordOperationDuration(operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordAggregateSize записывает количество бронирований в агрегате.
func (m *BookingMetrics) RecordAggregateSize(bookings int) {
	m.aggregateBookings.Observe(float64(bookings))
}

// KindLabel превращает вид доменной ошибки в значение label, например "customer_not_found".
func KindLabel(err error) string {
	kind := domain.KindOf(err)
	if kind == nil {
		return "internal"
	}
	return strings.ReplaceAll(kind.Error(), " ", "_")
}
