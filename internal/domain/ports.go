package domain

import "time"

// Типы событий, которые сервис кладёт в outbox.
const (
	EventTypeCustomerRegistered = "customer.registered"
	EventTypeBookingCreated     = "booking.created"

	AggregateTypeCustomer = "customer"
	AggregateTypeBooking  = "booking"
)

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(event OutboxMessage) error
}

// OutboxRepository позволяет сохранять события для последующей публикации.
type OutboxRepository interface {
	Enqueue(msg OutboxMessage) (OutboxMessage, error)
	PullPending(limit int) ([]OutboxMessage, error)
	Stats() (OutboxStats, error)
	MarkSent(id string) error
	MarkFailed(id string) error
}

// OutboxPurger удаляет опубликованные сообщения, отправленные не позже before.
// Возвращает число удалённых записей, не больше limit.
type OutboxPurger interface {
	DeleteSentBefore(before time.Time, limit int) (int, error)
}

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// OutboxStats описывает текущее состояние backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}
