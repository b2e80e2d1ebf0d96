package kafka

import (
	"encoding/json"
	"time"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
)

// Topics для Kafka
const (
	TopicCustomerEvents  = "wcs.customer.events"
	TopicBookingEvents   = "wcs.booking.events"
	TopicDeadLetterQueue = "wcs.dlq"
)

// Kafka headers
const (
	HeaderEventType     = "x-event-type"
	HeaderAggregateType = "x-aggregate-type"
)

// Envelope — формат сообщения, в котором событие из outbox уходит в Kafka.
type Envelope struct {
	ID            string          `json:"id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	PublishedAt   time.Time       `json:"published_at"`
}

// NewEnvelope оборачивает outbox-сообщение. Пустой payload заменяется на null,
// иначе json.RawMessage даст невалидный JSON.
func NewEnvelope(msg domain.OutboxMessage, publishedAt time.Time) Envelope {
	payload := json.RawMessage(msg.Payload)
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	return Envelope{
		ID:            msg.ID,
		AggregateType: msg.AggregateType,
		AggregateID:   msg.AggregateID,
		EventType:     msg.EventType,
		Payload:       payload,
		PublishedAt:   publishedAt.UTC(),
	}
}

// TopicFor выбирает topic по типу агрегата.
func TopicFor(aggregateType string) string {
	switch aggregateType {
	case domain.AggregateTypeCustomer:
		return TopicCustomerEvents
	case domain.AggregateTypeBooking:
		return TopicBookingEvents
	default:
		return TopicDeadLetterQueue
	}
}
