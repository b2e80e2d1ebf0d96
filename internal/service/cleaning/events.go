package cleaning

import (
	"encoding/json"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
)

type customerRegisteredPayload struct {
	CustomerID int    `json:"customer_id"`
	Name       string `json:"name"`
	Windows    int    `json:"windows"`
}

type bookingCreatedPayload struct {
	BookingID  int    `json:"booking_id"`
	CustomerID int    `json:"customer_id"`
	Date       string `json:"date"`
}

// enqueueEvent кладёт событие в outbox. Ошибка только логируется:
// запись уже сохранена, и откатывать её из-за outbox нельзя.
func (s *Service) enqueueEvent(aggregateType string, aggregateID int, eventType string, payload any) {
	if s.outbox == nil {
		return
	}

	fields := log.Fields{
		"aggregate_type": aggregateType,
		"aggregate_id":   aggregateID,
		"event_type":     eventType,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.WithError(err).WithFields(fields).Warn("failed to marshal outbox payload")
		return
	}

	msg, err := s.outbox.Enqueue(domain.OutboxMessage{
		AggregateType: aggregateType,
		AggregateID:   strconv.Itoa(aggregateID),
		EventType:     eventType,
		Payload:       body,
	})
	if err != nil {
		s.logger.WithError(err).WithFields(fields).Warn("failed to enqueue outbox event")
		return
	}

	if s.metrics != nil {
		s.metrics.RecordOutboxEvent()
	}
	s.logger.WithFields(fields).WithField("outbox_id", msg.ID).Debug("outbox event enqueued")
}
