package kafka

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
)

func TestProducer_PublishJSON(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := NewProducerFromSync(mockProducer, log.WithField("component", "kafka-producer-test"))

	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicBookingEvents {
			return fmt.Errorf("unexpected topic %s", msg.Topic)
		}
		if len(msg.Headers) != 1 || string(msg.Headers[0].Key) != HeaderEventType {
			return fmt.Errorf("unexpected headers %+v", msg.Headers)
		}
		return nil
	})

	err := producer.PublishJSON(TopicBookingEvents, "1", map[string]int{"booking_id": 1}, map[string]string{
		HeaderEventType: domain.EventTypeBookingCreated,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishJSON_Error(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := NewProducerFromSync(mockProducer, nil)

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	if err := producer.PublishJSON(TopicCustomerEvents, "1", struct{}{}, nil); err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishJSON_MarshalError(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := NewProducerFromSync(mockProducer, nil)

	// Каналы не сериализуются в JSON; до брокера дело не доходит.
	if err := producer.PublishJSON(TopicCustomerEvents, "1", make(chan int), nil); err == nil {
		t.Fatal("expected marshal error, got nil")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewEnvelope(t *testing.T) {
	publishedAt := time.Date(2025, 10, 1, 12, 0, 0, 0, time.FixedZone("BST", 3600))

	env := NewEnvelope(domain.OutboxMessage{
		ID:            "outbox-1",
		AggregateType: domain.AggregateTypeCustomer,
		AggregateID:   "1",
		EventType:     domain.EventTypeCustomerRegistered,
		Payload:       []byte(`{"customer_id":1}`),
	}, publishedAt)

	if env.PublishedAt.Location() != time.UTC {
		t.Errorf("expected UTC timestamp, got %v", env.PublishedAt.Location())
	}
	if string(env.Payload) != `{"customer_id":1}` {
		t.Errorf("unexpected payload %s", env.Payload)
	}

	empty := NewEnvelope(domain.OutboxMessage{ID: "outbox-2"}, publishedAt)
	data, err := json.Marshal(empty)
	if err != nil {
		t.Fatalf("marshal envelope with empty payload: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if decoded["payload"] != nil {
		t.Errorf("expected null payload, got %v", decoded["payload"])
	}
}

func TestTopicFor(t *testing.T) {
	tests := map[string]string{
		domain.AggregateTypeCustomer: TopicCustomerEvents,
		domain.AggregateTypeBooking:  TopicBookingEvents,
		"unknown":                    TopicDeadLetterQueue,
	}
	for aggregate, want := range tests {
		if got := TopicFor(aggregate); got != want {
			t.Errorf("TopicFor(%q) = %q, want %q", aggregate, got, want)
		}
	}
}
