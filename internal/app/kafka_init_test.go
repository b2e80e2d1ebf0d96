package app

import (
	"context"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
	"github.com/vladislavdragonenkov/windowcleaning/internal/storage/memory"
)

func TestInitKafkaProducer_NoBrokers(t *testing.T) {
	producer, err := initKafkaProducer(nil, log.WithField("test", "kafka"))
	if err != nil {
		t.Errorf("expected no error without brokers, got %v", err)
	}
	if producer != nil {
		t.Error("expected nil producer without brokers")
	}
}

func TestInitKafkaProducer_UnreachableBroker(t *testing.T) {
	producer, err := initKafkaProducer([]string{"127.0.0.1:1"}, log.WithField("test", "kafka"))
	if err == nil {
		closeKafkaProducer(producer, log.WithField("test", "kafka"))
		t.Fatal("expected error for unreachable broker")
	}
	if producer != nil {
		t.Error("expected nil producer on error")
	}
}

func TestCloseKafkaProducer_Nil(_ *testing.T) {
	closeKafkaProducer(nil, log.WithField("test", "kafka"))
}

type recordingPublisher struct {
	published chan domain.OutboxMessage
}

func (p *recordingPublisher) Publish(msg domain.OutboxMessage) error {
	p.published <- msg
	return nil
}

func TestStartOutboxWorker_PublishesAndStops(t *testing.T) {
	repo := memory.NewOutboxRepository()
	if _, err := repo.Enqueue(domain.OutboxMessage{
		AggregateType: domain.AggregateTypeCustomer,
		AggregateID:   "1",
		EventType:     domain.EventTypeCustomerRegistered,
	}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	cfg := DefaultConfig()
	cfg.OutboxPollInterval = 10 * time.Millisecond
	publisher := &recordingPublisher{published: make(chan domain.OutboxMessage, 1)}
	logger := log.WithField("test", "outbox-worker")

	cancel, done := startOutboxWorker(context.Background(), cfg, repo, publisher, nil, logger)

	select {
	case msg := <-publisher.published:
		if msg.EventType != domain.EventTypeCustomerRegistered {
			t.Errorf("unexpected event type %q", msg.EventType)
		}
	case <-time.After(time.Second):
		t.Fatal("worker did not publish pending event")
	}

	shutdownOutboxWorker(cancel, done, logger)

	select {
	case <-done:
	default:
		t.Fatal("worker must be stopped after shutdownOutboxWorker")
	}

	shutdownOutboxWorker(nil, nil, logger)
}
