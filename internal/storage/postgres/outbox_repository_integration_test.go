package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
)

func TestOutboxRepository_PostgresFlow(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOutboxRepository(store)

	generated, err := repo.Enqueue(domain.OutboxMessage{
		AggregateType: domain.AggregateTypeCustomer,
		AggregateID:   "1",
		EventType:     domain.EventTypeCustomerRegistered,
		Payload:       []byte(`{"customer_id":1,"name":"John","windows":10}`),
	})
	if err != nil {
		t.Fatalf("enqueue msg without id: %v", err)
	}
	if generated.ID == "" {
		t.Fatal("expected generated id for outbox message")
	}

	fixed, err := repo.Enqueue(domain.OutboxMessage{
		ID:            "outbox-fixed-id",
		AggregateType: domain.AggregateTypeBooking,
		AggregateID:   "1",
		EventType:     domain.EventTypeBookingCreated,
	})
	if err != nil {
		t.Fatalf("enqueue msg with id: %v", err)
	}
	if fixed.ID != "outbox-fixed-id" {
		t.Fatalf("expected fixed id, got %q", fixed.ID)
	}

	pending, err := repo.PullPending(0)
	if err != nil {
		t.Fatalf("pull pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending messages, got %d", len(pending))
	}
	if pending[1].Payload != nil {
		t.Fatalf("expected NULL payload to come back as nil, got %s", pending[1].Payload)
	}

	stats, err := repo.Stats()
	if err != nil {
		t.Fatalf("stats before marks: %v", err)
	}
	if stats.PendingCount != 2 || stats.OldestPendingAt.IsZero() {
		t.Fatalf("unexpected stats before marks: %+v", stats)
	}

	if err := repo.MarkSent(generated.ID); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	if err := repo.MarkFailed(fixed.ID); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	after, err := repo.PullPending(10)
	if err != nil {
		t.Fatalf("pull pending after marks: %v", err)
	}
	if len(after) != 0 {
		t.Fatalf("expected no pending after marks, got %d", len(after))
	}
}

func TestOutboxRepository_PostgresMissingRows(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOutboxRepository(store)

	if err := repo.MarkSent("missing-outbox"); !errors.Is(err, domain.ErrOutboxPublish) {
		t.Fatalf("expected ErrOutboxPublish on mark sent missing id, got %v", err)
	}
	if err := repo.MarkFailed("missing-outbox"); !errors.Is(err, domain.ErrOutboxPublish) {
		t.Fatalf("expected ErrOutboxPublish on mark failed missing id, got %v", err)
	}
}

func TestOutboxRepository_PostgresPullOldestFirst(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOutboxRepository(store)

	first, err := repo.Enqueue(domain.OutboxMessage{
		AggregateType: domain.AggregateTypeBooking,
		AggregateID:   "1",
		EventType:     domain.EventTypeBookingCreated,
		Payload:       []byte(`{"booking_id":1}`),
	})
	if err != nil {
		t.Fatalf("enqueue first: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, err := repo.Enqueue(domain.OutboxMessage{
		AggregateType: domain.AggregateTypeBooking,
		AggregateID:   "2",
		EventType:     domain.EventTypeBookingCreated,
		Payload:       []byte(`{"booking_id":2}`),
	}); err != nil {
		t.Fatalf("enqueue second: %v", err)
	}

	batch, err := repo.PullPending(1)
	if err != nil {
		t.Fatalf("pull pending: %v", err)
	}
	if len(batch) != 1 || batch[0].ID != first.ID {
		t.Fatalf("expected oldest message %s first, got %+v", first.ID, batch)
	}
}

func TestOutboxRepository_PostgresDeleteSentBefore(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOutboxRepository(store)
	purger, ok := repo.(domain.OutboxPurger)
	if !ok {
		t.Fatal("postgres outbox repository must implement OutboxPurger")
	}

	for _, id := range []string{"sent-1", "sent-2", "still-pending"} {
		if _, err := repo.Enqueue(domain.OutboxMessage{
			ID:            id,
			AggregateType: domain.AggregateTypeBooking,
			AggregateID:   "1",
			EventType:     domain.EventTypeBookingCreated,
		}); err != nil {
			t.Fatalf("enqueue %s: %v", id, err)
		}
	}
	for _, id := range []string{"sent-1", "sent-2"} {
		if err := repo.MarkSent(id); err != nil {
			t.Fatalf("mark sent %s: %v", id, err)
		}
	}

	deleted, err := purger.DeleteSentBefore(time.Now().UTC().Add(-time.Hour), 10)
	if err != nil {
		t.Fatalf("delete with past cutoff: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("fresh messages must be kept, deleted %d", deleted)
	}

	deleted, err = purger.DeleteSentBefore(time.Now().UTC().Add(time.Minute), 1)
	if err != nil {
		t.Fatalf("delete first batch: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected batch of 1, got %d", deleted)
	}

	deleted, err = purger.DeleteSentBefore(time.Now().UTC().Add(time.Minute), 10)
	if err != nil {
		t.Fatalf("delete rest: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 remaining sent message, got %d", deleted)
	}

	stats, err := repo.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.PendingCount != 1 {
		t.Fatalf("pending message must survive cleanup, got %+v", stats)
	}
}
