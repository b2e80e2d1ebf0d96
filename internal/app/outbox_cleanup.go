package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
	"github.com/vladislavdragonenkov/windowcleaning/internal/metrics"
	"github.com/vladislavdragonenkov/windowcleaning/internal/service/outbox"
)

// startOutboxCleanup запускает удаление опубликованных сообщений старше cfg.OutboxRetention.
func startOutboxCleanup(
	ctx context.Context,
	cfg Config,
	purger domain.OutboxPurger,
	logger *log.Entry,
) (context.CancelFunc, <-chan struct{}) {
	worker := outbox.NewCleanupWorker(
		purger,
		outbox.WithCleanupLogger(logger.WithField("layer", "outbox-cleanup")),
		outbox.WithCleanupMetrics(metrics.NewOutboxMetrics()),
		outbox.WithCleanupInterval(cfg.OutboxCleanupInterval),
		outbox.WithRetention(cfg.OutboxRetention),
	)

	cleanupCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.Run(cleanupCtx)
	}()
	return cancel, done
}

func stopOutboxCleanup(cancel context.CancelFunc, done <-chan struct{}, logger *log.Entry) {
	if cancel == nil {
		return
	}
	cancel()
	if done != nil {
		<-done
	}
	logger.Debug("outbox cleanup stopped")
}
