package app

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/windowcleaning/internal/health"
	"github.com/vladislavdragonenkov/windowcleaning/internal/storage/memory"
	"github.com/vladislavdragonenkov/windowcleaning/internal/storage/postgres"
)

var errPostgresDSNRequired = errors.New("postgres storage requires WCS_POSTGRES_DSN")

// runtimeDependencies — хранилища, выбранные конфигурацией.
type runtimeDependencies struct {
	customers      domain.CustomerRepository
	bookings       domain.BookingRepository
	outbox         domain.OutboxRepository
	storageChecker healthcheck.Checker
	closeFn        func() error
}

func (d runtimeDependencies) close(logger *log.Entry) {
	if d.closeFn == nil {
		return
	}
	if err := d.closeFn(); err != nil {
		logger.WithError(err).Warn("failed to close storage")
	}
}

func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (runtimeDependencies, error) {
	switch cfg.StorageDriver {
	case "", StorageDriverMemory:
		logger.Info("using in-memory storage")
		return runtimeDependencies{
			customers: memory.NewCustomerRepository(),
			bookings:  memory.NewBookingRepository(),
			outbox:    memory.NewOutboxRepository(),
			storageChecker: healthcheck.NewFuncChecker(StorageDriverMemory, func(context.Context) error {
				return nil
			}),
		}, nil

	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return runtimeDependencies{}, errPostgresDSNRequired
		}

		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return runtimeDependencies{}, fmt.Errorf("init postgres storage: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.MigrateUp(ctx, 0); err != nil {
				_ = store.Close()
				return runtimeDependencies{}, fmt.Errorf("apply postgres migrations: %w", err)
			}
		}

		logger.WithField("auto_migrate", cfg.PostgresAutoMigrate).Info("using postgres storage")
		return runtimeDependencies{
			customers:      postgres.NewCustomerRepository(store),
			bookings:       postgres.NewBookingRepository(store),
			outbox:         postgres.NewOutboxRepository(store),
			storageChecker: healthcheck.NewFuncChecker(StorageDriverPostgres, store.Ping),
			closeFn:        store.Close,
		}, nil

	default:
		return runtimeDependencies{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
