package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/windowcleaning/internal/health"
	"github.com/vladislavdragonenkov/windowcleaning/internal/metrics"
	"github.com/vladislavdragonenkov/windowcleaning/internal/storage/rediscache"
)

// initCustomerCache оборачивает репозиторий клиентов кэшем Redis.
// Без адреса, при недоступном Redis или при in-memory хранилище возвращает репозиторий как есть:
// записи в Redis переживают процесс и ссылались бы на клиентов, которых в новом хранилище нет.
func initCustomerCache(
	ctx context.Context,
	cfg Config,
	customers domain.CustomerRepository,
	logger *log.Entry,
) (domain.CustomerRepository, healthcheck.Checker, func()) {
	if cfg.RedisAddr == "" {
		return customers, nil, func() {}
	}
	if cfg.StorageDriver == "" || cfg.StorageDriver == StorageDriverMemory {
		logger.Warn("customer cache requires persistent storage, cache disabled")
		return customers, nil, func() {}
	}

	rdb, err := rediscache.Open(ctx, cfg.RedisAddr)
	if err != nil {
		logger.WithError(err).Warn("redis is unavailable, customer cache disabled")
		return customers, nil, func() {}
	}

	logger.WithFields(log.Fields{
		"addr": cfg.RedisAddr,
		"ttl":  cfg.CustomerCacheTTL.String(),
	}).Info("customer cache enabled")

	cached := rediscache.NewCustomerCache(
		customers,
		rdb,
		rediscache.WithTTL(cfg.CustomerCacheTTL),
		rediscache.WithLogger(logger.WithField("layer", "cache")),
		rediscache.WithMetrics(metrics.NewCacheMetrics()),
	)
	checker := healthcheck.NewFuncChecker("cache", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	closeFn := func() {
		if err := rdb.Close(); err != nil {
			logger.WithError(err).Warn("failed to close redis client")
		}
	}
	return cached, checker, closeFn
}
