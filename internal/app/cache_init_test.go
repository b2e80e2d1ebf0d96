package app

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/windowcleaning/internal/storage/memory"
)

func TestInitCustomerCache_DisabledWithoutAddr(t *testing.T) {
	customers := memory.NewCustomerRepository()

	got, checker, closeFn := initCustomerCache(context.Background(), DefaultConfig(), customers, log.WithField("test", "cache"))
	defer closeFn()

	if got != customers {
		t.Fatal("repository must be returned unchanged without redis")
	}
	if checker != nil {
		t.Fatal("no health checker expected without redis")
	}
}

func TestInitCustomerCache_DisabledForMemoryStorage(t *testing.T) {
	customers := memory.NewCustomerRepository()
	for _, driver := range []string{"", StorageDriverMemory} {
		cfg := DefaultConfig()
		cfg.StorageDriver = driver
		cfg.RedisAddr = "127.0.0.1:6379"

		got, checker, closeFn := initCustomerCache(context.Background(), cfg, customers, log.WithField("test", "cache"))
		closeFn()

		if got != customers {
			t.Fatalf("driver %q: cache must not wrap in-memory storage", driver)
		}
		if checker != nil {
			t.Fatalf("driver %q: no health checker expected", driver)
		}
	}
}

func TestInitCustomerCache_UnreachableRedis(t *testing.T) {
	customers := memory.NewCustomerRepository()
	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriverPostgres
	cfg.RedisAddr = "127.0.0.1:1"

	got, checker, closeFn := initCustomerCache(context.Background(), cfg, customers, log.WithField("test", "cache"))
	defer closeFn()

	if got != customers {
		t.Fatal("unreachable redis must not break startup")
	}
	if checker != nil {
		t.Fatal("no health checker expected for disabled cache")
	}
}
