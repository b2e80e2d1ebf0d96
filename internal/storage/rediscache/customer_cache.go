// Package rediscache кэширует клиентов в Redis поверх основного хранилища.
// Клиенты не меняются после создания, поэтому кэш не требует инвалидации.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/windowcleaning/internal/domain"
	"github.com/vladislavdragonenkov/windowcleaning/internal/metrics"
)

const (
	defaultTTL       = 10 * time.Minute
	defaultKeyPrefix = "wcs:customer:"
	dialTimeout      = 5 * time.Second
)

// Open подключается к Redis и проверяет соединение.
func Open(ctx context.Context, addr string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: dialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// Option настраивает CustomerCache.
type Option func(*CustomerCache)

func WithTTL(ttl time.Duration) Option {
	return func(c *CustomerCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithKeyPrefix(prefix string) Option {
	return func(c *CustomerCache) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

func WithLogger(logger *log.Entry) Option {
	return func(c *CustomerCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithMetrics(m *metrics.CacheMetrics) Option {
	return func(c *CustomerCache) {
		c.metrics = m
	}
}

// CustomerCache — read-through кэш FindByID. Ошибки Redis не пробрасываются:
// запрос уходит в основное хранилище.
type CustomerCache struct {
	next    domain.CustomerRepository
	rdb     goredis.Cmdable
	ttl     time.Duration
	prefix  string
	logger  *log.Entry
	metrics *metrics.CacheMetrics
}

// NewCustomerCache оборачивает next кэшем в rdb.
func NewCustomerCache(next domain.CustomerRepository, rdb goredis.Cmdable, options ...Option) *CustomerCache {
	c := &CustomerCache{
		next:   next,
		rdb:    rdb,
		ttl:    defaultTTL,
		prefix: defaultKeyPrefix,
		logger: log.WithField("component", "customer-cache"),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

type cachedCustomer struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Windows int    `json:"windows"`
}

// Save сохраняет клиента в основном хранилище и прогревает кэш.
func (c *CustomerCache) Save(ctx context.Context, customer domain.Customer) error {
	if err := c.next.Save(ctx, customer); err != nil {
		return err
	}
	c.store(ctx, customer)
	return nil
}

func (c *CustomerCache) FindByID(ctx context.Context, id int) (domain.Customer, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(id)).Bytes()
	switch {
	case err == nil:
		var cached cachedCustomer
		if err := json.Unmarshal(raw, &cached); err == nil {
			c.record(metrics.CacheResultHit)
			return domain.Customer{ID: cached.ID, Name: cached.Name, Windows: cached.Windows}, true, nil
		}
		c.logger.WithField("customer_id", id).Warn("corrupted cache entry, reading from storage")
		c.record(metrics.CacheResultError)
	case errors.Is(err, goredis.Nil):
		c.record(metrics.CacheResultMiss)
	default:
		c.logger.WithError(err).WithField("customer_id", id).Warn("redis get failed, reading from storage")
		c.record(metrics.CacheResultError)
	}

	customer, ok, err := c.next.FindByID(ctx, id)
	if err != nil || !ok {
		return customer, ok, err
	}
	c.store(ctx, customer)
	return customer, true, nil
}

func (c *CustomerCache) FindAll(ctx context.Context) ([]domain.Customer, error) {
	return c.next.FindAll(ctx)
}

func (c *CustomerCache) FindByName(ctx context.Context, name string) ([]domain.Customer, error) {
	return c.next.FindByName(ctx, name)
}

func (c *CustomerCache) store(ctx context.Context, customer domain.Customer) {
	body, err := json.Marshal(cachedCustomer{ID: customer.ID, Name: customer.Name, Windows: customer.Windows})
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(customer.ID), body, c.ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("customer_id", customer.ID).Warn("redis set failed")
	}
}

func (c *CustomerCache) key(id int) string {
	return c.prefix + strconv.Itoa(id)
}

func (c *CustomerCache) record(result string) {
	if c.metrics != nil {
		c.metrics.Record(result)
	}
}

var _ domain.CustomerRepository = (*CustomerCache)(nil)
