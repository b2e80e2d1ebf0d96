package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Поддерживаемые драйверы хранилища.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска сервиса бронирований.
type Config struct {
	GRPCAddr    string
	MetricsAddr string

	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool

	// RedisAddr пуст — клиенты читаются из хранилища без кэша.
	RedisAddr        string
	CustomerCacheTTL time.Duration

	// KafkaBrokers пуст — outbox worker не запускается, события копятся в outbox.
	KafkaBrokers []string
	// KafkaTopic пуст — топик выбирается по типу агрегата.
	KafkaTopic string

	OutboxPollInterval  time.Duration
	OutboxBatchSize     int
	OutboxMaxAttempts   int
	OutboxRetryDelay    time.Duration
	OutboxMaxPendingAge time.Duration

	// OutboxRetention — сколько хранить опубликованные сообщения до очистки.
	OutboxRetention       time.Duration
	OutboxCleanupInterval time.Duration

	// Location задаёт часовой пояс, в котором определяется "сегодня".
	Location *time.Location
	LogLevel log.Level
}

// DefaultConfig возвращает настройки для локального запуска без внешних зависимостей.
func DefaultConfig() Config {
	return Config{
		GRPCAddr:              ":50051",
		MetricsAddr:           ":9090",
		StorageDriver:         StorageDriverMemory,
		PostgresAutoMigrate:   true,
		CustomerCacheTTL:      10 * time.Minute,
		OutboxPollInterval:    time.Second,
		OutboxBatchSize:       100,
		OutboxMaxAttempts:     3,
		OutboxRetryDelay:      50 * time.Millisecond,
		OutboxMaxPendingAge:   5 * time.Minute,
		OutboxRetention:       24 * time.Hour,
		OutboxCleanupInterval: 10 * time.Minute,
		Location:              time.Local,
		LogLevel:              log.InfoLevel,
	}
}

// LoadConfigFromEnv читает переменные WCS_* поверх DefaultConfig.
// Некорректные значения игнорируются с предупреждением.
func LoadConfigFromEnv(logger *log.Entry) Config {
	return loadConfig(os.LookupEnv, logger)
}

func loadConfig(lookup func(string) (string, bool), logger *log.Entry) Config {
	if logger == nil {
		logger = log.WithField("component", "config")
	}
	cfg := DefaultConfig()
	env := envReader{lookup: lookup, logger: logger}

	env.str("WCS_GRPC_ADDR", &cfg.GRPCAddr)
	env.str("WCS_METRICS_ADDR", &cfg.MetricsAddr)
	env.str("WCS_STORAGE_DRIVER", &cfg.StorageDriver)
	cfg.StorageDriver = strings.ToLower(cfg.StorageDriver)
	env.str("WCS_POSTGRES_DSN", &cfg.PostgresDSN)
	env.boolean("WCS_POSTGRES_AUTO_MIGRATE", &cfg.PostgresAutoMigrate)
	env.str("WCS_REDIS_ADDR", &cfg.RedisAddr)
	env.duration("WCS_CUSTOMER_CACHE_TTL", &cfg.CustomerCacheTTL)
	env.list("WCS_KAFKA_BROKERS", &cfg.KafkaBrokers)
	env.str("WCS_KAFKA_TOPIC", &cfg.KafkaTopic)
	env.duration("WCS_OUTBOX_POLL_INTERVAL", &cfg.OutboxPollInterval)
	env.positiveInt("WCS_OUTBOX_BATCH_SIZE", &cfg.OutboxBatchSize)
	env.positiveInt("WCS_OUTBOX_MAX_ATTEMPTS", &cfg.OutboxMaxAttempts)
	env.duration("WCS_OUTBOX_RETRY_DELAY", &cfg.OutboxRetryDelay)
	env.duration("WCS_OUTBOX_MAX_PENDING_AGE", &cfg.OutboxMaxPendingAge)
	env.duration("WCS_OUTBOX_RETENTION", &cfg.OutboxRetention)
	env.duration("WCS_OUTBOX_CLEANUP_INTERVAL", &cfg.OutboxCleanupInterval)

	if name, ok := env.value("WCS_TIMEZONE"); ok {
		if loc, err := time.LoadLocation(name); err == nil {
			cfg.Location = loc
		} else {
			env.invalid("WCS_TIMEZONE", name, err)
		}
	}
	if raw, ok := env.value("WCS_LOG_LEVEL"); ok {
		if level, err := log.ParseLevel(raw); err == nil {
			cfg.LogLevel = level
		} else {
			env.invalid("WCS_LOG_LEVEL", raw, err)
		}
	}

	return cfg
}

type envReader struct {
	lookup func(string) (string, bool)
	logger *log.Entry
}

// value возвращает непустое значение переменной.
func (e envReader) value(key string) (string, bool) {
	raw, ok := e.lookup(key)
	raw = strings.TrimSpace(raw)
	return raw, ok && raw != ""
}

func (e envReader) invalid(key, raw string, err error) {
	e.logger.WithError(err).WithFields(log.Fields{
		"env":   key,
		"value": raw,
	}).Warn("invalid config value, using default")
}

func (e envReader) str(key string, target *string) {
	if raw, ok := e.value(key); ok {
		*target = raw
	}
}

func (e envReader) boolean(key string, target *bool) {
	raw, ok := e.value(key)
	if !ok {
		return
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		e.invalid(key, raw, err)
		return
	}
	*target = parsed
}

func (e envReader) positiveInt(key string, target *int) {
	raw, ok := e.value(key)
	if !ok {
		return
	}
	parsed, err := strconv.Atoi(raw)
	if err == nil && parsed <= 0 {
		err = strconv.ErrRange
	}
	if err != nil {
		e.invalid(key, raw, err)
		return
	}
	*target = parsed
}

func (e envReader) duration(key string, target *time.Duration) {
	raw, ok := e.value(key)
	if !ok {
		return
	}
	parsed, err := time.ParseDuration(raw)
	if err == nil && parsed < 0 {
		err = strconv.ErrRange
	}
	if err != nil {
		e.invalid(key, raw, err)
		return
	}
	*target = parsed
}

func (e envReader) list(key string, target *[]string) {
	raw, ok := e.value(key)
	if !ok {
		return
	}
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	*target = items
}
