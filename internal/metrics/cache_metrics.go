package metrics

import "github.com/prometheus/client_golang/prometheus"

// Результаты обращения к кэшу клиентов.
const (
	CacheResultHit   = "hit"
	CacheResultMiss  = "miss"
	CacheResultError = "error"
)

// CacheMetrics считает обращения к кэшу клиентов.
type CacheMetrics struct {
	lookups *prometheus.CounterVec
}

func NewCacheMetrics() *CacheMetrics {
	return NewCacheMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func NewCacheMetricsWithRegisterer(registerer prometheus.Registerer) *CacheMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &CacheMetrics{
		lookups: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wcs_customer_cache_lookups_total",
			Help: "Customer cache lookups grouped by result",
		}, []string{"result"})),
	}
}

// Record учитывает обращение к кэшу с результатом result.
func (m *CacheMetrics) Record(result string) {
	m.lookups.WithLabelValues(result).Inc()
}
