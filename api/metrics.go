package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the API
type Metrics struct {
	CardInfoRequests prometheus.Counter
	LookupMisses     prometheus.Counter
	QuotaRejections  prometheus.Counter
	AuthFailures     *prometheus.CounterVec
	TokensIssued     prometheus.Counter
	TokensRevoked    prometheus.Counter
	DatasetEntries   prometheus.Gauge
}

// NewMetrics registers and returns the API metrics collectors
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CardInfoRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "cardbin_cardinfo_requests_total",
			Help: "Total number of card info lookups served",
		}),
		LookupMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "cardbin_lookup_misses_total",
			Help: "Total number of lookups answered by the leading-digit fallback",
		}),
		QuotaRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "cardbin_quota_rejections_total",
			Help: "Total number of lookups rejected by the daily quota",
		}),
		AuthFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cardbin_auth_failures_total",
			Help: "Total number of authentication failures",
		}, []string{"reason"}),
		TokensIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "cardbin_tokens_issued_total",
			Help: "Total number of tokens issued",
		}),
		TokensRevoked: factory.NewCounter(prometheus.CounterOpts{
			Name: "cardbin_tokens_revoked_total",
			Help: "Total number of tokens revoked",
		}),
		DatasetEntries: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cardbin_dataset_entries",
			Help: "Number of BIN entries currently loaded",
		}),
	}
}
