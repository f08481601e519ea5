// Package metrics - prometheus-инструменты витрины.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/mutation"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type StorefrontMetrics struct {
	registry *prometheus.Registry

	platformLatency *prometheus.HistogramVec
	platformErrors  *prometheus.CounterVec
	mutations       *prometheus.CounterVec
	mutationLatency *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	pageRenders     *prometheus.CounterVec
	activeSessions  prometheus.Gauge
}

var _ mutation.Observer = (*StorefrontMetrics)(nil)

// NewStorefrontMetrics создает инструменты в собственном реестре,
// чтобы тесты могли создавать их многократно.
func NewStorefrontMetrics() *StorefrontMetrics {
	m := &StorefrontMetrics{
		registry: prometheus.NewRegistry(),
		platformLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_platform_request_duration_seconds",
			Help:    "Latency of commerce platform calls",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"operation"}),
		platformErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_platform_errors_total",
			Help: "Failed commerce platform calls",
		}, []string{"operation", "status"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_mutations_total",
			Help: "Settled mutations by outcome",
		}, []string{"mutation", "outcome"}),
		mutationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_mutation_duration_seconds",
			Help:    "Mutation latency",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		}, []string{"mutation"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_query_cache_lookups_total",
			Help: "Query cache lookups by result",
		}, []string{"result"}),
		pageRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_page_renders_total",
			Help: "Rendered pages by view",
		}, []string{"page", "view"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_active_sessions",
			Help: "Browser sessions kept in memory",
		}),
	}

	m.registry.MustRegister(
		m.platformLatency, m.platformErrors,
		m.mutations, m.mutationLatency,
		m.cacheLookups, m.pageRenders, m.activeSessions,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler отдает /metrics.
func (m *StorefrontMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *StorefrontMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObservePlatformRequest вызывается клиентом платформы после каждого запроса.
// status == 0 означает сетевую ошибку.
func (m *StorefrontMetrics) ObservePlatformRequest(operation string, status int, elapsed time.Duration, err error) {
	m.platformLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
	if err != nil {
		label := "network"
		if status != 0 {
			label = http.StatusText(status)
		}
		m.platformErrors.WithLabelValues(operation, label).Inc()
	}
}

func (m *StorefrontMetrics) MutationSettled(ctx context.Context, record domain.MutationRecord) {
	outcome := "failed"
	if record.Succeeded {
		outcome = "succeeded"
	}
	m.mutations.WithLabelValues(record.Mutation, outcome).Inc()
	m.mutationLatency.WithLabelValues(record.Mutation).Observe(float64(record.DurationMs) / 1000)
}

func (m *StorefrontMetrics) CacheHit()  { m.cacheLookups.WithLabelValues("hit").Inc() }
func (m *StorefrontMetrics) CacheMiss() { m.cacheLookups.WithLabelValues("miss").Inc() }

// PageRendered считает отданные страницы: view - "page", "not_found", "error".
func (m *StorefrontMetrics) PageRendered(page, view string) {
	m.pageRenders.WithLabelValues(page, view).Inc()
}

func (m *StorefrontMetrics) SetActiveSessions(n int) {
	m.activeSessions.Set(float64(n))
}
