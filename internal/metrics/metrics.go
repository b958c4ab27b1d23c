package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RedrawsTotal        prometheus.Counter
	PaymentUpdatesTotal prometheus.Counter
	PriceFetchesTotal   *prometheus.CounterVec
	PriceCacheHitsTotal prometheus.Counter
	PriceDefaultServed  prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		RedrawsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goldday_rotation_redraws_total",
			Help: "Total number of completed rotation redraws",
		}),
		PaymentUpdatesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goldday_payment_updates_total",
			Help: "Total number of payment status updates",
		}),
		PriceFetchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "goldday_price_fetches_total",
			Help: "Total number of live gold price fetch attempts by outcome",
		}, []string{"outcome"}),
		PriceCacheHitsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goldday_price_cache_hits_total",
			Help: "Total number of gold price reads served from cache",
		}),
		PriceDefaultServed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goldday_price_default_served_total",
			Help: "Total number of gold price reads served from the static default",
		}),
	}
}

func (m *Metrics) ObserveRedraw() {
	if m == nil {
		return
	}
	m.RedrawsTotal.Inc()
}

func (m *Metrics) ObservePaymentUpdate() {
	if m == nil {
		return
	}
	m.PaymentUpdatesTotal.Inc()
}

func (m *Metrics) ObservePriceFetch(success bool) {
	if m == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.PriceFetchesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObservePriceCacheHit() {
	if m == nil {
		return
	}
	m.PriceCacheHitsTotal.Inc()
}

func (m *Metrics) ObservePriceDefault() {
	if m == nil {
		return
	}
	m.PriceDefaultServed.Inc()
}
