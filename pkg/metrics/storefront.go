package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// StorefrontMetrics tracks live sessions and cart activity.
type StorefrontMetrics struct {
	sessions      prometheus.Gauge
	cartAdds      prometheus.Counter
	checkouts     prometheus.Counter
	checkoutValue prometheus.Counter
	catalogSize   *prometheus.GaugeVec
}

func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	m := &StorefrontMetrics{
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Live storefront sessions held in memory.",
		}),
		cartAdds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_add_total",
			Help:      "Add-to-cart operations.",
		}),
		checkouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_total",
			Help:      "Checkouts of non-empty carts.",
		}),
		checkoutValue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_value_vnd_total",
			Help:      "Sum of checked out cart subtotals in VND.",
		}),
		catalogSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_records",
			Help:      "Records loaded at startup per resource.",
		}, []string{"resource"}),
	}
	reg.MustRegister(m.sessions, m.cartAdds, m.checkouts, m.checkoutValue, m.catalogSize)
	return m
}

func (m *StorefrontMetrics) SetSessions(n int) {
	if m == nil || m.sessions == nil {
		return
	}
	m.sessions.Set(float64(n))
}

func (m *StorefrontMetrics) IncCartAdd() {
	if m == nil || m.cartAdds == nil {
		return
	}
	m.cartAdds.Inc()
}

func (m *StorefrontMetrics) ObserveCheckout(subtotal decimal.Decimal) {
	if m == nil || m.checkouts == nil {
		return
	}
	m.checkouts.Inc()
	m.checkoutValue.Add(subtotal.InexactFloat64())
}

func (m *StorefrontMetrics) SetCatalogSize(resource string, n int) {
	if m == nil || m.catalogSize == nil {
		return
	}
	m.catalogSize.WithLabelValues(normalizeLabel(resource)).Set(float64(n))
}
