package gateway

import "github.com/prometheus/client_golang/prometheus"

// Resolution outcome labels.
const (
	OutcomeBypass      = "bypass"
	OutcomeCacheHit    = "cache_hit"
	OutcomeNegativeHit = "negative_hit"
	OutcomeResolved    = "resolved"
	OutcomeNotFound    = "not_found"
	OutcomeError       = "error"
)

// Redirect reason labels.
const (
	RedirectLogin    = "login"
	RedirectHome     = "home"
	RedirectNotFound = "store_not_found"
)

// Metrics instruments the interceptor: how tenant resolutions conclude and
// which redirects are issued.
type Metrics struct {
	resolutions *prometheus.CounterVec
	redirects   *prometheus.CounterVec
}

// NewMetrics creates and registers gateway metrics on the given registerer
// (prometheus.DefaultRegisterer when nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_tenant_resolutions_total",
			Help: "Tenant resolution attempts by outcome.",
		}, []string{"outcome"}),
		redirects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_redirects_total",
			Help: "Redirects issued by the interceptor, by reason.",
		}, []string{"reason"}),
	}

	reg.MustRegister(m.resolutions, m.redirects)
	return m
}

func (m *Metrics) resolution(outcome string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) redirect(reason string) {
	if m == nil {
		return
	}
	m.redirects.WithLabelValues(reason).Inc()
}
