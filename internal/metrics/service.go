package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// Service holds the Prometheus collectors for the cache-first client.
type Service struct {
	CacheHits          *prometheus.CounterVec
	CacheMisses        *prometheus.CounterVec
	ProbesRun          prometheus.Counter
	ProbesSuppressed   prometheus.Counter
	RefreshesOK        prometheus.Counter
	RefreshesFailed    prometheus.Counter
	MutationsConfirmed prometheus.Counter
	MutationsRejected  prometheus.Counter
	APICalls           *prometheus.CounterVec
	APIFailures        *prometheus.CounterVec
	InFlight           prometheus.Gauge
	StartupTimeSeconds prometheus.Gauge
}

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_cache_hits_total",
			Help: "The total number of view opens served from the cache.",
		}, []string{"domain"}),
		CacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_cache_misses_total",
			Help: "The total number of view opens rendered from an empty cache.",
		}, []string{"domain"}),
		ProbesRun: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_probes_total",
			Help: "The total number of freshness probes issued.",
		}),
		ProbesSuppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_probes_suppressed_total",
			Help: "The total number of probe results swallowed by the post-refresh suppression flag.",
		}),
		RefreshesOK: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_refreshes_ok_total",
			Help: "The total number of successful full refreshes.",
		}),
		RefreshesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_refreshes_failed_total",
			Help: "The total number of refreshes that failed and left the cache untouched.",
		}),
		MutationsConfirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_mutations_confirmed_total",
			Help: "The total number of optimistic mutations confirmed by the server.",
		}),
		MutationsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_mutations_rejected_total",
			Help: "The total number of optimistic mutations rejected by the server.",
		}),
		APICalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_api_calls_total",
			Help: "The total number of remote API calls, by action.",
		}, []string{"action"}),
		APIFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_api_failures_total",
			Help: "The total number of failed remote API calls, by action.",
		}, []string{"action"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matchday_api_in_flight",
			Help: "The number of remote API calls currently in flight.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matchday_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.CacheHits,
		s.CacheMisses,
		s.ProbesRun,
		s.ProbesSuppressed,
		s.RefreshesOK,
		s.RefreshesFailed,
		s.MutationsConfirmed,
		s.MutationsRejected,
		s.APICalls,
		s.APIFailures,
		s.InFlight,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncCacheHit(domain string) {
	s.CacheHits.WithLabelValues(domain).Inc()
}

func (s *Service) IncCacheMiss(domain string) {
	s.CacheMisses.WithLabelValues(domain).Inc()
}

func (s *Service) IncProbeRun() {
	s.ProbesRun.Inc()
}

func (s *Service) IncProbeSuppressed() {
	s.ProbesSuppressed.Inc()
}

func (s *Service) IncRefreshOK() {
	s.RefreshesOK.Inc()
}

func (s *Service) IncRefreshFailed() {
	s.RefreshesFailed.Inc()
}

func (s *Service) IncMutationConfirmed() {
	s.MutationsConfirmed.Inc()
}

func (s *Service) IncMutationRejected() {
	s.MutationsRejected.Inc()
}

func (s *Service) IncAPICall(action string) {
	s.APICalls.WithLabelValues(action).Inc()
}

func (s *Service) IncAPIFailure(action string) {
	s.APIFailures.WithLabelValues(action).Inc()
}

func (s *Service) IncInFlight() {
	s.InFlight.Inc()
}

func (s *Service) DecInFlight() {
	s.InFlight.Dec()
}

func (s *Service) SetStartupTime(seconds float64) {
	s.StartupTimeSeconds.Set(seconds)
}
