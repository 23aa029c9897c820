package metrics

// Metrics defines the counters and gauges the rest of the application
// records against. Decouples callers from Prometheus for testing.
type Metrics interface {
	IncCacheHit(domain string)
	IncCacheMiss(domain string)
	IncProbeRun()
	IncProbeSuppressed()
	IncRefreshOK()
	IncRefreshFailed()
	IncMutationConfirmed()
	IncMutationRejected()
	IncAPICall(action string)
	IncAPIFailure(action string)
	IncInFlight()
	DecInFlight()
	SetStartupTime(seconds float64)
}
