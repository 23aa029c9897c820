package metrics

import "sync"

// MockMetrics is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type MockMetrics struct {
	mu sync.Mutex

	CacheHitCalls       []string
	CacheMissCalls      []string
	ProbeRuns           int
	ProbesSuppressed    int
	RefreshesOK         int
	RefreshesFailed     int
	MutationsConfirmed  int
	MutationsRejected   int
	APICallActions      []string
	APIFailureActions   []string
	InFlightCurrent     int
	StartupTimeRecorded float64
}

// NewMock creates a new mock instance.
func NewMock() *MockMetrics {
	return &MockMetrics{}
}

func (m *MockMetrics) IncCacheHit(domain string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHitCalls = append(m.CacheHitCalls, domain)
}

func (m *MockMetrics) IncCacheMiss(domain string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMissCalls = append(m.CacheMissCalls, domain)
}

func (m *MockMetrics) IncProbeRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProbeRuns++
}

func (m *MockMetrics) IncProbeSuppressed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProbesSuppressed++
}

func (m *MockMetrics) IncRefreshOK() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RefreshesOK++
}

func (m *MockMetrics) IncRefreshFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RefreshesFailed++
}

func (m *MockMetrics) IncMutationConfirmed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MutationsConfirmed++
}

func (m *MockMetrics) IncMutationRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MutationsRejected++
}

func (m *MockMetrics) IncAPICall(action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.APICallActions = append(m.APICallActions, action)
}

func (m *MockMetrics) IncAPIFailure(action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.APIFailureActions = append(m.APIFailureActions, action)
}

func (m *MockMetrics) IncInFlight() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InFlightCurrent++
}

func (m *MockMetrics) DecInFlight() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InFlightCurrent--
}

func (m *MockMetrics) SetStartupTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTimeRecorded = seconds
}
