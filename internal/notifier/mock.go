package notifier

import "sync"

// MockNotifier records every notification for assertions in tests.
// It is safe for concurrent use.
type MockNotifier struct {
	mu sync.Mutex

	Successes []string
	Errors    []string
	Infos     []string
	Warnings  []string
}

// NewMock creates a new mock instance.
func NewMock() *MockNotifier {
	return &MockNotifier{}
}

var _ Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) Success(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Successes = append(m.Successes, msg)
}

func (m *MockNotifier) Error(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors = append(m.Errors, msg)
}

func (m *MockNotifier) Info(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Infos = append(m.Infos, msg)
}

func (m *MockNotifier) Warn(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Warnings = append(m.Warnings, msg)
}

// Reset clears all recorded notifications.
func (m *MockNotifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Successes = nil
	m.Errors = nil
	m.Infos = nil
	m.Warnings = nil
}
