package view

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// FieldState tracks one optimistically mutated field of a snapshot.
type FieldState int

const (
	FieldUnknown FieldState = iota
	FieldOptimisticPending
	FieldConfirmed
)

// defaultProbeInterval is the minimum spacing between probes for one key.
const defaultProbeInterval = 3 * time.Second

// Session owns the per-page-session state the controllers share: one-shot
// probe suppression flags, per-key probe clocks and the optimistic field
// state machine. Nothing here is global; a new session starts clean.
type Session struct {
	ID string

	mu            sync.Mutex
	probeInterval time.Duration
	suppress      map[string]bool
	probes        map[string]*rate.Limiter
	fields        map[string]FieldState
}

// NewSession creates a session with the default probe throttle.
func NewSession() *Session {
	return NewSessionWithProbeInterval(defaultProbeInterval)
}

// NewSessionWithProbeInterval creates a session with a custom probe
// throttle. Useful in tests that issue back-to-back probes.
func NewSessionWithProbeInterval(interval time.Duration) *Session {
	return &Session{
		ID:            uuid.NewString(),
		probeInterval: interval,
		suppress:      make(map[string]bool),
		probes:        make(map[string]*rate.Limiter),
		fields:        make(map[string]FieldState),
	}
}

// armSuppression makes the next probe for key report no update. Refresh
// arms it so the probe that follows a full fetch stays quiet.
func (s *Session) armSuppression(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppress[key] = true
}

// consumeSuppression reports whether suppression was armed for key and
// clears it. One-shot: the second caller sees false.
func (s *Session) consumeSuppression(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.suppress[key] {
		return false
	}
	delete(s.suppress, key)
	return true
}

// allowProbe rate-limits probes per key.
func (s *Session) allowProbe(key string) bool {
	s.mu.Lock()
	limiter, ok := s.probes[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(s.probeInterval), 1)
		s.probes[key] = limiter
	}
	s.mu.Unlock()
	return limiter.Allow()
}

func (s *Session) setFieldState(fieldKey string, state FieldState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == FieldUnknown {
		delete(s.fields, fieldKey)
		return
	}
	s.fields[fieldKey] = state
}

func (s *Session) fieldState(fieldKey string) FieldState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields[fieldKey]
}

// clearFieldStates drops every field state under the given snapshot key.
// A full refresh supersedes whatever the optimistic merges recorded.
func (s *Session) clearFieldStates(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for fieldKey := range s.fields {
		if strings.HasPrefix(fieldKey, key+"#") {
			delete(s.fields, fieldKey)
		}
	}
}
