package cache

import "time"

// StaleAction selects how a domain reacts to a stale cached snapshot.
type StaleAction int

const (
	// StaleRefetchOnDemand keeps rendering the cached snapshot until the
	// user explicitly refreshes.
	StaleRefetchOnDemand StaleAction = iota
	// StaleProbeThenBanner issues a cheap fingerprint probe and surfaces
	// an update affordance when the server has newer data.
	StaleProbeThenBanner
)

// Policy is the static freshness configuration for one cache domain.
type Policy struct {
	TTL         time.Duration
	StaleAction StaleAction
}
