package view

import (
	"context"

	"github.com/mlfc/matchday/internal/cache"
)

// Source says where a rendered snapshot came from.
type Source int

const (
	// SourceEmpty means no cached snapshot exists yet.
	SourceEmpty Source = iota
	// SourceCache means the snapshot was read from the local store.
	SourceCache
	// SourceNetwork means the snapshot was just fetched from the server.
	SourceNetwork
)

func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceNetwork:
		return "network"
	default:
		return "empty"
	}
}

func (s Source) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// View is one rendered state of a controller: the snapshot to show (nil for
// the empty state), where it came from, and whether it is within its TTL.
type View[S any] struct {
	Snapshot *S     `json:"snapshot,omitempty"`
	Source   Source `json:"source"`
	Fresh    bool   `json:"fresh"`
}

// Meta is the cheap freshness probe result: a fingerprint of the server
// state for a domain plus the identifier of the newest item.
type Meta struct {
	Fingerprint string `json:"fingerprint" msgpack:"fingerprint"`
	LatestID    string `json:"latestId" msgpack:"latestId"`
}

// ProbeOutcome reports what a probe did. Ran is false when the probe was
// skipped (policy, fresh snapshot or throttle); UpdateAvailable is the
// update affordance for the page.
type ProbeOutcome struct {
	Ran             bool `json:"ran"`
	UpdateAvailable bool `json:"updateAvailable"`
}

// Config wires one cache domain into a Controller. Fetch is mandatory;
// Probe/Contains enable the probe path, FetchPage/Append/NextPage enable
// pagination. Apply-style functions must not mutate their arguments.
type Config[S any] struct {
	// Domain is the cache domain key, used for storage keys and metrics.
	Domain string
	// Policy is the freshness policy for this domain.
	Policy cache.Policy

	// Fetch loads the full snapshot from the server.
	Fetch func(ctx context.Context, id string) (S, error)

	// Probe fetches the domain's freshness meta. Only consulted when the
	// policy's stale action is StaleProbeThenBanner.
	Probe func(ctx context.Context, id string) (Meta, error)
	// Contains reports whether the snapshot already holds the item named
	// by the probe's LatestID.
	Contains func(snapshot S, latestID string) bool

	// FetchPage loads one page of a paginated snapshot.
	FetchPage func(ctx context.Context, id string, page int) (S, error)
	// Append merges the next page into the previous snapshot. It must
	// return a new value; the previous snapshot stays untouched.
	Append func(prev, next S) S
	// NextPage returns the page number to fetch next, or ok=false when
	// the snapshot is already complete.
	NextPage func(snapshot S) (page int, ok bool)

	// RevertOnFailure controls whether a rejected optimistic mutation
	// rolls the rendered view back to the last stored snapshot.
	RevertOnFailure bool

	// OnRender, when set, observes every view the controller produces.
	OnRender func(View[S])
}
