package view

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/mlfc/matchday/internal/cache"
	"github.com/mlfc/matchday/internal/metrics"
	"github.com/mlfc/matchday/internal/notifier"
	"github.com/mlfc/matchday/internal/storage"
	"golang.org/x/sync/singleflight"
)

// ErrNotPaginated is returned by LoadMore on a domain without pagination.
var ErrNotPaginated = errors.New("view: domain is not paginated")

// Controller is the cache-first view controller: one generic implementation
// shared by every page. Open renders from the store without touching the
// network; Refresh is the only authoritative cache writer for reads; Probe
// checks freshness cheaply; Mutate (mutation.go) merges writes
// optimistically.
type Controller[S any] struct {
	cfg      Config[S]
	store    storage.Store
	session  *Session
	metrics  metrics.Metrics
	notifier notifier.Notifier
	group    singleflight.Group
}

// New creates a controller for one cache domain.
func New[S any](cfg Config[S], store storage.Store, session *Session, m metrics.Metrics, n notifier.Notifier) *Controller[S] {
	return &Controller[S]{
		cfg:      cfg,
		store:    store,
		session:  session,
		metrics:  m,
		notifier: n,
	}
}

// Domain returns the controller's cache domain key.
func (c *Controller[S]) Domain() string {
	return c.cfg.Domain
}

func (c *Controller[S]) key(id string) string {
	return storage.Key(c.cfg.Domain, id)
}

func (c *Controller[S]) metaKey(id string) string {
	return storage.Key(c.cfg.Domain+"_meta", id)
}

func (c *Controller[S]) render(v View[S]) View[S] {
	if c.cfg.OnRender != nil {
		c.cfg.OnRender(v)
	}
	return v
}

// Open renders whatever the store holds, immediately and unconditionally.
// A stale snapshot still renders; a missing one yields the empty state.
// Open never performs a network call.
func (c *Controller[S]) Open(ctx context.Context, id string) View[S] {
	entry := cache.Load[S](c.store, c.key(id))
	if entry == nil {
		c.metrics.IncCacheMiss(c.cfg.Domain)
		return c.render(View[S]{Source: SourceEmpty})
	}
	c.metrics.IncCacheHit(c.cfg.Domain)
	return c.render(View[S]{
		Snapshot: cache.Unwrap(entry),
		Source:   SourceCache,
		Fresh:    cache.IsFresh(entry, c.cfg.Policy.TTL),
	})
}

// Probe runs the cheap freshness check for domains whose policy asks for
// it. It is skipped while the snapshot is fresh, throttled per key, and
// coalesced so concurrent probes for one key share a single round trip.
// The update affordance fires when the fingerprint moved or the cached
// snapshot does not contain the newest item.
func (c *Controller[S]) Probe(ctx context.Context, id string) (ProbeOutcome, error) {
	if c.cfg.Probe == nil || c.cfg.Policy.StaleAction != cache.StaleProbeThenBanner {
		return ProbeOutcome{}, nil
	}

	key := c.key(id)
	entry := cache.Load[S](c.store, key)
	if cache.IsFresh(entry, c.cfg.Policy.TTL) {
		return ProbeOutcome{}, nil
	}
	if !c.session.allowProbe(key) {
		return ProbeOutcome{}, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		c.metrics.IncProbeRun()
		meta, err := c.cfg.Probe(ctx, id)
		if err != nil {
			return nil, err
		}

		metaKey := c.metaKey(id)
		prev := cache.Load[Meta](c.store, metaKey)
		cache.Save(c.store, metaKey, cache.Wrap(meta))

		// A refresh just rewrote the snapshot; the first probe after it
		// has nothing to announce.
		if c.session.consumeSuppression(key) {
			c.metrics.IncProbeSuppressed()
			return ProbeOutcome{Ran: true}, nil
		}

		// No stored fingerprint to compare against counts as changed.
		changed := prev == nil || prev.Payload.Fingerprint != meta.Fingerprint
		missing := meta.LatestID != "" &&
			(entry == nil || c.cfg.Contains == nil || !c.cfg.Contains(entry.Payload, meta.LatestID))
		return ProbeOutcome{Ran: true, UpdateAvailable: changed || missing}, nil
	})
	if err != nil {
		// Probes are advisory; a failed one logs and leaves the page alone.
		log.Warn("Freshness probe failed", "domain", c.cfg.Domain, "id", id, "error", err)
		return ProbeOutcome{Ran: true}, err
	}
	return v.(ProbeOutcome), nil
}

// Refresh fetches the full snapshot and, on success, replaces the cached
// envelope wholesale. On failure the cache is left untouched and the last
// known view is returned alongside the error.
func (c *Controller[S]) Refresh(ctx context.Context, id string) (View[S], error) {
	snapshot, err := c.cfg.Fetch(ctx, id)
	if err != nil {
		c.metrics.IncRefreshFailed()
		c.notifier.Error(err.Error())
		return c.Open(ctx, id), err
	}

	key := c.key(id)
	cache.Save(c.store, key, cache.Wrap(snapshot))
	c.session.armSuppression(key)
	c.session.clearFieldStates(key)
	c.metrics.IncRefreshOK()
	return c.render(View[S]{Snapshot: &snapshot, Source: SourceNetwork, Fresh: true}), nil
}

// LoadMore fetches the next page and appends it to the cached snapshot.
// The cached list only ever grows; paging state comes from the latest page.
// Without a cached snapshot it degrades to a full Refresh.
func (c *Controller[S]) LoadMore(ctx context.Context, id string) (View[S], error) {
	if c.cfg.FetchPage == nil || c.cfg.Append == nil || c.cfg.NextPage == nil {
		return c.Open(ctx, id), ErrNotPaginated
	}

	key := c.key(id)
	entry := cache.Load[S](c.store, key)
	if entry == nil {
		return c.Refresh(ctx, id)
	}

	page, ok := c.cfg.NextPage(entry.Payload)
	if !ok {
		return c.render(View[S]{
			Snapshot: cache.Unwrap(entry),
			Source:   SourceCache,
			Fresh:    cache.IsFresh(entry, c.cfg.Policy.TTL),
		}), nil
	}

	next, err := c.cfg.FetchPage(ctx, id, page)
	if err != nil {
		c.metrics.IncRefreshFailed()
		c.notifier.Error(err.Error())
		return c.render(View[S]{
			Snapshot: cache.Unwrap(entry),
			Source:   SourceCache,
			Fresh:    cache.IsFresh(entry, c.cfg.Policy.TTL),
		}), err
	}

	merged := c.cfg.Append(entry.Payload, next)
	cache.Save(c.store, key, cache.Wrap(merged))
	c.metrics.IncRefreshOK()
	return c.render(View[S]{Snapshot: &merged, Source: SourceNetwork, Fresh: true}), nil
}
