package view

import (
	"context"

	"github.com/mlfc/matchday/internal/cache"
)

// Mutation is one optimistic write against a snapshot. Apply merges the
// change into a snapshot value and must not mutate its argument; Submit
// performs the remote call.
type Mutation[S any] struct {
	// Field names the mutated field for the per-field state machine,
	// e.g. "availability:Alex".
	Field string
	// Apply merges the change into snapshot and returns the new value.
	Apply func(snapshot S) S
	// Submit sends the change to the server.
	Submit func(ctx context.Context) error
	// Success, when set, is posted as a success notification once the
	// server confirms.
	Success string
}

// Mutate runs the optimistic merge protocol: render the change locally
// right away, submit it, then reconcile. A confirmed mutation is re-applied
// to the freshest stored snapshot so only the mutated field changes; a
// rejected one surfaces the server's error verbatim and never touches the
// store. Whether the rendered view rolls back on rejection follows
// Config.RevertOnFailure.
func (c *Controller[S]) Mutate(ctx context.Context, id string, m Mutation[S]) (View[S], error) {
	key := c.key(id)
	fieldKey := key + "#" + m.Field

	entry := cache.Load[S](c.store, key)
	var base S
	fresh := false
	if entry != nil {
		base = entry.Payload
		fresh = cache.IsFresh(entry, c.cfg.Policy.TTL)
	}

	c.session.setFieldState(fieldKey, FieldOptimisticPending)
	optimistic := m.Apply(base)
	c.render(View[S]{Snapshot: &optimistic, Source: SourceCache, Fresh: fresh})

	if err := m.Submit(ctx); err != nil {
		c.metrics.IncMutationRejected()
		c.notifier.Error(err.Error())
		if !c.cfg.RevertOnFailure {
			// Lenient mode: the optimistic render stays on screen and the
			// field stays pending until a refresh resolves it.
			return View[S]{Snapshot: &optimistic, Source: SourceCache, Fresh: fresh}, err
		}
		c.session.setFieldState(fieldKey, FieldUnknown)
		if entry == nil {
			return c.render(View[S]{Source: SourceEmpty}), err
		}
		return c.render(View[S]{Snapshot: cache.Unwrap(entry), Source: SourceCache, Fresh: fresh}), err
	}

	// Read-modify-write against whatever is stored now, not the snapshot
	// we rendered from: a concurrent refresh must survive the merge.
	latest := cache.Load[S](c.store, key)
	var current S
	if latest != nil {
		current = latest.Payload
	}
	confirmed := m.Apply(current)
	cache.Save(c.store, key, cache.Wrap(confirmed))

	c.session.setFieldState(fieldKey, FieldConfirmed)
	c.metrics.IncMutationConfirmed()
	if m.Success != "" {
		c.notifier.Success(m.Success)
	}
	return c.render(View[S]{Snapshot: &confirmed, Source: SourceCache, Fresh: true}), nil
}

// FieldState reports the optimistic state of one mutated field.
func (c *Controller[S]) FieldState(id, field string) FieldState {
	return c.session.fieldState(c.key(id) + "#" + field)
}
