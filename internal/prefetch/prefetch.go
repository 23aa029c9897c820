package prefetch

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mlfc/matchday/internal/club"
	"github.com/mlfc/matchday/internal/view"
	"golang.org/x/sync/errgroup"
)

// Warm runs one background warm pass over the cache: seasons first to learn
// the current season, then the season-scoped snapshots concurrently.
// Snapshots that are still fresh are skipped. Warm is advisory; failures
// are logged and the first one is returned, but callers must not treat a
// failed warmup as fatal.
func Warm(ctx context.Context, controllers *club.Controllers) error {
	start := time.Now()

	seasonID := currentSeason(ctx, controllers)

	// One failing fetch must not cancel its siblings, so no WithContext.
	var g errgroup.Group

	g.Go(func() error { return warmIfStale(ctx, controllers.Players, "") })
	if seasonID != "" {
		g.Go(func() error { return warmIfStale(ctx, controllers.Open, seasonID) })
		g.Go(func() error { return warmIfStale(ctx, controllers.Past, seasonID) })
		g.Go(func() error { return warmIfStale(ctx, controllers.Leaderboard, seasonID) })
		g.Go(func() error {
			_, err := controllers.Open.Probe(ctx, seasonID)
			return err
		})
	}

	err := g.Wait()
	if err != nil {
		log.Warn("Cache warmup finished with errors", "error", err, "duration", time.Since(start))
		return err
	}
	log.Info("Cache warmup complete", "season", seasonID, "duration", time.Since(start))
	return nil
}

// currentSeason warms the season list and returns the current season ID,
// or "" when it cannot be determined.
func currentSeason(ctx context.Context, controllers *club.Controllers) string {
	v := controllers.Seasons.Open(ctx, "")
	if !v.Fresh {
		refreshed, err := controllers.Seasons.Refresh(ctx, "")
		if err != nil {
			log.Warn("Season warmup failed", "error", err)
		} else {
			v = refreshed
		}
	}
	if v.Snapshot == nil {
		return ""
	}
	return v.Snapshot.CurrentSeasonID
}

func warmIfStale[S any](ctx context.Context, controller *view.Controller[S], id string) error {
	if v := controller.Open(ctx, id); v.Fresh {
		return nil
	}
	_, err := controller.Refresh(ctx, id)
	return err
}
