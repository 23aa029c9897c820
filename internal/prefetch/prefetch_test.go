package prefetch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mlfc/matchday/internal/club"
	"github.com/mlfc/matchday/internal/metrics"
	"github.com/mlfc/matchday/internal/notifier"
	"github.com/mlfc/matchday/internal/sheets"
	"github.com/mlfc/matchday/internal/storage"
	"github.com/mlfc/matchday/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func warmAPI() (*sheets.MockClient, *atomic.Int64) {
	var fetches atomic.Int64
	api := sheets.NewMock()
	api.SeasonsFunc = func(ctx context.Context) (sheets.SeasonList, error) {
		fetches.Add(1)
		return sheets.SeasonList{
			Seasons:         []sheets.Season{{SeasonID: "S1", Name: "2025"}},
			CurrentSeasonID: "S1",
		}, nil
	}
	api.PlayersFunc = func(ctx context.Context) ([]sheets.Player, error) {
		fetches.Add(1)
		return []sheets.Player{{Name: "Alex"}}, nil
	}
	api.OpenMatchesFunc = func(ctx context.Context, seasonID string) ([]sheets.MatchSummary, error) {
		fetches.Add(1)
		return []sheets.MatchSummary{{PublicCode: "M1"}}, nil
	}
	api.PastMatchesFunc = func(ctx context.Context, seasonID string, page, pageSize int) (sheets.PastMatchesPage, error) {
		fetches.Add(1)
		return sheets.PastMatchesPage{Page: page, PageSize: pageSize}, nil
	}
	api.LeaderboardFunc = func(ctx context.Context, seasonID string) (sheets.Leaderboard, error) {
		fetches.Add(1)
		return sheets.Leaderboard{}, nil
	}
	return api, &fetches
}

func newControllers(api sheets.Client) *club.Controllers {
	session := view.NewSessionWithProbeInterval(time.Nanosecond)
	return club.NewControllers(api, storage.NewMock(), session, metrics.NewMock(), notifier.NewMock(), "key", true)
}

func TestWarm_FillsCacheThenSkipsFresh(t *testing.T) {
	api, fetches := warmAPI()
	controllers := newControllers(api)
	ctx := context.Background()

	require.NoError(t, Warm(ctx, controllers))
	// seasons + players + open + past + leaderboard
	assert.Equal(t, int64(5), fetches.Load())

	v := controllers.Open.Open(ctx, "S1")
	require.NotNil(t, v.Snapshot)
	assert.True(t, v.Fresh)

	// Everything is fresh now; a second pass fetches nothing.
	require.NoError(t, Warm(ctx, controllers))
	assert.Equal(t, int64(5), fetches.Load())
}

func TestWarm_SeasonFailureSkipsSeasonScopedWarms(t *testing.T) {
	api, fetches := warmAPI()
	api.SeasonsFunc = func(ctx context.Context) (sheets.SeasonList, error) {
		return sheets.SeasonList{}, errors.New("api down")
	}
	controllers := newControllers(api)

	err := Warm(context.Background(), controllers)
	require.NoError(t, err, "season failure downgrades to a players-only warm")
	assert.Equal(t, int64(1), fetches.Load())
}

func TestWarm_SingleFailureDoesNotStopSiblings(t *testing.T) {
	api, fetches := warmAPI()
	api.LeaderboardFunc = func(ctx context.Context, seasonID string) (sheets.Leaderboard, error) {
		return sheets.Leaderboard{}, errors.New("leaderboard broken")
	}
	controllers := newControllers(api)

	err := Warm(context.Background(), controllers)
	require.Error(t, err)
	// seasons + players + open + past all still ran.
	assert.Equal(t, int64(4), fetches.Load())
}
