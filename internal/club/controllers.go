package club

import (
	"context"

	"github.com/mlfc/matchday/internal/metrics"
	"github.com/mlfc/matchday/internal/notifier"
	"github.com/mlfc/matchday/internal/sheets"
	"github.com/mlfc/matchday/internal/storage"
	"github.com/mlfc/matchday/internal/view"
)

// pastPageSize is the page size for the completed-matches list.
const pastPageSize = 20

// Controllers bundles one cache-first controller per page. All of them
// share a store, a session and the freshness policy table; only the fetch
// wiring differs.
type Controllers struct {
	Open        *view.Controller[OpenMatchesList]
	Past        *view.Controller[sheets.PastMatchesPage]
	Match       *view.Controller[sheets.MatchDetail]
	Leaderboard *view.Controller[sheets.Leaderboard]
	Players     *view.Controller[PlayerDirectory]
	Seasons     *view.Controller[sheets.SeasonList]
	Roster      *view.Controller[PlayerRoster]
	Admin       *view.Controller[AdminMatchList]
}

// NewControllers wires every page controller against the API client.
// revertOnFailure selects whether rejected optimistic mutations roll the
// rendered view back.
func NewControllers(api sheets.Client, store storage.Store, session *view.Session, m metrics.Metrics, n notifier.Notifier, adminKey string, revertOnFailure bool) *Controllers {
	return &Controllers{
		Open: view.New(view.Config[OpenMatchesList]{
			Domain: DomainOpenMatches,
			Policy: Policies[DomainOpenMatches],
			Fetch: func(ctx context.Context, seasonID string) (OpenMatchesList, error) {
				matches, err := api.OpenMatches(ctx, seasonID)
				if err != nil {
					return OpenMatchesList{}, err
				}
				return OpenMatchesList{Matches: matches}, nil
			},
			Probe: func(ctx context.Context, seasonID string) (view.Meta, error) {
				meta, err := api.MatchesMeta(ctx, seasonID)
				if err != nil {
					return view.Meta{}, err
				}
				return view.Meta{Fingerprint: meta.Fingerprint, LatestID: meta.LatestCode}, nil
			},
			Contains: func(s OpenMatchesList, latestCode string) bool {
				return ContainsCode(s.Matches, latestCode)
			},
			RevertOnFailure: revertOnFailure,
		}, store, session, m, n),

		Past: view.New(view.Config[sheets.PastMatchesPage]{
			Domain: DomainPastMatches,
			Policy: Policies[DomainPastMatches],
			Fetch: func(ctx context.Context, seasonID string) (sheets.PastMatchesPage, error) {
				return api.PastMatches(ctx, seasonID, 1, pastPageSize)
			},
			FetchPage: func(ctx context.Context, seasonID string, page int) (sheets.PastMatchesPage, error) {
				return api.PastMatches(ctx, seasonID, page, pastPageSize)
			},
			Append: func(prev, next sheets.PastMatchesPage) sheets.PastMatchesPage {
				merged := sheets.PastMatchesPage{
					Page:     next.Page,
					PageSize: next.PageSize,
					Total:    next.Total,
					HasMore:  next.HasMore,
				}
				merged.Matches = append(append([]sheets.MatchSummary{}, prev.Matches...), next.Matches...)
				return merged
			},
			NextPage: func(s sheets.PastMatchesPage) (int, bool) {
				if !s.HasMore {
					return 0, false
				}
				return s.Page + 1, true
			},
			RevertOnFailure: revertOnFailure,
		}, store, session, m, n),

		Match: view.New(view.Config[sheets.MatchDetail]{
			Domain:          DomainMatchDetail,
			Policy:          Policies[DomainMatchDetail],
			Fetch:           api.PublicMatch,
			RevertOnFailure: revertOnFailure,
		}, store, session, m, n),

		Leaderboard: view.New(view.Config[sheets.Leaderboard]{
			Domain:          DomainLeaderboard,
			Policy:          Policies[DomainLeaderboard],
			Fetch:           api.Leaderboard,
			RevertOnFailure: revertOnFailure,
		}, store, session, m, n),

		Players: view.New(view.Config[PlayerDirectory]{
			Domain: DomainPlayers,
			Policy: Policies[DomainPlayers],
			Fetch: func(ctx context.Context, _ string) (PlayerDirectory, error) {
				players, err := api.Players(ctx)
				if err != nil {
					return PlayerDirectory{}, err
				}
				return PlayerDirectory{Players: players}, nil
			},
			RevertOnFailure: revertOnFailure,
		}, store, session, m, n),

		Seasons: view.New(view.Config[sheets.SeasonList]{
			Domain: DomainSeasons,
			Policy: Policies[DomainSeasons],
			Fetch: func(ctx context.Context, _ string) (sheets.SeasonList, error) {
				return api.Seasons(ctx)
			},
			RevertOnFailure: revertOnFailure,
		}, store, session, m, n),

		Roster: view.New(view.Config[PlayerRoster]{
			Domain: DomainRoster,
			Policy: Policies[DomainRoster],
			Fetch: func(ctx context.Context, code string) (PlayerRoster, error) {
				detail, err := api.PublicMatch(ctx, code)
				if err != nil {
					return PlayerRoster{}, err
				}
				return RosterFromDetail(detail), nil
			},
			RevertOnFailure: revertOnFailure,
		}, store, session, m, n),

		Admin: view.New(view.Config[AdminMatchList]{
			Domain: DomainAdminMatches,
			Policy: Policies[DomainAdminMatches],
			Fetch: func(ctx context.Context, _ string) (AdminMatchList, error) {
				matches, err := api.AdminListMatches(ctx, adminKey)
				if err != nil {
					return AdminMatchList{}, err
				}
				return AdminMatchList{Matches: matches}, nil
			},
			RevertOnFailure: revertOnFailure,
		}, store, session, m, n),
	}
}
