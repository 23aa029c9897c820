package club

import (
	"time"

	"github.com/mlfc/matchday/internal/cache"
)

// Cache domain keys. Every snapshot is stored under storage.Key(domain, id);
// the id is the season for season-scoped domains and the public code for
// match-scoped ones.
const (
	DomainOpenMatches    = "open_matches"
	DomainPastMatches    = "past_matches"
	DomainMatchDetail    = "match_detail"
	DomainLeaderboard    = "leaderboard"
	DomainPlayers        = "players"
	DomainSeasons        = "seasons"
	DomainRoster         = "captain_roster"
	DomainAdminMatches   = "admin_matches"
	DomainSelectedSeason = "selected_season"
)

// Policies is the static freshness policy table. Open match lists probe
// cheaply and banner; everything else re-fetches only on demand.
var Policies = map[string]cache.Policy{
	DomainOpenMatches:  {TTL: time.Minute, StaleAction: cache.StaleProbeThenBanner},
	DomainMatchDetail:  {TTL: time.Minute, StaleAction: cache.StaleRefetchOnDemand},
	DomainPastMatches:  {TTL: 10 * time.Minute, StaleAction: cache.StaleRefetchOnDemand},
	DomainLeaderboard:  {TTL: 5 * time.Minute, StaleAction: cache.StaleRefetchOnDemand},
	DomainPlayers:      {TTL: 6 * time.Hour, StaleAction: cache.StaleRefetchOnDemand},
	DomainSeasons:      {TTL: 10 * time.Minute, StaleAction: cache.StaleRefetchOnDemand},
	DomainRoster:       {TTL: 6 * time.Hour, StaleAction: cache.StaleRefetchOnDemand},
	DomainAdminMatches: {TTL: time.Minute, StaleAction: cache.StaleRefetchOnDemand},
	// The selected season never goes stale; it is a user choice, not data.
	DomainSelectedSeason: {TTL: 24 * 365 * time.Hour, StaleAction: cache.StaleRefetchOnDemand},
}
