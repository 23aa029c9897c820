package club

import "github.com/mlfc/matchday/internal/sheets"

// Snapshots are the immutable cached values the view controllers render.
// They are replaced wholesale on refresh, never edited in place; mutations
// build a new value via the view layer's merge protocol.

// OpenMatchesList is the open matches page snapshot for one season.
type OpenMatchesList struct {
	Matches []sheets.MatchSummary `json:"matches" msgpack:"matches"`
}

// PlayerDirectory is the club's player directory snapshot.
type PlayerDirectory struct {
	Players []sheets.Player `json:"players" msgpack:"players"`
}

// AdminMatchList is the admin panel snapshot.
type AdminMatchList struct {
	Matches []sheets.AdminMatch `json:"matches" msgpack:"matches"`
}

// PlayerRoster is the captain page working set: who is expected to play
// and which team each player is on. Teams maps player name to BLUE/ORANGE.
type PlayerRoster struct {
	Roster []string          `json:"roster" msgpack:"roster"`
	Teams  map[string]string `json:"teams" msgpack:"teams"`
}

// SelectedSeason persists the season the user last picked.
type SelectedSeason struct {
	SeasonID string `json:"seasonId" msgpack:"seasonId"`
}

// AvailabilityGroups splits posted availability by choice, preserving
// posting order within each group.
type AvailabilityGroups struct {
	Yes   []sheets.AvailabilityEntry `json:"yes"`
	Maybe []sheets.AvailabilityEntry `json:"maybe"`
	No    []sheets.AvailabilityEntry `json:"no"`
}
