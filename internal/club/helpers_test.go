package club

import (
	"testing"

	"github.com/mlfc/matchday/internal/sheets"
	"github.com/stretchr/testify/assert"
)

func TestGroupAvailability(t *testing.T) {
	entries := []sheets.AvailabilityEntry{
		{PlayerName: "Alex", Availability: sheets.AvailabilityYes},
		{PlayerName: "Sam", Availability: sheets.AvailabilityNo},
		{PlayerName: "Robin", Availability: sheets.AvailabilityMaybe},
		{PlayerName: "Kim", Availability: sheets.AvailabilityYes},
	}

	groups := GroupAvailability(entries)

	assert.Equal(t, []string{"Alex", "Kim"}, names(groups.Yes))
	assert.Equal(t, []string{"Robin"}, names(groups.Maybe))
	assert.Equal(t, []string{"Sam"}, names(groups.No))
}

func names(entries []sheets.AvailabilityEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.PlayerName
	}
	return out
}

func TestLatestOpenCode(t *testing.T) {
	assert.Empty(t, LatestOpenCode(nil))

	matches := []sheets.MatchSummary{
		{PublicCode: "M1", CreatedAt: "2025-07-01T10:00:00Z"},
		{PublicCode: "M3", CreatedAt: "2025-07-05T09:00:00Z"},
		{PublicCode: "M2", CreatedAt: "2025-07-03T12:00:00Z"},
	}
	assert.Equal(t, "M3", LatestOpenCode(matches))

	// Without createdAt, kickoff decides.
	matches = []sheets.MatchSummary{
		{PublicCode: "M1", Date: "2025-07-13", Time: "10:00"},
		{PublicCode: "M2", Date: "2025-07-13", Time: "18:00"},
	}
	assert.Equal(t, "M2", LatestOpenCode(matches))
}

func TestInitialRoster_YesAndMaybeSortedUnique(t *testing.T) {
	availability := []sheets.AvailabilityEntry{
		{PlayerName: "Sam", Availability: sheets.AvailabilityYes},
		{PlayerName: "Alex", Availability: sheets.AvailabilityMaybe},
		{PlayerName: "Kim", Availability: sheets.AvailabilityNo},
		{PlayerName: "Sam", Availability: sheets.AvailabilityYes},
	}

	assert.Equal(t, []string{"Alex", "Sam"}, InitialRoster(availability))
}

func TestRosterFromDetail_ServerTeamsWinDefaultsBlue(t *testing.T) {
	detail := sheets.MatchDetail{
		Availability: []sheets.AvailabilityEntry{
			{PlayerName: "Alex", Availability: sheets.AvailabilityYes},
			{PlayerName: "Sam", Availability: sheets.AvailabilityMaybe},
		},
		Teams: []sheets.TeamAssignment{
			{PlayerName: "Sam", Team: "orange"},
			{PlayerName: "Sam", Team: "GOALIE"}, // unknown labels are ignored
		},
	}

	roster := RosterFromDetail(detail)

	assert.Equal(t, []string{"Alex", "Sam"}, roster.Roster)
	assert.Equal(t, sheets.TeamBlue, roster.Teams["Alex"])
	assert.Equal(t, sheets.TeamOrange, roster.Teams["Sam"])
}

func TestCaptainTeam(t *testing.T) {
	detail := sheets.MatchDetail{
		Match:    sheets.MatchSummary{Type: sheets.MatchTypeInternal},
		Captains: sheets.Captains{Captain1: "Alex", Captain2: "Sam"},
	}

	assert.Equal(t, sheets.TeamBlue, CaptainTeam(detail, " alex "))
	assert.Equal(t, sheets.TeamOrange, CaptainTeam(detail, "SAM"))
	assert.Empty(t, CaptainTeam(detail, "Robin"))

	detail.Match.Type = sheets.MatchTypeOpponent
	assert.Empty(t, CaptainTeam(detail, "Alex"))
}

func TestRatablePlayers_InternalRatesOpposingTeamOnly(t *testing.T) {
	roster := PlayerRoster{
		Roster: []string{"Alex", "Kim", "Sam"},
		Teams:  map[string]string{"Alex": sheets.TeamBlue, "Kim": sheets.TeamOrange, "Sam": sheets.TeamBlue},
	}

	assert.Equal(t, []string{"Kim"}, RatablePlayers(roster, sheets.MatchTypeInternal, sheets.TeamBlue))
	assert.Equal(t, []string{"Alex", "Sam"}, RatablePlayers(roster, sheets.MatchTypeInternal, sheets.TeamOrange))
	// Opponent matches have no team split.
	assert.Equal(t, roster.Roster, RatablePlayers(roster, sheets.MatchTypeOpponent, ""))
}
