package club

import (
	"sort"
	"strings"

	"github.com/mlfc/matchday/internal/sheets"
)

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// uniqueSorted de-duplicates names case-sensitively, drops blanks and
// sorts the rest alphabetically.
func uniqueSorted(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// GroupAvailability splits posted availability into YES/MAYBE/NO buckets.
func GroupAvailability(entries []sheets.AvailabilityEntry) AvailabilityGroups {
	var groups AvailabilityGroups
	for _, entry := range entries {
		switch entry.Availability {
		case sheets.AvailabilityYes:
			groups.Yes = append(groups.Yes, entry)
		case sheets.AvailabilityMaybe:
			groups.Maybe = append(groups.Maybe, entry)
		case sheets.AvailabilityNo:
			groups.No = append(groups.No, entry)
		}
	}
	return groups
}

// ContainsCode reports whether any match in the list carries the public code.
func ContainsCode(matches []sheets.MatchSummary, code string) bool {
	for _, m := range matches {
		if m.PublicCode == code {
			return true
		}
	}
	return false
}

// LatestOpenCode returns the public code of the newest match in the list,
// newest by creation time when the server provides it, by kickoff
// otherwise. Empty list yields "".
func LatestOpenCode(matches []sheets.MatchSummary) string {
	var latest *sheets.MatchSummary
	for i := range matches {
		m := &matches[i]
		if latest == nil || matchSortKey(*m) > matchSortKey(*latest) {
			latest = m
		}
	}
	if latest == nil {
		return ""
	}
	return latest.PublicCode
}

// matchSortKey orders matches by createdAt, falling back to date+time.
// Both are ISO-ish strings, so lexicographic comparison is chronological.
func matchSortKey(m sheets.MatchSummary) string {
	if m.CreatedAt != "" {
		return m.CreatedAt
	}
	return m.Date + " " + m.Time
}

// InitialRoster seeds the captain roster from posted availability: the
// players who said YES or MAYBE are the ones likely to play.
func InitialRoster(availability []sheets.AvailabilityEntry) []string {
	var names []string
	for _, entry := range availability {
		if entry.Availability == sheets.AvailabilityYes || entry.Availability == sheets.AvailabilityMaybe {
			names = append(names, entry.PlayerName)
		}
	}
	return uniqueSorted(names)
}

// RosterFromDetail builds the captain working set from a match snapshot.
// Server-assigned teams win; roster players without an assignment default
// to Blue.
func RosterFromDetail(detail sheets.MatchDetail) PlayerRoster {
	roster := InitialRoster(detail.Availability)
	teams := make(map[string]string, len(roster))
	for _, assignment := range detail.Teams {
		team := strings.ToUpper(assignment.Team)
		if assignment.PlayerName == "" {
			continue
		}
		if team == sheets.TeamBlue || team == sheets.TeamOrange {
			teams[assignment.PlayerName] = team
		}
	}
	for _, player := range roster {
		if _, ok := teams[player]; !ok {
			teams[player] = sheets.TeamBlue
		}
	}
	return PlayerRoster{Roster: roster, Teams: teams}
}

// CaptainTeam infers which team a captain leads in an internal match:
// captain1 leads Blue, captain2 leads Orange. Names compare trimmed and
// case-insensitive. Non-internal matches and unknown names yield "".
func CaptainTeam(detail sheets.MatchDetail, captain string) string {
	if detail.Match.Type != sheets.MatchTypeInternal {
		return ""
	}
	name := normalizeName(captain)
	if name == "" {
		return ""
	}
	switch name {
	case normalizeName(detail.Captains.Captain1):
		return sheets.TeamBlue
	case normalizeName(detail.Captains.Captain2):
		return sheets.TeamOrange
	}
	return ""
}

// CanRate applies the internal-match rating rule: a captain may only rate
// players on the opposing team. Matches against an external opponent have
// no team split, so the whole roster is ratable.
func CanRate(matchType sheets.MatchType, captainTeam, playerTeam string) bool {
	if matchType != sheets.MatchTypeInternal || captainTeam == "" {
		return true
	}
	return !strings.EqualFold(playerTeam, captainTeam)
}

// RatablePlayers filters the roster down to the players the captain is
// allowed to rate.
func RatablePlayers(roster PlayerRoster, matchType sheets.MatchType, captainTeam string) []string {
	out := make([]string, 0, len(roster.Roster))
	for _, player := range roster.Roster {
		if CanRate(matchType, captainTeam, roster.Teams[player]) {
			out = append(out, player)
		}
	}
	return out
}
