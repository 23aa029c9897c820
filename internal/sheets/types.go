package sheets

// MatchType discriminates internal (Blue vs Orange) matches from matches
// against an external opponent.
type MatchType string

const (
	MatchTypeInternal MatchType = "INTERNAL"
	MatchTypeOpponent MatchType = "OPPONENT"
)

// MatchStatus is the lifecycle status of a match.
type MatchStatus string

const (
	MatchStatusOpen      MatchStatus = "OPEN"
	MatchStatusClosed    MatchStatus = "CLOSED"
	MatchStatusCompleted MatchStatus = "COMPLETED"
)

// AvailabilityChoice is a player's declared availability for a match.
type AvailabilityChoice string

const (
	AvailabilityYes   AvailabilityChoice = "YES"
	AvailabilityNo    AvailabilityChoice = "NO"
	AvailabilityMaybe AvailabilityChoice = "MAYBE"
)

// Team labels for internal matches.
const (
	TeamBlue   = "BLUE"
	TeamOrange = "ORANGE"
)

// Player is an entry in the club's player directory.
type Player struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// Season identifies one stretch of the club calendar.
type Season struct {
	SeasonID string `json:"seasonId"`
	Name     string `json:"name"`
}

// SeasonList is the seasons response payload.
type SeasonList struct {
	Seasons         []Season `json:"seasons"`
	CurrentSeasonID string   `json:"currentSeasonId"`
}

// MatchSummary is a single row in a match list.
type MatchSummary struct {
	MatchID    string      `json:"matchId,omitempty"`
	PublicCode string      `json:"publicCode"`
	Title      string      `json:"title"`
	Date       string      `json:"date"` // YYYY-MM-DD
	Time       string      `json:"time"` // HH:MM
	Type       MatchType   `json:"type"`
	Status     MatchStatus `json:"status"`
	CreatedAt  string      `json:"createdAt,omitempty"`
}

// PastMatchesPage is one page of completed matches.
type PastMatchesPage struct {
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Total    int            `json:"total"`
	HasMore  bool           `json:"hasMore"`
	Matches  []MatchSummary `json:"matches"`
}

// MatchesMeta is the cheap freshness probe result for a season's match
// list: a fingerprint of the server state plus the newest public code.
type MatchesMeta struct {
	Fingerprint string `json:"fingerprint"`
	LatestCode  string `json:"latestCode"`
}

// AvailabilityEntry is one player's posted availability on a match.
type AvailabilityEntry struct {
	PlayerName   string             `json:"playerName"`
	Availability AvailabilityChoice `json:"availability"`
	Note         string             `json:"note,omitempty"`
}

// Captains names the two captains of an internal match. Captain1 leads
// Blue, Captain2 leads Orange.
type Captains struct {
	Captain1 string `json:"captain1"`
	Captain2 string `json:"captain2"`
}

// TeamAssignment records which team a player was placed on for a match.
type TeamAssignment struct {
	PlayerName string `json:"playerName"`
	Team       string `json:"team"`
}

// Rating is one captain-given peer rating.
type Rating struct {
	PlayerName  string  `json:"playerName"`
	Rating      float64 `json:"rating"`
	GivenBy     string  `json:"givenBy,omitempty"`
	TeamAtMatch string  `json:"teamAtMatch,omitempty"`
}

// Score is a submitted match result.
type Score struct {
	Team         string `json:"team"` // INTERNAL (Blue vs Orange) or OPPONENT
	ScoreFor     int    `json:"scoreFor"`
	ScoreAgainst int    `json:"scoreAgainst"`
	GivenBy      string `json:"givenBy,omitempty"`
}

// MatchDetail is the full snapshot of one match: the match row plus
// everything posted against it.
type MatchDetail struct {
	Match         MatchSummary        `json:"match"`
	Availability  []AvailabilityEntry `json:"availability"`
	Captains      Captains            `json:"captains"`
	Teams         []TeamAssignment    `json:"teams"`
	Ratings       []Rating            `json:"ratings"`
	Score         *Score              `json:"score,omitempty"`
	RatingsLocked bool                `json:"ratingsLocked"`
}

// LeaderboardRow aggregates one player's results.
type LeaderboardRow struct {
	PlayerName   string  `json:"playerName"`
	Goals        int     `json:"goals,omitempty"`
	Assists      int     `json:"assists,omitempty"`
	AvgRating    float64 `json:"avgRating,omitempty"`
	MatchesRated int     `json:"matchesRated,omitempty"`
}

// Leaderboard is the aggregated results view.
type Leaderboard struct {
	TopScorers  []LeaderboardRow `json:"topScorers"`
	TopAssists  []LeaderboardRow `json:"topAssists"`
	BestPlayers []LeaderboardRow `json:"bestPlayers"`
}

// AdminMatch is a match row as seen on the admin panel.
type AdminMatch struct {
	MatchID       string      `json:"matchId"`
	PublicCode    string      `json:"publicCode"`
	Title         string      `json:"title"`
	Date          string      `json:"date"`
	Time          string      `json:"time"`
	Type          MatchType   `json:"type"`
	Status        MatchStatus `json:"status"`
	RatingsLocked bool        `json:"ratingsLocked"`
	CreatedAt     string      `json:"createdAt,omitempty"`
}

// CreateMatchParams is the payload for admin match creation.
type CreateMatchParams struct {
	Title string    `json:"title"`
	Date  string    `json:"date"`
	Time  string    `json:"time"`
	Type  MatchType `json:"type"`
}

// SetupInternalParams assigns captains and teams for an internal match.
type SetupInternalParams struct {
	MatchID  string           `json:"matchId"`
	Captain1 string           `json:"captain1"`
	Captain2 string           `json:"captain2"`
	Teams    []TeamAssignment `json:"teams"`
}

// envelope is the common part of every API response.
type envelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type playersResponse struct {
	envelope
	Players []Player `json:"players"`
}

type seasonsResponse struct {
	envelope
	Seasons         []Season `json:"seasons"`
	CurrentSeasonID string   `json:"currentSeasonId"`
}

type matchesResponse struct {
	envelope
	Matches []MatchSummary `json:"matches"`
}

type pastMatchesResponse struct {
	envelope
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Total    int            `json:"total"`
	HasMore  bool           `json:"hasMore"`
	Matches  []MatchSummary `json:"matches"`
}

type matchesMetaResponse struct {
	envelope
	Fingerprint string `json:"fingerprint"`
	LatestCode  string `json:"latestCode"`
}

type matchDetailResponse struct {
	envelope
	Match         MatchSummary        `json:"match"`
	Availability  []AvailabilityEntry `json:"availability"`
	Captains      Captains            `json:"captains"`
	Teams         []TeamAssignment    `json:"teams"`
	Ratings       []Rating            `json:"ratings"`
	Score         *Score              `json:"score"`
	RatingsLocked string              `json:"ratingsLocked"` // "TRUE"/"FALSE" from the sheet
}

type leaderboardResponse struct {
	envelope
	TopScorers  []LeaderboardRow `json:"topScorers"`
	TopAssists  []LeaderboardRow `json:"topAssists"`
	BestPlayers []LeaderboardRow `json:"bestPlayers"`
}

type adminMatchesResponse struct {
	envelope
	Matches []AdminMatch `json:"matches"`
}

type createMatchResponse struct {
	envelope
	Match AdminMatch `json:"match"`
}
