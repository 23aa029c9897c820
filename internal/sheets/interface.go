package sheets

import "context"

// Client is the typed facade over the spreadsheet-backed match API.
// Every method maps to one action of the single remote endpoint. Failed
// calls return a *Error; the client never panics and never leaks raw
// transport errors.
type Client interface {
	Ping(ctx context.Context) error

	// Public reads
	Players(ctx context.Context) ([]Player, error)
	Seasons(ctx context.Context) (SeasonList, error)
	OpenMatches(ctx context.Context, seasonID string) ([]MatchSummary, error)
	PastMatches(ctx context.Context, seasonID string, page, pageSize int) (PastMatchesPage, error)
	MatchesMeta(ctx context.Context, seasonID string) (MatchesMeta, error)
	PublicMatch(ctx context.Context, code string) (MatchDetail, error)
	Leaderboard(ctx context.Context, seasonID string) (Leaderboard, error)

	// Public writes
	RegisterPlayer(ctx context.Context, name, phone string) error
	SetAvailability(ctx context.Context, code, playerName string, choice AvailabilityChoice, note string) error

	// Captain writes
	CaptainSubmitScore(ctx context.Context, code, givenBy, team string, scoreFor, scoreAgainst int) error
	CaptainSubmitRatingsBatch(ctx context.Context, code, givenBy string, ratings []Rating) error

	// Admin
	AdminListMatches(ctx context.Context, adminKey string) ([]AdminMatch, error)
	AdminCreateMatch(ctx context.Context, adminKey string, params CreateMatchParams) (AdminMatch, error)
	AdminCloseMatch(ctx context.Context, adminKey, matchID string) error
	AdminLockRatings(ctx context.Context, adminKey, matchID string) error
	AdminUnlockMatch(ctx context.Context, adminKey, matchID string) error
	AdminSetupOpponent(ctx context.Context, adminKey, matchID, captain string) error
	AdminSetupInternal(ctx context.Context, adminKey string, params SetupInternalParams) error

	// InFlight returns the number of calls currently on the wire.
	InFlight() int64
}
