package sheets

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the Client interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	PingFunc                      func(ctx context.Context) error
	PlayersFunc                   func(ctx context.Context) ([]Player, error)
	SeasonsFunc                   func(ctx context.Context) (SeasonList, error)
	OpenMatchesFunc               func(ctx context.Context, seasonID string) ([]MatchSummary, error)
	PastMatchesFunc               func(ctx context.Context, seasonID string, page, pageSize int) (PastMatchesPage, error)
	MatchesMetaFunc               func(ctx context.Context, seasonID string) (MatchesMeta, error)
	PublicMatchFunc               func(ctx context.Context, code string) (MatchDetail, error)
	LeaderboardFunc               func(ctx context.Context, seasonID string) (Leaderboard, error)
	RegisterPlayerFunc            func(ctx context.Context, name, phone string) error
	SetAvailabilityFunc           func(ctx context.Context, code, playerName string, choice AvailabilityChoice, note string) error
	CaptainSubmitScoreFunc        func(ctx context.Context, code, givenBy, team string, scoreFor, scoreAgainst int) error
	CaptainSubmitRatingsBatchFunc func(ctx context.Context, code, givenBy string, ratings []Rating) error
	AdminListMatchesFunc          func(ctx context.Context, adminKey string) ([]AdminMatch, error)
	AdminCreateMatchFunc          func(ctx context.Context, adminKey string, params CreateMatchParams) (AdminMatch, error)
	AdminCloseMatchFunc           func(ctx context.Context, adminKey, matchID string) error
	AdminLockRatingsFunc          func(ctx context.Context, adminKey, matchID string) error
	AdminUnlockMatchFunc          func(ctx context.Context, adminKey, matchID string) error
	AdminSetupOpponentFunc        func(ctx context.Context, adminKey, matchID, captain string) error
	AdminSetupInternalFunc        func(ctx context.Context, adminKey string, params SetupInternalParams) error

	// Call records
	OpenMatchesCalls     []string
	MatchesMetaCalls     []string
	PublicMatchCalls     []string
	PastMatchesCalls     []string
	SetAvailabilityCalls []struct {
		Code       string
		PlayerName string
		Choice     AvailabilityChoice
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockClient {
	return &MockClient{}
}

var _ Client = (*MockClient)(nil)

func (m *MockClient) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func (m *MockClient) Players(ctx context.Context) ([]Player, error) {
	if m.PlayersFunc != nil {
		return m.PlayersFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) Seasons(ctx context.Context) (SeasonList, error) {
	if m.SeasonsFunc != nil {
		return m.SeasonsFunc(ctx)
	}
	return SeasonList{}, nil
}

func (m *MockClient) OpenMatches(ctx context.Context, seasonID string) ([]MatchSummary, error) {
	m.mu.Lock()
	m.OpenMatchesCalls = append(m.OpenMatchesCalls, seasonID)
	m.mu.Unlock()
	if m.OpenMatchesFunc != nil {
		return m.OpenMatchesFunc(ctx, seasonID)
	}
	return nil, nil
}

func (m *MockClient) PastMatches(ctx context.Context, seasonID string, page, pageSize int) (PastMatchesPage, error) {
	m.mu.Lock()
	m.PastMatchesCalls = append(m.PastMatchesCalls, seasonID)
	m.mu.Unlock()
	if m.PastMatchesFunc != nil {
		return m.PastMatchesFunc(ctx, seasonID, page, pageSize)
	}
	return PastMatchesPage{}, nil
}

func (m *MockClient) MatchesMeta(ctx context.Context, seasonID string) (MatchesMeta, error) {
	m.mu.Lock()
	m.MatchesMetaCalls = append(m.MatchesMetaCalls, seasonID)
	m.mu.Unlock()
	if m.MatchesMetaFunc != nil {
		return m.MatchesMetaFunc(ctx, seasonID)
	}
	return MatchesMeta{}, nil
}

func (m *MockClient) PublicMatch(ctx context.Context, code string) (MatchDetail, error) {
	m.mu.Lock()
	m.PublicMatchCalls = append(m.PublicMatchCalls, code)
	m.mu.Unlock()
	if m.PublicMatchFunc != nil {
		return m.PublicMatchFunc(ctx, code)
	}
	return MatchDetail{}, nil
}

func (m *MockClient) Leaderboard(ctx context.Context, seasonID string) (Leaderboard, error) {
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc(ctx, seasonID)
	}
	return Leaderboard{}, nil
}

func (m *MockClient) RegisterPlayer(ctx context.Context, name, phone string) error {
	if m.RegisterPlayerFunc != nil {
		return m.RegisterPlayerFunc(ctx, name, phone)
	}
	return nil
}

func (m *MockClient) SetAvailability(ctx context.Context, code, playerName string, choice AvailabilityChoice, note string) error {
	m.mu.Lock()
	m.SetAvailabilityCalls = append(m.SetAvailabilityCalls, struct {
		Code       string
		PlayerName string
		Choice     AvailabilityChoice
	}{code, playerName, choice})
	m.mu.Unlock()
	if m.SetAvailabilityFunc != nil {
		return m.SetAvailabilityFunc(ctx, code, playerName, choice, note)
	}
	return nil
}

func (m *MockClient) CaptainSubmitScore(ctx context.Context, code, givenBy, team string, scoreFor, scoreAgainst int) error {
	if m.CaptainSubmitScoreFunc != nil {
		return m.CaptainSubmitScoreFunc(ctx, code, givenBy, team, scoreFor, scoreAgainst)
	}
	return nil
}

func (m *MockClient) CaptainSubmitRatingsBatch(ctx context.Context, code, givenBy string, ratings []Rating) error {
	if m.CaptainSubmitRatingsBatchFunc != nil {
		return m.CaptainSubmitRatingsBatchFunc(ctx, code, givenBy, ratings)
	}
	return nil
}

func (m *MockClient) AdminListMatches(ctx context.Context, adminKey string) ([]AdminMatch, error) {
	if m.AdminListMatchesFunc != nil {
		return m.AdminListMatchesFunc(ctx, adminKey)
	}
	return nil, nil
}

func (m *MockClient) AdminCreateMatch(ctx context.Context, adminKey string, params CreateMatchParams) (AdminMatch, error) {
	if m.AdminCreateMatchFunc != nil {
		return m.AdminCreateMatchFunc(ctx, adminKey, params)
	}
	return AdminMatch{}, nil
}

func (m *MockClient) AdminCloseMatch(ctx context.Context, adminKey, matchID string) error {
	if m.AdminCloseMatchFunc != nil {
		return m.AdminCloseMatchFunc(ctx, adminKey, matchID)
	}
	return nil
}

func (m *MockClient) AdminLockRatings(ctx context.Context, adminKey, matchID string) error {
	if m.AdminLockRatingsFunc != nil {
		return m.AdminLockRatingsFunc(ctx, adminKey, matchID)
	}
	return nil
}

func (m *MockClient) AdminUnlockMatch(ctx context.Context, adminKey, matchID string) error {
	if m.AdminUnlockMatchFunc != nil {
		return m.AdminUnlockMatchFunc(ctx, adminKey, matchID)
	}
	return nil
}

func (m *MockClient) AdminSetupOpponent(ctx context.Context, adminKey, matchID, captain string) error {
	if m.AdminSetupOpponentFunc != nil {
		return m.AdminSetupOpponentFunc(ctx, adminKey, matchID, captain)
	}
	return nil
}

func (m *MockClient) AdminSetupInternal(ctx context.Context, adminKey string, params SetupInternalParams) error {
	if m.AdminSetupInternalFunc != nil {
		return m.AdminSetupInternalFunc(ctx, adminKey, params)
	}
	return nil
}

func (m *MockClient) InFlight() int64 {
	return 0
}
