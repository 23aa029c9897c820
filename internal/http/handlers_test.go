package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mlfc/matchday/internal/cache"
	"github.com/mlfc/matchday/internal/club"
	"github.com/mlfc/matchday/internal/config"
	"github.com/mlfc/matchday/internal/metrics"
	"github.com/mlfc/matchday/internal/notifier"
	"github.com/mlfc/matchday/internal/sheets"
	"github.com/mlfc/matchday/internal/storage"
	"github.com/mlfc/matchday/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAnnouncer records announcements for assertions.
type mockAnnouncer struct {
	MatchesCreated  []string
	ScoresSubmitted []string
}

func (m *mockAnnouncer) AnnounceMatchCreated(title, date, timeOfDay, publicCode string) error {
	m.MatchesCreated = append(m.MatchesCreated, publicCode)
	return nil
}

func (m *mockAnnouncer) AnnounceScoreSubmitted(code, team string, scoreFor, scoreAgainst int) error {
	m.ScoresSubmitted = append(m.ScoresSubmitted, code)
	return nil
}

type testServer struct {
	server    *Server
	store     *storage.MockStore
	api       *sheets.MockClient
	notifier  *notifier.MockNotifier
	announcer *mockAnnouncer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := storage.NewMock()
	api := sheets.NewMock()
	n := notifier.NewMock()
	announcer := &mockAnnouncer{}
	m := metrics.NewMock()
	session := view.NewSessionWithProbeInterval(time.Nanosecond)
	cfg := config.Config{AdminKey: "admin-key"}
	controllers := club.NewControllers(api, store, session, m, n, cfg.AdminKey, true)

	server := NewServer(controllers, store, api, m, http.NotFoundHandler(), cfg, n, announcer)
	return &testServer{server: server, store: store, api: api, notifier: n, announcer: announcer}
}

func (ts *testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	ts.server.ServeHTTP(rec, req)
	return rec
}

type openView struct {
	Source   string                `json:"source"`
	Fresh    bool                  `json:"fresh"`
	Snapshot *club.OpenMatchesList `json:"snapshot"`
}

func TestHealthCheckHandler(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK!", rec.Body.String())
}

func TestOpenMatchesHandler_ServesCacheWithoutNetwork(t *testing.T) {
	ts := newTestServer(t)
	cache.Save(ts.store, storage.Key(club.DomainOpenMatches, "S1"), cache.Wrap(club.OpenMatchesList{
		Matches: []sheets.MatchSummary{{PublicCode: "M1", Title: "Sunday friendly"}},
	}))

	rec := ts.do(t, http.MethodGet, "/matches/open?season=S1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var v openView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "cache", v.Source)
	assert.True(t, v.Fresh)
	require.NotNil(t, v.Snapshot)
	assert.Equal(t, "M1", v.Snapshot.Matches[0].PublicCode)
	assert.Empty(t, ts.api.OpenMatchesCalls, "cache-first reads never hit the network")
}

func TestOpenMatchesHandler_EmptyCache(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/matches/open?season=S1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var v openView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "empty", v.Source)
	assert.Nil(t, v.Snapshot)
}

func TestMatchHandler_RequiresCode(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/match", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type matchView struct {
	Source   string              `json:"source"`
	Snapshot *sheets.MatchDetail `json:"snapshot"`
}

func TestMatchHandler_MissFetchesOnce(t *testing.T) {
	ts := newTestServer(t)
	ts.api.PublicMatchFunc = func(ctx context.Context, code string) (sheets.MatchDetail, error) {
		return sheets.MatchDetail{Match: sheets.MatchSummary{PublicCode: code, Title: "Sunday friendly"}}, nil
	}

	// Nothing cached: the detail view fetches once instead of rendering
	// an empty state.
	rec := ts.do(t, http.MethodGet, "/match?code=M1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var v matchView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "network", v.Source)
	require.NotNil(t, v.Snapshot)
	assert.Equal(t, "Sunday friendly", v.Snapshot.Match.Title)
	assert.Equal(t, []string{"M1"}, ts.api.PublicMatchCalls)

	// The fetched snapshot is now cached; the next open stays local.
	rec = ts.do(t, http.MethodGet, "/match?code=M1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "cache", v.Source)
	assert.Equal(t, []string{"M1"}, ts.api.PublicMatchCalls, "exactly one fetch for the miss")
}

func TestMatchHandler_MissFetchFailureSurfaces(t *testing.T) {
	ts := newTestServer(t)
	ts.api.PublicMatchFunc = func(ctx context.Context, code string) (sheets.MatchDetail, error) {
		return sheets.MatchDetail{}, &sheets.Error{Kind: sheets.KindDomain, Action: "public_match", Message: "Unknown match code"}
	}

	rec := ts.do(t, http.MethodGet, "/match?code=NOPE", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unknown match code")
}

func TestRosterHandler_MissFetchesOnce(t *testing.T) {
	ts := newTestServer(t)
	ts.api.PublicMatchFunc = func(ctx context.Context, code string) (sheets.MatchDetail, error) {
		return sheets.MatchDetail{
			Match: sheets.MatchSummary{PublicCode: code},
			Availability: []sheets.AvailabilityEntry{
				{PlayerName: "Alex", Availability: sheets.AvailabilityYes},
			},
		}, nil
	}

	rec := ts.do(t, http.MethodGet, "/roster?code=M1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var v struct {
		Source   string             `json:"source"`
		Snapshot *club.PlayerRoster `json:"snapshot"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "network", v.Source)
	require.NotNil(t, v.Snapshot)
	assert.Equal(t, []string{"Alex"}, v.Snapshot.Roster)
	assert.Equal(t, []string{"M1"}, ts.api.PublicMatchCalls)
}

func TestRefreshHandler_FetchesNetwork(t *testing.T) {
	ts := newTestServer(t)
	ts.api.OpenMatchesFunc = func(ctx context.Context, seasonID string) ([]sheets.MatchSummary, error) {
		return []sheets.MatchSummary{{PublicCode: "M7"}}, nil
	}

	rec := ts.do(t, http.MethodGet, "/refresh?domain=open_matches&id=S1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var v openView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "network", v.Source)
	assert.Equal(t, "M7", v.Snapshot.Matches[0].PublicCode)
	assert.Equal(t, []string{"S1"}, ts.api.OpenMatchesCalls)
}

func TestRefreshHandler_UnknownDomain(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/refresh?domain=nope", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetAvailabilityHandler(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/availability", map[string]any{
		"code": "M1", "player": "Alex", "availability": "yes",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, ts.api.SetAvailabilityCalls, 1)
	assert.Equal(t, sheets.AvailabilityYes, ts.api.SetAvailabilityCalls[0].Choice)
}

func TestSetAvailabilityHandler_InvalidChoice(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/availability", map[string]any{
		"code": "M1", "player": "Alex", "availability": "PERHAPS",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ts.api.SetAvailabilityCalls)
}

func TestSetAvailabilityHandler_DomainErrorMapsToConflict(t *testing.T) {
	ts := newTestServer(t)
	ts.api.SetAvailabilityFunc = func(ctx context.Context, code, playerName string, choice sheets.AvailabilityChoice, note string) error {
		return &sheets.Error{Kind: sheets.KindDomain, Action: "set_availability", Message: "Match is closed"}
	}

	rec := ts.do(t, http.MethodPost, "/availability", map[string]any{
		"code": "M1", "player": "Alex", "availability": "NO",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Match is closed")
}

func TestAdminCloseHandler_OptimisticallyClosesRow(t *testing.T) {
	ts := newTestServer(t)
	cache.Save(ts.store, storage.Key(club.DomainAdminMatches, ""), cache.Wrap(club.AdminMatchList{
		Matches: []sheets.AdminMatch{{MatchID: "1", Status: sheets.MatchStatusOpen}},
	}))

	rec := ts.do(t, http.MethodPost, "/admin/close", map[string]any{"matchId": "1"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), string(sheets.MatchStatusClosed))

	stored := cache.Load[club.AdminMatchList](ts.store, storage.Key(club.DomainAdminMatches, ""))
	require.NotNil(t, stored)
	assert.Equal(t, sheets.MatchStatusClosed, stored.Payload.Matches[0].Status)
}

func TestAdminCreateHandler_Announces(t *testing.T) {
	ts := newTestServer(t)
	ts.api.AdminCreateMatchFunc = func(ctx context.Context, adminKey string, params sheets.CreateMatchParams) (sheets.AdminMatch, error) {
		assert.Equal(t, "admin-key", adminKey)
		return sheets.AdminMatch{MatchID: "9", PublicCode: "M9", Title: params.Title, Date: params.Date, Time: params.Time}, nil
	}

	rec := ts.do(t, http.MethodPost, "/admin/create", map[string]any{
		"title": "Derby", "date": "2025-09-06", "time": "18:00", "type": "OPPONENT",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"M9"}, ts.announcer.MatchesCreated)
	assert.Contains(t, ts.notifier.Successes, "Match created")
}

func TestSubmitScoreHandler_AnnouncesScore(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/captain/score", map[string]any{
		"code": "M1", "captain": "Alex", "team": "OPPONENT", "scoreFor": 3, "scoreAgainst": 1,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"M1"}, ts.announcer.ScoresSubmitted)
}

func TestSubmitRatingsHandler_ValidatesRange(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/captain/ratings", map[string]any{
		"code": "M1", "captain": "Alex",
		"ratings": []map[string]any{{"playerName": "Kim", "rating": 11}},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSelectSeasonHandler_PersistsSelection(t *testing.T) {
	ts := newTestServer(t)
	cache.Save(ts.store, storage.Key(club.DomainOpenMatches, "S9"), cache.Wrap(club.OpenMatchesList{
		Matches: []sheets.MatchSummary{{PublicCode: "M1"}},
	}))

	rec := ts.do(t, http.MethodPost, "/season", map[string]any{"seasonId": "S9"})
	require.Equal(t, http.StatusOK, rec.Code)

	// The persisted selection becomes the default season for reads.
	rec = ts.do(t, http.MethodGet, "/matches/open", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var v openView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "cache", v.Source)
}

func TestClearCacheHandler(t *testing.T) {
	ts := newTestServer(t)
	ts.store.Set("matchday:players", []byte("x"))
	ts.store.Set("matchday:seasons", []byte("y"))

	rec := ts.do(t, http.MethodGet, "/cache/clear", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, ts.store.Len())
}

func TestClearCacheHandler_SingleDomain(t *testing.T) {
	ts := newTestServer(t)
	ts.store.Set(storage.Key(club.DomainOpenMatches, "S1"), []byte("x"))
	ts.store.Set(storage.Key(club.DomainSeasons, ""), []byte("y"))

	rec := ts.do(t, http.MethodGet, "/cache/clear?domain=open_matches&id=S1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, ts.store.Get(storage.Key(club.DomainOpenMatches, "S1")))
	assert.NotNil(t, ts.store.Get(storage.Key(club.DomainSeasons, "")))
}
