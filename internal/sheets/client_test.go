package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mlfc/matchday/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) (*APIClient, *metrics.MockMetrics) {
	m := metrics.NewMock()
	return NewClient(serverURL, 2*time.Second, m), m
}

func TestPublicMatch(t *testing.T) {
	mockJSONResponse := `{
		"ok": true,
		"match": {
			"publicCode": "M1",
			"title": "Sunday friendly",
			"date": "2025-07-13",
			"time": "10:00",
			"type": "INTERNAL",
			"status": "OPEN"
		},
		"availability": [
			{ "playerName": " Alex ", "availability": "yes" },
			{ "playerName": "Sam", "availability": "NO" },
			{ "playerName": "", "availability": "YES" },
			{ "playerName": "Robin", "availability": "WAT" }
		],
		"captains": { "captain1": "Alex", "captain2": "Sam" },
		"teams": [ { "playerName": "Alex", "team": "BLUE" } ],
		"ratingsLocked": "TRUE"
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "public_match", r.URL.Query().Get("action"))
		assert.Equal(t, "M1", r.URL.Query().Get("code"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, mockJSONResponse)
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL)
	detail, err := client.PublicMatch(context.Background(), "M1")

	require.NoError(t, err)
	assert.Equal(t, "M1", detail.Match.PublicCode)
	assert.Equal(t, MatchTypeInternal, detail.Match.Type)
	assert.True(t, detail.RatingsLocked)
	// Blank names and unknown choices are dropped, the rest normalized.
	require.Len(t, detail.Availability, 2)
	assert.Equal(t, "Alex", detail.Availability[0].PlayerName)
	assert.Equal(t, AvailabilityYes, detail.Availability[0].Availability)
	assert.Equal(t, AvailabilityNo, detail.Availability[1].Availability)
}

func TestSetAvailability_PostsActionBody(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		fmt.Fprintln(w, `{"ok":true}`)
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL)
	err := client.SetAvailability(context.Background(), "M1", "Alex", AvailabilityYes, "")

	require.NoError(t, err)
	assert.Equal(t, "set_availability", received["action"])
	assert.Equal(t, "M1", received["publicCode"])
	assert.Equal(t, "Alex", received["playerName"])
	assert.Equal(t, "YES", received["availability"])
}

func TestCall_DomainErrorVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"ok":false,"error":"Match locked"}`)
	}))
	defer server.Close()

	client, m := newTestClient(server.URL)
	_, err := client.OpenMatches(context.Background(), "S1")

	require.Error(t, err)
	assert.True(t, IsDomain(err))
	assert.Equal(t, "Match locked", err.Error(), "server error strings surface verbatim")
	assert.Contains(t, m.APIFailureActions, "public_open_matches")
}

func TestCall_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprintln(w, `{"ok":true}`)
	}))
	defer server.Close()

	m := metrics.NewMock()
	client := NewClient(server.URL, 50*time.Millisecond, m)
	err := client.Ping(context.Background())

	require.Error(t, err)
	assert.True(t, IsTimeout(err))
}

func TestCall_NetworkErrorClassified(t *testing.T) {
	// Point at a closed server so the dial fails outright.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, _ := newTestClient(server.URL)
	err := client.Ping(context.Background())

	require.Error(t, err)
	assert.False(t, IsDomain(err))
}

func TestCall_DecodeErrorClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `<html>definitely not json</html>`)
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL)
	_, err := client.Leaderboard(context.Background(), "S1")

	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindDecode, apiErr.Kind)
}

func TestCall_InFlightCounterBalanced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"ok":false,"error":"nope"}`)
	}))
	defer server.Close()

	client, m := newTestClient(server.URL)
	_ = client.Ping(context.Background())
	_ = client.Ping(context.Background())

	// The counter is decremented even on failed calls.
	assert.Equal(t, int64(0), client.InFlight())
	assert.Equal(t, 0, m.InFlightCurrent)
	assert.Len(t, m.APICallActions, 2)
}

func TestPastMatches_MapsPaging(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("pageSize"))
		fmt.Fprintln(w, `{"ok":true,"page":2,"pageSize":20,"total":45,"hasMore":true,
			"matches":[{"publicCode":"M9","title":"Derby","date":"2025-06-01","time":"18:00","type":"OPPONENT","status":"COMPLETED"}]}`)
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL)
	page, err := client.PastMatches(context.Background(), "S1", 2, 20)

	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 45, page.Total)
	assert.True(t, page.HasMore)
	require.Len(t, page.Matches, 1)
	assert.Equal(t, "M9", page.Matches[0].PublicCode)
}
