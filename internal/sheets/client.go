package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mlfc/matchday/internal/metrics"
)

// APIClient is the HTTP client for the spreadsheet-backed match API.
// The whole API is a single endpoint dispatching on an "action" parameter.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
	timeout    time.Duration
	metrics    metrics.Metrics
	inflight   atomic.Int64
}

// NewClient creates a new API client. timeout bounds every individual
// call; a hung request resolves as a KindTimeout error instead of leaving
// the caller busy forever.
func NewClient(baseURL string, timeout time.Duration, m metrics.Metrics) *APIClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &APIClient{
		httpClient: &http.Client{Timeout: timeout},
		BaseURL:    baseURL,
		timeout:    timeout,
		metrics:    m,
	}
}

// Ensure APIClient implements the Client interface.
var _ Client = (*APIClient)(nil)

// InFlight returns the number of calls currently on the wire.
func (c *APIClient) InFlight() int64 {
	return c.inflight.Load()
}

// statuser is implemented by every response struct via the embedded envelope.
type statuser interface {
	status() (bool, string)
}

func (e *envelope) status() (bool, string) {
	return e.OK, e.Error
}

// get issues a GET for the given action. out must embed envelope.
func (c *APIClient) get(ctx context.Context, action string, params url.Values, out statuser) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("action", action)

	return c.call(ctx, action, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	}, out)
}

// post issues a POST for the given action with a JSON body. The content
// type stays text/plain because the sheet backend parses the raw body
// itself and rejects preflighted requests.
func (c *APIClient) post(ctx context.Context, action string, body map[string]any, out statuser) error {
	if body == nil {
		body = map[string]any{}
	}
	body["action"] = action

	payload, err := json.Marshal(body)
	if err != nil {
		return &Error{Kind: KindDecode, Action: action, Message: fmt.Sprintf("failed to encode request: %s", err)}
	}

	return c.call(ctx, action, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "text/plain;charset=utf-8")
		return req, nil
	}, out)
}

// call runs one request with the in-flight counter held for its whole
// lifetime, converting every failure into a classified *Error.
func (c *APIClient) call(ctx context.Context, action string, build func(context.Context) (*http.Request, error), out statuser) error {
	c.inflight.Add(1)
	c.metrics.IncInFlight()
	c.metrics.IncAPICall(action)
	defer func() {
		c.inflight.Add(-1)
		c.metrics.DecInFlight()
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := build(ctx)
	if err != nil {
		c.metrics.IncAPIFailure(action)
		return &Error{Kind: KindNetwork, Action: action, Message: fmt.Sprintf("failed to create request: %s", err)}
	}

	log.Debug("Calling match API", "action", action, "method", req.Method)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.IncAPIFailure(action)
		return c.classifyTransport(action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.IncAPIFailure(action)
		log.Error("Received non-OK HTTP status from match API", "action", action, "status", resp.StatusCode)
		return &Error{Kind: KindNetwork, Action: action, Message: fmt.Sprintf("received non-OK HTTP status: %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.IncAPIFailure(action)
		return &Error{Kind: KindDecode, Action: action, Message: fmt.Sprintf("failed to decode response: %s", err)}
	}

	if ok, msg := out.status(); !ok {
		c.metrics.IncAPIFailure(action)
		if msg == "" {
			msg = "unknown error"
		}
		log.Warn("Match API rejected call", "action", action, "error", msg)
		return &Error{Kind: KindDomain, Action: action, Message: msg}
	}
	return nil
}

func (c *APIClient) classifyTransport(action string, err error) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		log.Error("Match API call timed out", "action", action, "timeout", c.timeout)
		return &Error{Kind: KindTimeout, Action: action, Message: fmt.Sprintf("request timed out after %s", c.timeout)}
	}
	log.Error("Match API call failed", "action", action, "error", err)
	return &Error{Kind: KindNetwork, Action: action, Message: err.Error()}
}

func (c *APIClient) Ping(ctx context.Context) error {
	var out struct{ envelope }
	return c.get(ctx, "ping", nil, &out)
}

func (c *APIClient) Players(ctx context.Context) ([]Player, error) {
	var out playersResponse
	if err := c.get(ctx, "players", nil, &out); err != nil {
		return nil, err
	}
	return out.Players, nil
}

func (c *APIClient) RegisterPlayer(ctx context.Context, name, phone string) error {
	var out struct{ envelope }
	return c.post(ctx, "register_player", map[string]any{
		"name":  name,
		"phone": phone,
	}, &out)
}

func (c *APIClient) Seasons(ctx context.Context) (SeasonList, error) {
	var out seasonsResponse
	if err := c.get(ctx, "seasons", nil, &out); err != nil {
		return SeasonList{}, err
	}
	return SeasonList{Seasons: out.Seasons, CurrentSeasonID: out.CurrentSeasonID}, nil
}

func (c *APIClient) OpenMatches(ctx context.Context, seasonID string) ([]MatchSummary, error) {
	params := url.Values{}
	params.Set("seasonId", seasonID)
	var out matchesResponse
	if err := c.get(ctx, "public_open_matches", params, &out); err != nil {
		return nil, err
	}
	return out.Matches, nil
}

func (c *APIClient) PastMatches(ctx context.Context, seasonID string, page, pageSize int) (PastMatchesPage, error) {
	params := url.Values{}
	params.Set("seasonId", seasonID)
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))
	var out pastMatchesResponse
	if err := c.get(ctx, "public_past_matches", params, &out); err != nil {
		return PastMatchesPage{}, err
	}
	return PastMatchesPage{
		Page:     out.Page,
		PageSize: out.PageSize,
		Total:    out.Total,
		HasMore:  out.HasMore,
		Matches:  out.Matches,
	}, nil
}

func (c *APIClient) MatchesMeta(ctx context.Context, seasonID string) (MatchesMeta, error) {
	params := url.Values{}
	params.Set("seasonId", seasonID)
	var out matchesMetaResponse
	if err := c.get(ctx, "public_matches_meta", params, &out); err != nil {
		return MatchesMeta{}, err
	}
	return MatchesMeta{Fingerprint: out.Fingerprint, LatestCode: out.LatestCode}, nil
}

func (c *APIClient) PublicMatch(ctx context.Context, code string) (MatchDetail, error) {
	params := url.Values{}
	params.Set("code", code)
	var out matchDetailResponse
	if err := c.get(ctx, "public_match", params, &out); err != nil {
		return MatchDetail{}, err
	}

	detail := MatchDetail{
		Match:         out.Match,
		Availability:  normalizeAvailability(out.Availability),
		Captains:      out.Captains,
		Teams:         out.Teams,
		Ratings:       out.Ratings,
		Score:         out.Score,
		RatingsLocked: strings.EqualFold(out.RatingsLocked, "TRUE"),
	}
	if detail.Match.PublicCode == "" {
		detail.Match.PublicCode = code
	}
	return detail, nil
}

// normalizeAvailability trims names and upper-cases choices; the sheet is
// hand-edited often enough that both arrive in mixed shape.
func normalizeAvailability(entries []AvailabilityEntry) []AvailabilityEntry {
	normalized := make([]AvailabilityEntry, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSpace(entry.PlayerName)
		if name == "" {
			continue
		}
		choice := AvailabilityChoice(strings.ToUpper(string(entry.Availability)))
		switch choice {
		case AvailabilityYes, AvailabilityNo, AvailabilityMaybe:
		default:
			log.Warn("Unknown availability choice from match API", "player", name, "choice", entry.Availability)
			continue
		}
		normalized = append(normalized, AvailabilityEntry{
			PlayerName:   name,
			Availability: choice,
			Note:         entry.Note,
		})
	}
	return normalized
}

func (c *APIClient) SetAvailability(ctx context.Context, code, playerName string, choice AvailabilityChoice, note string) error {
	var out struct{ envelope }
	return c.post(ctx, "set_availability", map[string]any{
		"publicCode":   code,
		"playerName":   playerName,
		"availability": string(choice),
		"note":         note,
	}, &out)
}

func (c *APIClient) Leaderboard(ctx context.Context, seasonID string) (Leaderboard, error) {
	params := url.Values{}
	if seasonID != "" {
		params.Set("seasonId", seasonID)
	}
	var out leaderboardResponse
	if err := c.get(ctx, "leaderboard", params, &out); err != nil {
		return Leaderboard{}, err
	}
	return Leaderboard{
		TopScorers:  out.TopScorers,
		TopAssists:  out.TopAssists,
		BestPlayers: out.BestPlayers,
	}, nil
}

func (c *APIClient) CaptainSubmitScore(ctx context.Context, code, givenBy, team string, scoreFor, scoreAgainst int) error {
	var out struct{ envelope }
	return c.post(ctx, "captain_submit_score", map[string]any{
		"publicCode":   code,
		"givenBy":      givenBy,
		"team":         team,
		"scoreFor":     scoreFor,
		"scoreAgainst": scoreAgainst,
	}, &out)
}

func (c *APIClient) CaptainSubmitRatingsBatch(ctx context.Context, code, givenBy string, ratings []Rating) error {
	var out struct{ envelope }
	return c.post(ctx, "captain_submit_ratings_batch", map[string]any{
		"publicCode": code,
		"givenBy":    givenBy,
		"ratings":    ratings,
	}, &out)
}

func (c *APIClient) AdminListMatches(ctx context.Context, adminKey string) ([]AdminMatch, error) {
	params := url.Values{}
	params.Set("adminKey", adminKey)
	var out adminMatchesResponse
	if err := c.get(ctx, "admin_list_matches", params, &out); err != nil {
		return nil, err
	}
	return out.Matches, nil
}

func (c *APIClient) AdminCreateMatch(ctx context.Context, adminKey string, params CreateMatchParams) (AdminMatch, error) {
	var out createMatchResponse
	err := c.post(ctx, "admin_create_match", map[string]any{
		"adminKey": adminKey,
		"title":    params.Title,
		"date":     params.Date,
		"time":     params.Time,
		"type":     string(params.Type),
	}, &out)
	if err != nil {
		return AdminMatch{}, err
	}
	return out.Match, nil
}

func (c *APIClient) AdminCloseMatch(ctx context.Context, adminKey, matchID string) error {
	var out struct{ envelope }
	return c.post(ctx, "admin_close_match", map[string]any{
		"adminKey": adminKey,
		"matchId":  matchID,
	}, &out)
}

func (c *APIClient) AdminLockRatings(ctx context.Context, adminKey, matchID string) error {
	var out struct{ envelope }
	return c.post(ctx, "admin_lock_ratings", map[string]any{
		"adminKey": adminKey,
		"matchId":  matchID,
	}, &out)
}

func (c *APIClient) AdminUnlockMatch(ctx context.Context, adminKey, matchID string) error {
	var out struct{ envelope }
	return c.post(ctx, "admin_unlock_match", map[string]any{
		"adminKey": adminKey,
		"matchId":  matchID,
	}, &out)
}

func (c *APIClient) AdminSetupOpponent(ctx context.Context, adminKey, matchID, captain string) error {
	var out struct{ envelope }
	return c.post(ctx, "admin_setup_opponent", map[string]any{
		"adminKey": adminKey,
		"matchId":  matchID,
		"captain":  captain,
	}, &out)
}

func (c *APIClient) AdminSetupInternal(ctx context.Context, adminKey string, params SetupInternalParams) error {
	var out struct{ envelope }
	return c.post(ctx, "admin_setup_internal", map[string]any{
		"adminKey": adminKey,
		"matchId":  params.MatchID,
		"captain1": params.Captain1,
		"captain2": params.Captain2,
		"teams":    params.Teams,
	}, &out)
}
