package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mlfc/matchday/internal/cache"
	"github.com/mlfc/matchday/internal/club"
	"github.com/mlfc/matchday/internal/sheets"
	"github.com/mlfc/matchday/internal/storage"
	"github.com/mlfc/matchday/internal/view"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// respondError maps gateway errors onto HTTP statuses: a domain rejection
// is the server saying no (409), everything else is a bad gateway. The
// message goes out verbatim.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	if sheets.IsDomain(err) {
		status = http.StatusConflict
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

func respondBadRequest(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// seasonID resolves the season for season-scoped reads: explicit query
// param first, then the persisted selection, then the cached season list.
func (s *Server) seasonID(r *http.Request) string {
	if season := r.URL.Query().Get("season"); season != "" {
		return season
	}
	if selected := cache.Load[club.SelectedSeason](s.Store, storage.Key(club.DomainSelectedSeason, "")); selected != nil && selected.Payload.SeasonID != "" {
		return selected.Payload.SeasonID
	}
	if seasons := cache.Load[sheets.SeasonList](s.Store, storage.Key(club.DomainSeasons, "")); seasons != nil {
		return seasons.Payload.CurrentSeasonID
	}
	return ""
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) OpenMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, s.Controllers.Open.Open(r.Context(), s.seasonID(r)))
	}
}

func (s *Server) PastMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		season := s.seasonID(r)
		if r.URL.Query().Get("loadMore") == "true" {
			v, err := s.Controllers.Past.LoadMore(r.Context(), season)
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, v)
			return
		}
		respondJSON(w, http.StatusOK, s.Controllers.Past.Open(r.Context(), season))
	}
}

func (s *Server) MatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			respondBadRequest(w, "code is required")
			return
		}
		v, err := openOrFetchOnce(r.Context(), s.Controllers.Match, code)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, v)
	}
}

// openOrFetchOnce renders the cached detail view, falling back to a single
// full fetch when the store holds nothing for the key. A detail page with
// no snapshot is a dead end, so a miss is not an error; list views stay
// strictly cache-first.
func openOrFetchOnce[S any](ctx context.Context, c *view.Controller[S], id string) (view.View[S], error) {
	v := c.Open(ctx, id)
	if v.Source != view.SourceEmpty {
		return v, nil
	}
	return c.Refresh(ctx, id)
}

func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, s.Controllers.Leaderboard.Open(r.Context(), s.seasonID(r)))
	}
}

func (s *Server) PlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, s.Controllers.Players.Open(r.Context(), ""))
	}
}

func (s *Server) SeasonsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, s.Controllers.Seasons.Open(r.Context(), ""))
	}
}

// SelectSeasonHandler reads or persists the user's season selection.
func (s *Server) SelectSeasonHandler() http.HandlerFunc {
	key := storage.Key(club.DomainSelectedSeason, "")
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			selected := cache.Load[club.SelectedSeason](s.Store, key)
			if selected == nil {
				respondJSON(w, http.StatusOK, club.SelectedSeason{})
				return
			}
			respondJSON(w, http.StatusOK, selected.Payload)
		case http.MethodPost:
			var body club.SelectedSeason
			if err := decodeBody(r, &body); err != nil || body.SeasonID == "" {
				respondBadRequest(w, "seasonId is required")
				return
			}
			cache.Save(s.Store, key, cache.Wrap(body))
			respondJSON(w, http.StatusOK, body)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) RosterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			respondBadRequest(w, "code is required")
			return
		}
		v, err := openOrFetchOnce(r.Context(), s.Controllers.Roster, code)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, v)
	}
}

// RefreshHandler is the explicit network action for every read domain.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		domain := r.URL.Query().Get("domain")
		id := r.URL.Query().Get("id")
		ctx := r.Context()

		respond := func(v any, err error) {
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, v)
		}

		switch domain {
		case club.DomainOpenMatches:
			respond(s.Controllers.Open.Refresh(ctx, s.idOrSeason(r, id)))
		case club.DomainPastMatches:
			respond(s.Controllers.Past.Refresh(ctx, s.idOrSeason(r, id)))
		case club.DomainLeaderboard:
			respond(s.Controllers.Leaderboard.Refresh(ctx, s.idOrSeason(r, id)))
		case club.DomainPlayers:
			respond(s.Controllers.Players.Refresh(ctx, ""))
		case club.DomainSeasons:
			respond(s.Controllers.Seasons.Refresh(ctx, ""))
		case club.DomainAdminMatches:
			respond(s.Controllers.Admin.Refresh(ctx, ""))
		case club.DomainMatchDetail:
			if id == "" {
				respondBadRequest(w, "id is required")
				return
			}
			respond(s.Controllers.Match.Refresh(ctx, id))
		case club.DomainRoster:
			if id == "" {
				respondBadRequest(w, "id is required")
				return
			}
			respond(s.Controllers.Roster.Refresh(ctx, id))
		default:
			respondBadRequest(w, "unknown domain")
		}
	}
}

func (s *Server) idOrSeason(r *http.Request, id string) string {
	if id != "" {
		return id
	}
	return s.seasonID(r)
}

// ProbeHandler runs the cheap freshness check for the open matches list.
func (s *Server) ProbeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome, err := s.Controllers.Open.Probe(r.Context(), s.idOrSeason(r, r.URL.Query().Get("id")))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, outcome)
	}
}

func (s *Server) SetAvailabilityHandler() http.HandlerFunc {
	type request struct {
		Code         string `json:"code"`
		Player       string `json:"player"`
		Availability string `json:"availability"`
		Note         string `json:"note"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var body request
		if err := decodeBody(r, &body); err != nil {
			respondBadRequest(w, "invalid request body")
			return
		}
		if body.Code == "" || strings.TrimSpace(body.Player) == "" {
			respondBadRequest(w, "code and player are required")
			return
		}
		choice := sheets.AvailabilityChoice(strings.ToUpper(strings.TrimSpace(body.Availability)))
		switch choice {
		case sheets.AvailabilityYes, sheets.AvailabilityNo, sheets.AvailabilityMaybe:
		default:
			respondBadRequest(w, "availability must be YES, NO or MAYBE")
			return
		}

		mutation := club.SetAvailabilityMutation(s.API, body.Code, body.Player, choice, body.Note)
		v, err := s.Controllers.Match.Mutate(r.Context(), body.Code, mutation)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, v)
	}
}

func (s *Server) RegisterPlayerHandler() http.HandlerFunc {
	type request struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var body request
		if err := decodeBody(r, &body); err != nil || strings.TrimSpace(body.Name) == "" {
			respondBadRequest(w, "name is required")
			return
		}
		if err := s.API.RegisterPlayer(r.Context(), body.Name, body.Phone); err != nil {
			respondError(w, err)
			return
		}
		s.Notifier.Success("Player registered")
		if _, err := s.Controllers.Players.Refresh(r.Context(), ""); err != nil {
			log.Warn("Player directory refresh after registration failed", "error", err)
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "registered"})
	}
}

func (s *Server) SubmitScoreHandler() http.HandlerFunc {
	type request struct {
		Code         string `json:"code"`
		Captain      string `json:"captain"`
		Team         string `json:"team"`
		ScoreFor     int    `json:"scoreFor"`
		ScoreAgainst int    `json:"scoreAgainst"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var body request
		if err := decodeBody(r, &body); err != nil {
			respondBadRequest(w, "invalid request body")
			return
		}
		if body.Code == "" || body.Captain == "" {
			respondBadRequest(w, "code and captain are required")
			return
		}
		if body.ScoreFor < 0 || body.ScoreAgainst < 0 {
			respondBadRequest(w, "scores must not be negative")
			return
		}
		team := strings.ToUpper(body.Team)
		if team == "" {
			team = s.teamForMatch(body.Code)
		}

		mutation := club.SubmitScoreMutation(s.API, body.Code, body.Captain, team, body.ScoreFor, body.ScoreAgainst)
		v, err := s.Controllers.Match.Mutate(r.Context(), body.Code, mutation)
		if err != nil {
			respondError(w, err)
			return
		}
		if err := s.Announcer.AnnounceScoreSubmitted(body.Code, team, body.ScoreFor, body.ScoreAgainst); err != nil {
			log.Warn("Score announcement failed", "code", body.Code, "error", err)
		}
		respondJSON(w, http.StatusOK, v)
	}
}

// teamForMatch derives the score's team label from the cached match type.
func (s *Server) teamForMatch(code string) string {
	detail := cache.Load[sheets.MatchDetail](s.Store, storage.Key(club.DomainMatchDetail, code))
	if detail != nil && detail.Payload.Match.Type == sheets.MatchTypeInternal {
		return string(sheets.MatchTypeInternal)
	}
	return string(sheets.MatchTypeOpponent)
}

func (s *Server) SubmitRatingsHandler() http.HandlerFunc {
	type request struct {
		Code    string          `json:"code"`
		Captain string          `json:"captain"`
		Ratings []sheets.Rating `json:"ratings"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var body request
		if err := decodeBody(r, &body); err != nil {
			respondBadRequest(w, "invalid request body")
			return
		}
		if body.Code == "" || body.Captain == "" || len(body.Ratings) == 0 {
			respondBadRequest(w, "code, captain and at least one rating are required")
			return
		}
		for _, rating := range body.Ratings {
			if rating.PlayerName == "" || rating.Rating < 1 || rating.Rating > 10 {
				respondBadRequest(w, "ratings must name a player and be between 1 and 10")
				return
			}
		}

		mutation := club.SubmitRatingsMutation(s.API, body.Code, body.Captain, body.Ratings)
		v, err := s.Controllers.Match.Mutate(r.Context(), body.Code, mutation)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, v)
	}
}

func (s *Server) AdminMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, s.Controllers.Admin.Open(r.Context(), ""))
	}
}

func (s *Server) AdminCreateHandler() http.HandlerFunc {
	type request struct {
		Title string `json:"title"`
		Date  string `json:"date"`
		Time  string `json:"time"`
		Type  string `json:"type"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var body request
		if err := decodeBody(r, &body); err != nil {
			respondBadRequest(w, "invalid request body")
			return
		}
		matchType := sheets.MatchType(strings.ToUpper(body.Type))
		if matchType != sheets.MatchTypeInternal && matchType != sheets.MatchTypeOpponent {
			respondBadRequest(w, "type must be INTERNAL or OPPONENT")
			return
		}
		if body.Title == "" || body.Date == "" || body.Time == "" {
			respondBadRequest(w, "title, date and time are required")
			return
		}

		match, err := s.API.AdminCreateMatch(r.Context(), s.Cfg.AdminKey, sheets.CreateMatchParams{
			Title: body.Title,
			Date:  body.Date,
			Time:  body.Time,
			Type:  matchType,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		s.Notifier.Success("Match created")
		if err := s.Announcer.AnnounceMatchCreated(match.Title, match.Date, match.Time, match.PublicCode); err != nil {
			log.Warn("Match announcement failed", "code", match.PublicCode, "error", err)
		}
		if _, err := s.Controllers.Admin.Refresh(r.Context(), ""); err != nil {
			log.Warn("Admin list refresh after create failed", "error", err)
		}
		respondJSON(w, http.StatusCreated, match)
	}
}

func (s *Server) AdminCloseHandler() http.HandlerFunc {
	return s.adminMutationHandler(func(matchID string) view.Mutation[club.AdminMatchList] {
		return club.CloseMatchMutation(s.API, s.Cfg.AdminKey, matchID)
	})
}

func (s *Server) AdminLockHandler() http.HandlerFunc {
	return s.adminMutationHandler(func(matchID string) view.Mutation[club.AdminMatchList] {
		return club.LockRatingsMutation(s.API, s.Cfg.AdminKey, matchID)
	})
}

func (s *Server) AdminUnlockHandler() http.HandlerFunc {
	return s.adminMutationHandler(func(matchID string) view.Mutation[club.AdminMatchList] {
		return club.UnlockMatchMutation(s.API, s.Cfg.AdminKey, matchID)
	})
}

// adminMutationHandler is the shared shape of the close/lock/unlock
// endpoints: one matchId in, one optimistic mutation against the admin
// list out.
func (s *Server) adminMutationHandler(build func(matchID string) view.Mutation[club.AdminMatchList]) http.HandlerFunc {
	type request struct {
		MatchID string `json:"matchId"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var body request
		if err := decodeBody(r, &body); err != nil || body.MatchID == "" {
			respondBadRequest(w, "matchId is required")
			return
		}
		v, err := s.Controllers.Admin.Mutate(r.Context(), "", build(body.MatchID))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, v)
	}
}

// AdminSetupHandler assigns captains, and teams for internal matches.
func (s *Server) AdminSetupHandler() http.HandlerFunc {
	type request struct {
		MatchID  string                  `json:"matchId"`
		Type     string                  `json:"type"`
		Captain  string                  `json:"captain"`
		Captain1 string                  `json:"captain1"`
		Captain2 string                  `json:"captain2"`
		Teams    []sheets.TeamAssignment `json:"teams"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var body request
		if err := decodeBody(r, &body); err != nil || body.MatchID == "" {
			respondBadRequest(w, "matchId is required")
			return
		}

		var err error
		switch sheets.MatchType(strings.ToUpper(body.Type)) {
		case sheets.MatchTypeOpponent:
			if body.Captain == "" {
				respondBadRequest(w, "captain is required")
				return
			}
			err = s.API.AdminSetupOpponent(r.Context(), s.Cfg.AdminKey, body.MatchID, body.Captain)
		case sheets.MatchTypeInternal:
			if body.Captain1 == "" || body.Captain2 == "" {
				respondBadRequest(w, "captain1 and captain2 are required")
				return
			}
			err = s.API.AdminSetupInternal(r.Context(), s.Cfg.AdminKey, sheets.SetupInternalParams{
				MatchID:  body.MatchID,
				Captain1: body.Captain1,
				Captain2: body.Captain2,
				Teams:    body.Teams,
			})
		default:
			respondBadRequest(w, "type must be INTERNAL or OPPONENT")
			return
		}
		if err != nil {
			respondError(w, err)
			return
		}
		s.Notifier.Success("Match setup saved")
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) ClearCacheHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		domain := r.URL.Query().Get("domain")
		if domain == "" {
			log.Info("Received request to clear entire cache")
			s.Store.Clear()
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Cache cleared!")
			return
		}
		id := r.URL.Query().Get("id")
		s.Store.Delete(storage.Key(domain, id))
		s.Store.Delete(storage.Key(domain+"_meta", id))
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Cleared %s from cache!", domain)
	}
}
