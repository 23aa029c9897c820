package http

import (
	"net/http"

	"github.com/mlfc/matchday/internal/club"
	"github.com/mlfc/matchday/internal/config"
	"github.com/mlfc/matchday/internal/metrics"
	"github.com/mlfc/matchday/internal/notifier"
	"github.com/mlfc/matchday/internal/sheets"
	"github.com/mlfc/matchday/internal/storage"
)

func NewServer(controllers *club.Controllers, store storage.Store, api sheets.Client, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, n notifier.Notifier, announcer notifier.Announcer) *Server {
	server := &Server{
		Controllers:    controllers,
		Store:          store,
		API:            api,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       n,
		Announcer:      announcer,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an
	// authentication middleware.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	// Cache-first reads. These never hit the network; /refresh, /probe and
	// /matches/past?loadMore=true are the explicit network actions.
	s.Router.Handle("/matches/open", Chain(s.OpenMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/matches/past", Chain(s.PastMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/match", Chain(s.MatchHandler(), paramsMiddleware))
	s.Router.Handle("/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.PlayersHandler(), paramsMiddleware))
	s.Router.Handle("/seasons", Chain(s.SeasonsHandler(), paramsMiddleware))
	s.Router.Handle("/season", Chain(s.SelectSeasonHandler(), paramsMiddleware))
	s.Router.Handle("/roster", Chain(s.RosterHandler(), paramsMiddleware))
	s.Router.Handle("/refresh", Chain(s.RefreshHandler(), paramsMiddleware))
	s.Router.Handle("/probe", Chain(s.ProbeHandler(), paramsMiddleware))

	// Writes.
	s.Router.Handle("/availability", Chain(s.SetAvailabilityHandler(), paramsMiddleware))
	s.Router.Handle("/register", Chain(s.RegisterPlayerHandler(), paramsMiddleware))
	s.Router.Handle("/captain/score", Chain(s.SubmitScoreHandler(), paramsMiddleware))
	s.Router.Handle("/captain/ratings", Chain(s.SubmitRatingsHandler(), paramsMiddleware))

	// Admin panel.
	s.Router.Handle("/admin/matches", Chain(s.AdminMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/admin/create", Chain(s.AdminCreateHandler(), paramsMiddleware))
	s.Router.Handle("/admin/close", Chain(s.AdminCloseHandler(), paramsMiddleware))
	s.Router.Handle("/admin/lock", Chain(s.AdminLockHandler(), paramsMiddleware))
	s.Router.Handle("/admin/unlock", Chain(s.AdminUnlockHandler(), paramsMiddleware))
	s.Router.Handle("/admin/setup", Chain(s.AdminSetupHandler(), paramsMiddleware))

	s.Router.Handle("/cache/clear", Chain(s.ClearCacheHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
