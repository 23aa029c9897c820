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

type Server struct {
	Controllers    *club.Controllers
	Store          storage.Store
	API            sheets.Client
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Announcer      notifier.Announcer
	Router         *http.ServeMux
}
