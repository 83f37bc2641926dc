package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rafaelcosta/card-bin-api/api"
	"github.com/rafaelcosta/card-bin-api/api/scheduler"
	"github.com/rafaelcosta/card-bin-api/config"
	"github.com/rafaelcosta/card-bin-api/databases"
	"github.com/rafaelcosta/card-bin-api/models"
)

// App stores the router and the injected stores, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	TokenDB   databases.TokenDatabase
	CardDB    databases.CardBinDatabase
	Scheduler *scheduler.Scheduler

	Authority *api.TokenAuthority
	Limiter   *api.RateLimiter
	Metrics   *api.Metrics
	Registry  *prometheus.Registry
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	a.Registry = prometheus.NewRegistry()
	a.Metrics = api.NewMetrics(a.Registry)
	a.Authority = api.NewTokenAuthority(a.Config.AdminSecret)
	a.Limiter = api.NewRateLimiter(a.Config.MaxRequestsPerDay)

	m := api.Middleware{Auth: a.Authority, Limiter: a.Limiter, Metrics: a.Metrics}

	t := Token{DB: a.TokenDB, Auth: a.Authority, Metrics: a.Metrics}
	ci := CardInfo{DB: a.CardDB, Metrics: a.Metrics}

	r := mux.NewRouter()

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)
	r.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{})).Methods("GET")

	r.Handle("/criar-token", http.HandlerFunc(t.CreateTokenHandler)).Methods("POST")
	r.Handle("/delete-token", http.HandlerFunc(t.DeleteTokenHandler)).Methods("POST")
	r.Handle("/cardInfo/{cardNumber}", m.Authenticate(m.RateLimit(http.HandlerFunc(ci.CardInfoHandler)))).Methods("GET")

	// brand logo assets referenced by the cardInfo response
	r.PathPrefix("/images/").Handler(http.StripPrefix("/images/", http.FileServer(http.Dir("./images/"))))
	return r
}

// Initialize is invoked by main to load the stores, fetch the BIN dataset
// and create a router
func (a *App) Initialize() error {

	a.TokenDB = databases.NewTokenDatabase(a.Config.TokenFilePath)
	if err := a.TokenDB.Load(); err != nil {
		// the in-memory map stays operative; mutations will recreate the file
		zap.S().With(err).Error("failed to load token store")
	}
	zap.S().Infow("token store loaded",
		"path", a.Config.TokenFilePath,
		"tokens", a.TokenDB.Count(),
	)

	a.CardDB = databases.NewCardBinDatabase()
	fetcher := databases.NewCardBinFetcher(a.Config.BinlistURL)

	ctx, cancel := api.WithFetchTimeout(nil)
	defer cancel()
	entries, err := fetcher.FetchAll(ctx)
	if err != nil {
		// startup is not aborted: every lookup will miss and fall back to
		// the leading-digit heuristic until the next scheduled refresh
		zap.S().With(err).Error("failed to fetch bin dataset")
	} else {
		a.CardDB.ReplaceAll(entries)
	}
	zap.S().Infow("bin dataset loaded", "entries", a.CardDB.Count())

	// initialize api router
	a.initializeRoutes()
	a.Metrics.DatasetEntries.Set(float64(a.CardDB.Count()))

	a.Scheduler = scheduler.NewScheduler(a.CardDB, fetcher, a.Limiter, a.Metrics)
	a.Scheduler.Start()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
