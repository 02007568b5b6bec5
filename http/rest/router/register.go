package router

import (
	"database/sql"
	"net/http"
	"net/http/pprof"

	"github.com/GGP1/pinpoint/config"
	"github.com/GGP1/pinpoint/internal/cache"
	"github.com/GGP1/pinpoint/service/venue"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type register struct {
	venue      venue.Handler
	prometheus http.Handler
	router     *Router
	config     config.Config
}

func registerEndpoints(router *Router, db *sql.DB, cache cache.Client, config config.Config) {
	venueService := venue.NewService(db, cache)

	register := &register{
		config: config,
		router: router,
		// Prometheus default metrics
		prometheus: promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
			Registry: prometheus.DefaultRegisterer,
			// The response is already compressed by the gzip middleware, avoid double compression
			DisableCompression: true,
		}),
		venue: venue.NewHandler(venueService, cache),
	}

	register.All()
}

func (r register) All() {
	r.Debug()
	r.Metrics()
	r.Venues()
	r.Others()
}

func (r register) Debug() {
	debug := r.router.group("/debug")

	debug.get("/pprof", http.HandlerFunc(pprof.Index))
	debug.get("/cmdline", http.HandlerFunc(pprof.Cmdline))
	debug.get("/profile", http.HandlerFunc(pprof.Profile))
	debug.get("/symbol", http.HandlerFunc(pprof.Symbol))
	debug.get("/trace", http.HandlerFunc(pprof.Trace))
	debug.get("/allocs", pprof.Handler("allocs"))
	debug.get("/heap", pprof.Handler("heap"))
	debug.get("/goroutine", pprof.Handler("goroutine"))
	debug.get("/mutex", pprof.Handler("mutex"))
	debug.get("/block", pprof.Handler("block"))
	debug.get("/threadcreate", pprof.Handler("threadcreate"))
}

func (r register) Metrics() {
	r.router.get("/metrics", r.prometheus)
}

func (r register) Venues() {
	venues := r.router.group("/venues/:id")

	venues.get("/", r.venue.GetByID())
	venues.delete("/delete", r.venue.Delete())
	venues.put("/update", r.venue.Update())

	providers := r.router.group("/providers/:provider")

	providers.get("/venues", r.venue.GetByProvider())
	providers.get("/venues/:provider_id", r.venue.GetByProviderID())
}

func (r register) Others() {
	r.router.get("/", home())
	// The endpoints below are here because they had conflicts with their respective groups
	r.router.post("/create/venue", r.venue.Create())
	r.router.get("/search/venues/:query", r.venue.Search())
}
