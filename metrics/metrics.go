// Package metrics holds the prometheus collectors of the scrapers, the
// refresh pipeline, and the web api.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "scoutlens"

	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	ScrapeRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrape_requests_total",
			Help:      "Requests made to the data sources, by outcome",
		},
		[]string{"source", "outcome"},
	)

	ScrapeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scrape_request_duration_seconds",
			Help:      "Time spent on a data source request, including retries",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"source"},
	)

	RefreshRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_runs_total",
			Help:      "Refreshes of the player data, by outcome",
		},
		[]string{"source", "outcome"},
	)

	PlayersValued = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "players_valued",
			Help:      "Players in the last successful refresh",
		},
		[]string{"source"},
	)

	LastRefresh = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_refresh_timestamp_seconds",
			Help:      "Unix time of the last successful refresh",
		},
		[]string{"source"},
	)

	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_rate_limited_total",
			Help:      "API requests rejected by the rate limiter",
		},
	)

	RumorsImported = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rumors_imported_total",
			Help:      "Rumors added from news feeds",
		},
	)
)

func init() {
	prometheus.MustRegister(ScrapeRequests, ScrapeDuration)
	prometheus.MustRegister(RefreshRuns, PlayersValued, LastRefresh)
	prometheus.MustRegister(RateLimited, RumorsImported)
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}

// CountScrape records the outcome of a data source request.
func CountScrape(source string, err error) {
	ScrapeRequests.WithLabelValues(source, outcome(err)).Inc()
}

// ObserveScrape records the outcome and duration of a data source request.
func ObserveScrape(source string, d time.Duration, err error) {
	CountScrape(source, err)
	ScrapeDuration.WithLabelValues(source).Observe(d.Seconds())
}

// ObserveRefresh records a refresh. The player gauges only move on success.
func ObserveRefresh(source string, players int, at time.Time, err error) {
	RefreshRuns.WithLabelValues(source, outcome(err)).Inc()
	if err != nil {
		return
	}
	PlayersValued.WithLabelValues(source).Set(float64(players))
	LastRefresh.WithLabelValues(source).Set(float64(at.Unix()))
}

func Handler() http.Handler {
	return promhttp.Handler()
}
