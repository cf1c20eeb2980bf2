package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once                           sync.Once
	registerOnce                   sync.Once
	metricsRouter                  *chi.Mux
	stakingClientLatency           *prometheus.HistogramVec
	clientRequestDurationHistogram *prometheus.HistogramVec
	pollerDurationHistogram        *prometheus.HistogramVec
	httpRequestDurationHistogram   *prometheus.HistogramVec
	mutationCounter                *prometheus.CounterVec
	cacheLookupCounter             *prometheus.CounterVec
	claimsDegradedCounter          prometheus.Counter
	totalStakedGauge               prometheus.Gauge
)

// Init initializes the metrics package and starts the metrics server.
func Init(host string, metricsPort int) {
	once.Do(func() {
		initMetricsRouter(host, metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(host string, metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf("%s:%d", host, metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
// It is safe to call more than once; tests call it without starting a server.
func registerMetrics() {
	registerOnce.Do(func() {
		defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60}

		// client requests are the ones sending to other service
		clientRequestDurationHistogram = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "client_request_duration_seconds",
				Help:    "Histogram of outgoing client request durations in seconds.",
				Buckets: defaultHistogramBucketsSeconds,
			},
			[]string{"baseurl", "method", "path", "status"},
		)

		stakingClientLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "staking_client_latency_seconds",
				Help:    "Histogram of staking contract client durations in seconds.",
				Buckets: defaultHistogramBucketsSeconds,
			},
			[]string{"method", "status"},
		)

		pollerDurationHistogram = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "poller_duration_seconds",
				Help:    "Histogram of poller durations in seconds.",
				Buckets: defaultHistogramBucketsSeconds,
			},
			[]string{"type", "status"},
		)

		httpRequestDurationHistogram = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of API request durations in seconds.",
				Buckets: defaultHistogramBucketsSeconds,
			},
			[]string{"route", "method", "status"},
		)

		mutationCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "staking_mutation_count",
				Help: "Staking mutations by kind and resolution (committed or rolled_back)",
			},
			[]string{"kind", "resolution"},
		)

		cacheLookupCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "query_cache_lookup_count",
				Help: "Query cache lookups by namespace and result (hit, miss, stale)",
			},
			[]string{"namespace", "result"},
		)

		claimsDegradedCounter = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "claims_fetch_degraded_count",
				Help: "Number of times the merkle claims blob could not be loaded",
			},
		)

		totalStakedGauge = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "staking_total_staked",
				Help: "Last total staked value read from the staking manager",
			},
		)

		prometheus.MustRegister(
			clientRequestDurationHistogram,
			stakingClientLatency,
			pollerDurationHistogram,
			httpRequestDurationHistogram,
			mutationCounter,
			cacheLookupCounter,
			claimsDegradedCounter,
			totalStakedGauge,
		)
	})
}

func status(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

func RecordStakingClientLatency(d time.Duration, method string, failure bool) {
	registerMetrics()
	stakingClientLatency.WithLabelValues(method, status(failure).String()).Observe(d.Seconds())
}

func RecordHTTPRequestDuration(d time.Duration, route, method string, statusCode int) {
	registerMetrics()
	httpRequestDurationHistogram.WithLabelValues(route, method, strconv.Itoa(statusCode)).Observe(d.Seconds())
}

// Mutation resolutions.
const (
	MutationCommitted   = "committed"
	MutationRolledBack  = "rolled_back"
	MutationUnconfirmed = "unconfirmed"
)

func RecordMutation(kind, resolution string) {
	registerMetrics()
	mutationCounter.WithLabelValues(kind, resolution).Inc()
}

func RecordCacheLookup(namespace, result string) {
	registerMetrics()
	cacheLookupCounter.WithLabelValues(namespace, result).Inc()
}

func IncClaimsDegraded() {
	registerMetrics()
	claimsDegradedCounter.Inc()
}

func RecordTotalStaked(v float64) {
	registerMetrics()
	totalStakedGauge.Set(v)
}

// RecordPollerDuration wraps a poll method so that every run is timed.
func RecordPollerDuration(pollerType string, f func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		registerMetrics()
		startTime := time.Now()
		err := f(ctx)
		pollerDurationHistogram.WithLabelValues(pollerType, status(err != nil).String()).
			Observe(time.Since(startTime).Seconds())
		return err
	}
}

// StartClientRequestDurationTimer starts a timer to measure outgoing client request duration.
func StartClientRequestDurationTimer(baseUrl, method, path string) func(statusCode int) {
	registerMetrics()
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		clientRequestDurationHistogram.WithLabelValues(
			baseUrl,
			method,
			path,
			fmt.Sprintf("%d", statusCode),
		).Observe(duration)
	}
}
