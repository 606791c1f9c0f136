package metrics

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"agentbot/internal/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Posts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agentbot_posts_total",
		Help: "Post cycles by outcome",
	}, []string{"outcome"})
	Replies = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agentbot_replies_total",
		Help: "Mention replies by outcome",
	}, []string{"outcome"})
	MentionsSeen = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "agentbot_mentions_seen_total",
		Help: "Mentions fetched from the API",
	})
	APIRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agentbot_api_requests_total",
		Help: "X API requests by endpoint and status class",
	}, []string{"endpoint", "code"})
	APIRetries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agentbot_api_retries_total",
		Help: "Total API retry attempts",
	}, []string{"endpoint"})
	CycleDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agentbot_cycle_duration_seconds",
		Help:    "Scheduled job duration seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	QuotaUsed = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "agentbot_quota_used",
		Help: "Posts counted against today's quota",
	})
	CommandRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agentbot_command_runs_total",
		Help: "CLI command invocations",
	}, []string{"command"})
	CommandErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agentbot_command_errors_total",
		Help: "CLI command failures",
	}, []string{"command"})
)

func init() {
	prometheus.MustRegister(Posts, Replies, MentionsSeen, APIRequests, APIRetries, CycleDuration, QuotaUsed, CommandRuns, CommandErrors)
}

// StartServer starts a metrics HTTP server on addr (e.g., ":9090").
func StartServer(addr string) {
	if addr == "" {
		addr = os.Getenv("METRICS_ADDR")
	}
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("metrics_server_failed", map[string]any{"addr": addr, "error": err})
		}
	}()
}

// ObserveCycle records a job run duration.
func ObserveCycle(job string, start time.Time) {
	CycleDuration.WithLabelValues(job).Observe(time.Since(start).Seconds())
}

// ObserveAPIRequest counts a completed request; status 0 means no response.
func ObserveAPIRequest(endpoint string, status int) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status/100) + "xx"
	}
	APIRequests.WithLabelValues(endpoint, code).Inc()
}

// IncAPIRetry increments the retry counter for an endpoint.
func IncAPIRetry(endpoint string) { APIRetries.WithLabelValues(endpoint).Inc() }

func IncPost(outcome string)  { Posts.WithLabelValues(outcome).Inc() }
func IncReply(outcome string) { Replies.WithLabelValues(outcome).Inc() }

func IncCommandRun(cmd string)   { CommandRuns.WithLabelValues(cmd).Inc() }
func IncCommandError(cmd string) { CommandErrors.WithLabelValues(cmd).Inc() }
