// Package metrics defines the Prometheus metrics exported on /metrics.
// All metrics are registered with the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "typespeed"

// ── Auth ─────────────────────────────────────────────────────────────────────

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "invalid_credentials"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthFailuresTotal counts requests rejected by the auth middleware.
// Label:
//   - reason: "missing_token", "invalid_token" or "unknown_user"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by authentication, by reason.",
	},
	[]string{"reason"},
)

// ── Scores ───────────────────────────────────────────────────────────────────

var ScoresRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scores_recorded_total",
		Help:      "Total number of typing-test scores recorded, by leaderboard duration in seconds (\"other\" otherwise).",
	},
	[]string{"duration"},
)

var ScoreWPM = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "score_wpm",
		Help:      "Distribution of recorded words-per-minute values.",
		Buckets:   prometheus.LinearBuckets(20, 20, 8), // 20, 40, ... 160
	},
)

// LeaderboardCacheTotal counts leaderboard cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var LeaderboardCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leaderboard_cache_total",
		Help:      "Total number of leaderboard cache lookups, by result.",
	},
	[]string{"result"},
)

// ── HTTP ─────────────────────────────────────────────────────────────────────

var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, by method, route and status code.",
	},
	[]string{"method", "route", "status"},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)
