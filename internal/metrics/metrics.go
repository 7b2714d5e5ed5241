// Package metrics provides Prometheus metrics for the wiki bot.
// It tracks command dispatch, confirmations, cache efficiency and wiki API calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics.
const Namespace = "wikibot"

// Command outcomes used as the "outcome" label of CommandsTotal.
const (
	OutcomeExecuted = "executed"
	OutcomeDenied   = "denied"
	OutcomeUsage    = "usage"
	OutcomeFailed   = "failed"
)

// Confirmation outcomes used as the "outcome" label of ConfirmationsTotal.
const (
	ConfirmationProposed = "proposed"
	ConfirmationResolved = "resolved"
	ConfirmationExpired  = "expired"
	ConfirmationSwept    = "swept"
)

var (
	// CommandsTotal counts dispatched commands by name and outcome
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "commands_total",
		Help:      "Total number of dispatched chat commands",
	}, []string{"command", "outcome"})

	// CommandDuration measures command execution latency
	CommandDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "command_duration_seconds",
		Help:      "Command execution latency distribution by command",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"command"})

	// ConfirmationsTotal counts confirmation lifecycle transitions
	ConfirmationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "confirmations_total",
		Help:      "Confirmation prompts by lifecycle outcome",
	}, []string{"outcome"})

	// CacheRequests counts cache lookups by cache name and result
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "cache_requests_total",
		Help:      "Cache lookups by cache and result (hit or miss)",
	}, []string{"cache", "result"})

	// WikiRequestsTotal counts MediaWiki API requests
	WikiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "wiki_requests_total",
		Help:      "MediaWiki API requests by action and status",
	}, []string{"action", "status"})

	// WikiRequestDuration measures MediaWiki API latency
	WikiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "wiki_request_duration_seconds",
		Help:      "MediaWiki API latency distribution by action",
		Buckets:   prometheus.DefBuckets,
	}, []string{"action"})

	// WikiRetries counts retried MediaWiki API requests
	WikiRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "wiki_retries_total",
		Help:      "MediaWiki API retry count by action",
	}, []string{"action"})

	// PagerTurns counts page changes on paged messages
	PagerTurns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "pager_turns_total",
		Help:      "Page changes triggered by pager reactions",
	})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in event handlers",
	}, []string{"handler"})
)

// RecordCommand records a dispatched command with its outcome and duration
func RecordCommand(command, outcome string, duration float64) {
	CommandsTotal.WithLabelValues(command, outcome).Inc()
	CommandDuration.WithLabelValues(command).Observe(duration)
}

// RecordConfirmation records a confirmation lifecycle transition
func RecordConfirmation(outcome string) {
	ConfirmationsTotal.WithLabelValues(outcome).Inc()
}

// RecordCacheAccess records a cache hit or miss for the named cache
func RecordCacheAccess(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheRequests.WithLabelValues(cache, result).Inc()
}

// RecordWikiRequest records a MediaWiki API call
func RecordWikiRequest(action string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	WikiRequestsTotal.WithLabelValues(action, status).Inc()
	WikiRequestDuration.WithLabelValues(action).Observe(duration)
}
