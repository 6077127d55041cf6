package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wallet_ledger",
			Name:      "commands_total",
			Help:      "Wallet commands handled, by command and outcome.",
		},
		[]string{"command", "outcome"}, // outcome: ok, duplicate, rejected, conflict, error
	)

	commandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wallet_ledger",
			Name:      "command_duration_seconds",
			Help:      "Duration of wallet command handling.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"command"},
	)

	conflictRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wallet_ledger",
			Name:      "concurrency_retries_total",
			Help:      "Reload-and-retry rounds caused by concurrency conflicts.",
		},
		[]string{"command"},
	)

	transferCompensationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wallet_ledger",
			Name:      "transfer_compensations_total",
			Help:      "Transfers whose debit leg was reversed.",
		},
		[]string{"outcome"}, // compensated, failed
	)

	snapshotsWrittenTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wallet_ledger",
			Name:      "snapshots_written_total",
			Help:      "Aggregate snapshots written.",
		},
	)

	outboxPublishedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wallet_ledger",
			Name:      "outbox_published_total",
			Help:      "Outbox entries published and marked.",
		},
	)

	outboxFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wallet_ledger",
			Name:      "outbox_publish_failures_total",
			Help:      "Outbox batches that failed to publish.",
		},
	)

	outboxBacklog = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "wallet_ledger",
			Name:      "outbox_backlog",
			Help:      "Unpublished outbox entries at the last poll.",
		},
	)

	projectionEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wallet_ledger",
			Name:      "projection_events_total",
			Help:      "Events seen by the projector, by event type and outcome.",
		},
		[]string{"event_type", "outcome"}, // outcome: applied, duplicate, skipped, parked, error
	)

	projectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "wallet_ledger",
			Name:      "projection_duration_seconds",
			Help:      "Duration of projecting one event into both read stores.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)
