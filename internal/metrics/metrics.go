// Package metrics holds the Prometheus collectors of the backoffice.
package metrics

import (
	"errors"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

var (
	EntriesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_entries_created_total",
			Help:      "Journal entries created, by initial status",
		},
		[]string{"status"},
	)
	EntriesUpdated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_entries_updated_total",
			Help:      "Journal entry updates, by resulting status",
		},
		[]string{"status"},
	)
	EntriesReversed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_entries_reversed_total",
			Help:      "Posted journal entries reversed",
		},
	)
	BalanceAdjustments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_adjustments_total",
			Help:      "Account balance adjustments, by direction (apply or unapply)",
		},
		[]string{"direction"},
	)
	SkippedLines = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_skipped_lines_total",
			Help:      "Lines ignored by the ledger because their account does not exist",
		},
	)
	PostingFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posting_failures_total",
			Help:      "Failed posting engine operations, by operation and reason",
		},
		[]string{"operation", "reason"},
	)
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// FailureReason buckets an error into a low-cardinality label value.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return "validation"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, apperrors.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, apperrors.ErrIntegrity):
		return "integrity"
	}
	return "internal"
}
