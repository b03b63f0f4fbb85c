package calculation

import (
	"errors"

	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	computationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "regimecalc_computations_total",
		Help: "Liability computations performed, by regime",
	}, []string{"regime"})

	comparisonsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "regimecalc_comparisons_total",
		Help: "Regime comparisons completed, by recommended regime",
	}, []string{"recommended"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "regimecalc_errors_total",
		Help: "Rejected requests, by error kind",
	}, []string{"kind"})
)

// errorKind maps an engine error to its metric label
func errorKind(err error) string {
	var (
		invalid  *domain.InvalidInputError
		notFound *domain.NotFoundError
		unknown  *domain.UnknownDeductionSectionError
	)
	switch {
	case errors.As(err, &invalid):
		return "invalid_input"
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &unknown):
		return "unknown_section"
	default:
		return "other"
	}
}

func recordError(err error) {
	errorsTotal.WithLabelValues(errorKind(err)).Inc()
}
