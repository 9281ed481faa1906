package celest

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	conversionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "celest_conversions_total",
			Help: "Total number of state conversions.",
		},
		[]string{"direction", "family"},
	)

	solverIterations = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "celest_anomaly_solver_iterations",
			Help:    "Iterations used to invert the mean anomaly.",
			Buckets: prometheus.LinearBuckets(0, 2, 10),
		},
		[]string{"family"},
	)

	solverFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "celest_anomaly_solver_failures_total",
			Help: "Total number of mean anomaly inversions which did not converge.",
		},
		[]string{"family"},
	)

	trajectoryEvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "celest_trajectory_evaluations_total",
			Help: "Total number of discrete trajectory evaluations.",
		},
		[]string{"result"},
	)
)

const (
	toKepler    = "cartesian2kepler"
	toKepler2D  = "cartesian2kepler2d"
	toCartesian = "kepler2cartesian"
)

func init() {
	prometheus.MustRegister(conversionsTotal)
	prometheus.MustRegister(solverIterations)
	prometheus.MustRegister(solverFailuresTotal)
	prometheus.MustRegister(trajectoryEvaluationsTotal)
}

// MetricsHandler returns the Prometheus metrics HTTP handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

func observeConversion(direction string, f OrbitFamily) {
	conversionsTotal.WithLabelValues(direction, f.String()).Inc()
}

func observeSolve(f OrbitFamily, iterations int, err error) {
	if err != nil {
		solverFailuresTotal.WithLabelValues(f.String()).Inc()
		return
	}
	solverIterations.WithLabelValues(f.String()).Observe(float64(iterations))
}

func observeEvaluation(held bool, err error) {
	switch {
	case err != nil:
		trajectoryEvaluationsTotal.WithLabelValues("before_first").Inc()
	case held:
		trajectoryEvaluationsTotal.WithLabelValues("hold_forward").Inc()
	default:
		trajectoryEvaluationsTotal.WithLabelValues("ok").Inc()
	}
}
