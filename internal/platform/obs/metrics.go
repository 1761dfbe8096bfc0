package obs

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records allocation engine activity in Prometheus collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	solveAttempts *prometheus.CounterVec
	solveDuration prometheus.Histogram
	outcomes      *prometheus.CounterVec
	poolSize      prometheus.Gauge
}

// NewMetrics registers the engine collectors on reg, or the default
// registerer when reg is nil. Already registered collectors are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dock_solve_attempts_total",
		Help: "Route solver invocations by vehicle count and result.",
	}, []string{"vehicles", "result"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dock_solve_duration_seconds",
		Help:    "Wall time of single route solver invocations.",
		Buckets: prometheus.DefBuckets,
	})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dock_allocations_total",
		Help: "Recorded company outcomes.",
	}, []string{"outcome"})
	pool := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dock_window_pool_size",
		Help: "Windows currently available in the pool.",
	})

	var err error
	if attempts, err = register(reg, attempts); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if outcomes, err = register(reg, outcomes); err != nil {
		return nil, err
	}
	if pool, err = register(reg, pool); err != nil {
		return nil, err
	}

	return &Metrics{solveAttempts: attempts, solveDuration: duration, outcomes: outcomes, poolSize: pool}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *Metrics) ObserveSolve(vehicles int, feasible bool, d time.Duration) {
	if m == nil {
		return
	}
	result := "infeasible"
	if feasible {
		result = "feasible"
	}
	m.solveAttempts.WithLabelValues(strconv.Itoa(vehicles), result).Inc()
	m.solveDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveOutcome(outcome string) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SetPoolSize(n int) {
	if m == nil {
		return
	}
	m.poolSize.Set(float64(n))
}
