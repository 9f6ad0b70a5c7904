package daemon

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tdx"

// Metrics holds the collectors updated by [Instrument].
type Metrics struct {
	Tasks    *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the task collectors and registers them with reg. Collectors already registered
// with reg are reused. A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Tasks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "daemon",
				Name:      "tasks_total",
				Help:      "Total number of daemon tasks executed",
			},
			[]string{"backend", "method", "outcome"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "daemon",
				Name:      "task_failures_total",
				Help:      "Total number of failed daemon tasks by failure kind",
			},
			[]string{"backend", "method", "kind"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "daemon",
				Name:      "task_duration_seconds",
				Help:      "Duration of daemon tasks in seconds",
				Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
			[]string{"backend", "method"},
		),
	}

	if reg != nil {
		m.Tasks = register(reg, m.Tasks)
		m.Failures = register(reg, m.Failures)
		m.Duration = register(reg, m.Duration)
	}
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

type instrumented struct {
	Adapter
	metrics *Metrics
}

// Instrument wraps a so every task updates the collectors registered with reg.
func Instrument(a Adapter, reg prometheus.Registerer) Adapter {
	return InstrumentWith(a, NewMetrics(reg))
}

// InstrumentWith wraps a with existing collectors.
func InstrumentWith(a Adapter, m *Metrics) Adapter {
	return &instrumented{Adapter: a, metrics: m}
}

func (i *instrumented) ExecuteTask(ctx context.Context, task Task) Result {
	start := time.Now()
	res := i.Adapter.ExecuteTask(ctx, task)
	elapsed := time.Since(start)

	backend := i.Type().String()
	method := methodOf(task)

	outcome := "success"
	if f, ok := res.(FailureResult); ok {
		outcome = "failure"
		i.metrics.Failures.WithLabelValues(backend, method, f.Err.Type.String()).Inc()
	}
	i.metrics.Tasks.WithLabelValues(backend, method, outcome).Inc()
	i.metrics.Duration.WithLabelValues(backend, method).Observe(elapsed.Seconds())
	return res
}
