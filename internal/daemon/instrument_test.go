package daemon

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/desertthunder/tdx/internal/models"
)

func TestInstrument(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	d := newTestDummy(t)
	a := Instrument(d, reg)

	a.ExecuteTask(ctx, NewRetrieveTask())
	a.ExecuteTask(ctx, NewRetrieveTask())
	a.ExecuteTask(ctx, NewAddByUrlTask("", ""))
	a.ExecuteTask(ctx, NewGetStatsTask())

	t.Run("keeps adapter identity", func(t *testing.T) {
		if a.Type() != models.DaemonDummy || a.Settings().Name != "Test" {
			t.Errorf("unexpected identity %s/%s", a.Type(), a.Settings().Name)
		}
	})

	t.Run("counts outcomes", func(t *testing.T) {
		m := NewMetrics(reg)
		tests := []struct {
			method, outcome string
			want            float64
		}{
			{"Retrieve", "success", 2},
			{"AddByUrl", "failure", 1},
			{"GetStats", "failure", 1},
			{"AddByUrl", "success", 0},
		}
		for _, tt := range tests {
			got := testutil.ToFloat64(m.Tasks.WithLabelValues("dummy", tt.method, tt.outcome))
			if got != tt.want {
				t.Errorf("%s/%s: expected %v, got %v", tt.method, tt.outcome, tt.want, got)
			}
		}
	})

	t.Run("counts failure kinds", func(t *testing.T) {
		m := NewMetrics(reg)
		if got := testutil.ToFloat64(m.Failures.WithLabelValues("dummy", "AddByUrl", "ParsingFailed")); got != 1 {
			t.Errorf("expected 1 parsing failure, got %v", got)
		}
		if got := testutil.ToFloat64(m.Failures.WithLabelValues("dummy", "GetStats", "MethodUnsupported")); got != 1 {
			t.Errorf("expected 1 unsupported failure, got %v", got)
		}
	})

	t.Run("observes durations", func(t *testing.T) {
		n, err := testutil.GatherAndCount(reg, "tdx_daemon_task_duration_seconds")
		if err != nil {
			t.Fatalf("gather failed: %v", err)
		}
		if n != 3 {
			t.Errorf("expected 3 duration series, got %d", n)
		}
	})
}
