package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/cloudlod/types"
)

func TestPrometheusCollector_LazyRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = NewPrometheus(reg, "test")

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Empty(t, families, "nothing should be registered before first use")
}

func TestPrometheusCollector_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordClusteringRun(0.25, 7, true)
	p.RecordReseed()
	p.RecordReseed()
	p.RecordJobOutcome("ready", 0.3)
	p.RecordJobOutcome("discarded", 0.1)
	p.RecordClusterCount(17)
	p.RecordSchedulerTransition(types.SchedulerArmed, types.SchedulerActive)
	p.RecordReductionFactor(0.1)
	p.RecordDensityPass("visible", 5, 2, 0.004)
	p.RecordDensityPass("hidden", 3, 0, 0.001)

	require.InDelta(t, 2, testutil.ToFloat64(p.reseeds), 1e-9)
	require.InDelta(t, 1, testutil.ToFloat64(p.jobOutcomes.WithLabelValues("ready")), 1e-9)
	require.InDelta(t, 1, testutil.ToFloat64(p.jobOutcomes.WithLabelValues("discarded")), 1e-9)
	require.InDelta(t, 17, testutil.ToFloat64(p.clusterCount), 1e-9)
	require.InDelta(t, float64(types.SchedulerActive), testutil.ToFloat64(p.schedulerState), 1e-9)
	require.InDelta(t, 0.1, testutil.ToFloat64(p.reductionFactor), 1e-9)
	require.InDelta(t, 5, testutil.ToFloat64(p.passUpdates.WithLabelValues("visible")), 1e-9)
	require.InDelta(t, 2, testutil.ToFloat64(p.passDeferred.WithLabelValues("visible")), 1e-9)
	require.InDelta(t, 3, testutil.ToFloat64(p.passUpdates.WithLabelValues("hidden")), 1e-9)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}

func TestNewPrometheus_Defaults(t *testing.T) {
	p := NewPrometheus(nil, "")

	require.Equal(t, prometheus.DefaultRegisterer, p.reg)
	require.Equal(t, "cloudlod", p.namespace)
}
