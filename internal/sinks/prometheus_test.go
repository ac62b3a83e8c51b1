package sinks

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/cybertec-postgresql/orawatch/internal/planner"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusWriter_Write(t *testing.T) {
	a := assert.New(t)
	promw := newPrometheusWriter(ctx, "test")

	a.NoError(promw.Write(testResults()))
	a.Equal(1.0, testutil.ToFloat64(promw.totalPlans))
	a.Equal(1.0, testutil.ToFloat64(promw.spotUp.WithLabelValues("free", "FREE")))
	a.Equal(0.0, testutil.ToFloat64(promw.spotUp.WithLabelValues("legacy", "ORCL")))
	a.Equal(1.0, testutil.ToFloat64(promw.spotFailures.WithLabelValues("legacy", "ORCL")))
	a.Equal(3.0, testutil.ToFloat64(promw.plannedQuery.WithLabelValues("free", "FREE")))
	a.Equal(2.0, testutil.ToFloat64(promw.plannedSections.WithLabelValues("free", "FREE")))

	a.NoError(promw.Write(planner.Results{}))
	a.Equal(2.0, testutil.ToFloat64(promw.totalPlans))
	a.Equal(0, testutil.CollectAndCount(promw.plannedQuery), "stale instances are dropped")
	a.Equal(1.0, testutil.ToFloat64(promw.spotFailures.WithLabelValues("legacy", "ORCL")))
}

func TestPrometheusWriter_Serve(t *testing.T) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	promw, err := NewPrometheusWriter(ctx, "127.0.0.1:0/ow")
	require.NoError(t, err)
	assert.Equal(t, "ow", promw.Namespace)
	require.NoError(t, promw.Write(testResults()))

	resp, err := http.Get("http://" + promw.Addr.String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `ow_planned_queries{instance="FREE",spot="free"} 3`)
	assert.Contains(t, string(body), "ow_plans_total 1")

	cancel()
	assert.Error(t, promw.Write(testResults()))
}

func TestPrometheusWriter_DefaultNamespace(t *testing.T) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	promw, err := NewPrometheusWriter(ctx, "127.0.0.1:0")
	require.NoError(t, err)
	assert.Equal(t, "orawatch", promw.Namespace)

	_, err = NewPrometheusWriter(ctx, "256.0.0.1:bad")
	assert.Error(t, err)
}

func TestPrometheusFileWriter(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "orawatch.prom")
	promw, err := NewPrometheusFileWriter(ctx, fname)
	require.NoError(t, err)
	assert.NoFileExists(t, fname)

	require.NoError(t, promw.Write(testResults()))
	body, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Contains(t, string(body), `orawatch_planned_queries{instance="FREE",spot="free"} 3`)
	assert.Contains(t, string(body), `orawatch_spot_up{spot="legacy",target="ORCL"} 0`)

	require.NoError(t, promw.Write(planner.Results{}))
	body, err = os.ReadFile(fname)
	require.NoError(t, err)
	assert.Contains(t, string(body), "orawatch_plans_total 2")
	assert.NotContains(t, string(body), "orawatch_planned_queries{")

	_, err = NewPrometheusFileWriter(ctx, filepath.Join(fname, "nested.prom"))
	assert.Error(t, err, "parent is a file")
}
