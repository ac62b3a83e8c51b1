package sinks

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/cybertec-postgresql/orawatch/internal/log"
	"github.com/cybertec-postgresql/orawatch/internal/planner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusWriter is a sink exposing the outcome of the last plan to the Prometheus scrapper.
type PrometheusWriter struct {
	logger    log.Logger
	ctx       context.Context
	registry  *prometheus.Registry
	Namespace string
	Addr      net.Addr
	// Textfile receives the metrics after every write when set
	Textfile string

	totalPlans      prometheus.Counter
	spotUp          *prometheus.GaugeVec
	spotFailures    *prometheus.CounterVec
	plannedQuery    *prometheus.GaugeVec
	plannedSections *prometheus.GaugeVec
}

func (promw *PrometheusWriter) Println(v ...any) {
	promw.logger.Errorln(v...)
}

// NewPrometheusWriter serves metrics at addr[/namespace], namespace defaults to orawatch
func NewPrometheusWriter(ctx context.Context, connstr string) (promw *PrometheusWriter, err error) {
	addr, namespace, found := strings.Cut(connstr, "/")
	if !found || namespace == "" {
		namespace = "orawatch"
	}
	l := log.GetLogger(ctx).WithField("sink", "prometheus").WithField("address", addr)
	promw = newPrometheusWriter(log.WithLogger(ctx, l), namespace)

	promServer := &http.Server{
		Addr: addr,
		Handler: promhttp.HandlerFor(
			promw.registry,
			promhttp.HandlerOpts{
				ErrorLog:      promw,
				ErrorHandling: promhttp.ContinueOnError,
			},
		),
	}
	ln, err := net.Listen("tcp", promServer.Addr)
	if err != nil {
		return nil, err
	}
	promw.Addr = ln.Addr()
	go func() {
		<-ctx.Done()
		_ = promServer.Close()
	}()
	go func() {
		if err := promServer.Serve(ln); err != http.ErrServerClosed {
			l.Error(err)
		}
	}()
	l.Info(`planning results sink is activated`)
	return promw, nil
}

// NewPrometheusFileWriter writes metrics to path in the node exporter textfile format
// after every plan, so they outlive the process.
func NewPrometheusFileWriter(ctx context.Context, path string) (*PrometheusWriter, error) {
	if fi, err := os.Stat(filepath.Dir(path)); err != nil {
		return nil, err
	} else if !fi.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", filepath.Dir(path))
	}
	l := log.GetLogger(ctx).WithField("sink", "promfile").WithField("path", path)
	promw := newPrometheusWriter(log.WithLogger(ctx, l), "orawatch")
	promw.Textfile = path
	l.Info(`planning results sink is activated`)
	return promw, nil
}

func newPrometheusWriter(ctx context.Context, namespace string) *PrometheusWriter {
	promw := &PrometheusWriter{
		ctx:       ctx,
		logger:    log.GetLogger(ctx),
		registry:  prometheus.NewRegistry(),
		Namespace: namespace,
		totalPlans: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plans_total",
			Help:      "Total planning runs.",
		}),
		spotUp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "spot_up",
			Help:      "1 if instances of the spot were discovered during the last plan, 0 otherwise",
		}, []string{"spot", "target"}),
		spotFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spot_failures_total",
			Help:      "Number of failed instance discoveries",
		}, []string{"spot", "target"}),
		plannedQuery: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "planned_queries",
			Help:      "Number of queries planned for an instance during the last plan",
		}, []string{"spot", "instance"}),
		plannedSections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "planned_sections",
			Help:      "Number of sections planned for an instance during the last plan",
		}, []string{"spot", "instance"}),
	}
	promw.registry.MustRegister(promw.totalPlans, promw.spotUp, promw.spotFailures, promw.plannedQuery, promw.plannedSections)
	return promw
}

func (promw *PrometheusWriter) Write(res planner.Results) error {
	if promw.ctx.Err() != nil {
		return promw.ctx.Err()
	}
	promw.totalPlans.Inc()
	promw.plannedQuery.Reset()
	promw.plannedSections.Reset()
	for _, w := range res.Works {
		promw.spotUp.WithLabelValues(w.Spot.Name, w.Spot.Target.DisplayName()).Set(1)
		for _, iw := range w.Instances {
			var queries int
			for _, item := range iw.Items {
				queries += len(item.Queries)
			}
			promw.plannedQuery.WithLabelValues(w.Spot.Name, iw.Instance.String()).Set(float64(queries))
			promw.plannedSections.WithLabelValues(w.Spot.Name, iw.Instance.String()).Set(float64(len(iw.Items)))
		}
	}
	for _, f := range res.Failures {
		labels := []string{f.Spot.Name, f.Spot.Target.DisplayName()}
		promw.spotUp.WithLabelValues(labels...).Set(0)
		promw.spotFailures.WithLabelValues(labels...).Inc()
	}
	if promw.Textfile > "" {
		return prometheus.WriteToTextfile(promw.Textfile, promw.registry)
	}
	return nil
}
