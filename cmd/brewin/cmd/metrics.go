package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"
)

// These mirror the counter/histogram pairing kube-state-metrics wires for
// its collection loop (pkg/app), adapted from "collect a cluster" to "run
// one program": a run counter split by outcome, and a duration histogram.
var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brewin_runs_total",
		Help: "Total number of program runs, partitioned by outcome.",
	}, []string{"outcome"})

	faultsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brewin_faults_total",
		Help: "Total number of runs that ended in an error (parse failure, uncaught exception, or fault).",
	})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "brewin_run_duration_seconds",
		Help:    "Wall-clock duration of a single program run.",
		Buckets: prometheus.DefBuckets,
	})
)

// maybeServeMetrics starts a Prometheus HTTP listener when addr is
// non-empty, returning a shutdown func that is always safe to call and to
// defer unconditionally.
func maybeServeMetrics(addr string) func() {
	if addr == "" {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			klog.Errorf("metrics server on %s stopped: %v", addr, err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}

// timedRun executes fn once, recording its duration and outcome in the
// metrics above, and returns fn's error unchanged.
func timedRun(fn func() error) error {
	start := time.Now()
	err := fn()
	runDuration.Observe(time.Since(start).Seconds())

	if err == nil {
		runsTotal.WithLabelValues("success").Inc()
		return nil
	}
	runsTotal.WithLabelValues("error").Inc()
	faultsTotal.Inc()
	return err
}
