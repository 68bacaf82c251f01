// Package metrics exports the simulation tick loop to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/litescript/ls-astrolabe/internal/camera"
	"github.com/litescript/ls-astrolabe/internal/logging"
)

const namespace = "astrolabe"

// Collector records tick loop metrics. It satisfies sim.Recorder.
type Collector struct {
	ticksTotal      prometheus.Counter
	tickDuration    prometheus.Histogram
	unprojected     *prometheus.CounterVec
	viewTransitions *prometheus.CounterVec
	shownJD         prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewCollector creates the collectors and registers them with reg.
func NewCollector(reg *prometheus.Registry) *Collector {
	c := &Collector{
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Total simulation ticks",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Time spent in one simulation tick",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		unprojected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "labels_unprojected_total",
			Help:      "Label updates skipped because the body could not be projected",
		}, []string{"body"}),
		viewTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_transitions_total",
			Help:      "Camera view changes by target mode",
		}, []string{"mode"}),
		shownJD: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "shown_julian_day",
			Help:      "Julian day of the simulated date",
		}),
		gatherer: reg,
	}

	reg.MustRegister(c.ticksTotal, c.tickDuration, c.unprojected, c.viewTransitions, c.shownJD)
	return c
}

// TickObserved records one completed tick.
func (c *Collector) TickObserved(d time.Duration, jd float64) {
	c.ticksTotal.Inc()
	c.tickDuration.Observe(d.Seconds())
	c.shownJD.Set(jd)
}

// LabelUnprojected counts a skipped label update.
func (c *Collector) LabelUnprojected(body string) {
	c.unprojected.WithLabelValues(body).Inc()
}

// ViewChanged counts a camera transition.
func (c *Collector) ViewChanged(m camera.Mode) {
	c.viewTransitions.WithLabelValues(m.String()).Inc()
}

// Handler returns the /metrics handler for the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string, logger *logging.Logger) error {
	if logger == nil {
		logger = logging.Discard()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving metrics on %s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
