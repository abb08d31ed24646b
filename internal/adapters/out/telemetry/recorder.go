// Package telemetry turns production notifications into Prometheus metrics.
package telemetry

import (
	"net/http"

	"production/internal/core/application/usecases/dto"
	"production/internal/core/domain/model/order"
	"production/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "production"

// Recorder implements ports.Notifier. It counts every event, observes the
// sealed OEE of finished orders and mirrors the live figures of running orders.
type Recorder struct {
	registry *prometheus.Registry

	events          *prometheus.CounterVec
	finishedOrders  prometheus.Counter
	finishedOEE     prometheus.Histogram
	finishedQuality prometheus.Histogram
	live            *prometheus.GaugeVec
	liveUnits       *prometheus.GaugeVec
}

// NewRecorder registers its collectors on a private registry.
func NewRecorder() (*Recorder, error) {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		registry: registry,
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_total",
				Help:      "Notifications published, by event name",
			},
			[]string{"event"},
		),
		finishedOrders: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orders_finished_total",
				Help:      "Orders finished with sealed metrics",
			},
		),
		finishedOEE: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "order_oee_ratio",
				Help:      "OEE of finished orders",
				Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
			},
		),
		finishedQuality: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "order_quality_ratio",
				Help:      "Quality of finished orders",
				Buckets:   prometheus.LinearBuckets(0.5, 0.05, 10),
			},
		),
		live: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "live_ratio",
				Help:      "Provisional availability, performance, quality and OEE of running orders",
			},
			[]string{"order_code", "figure"},
		),
		liveUnits: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "live_good_units",
				Help:      "Good units counted so far on running orders",
			},
			[]string{"order_code"},
		),
	}

	for _, c := range []prometheus.Collector{
		r.events, r.finishedOrders, r.finishedOEE, r.finishedQuality, r.live, r.liveUnits,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Emit records the event. Unknown payload shapes are only counted.
func (r *Recorder) Emit(event string, payload any) {
	r.events.WithLabelValues(event).Inc()

	switch event {
	case ports.EventOrderLiveMetrics:
		if view, ok := payload.(dto.LiveMetricsView); ok {
			r.observeLive(view)
		}
	case ports.EventOrderUpdated:
		view, ok := payload.(dto.OrderView)
		if !ok {
			return
		}
		if view.Metrics != nil {
			r.finishedOrders.Inc()
			r.finishedOEE.Observe(view.Metrics.OEE)
			r.finishedQuality.Observe(view.Metrics.Quality)
		}
		if view.Status == order.Finished.String() {
			r.forget(view.Code)
		}
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) observeLive(view dto.LiveMetricsView) {
	s := view.Snapshot
	r.live.WithLabelValues(view.Code, "availability").Set(s.Availability)
	r.live.WithLabelValues(view.Code, "performance").Set(s.Performance)
	r.live.WithLabelValues(view.Code, "quality").Set(s.Quality)
	r.live.WithLabelValues(view.Code, "oee").Set(s.OEE)
	r.liveUnits.WithLabelValues(view.Code).Set(float64(s.GoodUnits))
}

func (r *Recorder) forget(code string) {
	r.live.DeletePartialMatch(prometheus.Labels{"order_code": code})
	r.liveUnits.DeleteLabelValues(code)
}
