// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus instrumentation for the map view.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "maptask"

// Fetch results used as label values of FetchTotal.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

type Metrics struct {
	registry *prometheus.Registry

	FetchTotal      *prometheus.CounterVec
	FetchDuration   prometheus.Histogram
	MarkersInserted *prometheus.CounterVec
	ActionsTotal    *prometheus.CounterVec
}

// New creates the metrics on a private registry, including the Go runtime collector.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		FetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "geodata_fetch_total",
				Help:      "Total number of dynamic location fetch cycles by result",
			},
			[]string{"result"},
		),
		FetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "geodata_fetch_duration_seconds",
				Help:      "Duration of dynamic location fetch cycles",
				Buckets:   prometheus.DefBuckets,
			},
		),
		MarkersInserted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "markers_inserted_total",
				Help:      "Total number of markers inserted by collection",
			},
			[]string{"collection"},
		),
		ActionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "actions_total",
				Help:      "Total number of user triggered map actions",
			},
			[]string{"action"},
		),
	}
}

// ObserveCollection registers a gauge reporting the live size of a marker collection.
func (m *Metrics) ObserveCollection(collection string, size func() int) error {
	gauge := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "markers",
			Help:        "Number of markers currently on the map by collection",
			ConstLabels: prometheus.Labels{"collection": collection},
		},
		func() float64 { return float64(size()) },
	)
	if err := m.registry.Register(gauge); err != nil {
		return fmt.Errorf("failed to register marker gauge for %s: %w", collection, err)
	}
	return nil
}

// Handler returns the HTTP handler serving the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gather flattens the current values into keys of the form name;label=value.
func (m *Metrics) Gather() (map[string]float64, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			key := family.GetName()
			for _, label := range metric.GetLabel() {
				key += fmt.Sprintf(";%s=%s", label.GetName(), label.GetValue())
			}
			switch {
			case metric.GetCounter() != nil:
				out[key] = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				out[key] = metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				out[key] = float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	return out, nil
}
