// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics defines the Prometheus collectors for topic searches.
//
// The CLI runs as a short-lived job, so instead of serving /metrics it writes
// the registry to a node_exporter textfile after each run.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "arxiv_digest"

// Metrics groups the collectors updated by the fetcher.
type Metrics struct {
	TopicsSearched  prometheus.Counter
	PapersFound     *prometheus.CounterVec
	SearchErrors    prometheus.Counter
	PapersReturned  prometheus.Gauge
	SearchDuration  prometheus.Histogram
	LastSuccessTime prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		TopicsSearched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "topics_searched_total",
			Help:      "Number of topic queries issued to arXiv.",
		}),
		PapersFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "papers_found_total",
			Help:      "Number of new unique papers found, by topic.",
		}, []string{"topic"}),
		SearchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_errors_total",
			Help:      "Number of multi-topic searches aborted by an error.",
		}),
		PapersReturned: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "papers_returned",
			Help:      "Number of papers returned by the last successful search.",
		}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Wall time of a multi-topic search.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		LastSuccessTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful search.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.TopicsSearched, m.PapersFound, m.SearchErrors,
		m.PapersReturned, m.SearchDuration, m.LastSuccessTime,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering collector: %w", err)
		}
	}
	return m, nil
}

// WriteTextfile writes every metric gathered by g to path in the Prometheus
// text format, replacing the file atomically.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
