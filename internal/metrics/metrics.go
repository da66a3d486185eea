// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package metrics counts overload installs and dispatches with Prometheus.
// A nil *Collector is valid and records nothing.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Dispatch outcomes.
const (
	Matched = "matched"
	NoMatch = "no_match"
)

// Collector holds the overload counters.
type Collector struct {
	definitions *prometheus.CounterVec
	dispatches  *prometheus.CounterVec
}

// NewCollector creates the counters and registers them with reg. A nil reg
// leaves them unregistered.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		definitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "overload",
			Name:      "definitions_installed_total",
			Help:      "Overload definitions installed, by class.",
		}, []string{"class"}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "overload",
			Name:      "dispatches_total",
			Help:      "Dispatcher calls, by class, method and outcome.",
		}, []string{"class", "method", "outcome"}),
	}
	if reg != nil {
		for _, col := range []prometheus.Collector{c.definitions, c.dispatches} {
			if err := reg.Register(col); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// Installed records n definitions installed on class.
func (c *Collector) Installed(class string, n int) {
	if c == nil {
		return
	}
	c.definitions.WithLabelValues(class).Add(float64(n))
}

// Dispatched records one dispatcher call and its outcome.
func (c *Collector) Dispatched(class, method, outcome string) {
	if c == nil {
		return
	}
	c.dispatches.WithLabelValues(class, method, outcome).Inc()
}
