// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package telemetry provides EventRecorder implementations for the
// validity events emitted by the negotiation engine.
package telemetry

import (
	"strconv"
	"sync"

	"github.com/pion/negotiation"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder counts validity events in a Prometheus CounterVec, labelled
// by event name and outcome.
type Recorder struct {
	validations *prometheus.CounterVec
}

// RecorderOptions configures a Recorder.
type RecorderOptions struct {
	// Namespace prefixes every metric name. Defaults to "negotiation".
	Namespace string

	// Registerer receives the collectors. Defaults to
	// prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

// NewRecorder creates a Recorder and registers its collectors.
func NewRecorder(opts RecorderOptions) (*Recorder, error) {
	if opts.Namespace == "" {
		opts.Namespace = "negotiation"
	}
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}

	validations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: opts.Namespace,
		Name:      "validations_total",
		Help:      "Validation passes by event name and outcome.",
	}, []string{"event", "valid"})

	if err := opts.Registerer.Register(validations); err != nil {
		return nil, err
	}

	return &Recorder{validations: validations}, nil
}

// RecordValidity implements negotiation.EventRecorder.
func (r *Recorder) RecordValidity(event negotiation.Event, valid bool) {
	r.validations.WithLabelValues(string(event), strconv.FormatBool(valid)).Inc()
}

// MemoryRecorder counts validity events in memory. Useful in tests and
// for applications without a metrics pipeline.
type MemoryRecorder struct {
	mu     sync.Mutex
	counts map[negotiation.Event]map[bool]int
}

// NewMemoryRecorder creates an empty MemoryRecorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{counts: map[negotiation.Event]map[bool]int{}}
}

// RecordValidity implements negotiation.EventRecorder.
func (r *MemoryRecorder) RecordValidity(event negotiation.Event, valid bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.counts[event] == nil {
		r.counts[event] = map[bool]int{}
	}
	r.counts[event][valid]++
}

// Count returns how often the event was recorded with the given
// outcome.
func (r *MemoryRecorder) Count(event negotiation.Event, valid bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.counts[event][valid]
}
