// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package engine

import "github.com/prometheus/client_golang/prometheus"

// Stats exposes the context's counters on a prometheus registry an
// embedding host can scrape.
type Stats struct {
	Registry *prometheus.Registry

	SatCalls     prometheus.Counter
	LemmasAdded  prometheus.Counter
	PPIterations prometheus.Counter
	CheckSats    prometheus.Counter
	Asserts      prometheus.Counter
}

// NewStats creates and registers the counter set.
func NewStats() *Stats {
	reg := prometheus.NewRegistry()
	st := &Stats{
		Registry: reg,
		SatCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bitwuzla_sat_calls_total",
			Help: "SAT backend solve calls.",
		}),
		LemmasAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bitwuzla_theory_lemmas_total",
			Help: "Theory lemmas added to the assertion stack.",
		}),
		PPIterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bitwuzla_preprocess_rounds_total",
			Help: "Preprocessing fixed-point rounds.",
		}),
		CheckSats: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bitwuzla_check_sat_total",
			Help: "check-sat calls.",
		}),
		Asserts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bitwuzla_assertions_total",
			Help: "Asserted formulas.",
		}),
	}
	reg.MustRegister(st.SatCalls, st.LemmasAdded, st.PPIterations, st.CheckSats, st.Asserts)
	return st
}
