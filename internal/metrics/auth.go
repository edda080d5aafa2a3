package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "appointments"

// Auth holds authentication and authorization counters. A nil *Auth is
// valid and records nothing.
type Auth struct {
	logins          *prometheus.CounterVec
	registrations   *prometheus.CounterVec
	tokenRejections *prometheus.CounterVec
	decisions       *prometheus.CounterVec
}

// NewAuth creates the counters and registers them with registerer.
// A nil registerer falls back to prometheus.DefaultRegisterer.
func NewAuth(registerer prometheus.Registerer) *Auth {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Auth{
		logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "logins_total",
				Help:      "Total number of login attempts",
			},
			[]string{"outcome"},
		),
		registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "registrations_total",
				Help:      "Total number of registration attempts",
			},
			[]string{"outcome"},
		),
		tokenRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "token_rejections_total",
				Help:      "Total number of rejected bearer tokens",
			},
			[]string{"reason"},
		),
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "decisions_total",
				Help:      "Total number of role gate decisions",
			},
			[]string{"decision"},
		),
	}

	registerer.MustRegister(m.logins, m.registrations, m.tokenRejections, m.decisions)
	return m
}

func (m *Auth) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

func (m *Auth) RecordRegistration(outcome string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(outcome).Inc()
}

func (m *Auth) RecordTokenRejection(reason string) {
	if m == nil {
		return
	}
	m.tokenRejections.WithLabelValues(reason).Inc()
}

func (m *Auth) RecordDecision(decision string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(decision).Inc()
}

func (m *Auth) Logins() *prometheus.CounterVec          { return m.logins }
func (m *Auth) Registrations() *prometheus.CounterVec   { return m.registrations }
func (m *Auth) TokenRejections() *prometheus.CounterVec { return m.tokenRejections }
func (m *Auth) Decisions() *prometheus.CounterVec       { return m.decisions }
