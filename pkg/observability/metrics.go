package observability

import (
	"context"

	"github.com/aretw0/airdesk/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by the agent hooks.
type Metrics struct {
	Turns          *prometheus.CounterVec
	Handoffs       prometheus.Counter
	Lookups        *prometheus.CounterVec
	Bookings       prometheus.Counter
	Cancellations  prometheus.Counter
	RefundedAmount prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airdesk_turns_total",
				Help: "Total number of dialogue turns, by intent and resulting state",
			},
			[]string{"intent", "state"},
		),
		Handoffs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "airdesk_handoffs_total",
			Help: "Total number of conversations transferred to a human agent",
		}),
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airdesk_booking_lookups_total",
				Help: "Total number of booking lookups, by flow and outcome",
			},
			[]string{"intent", "reason"},
		),
		Bookings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "airdesk_bookings_confirmed_total",
			Help: "Total number of confirmed bookings",
		}),
		Cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "airdesk_cancellations_confirmed_total",
			Help: "Total number of confirmed cancellations",
		}),
		RefundedAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "airdesk_refunded_inr_total",
			Help: "Sum of refunds quoted for confirmed cancellations, in INR",
		}),
	}

	for _, c := range []prometheus.Collector{m.Turns, m.Handoffs, m.Lookups, m.Bookings, m.Cancellations, m.RefundedAmount} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(_ context.Context, e *domain.TurnEvent) {
			intent := string(e.Intent)
			if intent == "" {
				intent = "none"
			}
			state := string(e.ToState)
			if state == "" {
				state = "idle"
			}
			m.Turns.WithLabelValues(intent, state).Inc()
		},
		OnHandoff: func(context.Context, *domain.EventBase) {
			m.Handoffs.Inc()
		},
		OnLookup: func(_ context.Context, e *domain.LookupEvent) {
			m.Lookups.WithLabelValues(string(e.Intent), string(e.Reason)).Inc()
		},
		OnBookingConfirmed: func(context.Context, *domain.ConfirmationEvent) {
			m.Bookings.Inc()
		},
		OnCancellationConfirmed: func(_ context.Context, e *domain.ConfirmationEvent) {
			m.Cancellations.Inc()
			m.RefundedAmount.Add(float64(e.Amount))
		},
	}
}
