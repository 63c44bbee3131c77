// Package dispatch provides ActionDispatcher implementations.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/airdesk/pkg/domain"
	"github.com/aretw0/airdesk/pkg/ports"
)

// Log writes every action to a structured logger. It is the default sink when
// no delivery integration is configured.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a Log dispatcher.
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

// Dispatch logs the actions and never fails.
func (l *Log) Dispatch(ctx context.Context, sessionID string, actions []domain.Action) error {
	for _, a := range actions {
		l.logger.InfoContext(ctx, "Dispatching action",
			"session_id", sessionID,
			"type", a.Type,
			"integration", a.Integration,
			"recipient", a.Recipient,
			"template", a.Payload["template"],
		)
	}
	return nil
}

// Router sends each action to the dispatcher registered for its integration,
// falling back to a default for unknown integrations.
type Router struct {
	routes   map[string]ports.ActionDispatcher
	fallback ports.ActionDispatcher
}

// NewRouter creates a Router. fallback may be nil, in which case unrouted actions are an error.
func NewRouter(fallback ports.ActionDispatcher) *Router {
	return &Router{routes: make(map[string]ports.ActionDispatcher), fallback: fallback}
}

// Handle registers d for the integration name.
func (r *Router) Handle(integration string, d ports.ActionDispatcher) *Router {
	r.routes[integration] = d
	return r
}

// Dispatch groups actions by integration, preserving their order within each group.
// Every group is attempted; failures are joined.
func (r *Router) Dispatch(ctx context.Context, sessionID string, actions []domain.Action) error {
	const fallbackKey = ""
	var (
		order  []string
		groups = make(map[string][]domain.Action)
		errs   []error
	)
	for _, a := range actions {
		key := a.Integration
		if _, ok := r.routes[key]; !ok || key == fallbackKey {
			if r.fallback == nil {
				errs = append(errs, fmt.Errorf("no dispatcher for integration %q", a.Integration))
				continue
			}
			key = fallbackKey
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], a)
	}

	for _, key := range order {
		d := r.fallback
		if key != fallbackKey {
			d = r.routes[key]
		}
		if err := d.Dispatch(ctx, sessionID, groups[key]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Delivery is one recorded Dispatch call.
type Delivery struct {
	SessionID string
	Actions   []domain.Action
}

// Recorder keeps every dispatched action in memory.
type Recorder struct {
	mu         sync.Mutex
	deliveries []Delivery
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Dispatch records the actions.
func (r *Recorder) Dispatch(ctx context.Context, sessionID string, actions []domain.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make([]domain.Action, len(actions))
	copy(copied, actions)
	r.deliveries = append(r.deliveries, Delivery{SessionID: sessionID, Actions: copied})
	return nil
}

// Deliveries returns a snapshot of what was recorded.
func (r *Recorder) Deliveries() []Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Delivery, len(r.deliveries))
	copy(out, r.deliveries)
	return out
}
