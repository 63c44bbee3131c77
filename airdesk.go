package airdesk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/airdesk/internal/fixtures"
	"github.com/aretw0/airdesk/internal/logging"
	"github.com/aretw0/airdesk/pkg/adapters/memory"
	"github.com/aretw0/airdesk/pkg/dialogue"
	"github.com/aretw0/airdesk/pkg/domain"
	"github.com/aretw0/airdesk/pkg/fare"
	"github.com/aretw0/airdesk/pkg/ports"
	"github.com/aretw0/airdesk/pkg/session"
)

// DefaultSessionID is used when a caller does not supply a session identifier.
const DefaultSessionID = "default_session"

// Reply is the result of one turn.
type Reply struct {
	ResponseText string          `json:"response_text"`
	Actions      []domain.Action `json:"actions"`
	// IntentLabel is set only when the turn was handed off to a human.
	IntentLabel string `json:"intent_label,omitempty"`
}

// Agent is the high-level entry point: it owns session persistence and
// per-session serialization around the dialogue state machine.
type Agent struct {
	store        ports.SessionStore
	locker       ports.DistributedLocker
	lockTTL      time.Duration
	catalog      ports.FlightCatalog
	repository   ports.BookingRepository
	normalizer   ports.LocationNormalizer
	dispatcher   ports.ActionDispatcher
	now          func() time.Time
	policy       *dialogue.Policy
	integrations *dialogue.Integrations
	schedules    map[string]fare.Schedule
	hooks        domain.LifecycleHooks
	logger       *slog.Logger
	maxInput     int

	sessions *session.Manager
	machine  *dialogue.Machine
}

// Option defines a functional option for configuring the Agent.
type Option func(*Agent)

// WithStore sets the session store (default: in-memory).
func WithStore(s ports.SessionStore) Option {
	return func(a *Agent) {
		a.store = s
	}
}

// WithLocker adds a distributed lock around every turn, for deployments
// where several processes share one store.
func WithLocker(l ports.DistributedLocker) Option {
	return func(a *Agent) {
		a.locker = l
	}
}

// WithLockTTL sets the expiry of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(a *Agent) {
		a.lockTTL = ttl
	}
}

// WithCatalog sets the flight catalog (default: embedded demo data).
func WithCatalog(c ports.FlightCatalog) Option {
	return func(a *Agent) {
		a.catalog = c
	}
}

// WithRepository sets the booking repository (default: embedded demo data).
func WithRepository(r ports.BookingRepository) Option {
	return func(a *Agent) {
		a.repository = r
	}
}

// WithNormalizer sets the location normalizer.
func WithNormalizer(n ports.LocationNormalizer) Option {
	return func(a *Agent) {
		a.normalizer = n
	}
}

// WithDispatcher delivers emitted actions after each committed turn.
func WithDispatcher(d ports.ActionDispatcher) Option {
	return func(a *Agent) {
		a.dispatcher = d
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(a *Agent) {
		a.now = now
	}
}

// WithPolicy sets the trigger tokens used for routing and confirmations.
func WithPolicy(p dialogue.Policy) Option {
	return func(a *Agent) {
		a.policy = &p
	}
}

// WithFareSchedules replaces the cancellation fee table.
func WithFareSchedules(schedules map[string]fare.Schedule) Option {
	return func(a *Agent) {
		a.schedules = schedules
	}
}

// WithIntegrations sets the email and SMS targets written into actions.
func WithIntegrations(i dialogue.Integrations) Option {
	return func(a *Agent) {
		a.integrations = &i
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *Agent) {
		a.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

// WithMaxInputSize sets the utterance size limit in bytes.
func WithMaxInputSize(n int) Option {
	return func(a *Agent) {
		a.maxInput = n
	}
}

// New initializes an Agent.
func New(opts ...Option) (*Agent, error) {
	a := &Agent{
		now:      time.Now,
		maxInput: DefaultMaxInputSize,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = logging.NewNop()
	}
	if a.store == nil {
		a.store = memory.NewStore()
	}
	if a.catalog == nil || a.repository == nil {
		ds, err := fixtures.Default(a.now())
		if err != nil {
			return nil, fmt.Errorf("failed to load default airline data: %w", err)
		}
		if a.catalog == nil {
			a.catalog = ds.Catalog()
		}
		if a.repository == nil {
			a.repository = ds.Repository()
		}
	}

	if err := dialogue.Validate(); err != nil {
		return nil, err
	}

	sessionOpts := []session.Option{session.WithLogger(a.logger)}
	if a.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(a.locker))
	}
	if a.lockTTL > 0 {
		sessionOpts = append(sessionOpts, session.WithLockTTL(a.lockTTL))
	}
	a.sessions = session.NewManager(a.store, sessionOpts...)

	machineOpts := []dialogue.Option{
		dialogue.WithClock(a.now),
		dialogue.WithLifecycleHooks(a.hooks),
		dialogue.WithLogger(a.logger),
	}
	if a.normalizer != nil {
		machineOpts = append(machineOpts, dialogue.WithNormalizer(a.normalizer))
	}
	if a.policy != nil {
		machineOpts = append(machineOpts, dialogue.WithPolicy(*a.policy))
	}
	if a.integrations != nil {
		machineOpts = append(machineOpts, dialogue.WithIntegrations(*a.integrations))
	}
	if a.schedules != nil {
		machineOpts = append(machineOpts, dialogue.WithFareSchedules(a.schedules))
	}
	a.machine = dialogue.NewMachine(a.catalog, a.repository, machineOpts...)

	return a, nil
}

// Handle processes one utterance for sessionID and returns the agent's reply.
//
// The session is read, advanced and written back under the session's lock, so
// concurrent turns for the same identifier are applied one after the other.
// An error means nothing was committed: either the input was rejected
// (see IsInputError) or a backend failed.
func (a *Agent) Handle(ctx context.Context, sessionID, utterance string) (Reply, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	clean, err := SanitizeInput(utterance, a.maxInput)
	if err != nil {
		a.logger.Warn("Rejected utterance", "session_id", sessionID, "err", err)
		return Reply{}, err
	}

	var (
		from    domain.Session
		outcome dialogue.Outcome
	)
	err = a.sessions.Update(ctx, sessionID, func(ctx context.Context, sess *domain.Session) error {
		from = *sess
		out, err := a.machine.Step(ctx, sessionID, *sess, clean)
		if err != nil {
			return err
		}
		*sess = out.Session
		outcome = out
		return nil
	})
	if err != nil {
		a.logger.Error("Turn failed", "session_id", sessionID, "err", err)
		return Reply{}, fmt.Errorf("turn for session %s: %w", sessionID, err)
	}

	a.notify(ctx, sessionID, from, outcome)

	if a.dispatcher != nil && len(outcome.Actions) > 0 {
		// The turn is already committed; a delivery failure must not undo it.
		if err := a.dispatcher.Dispatch(ctx, sessionID, outcome.Actions); err != nil {
			a.logger.Error("Failed to dispatch actions", "session_id", sessionID, "actions", len(outcome.Actions), "err", err)
		}
	}

	actions := outcome.Actions
	if actions == nil {
		actions = []domain.Action{}
	}
	return Reply{
		ResponseText: outcome.Response,
		Actions:      actions,
		IntentLabel:  outcome.IntentLabel,
	}, nil
}

func (a *Agent) notify(ctx context.Context, sessionID string, from domain.Session, out dialogue.Outcome) {
	base := domain.EventBase{Timestamp: a.now(), SessionID: sessionID}

	intent := out.Session.Intent
	if intent == domain.IntentNone {
		intent = from.Intent
	}
	if out.IntentLabel == dialogue.HandoffLabel {
		intent = domain.IntentAgentTransfer
		if a.hooks.OnHandoff != nil {
			a.hooks.OnHandoff(ctx, &base)
		}
	}

	if a.hooks.OnTurn != nil {
		a.hooks.OnTurn(ctx, &domain.TurnEvent{
			EventBase: base,
			Intent:    intent,
			FromState: from.State,
			ToState:   out.Session.State,
			Actions:   len(out.Actions),
		})
	}
}

// Session returns the stored session for sessionID. A missing session is reported as empty.
func (a *Agent) Session(ctx context.Context, sessionID string) (domain.Session, error) {
	sess, err := a.sessions.Load(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return domain.Session{}, nil
	}
	if err != nil {
		return domain.Session{}, err
	}
	return *sess, nil
}

// Reset forgets the conversation of sessionID.
func (a *Agent) Reset(ctx context.Context, sessionID string) error {
	err := a.sessions.Delete(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil
	}
	return err
}

// Sessions lists the known session identifiers.
func (a *Agent) Sessions(ctx context.Context) ([]string, error) {
	return a.sessions.List(ctx)
}
