package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/airdesk/internal/logging"
	"github.com/aretw0/airdesk/pkg/domain"
	"github.com/aretw0/airdesk/pkg/fare"
	"github.com/aretw0/airdesk/pkg/location"
	"github.com/aretw0/airdesk/pkg/ports"
)

// HandoffLabel is reported to the caller when a turn is transferred to a human.
const HandoffLabel = string(domain.IntentAgentTransfer)

// Integrations names the delivery targets written into emitted actions.
type Integrations struct {
	Email string `mapstructure:"email" yaml:"email"`
	SMS   string `mapstructure:"sms" yaml:"sms"`
}

// DefaultIntegrations returns the stock integration targets.
func DefaultIntegrations() Integrations {
	return Integrations{Email: "email_gateway", SMS: "sms_gateway"}
}

// Outcome is the result of one turn.
type Outcome struct {
	Session     domain.Session
	Response    string
	Actions     []domain.Action
	IntentLabel string
}

// turn is the mutable working set of a handler.
type turn struct {
	sessionID string
	raw       string // trimmed utterance, original case
	lower     string
	session   domain.Session
	response  []string
	actions   []domain.Action
}

func (t *turn) say(parts ...string) {
	for _, p := range parts {
		if p != "" {
			t.response = append(t.response, p)
		}
	}
}

func (t *turn) emit(a domain.Action) {
	t.actions = append(t.actions, a)
}

func (t *turn) reset() {
	t.session = domain.Session{}
}

type handler func(m *Machine, ctx context.Context, t *turn) error

type transitionKey struct {
	intent domain.Intent
	state  domain.State
}

// transitions is the explicit (intent, state) -> handler table.
var transitions = map[transitionKey]handler{
	{domain.IntentBookFlight, domain.StateAwaitingOrigin}:              (*Machine).collectBookingSlot,
	{domain.IntentBookFlight, domain.StateAwaitingDestination}:         (*Machine).collectBookingSlot,
	{domain.IntentBookFlight, domain.StateAwaitingTripType}:            (*Machine).collectBookingSlot,
	{domain.IntentBookFlight, domain.StateAwaitingDepartDate}:          (*Machine).collectBookingSlot,
	{domain.IntentBookFlight, domain.StateAwaitingPaxCount}:            (*Machine).collectBookingSlot,
	{domain.IntentBookFlight, domain.StateAwaitingCabinClass}:          (*Machine).collectBookingSlot,
	{domain.IntentBookFlight, domain.StateAwaitingSSR}:                 (*Machine).collectBookingSlot,
	{domain.IntentBookFlight, domain.StateAwaitingFlightSelection}:     (*Machine).selectFlight,
	{domain.IntentBookFlight, domain.StateAwaitingPaymentConfirmation}: (*Machine).confirmPayment,

	{domain.IntentCheckStatus, domain.StateAwaitingPNRForStatus}:      (*Machine).collectPNR,
	{domain.IntentCheckStatus, domain.StateAwaitingLastNameForStatus}: (*Machine).collectLastName,

	{domain.IntentCancelBooking, domain.StateAwaitingPNRForCancel}:       (*Machine).collectPNR,
	{domain.IntentCancelBooking, domain.StateAwaitingLastNameForCancel}:  (*Machine).collectLastName,
	{domain.IntentCancelBooking, domain.StateAwaitingCancelConfirmation}: (*Machine).confirmCancellation,
	{domain.IntentCancelBooking, domain.StateAwaitingRefundChoice}:       (*Machine).chooseRefund,
}

// Machine is the dialogue state machine. It is stateless between turns:
// everything it needs arrives in the Session passed to Step.
type Machine struct {
	catalog      ports.FlightCatalog
	repository   ports.BookingRepository
	normalizer   ports.LocationNormalizer
	router       *Router
	policy       Policy
	fares        *fare.Engine
	fareOpts     []fare.Option
	now          func() time.Time
	integrations Integrations
	hooks        domain.LifecycleHooks
	logger       *slog.Logger
}

// Option configures a Machine.
type Option func(*Machine)

// WithPolicy sets the trigger tokens. Empty lists fall back to DefaultPolicy.
func WithPolicy(p Policy) Option {
	return func(m *Machine) {
		m.policy = p.WithDefaults()
	}
}

// WithNormalizer sets the location normalizer used for origin and destination.
func WithNormalizer(n ports.LocationNormalizer) Option {
	return func(m *Machine) {
		m.normalizer = n
	}
}

// WithClock overrides the time source used for fare quotes and status timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

// WithFareSchedules replaces the cancellation fee table.
func WithFareSchedules(schedules map[string]fare.Schedule) Option {
	return func(m *Machine) {
		m.fareOpts = append(m.fareOpts, fare.WithSchedules(schedules))
	}
}

// WithIntegrations sets the action targets.
func WithIntegrations(i Integrations) Option {
	return func(m *Machine) {
		if i.Email != "" {
			m.integrations.Email = i.Email
		}
		if i.SMS != "" {
			m.integrations.SMS = i.SMS
		}
	}
}

// WithLifecycleHooks registers observability hooks fired by the flows.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// NewMachine creates a Machine over the given airline systems.
func NewMachine(catalog ports.FlightCatalog, repository ports.BookingRepository, opts ...Option) *Machine {
	m := &Machine{
		catalog:      catalog,
		repository:   repository,
		normalizer:   location.New(nil),
		policy:       DefaultPolicy(),
		now:          time.Now,
		integrations: DefaultIntegrations(),
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.router = NewRouter(m.policy, m.normalizer)
	m.fares = fare.NewEngine(append([]fare.Option{fare.WithClock(m.now)}, m.fareOpts...)...)
	return m
}

// Validate checks that every state of every flow has a handler.
func Validate() error {
	for _, intent := range domain.Intents() {
		for _, state := range domain.StatesFor(intent) {
			if _, ok := transitions[transitionKey{intent, state}]; !ok {
				return fmt.Errorf("%w: %s/%s", domain.ErrNoHandler, intent, state)
			}
		}
	}
	for key := range transitions {
		if !domain.HasState(key.intent, key.state) {
			return fmt.Errorf("handler registered for unknown state %s/%s", key.intent, key.state)
		}
	}
	return nil
}

// Step advances sess by one utterance.
//
// Errors are reserved for infrastructure failures of the catalog or repository;
// unrecognized input, empty routes and lookup misses are reported in the Outcome.
func (m *Machine) Step(ctx context.Context, sessionID string, sess domain.Session, utterance string) (Outcome, error) {
	raw := strings.TrimSpace(utterance)
	t := &turn{
		sessionID: sessionID,
		raw:       raw,
		lower:     strings.ToLower(raw),
		session:   sess.Clone(),
	}

	// Global override: fires inside any flow.
	if m.policy.IsHandoff(t.lower) {
		m.logger.Info("Handing off to human agent", "session_id", sessionID, "intent", sess.Intent, "state", sess.State)
		return Outcome{
			Session:     domain.Session{},
			Response:    msgHandoff,
			IntentLabel: HandoffLabel,
		}, nil
	}

	if !t.session.IsEmpty() && !t.session.Valid() {
		m.logger.Warn("Discarding inconsistent session", "session_id", sessionID, "intent", sess.Intent, "state", sess.State)
		t.reset()
	}

	if t.session.IsEmpty() {
		if err := m.route(ctx, t); err != nil {
			return Outcome{}, err
		}
	} else {
		h, ok := transitions[transitionKey{t.session.Intent, t.session.State}]
		if !ok {
			return Outcome{}, fmt.Errorf("%w: %s/%s", domain.ErrNoHandler, t.session.Intent, t.session.State)
		}
		if err := h(m, ctx, t); err != nil {
			return Outcome{}, err
		}
	}

	return Outcome{
		Session:  t.session,
		Response: strings.Join(t.response, " "),
		Actions:  t.actions,
	}, nil
}

func (m *Machine) route(ctx context.Context, t *turn) error {
	sess, ok := m.router.Route(t.lower)
	if !ok {
		t.reset()
		t.say(msgHelp)
		return nil
	}
	t.session = sess

	switch sess.Intent {
	case domain.IntentCancelBooking:
		t.say(msgCancelIntro, msgAskPNRForCancel)
	case domain.IntentCheckStatus:
		t.say(msgStatusIntro, msgAskPNRForStatus)
	case domain.IntentBookFlight:
		return m.advanceBooking(ctx, t, msgBookingIntro+routeSummary(sess.Booking))
	}
	return nil
}

func (m *Machine) action(kind domain.ActionType, recipient string, payload map[string]string) domain.Action {
	target := m.integrations.Email
	if kind == domain.ActionSMS {
		target = m.integrations.SMS
	}
	return domain.Action{
		Type:        kind,
		Integration: target,
		Recipient:   recipient,
		Payload:     payload,
	}
}

func (m *Machine) event(sessionID string) domain.EventBase {
	return domain.EventBase{Timestamp: m.now(), SessionID: sessionID}
}
