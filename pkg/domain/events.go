package domain

import (
	"context"
	"time"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
}

// TurnEvent describes a completed turn.
type TurnEvent struct {
	EventBase
	Intent    Intent `json:"intent"`
	FromState State  `json:"from_state"`
	ToState   State  `json:"to_state"`
	Actions   int    `json:"actions"`
}

// LookupEvent describes a booking repository lookup performed by a flow.
type LookupEvent struct {
	EventBase
	Intent Intent       `json:"intent"`
	Reason LookupReason `json:"reason"`
}

// ConfirmationEvent describes a confirmed booking or cancellation.
type ConfirmationEvent struct {
	EventBase
	PNR    string `json:"pnr"`
	Amount int    `json:"amount"`
}

// LifecycleHooks defines callbacks for agent observability.
type LifecycleHooks struct {
	OnTurn                  func(context.Context, *TurnEvent)
	OnHandoff               func(context.Context, *EventBase)
	OnLookup                func(context.Context, *LookupEvent)
	OnBookingConfirmed      func(context.Context, *ConfirmationEvent)
	OnCancellationConfirmed func(context.Context, *ConfirmationEvent)
}
