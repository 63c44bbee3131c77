package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/airdesk/pkg/domain"
)

// LogHooks returns hooks that write every lifecycle event to logger.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(ctx context.Context, e *domain.TurnEvent) {
			logger.DebugContext(ctx, "turn",
				"session_id", e.SessionID,
				"intent", e.Intent,
				"from", e.FromState,
				"to", e.ToState,
				"actions", e.Actions,
			)
		},
		OnHandoff: func(ctx context.Context, e *domain.EventBase) {
			logger.InfoContext(ctx, "handoff", "session_id", e.SessionID)
		},
		OnLookup: func(ctx context.Context, e *domain.LookupEvent) {
			logger.InfoContext(ctx, "booking_lookup", "session_id", e.SessionID, "intent", e.Intent, "reason", e.Reason)
		},
		OnBookingConfirmed: func(ctx context.Context, e *domain.ConfirmationEvent) {
			logger.InfoContext(ctx, "booking_confirmed", "session_id", e.SessionID, "pnr", e.PNR, "amount", e.Amount)
		},
		OnCancellationConfirmed: func(ctx context.Context, e *domain.ConfirmationEvent) {
			logger.InfoContext(ctx, "cancellation_confirmed", "session_id", e.SessionID, "pnr", e.PNR, "refund", e.Amount)
		},
	}
}

// Combine returns hooks that call each of hooks in order. Nil callbacks are skipped.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range hooks {
		h := h
		if h.OnTurn != nil {
			prev := out.OnTurn
			out.OnTurn = func(ctx context.Context, e *domain.TurnEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnTurn(ctx, e)
			}
		}
		if h.OnHandoff != nil {
			prev := out.OnHandoff
			out.OnHandoff = func(ctx context.Context, e *domain.EventBase) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnHandoff(ctx, e)
			}
		}
		if h.OnLookup != nil {
			prev := out.OnLookup
			out.OnLookup = func(ctx context.Context, e *domain.LookupEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnLookup(ctx, e)
			}
		}
		if h.OnBookingConfirmed != nil {
			prev := out.OnBookingConfirmed
			out.OnBookingConfirmed = func(ctx context.Context, e *domain.ConfirmationEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnBookingConfirmed(ctx, e)
			}
		}
		if h.OnCancellationConfirmed != nil {
			prev := out.OnCancellationConfirmed
			out.OnCancellationConfirmed = func(ctx context.Context, e *domain.ConfirmationEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnCancellationConfirmed(ctx, e)
			}
		}
	}
	return out
}
