package dialogue

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/airdesk/pkg/domain"
)

// lastNameState maps each lookup flow to the state that asks for the last name.
var lastNameState = map[domain.Intent]domain.State{
	domain.IntentCheckStatus:   domain.StateAwaitingLastNameForStatus,
	domain.IntentCancelBooking: domain.StateAwaitingLastNameForCancel,
}

func askPNR(intent domain.Intent) string {
	if intent == domain.IntentCancelBooking {
		return msgAskPNRForCancel
	}
	return msgAskPNRForStatus
}

func (m *Machine) collectPNR(ctx context.Context, t *turn) error {
	if t.raw == "" {
		t.say(askPNR(t.session.Intent))
		return nil
	}
	t.session.Lookup().PNR = strings.ToUpper(t.raw)
	t.session.State = lastNameState[t.session.Intent]
	t.say(msgAskLastName)
	return nil
}

// collectLastName performs the one-shot repository lookup shared by the status
// and cancellation flows. Misses end the flow; there is no retry slot.
func (m *Machine) collectLastName(ctx context.Context, t *turn) error {
	if t.raw == "" {
		t.say(msgAskLastName)
		return nil
	}
	intent := t.session.Intent
	lookup := t.session.Lookup()
	lookup.LastName = t.raw

	booking, reason, err := m.repository.LookupBooking(ctx, lookup.PNR, lookup.LastName)
	if err != nil {
		return fmt.Errorf("booking lookup %s: %w", lookup.PNR, err)
	}

	if m.hooks.OnLookup != nil {
		m.hooks.OnLookup(ctx, &domain.LookupEvent{EventBase: m.event(t.sessionID), Intent: intent, Reason: reason})
	}
	m.logger.Debug("Booking lookup", "session_id", t.sessionID, "intent", intent, "reason", reason)

	switch {
	case reason == domain.LookupPNRNotFound:
		t.reset()
		t.say(msgPNRNotFound)
		return nil
	case reason == domain.LookupNameMismatch:
		t.reset()
		t.say(msgNameMismatch)
		return nil
	case reason != domain.LookupSuccess || booking == nil:
		return fmt.Errorf("booking lookup %s: unexpected outcome %q", lookup.PNR, reason)
	}

	if intent == domain.IntentCheckStatus {
		m.reportStatus(ctx, t, *booking)
		return nil
	}
	m.quoteCancellation(t, *booking)
	return nil
}

func (m *Machine) reportStatus(ctx context.Context, t *turn, b domain.Booking) {
	now := m.now()
	if !b.Departure.IsZero() {
		now = now.In(b.Departure.Location())
	}
	updated := now.Format("15:04 MST on 02 January")

	recipient := b.Phone
	if recipient == "" {
		recipient = "pnr:" + b.PNR
	}
	t.emit(m.action(domain.ActionSMS, recipient, map[string]string{
		"template":  "flight_status",
		"pnr":       b.PNR,
		"flight_id": b.FlightID,
		"status":    b.Status,
		"details":   b.StatusDetail,
	}))

	t.say("I found the booking.", strings.TrimSpace(b.StatusDetail), fmt.Sprintf("Last updated at %s.", updated), msgStatusSMS)

	if strings.EqualFold(b.Status, domain.BookingStatusCancelled) {
		// Chain straight into a fresh booking flow.
		t.session = domain.NewSession(domain.IntentBookFlight, domain.StateAwaitingOrigin)
		t.say(msgOfferRebooking)
		return
	}
	t.reset()
	t.say(msgAnything)
}

func (m *Machine) quoteCancellation(t *turn, b domain.Booking) {
	q := m.fares.Quote(b)
	t.session.State = domain.StateAwaitingCancelConfirmation
	t.say("I found the booking.",
		fmt.Sprintf("The fare is a %s fare. The cancellation fee is %s. Your total refund amount will be %s.",
			q.FareFamily, formatINR(q.Fee), formatINR(q.Refund)),
		msgAskCancelConfirm)
}

func (m *Machine) confirmCancellation(ctx context.Context, t *turn) error {
	if !containsAny(t.lower, m.policy.CancelAffirmative) {
		t.reset()
		t.say(msgNotCancelled, msgAnything)
		return nil
	}
	t.session.State = domain.StateAwaitingRefundChoice
	t.say(msgAskRefundMethod)
	return nil
}

// chooseRefund closes the cancellation. The quote is recomputed here rather than
// carried over from the earlier turn, because the fee tier depends on the current time.
func (m *Machine) chooseRefund(ctx context.Context, t *turn) error {
	lookup := *t.session.Lookup()
	voucher := containsAny(t.lower, m.policy.Voucher)

	booking, reason, err := m.repository.LookupBooking(ctx, lookup.PNR, lookup.LastName)
	if err != nil {
		return fmt.Errorf("booking lookup %s: %w", lookup.PNR, err)
	}

	refund := -1
	if reason == domain.LookupSuccess && booking != nil {
		q := m.fares.Quote(*booking)
		refund = q.Refund
	}

	if m.hooks.OnCancellationConfirmed != nil {
		m.hooks.OnCancellationConfirmed(ctx, &domain.ConfirmationEvent{EventBase: m.event(t.sessionID), PNR: lookup.PNR, Amount: max(refund, 0)})
	}
	m.logger.Info("Cancellation confirmed", "session_id", t.sessionID, "pnr", lookup.PNR, "voucher", voucher)

	t.reset()
	amount := "The refund"
	if refund >= 0 {
		amount = fmt.Sprintf("A refund of %s", formatINR(refund))
	}
	if voucher {
		t.say(fmt.Sprintf("Your cancellation is confirmed. %s will be issued as a travel voucher.", amount), msgAnything)
		return nil
	}
	t.say(fmt.Sprintf("Your cancellation is confirmed. %s will be processed to your original payment method.", amount), msgAnything)
	return nil
}
