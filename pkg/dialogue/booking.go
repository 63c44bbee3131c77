package dialogue

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aretw0/airdesk/pkg/domain"
)

// bookingField describes one slot-filling question of the booking flow.
type bookingField struct {
	state  domain.State
	prompt string
	slot   func(*domain.BookingSlots) *string
}

// bookingFields lists the questions asked before searching, in flow order.
var bookingFields = []bookingField{
	{domain.StateAwaitingOrigin, "Where will you be flying from?",
		func(b *domain.BookingSlots) *string { return &b.Origin }},
	{domain.StateAwaitingDestination, "And where are you flying to?",
		func(b *domain.BookingSlots) *string { return &b.Destination }},
	{domain.StateAwaitingTripType, "Is this a one-way or a round trip?",
		func(b *domain.BookingSlots) *string { return &b.TripType }},
	{domain.StateAwaitingDepartDate, "What date would you like to depart?",
		func(b *domain.BookingSlots) *string { return &b.DepartDate }},
	{domain.StateAwaitingPaxCount, "How many passengers? Please reply with a number, for example 2.",
		func(b *domain.BookingSlots) *string { return &b.Passengers }},
	{domain.StateAwaitingCabinClass, "Which cabin would you prefer: economy, premium economy or business?",
		func(b *domain.BookingSlots) *string { return &b.CabinClass }},
	{domain.StateAwaitingSSR, "Do you have any special service requests, such as wheelchair assistance or a special meal? Say 'none' if not.",
		func(b *domain.BookingSlots) *string { return &b.SSR }},
}

func fieldFor(state domain.State) (bookingField, bool) {
	for _, f := range bookingFields {
		if f.state == state {
			return f, true
		}
	}
	return bookingField{}, false
}

// nextBookingState returns the first question still unanswered,
// or "" when every slot needed for the search is filled.
func nextBookingState(b *domain.BookingSlots) domain.State {
	for _, f := range bookingFields {
		if *f.slot(b) == "" {
			return f.state
		}
	}
	return ""
}

func routeSummary(b *domain.BookingSlots) string {
	switch {
	case b.Origin != "" && b.Destination != "":
		return fmt.Sprintf(" Flying from %s to %s.", b.Origin, b.Destination)
	case b.Origin != "":
		return fmt.Sprintf(" Flying from %s.", b.Origin)
	case b.Destination != "":
		return fmt.Sprintf(" Flying to %s.", b.Destination)
	}
	return ""
}

func (m *Machine) collectBookingSlot(ctx context.Context, t *turn) error {
	field, ok := fieldFor(t.session.State)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNoHandler, t.session.State)
	}
	if t.raw == "" {
		t.say(field.prompt)
		return nil
	}

	slots := t.session.Booking
	value := t.raw
	var ack string
	switch field.state {
	case domain.StateAwaitingOrigin:
		value = m.normalizer.Normalize(t.raw)
		ack = fmt.Sprintf("Okay, flying from %s.", value)
	case domain.StateAwaitingDestination:
		value = m.normalizer.Normalize(t.raw)
		ack = fmt.Sprintf("Got it, %s to %s.", slots.Origin, value)
	case domain.StateAwaitingPaxCount:
		if n, err := strconv.Atoi(t.raw); err == nil && n > 0 {
			value = strconv.Itoa(n)
		}
	}
	*field.slot(slots) = value

	return m.advanceBooking(ctx, t, ack)
}

// advanceBooking moves to the next unanswered question, or searches the catalog
// once every question has been answered.
func (m *Machine) advanceBooking(ctx context.Context, t *turn, lead string) error {
	slots := t.session.Booking
	if next := nextBookingState(slots); next != "" {
		field, _ := fieldFor(next)
		t.session.State = next
		t.say(lead, field.prompt)
		return nil
	}
	return m.searchFlights(ctx, t, lead)
}

func (m *Machine) searchFlights(ctx context.Context, t *turn, lead string) error {
	slots := t.session.Booking
	offers, err := m.catalog.LookupFlights(ctx, slots.Origin, slots.Destination)
	if err != nil {
		return fmt.Errorf("flight search %s: %w", domain.RouteKey(slots.Origin, slots.Destination), err)
	}

	if len(offers) == 0 {
		m.logger.Debug("No flights on route", "session_id", t.sessionID, "route", domain.RouteKey(slots.Origin, slots.Destination))
		t.say(lead, fmt.Sprintf("I'm sorry, I couldn't find any flights from %s to %s.", slots.Origin, slots.Destination), msgAskDifferentRoute)
		// Regress to the route questions only; the other answers are kept.
		slots.Origin = ""
		slots.Destination = ""
		slots.Options = nil
		t.session.State = domain.StateAwaitingOrigin
		return nil
	}

	slots.Options = offers
	t.session.State = domain.StateAwaitingFlightSelection
	t.say(lead, fmt.Sprintf("I found a few options: %s.", formatOffers(offers)), msgAskFlightID)
	return nil
}

func (m *Machine) selectFlight(ctx context.Context, t *turn) error {
	slots := t.session.Booking
	if t.raw == "" {
		t.say(msgAskFlightID)
		return nil
	}

	if containsAny(t.lower, m.policy.Cheapest) {
		best, ok := cheapest(slots.Options)
		if !ok {
			return m.searchFlights(ctx, t, "")
		}
		t.say(fmt.Sprintf("The cheapest option is %s.", formatOffer(best)),
			fmt.Sprintf("Say %s to book it, or choose another flight ID.", best.FlightID))
		return nil
	}

	slots.SelectedFlightID = normalizeFlightID(t.raw)
	t.session.State = domain.StateAwaitingPaymentConfirmation
	if offer, ok := findOffer(slots.Options, slots.SelectedFlightID); ok {
		t.say(fmt.Sprintf("Great, you've selected %s, a %s fare at %s.", offer.FlightID, offer.FareFamily, formatINR(offer.Fare)), msgAskPayment)
		return nil
	}
	t.say(fmt.Sprintf("Great, you've selected %s.", slots.SelectedFlightID), msgAskPayment)
	return nil
}

func (m *Machine) confirmPayment(ctx context.Context, t *turn) error {
	slots := t.session.Booking
	if !containsAny(t.lower, m.policy.Affirmative) {
		t.reset()
		t.say(msgBookingAbandoned, msgAnything)
		return nil
	}

	pnr := DerivePNR(t.sessionID)
	payload := map[string]string{
		"template":     "booking_confirmation",
		"pnr":          pnr,
		"flight_id":    slots.SelectedFlightID,
		"origin":       slots.Origin,
		"destination":  slots.Destination,
		"trip_type":    slots.TripType,
		"depart_date":  slots.DepartDate,
		"passengers":   slots.Passengers,
		"cabin_class":  slots.CabinClass,
		"special_reqs": slots.SSR,
	}
	amount := 0
	if offer, ok := findOffer(slots.Options, slots.SelectedFlightID); ok {
		amount = offer.Fare
		payload["fare"] = strconv.Itoa(offer.Fare)
		payload["fare_family"] = offer.FareFamily
	}
	t.emit(m.action(domain.ActionEmail, "session:"+t.sessionID, payload))

	if m.hooks.OnBookingConfirmed != nil {
		m.hooks.OnBookingConfirmed(ctx, &domain.ConfirmationEvent{EventBase: m.event(t.sessionID), PNR: pnr, Amount: amount})
	}
	m.logger.Info("Booking confirmed", "session_id", t.sessionID, "pnr", pnr, "flight_id", slots.SelectedFlightID)

	t.reset()
	t.say(fmt.Sprintf("Your booking for %s is confirmed. Your PNR is %s. A confirmation will be sent to your email.", slots.SelectedFlightID, pnr), msgAnything)
	return nil
}
