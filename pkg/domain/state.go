package domain

// Intent is the conversational goal a session is pursuing.
type Intent string

const (
	IntentNone          Intent = ""
	IntentBookFlight    Intent = "book_flight"
	IntentCheckStatus   Intent = "check_status"
	IntentCancelBooking Intent = "cancel_booking"
	IntentAgentTransfer Intent = "agent_transfer" // Terminal, never persisted
)

// State is an intent-specific position inside a flow.
type State string

// Booking flow states, in forward order.
const (
	StateAwaitingOrigin              State = "awaiting_origin"
	StateAwaitingDestination         State = "awaiting_destination"
	StateAwaitingTripType            State = "awaiting_trip_type"
	StateAwaitingDepartDate          State = "awaiting_depart_date"
	StateAwaitingPaxCount            State = "awaiting_pax_count"
	StateAwaitingCabinClass          State = "awaiting_cabin_class"
	StateAwaitingSSR                 State = "awaiting_ssr"
	StateAwaitingFlightSelection     State = "awaiting_flight_selection"
	StateAwaitingPaymentConfirmation State = "awaiting_payment_confirmation"
)

// Status flow states.
const (
	StateAwaitingPNRForStatus      State = "awaiting_pnr_for_status"
	StateAwaitingLastNameForStatus State = "awaiting_lastname_for_status"
)

// Cancellation flow states.
const (
	StateAwaitingPNRForCancel       State = "awaiting_pnr_for_cancel"
	StateAwaitingLastNameForCancel  State = "awaiting_lastname_for_cancel"
	StateAwaitingCancelConfirmation State = "awaiting_cancel_confirmation"
	StateAwaitingRefundChoice       State = "awaiting_refund_choice"
)

var transitionTable = map[Intent][]State{
	IntentBookFlight: {
		StateAwaitingOrigin,
		StateAwaitingDestination,
		StateAwaitingTripType,
		StateAwaitingDepartDate,
		StateAwaitingPaxCount,
		StateAwaitingCabinClass,
		StateAwaitingSSR,
		StateAwaitingFlightSelection,
		StateAwaitingPaymentConfirmation,
	},
	IntentCheckStatus: {
		StateAwaitingPNRForStatus,
		StateAwaitingLastNameForStatus,
	},
	IntentCancelBooking: {
		StateAwaitingPNRForCancel,
		StateAwaitingLastNameForCancel,
		StateAwaitingCancelConfirmation,
		StateAwaitingRefundChoice,
	},
}

// Intents returns the intents that own a flow, in routing priority order.
func Intents() []Intent {
	return []Intent{IntentCancelBooking, IntentCheckStatus, IntentBookFlight}
}

// StatesFor returns the ordered states of an intent's flow.
// Intents without a flow (none, agent_transfer) return nil.
func StatesFor(intent Intent) []State {
	states := transitionTable[intent]
	out := make([]State, len(states))
	copy(out, states)
	if len(out) == 0 {
		return nil
	}
	return out
}

// HasState reports whether s belongs to the flow of intent.
func HasState(intent Intent, s State) bool {
	for _, candidate := range transitionTable[intent] {
		if candidate == s {
			return true
		}
	}
	return false
}
