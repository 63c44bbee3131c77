package domain

// BookingSlots holds the parameters collected by the booking flow.
// Origin and Destination are normalized location codes.
type BookingSlots struct {
	Origin           string        `json:"origin,omitempty"`
	Destination      string        `json:"destination,omitempty"`
	TripType         string        `json:"trip_type,omitempty"`
	DepartDate       string        `json:"depart_date,omitempty"`
	Passengers       string        `json:"passengers,omitempty"`
	CabinClass       string        `json:"cabin_class,omitempty"`
	SSR              string        `json:"ssr,omitempty"`
	Options          []FlightOffer `json:"flight_options,omitempty"`
	SelectedFlightID string        `json:"selected_flight_id,omitempty"`
}

// LookupSlots holds the booking reference collected by the status and cancellation flows.
type LookupSlots struct {
	PNR      string `json:"pnr,omitempty"`
	LastName string `json:"last_name,omitempty"`
}

// Session is the conversational snapshot of one session identifier.
//
// The slot records form a tagged union keyed by Intent: at most the record
// matching the active intent is non-nil.
type Session struct {
	Intent  Intent        `json:"intent,omitempty"`
	State   State         `json:"state,omitempty"`
	Booking *BookingSlots `json:"booking,omitempty"`
	Status  *LookupSlots  `json:"status,omitempty"`
	Cancel  *LookupSlots  `json:"cancel,omitempty"`

	// Sealed carries an encrypted snapshot written by an at-rest encryption layer.
	// A sealed session has no other fields set and is never handed to the dialogue.
	Sealed []byte `json:"sealed,omitempty"`
}

// NewSession seeds a session for intent at state with an empty slot record.
func NewSession(intent Intent, state State) Session {
	s := Session{Intent: intent, State: state}
	switch intent {
	case IntentBookFlight:
		s.Booking = &BookingSlots{}
	case IntentCheckStatus:
		s.Status = &LookupSlots{}
	case IntentCancelBooking:
		s.Cancel = &LookupSlots{}
	}
	return s
}

// IsEmpty reports whether no intent is active.
func (s Session) IsEmpty() bool {
	return s.Intent == IntentNone
}

// Valid reports whether State is drawn from the transition table of Intent
// and the populated slot record matches it. A handoff ends the conversation,
// so a stored agent_transfer session is never valid.
func (s Session) Valid() bool {
	switch s.Intent {
	case IntentNone:
		return s.State == "" && s.Booking == nil && s.Status == nil && s.Cancel == nil && s.Sealed == nil
	case IntentBookFlight:
		return HasState(s.Intent, s.State) && s.Booking != nil && s.Status == nil && s.Cancel == nil
	case IntentCheckStatus:
		return HasState(s.Intent, s.State) && s.Status != nil && s.Booking == nil && s.Cancel == nil
	case IntentCancelBooking:
		return HasState(s.Intent, s.State) && s.Cancel != nil && s.Booking == nil && s.Status == nil
	}
	return false
}

// Lookup returns the lookup record of the active status or cancellation flow.
func (s Session) Lookup() *LookupSlots {
	if s.Intent == IntentCancelBooking {
		return s.Cancel
	}
	return s.Status
}

// Clone returns a deep copy so stores never alias caller memory.
func (s Session) Clone() Session {
	out := s
	if s.Booking != nil {
		b := *s.Booking
		if s.Booking.Options != nil {
			b.Options = make([]FlightOffer, len(s.Booking.Options))
			copy(b.Options, s.Booking.Options)
		}
		out.Booking = &b
	}
	if s.Status != nil {
		st := *s.Status
		out.Status = &st
	}
	if s.Cancel != nil {
		c := *s.Cancel
		out.Cancel = &c
	}
	if s.Sealed != nil {
		out.Sealed = append([]byte(nil), s.Sealed...)
	}
	return out
}
