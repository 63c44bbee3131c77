/*
Package domain contains the core domain models of the airdesk agent.

It defines the conversational entities (Intent, State, Session and its slot records),
the airline records the dialogue consults (FlightOffer, Booking, CancellationQuote)
and the side-effect descriptors it emits (Action). This package is kept pure and free
of external dependencies like I/O or persistence.

# Key Entities

  - Session: the per-conversation snapshot (active intent, state label, collected slots).
  - FlightOffer: an immutable catalog offer for an ORIGIN-DEST route.
  - Booking: an immutable record addressed by (PNR, last name).
  - Action: an email/SMS request the host is expected to deliver.
*/
package domain
