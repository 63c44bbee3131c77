package ports

import (
	"context"

	"github.com/aretw0/airdesk/pkg/domain"
)

// FlightCatalog returns the offers available on a route.
type FlightCatalog interface {
	// LookupFlights returns the offers for the ORIGIN-DEST route in catalog order.
	// An unknown route yields an empty slice, not an error. Callers own the returned slice.
	LookupFlights(ctx context.Context, originCode, destCode string) ([]domain.FlightOffer, error)
}

// BookingRepository resolves bookings by reference and passenger name.
type BookingRepository interface {
	// LookupBooking returns the booking addressed by (pnr, lastName).
	// Misses are reported through the reason, with a nil booking and nil error.
	LookupBooking(ctx context.Context, pnr, lastName string) (*domain.Booking, domain.LookupReason, error)
}

// LocationNormalizer maps free-text place names to route codes.
type LocationNormalizer interface {
	Normalize(text string) string
}
