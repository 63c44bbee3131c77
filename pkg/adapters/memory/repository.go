package memory

import (
	"context"
	"strings"

	"github.com/aretw0/airdesk/pkg/domain"
)

// Repository implements ports.BookingRepository over a fixed set of bookings.
type Repository struct {
	bookings map[string]domain.Booking
}

// NewRepository indexes bookings by uppercase PNR. Later duplicates win.
func NewRepository(bookings []domain.Booking) *Repository {
	r := &Repository{bookings: make(map[string]domain.Booking, len(bookings))}
	for _, b := range bookings {
		r.bookings[strings.ToUpper(strings.TrimSpace(b.PNR))] = b
	}
	return r
}

// LookupBooking resolves (pnr, lastName); both are compared case-insensitively.
func (r *Repository) LookupBooking(ctx context.Context, pnr, lastName string) (*domain.Booking, domain.LookupReason, error) {
	b, ok := r.bookings[strings.ToUpper(strings.TrimSpace(pnr))]
	if !ok {
		return nil, domain.LookupPNRNotFound, nil
	}
	if !strings.EqualFold(strings.TrimSpace(b.LastName), strings.TrimSpace(lastName)) {
		return nil, domain.LookupNameMismatch, nil
	}
	found := b
	return &found, domain.LookupSuccess, nil
}
