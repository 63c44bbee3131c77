package domain

import "time"

// BookingStatusCancelled is the status value that triggers a rebooking offer.
const BookingStatusCancelled = "Cancelled"

// Booking is a passenger name record as returned by the repository.
// Status-check bookings carry Status/StatusDetail, cancellable ones FareFamily/TotalFare.
type Booking struct {
	PNR          string    `json:"pnr"`
	LastName     string    `json:"last_name"`
	FlightID     string    `json:"flight_id"`
	Departure    time.Time `json:"departure"`
	Status       string    `json:"status,omitempty"`
	StatusDetail string    `json:"status_detail,omitempty"`
	FareFamily   string    `json:"fare_family,omitempty"`
	TotalFare    int       `json:"total_fare,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
}

// LookupReason is the outcome of a repository lookup.
type LookupReason string

const (
	LookupSuccess      LookupReason = "success"
	LookupPNRNotFound  LookupReason = "pnr_not_found"
	LookupNameMismatch LookupReason = "name_mismatch"
)

// CancellationQuote is derived on demand from a Booking and the current time.
// It is never stored in a Session.
type CancellationQuote struct {
	FareFamily string `json:"fare_family"`
	Fee        int    `json:"fee"`
	Refund     int    `json:"refund"`
}
