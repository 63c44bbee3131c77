package domain

import (
	"strings"
	"time"
)

// FlightOffer is an immutable catalog entry for a route.
type FlightOffer struct {
	FlightID   string        `json:"flight_id"`
	Departure  string        `json:"departure"` // Display string, e.g. "18:40 IST"
	Duration   time.Duration `json:"duration"`
	Layovers   int           `json:"layovers"`
	Fare       int           `json:"fare"`
	FareFamily string        `json:"fare_family"`
	Baggage    string        `json:"baggage"`
}

// RouteKey builds the uppercase ORIGIN-DEST composite used to address catalog routes.
func RouteKey(origin, destination string) string {
	return strings.ToUpper(strings.TrimSpace(origin)) + "-" + strings.ToUpper(strings.TrimSpace(destination))
}
