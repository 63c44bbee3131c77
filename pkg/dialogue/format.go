package dialogue

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/airdesk/pkg/domain"
)

func formatINR(amount int) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	value := strconv.Itoa(amount)
	for i := len(value) - 3; i > 0; i -= 3 {
		value = value[:i] + "," + value[i:]
	}
	if negative {
		return "-INR " + value
	}
	return "INR " + value
}

func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes <= 0 {
		return ""
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

func formatLayovers(n int) string {
	switch n {
	case 0:
		return "non-stop"
	case 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", n)
	}
}

// formatOffer renders one offer as a spoken-style sentence fragment.
func formatOffer(o domain.FlightOffer) string {
	details := []string{}
	if d := formatDuration(o.Duration); d != "" {
		details = append(details, d)
	}
	details = append(details, formatLayovers(o.Layovers))
	if o.FareFamily != "" {
		details = append(details, o.FareFamily)
	}
	if o.Baggage != "" {
		details = append(details, o.Baggage+" baggage")
	}
	return fmt.Sprintf("Flight %s departing at %s (%s) for %s",
		o.FlightID, o.Departure, strings.Join(details, ", "), formatINR(o.Fare))
}

func formatOffers(offers []domain.FlightOffer) string {
	parts := make([]string, len(offers))
	for i, o := range offers {
		parts[i] = formatOffer(o)
	}
	return strings.Join(parts, ". ")
}

// cheapest returns the minimum-fare offer; the earliest in catalog order wins ties.
func cheapest(offers []domain.FlightOffer) (domain.FlightOffer, bool) {
	if len(offers) == 0 {
		return domain.FlightOffer{}, false
	}
	best := offers[0]
	for _, o := range offers[1:] {
		if o.Fare < best.Fare {
			best = o
		}
	}
	return best, true
}

func findOffer(offers []domain.FlightOffer, flightID string) (domain.FlightOffer, bool) {
	for _, o := range offers {
		if strings.EqualFold(o.FlightID, flightID) {
			return o, true
		}
	}
	return domain.FlightOffer{}, false
}

func normalizeFlightID(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
