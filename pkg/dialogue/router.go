package dialogue

import (
	"strings"
	"unicode"

	"github.com/aretw0/airdesk/pkg/domain"
	"github.com/aretw0/airdesk/pkg/ports"
)

// Router classifies the first utterance of a conversation into an intent.
type Router struct {
	policy     Policy
	normalizer ports.LocationNormalizer
}

// NewRouter creates a Router.
func NewRouter(policy Policy, normalizer ports.LocationNormalizer) *Router {
	return &Router{policy: policy, normalizer: normalizer}
}

// Route selects an intent for text and seeds the session it starts with.
// Cancellation keywords win over status keywords, which win over booking keywords.
// ok is false when nothing matched; the returned session is then empty.
//
// Booking sessions are pre-filled from "from <city>" and "to <city>" phrases and
// start at the first booking question still unanswered.
func (r *Router) Route(text string) (sess domain.Session, ok bool) {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, r.policy.CancelKeywords):
		return domain.NewSession(domain.IntentCancelBooking, domain.StateAwaitingPNRForCancel), true
	case containsAny(lower, r.policy.StatusKeywords):
		return domain.NewSession(domain.IntentCheckStatus, domain.StateAwaitingPNRForStatus), true
	case containsAny(lower, r.policy.BookingKeywords):
		sess = domain.NewSession(domain.IntentBookFlight, domain.StateAwaitingOrigin)
		if origin, found := r.placeAfter(lower, "from"); found {
			sess.Booking.Origin = origin
		}
		if dest, found := r.placeAfter(lower, "to"); found {
			sess.Booking.Destination = dest
		}
		sess.State = nextBookingState(sess.Booking)
		return sess, true
	}
	return domain.Session{}, false
}

// placeAfter resolves the place named after an occurrence of marker.
// A two-word name the normalizer knows ("new delhi") wins over its first word.
// A missing word, or one that is a stopword ("to book"), does not match.
func (r *Router) placeAfter(text, marker string) (string, bool) {
	words := strings.Fields(text)
	for i := 0; i+1 < len(words); i++ {
		if trimPunct(words[i]) != marker {
			continue
		}
		next := trimPunct(words[i+1])
		if next == "" || isStopword(next, r.policy.ExtractionStopwords) {
			continue
		}
		if i+2 < len(words) {
			pair := next + " " + trimPunct(words[i+2])
			if code := r.normalizer.Normalize(pair); code != strings.ToUpper(pair) {
				return code, true
			}
		}
		return r.normalizer.Normalize(next), true
	}
	return "", false
}

func trimPunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}
