package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/aretw0/airdesk/pkg/domain"
)

// Catalog implements ports.FlightCatalog using an in-memory route table.
// It is immutable after construction.
type Catalog struct {
	routes map[string][]domain.FlightOffer
}

// NewCatalog creates a Catalog from offers keyed by route.
// Keys are normalized with domain.RouteKey, so "blr-del" and "BLR-DEL" address the same route.
func NewCatalog(routes map[string][]domain.FlightOffer) *Catalog {
	c := &Catalog{routes: make(map[string][]domain.FlightOffer, len(routes))}
	for key, offers := range routes {
		origin, dest, _ := strings.Cut(key, "-")
		copied := make([]domain.FlightOffer, len(offers))
		copy(copied, offers)
		normalized := domain.RouteKey(origin, dest)
		c.routes[normalized] = append(c.routes[normalized], copied...)
	}
	return c
}

// LookupFlights returns a copy of the offers on the route, in catalog order.
func (c *Catalog) LookupFlights(ctx context.Context, originCode, destCode string) ([]domain.FlightOffer, error) {
	offers := c.routes[domain.RouteKey(originCode, destCode)]
	out := make([]domain.FlightOffer, len(offers))
	copy(out, offers)
	return out, nil
}

// Routes returns all route keys in deterministic order.
func (c *Catalog) Routes() []string {
	keys := make([]string, 0, len(c.routes))
	for k := range c.routes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

