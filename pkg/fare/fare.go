// Package fare implements the cancellation fare rules: a time-tiered fee per fare family.
package fare

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/airdesk/pkg/domain"
)

// Tier boundaries, in hours before departure. Both ends of the middle tier are inclusive.
const (
	LateBoundary  = 24 * time.Hour
	EarlyBoundary = 72 * time.Hour
)

// Schedule is the fee charged by a fare family in each time tier.
type Schedule struct {
	Early int `mapstructure:"early" yaml:"early"` // more than 72h before departure
	Mid   int `mapstructure:"mid" yaml:"mid"`     // between 24h and 72h, inclusive
	Late  int `mapstructure:"late" yaml:"late"`   // less than 24h before departure
}

// DefaultSchedules returns the fee table keyed by lowercase fare family.
// Families absent from the table forfeit the whole fare.
func DefaultSchedules() map[string]Schedule {
	return map[string]Schedule{
		"flexi": {Early: 500, Mid: 1000, Late: 2500},
		"saver": {Early: 2000, Mid: 3000, Late: 5000},
	}
}

var defaultSchedules = DefaultSchedules()

// Override adjusts a family's schedule. Nil tiers keep the base value.
type Override struct {
	Early *int `mapstructure:"early" yaml:"early"`
	Mid   *int `mapstructure:"mid" yaml:"mid"`
	Late  *int `mapstructure:"late" yaml:"late"`
}

// Merge applies overrides over base tier by tier. Families are matched
// case-insensitively; a family missing from base must set every tier.
func Merge(base map[string]Schedule, overrides map[string]Override) (map[string]Schedule, error) {
	out := make(map[string]Schedule, len(base)+len(overrides))
	for family, s := range base {
		out[strings.ToLower(family)] = s
	}

	for family, o := range overrides {
		key := strings.ToLower(strings.TrimSpace(family))
		s, known := out[key]
		if !known && (o.Early == nil || o.Mid == nil || o.Late == nil) {
			return nil, fmt.Errorf("fare family %q: new families must set early, mid and late", family)
		}
		for _, tier := range []struct {
			src *int
			dst *int
		}{{o.Early, &s.Early}, {o.Mid, &s.Mid}, {o.Late, &s.Late}} {
			if tier.src == nil {
				continue
			}
			if *tier.src < 0 {
				return nil, fmt.Errorf("fare family %q: fees must not be negative", family)
			}
			*tier.dst = *tier.src
		}
		out[key] = s
	}
	return out, nil
}

// Quote computes the cancellation fee and refund of b as of now using the default table.
func Quote(b domain.Booking, now time.Time) domain.CancellationQuote {
	return quote(defaultSchedules, b, now)
}

func quote(schedules map[string]Schedule, b domain.Booking, now time.Time) domain.CancellationQuote {
	q := domain.CancellationQuote{FareFamily: b.FareFamily}

	// Already flown: non-refundable regardless of family.
	if b.Departure.Before(now) {
		q.Fee = b.TotalFare
		return q
	}

	schedule, ok := schedules[strings.ToLower(strings.TrimSpace(b.FareFamily))]
	if !ok {
		q.Fee = b.TotalFare
		return q
	}

	untilDeparture := b.Departure.Sub(now)
	switch {
	case untilDeparture > EarlyBoundary:
		q.Fee = schedule.Early
	case untilDeparture >= LateBoundary:
		q.Fee = schedule.Mid
	default:
		q.Fee = schedule.Late
	}

	q.Refund = max(0, b.TotalFare-q.Fee)
	return q
}

// Engine re-quotes bookings against its clock. It holds no per-booking state,
// so every call reflects the current time tier.
type Engine struct {
	schedules map[string]Schedule
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithSchedules replaces the fee table. Keys are matched case-insensitively.
func WithSchedules(schedules map[string]Schedule) Option {
	return func(e *Engine) {
		e.schedules = make(map[string]Schedule, len(schedules))
		for family, s := range schedules {
			e.schedules[strings.ToLower(family)] = s
		}
	}
}

// NewEngine creates an Engine using the default table and the wall clock.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		schedules: defaultSchedules,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Quote computes the cancellation quote of b as of the engine's current time.
func (e *Engine) Quote(b domain.Booking) domain.CancellationQuote {
	return quote(e.schedules, b, e.now())
}
