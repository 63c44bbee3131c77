// Package fixtures loads flight offers and bookings for the in-memory airline systems.
package fixtures

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/aretw0/airdesk/pkg/adapters/memory"
	"github.com/aretw0/airdesk/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultData []byte

// Offer is one catalog entry as written in a fixture file.
type Offer struct {
	FlightID   string        `mapstructure:"flight_id"`
	Departure  string        `mapstructure:"departure"`
	Duration   time.Duration `mapstructure:"duration"`
	Layovers   int           `mapstructure:"layovers"`
	Fare       int           `mapstructure:"fare"`
	FareFamily string        `mapstructure:"fare_family"`
	Baggage    string        `mapstructure:"baggage"`
}

// Booking is one passenger record as written in a fixture file.
// Exactly one of Departure and DepartsIn should be set; DepartsIn is relative to load time.
type Booking struct {
	PNR        string        `mapstructure:"pnr"`
	LastName   string        `mapstructure:"last_name"`
	FlightID   string        `mapstructure:"flight_id"`
	Departure  time.Time     `mapstructure:"departure"`
	DepartsIn  time.Duration `mapstructure:"departs_in"`
	Status     string        `mapstructure:"status"`
	Detail     string        `mapstructure:"detail"`
	FareFamily string        `mapstructure:"fare_family"`
	TotalFare  int           `mapstructure:"total_fare"`
	Email      string        `mapstructure:"email"`
	Phone      string        `mapstructure:"phone"`
}

// File is the on-disk fixture layout.
type File struct {
	Routes   map[string][]Offer `mapstructure:"routes"`
	Bookings []Booking          `mapstructure:"bookings"`
}

// Dataset is a resolved fixture set, ready to back the memory adapters.
type Dataset struct {
	Routes   map[string][]domain.FlightOffer
	Bookings []domain.Booking
}

// Default returns the embedded demo dataset resolved against now.
func Default(now time.Time) (*Dataset, error) {
	return Parse(defaultData, "yaml", now)
}

// Load reads a fixture file (YAML or JSON, chosen by extension).
// An empty path yields the embedded dataset.
func Load(path string, now time.Time) (*Dataset, error) {
	if path == "" {
		return Default(now)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = "json"
	}
	ds, err := Parse(data, format, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes fixture data in the given format ("yaml" or "json").
func Parse(data []byte, format string, now time.Time) (*Dataset, error) {
	var generic map[string]any
	switch format {
	case "json":
		if err := json.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("failed to parse fixtures: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("failed to parse fixtures: %w", err)
		}
	}

	var file File
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			stringToTimeHook,
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &file,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(generic); err != nil {
		return nil, fmt.Errorf("invalid fixtures: %w", err)
	}
	return file.Resolve(now)
}

// Resolve validates the file and converts it into domain values.
func (f File) Resolve(now time.Time) (*Dataset, error) {
	ds := &Dataset{Routes: make(map[string][]domain.FlightOffer, len(f.Routes))}

	for key, offers := range f.Routes {
		origin, dest, ok := strings.Cut(key, "-")
		if !ok || origin == "" || dest == "" {
			return nil, fmt.Errorf("route %q: expected ORIGIN-DEST", key)
		}
		out := make([]domain.FlightOffer, 0, len(offers))
		for i, o := range offers {
			if o.FlightID == "" {
				return nil, fmt.Errorf("route %s offer %d: missing flight_id", key, i)
			}
			out = append(out, domain.FlightOffer{
				FlightID:   o.FlightID,
				Departure:  o.Departure,
				Duration:   o.Duration,
				Layovers:   o.Layovers,
				Fare:       o.Fare,
				FareFamily: o.FareFamily,
				Baggage:    o.Baggage,
			})
		}
		ds.Routes[domain.RouteKey(origin, dest)] = out
	}

	var errs []error
	for i, b := range f.Bookings {
		if b.PNR == "" || b.LastName == "" {
			errs = append(errs, fmt.Errorf("booking %d: pnr and last_name are required", i))
			continue
		}
		departure := b.Departure
		if departure.IsZero() {
			departure = now.Add(b.DepartsIn)
		}
		ds.Bookings = append(ds.Bookings, domain.Booking{
			PNR:          strings.ToUpper(b.PNR),
			LastName:     b.LastName,
			FlightID:     b.FlightID,
			Departure:    departure,
			Status:       b.Status,
			StatusDetail: b.Detail,
			FareFamily:   b.FareFamily,
			TotalFare:    b.TotalFare,
			Email:        b.Email,
			Phone:        b.Phone,
		})
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return ds, nil
}

// Catalog builds an in-memory flight catalog from the dataset.
func (d *Dataset) Catalog() *memory.Catalog {
	return memory.NewCatalog(d.Routes)
}

// Repository builds an in-memory booking repository from the dataset.
func (d *Dataset) Repository() *memory.Repository {
	return memory.NewRepository(d.Bookings)
}

// stringToTimeHook accepts RFC 3339 strings; values yaml already decoded as time.Time pass through.
func stringToTimeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}
	s := data.(string)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
