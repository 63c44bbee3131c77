package tests

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/airdesk/pkg/domain"
	"github.com/aretw0/airdesk/pkg/ports"
)

// FlightCatalogContractTest is a reusable test suite that verifies if an adapter complies with ports.FlightCatalog.
// route must be a [origin, destination] pair known to the catalog holding want, in order.
func FlightCatalogContractTest(t *testing.T, catalog ports.FlightCatalog, route [2]string, want []domain.FlightOffer) {
	t.Helper()
	ctx := context.Background()

	t.Run("LookupFlights_Success", func(t *testing.T) {
		got, err := catalog.LookupFlights(ctx, route[0], route[1])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("offer count mismatch: got %d, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("offer %d mismatch: got %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("LookupFlights_Idempotent", func(t *testing.T) {
		first, err := catalog.LookupFlights(ctx, route[0], route[1])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(first) > 0 {
			first[0].Fare = -1 // Callers own the slice
		}
		second, err := catalog.LookupFlights(ctx, route[0], route[1])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := range want {
			if second[i] != want[i] {
				t.Errorf("re-query changed offer %d: got %+v, want %+v", i, second[i], want[i])
			}
		}
	})

	t.Run("LookupFlights_CaseInsensitiveKey", func(t *testing.T) {
		got, err := catalog.LookupFlights(ctx, " "+strings.ToLower(route[0]), strings.ToLower(route[1]))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != len(want) {
			t.Errorf("lowercase route returned %d offers, want %d", len(got), len(want))
		}
	})

	t.Run("LookupFlights_UnknownRoute", func(t *testing.T) {
		got, err := catalog.LookupFlights(ctx, "XXX", "YYY")
		if err != nil {
			t.Fatalf("expected empty result, not error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no offers, got %d", len(got))
		}
	})
}

