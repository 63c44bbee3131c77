package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/airdesk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore implementation
// adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		sess := domain.NewSession(domain.IntentBookFlight, domain.StateAwaitingFlightSelection)
		sess.Booking.Origin = "BLR"
		sess.Booking.Destination = "DEL"
		sess.Booking.Options = []domain.FlightOffer{
			{FlightID: "G9-101", Departure: "18:40 IST", Duration: 2*time.Hour + 45*time.Minute, Fare: 12450, FareFamily: "Saver"},
		}

		err := store.Save(ctx, sessionID, &sess)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sess.Intent, loaded.Intent)
		assert.Equal(t, sess.State, loaded.State)
		require.NotNil(t, loaded.Booking)
		assert.Equal(t, "BLR", loaded.Booking.Origin)
		assert.Equal(t, sess.Booking.Options, loaded.Booking.Options)
		assert.True(t, loaded.Valid())
	})

	t.Run("Load Does Not Alias", func(t *testing.T) {
		sess := domain.NewSession(domain.IntentCancelBooking, domain.StateAwaitingLastNameForCancel)
		sess.Cancel.PNR = "AB7YZ8"
		require.NoError(t, store.Save(ctx, sessionID, &sess))

		sess.Cancel.PNR = "MUTATED"
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "AB7YZ8", loaded.Cancel.PNR)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		empty := domain.Session{}
		err := store.Save(ctx, sessionID, &empty)
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, &domain.Session{})
		_ = store.Save(ctx, id2, &domain.Session{})

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
