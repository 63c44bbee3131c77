package session_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/airdesk/pkg/domain"
	"github.com/aretw0/airdesk/pkg/ports"
	"github.com/aretw0/airdesk/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	data map[string]domain.Session
	mu   sync.Mutex
}

func (s *SlowStore) Save(ctx context.Context, sessionID string, sess *domain.Session) error {
	time.Sleep(2 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string]domain.Session)
	}
	s.data[sessionID] = sess.Clone()
	return nil
}

func (s *SlowStore) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	time.Sleep(2 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.data[sessionID]; ok {
		out := sess.Clone()
		return &out, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *SlowStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

func TestManager_UpdateSerializesTurns(t *testing.T) {
	store := &SlowStore{}
	manager := session.NewManager(store)
	ctx := context.Background()
	id := "race-test"

	var wg sync.WaitGroup
	turns := 20

	// Each turn appends one offer; a lost update would drop entries.
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := manager.Update(ctx, id, func(ctx context.Context, sess *domain.Session) error {
				if sess.IsEmpty() {
					*sess = domain.NewSession(domain.IntentBookFlight, domain.StateAwaitingFlightSelection)
				}
				sess.Booking.Options = append(sess.Booking.Options, domain.FlightOffer{FlightID: fmt.Sprintf("F-%d", n)})
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	sess, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Len(t, sess.Booking.Options, turns)
}

func TestManager_UpdateStartsFromEmptySession(t *testing.T) {
	manager := session.NewManager(&SlowStore{})
	ctx := context.Background()

	err := manager.Update(ctx, "fresh", func(ctx context.Context, sess *domain.Session) error {
		assert.True(t, sess.IsEmpty())
		*sess = domain.NewSession(domain.IntentCheckStatus, domain.StateAwaitingPNRForStatus)
		return nil
	})
	require.NoError(t, err)

	sess, err := manager.Load(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, domain.StateAwaitingPNRForStatus, sess.State)
}

func TestManager_UpdateErrorDoesNotCommit(t *testing.T) {
	manager := session.NewManager(&SlowStore{})
	ctx := context.Background()
	boom := errors.New("boom")

	err := manager.Update(ctx, "s", func(ctx context.Context, sess *domain.Session) error {
		*sess = domain.NewSession(domain.IntentCheckStatus, domain.StateAwaitingPNRForStatus)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = manager.Load(ctx, "s")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

type recordingLocker struct {
	mu       sync.Mutex
	keys     []string
	released int
	ttl      time.Duration
	err      error
}

func (l *recordingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	l.keys = append(l.keys, key)
	l.ttl = ttl
	return func(ctx context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.released++
		return nil
	}, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := &recordingLocker{}
	manager := session.NewManager(&SlowStore{}, session.WithLocker(locker), session.WithLockTTL(5*time.Second))

	err := manager.Update(context.Background(), "replicated", func(context.Context, *domain.Session) error { return nil })
	require.NoError(t, err)

	assert.Equal(t, []string{"replicated"}, locker.keys)
	assert.Equal(t, 1, locker.released)
	assert.Equal(t, 5*time.Second, locker.ttl)
}

func TestManager_DistributedLockFailure(t *testing.T) {
	locker := &recordingLocker{err: errors.New("redis down")}
	manager := session.NewManager(&SlowStore{}, session.WithLocker(locker))

	called := false
	err := manager.Update(context.Background(), "s", func(context.Context, *domain.Session) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called, "turn must not run without the distributed lock")
}
