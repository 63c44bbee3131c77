package ports

import (
	"context"

	"github.com/aretw0/airdesk/pkg/domain"
)

// ActionDispatcher defines how side-effects are delivered.
// The agent emits descriptors, and the host implements this interface to handle them.
type ActionDispatcher interface {
	Dispatch(ctx context.Context, sessionID string, actions []domain.Action) error
}
