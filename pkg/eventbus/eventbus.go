// Package eventbus defines the contract for fanning domain events out to
// side-effect handlers. The lifecycle controller publishes here after a
// status transition commits; handler failures are reported back but never
// undo the transition.
package eventbus

import (
	"context"

	"github.com/google/uuid"
)

// Event is implemented by every domain event.
type Event interface {
	Type() string
}

// HandlerFunc consumes one event. A returned error is collected by the
// bus and surfaced to the publisher.
type HandlerFunc func(ctx context.Context, event Event) error

// EventBus dispatches events to registered handlers.
type EventBus interface {
	Register(eventType string, handler HandlerFunc)
	Emit(ctx context.Context, event Event) error
}

// AccountApproved is published after an account's status commits as
// APPROVED.
type AccountApproved struct {
	AccountID uuid.UUID
}

// Type implements Event.
func (AccountApproved) Type() string { return "account.approved" }

// AccountRejected is published after an account's status commits as
// REJECTED. Reason is already defaulted by the lifecycle controller.
type AccountRejected struct {
	AccountID uuid.UUID
	Reason    string
}

// Type implements Event.
func (AccountRejected) Type() string { return "account.rejected" }
