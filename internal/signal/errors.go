package signal

import (
	"errors"
	"fmt"
)

// Sentinel errors for the signal hub.
var (
	// ErrNilHandler is returned when a nil handler is subscribed.
	ErrNilHandler = errors.New("handler cannot be nil")
)

// HandlerError wraps an error returned by a subscriber.
type HandlerError struct {
	// Channel is the name of the channel the subscriber was attached to.
	Channel string

	// SubscriptionID identifies the failing subscription.
	SubscriptionID string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler error on channel %s (subscription %s): %v", e.Channel, e.SubscriptionID, e.Err)
}

// Unwrap returns the underlying error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}

// PanicError wraps a panic raised by a subscriber.
type PanicError struct {
	// Channel is the name of the channel the subscriber was attached to.
	Channel string

	// SubscriptionID identifies the panicking subscription.
	SubscriptionID string

	// Value is the value passed to panic().
	Value any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panic on channel %s (subscription %s): %v", e.Channel, e.SubscriptionID, e.Value)
}
