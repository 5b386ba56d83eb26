package signal

import (
	"sync"
	"unsafe"

	"github.com/google/uuid"
)

// Handler is a subscriber callback for one channel's payload type.
// A returned error is reported, never propagated to the emitter.
type Handler[T any] func(T) error

// Subscription represents one active subscription on a channel.
type Subscription struct {
	id      string
	channel string
	cancel  func() bool
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Channel returns the name of the channel the subscription belongs to.
func (s *Subscription) Channel() string {
	return s.channel
}

// Cancel removes the subscription. It reports whether the subscription was
// still registered.
func (s *Subscription) Cancel() bool {
	return s.cancel()
}

// Channel is one named event kind with an independent subscriber set.
//
// Subscribers are deduplicated by handler identity: subscribing the same
// handler value twice is a no-op that returns the existing subscription, so
// one emit always yields exactly one invocation per handler. Identity is
// the func value itself, so two distinct closures are two subscribers even
// when they were built from the same literal.
type Channel[T any] struct {
	name     string
	reporter Reporter

	mu    sync.Mutex
	order []*chanEntry[T]
	byKey map[uintptr]*chanEntry[T]
}

type chanEntry[T any] struct {
	id  string
	key uintptr
	fn  Handler[T]
	sub *Subscription
}

// handlerKey returns the identity of a handler func value: the address of
// its underlying closure object. Two closures hold distinct addresses even
// when instantiated from the same literal; passing one stored func value
// twice yields the same key. (A capture-free literal compiles to a single
// static closure object, so re-subscribing it is indistinguishable from
// re-subscribing one value, which is the wanted no-op.)
func handlerKey[T any](fn Handler[T]) uintptr {
	return uintptr(*(*unsafe.Pointer)(unsafe.Pointer(&fn)))
}

// NewChannel creates a channel with the given name.
// Failures raised by subscribers during Emit go to the reporter; a nil
// reporter falls back to the package default.
func NewChannel[T any](name string, reporter Reporter) *Channel[T] {
	if reporter == nil {
		reporter = defaultReporter
	}
	return &Channel[T]{
		name:     name,
		reporter: reporter,
		byKey:    make(map[uintptr]*chanEntry[T]),
	}
}

// Name returns the channel name.
func (c *Channel[T]) Name() string {
	return c.name
}

// Subscribe registers a handler and returns its subscription.
// Subscribing a handler that is already registered returns the existing
// subscription without adding a second delivery.
func (c *Channel[T]) Subscribe(fn Handler[T]) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}

	key := handlerKey(fn)

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.byKey[key]; ok {
		return existing.sub, nil
	}

	id := uuid.New().String()
	e := &chanEntry[T]{id: id, key: key, fn: fn}
	e.sub = &Subscription{
		id:      id,
		channel: c.name,
		cancel:  func() bool { return c.remove(id) },
	}

	c.order = append(c.order, e)
	c.byKey[key] = e
	return e.sub, nil
}

// Unsubscribe removes a subscription. It reports whether the subscription
// was still registered.
func (c *Channel[T]) Unsubscribe(sub *Subscription) bool {
	if sub == nil {
		return false
	}
	return sub.Cancel()
}

// remove deletes the subscription with the given id.
func (c *Channel[T]) remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, e := range c.order {
		if e.id == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			delete(c.byKey, e.key)
			return true
		}
	}
	return false
}

// Count returns the number of active subscriptions.
func (c *Channel[T]) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// Emit delivers the payload to every subscriber synchronously, in insertion
// order, against the subscriber view taken at entry. A subscriber error or
// panic is reported with the channel name and never reaches the emitter or
// later subscribers. Subscriptions changed during delivery take full effect
// on the next emit.
func (c *Channel[T]) Emit(payload T) {
	c.mu.Lock()
	view := make([]*chanEntry[T], len(c.order))
	copy(view, c.order)
	c.mu.Unlock()

	for _, e := range view {
		c.invoke(e, payload)
	}
}

// invoke runs one handler with panic isolation.
func (c *Channel[T]) invoke(e *chanEntry[T], payload T) {
	defer func() {
		if r := recover(); r != nil {
			c.reporter(c.name, &PanicError{
				Channel:        c.name,
				SubscriptionID: e.id,
				Value:          r,
			})
		}
	}()

	if err := e.fn(payload); err != nil {
		c.reporter(c.name, &HandlerError{
			Channel:        c.name,
			SubscriptionID: e.id,
			Err:            err,
		})
	}
}
