package session

import "sync"

// Subscription is returned by event registrations. Dispose removes the
// handler; it is safe to call more than once.
type Subscription struct {
	dispose func()
}

// NewSubscription returns a Subscription calling fn on Dispose.
func NewSubscription(fn func()) Subscription {
	var once sync.Once
	return Subscription{dispose: func() { once.Do(fn) }}
}

func (s Subscription) Dispose() {
	if s.dispose != nil {
		s.dispose()
	}
}

// event is a one-shot broadcast. Handlers registered after it fired are
// called right away on their own goroutine.
type event struct {
	mu       sync.Mutex
	next     int
	handlers map[int]func()
	fired    bool
}

func (e *event) on(fn func()) Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fired {
		go fn()
		return Subscription{}
	}
	if e.handlers == nil {
		e.handlers = map[int]func(){}
	}
	id := e.next
	e.next++
	e.handlers[id] = fn
	return Subscription{dispose: func() {
		e.mu.Lock()
		delete(e.handlers, id)
		e.mu.Unlock()
	}}
}

// fire calls every registered handler once. Returns false when the event
// had already fired.
func (e *event) fire() bool {
	e.mu.Lock()
	if e.fired {
		e.mu.Unlock()
		return false
	}
	e.fired = true
	hs := make([]func(), 0, len(e.handlers))
	for _, h := range e.handlers {
		hs = append(hs, h)
	}
	e.handlers = nil
	e.mu.Unlock()
	for _, h := range hs {
		h()
	}
	return true
}
