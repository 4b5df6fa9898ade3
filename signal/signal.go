// Package signal implements the synchronous reactive primitives the form
// layer is built on: a value cell, a lazy dependency-tracked computation,
// and an effect that re-runs until disposed.
//
// Propagation is synchronous: a Set returns only after every dependent
// effect has re-run. Computeds are lazy; they recompute on the next Get
// after a dependency they read during their last evaluation changes.
// Dependencies are discovered per run, so a branch not taken is not a
// dependency.
//
// Propagation is not glitch-free: an effect reading both a cell and a
// computed derived from it can observe one intermediate run that mixes
// the new cell value with the computed's previous result before a second
// run settles it. The final run after Set returns is always consistent;
// intermediate runs are not authoritative.
//
// The graph relies on run-to-completion scheduling and is confined to a
// single goroutine; it carries no locks of its own.
package signal

// source is a node an observer can subscribe to.
type source interface {
	unsubscribe(o observer)
}

// observer is a node notified when one of its sources changes.
type observer interface {
	invalidate()
	track(s source)
}

// active is the observer currently evaluating, if any. Reads that happen
// during its evaluation register it as a subscriber.
var active []observer

func current() observer {
	if len(active) == 0 {
		return nil
	}
	return active[len(active)-1]
}

func withObserver(o observer, fn func()) {
	active = append(active, o)
	defer func() {
		active = active[:len(active)-1]
	}()
	fn()
}

// Value is a mutable reactive cell.
type Value[T any] struct {
	value T
	obs   map[observer]struct{}
}

// NewValue creates a cell holding v.
func NewValue[T any](v T) *Value[T] {
	return &Value[T]{value: v, obs: make(map[observer]struct{})}
}

// Get returns the current value, registering the evaluating observer.
func (s *Value[T]) Get() T {
	if o := current(); o != nil {
		s.obs[o] = struct{}{}
		o.track(s)
	}
	return s.value
}

// Peek returns the current value without registering a dependency.
func (s *Value[T]) Peek() T {
	return s.value
}

// Set stores v and synchronously notifies all subscribers.
func (s *Value[T]) Set(v T) {
	s.value = v
	notify(s.obs)
}

func (s *Value[T]) unsubscribe(o observer) {
	delete(s.obs, o)
}

// notify invalidates a snapshot of the subscriber set; observers may
// resubscribe or unsubscribe while being notified.
func notify(obs map[observer]struct{}) {
	snapshot := make([]observer, 0, len(obs))
	for o := range obs {
		snapshot = append(snapshot, o)
	}
	for _, o := range snapshot {
		o.invalidate()
	}
}

// Computed is a derived value. It recomputes lazily: an upstream change
// marks it stale, the next Get re-evaluates.
type Computed[T any] struct {
	fn      func() T
	value   T
	stale   bool
	obs     map[observer]struct{}
	sources []source
}

// NewComputed creates a computation; fn is not run until the first Get.
func NewComputed[T any](fn func() T) *Computed[T] {
	return &Computed[T]{fn: fn, stale: true, obs: make(map[observer]struct{})}
}

// Get returns the computed value, re-evaluating if stale, and registers
// the evaluating observer.
func (c *Computed[T]) Get() T {
	if o := current(); o != nil {
		c.obs[o] = struct{}{}
		o.track(c)
	}
	if c.stale {
		c.detach()
		withObserver(c, func() {
			c.value = c.fn()
		})
		c.stale = false
	}
	return c.value
}

func (c *Computed[T]) invalidate() {
	if c.stale {
		return
	}
	c.stale = true
	notify(c.obs)
}

func (c *Computed[T]) track(s source) {
	c.sources = append(c.sources, s)
}

func (c *Computed[T]) unsubscribe(o observer) {
	delete(c.obs, o)
}

func (c *Computed[T]) detach() {
	for _, s := range c.sources {
		s.unsubscribe(c)
	}
	c.sources = c.sources[:0]
}

// Effect runs fn once on creation and re-runs it synchronously whenever a
// dependency read during its last run changes, until disposed.
type Effect struct {
	fn       func()
	sources  []source
	running  bool
	disposed bool
}

// NewEffect creates and immediately runs an effect.
func NewEffect(fn func()) *Effect {
	e := &Effect{fn: fn}
	e.run()
	return e
}

func (e *Effect) run() {
	e.detach()
	e.running = true
	withObserver(e, e.fn)
	e.running = false
}

func (e *Effect) invalidate() {
	// A write performed by the effect body itself does not re-trigger it.
	if e.disposed || e.running {
		return
	}
	e.run()
}

func (e *Effect) track(s source) {
	e.sources = append(e.sources, s)
}

func (e *Effect) detach() {
	for _, s := range e.sources {
		s.unsubscribe(e)
	}
	e.sources = e.sources[:0]
}

// Dispose stops the effect; it never runs again.
func (e *Effect) Dispose() {
	e.disposed = true
	e.detach()
}
