// Package navigation delivers navigation signals from the session manager to
// whatever surface is presenting the views.
package navigation

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sairam-Chetpelly/visafrontend/internal/api/metrics"
	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
)

const channelBuffer = 64

// Handler receives each navigation in the order it was issued.
type Handler func(ctx context.Context, route domain.Route)

// Dispatcher implements ports.Navigator with a single worker goroutine, so
// handlers never run concurrently and observe routes in order.
type Dispatcher struct {
	events  chan domain.Route
	handler Handler
	log     zerolog.Logger

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]*time.Timer
	stopped bool
}

// NewDispatcher creates a Dispatcher. Call Start before navigating.
func NewDispatcher(handler Handler, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		events:  make(chan domain.Route, channelBuffer),
		handler: handler,
		log:     log,
		pending: make(map[uint64]*time.Timer),
	}
}

// Start launches the worker. It stops, and drops pending timers, when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	go d.run(ctx)
}

// Navigate queues an immediate navigation. Signals sent after Stop are dropped.
func (d *Dispatcher) Navigate(route domain.Route) {
	d.mu.Lock()
	stopped := d.stopped
	d.mu.Unlock()
	if stopped {
		return
	}

	select {
	case d.events <- route:
	default:
		d.log.Warn().Str("route", string(route)).Msg("navigation queue full, dropping signal")
	}
}

// NavigateAfter queues route once delay has elapsed, unless cancelled first.
func (d *Dispatcher) NavigateAfter(delay time.Duration, route domain.Route) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	id := d.nextID
	d.nextID++
	d.pending[id] = time.AfterFunc(delay, func() {
		d.mu.Lock()
		_, live := d.pending[id]
		delete(d.pending, id)
		d.mu.Unlock()
		if live {
			d.Navigate(route)
		}
	})
}

// CancelPending drops every delayed navigation that has not fired yet.
func (d *Dispatcher) CancelPending() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Pending returns the number of delayed navigations still waiting.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Stop cancels pending timers and rejects further signals.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.cancelLocked()
}

func (d *Dispatcher) cancelLocked() {
	for id, t := range d.pending {
		t.Stop()
		delete(d.pending, id)
	}
}

func (d *Dispatcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			d.Stop()
			return
		case route := <-d.events:
			metrics.NavigationsTotal.WithLabelValues(string(route)).Inc()
			d.log.Debug().Str("route", string(route)).Msg("navigate")
			d.handler(ctx, route)
		}
	}
}
