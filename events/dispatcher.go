package events

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// EventName identifies one kind of domain happening
type EventName string

// Event is something that happened in the domain, an invite being
// issued or a member joining a trip. Implementations carry their own
// payload, listeners type-assert it back.
type Event interface {
	Name() EventName
}

// EventListener subscribes to a single event by name
type EventListener interface {
	ForEvent() EventName
	Handle(ctx context.Context, ev Event) error
}

// Dispatcher fans events out to their listeners. Listeners run inline
// on the dispatching goroutine, a slow listener slows its caller.
type Dispatcher struct {
	log *zap.Logger

	mu        sync.RWMutex
	listeners map[EventName][]EventListener
}

func NewDispatcher(log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		log:       log,
		listeners: make(map[EventName][]EventListener),
	}
}

// Register subscribes listeners, usually once during boot
func (d *Dispatcher) Register(listener ...EventListener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, l := range listener {
		name := l.ForEvent()
		d.listeners[name] = append(d.listeners[name], l)
		d.log.Debug(
			"registered event listener",
			zap.String("event", string(name)),
			zap.String("listener", fmt.Sprintf("%T", l)),
		)
	}
}

// Dispatch hands the event to every listener subscribed to its name.
// A failing or panicking listener never takes down its siblings or
// the dispatching call.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) {
	d.mu.RLock()
	subscribed := d.listeners[ev.Name()]
	d.mu.RUnlock()
	if len(subscribed) == 0 {
		d.log.Debug("event without listener", zap.String("event", string(ev.Name())))
		return
	}
	for _, l := range subscribed {
		d.handleGuarded(ctx, l, ev)
	}
}

func (d *Dispatcher) handleGuarded(ctx context.Context, l EventListener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error(
				"recovered from panicking event listener",
				zap.Any("panic", r),
				zap.String("event", string(ev.Name())),
				zap.String("listener", fmt.Sprintf("%T", l)),
			)
		}
	}()
	if err := l.Handle(ctx, ev); err != nil {
		d.log.Error(
			"event listener returned error",
			zap.String("listener", fmt.Sprintf("%T", l)),
			zap.String("event", string(ev.Name())),
			zap.Error(err),
		)
	}
}
