// Package events pushes board change notifications to in-process observers.
package events

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Bus fans events out to subscribed observers in subscription order.
// A nil *Bus is valid and drops every event.
type Bus struct {
	mu        sync.RWMutex
	observers map[int64]Observer
	order     []int64
	nextID    int64
	sequence  atomic.Int64
	now       func() time.Time
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		observers: make(map[int64]Observer),
		now:       time.Now,
	}
}

// Subscribe registers o and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (b *Bus) Subscribe(o Observer) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.observers[id] = o
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.observers, id)
			for i, oid := range b.order {
				if oid == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Len returns the number of subscribed observers.
func (b *Bus) Len() int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}

// Publish stamps e with a timestamp and sequence id and delivers it to every observer.
// A panicking observer is logged and skipped so the others still receive the event.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}

	e.SequenceID = b.sequence.Add(1)
	if e.Timestamp.IsZero() {
		e.Timestamp = b.now()
	}

	b.mu.RLock()
	targets := make([]Observer, 0, len(b.order))
	for _, id := range b.order {
		targets = append(targets, b.observers[id])
	}
	b.mu.RUnlock()

	for _, o := range targets {
		deliver(o, e)
	}
}

func deliver(o Observer, e Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("observer panicked",
				"event_type", e.Type,
				"scope", e.Scope,
				"sequence_id", e.SequenceID,
				"panic", r)
		}
	}()
	o.OnEvent(e)
}
