package blockchain

import (
	"fmt"
	"sync"
)

type EventFeed[T any] struct {
	subs map[string]chan<- T
	mu   sync.Mutex
}

func NewEventFeed[T any]() *EventFeed[T] {
	return &EventFeed[T]{
		subs: make(map[string]chan<- T),
	}
}

func (ef *EventFeed[T]) Subscribe(id string, ch chan<- T) error {
	ef.mu.Lock()
	defer ef.mu.Unlock()
	if _, exists := ef.subs[id]; exists {
		return fmt.Errorf("subscriber with the id %s already present", id)
	}
	ef.subs[id] = ch
	return nil
}

func (ef *EventFeed[T]) UnSubscribe(id string) {
	ef.mu.Lock()
	defer ef.mu.Unlock()
	delete(ef.subs, id)
}

// Send never blocks; a subscriber with a full channel misses the event.
func (ef *EventFeed[T]) Send(event T) {
	ef.mu.Lock()
	defer ef.mu.Unlock()
	for id, ch := range ef.subs {
		select {
		case ch <- event:
		default:
			log.Warnf("Event skipped for %s - event channel full", id)
		}
	}
}
