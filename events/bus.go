package events

import "sync"

// Bus is an unbounded first-in-first-out queue from many producers to
// one consumer. Publish never blocks and never drops; Next blocks
// until something arrives. Events come out in exactly the order they
// went in.
type Bus struct {
	mu    sync.Mutex
	ready sync.Cond
	queue []Event
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	b := &Bus{}
	b.ready.L = &b.mu
	return b
}

// Publish appends an event to the queue.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	b.queue = append(b.queue, e)
	b.mu.Unlock()
	b.ready.Signal()
}

// Next removes and returns the oldest queued event, blocking while the
// queue is empty. Only one goroutine may consume.
func (b *Bus) Next() Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	for len(b.queue) == 0 {
		b.ready.Wait()
	}
	e := b.queue[0]
	b.queue = b.queue[1:]
	return e
}

// Drain discards everything currently queued. Used after the boot
// animation so presses made during it do not replay against the UI.
func (b *Bus) Drain() {
	b.mu.Lock()
	b.queue = nil
	b.mu.Unlock()
}
