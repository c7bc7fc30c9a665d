package events

import "sync"

// subscriberBuffer is how far a listener may fall behind before events
// are dropped for it.
const subscriberBuffer = 16

// Hub fans typed events out to every subscriber. Publishing never blocks:
// a subscriber whose buffer is full misses the event, the rest still get
// it. Missing a live notification is harmless here, the store holds the
// durable record.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes the channel. Safe to call once per
// Subscribe; the channel must not be used afterwards.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
	close(ch)
}

func (h *Hub) Publish(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
