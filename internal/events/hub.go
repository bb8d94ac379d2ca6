// Package events fans collection-change notifications out to live
// subscribers. A subscriber gets at-least-one notification per burst of
// mutations, not one per mutation; consumers re-read the whole collection
// on every signal, so coalescing is safe.
package events

import "sync"

type Kind string

const (
	KindAccounts Kind = "accounts"
	KindSNI      Kind = "sni"
)

type Hub struct {
	mu   sync.Mutex
	subs map[Kind]map[chan struct{}]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[Kind]map[chan struct{}]struct{})}
}

// Subscribe registers interest in a collection. The returned channel carries
// a signal per change burst; the cancel func must be called when the
// subscriber goes away.
func (h *Hub) Subscribe(k Kind) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	h.mu.Lock()
	if h.subs[k] == nil {
		h.subs[k] = make(map[chan struct{}]struct{})
	}
	h.subs[k][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs[k], ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish signals every subscriber of the kind. Sends never block; a
// subscriber that already has a pending signal just keeps it.
func (h *Hub) Publish(k Kind) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[k] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
