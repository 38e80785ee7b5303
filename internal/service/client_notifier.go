package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-session-sync/internal/logger"
	"github.com/MKhiriev/go-session-sync/models"
)

// Broadcaster is an in-process [Notifier]. Subscribers receive events on
// buffered channels; a full channel drops the event.
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[chan models.Event]struct{}
}

// NewBroadcaster returns a Broadcaster without subscribers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan models.Event]struct{})}
}

// Subscribe registers a listener with the given buffer size. The returned
// function unsubscribes and closes the channel.
func (b *Broadcaster) Subscribe(buffer int) (<-chan models.Event, func()) {
	ch := make(chan models.Event, buffer)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
}

// Notify implements [Notifier].
func (b *Broadcaster) Notify(ctx context.Context, event models.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs {
		select {
		case ch <- event:
		default:
			logger.FromContext(ctx).Debug().
				Str("func", "Broadcaster.Notify").
				Str("event", event.Name).
				Msg("subscriber is full, event dropped")
		}
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, models.Event) {}
