package repo

import (
	"log/slog"
	"sync"
)

const subscriberBufferSize = 16

// Stream holds the latest value of a persisted record and fans updates out to
// subscribers. New subscribers immediately receive the current value; sends
// never block, an update is dropped for a subscriber whose channel is full.
//
// Values carry slices and must be treated as read-only by subscribers.
type Stream[T any] struct {
	mu      sync.Mutex
	name    string
	current T
	subs    map[chan T]struct{}
	logger  *slog.Logger
}

func newStream[T any](name string, initial T, logger *slog.Logger) *Stream[T] {
	return &Stream[T]{
		name:    name,
		current: initial,
		subs:    make(map[chan T]struct{}),
		logger:  logger,
	}
}

// Current returns the latest published value.
func (s *Stream[T]) Current() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers a new subscriber. The returned channel is primed with
// the current value. The cancel function unregisters the subscriber and
// closes the channel; it is safe to call more than once.
func (s *Stream[T]) Subscribe() (<-chan T, func()) {
	ch := make(chan T, subscriberBufferSize)

	s.mu.Lock()
	ch <- s.current
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, ch)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// publish stores v as the current value and notifies all subscribers.
func (s *Stream[T]) publish(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = v
	for ch := range s.subs {
		select {
		case ch <- v:
			// Update sent successfully
		default:
			// Channel full, drop update for this subscriber
			s.logger.Warn("subscriber channel full, update dropped",
				"stream", s.name,
			)
		}
	}
}
