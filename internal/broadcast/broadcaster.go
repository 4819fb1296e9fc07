package broadcast

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lottopantera/draw-engine/internal/models"
)

// Sink delivers an event to an external channel (e.g. Telegram). Sinks are
// expected to tolerate duplicate delivery.
type Sink interface {
	Deliver(ctx context.Context, event models.NotificationEvent) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, event models.NotificationEvent) error

// Deliver calls f.
func (f SinkFunc) Deliver(ctx context.Context, event models.NotificationEvent) error {
	return f(ctx, event)
}

const (
	defaultQueueSize    = 256
	subscriberBuffer    = 16
	maxDeliveryAttempts = 3
	retryBaseDelay      = 2 * time.Second
)

// Broadcaster fans NotificationEvents out to in-process subscribers (the
// websocket hub) and external sinks. Publish never blocks the caller: sink
// delivery runs on a queue worker decoupled from the state machine's critical
// path, with per-call timeout and bounded retry. Delivery is at-least-once;
// failures are logged and retried, never surfaced to the publishing
// operation.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[chan models.NotificationEvent]struct{}
	sinks       []Sink

	queue       chan sinkDelivery
	sinkTimeout time.Duration
	done        chan struct{}
	wg          sync.WaitGroup
}

type sinkDelivery struct {
	event   models.NotificationEvent
	sink    Sink
	attempt int
}

// NewBroadcaster creates a Broadcaster delivering to the given sinks and
// starts its delivery worker.
func NewBroadcaster(sinkTimeout time.Duration, sinks ...Sink) *Broadcaster {
	b := &Broadcaster{
		subscribers: make(map[chan models.NotificationEvent]struct{}),
		sinks:       sinks,
		queue:       make(chan sinkDelivery, defaultQueueSize),
		sinkTimeout: sinkTimeout,
		done:        make(chan struct{}),
	}
	b.wg.Add(1)
	go b.deliverLoop()
	return b
}

// Subscribe registers an in-process subscriber. The returned cancel function
// removes it; events arriving while the subscriber's buffer is full are
// dropped for that subscriber.
func (b *Broadcaster) Subscribe() (<-chan models.NotificationEvent, func()) {
	ch := make(chan models.NotificationEvent, subscriberBuffer)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subscribers[ch]; ok {
			delete(b.subscribers, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish emits an event to all active subscribers and queues it for every
// external sink. Fire-and-forget: it returns once the event is handed off.
func (b *Broadcaster) Publish(event models.NotificationEvent) {
	if event.EmittedAt.IsZero() {
		event.EmittedAt = time.Now()
	}

	b.mu.RLock()
	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			slog.Warn("Dropping event for slow subscriber", "drawId", event.DrawID, "kind", event.Kind)
		}
	}
	b.mu.RUnlock()

	for _, sink := range b.sinks {
		select {
		case b.queue <- sinkDelivery{event: event, sink: sink, attempt: 1}:
		default:
			slog.Error("Delivery queue full, dropping sink delivery", "drawId", event.DrawID, "kind", event.Kind)
		}
	}
}

// Close stops the delivery worker and closes all subscriber channels.
func (b *Broadcaster) Close() {
	close(b.done)
	b.wg.Wait()

	b.mu.Lock()
	for ch := range b.subscribers {
		delete(b.subscribers, ch)
		close(ch)
	}
	b.mu.Unlock()
}

func (b *Broadcaster) deliverLoop() {
	defer b.wg.Done()
	for {
		select {
		case d := <-b.queue:
			b.deliver(d)
		case <-b.done:
			// Drain what is already queued before exiting
			for {
				select {
				case d := <-b.queue:
					b.deliver(d)
				default:
					return
				}
			}
		}
	}
}

func (b *Broadcaster) deliver(d sinkDelivery) {
	ctx, cancel := context.WithTimeout(context.Background(), b.sinkTimeout)
	err := d.sink.Deliver(ctx, d.event)
	cancel()
	if err == nil {
		return
	}

	if d.attempt >= maxDeliveryAttempts {
		slog.Error("Sink delivery failed, giving up",
			"drawId", d.event.DrawID, "kind", d.event.Kind, "attempts", d.attempt, "error", err)
		return
	}

	slog.Warn("Sink delivery failed, retrying",
		"drawId", d.event.DrawID, "kind", d.event.Kind, "attempt", d.attempt, "error", err)
	delay := retryBaseDelay * time.Duration(1<<(d.attempt-1))
	d.attempt++
	time.AfterFunc(delay, func() {
		select {
		case b.queue <- d:
		case <-b.done:
		}
	})
}
