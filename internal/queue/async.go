package queue

import (
    "context"
    "errors"
    "log"
    "sync"
    "time"
)

// ErrBufferFull is returned by AsyncPublisher.Publish when the buffer is full
// and the event was dropped.
var ErrBufferFull = errors.New("event buffer full")

// Sink is anything that can deliver a TicketEvent, typically *Publisher.
type Sink interface {
    Publish(ctx context.Context, ev TicketEvent) error
}

// AsyncPublisher buffers events and hands them to a Sink from a single
// background goroutine, so booking requests never wait on the broker.
// Events are delivered in the order they were accepted.
type AsyncPublisher struct {
    sink    Sink
    timeout time.Duration
    events  chan TicketEvent
    wg      sync.WaitGroup
    once    sync.Once
}

// NewAsyncPublisher starts a worker that forwards up to buffer pending
// events to sink.  Each delivery is bounded by timeout.
func NewAsyncPublisher(sink Sink, buffer int, timeout time.Duration) *AsyncPublisher {
    if buffer < 1 {
        buffer = 1
    }
    if timeout <= 0 {
        timeout = 5 * time.Second
    }
    p := &AsyncPublisher{sink: sink, timeout: timeout, events: make(chan TicketEvent, buffer)}
    p.wg.Add(1)
    go p.run()
    return p
}

// Publish queues ev without blocking.  The request context is not carried
// over; delivery happens after the request has completed.
func (p *AsyncPublisher) Publish(_ context.Context, ev TicketEvent) error {
    select {
    case p.events <- ev:
        return nil
    default:
        return ErrBufferFull
    }
}

// Close stops accepting events and waits for the buffer to drain.
// Publish must not be called after Close.
func (p *AsyncPublisher) Close() {
    p.once.Do(func() { close(p.events) })
    p.wg.Wait()
}

func (p *AsyncPublisher) run() {
    defer p.wg.Done()
    for ev := range p.events {
        ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
        if err := p.sink.Publish(ctx, ev); err != nil {
            log.Printf("ticket-events: deliver %s for pnr=%d failed: %v", ev.Type, ev.PNR, err)
        }
        cancel()
    }
}
