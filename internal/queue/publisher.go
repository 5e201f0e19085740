package queue

import (
    "context"
    "encoding/json"
    "log"
    "time"

    "github.com/google/uuid"
    amqp "github.com/rabbitmq/amqp091-go"
)

// TicketEventsQueue is the durable queue ticket events are routed to.
const TicketEventsQueue = "ticket.events"

// Publisher publishes ticket events to RabbitMQ.  Each call dials the
// broker, declares the queue and publishes one persistent message, so a
// broker outage never leaves a half-open connection behind.  Errors are
// logged and returned; callers may choose to ignore them.
type Publisher struct {
    URL string
}

// NewPublisher returns a Publisher for the broker at url.
func NewPublisher(url string) *Publisher { return &Publisher{URL: url} }

// Publish sends ev to the ticket.events queue.
func (p *Publisher) Publish(ctx context.Context, ev TicketEvent) error {
    conn, err := amqp.Dial(p.URL)
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    // Idempotent; durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(
        TicketEventsQueue, // name
        true,              // durable
        false,             // autoDelete
        false,             // exclusive
        false,             // noWait
        nil,               // args
    ); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    pub, err := newPublishing(ev)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    if err := ch.PublishWithContext(ctx,
        "",                // default exchange
        TicketEventsQueue, // routing key = queue name
        false,             // mandatory
        false,             // immediate
        pub,
    ); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }
    return nil
}

// newPublishing wraps ev in a persistent JSON message with a fresh ID.
func newPublishing(ev TicketEvent) (amqp.Publishing, error) {
    body, err := json.Marshal(ev)
    if err != nil {
        return amqp.Publishing{}, err
    }
    return amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        MessageId:    uuid.NewString(),
        Type:         ev.Type,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }, nil
}
