package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// StartTicketConsumer connects to RabbitMQ, declares the ticket.events queue
// (durable) and consumes messages, appending each one to logDir/booking.log
// as a single human-friendly line.  It reconnects with exponential backoff
// and only returns once ctx is cancelled.  Messages that cannot be handled
// are rejected without requeue so the consumer keeps moving.
func StartTicketConsumer(ctx context.Context, url, logDir string) error {
    backoff := time.Second
    for {
        if err := ctx.Err(); err != nil {
            return err
        }
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Printf("ticket-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = consumeLoop(ctx, conn, logDir)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        log.Printf("ticket-consumer: consume loop ended: %v; reconnecting", err)
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, logDir string) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("ticket-consumer: set QoS failed: %v", err)
    }
    if _, err := ch.QueueDeclare(TicketEventsQueue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(TicketEventsQueue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := handleMessage(logDir, d.Body); err != nil {
                log.Printf("ticket-consumer: handle message failed: %v", err)
                _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
                continue
            }
            _ = d.Ack(false)
        }
    }
}

func handleMessage(logDir string, body []byte) error {
    var ev TicketEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if err := os.MkdirAll(logDir, 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    f, err := os.OpenFile(filepath.Join(logDir, "booking.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    if _, err := f.WriteString(formatLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

// formatLine renders ev as one line of booking.log.
func formatLine(ev TicketEvent) string {
    line := fmt.Sprintf("[%s] %s | pnr=%d | passenger=\"%s %s\" | email=%s | route=%s->%s | seat=%s",
        ev.OccurredAt, ev.Type, ev.PNR, ev.FirstName, ev.LastName, ev.Email, ev.From, ev.To, ev.Seat)
    if ev.PreviousSeat != "" {
        line += " | previous_seat=" + ev.PreviousSeat
    }
    if ev.Type == TicketPurchased {
        line += fmt.Sprintf(" | paid=%d cents", ev.PriceCents)
    }
    return line + "\n"
}
