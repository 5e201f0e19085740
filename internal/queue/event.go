// Package queue defines message payloads exchanged over the message broker.
package queue

// Ticket event types published on the ticket.events queue.
const (
    TicketPurchased = "ticket.purchased"
    TicketModified  = "ticket.modified"
    TicketRemoved   = "ticket.removed"
)

// TicketEvent is published after every successful ticket mutation.  It
// carries enough information for downstream consumers to log, notify or
// trigger analytics without querying the ticket store.
type TicketEvent struct {
    Type         string `json:"type"`
    PNR          uint64 `json:"pnr"`
    Email        string `json:"email"`
    FirstName    string `json:"first_name"`
    LastName     string `json:"last_name"`
    From         string `json:"from"`
    To           string `json:"to"`
    Seat         string `json:"seat"`
    PreviousSeat string `json:"previous_seat,omitempty"`
    PriceCents   uint32 `json:"price_cents"`
    OccurredAt   string `json:"occurred_at"`
}
