package model

import "time"

// Fixed route and fare shared by every ticket sold on this train.
const (
    FromStation     = "London"
    ToStation       = "France"
    TicketPriceCent = 2000
)

// Passenger holds the traveller details captured at purchase time.
type Passenger struct {
    FirstName string `json:"first_name" validate:"max=100"`
    LastName  string `json:"last_name" validate:"max=100"`
    Email     string `json:"email" validate:"required,email,max=255"`
}

// Ticket is a booking record.  PNR is the booking reference assigned by the
// store when the ticket is first saved; it is zero until then.
//
// Fields:
//  PNR            – booking reference (tickets.pnr).
//  FromStation    – departure station, always FromStation.
//  ToStation      – arrival station, always ToStation.
//  Passenger      – who travels on this ticket.
//  PricePaidCents – fare in cents, always TicketPriceCent.
//  Seat           – the seat currently allocated to the ticket.
//  CreatedAt      – when the ticket was purchased.
//  UpdatedAt      – last seat change.
type Ticket struct {
    PNR            uint64    `json:"pnr"`
    FromStation    string    `json:"from"`
    ToStation      string    `json:"to"`
    Passenger      Passenger `json:"user"`
    PricePaidCents uint32    `json:"price_paid_cents"`
    Seat           Seat      `json:"seat_allocated"`
    CreatedAt      time.Time `json:"created_at"`
    UpdatedAt      time.Time `json:"updated_at"`
}

// NewTicket returns an unsaved ticket for p on the fixed route.
func NewTicket(p Passenger, seat Seat) *Ticket {
    return &Ticket{
        FromStation:    FromStation,
        ToStation:      ToStation,
        Passenger:      p,
        PricePaidCents: TicketPriceCent,
        Seat:           seat,
    }
}

// SeatChartEntry is one row of the seat chart: who sits where.
type SeatChartEntry struct {
    Passenger Passenger `json:"user"`
    Seat      Seat      `json:"seat"`
}
