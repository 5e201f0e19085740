package booking

import (
	"errors"

	"github.com/iliyamo/train-ticket-booking/internal/seating"
)

var (
	// ErrNoTicketFound is returned when a booking reference has no ticket.
	ErrNoTicketFound = errors.New("no ticket found")
	// ErrNoSuchSection is returned for a seat chart query on an unknown section.
	ErrNoSuchSection = errors.New("no such section")
	// ErrRequestedSeatSameAsAllocated rejects a seat change to the seat
	// the ticket already holds.
	ErrRequestedSeatSameAsAllocated = errors.New("requested seat same as allocated")

	// Allocation failures surface unchanged from the seating package.
	ErrTicketsSoldOut = seating.ErrTicketsSoldOut
	ErrSeatOccupied   = seating.ErrSeatOccupied
)
