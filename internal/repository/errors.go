// Package repository defines the ticket stores used by the booking service
// and the sentinel errors they share.  Higher layers translate these
// values into their own domain errors.
package repository

import "errors"

// ErrTicketNotFound is returned when no ticket exists for a booking
// reference.  The booking service maps it to its own not-found error.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrConflict is returned when a write would place two live tickets on
// the same seat.  The seat allocator normally prevents this; seeing it
// means the store and the allocator disagree.
var ErrConflict = errors.New("conflict")
