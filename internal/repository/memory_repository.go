package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/train-ticket-booking/internal/model"
)

// MemoryTicketRepo keeps tickets in process memory.  It honours the same
// contract as TicketRepo, including monotonically assigned PNRs and the
// one-ticket-per-seat constraint, and is used for local runs
// (TICKET_STORE=memory) and tests.
type MemoryTicketRepo struct {
	mu      sync.RWMutex
	nextPNR uint64
	tickets map[uint64]model.Ticket
}

// NewMemoryTicketRepo returns an empty in-memory store.
func NewMemoryTicketRepo() *MemoryTicketRepo {
	return &MemoryTicketRepo{nextPNR: 1, tickets: make(map[uint64]model.Ticket)}
}

// Save inserts or updates t.  See TicketRepo.Save.
func (r *MemoryTicketRepo) Save(_ context.Context, t *model.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for pnr, other := range r.tickets {
		if pnr != t.PNR && other.Seat == t.Seat {
			return ErrConflict
		}
	}
	now := time.Now().UTC()
	if t.PNR == 0 {
		t.PNR = r.nextPNR
		r.nextPNR++
		t.CreatedAt = now
	} else {
		old, ok := r.tickets[t.PNR]
		if !ok {
			return ErrTicketNotFound
		}
		t.CreatedAt = old.CreatedAt
	}
	t.UpdatedAt = now
	r.tickets[t.PNR] = *t
	return nil
}

// Find returns a copy of the ticket with the given PNR.
func (r *MemoryTicketRepo) Find(_ context.Context, pnr uint64) (*model.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tickets[pnr]
	if !ok {
		return nil, ErrTicketNotFound
	}
	return &t, nil
}

// Delete removes the ticket with the given PNR.
func (r *MemoryTicketRepo) Delete(_ context.Context, pnr uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[pnr]; !ok {
		return ErrTicketNotFound
	}
	delete(r.tickets, pnr)
	return nil
}

// ListOrdered returns all tickets ordered by section then seat number.
func (r *MemoryTicketRepo) ListOrdered(_ context.Context) ([]model.Ticket, error) {
	return r.collect(func(model.Ticket) bool { return true }), nil
}

// ListBySection returns the tickets of one section ordered by seat number.
func (r *MemoryTicketRepo) ListBySection(_ context.Context, section model.Section) ([]model.Ticket, error) {
	return r.collect(func(t model.Ticket) bool { return t.Seat.Section == section }), nil
}

func (r *MemoryTicketRepo) collect(keep func(model.Ticket) bool) []model.Ticket {
	r.mu.RLock()
	out := make([]model.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		if keep(t) {
			out = append(out, t)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Seat.Section != out[j].Seat.Section {
			return out[i].Seat.Section < out[j].Seat.Section
		}
		return out[i].Seat.SeatNumber < out[j].Seat.SeatNumber
	})
	return out
}
