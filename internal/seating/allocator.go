// Package seating owns the seat inventory of the train: which seats exist,
// which are occupied, and the order in which free seats are handed out.
//
// Automatic allocation walks a FIFO issuance queue that starts as A1..AN
// followed by B1..BN.  Seats taken through AllocateSpecific stay in the
// queue as stale entries and are discarded the first time they reach the
// head.  Released seats always re-enter at the tail.
package seating

import (
	"errors"
	"sync"

	"github.com/iliyamo/train-ticket-booking/internal/model"
)

// DefaultSectionSize is the number of seats in each section of the train.
const DefaultSectionSize = 64

var (
	// ErrTicketsSoldOut is returned by AllocateNext when no seat is free.
	ErrTicketsSoldOut = errors.New("tickets sold out")
	// ErrSeatOccupied is returned when a requested seat is already held.
	ErrSeatOccupied = errors.New("seat occupied")
	// ErrSeatOutOfRange is returned for seats outside the train's seat universe.
	ErrSeatOutOfRange = errors.New("seat is not part of this train")
	// ErrSeatNotOccupied is returned when releasing a seat that is already free.
	ErrSeatNotOccupied = errors.New("seat is not occupied")
)

// Allocator is the single source of truth for seat occupancy.  The zero
// value is not usable; construct one with NewAllocator.  All methods are
// safe for concurrent use.
type Allocator struct {
	mu          sync.Mutex
	sectionSize int
	occupied    map[model.Seat]bool // one entry per seat in the universe
	queue       []model.Seat        // issuance order, may hold stale entries
	free        int
}

// NewAllocator builds an allocator with sectionSize seats in every section.
// All seats start free and queued in section-then-number order.  A
// non-positive size falls back to DefaultSectionSize.
func NewAllocator(sectionSize int) *Allocator {
	if sectionSize <= 0 {
		sectionSize = DefaultSectionSize
	}
	total := sectionSize * len(model.Sections)
	a := &Allocator{
		sectionSize: sectionSize,
		occupied:    make(map[model.Seat]bool, total),
		queue:       make([]model.Seat, 0, total),
		free:        total,
	}
	for _, sec := range model.Sections {
		for n := 1; n <= sectionSize; n++ {
			seat := model.Seat{Section: sec, SeatNumber: n}
			a.occupied[seat] = false
			a.queue = append(a.queue, seat)
		}
	}
	return a
}

// AllocateNext hands out the next free seat in issuance order.  Occupied
// entries found at the head of the queue are dropped for good; each entry
// is inspected at most once, so the skip cost is amortised O(1).
func (a *Allocator) AllocateNext() (model.Seat, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for len(a.queue) > 0 && a.occupied[a.queue[0]] {
		a.pop()
	}
	if len(a.queue) == 0 {
		return model.Seat{}, ErrTicketsSoldOut
	}
	seat := a.pop()
	a.occupied[seat] = true
	a.free--
	return seat, nil
}

// AllocateSpecific marks seat as occupied and returns it unchanged.  The
// issuance queue is not consulted; if the seat is still queued it will be
// skipped when it reaches the head.
func (a *Allocator) AllocateSpecific(seat model.Seat) (model.Seat, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	occupied, ok := a.occupied[seat]
	if !ok {
		return model.Seat{}, ErrSeatOutOfRange
	}
	if occupied {
		return model.Seat{}, ErrSeatOccupied
	}
	a.occupied[seat] = true
	a.free--
	return seat, nil
}

// Release frees seat and appends it to the tail of the issuance queue.
// Releasing a seat that is already free is rejected and leaves the queue
// as it was.
func (a *Allocator) Release(seat model.Seat) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	occupied, ok := a.occupied[seat]
	if !ok {
		return ErrSeatOutOfRange
	}
	if !occupied {
		return ErrSeatNotOccupied
	}
	a.occupied[seat] = false
	a.free++
	a.queue = append(a.queue, seat)
	return nil
}

// pop removes the queue head.  Callers hold a.mu and check len(a.queue).
func (a *Allocator) pop() model.Seat {
	seat := a.queue[0]
	a.queue[0] = model.Seat{}
	a.queue = a.queue[1:]
	return seat
}

// SectionSize reports the number of seats per section.
func (a *Allocator) SectionSize() int { return a.sectionSize }

// Capacity reports the total number of seats on the train.
func (a *Allocator) Capacity() int { return a.sectionSize * len(model.Sections) }

// Contains reports whether seat belongs to the seat universe.
func (a *Allocator) Contains(seat model.Seat) bool {
	if _, ok := model.ParseSection(string(seat.Section)); !ok {
		return false
	}
	return seat.SeatNumber >= 1 && seat.SeatNumber <= a.sectionSize
}

// IsOccupied reports whether seat is currently held.  Seats outside the
// universe are never occupied.
func (a *Allocator) IsOccupied(seat model.Seat) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.occupied[seat]
}

// Available reports how many seats are currently free.
func (a *Allocator) Available() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.free
}
