// Package booking implements the passenger-facing ticket lifecycle on top
// of the seat allocator and a ticket store.
//
// A ticket is created by Purchase, may change seat any number of times via
// ModifySeat and is destroyed by Remove.  The allocator is always updated
// before the store: a seat is taken before the ticket that holds it is
// saved, and freed before the ticket that held it is deleted.  The two
// updates are not transactional; Restore rebuilds the allocator from the
// store at startup.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/iliyamo/train-ticket-booking/internal/model"
	"github.com/iliyamo/train-ticket-booking/internal/queue"
	"github.com/iliyamo/train-ticket-booking/internal/repository"
	"github.com/iliyamo/train-ticket-booking/internal/seating"
)

// TicketStore persists tickets.  Find and Delete report a missing ticket
// with repository.ErrTicketNotFound.  Both list methods must return
// tickets ordered by section then seat number.
type TicketStore interface {
	Save(ctx context.Context, t *model.Ticket) error
	Find(ctx context.Context, pnr uint64) (*model.Ticket, error)
	Delete(ctx context.Context, pnr uint64) error
	ListOrdered(ctx context.Context) ([]model.Ticket, error)
	ListBySection(ctx context.Context, section model.Section) ([]model.Ticket, error)
}

// EventPublisher receives a TicketEvent after each successful mutation.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.TicketEvent) error
}

// Service coordinates the allocator and the ticket store.
type Service struct {
	seats  *seating.Allocator
	store  TicketStore
	events EventPublisher // optional

	// mu serialises purchase, remove and seat change so that two requests
	// for the same ticket cannot both release its seat.
	mu sync.Mutex
}

// NewService returns a Service.  events may be nil.
func NewService(seats *seating.Allocator, store TicketStore, events EventPublisher) *Service {
	return &Service{seats: seats, store: store, events: events}
}

// Seats exposes the allocator for read-only queries such as availability.
func (s *Service) Seats() *seating.Allocator { return s.seats }

// Purchase allocates the next free seat and saves a new ticket for p.  If
// saving fails the seat stays allocated.
func (s *Service) Purchase(ctx context.Context, p model.Passenger) (*model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seat, err := s.seats.AllocateNext()
	if err != nil {
		return nil, err
	}
	t := model.NewTicket(p, seat)
	if err := s.store.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("save ticket for seat %s: %w", seat, err)
	}
	s.publish(ctx, queue.TicketPurchased, t, nil)
	return t, nil
}

// Lookup returns the ticket with the given booking reference.
func (s *Service) Lookup(ctx context.Context, pnr uint64) (*model.Ticket, error) {
	t, err := s.store.Find(ctx, pnr)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return nil, ErrNoTicketFound
		}
		return nil, err
	}
	return t, nil
}

// SeatChart lists every live ticket's passenger and seat, ordered by
// section then seat number.
func (s *Service) SeatChart(ctx context.Context) ([]model.SeatChartEntry, error) {
	tickets, err := s.store.ListOrdered(ctx)
	if err != nil {
		return nil, err
	}
	return chart(tickets), nil
}

// SeatChartBySection is SeatChart restricted to one section.  The section
// must match one of model.Sections exactly.
func (s *Service) SeatChartBySection(ctx context.Context, section string) ([]model.SeatChartEntry, error) {
	sec, ok := model.ParseSection(section)
	if !ok {
		return nil, ErrNoSuchSection
	}
	tickets, err := s.store.ListBySection(ctx, sec)
	if err != nil {
		return nil, err
	}
	return chart(tickets), nil
}

func chart(tickets []model.Ticket) []model.SeatChartEntry {
	out := make([]model.SeatChartEntry, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, model.SeatChartEntry{Passenger: t.Passenger, Seat: t.Seat})
	}
	return out
}

// Remove releases the ticket's seat and deletes the ticket.
func (s *Service) Remove(ctx context.Context, pnr uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.Lookup(ctx, pnr)
	if err != nil {
		return err
	}
	if err := s.release(t); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, pnr); err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return ErrNoTicketFound
		}
		return fmt.Errorf("delete ticket %d: %w", pnr, err)
	}
	s.publish(ctx, queue.TicketRemoved, t, nil)
	return nil
}

// ModifySeat moves the ticket to the requested seat.  The requested seat
// is taken before the current one is released, so a failed request never
// costs the passenger their seat.
func (s *Service) ModifySeat(ctx context.Context, pnr uint64, requested model.Seat) (*model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.Lookup(ctx, pnr)
	if err != nil {
		return nil, err
	}
	if t.Seat == requested {
		return nil, ErrRequestedSeatSameAsAllocated
	}
	seat, err := s.seats.AllocateSpecific(requested)
	if err != nil {
		return nil, err
	}
	previous := t.Seat
	if err := s.release(t); err != nil {
		_ = s.seats.Release(seat)
		return nil, err
	}
	t.Seat = seat
	if err := s.store.Save(ctx, t); err != nil {
		s.undoMove(seat, previous)
		t.Seat = previous
		return nil, fmt.Errorf("save ticket %d: %w", pnr, err)
	}
	s.publish(ctx, queue.TicketModified, t, &previous)
	return t, nil
}

// undoMove gives back the seat taken for a failed seat change and takes
// the ticket's stored seat again.  Nothing else can touch either seat in
// between because s.mu is held.
func (s *Service) undoMove(taken, previous model.Seat) {
	if err := s.seats.Release(taken); err != nil {
		log.Printf("booking: undo seat change: release %s: %v", taken, err)
	}
	if _, err := s.seats.AllocateSpecific(previous); err != nil {
		log.Printf("booking: undo seat change: retake %s: %v", previous, err)
	}
}

// release frees the seat held by t.  A seat the allocator already
// considers free means the store and the allocator drifted apart; it is
// logged and the caller carries on so the ticket does not get stuck.
func (s *Service) release(t *model.Ticket) error {
	err := s.seats.Release(t.Seat)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, seating.ErrSeatNotOccupied):
		log.Printf("booking: ticket %d held seat %s which was already free", t.PNR, t.Seat)
		return nil
	default:
		return fmt.Errorf("release seat %s: %w", t.Seat, err)
	}
}

// Restore marks the seat of every stored ticket as occupied.  It must run
// once, before the service handles requests, against a fresh allocator.
// Tickets whose seat cannot be occupied are logged and skipped.
func (s *Service) Restore(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.store.ListOrdered(ctx)
	if err != nil {
		return 0, fmt.Errorf("list tickets: %w", err)
	}
	restored := 0
	for _, t := range tickets {
		if _, err := s.seats.AllocateSpecific(t.Seat); err != nil {
			log.Printf("booking: restore ticket %d seat %s: %v", t.PNR, t.Seat, err)
			continue
		}
		restored++
	}
	return restored, nil
}

func (s *Service) publish(ctx context.Context, typ string, t *model.Ticket, previous *model.Seat) {
	if s.events == nil {
		return
	}
	ev := queue.TicketEvent{
		Type:       typ,
		PNR:        t.PNR,
		Email:      t.Passenger.Email,
		FirstName:  t.Passenger.FirstName,
		LastName:   t.Passenger.LastName,
		From:       t.FromStation,
		To:         t.ToStation,
		Seat:       t.Seat.String(),
		PriceCents: t.PricePaidCents,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if previous != nil {
		ev.PreviousSeat = previous.String()
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		log.Printf("booking: publish %s for ticket %d failed: %v", typ, t.PNR, err)
	}
}
