package seating

import (
	"errors"
	"sync"
	"testing"

	"github.com/iliyamo/train-ticket-booking/internal/model"
)

func seat(sec model.Section, n int) model.Seat { return model.Seat{Section: sec, SeatNumber: n} }

func TestAllocateNext_Order(t *testing.T) {
	a := NewAllocator(3)
	want := []model.Seat{
		seat(model.SectionA, 1), seat(model.SectionA, 2), seat(model.SectionA, 3),
		seat(model.SectionB, 1), seat(model.SectionB, 2), seat(model.SectionB, 3),
	}
	for i, w := range want {
		got, err := a.AllocateNext()
		if err != nil {
			t.Fatalf("call %d: unexpected error %v", i, err)
		}
		if got != w {
			t.Fatalf("call %d: got %s, want %s", i, got, w)
		}
	}
}

func TestAllocateNext_SoldOut(t *testing.T) {
	a := NewAllocator(DefaultSectionSize)
	for i := 0; i < 2*DefaultSectionSize; i++ {
		if _, err := a.AllocateNext(); err != nil {
			t.Fatalf("call %d: unexpected error %v", i, err)
		}
	}
	if _, err := a.AllocateNext(); !errors.Is(err, ErrTicketsSoldOut) {
		t.Fatalf("expected ErrTicketsSoldOut, got %v", err)
	}
	if got := a.Available(); got != 0 {
		t.Fatalf("Available() = %d, want 0", got)
	}
}

func TestAllocateNext_SkipsStaleHead(t *testing.T) {
	a := NewAllocator(4)
	if _, err := a.AllocateSpecific(seat(model.SectionA, 1)); err != nil {
		t.Fatalf("AllocateSpecific: %v", err)
	}
	got, err := a.AllocateNext()
	if err != nil {
		t.Fatalf("AllocateNext: %v", err)
	}
	if want := seat(model.SectionA, 2); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestAllocateSpecific(t *testing.T) {
	a := NewAllocator(4)
	target := seat(model.SectionB, 4)

	got, err := a.AllocateSpecific(target)
	if err != nil || got != target {
		t.Fatalf("first allocation: got %s, %v", got, err)
	}
	if _, err := a.AllocateSpecific(target); !errors.Is(err, ErrSeatOccupied) {
		t.Fatalf("second allocation: expected ErrSeatOccupied, got %v", err)
	}
	if _, err := a.AllocateSpecific(seat(model.SectionB, 5)); !errors.Is(err, ErrSeatOutOfRange) {
		t.Fatalf("out of range: expected ErrSeatOutOfRange, got %v", err)
	}
	if _, err := a.AllocateSpecific(seat("C", 1)); !errors.Is(err, ErrSeatOutOfRange) {
		t.Fatalf("unknown section: expected ErrSeatOutOfRange, got %v", err)
	}
}

func TestRelease_RoundTrip(t *testing.T) {
	a := NewAllocator(4)
	target := seat(model.SectionA, 3)

	if _, err := a.AllocateSpecific(target); err != nil {
		t.Fatalf("AllocateSpecific: %v", err)
	}
	if err := a.Release(target); err != nil {
		t.Fatalf("Release: %v", err)
	}
	got, err := a.AllocateSpecific(target)
	if err != nil || got != target {
		t.Fatalf("re-allocation: got %s, %v", got, err)
	}
}

func TestRelease_GoesToTail(t *testing.T) {
	a := NewAllocator(2)
	first, _ := a.AllocateNext() // A1
	if err := a.Release(first); err != nil {
		t.Fatalf("Release: %v", err)
	}
	want := []model.Seat{
		seat(model.SectionA, 2), seat(model.SectionB, 1), seat(model.SectionB, 2), first,
	}
	for i, w := range want {
		got, err := a.AllocateNext()
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if got != w {
			t.Fatalf("call %d: got %s, want %s", i, got, w)
		}
	}
	if _, err := a.AllocateNext(); !errors.Is(err, ErrTicketsSoldOut) {
		t.Fatalf("expected ErrTicketsSoldOut, got %v", err)
	}
}

func TestRelease_ReleasedSeatsKeepReleaseOrder(t *testing.T) {
	a := NewAllocator(2)
	for i := 0; i < 4; i++ {
		if _, err := a.AllocateNext(); err != nil {
			t.Fatal(err)
		}
	}
	order := []model.Seat{seat(model.SectionB, 2), seat(model.SectionA, 1), seat(model.SectionB, 1)}
	for _, s := range order {
		if err := a.Release(s); err != nil {
			t.Fatalf("Release(%s): %v", s, err)
		}
	}
	for i, w := range order {
		got, err := a.AllocateNext()
		if err != nil || got != w {
			t.Fatalf("call %d: got %s, %v; want %s", i, got, err, w)
		}
	}
}

func TestRelease_Rejected(t *testing.T) {
	a := NewAllocator(2)
	if err := a.Release(seat(model.SectionA, 1)); !errors.Is(err, ErrSeatNotOccupied) {
		t.Fatalf("double release: expected ErrSeatNotOccupied, got %v", err)
	}
	if err := a.Release(seat(model.SectionA, 9)); !errors.Is(err, ErrSeatOutOfRange) {
		t.Fatalf("out of range: expected ErrSeatOutOfRange, got %v", err)
	}
	// The rejected release must not have queued A1 a second time.
	for i := 0; i < 4; i++ {
		if _, err := a.AllocateNext(); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if _, err := a.AllocateNext(); !errors.Is(err, ErrTicketsSoldOut) {
		t.Fatalf("expected ErrTicketsSoldOut, got %v", err)
	}
}

func TestSpecificThenReleaseIsReoffered(t *testing.T) {
	a := NewAllocator(2)
	b2 := seat(model.SectionB, 2)
	if _, err := a.AllocateSpecific(b2); err != nil {
		t.Fatal(err)
	}
	if err := a.Release(b2); err != nil {
		t.Fatal(err)
	}
	// B2 is still queued in its original slot and also at the tail; it
	// must be handed out exactly once.
	seen := map[model.Seat]int{}
	for {
		got, err := a.AllocateNext()
		if errors.Is(err, ErrTicketsSoldOut) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		seen[got]++
	}
	if len(seen) != 4 {
		t.Fatalf("expected 4 distinct seats, got %v", seen)
	}
	for s, n := range seen {
		if n != 1 {
			t.Fatalf("seat %s allocated %d times", s, n)
		}
	}
}

func TestConcurrentAllocationNeverDuplicates(t *testing.T) {
	a := NewAllocator(DefaultSectionSize)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[model.Seat]bool)
		dups int
		sold int
	)
	for i := 0; i < 3*DefaultSectionSize; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var (
				got model.Seat
				err error
			)
			if i%5 == 0 {
				got, err = a.AllocateSpecific(seat(model.SectionB, i%DefaultSectionSize+1))
			} else {
				got, err = a.AllocateNext()
			}
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				if seen[got] {
					dups++
				}
				seen[got] = true
			case errors.Is(err, ErrTicketsSoldOut), errors.Is(err, ErrSeatOccupied):
				sold++
			default:
				t.Errorf("unexpected error %v", err)
			}
		}(i)
	}
	wg.Wait()
	if dups != 0 {
		t.Fatalf("%d seats allocated twice", dups)
	}
	if len(seen) != a.Capacity() {
		t.Fatalf("allocated %d seats, want %d", len(seen), a.Capacity())
	}
}

func TestContains(t *testing.T) {
	a := NewAllocator(64)
	cases := []struct {
		seat model.Seat
		want bool
	}{
		{seat(model.SectionA, 1), true},
		{seat(model.SectionB, 64), true},
		{seat(model.SectionA, 0), false},
		{seat(model.SectionA, 65), false},
		{seat("a", 1), false},
		{seat("C", 3), false},
	}
	for _, c := range cases {
		if got := a.Contains(c.seat); got != c.want {
			t.Errorf("Contains(%s) = %v, want %v", c.seat, got, c.want)
		}
	}
}
