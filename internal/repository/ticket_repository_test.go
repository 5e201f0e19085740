package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/train-ticket-booking/internal/model"
)

var ticketCols = []string{
	"pnr", "from_station", "to_station", "first_name", "last_name", "email",
	"price_paid_cents", "section", "seat_number", "created_at", "updated_at",
}

func newMockRepo(t *testing.T) (*TicketRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewTicketRepo(db), mock
}

func TestTicketRepo_SaveInsert(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO tickets`).
		WithArgs("London", "France", "Ada", "Lovelace", "ada@example.com", 2000, "A", 1).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery(`SELECT .+ FROM tickets WHERE pnr = \?`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(ticketCols).
			AddRow(7, "London", "France", "Ada", "Lovelace", "ada@example.com", 2000, "A", 1, now, now))

	tk := model.NewTicket(model.Passenger{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		model.Seat{Section: model.SectionA, SeatNumber: 1})
	if err := repo.Save(context.Background(), tk); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if tk.PNR != 7 {
		t.Fatalf("PNR = %d, want 7", tk.PNR)
	}
	if !tk.CreatedAt.Equal(now) {
		t.Fatalf("CreatedAt = %v, want %v", tk.CreatedAt, now)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestTicketRepo_SaveDuplicateSeat(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`INSERT INTO tickets`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'A-1' for key 'uq_tickets_seat'"})

	tk := model.NewTicket(model.Passenger{Email: "a@b.io"}, model.Seat{Section: model.SectionA, SeatNumber: 1})
	if err := repo.Save(context.Background(), tk); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestTicketRepo_SaveUpdate(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectExec(`UPDATE tickets`).
		WithArgs("Ada", "Lovelace", "ada@example.com", "B", 12, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .+ FROM tickets WHERE pnr = \?`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(ticketCols).
			AddRow(3, "London", "France", "Ada", "Lovelace", "ada@example.com", 2000, "B", 12, now, now))

	tk := model.NewTicket(model.Passenger{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		model.Seat{Section: model.SectionB, SeatNumber: 12})
	tk.PNR = 3
	if err := repo.Save(context.Background(), tk); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if tk.Seat != (model.Seat{Section: model.SectionB, SeatNumber: 12}) {
		t.Fatalf("unexpected seat %s", tk.Seat)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestTicketRepo_FindMissing(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT .+ FROM tickets WHERE pnr = \?`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(ticketCols))

	if _, err := repo.Find(context.Background(), 99); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestTicketRepo_Delete(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`DELETE FROM tickets WHERE pnr = \?`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM tickets WHERE pnr = \?`).
		WithArgs(6).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 5); err != nil {
		t.Fatalf("Delete(5): %v", err)
	}
	if err := repo.Delete(context.Background(), 6); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("Delete(6): expected ErrTicketNotFound, got %v", err)
	}
}

func TestTicketRepo_ListBySection(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .+ FROM tickets WHERE section = \? ORDER BY seat_number ASC`).
		WithArgs("B").
		WillReturnRows(sqlmock.NewRows(ticketCols).
			AddRow(2, "London", "France", "A", "A", "a@x.io", 2000, "B", 1, now, now).
			AddRow(1, "London", "France", "B", "B", "b@x.io", 2000, "B", 9, now, now))

	got, err := repo.ListBySection(context.Background(), model.SectionB)
	if err != nil {
		t.Fatalf("ListBySection: %v", err)
	}
	if len(got) != 2 || got[0].Seat.SeatNumber != 1 || got[1].Seat.SeatNumber != 9 {
		t.Fatalf("unexpected tickets %+v", got)
	}
	if got[0].Seat.Section != model.SectionB {
		t.Fatalf("section = %q, want B", got[0].Seat.Section)
	}
}

func TestTicketRepo_ListOrdered(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT .+ FROM tickets ORDER BY section ASC, seat_number ASC`).
		WillReturnRows(sqlmock.NewRows(ticketCols))

	got, err := repo.ListOrdered(context.Background())
	if err != nil {
		t.Fatalf("ListOrdered: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no tickets, got %d", len(got))
	}
}
