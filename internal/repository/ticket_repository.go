package repository // repository defines data access for tickets

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/train-ticket-booking/internal/model"
)

// mysqlDuplicateEntry is the server error number for a UNIQUE key violation.
const mysqlDuplicateEntry = 1062

// TicketRepo stores tickets in the MySQL tickets table.  The table carries
// a UNIQUE key on (section, seat_number), so a seat can never belong to two
// rows even if the in-memory allocator were bypassed.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

const ticketColumns = `pnr, from_station, to_station, first_name, last_name, email,
                       price_paid_cents, section, seat_number, created_at, updated_at`

// Save inserts t when t.PNR is zero and updates the existing row otherwise.
// On insert the generated PNR is written back to t.  Timestamps are always
// refreshed from the database.
func (r *TicketRepo) Save(ctx context.Context, t *model.Ticket) error {
	if t.PNR == 0 {
		return r.insert(ctx, t)
	}
	return r.update(ctx, t)
}

func (r *TicketRepo) insert(ctx context.Context, t *model.Ticket) error {
	const q = `INSERT INTO tickets (from_station, to_station, first_name, last_name, email, price_paid_cents, section, seat_number)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		t.FromStation, t.ToStation, t.Passenger.FirstName, t.Passenger.LastName, t.Passenger.Email,
		t.PricePaidCents, string(t.Seat.Section), t.Seat.SeatNumber)
	if err != nil {
		return mapWriteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.PNR = uint64(id)
	return r.reload(ctx, t)
}

func (r *TicketRepo) update(ctx context.Context, t *model.Ticket) error {
	const q = `UPDATE tickets
	           SET first_name = ?, last_name = ?, email = ?, section = ?, seat_number = ?
	           WHERE pnr = ?`
	if _, err := r.db.ExecContext(ctx, q,
		t.Passenger.FirstName, t.Passenger.LastName, t.Passenger.Email,
		string(t.Seat.Section), t.Seat.SeatNumber, t.PNR); err != nil {
		return mapWriteErr(err)
	}
	return r.reload(ctx, t)
}

// reload refreshes t from the row identified by t.PNR so defaults such as
// created_at are populated.
func (r *TicketRepo) reload(ctx context.Context, t *model.Ticket) error {
	fresh, err := r.Find(ctx, t.PNR)
	if err != nil {
		return err
	}
	*t = *fresh
	return nil
}

// Find returns the ticket with the given PNR or ErrTicketNotFound.
func (r *TicketRepo) Find(ctx context.Context, pnr uint64) (*model.Ticket, error) {
	q := `SELECT ` + ticketColumns + ` FROM tickets WHERE pnr = ?`
	t, err := scanTicket(r.db.QueryRowContext(ctx, q, pnr))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return t, nil
}

// Delete removes the ticket with the given PNR.  ErrTicketNotFound is
// returned when no row matched.
func (r *TicketRepo) Delete(ctx context.Context, pnr uint64) error {
	const q = `DELETE FROM tickets WHERE pnr = ?`
	res, err := r.db.ExecContext(ctx, q, pnr)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTicketNotFound
	}
	return nil
}

// ListOrdered returns every ticket ordered by section then seat number.
func (r *TicketRepo) ListOrdered(ctx context.Context) ([]model.Ticket, error) {
	q := `SELECT ` + ticketColumns + ` FROM tickets ORDER BY section ASC, seat_number ASC`
	return r.list(ctx, q)
}

// ListBySection returns the tickets of one section ordered by seat number.
func (r *TicketRepo) ListBySection(ctx context.Context, section model.Section) ([]model.Ticket, error) {
	q := `SELECT ` + ticketColumns + ` FROM tickets WHERE section = ? ORDER BY seat_number ASC`
	return r.list(ctx, q, string(section))
}

func (r *TicketRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTicket(s rowScanner) (*model.Ticket, error) {
	var (
		t       model.Ticket
		section string
	)
	if err := s.Scan(
		&t.PNR, &t.FromStation, &t.ToStation,
		&t.Passenger.FirstName, &t.Passenger.LastName, &t.Passenger.Email,
		&t.PricePaidCents, &section, &t.Seat.SeatNumber, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.Seat.Section = model.Section(section)
	return &t, nil
}

// mapWriteErr turns a duplicate-seat violation into ErrConflict.
func mapWriteErr(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
		return ErrConflict
	}
	return err
}
