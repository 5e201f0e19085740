package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-booking/internal/booking"
	"github.com/iliyamo/train-ticket-booking/internal/seating"
)

// Messages shown to passengers.  They mirror the wording of the original
// ticket office.
const (
	msgSoldOut          = "Sorry, there are no more tickets available for this train at the moment."
	msgSeatOccupied     = "Sorry, the seat you have requested is already occupied. Please refer to the seat chart to view available seats."
	msgNoSuchSection    = "This train has only two sections: A and B."
	msgNoTicket         = "No ticket found for the given PNR."
	msgSameSeat         = "The requested seat is the same as the one you have been allocated."
	msgInvalidEmail     = "Invalid format found in email address of the user."
	msgInvalidPNR       = "invalid pnr"
	msgInvalidBody      = "invalid request body"
	msgInvalidPassenger = "Passenger first and last name must be at most 100 characters."
	msgInternal         = "internal error"
)

func msgInvalidSeat(sectionSize int) string {
	return fmt.Sprintf("Requested seat is invalid. This train has only two sections: A and B. Each section has seats numbered 1-%d.", sectionSize)
}

// writeError maps domain errors to HTTP responses.  Unknown errors are
// logged and reported as 500 without leaking details.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, seating.ErrTicketsSoldOut):
		return c.JSON(http.StatusConflict, echo.Map{"error": msgSoldOut})
	case errors.Is(err, seating.ErrSeatOccupied):
		return c.JSON(http.StatusConflict, echo.Map{"error": msgSeatOccupied})
	case errors.Is(err, booking.ErrNoSuchSection):
		return c.JSON(http.StatusNotFound, echo.Map{"error": msgNoSuchSection})
	case errors.Is(err, booking.ErrNoTicketFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": msgNoTicket})
	case errors.Is(err, booking.ErrRequestedSeatSameAsAllocated):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgSameSeat})
	case errors.Is(err, seating.ErrSeatOutOfRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		log.Printf("handler: %s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgInternal})
	}
}
