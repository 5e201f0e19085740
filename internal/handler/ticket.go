package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-booking/internal/booking"
	"github.com/iliyamo/train-ticket-booking/internal/model"
)

// requestTimeout bounds the store calls made on behalf of one request.
const requestTimeout = 5 * time.Second

// TicketHandler exposes the booking service over HTTP.  Request shapes
// (email format, section letter, seat range) are validated here so the
// booking service only ever sees well-formed input.
type TicketHandler struct {
	Bookings *booking.Service
	// Purge, when set, is called after every successful mutation to drop
	// cached receipts and seat charts.
	Purge func(ctx context.Context) error
}

// NewTicketHandler constructs a TicketHandler.  purge may be nil.
func NewTicketHandler(bookings *booking.Service, purge func(ctx context.Context) error) *TicketHandler {
	return &TicketHandler{Bookings: bookings, Purge: purge}
}

type seatReq struct {
	Section    string `json:"section" validate:"required"`
	SeatNumber int    `json:"seat_number" validate:"required"`
}

type availabilityResp struct {
	Free            int             `json:"free"`
	Capacity        int             `json:"capacity"`
	SeatsPerSection int             `json:"seats_per_section"`
	Sections        []model.Section `json:"sections"`
}

// Purchase handles POST /v1/tickets/purchase.  The body is a passenger
// ({first_name, last_name, email}); the response is the new ticket with
// its allocated seat and 201 Created.
func (h *TicketHandler) Purchase(c echo.Context) error {
	var p model.Passenger
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidBody})
	}
	p.Email = strings.TrimSpace(p.Email)
	if err := c.Validate(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": passengerMessage(err)})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()
	t, err := h.Bookings.Purchase(ctx, p)
	if err != nil {
		return writeError(c, err)
	}
	h.purge(ctx)
	return c.JSON(http.StatusCreated, t)
}

// Receipt handles GET /v1/tickets/receipt/:pnr.
func (h *TicketHandler) Receipt(c echo.Context) error {
	pnr, ok := parsePNR(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidPNR})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()
	t, err := h.Bookings.Lookup(ctx, pnr)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// SeatChart handles GET /v1/tickets/seatchart.  Rows are ordered by
// section then seat number.
func (h *TicketHandler) SeatChart(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()
	rows, err := h.Bookings.SeatChart(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// SeatChartBySection handles GET /v1/tickets/seatchart/:section.  The
// section is matched case-insensitively.
func (h *TicketHandler) SeatChartBySection(c echo.Context) error {
	section := strings.ToUpper(strings.TrimSpace(c.Param("section")))
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()
	rows, err := h.Bookings.SeatChartBySection(ctx, section)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// Remove handles DELETE /v1/tickets/remove/:pnr and answers 204 on success.
func (h *TicketHandler) Remove(c echo.Context) error {
	pnr, ok := parsePNR(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidPNR})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()
	if err := h.Bookings.Remove(ctx, pnr); err != nil {
		return writeError(c, err)
	}
	h.purge(ctx)
	return c.NoContent(http.StatusNoContent)
}

// ModifySeat handles PUT /v1/tickets/modify/:pnr with body
// {section, seat_number}.  The section is upper-cased before the seat is
// checked against the train layout.
func (h *TicketHandler) ModifySeat(c echo.Context) error {
	pnr, ok := parsePNR(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidPNR})
	}
	seats := h.Bookings.Seats()
	var req seatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidBody})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidSeat(seats.SectionSize())})
	}
	seat := model.Seat{
		Section:    model.Section(strings.ToUpper(strings.TrimSpace(req.Section))),
		SeatNumber: req.SeatNumber,
	}
	if !seats.Contains(seat) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidSeat(seats.SectionSize())})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()
	t, err := h.Bookings.ModifySeat(ctx, pnr, seat)
	if err != nil {
		return writeError(c, err)
	}
	h.purge(ctx)
	return c.JSON(http.StatusOK, t)
}

// Availability handles GET /v1/tickets/availability.
func (h *TicketHandler) Availability(c echo.Context) error {
	seats := h.Bookings.Seats()
	return c.JSON(http.StatusOK, availabilityResp{
		Free:            seats.Available(),
		Capacity:        seats.Capacity(),
		SeatsPerSection: seats.SectionSize(),
		Sections:        model.Sections,
	})
}

func (h *TicketHandler) purge(ctx context.Context) {
	if h.Purge == nil {
		return
	}
	if err := h.Purge(ctx); err != nil {
		log.Printf("handler: cache purge failed: %v", err)
	}
}

func parsePNR(c echo.Context) (uint64, bool) {
	pnr, err := strconv.ParseUint(c.Param("pnr"), 10, 64)
	if err != nil || pnr == 0 {
		return 0, false
	}
	return pnr, true
}
