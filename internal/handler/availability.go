package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/service"
)

// AvailabilityHandler serves the public schedule queries. Both endpoints are
// read-only and sit behind the Redis response cache.
type AvailabilityHandler struct {
	Engine   *service.AvailabilityEngine
	Location *time.Location
}

// NewAvailabilityHandler constructs an AvailabilityHandler. Query dates and
// times are interpreted in the restaurant's timezone.
func NewAvailabilityHandler(engine *service.AvailabilityEngine, loc *time.Location) *AvailabilityHandler {
	if engine == nil {
		panic("nil engine passed to NewAvailabilityHandler")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AvailabilityHandler{Engine: engine, Location: loc}
}

func parsePartySize(c echo.Context) (uint32, bool) {
	n, err := strconv.ParseUint(c.QueryParam("party_size"), 10, 32)
	return uint32(n), err == nil
}

// Slots handles GET /v1/availability?date=YYYY-MM-DD&party_size=N. It always
// returns the full service window, one descriptor per slot, so clients can
// render a complete schedule.
func (h *AvailabilityHandler) Slots(c echo.Context) error {
	date, err := time.ParseInLocation("2006-01-02", c.QueryParam("date"), h.Location)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	partySize, ok := parsePartySize(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "party_size is required"})
	}
	slots, err := h.Engine.Slots(c.Request().Context(), date, partySize)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":  c.QueryParam("date"),
		"slots": slots,
	})
}

// Tables handles GET /v1/availability/tables?date=&time=&party_size=, the
// single-instant companion query.
func (h *AvailabilityHandler) Tables(c echo.Context) error {
	at, err := time.ParseInLocation("2006-01-02 15:04",
		c.QueryParam("date")+" "+c.QueryParam("time"), h.Location)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD and time HH:MM"})
	}
	partySize, ok := parsePartySize(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "party_size is required"})
	}
	tables, err := h.Engine.AvailableTables(c.Request().Context(), at, partySize)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tables": tables})
}
