package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/service"
)

// ManagerHandler serves the staff-facing reservation endpoints: listing with
// status/date filters, the approval state machine and the table catalog
// view. All routes require the MANAGER role.
type ManagerHandler struct {
	Reservations *service.ReservationService
	Tables       service.TableStore
	Location     *time.Location
}

// NewManagerHandler constructs a ManagerHandler.
func NewManagerHandler(reservations *service.ReservationService, tables service.TableStore, loc *time.Location) *ManagerHandler {
	if reservations == nil || tables == nil {
		panic("nil dependency passed to NewManagerHandler")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ManagerHandler{Reservations: reservations, Tables: tables, Location: loc}
}

// List handles GET /v1/manager/reservations with optional ?status= or
// ?date= filters. Without a filter, every reservation is returned newest
// first.
func (h *ManagerHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if status := c.QueryParam("status"); status != "" {
		items, err := h.Reservations.ListByStatus(ctx, status)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items})
	}
	if d := c.QueryParam("date"); d != "" {
		date, err := time.ParseInLocation("2006-01-02", d, h.Location)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		items, err := h.Reservations.ListByDate(ctx, date)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items})
	}
	items, err := h.Reservations.List(ctx)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/manager/reservations/:id.
func (h *ManagerHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	view, err := h.Reservations.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": view})
}

// Approve handles POST /v1/manager/reservations/:id/approve. Only a PENDING
// reservation can be approved; when two decisions race, the store's
// conditional update lets exactly one win and this handler surfaces the
// loss as 409.
func (h *ManagerHandler) Approve(c echo.Context) error {
	approverID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	view, err := h.Reservations.Approve(c.Request().Context(), id, approverID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": view})
}

type denyReq struct {
	Reason string `json:"reason"`
}

// Deny handles POST /v1/manager/reservations/:id/deny. The optional reason
// is stored on the reservation.
func (h *ManagerHandler) Deny(c echo.Context) error {
	deciderID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req denyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	view, err := h.Reservations.Deny(c.Request().Context(), id, req.Reason, deciderID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": view})
}

// Seat handles POST /v1/manager/reservations/:id/seat.
func (h *ManagerHandler) Seat(c echo.Context) error {
	return h.transition(c, h.Reservations.Seat)
}

// Complete handles POST /v1/manager/reservations/:id/complete.
func (h *ManagerHandler) Complete(c echo.Context) error {
	return h.transition(c, h.Reservations.Complete)
}

// NoShow handles POST /v1/manager/reservations/:id/no-show.
func (h *ManagerHandler) NoShow(c echo.Context) error {
	return h.transition(c, h.Reservations.MarkNoShow)
}

// Delete handles DELETE /v1/manager/reservations/:id, the administrative
// override; normal disposal is a status transition.
func (h *ManagerHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.Reservations.Delete(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListTables handles GET /v1/manager/tables, the read-only catalog view.
func (h *ManagerHandler) ListTables(c echo.Context) error {
	tables, err := h.Tables.FindAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]model.TableView, 0, len(tables))
	for _, t := range tables {
		items = append(items, model.ViewOfTable(t))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *ManagerHandler) transition(c echo.Context, op func(ctx context.Context, id uint64) (*model.ReservationView, error)) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	view, err := op(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": view})
}
