package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/service"
)

// ReservationHandler serves the customer-facing reservation endpoints:
// creation (open to walk-in guests), retrieval, listing and cancellation.
type ReservationHandler struct {
	Reservations *service.ReservationService
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(reservations *service.ReservationService) *ReservationHandler {
	if reservations == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: reservations}
}

type guestReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type createReservationReq struct {
	AccountID       uint64    `json:"account_id"`
	Guest           *guestReq `json:"guest"`
	TableID         *uint64   `json:"table_id"`
	PartySize       uint32    `json:"party_size"`
	ReservedAt      string    `json:"reserved_at"` // RFC3339, offset-qualified
	SpecialRequests string    `json:"special_requests"`
}

// Create handles POST /v1/reservations. The requester is either an existing
// account id or a guest tuple; a table id is optional and validated against
// capacity and conflicts when present. The reservation lands in PENDING.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	reservedAt, err := time.Parse(time.RFC3339, req.ReservedAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reserved_at must be RFC3339 with offset"})
	}

	create := service.CreateRequest{
		AccountID:       req.AccountID,
		TableID:         req.TableID,
		PartySize:       req.PartySize,
		ReservedAt:      reservedAt,
		SpecialRequests: req.SpecialRequests,
	}
	if req.Guest != nil {
		create.Guest = &service.GuestDetails{
			FullName: req.Guest.Name,
			Email:    req.Guest.Email,
			Phone:    req.Guest.Phone,
		}
	}

	view, err := h.Reservations.Create(c.Request().Context(), create)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": view})
}

// Get handles GET /v1/reservations/:id for the authenticated customer.
// Customers may only view their own reservations.
func (h *ReservationHandler) Get(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	view, err := h.Reservations.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	if view.AccountID != accountID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": view})
}

// ListMine handles GET /v1/my-reservations.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Reservations.ListByAccount(c.Request().Context(), accountID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Cancel handles DELETE /v1/reservations/:id, the customer-initiated
// withdrawal. Allowed only while the reservation is PENDING or CONFIRMED;
// a completed visit cannot be cancelled.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
	current, err := h.Reservations.Get(ctx, id)
	if err != nil {
		return serviceError(c, err)
	}
	if current.AccountID != accountID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	view, err := h.Reservations.Cancel(ctx, id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": view})
}
