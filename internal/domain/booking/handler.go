package booking

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/moyamatthieu/dispodialyse/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/bookings", h.ListBookings)
	api.GET("/bookings/:id", h.GetBooking)
	api.POST("/bookings", h.CreateBooking)
	api.PUT("/bookings/:id", h.UpdateBooking)
	api.POST("/bookings/:id/start", h.StartBooking)
	api.POST("/bookings/:id/complete", h.CompleteBooking)
	api.POST("/bookings/:id/cancel", h.CancelBooking)
	api.POST("/bookings/:id/no-show", h.MarkNoShow)
}

// writeErr maps service errors onto HTTP statuses. Admission failures come
// back as 409 with the conflict list in the body.
func writeErr(c echo.Context, err error) error {
	var adm *AdmissionError
	switch {
	case errors.As(err, &adm):
		return c.JSON(http.StatusConflict, map[string]any{
			"message":   adm.Error(),
			"conflicts": adm.Conflicts,
		})
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "booking not found")
	case errors.Is(err, ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}

func (h *Handler) CreateBooking(c echo.Context) error {
	var b Booking
	if err := c.Bind(&b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateBooking(c.Request().Context(), &b); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) GetBooking(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	b, err := h.svc.GetBooking(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) ListBookings(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListBookings(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateBooking(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var b Booking
	if err := c.Bind(&b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b.ID = id
	if err := h.svc.UpdateBooking(c.Request().Context(), &b); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) StartBooking(c echo.Context) error {
	return h.lifecycle(c, h.svc.StartBooking)
}

func (h *Handler) CompleteBooking(c echo.Context) error {
	return h.lifecycle(c, h.svc.CompleteBooking)
}

func (h *Handler) MarkNoShow(c echo.Context) error {
	return h.lifecycle(c, h.svc.MarkNoShow)
}

func (h *Handler) lifecycle(c echo.Context, fn func(ctx context.Context, id uuid.UUID) (*Booking, error)) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	b, err := fn(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) CancelBooking(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b, err := h.svc.CancelBooking(c.Request().Context(), id, req.Reason)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, b)
}
