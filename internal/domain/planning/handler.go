package planning

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/moyamatthieu/dispodialyse/internal/domain/room"
	"github.com/moyamatthieu/dispodialyse/internal/domain/staff"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/planning/check", h.CheckConflicts)
	api.GET("/planning/slots", h.FindAvailableSlots)
	api.GET("/planning/occupancy", h.GetOccupancy)
}

// CheckConflicts runs a proposal through conflict detection without writing
// anything. The response carries the conflict list, suggested alternatives
// and the admissibility verdict.
func (h *Handler) CheckConflicts(c echo.Context) error {
	var p Proposal
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.svc.CheckConflicts(c.Request().Context(), p)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "room not found")
		}
		if errors.Is(err, staff.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "staff member not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) FindAvailableSlots(c echo.Context) error {
	roomID, err := uuid.Parse(c.QueryParam("room_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room_id")
	}
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	var minutes int
	if err := echo.QueryParamsBinder(c).Int("duration_minutes", &minutes).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid duration_minutes")
	}
	slots, err := h.svc.FindAvailableSlots(c.Request().Context(), roomID, date, minutes)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "room not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"slots": slots})
}

func (h *Handler) GetOccupancy(c echo.Context) error {
	roomID, err := uuid.Parse(c.QueryParam("room_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room_id")
	}
	from, err := time.Parse("2006-01-02", c.QueryParam("period_start"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid period_start, expected YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", c.QueryParam("period_end"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid period_end, expected YYYY-MM-DD")
	}
	stats, err := h.svc.GetOccupancy(c.Request().Context(), roomID, from, to)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "room not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}
