package handlers

import (
	"net/http"
	"time"

	"parkapp/internal/common"
	"parkapp/internal/models"
	"parkapp/internal/services"

	"github.com/labstack/echo/v4"
)

// VehicleHandlers exposes the vehicle ledger.
type VehicleHandlers struct {
	ledger services.VehicleLedgerService
}

func NewVehicleHandlers(ledger services.VehicleLedgerService) *VehicleHandlers {
	return &VehicleHandlers{ledger: ledger}
}

// VehicleEntryRequest is the check-in payload. Images are data URLs stored
// as given.
type VehicleEntryRequest struct {
	NumberPlate    string     `json:"numberPlate" validate:"required,max=32"`
	DriverName     string     `json:"driverName" validate:"max=255"`
	PassengerCount int        `json:"passengerCount" validate:"gte=0"`
	Reason         string     `json:"reason"`
	FrontImage     string     `json:"frontImage"`
	BackImage      string     `json:"backImage"`
	Timestamp      *time.Time `json:"timestamp"`
}

type VehicleExitRequest struct {
	NumberPlate string `json:"numberPlate" validate:"required"`
}

type EntryResponse struct {
	Success bool                 `json:"success"`
	Entry   *models.VehicleEntry `json:"entry"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

// RecordEntry handles POST /api/vehicle-entry
//
// @Summary Record a vehicle check-in
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body VehicleEntryRequest true "entry"
// @Success 200 {object} EntryResponse
// @Failure 400,401 {object} common.ErrorResponse
// @Router /api/vehicle-entry [post]
func (h *VehicleHandlers) RecordEntry(c echo.Context) error {
	var req VehicleEntryRequest
	if err := c.Bind(&req); err != nil {
		return common.ValidationError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	entry, err := h.ledger.RecordEntry(c.Request().Context(), &models.NewVehicleEntry{
		NumberPlate:    req.NumberPlate,
		DriverName:     req.DriverName,
		PassengerCount: req.PassengerCount,
		Reason:         req.Reason,
		FrontImage:     req.FrontImage,
		BackImage:      req.BackImage,
		Timestamp:      req.Timestamp,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, EntryResponse{Success: true, Entry: entry})
}

// RecordExit handles PATCH /api/vehicle-exit
//
// @Summary Check out the latest parked entry for a plate
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body VehicleExitRequest true "plate"
// @Success 200 {object} EntryResponse
// @Failure 401,404 {object} common.ErrorResponse
// @Router /api/vehicle-exit [patch]
func (h *VehicleHandlers) RecordExit(c echo.Context) error {
	var req VehicleExitRequest
	if err := c.Bind(&req); err != nil {
		return common.ValidationError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	entry, err := h.ledger.RecordExit(c.Request().Context(), req.NumberPlate)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, EntryResponse{Success: true, Entry: entry})
}

// ListEntries handles GET /api/vehicle-entries. Only parked vehicles are
// listed unless all=1.
//
// @Summary List entries, newest first
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param all query string false "1 to include exited entries"
// @Success 200 {array} models.VehicleEntry
// @Failure 401 {object} common.ErrorResponse
// @Router /api/vehicle-entries [get]
func (h *VehicleHandlers) ListEntries(c echo.Context) error {
	entries, err := h.ledger.ListEntries(c.Request().Context(), c.QueryParam("all") == "1")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// CountEntries handles GET /api/vehicle-count
//
// @Summary Count entries by day or interval
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param start query string false "start date"
// @Param end query string false "end date"
// @Success 200 {object} CountResponse
// @Failure 400,401 {object} common.ErrorResponse
// @Router /api/vehicle-count [get]
func (h *VehicleHandlers) CountEntries(c echo.Context) error {
	start, err := common.ParseDateParam(c.QueryParam("start"), "start")
	if err != nil {
		return err
	}
	end, err := common.ParseDateParam(c.QueryParam("end"), "end")
	if err != nil {
		return err
	}

	count, err := h.ledger.CountEntries(c.Request().Context(), models.CountFilter{Start: start, End: end})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CountResponse{Count: count})
}
