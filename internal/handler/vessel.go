package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/vessel-management/internal/model"
	"github.com/iliyamo/vessel-management/internal/repository"
)

// FleetHandler serves vessels, maintenance tasks, safety records, crew
// assignments and the dashboard.
type FleetHandler struct {
	Vessels     *repository.VesselRepo
	Maintenance *repository.MaintenanceRepo
	Safety      *repository.SafetyRepo
	Crew        *repository.CrewRepo
	Log         *zap.Logger
}

func (h *FleetHandler) ListVessels(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	list, err := h.Vessels.List(ctx, 0)
	if err != nil {
		return fail(c, h.Log, "list", "vessels", err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *FleetHandler) GetVessel(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	v, err := h.Vessels.GetByID(ctx, id)
	if err != nil {
		return fail(c, h.Log, "load", "vessel", err)
	}
	return c.JSON(http.StatusOK, v)
}

// bindVessel decodes a vessel body; is_active defaults to true.
func bindVessel(c echo.Context) (model.Vessel, error) {
	v := model.Vessel{IsActive: true}
	if err := c.Bind(&v); err != nil {
		return v, err
	}
	return v, nil
}

func (h *FleetHandler) CreateVessel(c echo.Context) error {
	v, err := bindVessel(c)
	if err != nil {
		return badRequest(c, "invalid body")
	}
	if err := v.Validate(); err != nil {
		return fail(c, h.Log, "create", "vessel", err)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	created, err := h.Vessels.Create(ctx, v)
	if err != nil {
		return fail(c, h.Log, "create", "vessel", err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *FleetHandler) UpdateVessel(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	v, err := bindVessel(c)
	if err != nil {
		return badRequest(c, "invalid body")
	}
	if err := v.Validate(); err != nil {
		return fail(c, h.Log, "update", "vessel", err)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	updated, err := h.Vessels.Update(ctx, id, v)
	if err != nil {
		return fail(c, h.Log, "update", "vessel", err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteVessel removes only the vessel row; dependent records remain.
func (h *FleetHandler) DeleteVessel(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Vessels.Delete(ctx, id); err != nil {
		return fail(c, h.Log, "delete", "vessel", err)
	}
	return c.NoContent(http.StatusNoContent)
}
