package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vessel-management/internal/model"
)

func (h *FleetHandler) ListMaintenance(c echo.Context) error {
	vesselID, err := queryUint(c, "vessel_id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	list, err := h.Maintenance.List(ctx, vesselID, 0)
	if err != nil {
		return fail(c, h.Log, "list", "maintenance records", err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *FleetHandler) GetMaintenance(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	m, err := h.Maintenance.GetByID(ctx, id)
	if err != nil {
		return fail(c, h.Log, "load", "maintenance record", err)
	}
	return c.JSON(http.StatusOK, m)
}

// CreateMaintenance records the caller as created_by.
func (h *FleetHandler) CreateMaintenance(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var m model.MaintenanceTask
	if err := c.Bind(&m); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := m.Validate(); err != nil {
		return fail(c, h.Log, "create", "maintenance record", err)
	}
	m.CreatedBy = uid
	ctx, cancel := dbContext(c)
	defer cancel()
	created, err := h.Maintenance.Create(ctx, m)
	if err != nil {
		return fail(c, h.Log, "create", "maintenance record", err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *FleetHandler) UpdateMaintenance(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var m model.MaintenanceTask
	if err := c.Bind(&m); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := m.Validate(); err != nil {
		return fail(c, h.Log, "update", "maintenance record", err)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	updated, err := h.Maintenance.Update(ctx, id, m)
	if err != nil {
		return fail(c, h.Log, "update", "maintenance record", err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *FleetHandler) DeleteMaintenance(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Maintenance.Delete(ctx, id); err != nil {
		return fail(c, h.Log, "delete", "maintenance record", err)
	}
	return c.NoContent(http.StatusNoContent)
}
