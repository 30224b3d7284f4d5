package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vessel-management/internal/model"
)

func (h *FleetHandler) ListSafety(c echo.Context) error {
	vesselID, err := queryUint(c, "vessel_id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	list, err := h.Safety.List(ctx, vesselID, 0)
	if err != nil {
		return fail(c, h.Log, "list", "safety records", err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *FleetHandler) GetSafety(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	rec, err := h.Safety.GetByID(ctx, id)
	if err != nil {
		return fail(c, h.Log, "load", "safety record", err)
	}
	return c.JSON(http.StatusOK, rec)
}

// CreateSafety records the caller as reported_by.
func (h *FleetHandler) CreateSafety(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var rec model.SafetyRecord
	if err := c.Bind(&rec); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := rec.Validate(); err != nil {
		return fail(c, h.Log, "create", "safety record", err)
	}
	rec.ReportedBy = uid
	ctx, cancel := dbContext(c)
	defer cancel()
	created, err := h.Safety.Create(ctx, rec)
	if err != nil {
		return fail(c, h.Log, "create", "safety record", err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *FleetHandler) UpdateSafety(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var rec model.SafetyRecord
	if err := c.Bind(&rec); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := rec.Validate(); err != nil {
		return fail(c, h.Log, "update", "safety record", err)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	updated, err := h.Safety.Update(ctx, id, rec)
	if err != nil {
		return fail(c, h.Log, "update", "safety record", err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *FleetHandler) DeleteSafety(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Safety.Delete(ctx, id); err != nil {
		return fail(c, h.Log, "delete", "safety record", err)
	}
	return c.NoContent(http.StatusNoContent)
}
