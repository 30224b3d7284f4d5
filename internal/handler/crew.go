package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vessel-management/internal/model"
	"github.com/iliyamo/vessel-management/internal/repository"
)

func (h *FleetHandler) ListCrew(c echo.Context) error {
	userID, err := queryUint(c, "user_id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	vesselID, err := queryUint(c, "vessel_id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	list, err := h.Crew.List(ctx, repository.CrewFilter{UserID: userID, VesselID: vesselID})
	if err != nil {
		return fail(c, h.Log, "list", "crew assignments", err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *FleetHandler) GetCrew(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	a, err := h.Crew.GetByID(ctx, id)
	if err != nil {
		return fail(c, h.Log, "load", "crew assignment", err)
	}
	return c.JSON(http.StatusOK, a)
}

// CreateCrew assigns the caller to a vessel.  The caller's previous
// active assignment is deactivated.
func (h *FleetHandler) CreateCrew(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var a model.CrewAssignment
	if err := c.Bind(&a); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := a.Validate(); err != nil {
		return fail(c, h.Log, "create", "crew assignment", err)
	}
	a.UserID = uid
	ctx, cancel := dbContext(c)
	defer cancel()
	created, err := h.Crew.Create(ctx, a)
	if err != nil {
		return fail(c, h.Log, "create", "crew assignment", err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *FleetHandler) UpdateCrew(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	a := model.CrewAssignment{IsActive: true}
	if err := c.Bind(&a); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := a.Validate(); err != nil {
		return fail(c, h.Log, "update", "crew assignment", err)
	}
	if a.UserID == 0 {
		return badRequest(c, "user_id is required")
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	updated, err := h.Crew.Update(ctx, id, a)
	if err != nil {
		return fail(c, h.Log, "update", "crew assignment", err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *FleetHandler) DeleteCrew(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Crew.Delete(ctx, id); err != nil {
		return fail(c, h.Log, "delete", "crew assignment", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MyAssignment returns the caller's active assignment with its vessel,
// or null.  A vessel deleted since the assignment yields vessel: null.
func (h *FleetHandler) MyAssignment(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	a, err := h.Crew.GetActiveForUser(ctx, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusOK, nil)
	}
	if err != nil {
		return fail(c, h.Log, "load", "crew assignment", err)
	}
	out := model.MyAssignment{Assignment: a}
	v, err := h.Vessels.GetByID(ctx, a.VesselID)
	switch {
	case err == nil:
		out.Vessel = &v
	case !errors.Is(err, repository.ErrNotFound):
		return fail(c, h.Log, "load", "vessel", err)
	}
	return c.JSON(http.StatusOK, out)
}
