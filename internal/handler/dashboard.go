package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vessel-management/internal/middleware"
	"github.com/iliyamo/vessel-management/internal/model"
	"github.com/iliyamo/vessel-management/internal/repository"
)

const dashboardRecent = 5

// Dashboard returns fleet counts, the five most recent vessels,
// maintenance tasks and safety records, and for crew callers their
// active assignment.
func (h *FleetHandler) Dashboard(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	var d model.Dashboard
	if d.TotalVessels, d.ActiveVessels, err = h.Vessels.Counts(ctx); err != nil {
		return fail(c, h.Log, "count", "vessels", err)
	}
	if d.PendingMaintenance, err = h.Maintenance.CountPending(ctx); err != nil {
		return fail(c, h.Log, "count", "maintenance records", err)
	}
	if d.OpenSafetyIssues, err = h.Safety.CountOpen(ctx); err != nil {
		return fail(c, h.Log, "count", "safety records", err)
	}
	if d.RecentVessels, err = h.Vessels.List(ctx, dashboardRecent); err != nil {
		return fail(c, h.Log, "list", "vessels", err)
	}
	if d.RecentMaintenance, err = h.Maintenance.List(ctx, 0, dashboardRecent); err != nil {
		return fail(c, h.Log, "list", "maintenance records", err)
	}
	if d.RecentSafety, err = h.Safety.List(ctx, 0, dashboardRecent); err != nil {
		return fail(c, h.Log, "list", "safety records", err)
	}
	if middleware.CurrentRole(c) == model.RoleCrew {
		a, err := h.Crew.GetActiveForUser(ctx, uid)
		switch {
		case err == nil:
			d.UserAssignment = &a
		case !errors.Is(err, repository.ErrNotFound):
			return fail(c, h.Log, "load", "crew assignment", err)
		}
	}
	return c.JSON(http.StatusOK, d)
}
