// Package handler contains the echo HTTP handlers.  Handlers bind and
// validate input, call repositories under a 5 second deadline and map
// repository errors to status codes.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/vessel-management/internal/middleware"
	"github.com/iliyamo/vessel-management/internal/model"
	"github.com/iliyamo/vessel-management/internal/repository"
)

const dbTimeout = 5 * time.Second

var errNoUser = errors.New("invalid user_id in context")

func dbContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// getUserID returns the account id stored by the JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := middleware.CurrentUserID(c); ok {
		return id, nil
	}
	return 0, errNoUser
}

// parseID reads the :id path parameter.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// queryUint reads an optional positive integer query parameter; absent
// means 0.
func queryUint(c echo.Context, name string) (uint64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}
	return n, nil
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
}

// fail maps err to a response: field errors give 400, ErrNotFound gives
// 404 "<noun> not found", anything else is logged and gives 500
// "<op> <noun> failed: <cause>".
func fail(c echo.Context, log *zap.Logger, op, noun string, err error) error {
	var fe *model.FieldError
	switch {
	case errors.As(err, &fe):
		return badRequest(c, fe.Error())
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": noun + " not found"})
	}
	log.Error("persistence failure",
		zap.String("op", op+" "+noun),
		zap.String("request_id", middleware.RequestIDOf(c)),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": op + " " + noun + " failed: " + err.Error()})
}

// emptyObject is the body of a single-slot resource that was never saved.
func emptyObject(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{})
}
