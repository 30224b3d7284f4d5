package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// CurrentUserID returns the authenticated account id set by JWTAuth.
func CurrentUserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(CtxUserID).(uint64)
	return id, ok && id != 0
}

// CurrentRole returns the authenticated role, or "" for anonymous calls.
func CurrentRole(c echo.Context) string {
	r, _ := c.Get(CtxRole).(string)
	return r
}

// identityKey is the user part of cache and rate-limit keys.
func identityKey(c echo.Context) string {
	if id, ok := CurrentUserID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}
