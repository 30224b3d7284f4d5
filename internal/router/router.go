// Package router wires handlers and middleware onto the echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/vessel-management/internal/handler"
	"github.com/iliyamo/vessel-management/internal/middleware"
	"github.com/iliyamo/vessel-management/internal/model"
)

// Setup installs the global middleware: panic recovery, request ids,
// request logging and CORS.
func Setup(e *echo.Echo, log *zap.Logger, corsOrigins []string) {
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: corsOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
}

// RegisterRoutes registers the unauthenticated health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth mounts /auth.  register, login, refresh and logout sit
// behind the rate limiter; /auth/me needs a bearer token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rateLimit echo.MiddlewareFunc) {
	g := e.Group("/auth")
	g.POST("/register", a.Register, rateLimit)
	g.POST("/login", a.Login, rateLimit)
	g.POST("/refresh", a.Refresh, rateLimit)
	g.POST("/logout", a.Logout, rateLimit)
	g.GET("/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterProfile mounts the five profile sections for the caller's own
// account.
func RegisterProfile(e *echo.Echo, p *handler.ProfileHandler, jwtSecret string) {
	auth := middleware.JWTAuth(jwtSecret)

	e.GET("/profile", p.GetProfile, auth)
	e.PUT("/profile", p.PutProfile, auth)
	e.GET("/next-of-kin", p.GetNextOfKin, auth)
	e.PUT("/next-of-kin", p.PutNextOfKin, auth)
	e.GET("/medical-info", p.GetMedical, auth)
	e.PUT("/medical-info", p.PutMedical, auth)
	e.GET("/certificates", p.ListCertificates, auth)
	e.POST("/certificates", p.CreateCertificate, auth)
	e.GET("/electronic-signature", p.GetSignature, auth)
	e.PUT("/electronic-signature", p.PutSignature, auth)
}

// RegisterFleet mounts vessels, maintenance, safety, crew assignments
// and the dashboard.  Vessel writes are admin only.  The dashboard goes
// through the response cache and every fleet write passes through
// invalidate.
func RegisterFleet(e *echo.Echo, f *handler.FleetHandler, jwtSecret string, cache, invalidate echo.MiddlewareFunc) {
	auth := middleware.JWTAuth(jwtSecret)
	admin := middleware.RequireRole(model.RoleAdmin)

	e.GET("/vessels", f.ListVessels, auth)
	e.POST("/vessels", f.CreateVessel, auth, admin, invalidate)
	e.GET("/vessels/:id", f.GetVessel, auth)
	e.PUT("/vessels/:id", f.UpdateVessel, auth, admin, invalidate)
	e.DELETE("/vessels/:id", f.DeleteVessel, auth, admin, invalidate)

	e.GET("/maintenance", f.ListMaintenance, auth)
	e.POST("/maintenance", f.CreateMaintenance, auth, invalidate)
	e.GET("/maintenance/:id", f.GetMaintenance, auth)
	e.PUT("/maintenance/:id", f.UpdateMaintenance, auth, invalidate)
	e.DELETE("/maintenance/:id", f.DeleteMaintenance, auth, invalidate)

	e.GET("/safety", f.ListSafety, auth)
	e.POST("/safety", f.CreateSafety, auth, invalidate)
	e.GET("/safety/:id", f.GetSafety, auth)
	e.PUT("/safety/:id", f.UpdateSafety, auth, invalidate)
	e.DELETE("/safety/:id", f.DeleteSafety, auth, invalidate)

	e.GET("/crew-assignments", f.ListCrew, auth)
	e.POST("/crew-assignments", f.CreateCrew, auth, invalidate)
	e.GET("/crew-assignments/:id", f.GetCrew, auth)
	e.PUT("/crew-assignments/:id", f.UpdateCrew, auth, invalidate)
	e.DELETE("/crew-assignments/:id", f.DeleteCrew, auth, invalidate)

	e.GET("/my-assignment", f.MyAssignment, auth)
	e.GET("/dashboard", f.Dashboard, auth, cache)
}
