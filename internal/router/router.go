// Package router registers the HTTP routes of the service: the public
// search surface, the auth endpoints and the moderation API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mvolkova/travelads/internal/handler"
	"github.com/mvolkova/travelads/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes and the authenticated
// /v1/me endpoint.  Unauthenticated operations live under /v1/auth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("MODERATOR", "ADMIN"))
	auth.GET("/me", a.Me)

	// Logout with a refresh token in the body works without a JWT too.
	e.POST("/v1/logout", a.Logout)
}
